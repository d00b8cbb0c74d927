package textpage

import "github.com/mattn/go-runewidth"

// WordBuilder accumulates glyph events into rotation-tagged Words and hands
// finished words to a Pool. One WordBuilder exists per Page during the
// ingesting phase (spec.md §4.1, C1).
type WordBuilder struct {
	cfg   Config
	fonts *FontRegistry
	pools *[4]*Pool

	cur *curWord

	tinyGlyphCount int

	// pendingHigh holds an unpaired high surrogate waiting for its low half.
	pendingHigh    rune
	havePendingHigh bool

	// actualText span state: depth counts nested BMC/EMC spans; when depth
	// drops back to zero the union box's synthetic glyph run is emitted.
	actualDepth  int
	actualText   []rune
	actualXMin, actualYMin, actualXMax, actualYMax float64
	actualCharPos, actualCharLen                   int
	actualFontSize                                  float64
	actualFont                                      *FontInfo
	actualCTM, actualFontMatrix                     Matrix

	charPosCursor int

	Warnf func(format string, args ...interface{})
}

// curWord is the in-progress word the builder is accumulating.
type curWord struct {
	runes    []rune
	edges    []float64
	base     float64
	rot      Rotation
	fontSize float64
	font     *FontInfo
	charPos  int
	charLen  int
	yMin, yMax, xMin, xMax float64
	reversed bool
}

// NewWordBuilder creates a builder that deposits finished words into pools,
// one per rotation.
func NewWordBuilder(cfg Config, fonts *FontRegistry, pools *[4]*Pool) *WordBuilder {
	return &WordBuilder{cfg: cfg, fonts: fonts, pools: pools}
}

func (b *WordBuilder) warn(format string, args ...interface{}) {
	if b.Warnf != nil {
		b.Warnf(format, args...)
	}
}

// FeedMarkedContent notifies the builder of an ActualText span boundary.
func (b *WordBuilder) FeedMarkedContent(ev MarkedContentEvent) {
	switch ev.Kind {
	case MarkedContentActualTextBegin:
		if b.actualDepth == 0 {
			b.actualText = ev.ActualText
			b.actualXMin, b.actualYMin = 1e18, 1e18
			b.actualXMax, b.actualYMax = -1e18, -1e18
			b.actualCharPos = b.charPosCursor
			b.actualCharLen = 0
		}
		b.actualDepth++
	case MarkedContentActualTextEnd:
		if b.actualDepth == 0 {
			return
		}
		b.actualDepth--
		if b.actualDepth == 0 {
			b.emitActualTextRun()
		}
	}
}

func (b *WordBuilder) emitActualTextRun() {
	if len(b.actualText) == 0 {
		return
	}
	b.flushWord()
	halfHeight := (b.actualYMax - b.actualYMin) / 2
	base := b.actualYMin + halfHeight
	leading := b.actualXMin
	rot := RotationFromMatrix(b.actualFontMatrix)
	// An ActualText span reports only its union bounding box, not one
	// position per output code point, so per-glyph edges are synthesized by
	// distributing the box width proportionally to each rune's display
	// width (wide CJK runes get roughly double a narrow rune's share).
	edges := make([]float64, len(b.actualText)+1)
	totalWidth := 0
	widths := make([]int, len(b.actualText))
	for i, r := range b.actualText {
		w := runewidth.RuneWidth(r)
		if w <= 0 {
			w = 1
		}
		widths[i] = w
		totalWidth += w
	}
	span := b.actualXMax - b.actualXMin
	pos := leading
	edges[0] = pos
	for i, w := range widths {
		pos += span * float64(w) / float64(maxInt(totalWidth, 1))
		edges[i+1] = pos
	}
	w := &Word{
		Text:     append([]rune(nil), b.actualText...),
		Edges:    edges,
		XMin:     b.actualXMin,
		YMin:     b.actualYMin,
		XMax:     b.actualXMax,
		YMax:     b.actualYMax,
		Base:     base,
		Rot:      rot,
		FontSize: b.actualFontSize,
		CharPos:  b.actualCharPos,
		CharLen:  b.actualCharLen,
	}
	if b.actualFont != nil {
		w.Font = b.fonts.Intern(b.actualFont)
	}
	b.deposit(w)
	b.actualText = nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FeedGlyph runs the per-glyph intake policy described in spec.md §4.1.
func (b *WordBuilder) FeedGlyph(ev GlyphEvent) {
	startPos := b.charPosCursor
	b.charPosCursor += ev.ByteLen

	runes, ok := b.resolveSurrogates(ev.Runes)
	if !ok {
		// Consumed as the first half of a surrogate pair; wait for the low
		// half before minting anything.
		return
	}

	if b.actualDepth > 0 {
		x, y := ev.CTM.Transform(ev.X, ev.Y)
		x2, y2 := x+ev.W1, y+ev.H1
		b.actualXMin = minF(b.actualXMin, minF(x, x2))
		b.actualYMin = minF(b.actualYMin, minF(y, y2))
		b.actualXMax = maxF(b.actualXMax, maxF(x, x2))
		b.actualYMax = maxF(b.actualYMax, maxF(y, y2))
		b.actualCharLen += ev.ByteLen
		b.actualFontSize = ev.FontSize
		b.actualFont = ev.Font
		b.actualCTM = ev.CTM
		b.actualFontMatrix = ev.FontMatrix
		return
	}

	adjDX := ev.DX - ev.CharSpace
	isSpace := len(runes) == 1 && runes[0] == ' '
	if isSpace {
		adjDX -= ev.WordSpace
	}

	x, y := ev.CTM.Transform(ev.X, ev.Y)

	if b.cfg.PageWidth > 0 && b.cfg.PageHeight > 0 {
		if x < 0 || y < 0 || x > b.cfg.PageWidth || y > b.cfg.PageHeight {
			return
		}
	}
	if absF(ev.W1) > b.cfg.PageWidth && b.cfg.PageWidth > 0 {
		return
	}
	if absF(ev.H1) > b.cfg.PageHeight && b.cfg.PageHeight > 0 {
		return
	}

	if absF(ev.W1) < 3 && absF(ev.H1) < 3 {
		b.tinyGlyphCount++
		if !b.cfg.KeepTinyChars && b.tinyGlyphCount > maxTinyGlyphsDefault {
			return
		}
	}

	if isSpace {
		if b.cur != nil {
			b.cur.charLen += ev.ByteLen
			b.flushWord()
		}
		return
	}

	rot := RotationFromMatrix(ev.FontMatrix)
	base := rot.SecondaryOf(x, y)
	leading := rot.PrimaryOf(x, y)
	advance := rot.PrimaryOf(adjDX, adjDX)
	if rot == Rotate90 || rot == Rotate270 {
		advance = rot.PrimaryOf(ev.DX-ev.CharSpace, ev.DY-ev.CharSpace)
		if isSpace {
			advance -= ev.WordSpace
		}
	}
	trailing := leading + advance

	if b.cur == nil {
		b.startWord(runes, rot, base, leading, trailing, x, y, x+ev.W1, y+ev.H1, ev, startPos)
		return
	}

	if b.shouldBreak(rot, base, leading, ev.FontSize) {
		b.flushWord()
		b.startWord(runes, rot, base, leading, trailing, x, y, x+ev.W1, y+ev.H1, ev, startPos)
		return
	}

	b.appendToCurrent(runes, leading, trailing, x, y, x+ev.W1, y+ev.H1, ev, startPos)
}

func (b *WordBuilder) resolveSurrogates(runes []rune) ([]rune, bool) {
	if b.havePendingHigh {
		high := b.pendingHigh
		b.havePendingHigh = false
		if len(runes) == 1 && isLowSurrogate(runes[0]) {
			combined := combineSurrogate(high, runes[0])
			return []rune{combined}, true
		}
		// Unpaired high surrogate: replace with U+FFFD and continue with
		// this glyph's own runes unchanged.
		out := append([]rune{0xFFFD}, runes...)
		return out, true
	}
	if len(runes) == 1 && isHighSurrogate(runes[0]) {
		b.pendingHigh = runes[0]
		b.havePendingHigh = true
		return nil, false
	}
	if len(runes) == 1 && isLowSurrogate(runes[0]) {
		return []rune{0xFFFD}, true
	}
	return runes, true
}

func isHighSurrogate(r rune) bool { return r >= 0xD800 && r <= 0xDBFF }
func isLowSurrogate(r rune) bool  { return r >= 0xDC00 && r <= 0xDFFF }

func combineSurrogate(high, low rune) rune {
	return 0x10000 + ((high & 0x3FF) << 10) + (low & 0x3FF)
}

func (b *WordBuilder) shouldBreak(rot Rotation, base, leading, evFontSize float64) bool {
	fontSize := b.cur.fontSize
	trailing := b.cur.edges[len(b.cur.edges)-1]
	signedGap := (leading - trailing) * rot.Sign()
	baseDelta := absF(base - b.cur.base)

	overlap := signedGap < dupMaxPriDelta*fontSize && baseDelta < dupMaxSecDelta*fontSize
	gapBreak := signedGap > minWordBreakSpace*fontSize
	negGapBreak := signedGap < -minDupBreakOverlap*fontSize
	baselineJump := baseDelta > baselineJumpThreshold
	rotChange := rot != b.cur.rot
	fontSizeChange := evFontSize != b.cur.fontSize

	return overlap || gapBreak || negGapBreak || baselineJump || rotChange || fontSizeChange
}

func (b *WordBuilder) startWord(runes []rune, rot Rotation, base, leading, trailing, x0, y0, x1, y1 float64, ev GlyphEvent, charPos int) {
	b.cur = &curWord{
		runes:    append([]rune(nil), runes...),
		edges:    []float64{leading, trailing},
		base:     base,
		rot:      rot,
		fontSize: ev.FontSize,
		font:     ev.Font,
		charPos:  charPos,
		charLen:  ev.ByteLen,
		xMin:     minF(x0, x1), xMax: maxF(x0, x1),
		yMin: minF(y0, y1), yMax: maxF(y0, y1),
	}
}

func (b *WordBuilder) appendToCurrent(runes []rune, leading, trailing, x0, y0, x1, y1 float64, ev GlyphEvent, charPos int) {
	c := b.cur
	// Reverse-drawn detection: once the run is more than one glyph long, a
	// glyph advancing against the rotation's declared direction reopens the
	// word at the end of the advance with the axis flipped, so edges stay
	// monotone.
	lastTrailing := c.edges[len(c.edges)-1]
	signedAdvance := (trailing - leading) * c.rot.Sign()
	if len(c.runes) == 1 && signedAdvance < 0 && !c.reversed {
		c.reversed = true
		leading, trailing = trailing, leading
	}
	_ = lastTrailing

	c.runes = append(c.runes, runes...)
	c.edges = append(c.edges, trailing)
	c.charLen += ev.ByteLen
	c.xMin = minF(c.xMin, minF(x0, x1))
	c.xMax = maxF(c.xMax, maxF(x0, x1))
	c.yMin = minF(c.yMin, minF(y0, y1))
	c.yMax = maxF(c.yMax, maxF(y0, y1))
}

func (b *WordBuilder) flushWord() {
	if b.cur == nil {
		return
	}
	c := b.cur
	b.cur = nil
	w := &Word{
		Text:     c.runes,
		Edges:    c.edges,
		XMin:     c.xMin, YMin: c.yMin, XMax: c.xMax, YMax: c.yMax,
		Base:     c.base,
		Rot:      c.rot,
		FontSize: c.fontSize,
		CharPos:  c.charPos,
		CharLen:  c.charLen,
	}
	if c.font != nil {
		w.Font = b.fonts.Intern(c.font)
	}
	b.deposit(w)
}

func (b *WordBuilder) deposit(w *Word) {
	pool := b.pools[int(w.Rot)]
	if pool == nil {
		pool = NewPool()
		b.pools[int(w.Rot)] = pool
	}
	pool.Insert(w)
}

// Flush closes any in-progress word at the end of the glyph stream.
func (b *WordBuilder) Flush() {
	if b.actualDepth > 0 {
		b.actualDepth = 0
		b.emitActualTextRun()
	}
	b.flushWord()
}
