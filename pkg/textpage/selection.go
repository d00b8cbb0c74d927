package textpage

import "github.com/rivo/uniseg"

// Rect is an axis-aligned rectangle in fractional page coordinates (the
// selection/search polygon element type).
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Selection is the pointer-to-text selection model (spec.md §4.8, C8).
type Selection struct {
	page *Page

	selStart, selEnd     *Word
	selIdx1, selIdx2     int
	selIdxSave           int
	active               bool
}

func rectDist(xMin, yMin, xMax, yMax, x, y float64) float64 {
	return maxF(xMin-x, 0) + maxF(x-xMax, 0) + maxF(yMin-y, 0) + maxF(y-yMax, 0)
}

// nextWordGlobal returns the word immediately after w in reading order,
// crossing line and block boundaries, or nil at the end of the page.
func nextWordGlobal(w *Word) *Word {
	if w == nil {
		return nil
	}
	if w.Next != nil {
		return w.Next
	}
	line := w.Line
	if line == nil {
		return nil
	}
	if line.Next != nil {
		if wd := firstWordOf(line.Next); wd != nil {
			return wd
		}
	}
	blk := line.Block
	for blk != nil && blk.Next != nil {
		blk = blk.Next
		if wd := firstWordOfBlock(blk); wd != nil {
			return wd
		}
	}
	return nil
}

// prevWordGlobal is the mirror of nextWordGlobal.
func prevWordGlobal(w *Word) *Word {
	if w == nil {
		return nil
	}
	if w.Prev != nil {
		return w.Prev
	}
	line := w.Line
	if line == nil {
		return nil
	}
	if line.Prev != nil {
		if wd := lastWordOf(line.Prev); wd != nil {
			return wd
		}
	}
	blk := line.Block
	for blk != nil && blk.Prev != nil {
		blk = blk.Prev
		if wd := lastWordOfBlock(blk); wd != nil {
			return wd
		}
	}
	return nil
}

func firstWordOf(l *Line) *Word {
	if len(l.Words) == 0 {
		return nil
	}
	return l.Words[0]
}

func lastWordOf(l *Line) *Word {
	if len(l.Words) == 0 {
		return nil
	}
	return l.Words[len(l.Words)-1]
}

func firstWordOfBlock(b *Block) *Word {
	for _, l := range b.Lines {
		if wd := firstWordOf(l); wd != nil {
			return wd
		}
	}
	return nil
}

func lastWordOfBlock(b *Block) *Word {
	for i := len(b.Lines) - 1; i >= 0; i-- {
		if wd := lastWordOf(b.Lines[i]); wd != nil {
			return wd
		}
	}
	return nil
}

// nearestWord performs the three-level zoom (block -> line -> word)
// described in spec.md §4.8, then refines within the chosen line by
// walking forward/backward using the word-level Pre/Post envelopes so the
// search short-circuits once the running minimum beats the envelope's
// rectangular distance to (x, y).
func (s *Selection) nearestWord(x, y float64) *Word {
	blocks := s.page.Blocks
	if len(blocks) == 0 {
		return nil
	}

	var bestBlock *Block
	bestBlockDist := -1.0
	for _, b := range blocks {
		d := rectDist(b.XMin, b.YMin, b.XMax, b.YMax, x, y)
		if bestBlock == nil || d < bestBlockDist {
			bestBlock = b
			bestBlockDist = d
		}
	}
	if bestBlock == nil || len(bestBlock.Lines) == 0 {
		return nil
	}

	var bestLine *Line
	bestLineDist := -1.0
	for _, l := range bestBlock.Lines {
		d := rectDist(l.XMin, l.YMin, l.XMax, l.YMax, x, y)
		if bestLine == nil || d < bestLineDist {
			bestLine = l
			bestLineDist = d
		}
	}
	if bestLine == nil || len(bestLine.Words) == 0 {
		return nil
	}

	var bestWord *Word
	bestWordDist := -1.0
	for _, w := range bestLine.Words {
		d := rectDist(w.XMin, w.YMin, w.XMax, w.YMax, x, y)
		if bestWord == nil || d < bestWordDist {
			bestWord = w
			bestWordDist = d
		}
	}
	return s.refineWithinLine(bestWord, bestWordDist, x, y)
}

// refineWithinLine walks forward/backward from start using the line-local
// Pre/Post envelopes, stopping once the envelope's distance can no longer
// beat the running minimum.
func (s *Selection) refineWithinLine(start *Word, startDist, x, y float64) *Word {
	if start == nil {
		return nil
	}
	best := start
	mindist := startDist

	for cur := start; cur != nil; cur = cur.Next {
		envDist := rectDist(cur.XMinPost, cur.YMinPost, cur.XMaxPost, cur.YMaxPost, x, y)
		if envDist >= mindist {
			break
		}
		if cur.Next == nil {
			break
		}
		d := rectDist(cur.Next.XMin, cur.Next.YMin, cur.Next.XMax, cur.Next.YMax, x, y)
		if d < mindist {
			mindist = d
			best = cur.Next
		}
	}
	for cur := start; cur != nil; cur = cur.Prev {
		envDist := rectDist(cur.XMinPre, cur.YMinPre, cur.XMaxPre, cur.YMaxPre, x, y)
		if envDist >= mindist {
			break
		}
		if cur.Prev == nil {
			break
		}
		d := rectDist(cur.Prev.XMin, cur.Prev.YMin, cur.Prev.XMax, cur.Prev.YMax, x, y)
		if d < mindist {
			mindist = d
			best = cur.Prev
		}
	}
	return best
}

// calIdx computes the glyph-local offset within word by linear
// interpolation within the word's primary-axis extent, refined by stepping
// through edges[] (spec.md §4.8).
func calIdx(x, y float64, word *Word) int {
	if word == nil || word.Len() == 0 {
		return 0
	}
	p := word.Rot.PrimaryOf(x, y)
	n := word.Len()

	lo, hi := word.Edges[0], word.Edges[n]
	span := hi - lo
	var guess int
	if span != 0 {
		frac := (p - lo) / span
		guess = int(frac * float64(n))
	}
	if guess < 0 {
		guess = 0
	}
	if guess > n {
		guess = n
	}

	ascending := word.Rot.Ascending()
	idx := guess
	if ascending {
		for idx > 0 && word.Edges[idx] > p {
			idx--
		}
		for idx < n && word.Edges[idx+1] <= p {
			idx++
		}
	} else {
		for idx > 0 && word.Edges[idx] < p {
			idx--
		}
		for idx < n && word.Edges[idx+1] >= p {
			idx++
		}
	}

	if idx < 0 {
		prev := prevWordGlobal(word)
		if prev != nil && prev.SpaceAfter {
			return prev.Len()
		}
		return 0
	}
	if idx >= n {
		return n
	}
	return snapToGraphemeBoundary(word.Text, idx)
}

// snapToGraphemeBoundary moves idx back to the start of its grapheme
// cluster, so a surrogate-combined emoji or a base+combining-mark sequence
// is never split by a selection edge landing mid-cluster.
func snapToGraphemeBoundary(text []rune, idx int) int {
	if idx <= 0 || idx >= len(text) {
		return idx
	}
	state := -1
	pos := 0
	remainder := string(text)
	for len(remainder) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(remainder, state)
		clusterLen := len([]rune(cluster))
		if pos <= idx && idx < pos+clusterLen {
			return pos
		}
		pos += clusterLen
		remainder = rest
		state = newState
	}
	return idx
}

// NewSelection creates an empty selection bound to page.
func NewSelection(page *Page) *Selection {
	return &Selection{page: page}
}

// StartSelection implements PDFTextLib's setBeginCoordinate: anchor a
// selection at fractional page coordinates, selecting a single character.
func (s *Selection) StartSelection(xFrac, yFrac float64) {
	x := xFrac * s.page.Width
	y := yFrac * s.page.Height
	w := s.nearestWord(x, y)
	s.selStart = w
	s.selEnd = w
	idx := calIdx(x, y, w)
	s.selIdx1 = idx
	s.selIdx2 = idx
	s.selIdxSave = idx
	s.active = w != nil
}

// MoveSelEndTo implements PDFTextLib's fromBeginToCoordinate: move the drag
// end. The nearest word is found by a fresh block→line→word zoom over the
// whole page; the search does not start from the previous selEnd. Returns
// true iff (selEnd, selIdx2) changed.
func (s *Selection) MoveSelEndTo(xFrac, yFrac float64) bool {
	if !s.active {
		return false
	}
	x := xFrac * s.page.Width
	y := yFrac * s.page.Height

	prevEnd, prevIdx2 := s.selEnd, s.selIdx2

	w := s.nearestWord(x, y)
	idx := calIdx(x, y, w)

	if w == s.selStart {
		s.selIdx1 = s.selIdxSave
	} else if w != nil && s.selStart != nil {
		if w.Index > s.selStart.Index {
			s.selIdx1 = 0
		} else {
			s.selIdx1 = maxInt(s.selStart.Len()-1, 0)
		}
	}

	s.selEnd = w
	s.selIdx2 = idx

	return w != prevEnd || idx != prevIdx2
}

func orderedPair(a *Word, aIdx int, b *Word, bIdx int) (*Word, int, *Word, int) {
	if a == nil || b == nil {
		return a, aIdx, b, bIdx
	}
	ra := a.Index + aIdx
	rb := b.Index + bIdx
	if ra <= rb {
		return a, aIdx, b, bIdx
	}
	return b, bIdx, a, aIdx
}

// GetSelectedRegion implements PDFTextLib's fromBeginToCoordinate return
// value: one rectangle per line covered by the current selection, in
// fractional page coordinates (spec.md §4.8).
func (s *Selection) GetSelectedRegion() []Rect {
	if s.selStart == nil || s.selEnd == nil {
		return nil
	}
	begin, bIdx, end, eIdx := orderedPair(s.selStart, s.selIdx1, s.selEnd, s.selIdx2)

	var rects []Rect
	beginLine := begin.Line
	endLine := end.Line

	if beginLine == endLine {
		xMin, yMin, xMax, yMax := lineClipRange(beginLine, begin, bIdx, end, eIdx)
		rects = append(rects, toFracRect(xMin, yMin, xMax, yMax, s.page.Width, s.page.Height))
		return rects
	}

	xMin, yMin, xMax, yMax := lineClipRange(beginLine, begin, bIdx, nil, -1)
	rects = append(rects, toFracRect(xMin, yMin, xMax, yMax, s.page.Width, s.page.Height))

	for l := nextLineGlobal(beginLine); l != nil && l != endLine; l = nextLineGlobal(l) {
		rects = append(rects, toFracRect(l.XMin, l.YMin, l.XMax, l.YMax, s.page.Width, s.page.Height))
	}

	xMin, yMin, xMax, yMax = lineClipRange(endLine, nil, -1, end, eIdx)
	rects = append(rects, toFracRect(xMin, yMin, xMax, yMax, s.page.Width, s.page.Height))
	return rects
}

// lineClipRange computes a line's rectangle, clipping the primary-axis
// start to edges[bIdx] when begin/bIdx is given, and the end to
// edges[eIdx+1] when end/eIdx is given. The geometrically consistent y1
// assignment is used here, resolving the Open Question in spec.md §9 about
// the original's copy-paste xMin/yMin mixup.
func lineClipRange(line *Line, begin *Word, bIdx int, end *Word, eIdx int) (xMin, yMin, xMax, yMax float64) {
	xMin, yMin, xMax, yMax = line.XMin, line.YMin, line.XMax, line.YMax
	if begin != nil {
		clip := begin.Edges[bIdx]
		if begin.Rot == Rotate0 || begin.Rot == Rotate180 {
			xMin = maxF(xMin, minF(clip, xMax))
		} else {
			yMin = maxF(yMin, minF(clip, yMax))
		}
	}
	if end != nil {
		idx := eIdx + 1
		if idx > len(end.Edges)-1 {
			idx = len(end.Edges) - 1
		}
		clip := end.Edges[idx]
		if end.Rot == Rotate0 || end.Rot == Rotate180 {
			xMax = minF(xMax, maxF(clip, xMin))
		} else {
			yMax = minF(yMax, maxF(clip, yMin))
		}
	}
	return
}

func toFracRect(xMin, yMin, xMax, yMax, pageWidth, pageHeight float64) Rect {
	return Rect{X0: xMin / pageWidth, Y0: yMin / pageHeight, X1: xMax / pageWidth, Y1: yMax / pageHeight}
}

func nextLineGlobal(l *Line) *Line {
	if l == nil {
		return nil
	}
	if l.Next != nil {
		return l.Next
	}
	blk := l.Block
	for blk != nil && blk.Next != nil {
		blk = blk.Next
		if len(blk.Lines) > 0 {
			return blk.Lines[0]
		}
	}
	return nil
}

// GetSelectedText implements PDFTextLib's getSelectedText: walk words from
// (begin,bIdx) to (end,eIdx), concatenating text (raw or NFKC-normalized),
// inserting U+000A between lines, U+0020 where spaceAfter is set.
func (s *Selection) GetSelectedText(normalize bool) string {
	if s.selStart == nil || s.selEnd == nil {
		return ""
	}
	begin, bIdx, end, eIdx := orderedPair(s.selStart, s.selIdx1, s.selEnd, s.selIdx2)

	var out []rune
	curLine := begin.Line
	for w := begin; w != nil; w = nextWordGlobal(w) {
		if w.Line != curLine {
			out = append(out, '\n')
			curLine = w.Line
		}
		start := 0
		end_ := w.Len()
		if w == begin {
			start = bIdx
		}
		if w == end {
			end_ = eIdx
		}
		text := w.Text
		if normalize {
			text = w.Norm()
			// normalized length may differ from Len(); clamp indices.
			if start > len(text) {
				start = len(text)
			}
			if end_ > len(text) {
				end_ = len(text)
			}
		}
		if start < end_ {
			out = append(out, text[start:end_]...)
		}
		if w == end {
			if eIdx >= w.Len() && w.SpaceAfter {
				out = append(out, ' ')
			}
			break
		}
		if w.SpaceAfter {
			out = append(out, ' ')
		}
	}
	return string(out)
}
