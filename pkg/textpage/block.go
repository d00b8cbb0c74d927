package textpage

// Block is a rectangular region of related lines treated as one reading
// unit (spec.md §3, §4.4 C4).
type Block struct {
	Lines []*Line

	XMin, YMin, XMax, YMax float64
	PriMin, PriMax         float64

	// Extended box, used by the reading-order sort (spec.md §4.5, §4.6).
	ExMin, ExMax, EyMin, EyMax float64

	TableId  int
	TableEnd bool

	Rot       Rotation
	FontSize  float64
	MinBase   float64
	MaxBase   float64
	CharCount int

	XMinPre, YMinPre, XMaxPre, YMaxPre     float64
	XMinPost, YMinPost, XMaxPost, YMaxPost float64

	Next, Prev *Block
}

func primaryRange(rot Rotation, w *Word) (lo, hi float64) {
	if rot == Rotate0 || rot == Rotate180 {
		return w.XMin, w.XMax
	}
	return w.YMin, w.YMax
}

// secondaryRange is primaryRange's complement: the word's bounds along the
// baseline axis rather than the advance axis.
func secondaryRange(rot Rotation, w *Word) (lo, hi float64) {
	if rot == Rotate0 || rot == Rotate180 {
		return w.YMin, w.YMax
	}
	return w.XMin, w.XMax
}

func rangesOverlap(lo1, hi1, lo2, hi2 float64) bool {
	return lo1 <= hi2 && lo2 <= hi1
}

// FormBlocks implements spec.md §4.4: while any words remain in pool,
// seed a block with the leftmost word in the first four non-empty baseline
// buckets and grow it through four expansion passes until a round makes no
// change, then coalesce its lines.
func FormBlocks(pool *Pool, rot Rotation) []*Block {
	var blocks []*Block
	for !pool.Empty() {
		blk := formOneBlock(pool, rot)
		if blk == nil {
			break
		}
		blocks = append(blocks, blk)
	}
	return blocks
}

func formOneBlock(pool *Pool, rot Rotation) *Block {
	seedBuckets := pool.FirstNonEmptyBuckets(4)
	seed, _, ok := pool.LeftmostAmong(seedBuckets)
	if !ok {
		return nil
	}
	pool.Remove(seed)

	blockPool := NewPool()
	blockPool.Insert(seed)

	fontSize := seed.FontSize
	minBase, maxBase := seed.Base, seed.Base
	priLo, priHi := primaryRange(rot, seed)

	for {
		changed := false

		// Above. minBase/maxBase are held fixed for the duration of this
		// pass (matching the reference engine's separate newMinBase
		// accumulator): a word absorbed early in the scan must not widen
		// the acceptance window for words considered later in the same
		// pass. The block's live primary-axis extent (priLo/priHi) does
		// update as words are absorbed, same as the reference engine's
		// block bbox.
		baseAbove := minBase
		newMinBase := minBase
		candLo, candHi := baseAbove-maxLineSpacingDelta*fontSize, baseAbove
		for _, w := range pool.WordsInBaseRange(candLo, candHi) {
			if w.Base >= baseAbove {
				continue
			}
			lo, hi := primaryRange(rot, w)
			if !rangesOverlap(lo, hi, priLo, priHi) {
				continue
			}
			if absF(w.FontSize-fontSize) >= maxBlockFontSizeDelta1*fontSize {
				continue
			}
			pool.Remove(w)
			blockPool.Insert(w)
			newMinBase = minF(newMinBase, w.Base)
			priLo, priHi = minF(priLo, lo), maxF(priHi, hi)
			changed = true
		}
		minBase = newMinBase

		// Below, mirroring Above.
		baseBelow := maxBase
		newMaxBase := maxBase
		candLo, candHi = baseBelow, baseBelow+maxLineSpacingDelta*fontSize
		for _, w := range pool.WordsInBaseRange(candLo, candHi) {
			if w.Base <= baseBelow {
				continue
			}
			lo, hi := primaryRange(rot, w)
			if !rangesOverlap(lo, hi, priLo, priHi) {
				continue
			}
			if absF(w.FontSize-fontSize) >= maxBlockFontSizeDelta1*fontSize {
				continue
			}
			pool.Remove(w)
			blockPool.Insert(w)
			newMaxBase = maxF(newMaxBase, w.Base)
			priLo, priHi = minF(priLo, lo), maxF(priHi, hi)
			changed = true
		}
		maxBase = newMaxBase

		// Overlap
		extLo, extHi := priLo-minColSpacing1*fontSize, priHi+minColSpacing1*fontSize
		candLo, candHi = minBase-maxIntraLineDelta*fontSize, maxBase+maxIntraLineDelta*fontSize
		for _, w := range pool.WordsInBaseRange(candLo, candHi) {
			lo, hi := primaryRange(rot, w)
			if !rangesOverlap(lo, hi, extLo, extHi) {
				continue
			}
			if absF(w.FontSize-fontSize) >= maxBlockFontSizeDelta2*fontSize {
				continue
			}
			pool.Remove(w)
			blockPool.Insert(w)
			minBase = minF(minBase, w.Base)
			maxBase = maxF(maxBase, w.Base)
			priLo, priHi = minF(priLo, lo), maxF(priHi, hi)
			changed = true
		}

		if !changed {
			// Sidebands: look just outside the block's primary-axis edges.
			sideChanged := absorbSidebands(pool, blockPool, rot, fontSize, &minBase, &maxBase, &priLo, &priHi)
			if !sideChanged {
				break
			}
		}
	}

	lines := CoalesceLines(blockPool, rot)
	blk := &Block{Rot: rot, FontSize: fontSize, MinBase: minBase, MaxBase: maxBase, TableId: -1}
	xMin, yMin := 1e18, 1e18
	xMax, yMax := -1e18, -1e18
	charCount := 0
	for _, l := range lines {
		l.Block = blk
		xMin, yMin = minF(xMin, l.XMin), minF(yMin, l.YMin)
		xMax, yMax = maxF(xMax, l.XMax), maxF(yMax, l.YMax)
		charCount += l.CharCount
	}
	linkLinesInBlock(lines)
	fillBlockLineEnvelopes(lines)
	blk.Lines = lines
	blk.XMin, blk.YMin, blk.XMax, blk.YMax = xMin, yMin, xMax, yMax
	blk.PriMin, blk.PriMax = priLo, priHi
	blk.CharCount = charCount
	return blk
}

// fillBlockLineEnvelopes fills each line's *Pre/*Post envelopes with the
// running min/max of the other lines' boxes within the same block, the
// line-granularity analogue of fillLineEnvelopes's word-level pass and of
// FillBlockEnvelopes's block-level pass (spec.md §3, "its own *Pre/*Post
// envelopes").
func fillBlockLineEnvelopes(lines []*Line) {
	preXMin, preYMin := 1e18, 1e18
	preXMax, preYMax := -1e18, -1e18
	for _, l := range lines {
		l.XMinPre, l.YMinPre, l.XMaxPre, l.YMaxPre = preXMin, preYMin, preXMax, preYMax
		preXMin, preYMin = minF(preXMin, l.XMin), minF(preYMin, l.YMin)
		preXMax, preYMax = maxF(preXMax, l.XMax), maxF(preYMax, l.YMax)
	}
	postXMin, postYMin := 1e18, 1e18
	postXMax, postYMax := -1e18, -1e18
	for i := len(lines) - 1; i >= 0; i-- {
		l := lines[i]
		l.XMinPost, l.YMinPost, l.XMaxPost, l.YMaxPost = postXMin, postYMin, postXMax, postYMax
		postXMin, postYMin = minF(postXMin, l.XMin), minF(postYMin, l.YMin)
		postXMax, postYMax = maxF(postXMax, l.XMax), maxF(postYMax, l.YMax)
	}
}

func linkLinesInBlock(lines []*Line) {
	for i, l := range lines {
		if i > 0 {
			l.Prev = lines[i-1]
			lines[i-1].Next = l
		}
	}
	if len(lines) > 0 {
		lines[0].Prev = nil
		lines[len(lines)-1].Next = nil
	}
}

// absorbSidebands implements spec.md §4.4 step 3's sideband clause: when a
// full round absorbed nothing, look for at most three words just outside
// each primary-axis edge within [0, minColSpacing2*fontSize) and pull them
// in if their font size is close enough.
func absorbSidebands(pool, blockPool *Pool, rot Rotation, fontSize float64, minBase, maxBase, priLo, priHi *float64) bool {
	band := pool.WordsInBaseRange(*minBase-maxIntraLineDelta*fontSize, *maxBase+maxIntraLineDelta*fontSize)

	var leftCands, rightCands []*Word
	for _, w := range band {
		lo, hi := primaryRange(rot, w)
		if hi < *priLo && *priLo-hi < minColSpacing2*fontSize {
			leftCands = append(leftCands, w)
		} else if lo > *priHi && lo-*priHi < minColSpacing2*fontSize {
			rightCands = append(rightCands, w)
		}
	}

	changed := false
	for _, cands := range [][]*Word{leftCands, rightCands} {
		if len(cands) == 0 || len(cands) > 3 {
			continue
		}
		for _, w := range cands {
			if absF(w.FontSize-fontSize) >= maxBlockFontSizeDelta3*fontSize {
				continue
			}
			pool.Remove(w)
			blockPool.Insert(w)
			lo, hi := primaryRange(rot, w)
			*priLo, *priHi = minF(*priLo, lo), maxF(*priHi, hi)
			*minBase = minF(*minBase, w.Base)
			*maxBase = maxF(*maxBase, w.Base)
			changed = true
		}
	}
	return changed
}
