package textpage

import "sort"

// Line is an ordered list of words sharing a baseline band (spec.md §3, §4.3
// C3). Words are doubly linked via Word.Next/Prev for traversal by the
// selection and search engines.
type Line struct {
	Words []*Word

	XMin, YMin, XMax, YMax float64
	Rot                    Rotation
	CharCount              int

	XMinPre, YMinPre, XMaxPre, YMaxPre     float64
	XMinPost, YMinPost, XMaxPost, YMaxPost float64

	Underlined bool

	Next, Prev *Line
	Block      *Block
}

// CmpYX orders two lines the way consecutive lines in a block must compare:
// by baseline along the rotation's secondary axis.
func (l *Line) CmpYX(other *Line) int {
	a := l.Rot.SecondaryOf(l.XMin, l.YMin)
	b := l.Rot.SecondaryOf(other.XMin, other.YMin)
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// removeDuplicates implements spec.md §4.3 step 1: for every word w, any
// later word whose four bounds differ by less than the rotation-appropriate
// thresholds is removed (fake bold, drop shadows). The primary-axis bounds
// (the advance axis) are compared against dupMaxPriDelta and the
// secondary-axis bounds (the baseline axis) against dupMaxSecDelta; for
// Rotate90/Rotate270 the primary axis is Y and the secondary axis is X, so
// which pair of XMin/XMax/YMin/YMax bounds plays which role flips relative
// to Rotate0/Rotate180.
func removeDuplicates(pool *Pool, rot Rotation) {
	words := pool.All()
	sort.Slice(words, func(i, j int) bool { return words[i].Base < words[j].Base })

	dead := make(map[*Word]bool)
	for i, w0 := range words {
		if dead[w0] {
			continue
		}
		priDelta := dupMaxPriDelta * w0.FontSize
		secDelta := dupMaxSecDelta * w0.FontSize
		pLo0, pHi0 := primaryRange(rot, w0)
		sLo0, sHi0 := secondaryRange(rot, w0)
		for j := i + 1; j < len(words); j++ {
			w1 := words[j]
			if w1.Base-w0.Base > secDelta {
				break
			}
			if dead[w1] || w1 == w0 {
				continue
			}
			if absF(w1.Base-w0.Base) >= secDelta {
				continue
			}
			if !sameRunes(w0.Text, w1.Text) {
				continue
			}
			pLo1, pHi1 := primaryRange(rot, w1)
			sLo1, sHi1 := secondaryRange(rot, w1)
			if absF(pLo0-pLo1) < priDelta && absF(pHi0-pHi1) < priDelta &&
				absF(sLo0-sLo1) < secDelta && absF(sHi0-sHi1) < secDelta {
				dead[w1] = true
			}
		}
	}
	for w := range dead {
		pool.Remove(w)
	}
}

func sameRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// extractLines implements spec.md §4.3 step 2: repeatedly seed a line with
// the leftmost word among the first four non-empty baseline buckets, then
// greedily absorb the leftmost remaining word within the intra-line
// baseline band and an acceptable primary-axis gap.
func extractLines(pool *Pool, rot Rotation) []*Line {
	var lines []*Line
	for !pool.Empty() {
		seedBuckets := pool.FirstNonEmptyBuckets(4)
		seed, _, ok := pool.LeftmostAmong(seedBuckets)
		if !ok {
			break
		}
		pool.Remove(seed)
		line := &Line{Rot: rot, Words: []*Word{seed}}
		last := seed

		for {
			fontSize := last.FontSize
			candidates := pool.WordsWithinSecondary(seed.Base, maxIntraLineDelta*fontSize)
			var best *Word
			bestGap := 0.0
			for _, cand := range candidates {
				gap := (cand.primaryLeading() - last.primaryTrailing()) * rot.Sign()
				if gap < minCharSpacing*fontSize || gap >= maxWordSpacing*fontSize {
					continue
				}
				if best == nil || cand.PrimaryCmp(best) < 0 {
					best = cand
					bestGap = gap
				}
			}
			_ = bestGap
			if best == nil {
				break
			}
			pool.Remove(best)
			line.Words = append(line.Words, best)
			last = best
		}

		coalesceLineSpacing(line)
		fillLineEnvelopes(line)
		linkLineWords(line)
		lines = append(lines, line)
	}
	return lines
}

// coalesceLineSpacing implements spec.md §4.3 step 3: decide, for each
// adjacent pair of words in a line, whether to mark a space, merge, or leave
// them separate.
func coalesceLineSpacing(line *Line) {
	if len(line.Words) == 0 {
		return
	}
	fontSize := line.Words[0].FontSize

	minSpace := -1.0
	for i := 1; i < len(line.Words); i++ {
		a, b := line.Words[i-1], line.Words[i]
		if a.Len() != 1 || b.Len() != 1 {
			continue
		}
		gap := (b.primaryLeading() - a.primaryTrailing()) * line.Rot.Sign()
		if gap > 0 && (minSpace < 0 || gap < minSpace) {
			minSpace = gap
		}
	}

	var threshold float64
	if minSpace > 0 {
		threshold = minF(maxWideCharSpacingMul*minSpace, maxWideCharSpacing*fontSize)
	} else {
		threshold = maxCharSpacing * fontSize
	}

	merged := line.Words[:1]
	for i := 1; i < len(line.Words); i++ {
		prev := merged[len(merged)-1]
		cur := line.Words[i]
		gap := (cur.primaryLeading() - prev.primaryTrailing()) * line.Rot.Sign()

		sameFontSize := absF(cur.FontSize-prev.FontSize) < maxWordFontSizeDelta*prev.FontSize
		contiguous := prev.CharPos+prev.CharLen == cur.CharPos
		sameFont := prev.Font.SameIdentity(cur.Font)

		switch {
		case gap >= threshold:
			prev.SpaceAfter = true
			merged = append(merged, cur)
		case sameFont && sameFontSize && contiguous:
			mergeWordInto(prev, cur)
		default:
			prev.SpaceAfter = false
			merged = append(merged, cur)
		}
	}
	line.Words = merged
}

func mergeWordInto(dst, src *Word) {
	dst.Text = append(dst.Text, src.Text...)
	lastEdge := dst.Edges[len(dst.Edges)-1]
	offset := lastEdge - src.Edges[0]
	for _, e := range src.Edges[1:] {
		dst.Edges = append(dst.Edges, e+offset)
	}
	dst.XMin = minF(dst.XMin, src.XMin)
	dst.YMin = minF(dst.YMin, src.YMin)
	dst.XMax = maxF(dst.XMax, src.XMax)
	dst.YMax = maxF(dst.YMax, src.YMax)
	dst.CharLen += src.CharLen
}

func linkLineWords(line *Line) {
	for i, w := range line.Words {
		w.Line = line
		if i > 0 {
			w.Prev = line.Words[i-1]
			line.Words[i-1].Next = w
		}
	}
	if len(line.Words) > 0 {
		line.Words[0].Prev = nil
		line.Words[len(line.Words)-1].Next = nil
	}
}

// fillLineEnvelopes implements spec.md §4.3 step 4: one forward and one
// backward pass filling Pre/Post running min/max of the tight boxes.
func fillLineEnvelopes(line *Line) {
	if len(line.Words) == 0 {
		return
	}
	xMin, yMin := 1e18, 1e18
	xMax, yMax := -1e18, -1e18
	for _, w := range line.Words {
		xMin, yMin = minF(xMin, w.XMin), minF(yMin, w.YMin)
		xMax, yMax = maxF(xMax, w.XMax), maxF(yMax, w.YMax)
	}
	line.XMin, line.YMin, line.XMax, line.YMax = xMin, yMin, xMax, yMax

	preXMin, preYMin := 1e18, 1e18
	preXMax, preYMax := -1e18, -1e18
	for _, w := range line.Words {
		w.XMinPre, w.YMinPre, w.XMaxPre, w.YMaxPre = preXMin, preYMin, preXMax, preYMax
		preXMin, preYMin = minF(preXMin, w.XMin), minF(preYMin, w.YMin)
		preXMax, preYMax = maxF(preXMax, w.XMax), maxF(preYMax, w.YMax)
	}

	postXMin, postYMin := 1e18, 1e18
	postXMax, postYMax := -1e18, -1e18
	for i := len(line.Words) - 1; i >= 0; i-- {
		w := line.Words[i]
		w.XMinPost, w.YMinPost, w.XMaxPost, w.YMaxPost = postXMin, postYMin, postXMax, postYMax
		postXMin, postYMin = minF(postXMin, w.XMin), minF(postYMin, w.YMin)
		postXMax, postYMax = maxF(postXMax, w.XMax), maxF(postYMax, w.YMax)
	}

	charCount := 0
	for _, w := range line.Words {
		charCount += w.Len()
		if w.SpaceAfter {
			charCount++
		}
	}
	line.CharCount = charCount
}

// CoalesceLines runs the full line-coalescing pipeline (steps 1-4) over a
// block-scoped pool and returns the resulting lines, ordered by extraction.
func CoalesceLines(pool *Pool, rot Rotation) []*Line {
	removeDuplicates(pool, rot)
	return extractLines(pool, rot)
}
