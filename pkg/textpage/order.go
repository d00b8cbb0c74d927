package textpage

import "sort"

// ReadingOrderSort implements spec.md §4.6 (C6): blocks are first stably
// sorted by rotation-aware (primary, secondary) position, then a
// depth-first topological sort reorders them using Breuel's before-relation
// rules. The returned slice is also relinked via Block.Next/Prev.
func ReadingOrderSort(blocks []*Block, primaryRot Rotation, primaryLR bool) []*Block {
	if len(blocks) == 0 {
		return nil
	}

	sorted := append([]*Block(nil), blocks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		pa := primaryRot.PrimaryOf(a.XMin, a.YMin) * primaryRot.Sign()
		pb := primaryRot.PrimaryOf(b.XMin, b.YMin) * primaryRot.Sign()
		if pa != pb {
			return pa < pb
		}
		sa := primaryRot.SecondaryOf(a.XMin, a.YMin)
		sb := primaryRot.SecondaryOf(b.XMin, b.YMin)
		return sa < sb
	})

	n := len(sorted)
	index := make(map[*Block]int, n)
	for i, b := range sorted {
		index[b] = i
	}

	before := make([][]bool, n)
	for i := range before {
		before[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			before[i][j] = precedesRule1(sorted[i], sorted[j], primaryRot) ||
				precedesRuleTable(sorted[i], sorted[j], primaryLR)
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || before[i][j] {
				continue
			}
			if precedesRule2(sorted[i], sorted[j], before, i, j, n, primaryRot, primaryLR) {
				before[i][j] = true
			}
		}
	}

	visited := make([]bool, n)
	order := make([]*Block, 0, n)
	var visit func(i int)
	visit = func(i int) {
		if visited[i] {
			return
		}
		visited[i] = true
		for p := 0; p < n; p++ {
			if before[p][i] {
				visit(p)
			}
		}
		order = append(order, sorted[i])
	}
	for i := 0; i < n; i++ {
		visit(i)
	}

	for i, b := range order {
		if i > 0 {
			b.Prev = order[i-1]
			order[i-1].Next = b
		}
	}
	if len(order) > 0 {
		order[0].Prev = nil
		order[len(order)-1].Next = nil
	}
	return order
}

// precedesRule1: a and b overlap along the primary axis (same column/row)
// and a lies earlier on the secondary axis. Uses the extended box, not the
// raw box, so a block widened to touch a table envelope or a neighboring
// column is compared on the box the reading-order sort is meant to see.
func precedesRule1(a, b *Block, primaryRot Rotation) bool {
	aLo, aHi := primaryRot.PrimaryOf(a.ExMin, a.EyMin), primaryRot.PrimaryOf(a.ExMax, a.EyMax)
	bLo, bHi := primaryRot.PrimaryOf(b.ExMin, b.EyMin), primaryRot.PrimaryOf(b.ExMax, b.EyMax)
	if aLo > aHi {
		aLo, aHi = aHi, aLo
	}
	if bLo > bHi {
		bLo, bHi = bHi, bLo
	}
	if !rangesOverlap(aLo, aHi, bLo, bHi) {
		return false
	}
	aSec := primaryRot.SecondaryOf(a.ExMin, a.EyMin)
	bSec := primaryRot.SecondaryOf(b.ExMin, b.EyMin)
	return aSec < bSec
}

// precedesRuleTable: shared-table blocks order by reading-primary quadrant.
func precedesRuleTable(a, b *Block, primaryLR bool) bool {
	if a.TableId < 0 || a.TableId != b.TableId {
		return false
	}
	leftToRight := primaryLR
	if leftToRight {
		if a.XMax <= b.XMin && overlapsAxis(a.YMin, a.YMax, b.YMin, b.YMax) {
			return true
		}
	} else {
		if b.XMax <= a.XMin && overlapsAxis(a.YMin, a.YMax, b.YMin, b.YMax) {
			return true
		}
	}
	if a.YMax <= b.YMin {
		return true
	}
	return false
}

// precedesRule2: b lies in the reading direction of a, and no third block c
// satisfies Rule-1 with both a->c and c->b (preventing reading across an
// intervening column). Like precedesRule1, this reads the extended box, not
// the raw box; the axes are picked by primaryRot, and primaryLR additionally
// overrides the primary axis's sign, the same knob precedesRuleTable exposes
// for its own column-order check.
func precedesRule2(a, b *Block, before [][]bool, i, j, n int, primaryRot Rotation, primaryLR bool) bool {
	priSign := primaryRot.Sign()
	if !primaryLR {
		priSign = -priSign
	}

	aPriEnd := primaryRot.PrimaryOf(a.ExMax, a.EyMax) * priSign
	bPriStart := primaryRot.PrimaryOf(b.ExMin, b.EyMin) * priSign
	aSecEnd := primaryRot.SecondaryOf(a.ExMax, a.EyMax)
	bSecStart := primaryRot.SecondaryOf(b.ExMin, b.EyMin)
	if bPriStart < aPriEnd && bSecStart < aSecEnd {
		return false
	}

	aOrigin := primaryRot.PrimaryOf(a.ExMin, a.EyMin)*priSign + primaryRot.SecondaryOf(a.ExMin, a.EyMin)
	bOrigin := primaryRot.PrimaryOf(b.ExMin, b.EyMin)*priSign + primaryRot.SecondaryOf(b.ExMin, b.EyMin)
	if bOrigin <= aOrigin {
		return false
	}

	for k := 0; k < n; k++ {
		if k == i || k == j {
			continue
		}
		if before[i][k] && before[k][j] {
			return false
		}
	}
	return true
}

// FillBlockEnvelopes runs the block-level analogue of fillLineEnvelopes: one
// forward and one backward pass over blocks in reading order, filling
// Pre/Post running min/max.
func FillBlockEnvelopes(order []*Block) {
	preXMin, preYMin := 1e18, 1e18
	preXMax, preYMax := -1e18, -1e18
	for _, b := range order {
		b.XMinPre, b.YMinPre, b.XMaxPre, b.YMaxPre = preXMin, preYMin, preXMax, preYMax
		preXMin, preYMin = minF(preXMin, b.XMin), minF(preYMin, b.YMin)
		preXMax, preYMax = maxF(preXMax, b.XMax), maxF(preYMax, b.YMax)
	}

	postXMin, postYMin := 1e18, 1e18
	postXMax, postYMax := -1e18, -1e18
	for i := len(order) - 1; i >= 0; i-- {
		b := order[i]
		b.XMinPost, b.YMinPost, b.XMaxPost, b.YMaxPost = postXMin, postYMin, postXMax, postYMax
		postXMin, postYMin = minF(postXMin, b.XMin), minF(postYMin, b.YMin)
		postXMax, postYMax = maxF(postXMax, b.XMax), maxF(postYMax, b.YMax)
	}
}

// AssignGlyphIndices walks blocks->lines->words in reading order and
// assigns each word's Index = position in the concatenated glyph stream.
// Returns the total glyph count (page.totalGlyphs in spec.md §8).
func AssignGlyphIndices(order []*Block) int {
	idx := 0
	for _, b := range order {
		for _, l := range b.Lines {
			for _, w := range l.Words {
				w.Index = idx
				idx += w.Len()
				if w.SpaceAfter {
					idx++
				}
			}
		}
	}
	return idx
}
