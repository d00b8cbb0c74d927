package textpage

import "math"

// DetectTables implements spec.md §4.5 (C5): blocks whose four-corner
// alignment satisfies the correspondence test join a shared table id; every
// other block's extended box is widened toward its nearest vertically
// aligned neighbor.
func DetectTables(blocks []*Block, nextTableId *int) {
	for _, b1 := range blocks {
		b2 := nearestRightOverlapVertically(blocks, b1)
		b3 := nearestBelowOverlapHorizontally(blocks, b1)
		b4 := nearestRightAndBelow(blocks, b1)
		if b2 == nil || b3 == nil || b4 == nil {
			continue
		}
		if !validCorrespondenceQuad(b1, b2, b3, b4) {
			continue
		}
		scale := minFontSizeOf(b1, b2, b3, b4)
		horiz := alignTests(b1, b3, scale) + alignTests(b2, b4, scale)
		vert := alignTests(b1, b2, scale) + alignTests(b3, b4, scale)
		if horiz < 1 || vert < 1 {
			continue
		}
		joinTable(b1, b2, b3, b4, nextTableId)
	}

	byId := make(map[int][]*Block)
	for _, b := range blocks {
		if b.TableId >= 0 {
			byId[b.TableId] = append(byId[b.TableId], b)
		}
	}
	for _, members := range byId {
		applyTableEnvelope(members)
	}

	for _, b := range blocks {
		if b.TableId < 0 {
			widenExtendedBox(blocks, b)
		}
	}
}

func overlapsAxis(aLo, aHi, bLo, bHi float64) bool {
	return aLo <= bHi && bLo <= aHi
}

func nearestRightOverlapVertically(blocks []*Block, b1 *Block) *Block {
	var best *Block
	bestDist := math.MaxFloat64
	for _, c := range blocks {
		if c == b1 {
			continue
		}
		if c.XMin <= b1.XMax {
			continue
		}
		if !overlapsAxis(b1.YMin, b1.YMax, c.YMin, c.YMax) {
			continue
		}
		d := c.XMin - b1.XMax
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

func nearestBelowOverlapHorizontally(blocks []*Block, b1 *Block) *Block {
	var best *Block
	bestDist := math.MaxFloat64
	for _, c := range blocks {
		if c == b1 {
			continue
		}
		if c.YMin <= b1.YMax {
			continue
		}
		if !overlapsAxis(b1.XMin, b1.XMax, c.XMin, c.XMax) {
			continue
		}
		d := c.YMin - b1.YMax
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

func nearestRightAndBelow(blocks []*Block, b1 *Block) *Block {
	var best *Block
	bestDist := math.MaxFloat64
	for _, c := range blocks {
		if c == b1 {
			continue
		}
		if c.XMin <= b1.XMax || c.YMin <= b1.YMax {
			continue
		}
		dx, dy := c.XMin-b1.XMax, c.YMin-b1.YMax
		d := dx*dx + dy*dy
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

func validCorrespondenceQuad(b1, b2, b3, b4 *Block) bool {
	if !overlapsAxis(b2.XMin, b2.XMax, b3.XMin, b3.XMax) && !overlapsAxis(b2.YMin, b2.YMax, b3.YMin, b3.YMax) {
		return false
	}
	if !overlapsAxis(b4.XMin, b4.XMax, b3.XMin, b3.XMax) && !overlapsAxis(b4.YMin, b4.YMax, b2.YMin, b2.YMax) {
		return false
	}
	disjointFromB2X := b4.XMax < b2.XMin || b4.XMin > b2.XMax
	disjointFromB3Y := b4.YMax < b3.YMin || b4.YMin > b3.YMax
	if !disjointFromB2X && !disjointFromB3Y {
		return false
	}
	return true
}

func minFontSizeOf(blocks ...*Block) float64 {
	m := blocks[0].FontSize
	for _, b := range blocks[1:] {
		m = minF(m, b.FontSize)
	}
	return m
}

func centerX(b *Block) float64 { return (b.XMin + b.XMax) / 2 }
func centerY(b *Block) float64 { return (b.YMin + b.YMax) / 2 }

// alignTests scores how many of the six corner-alignment tests pass between
// a and b, each scaled by scale.
func alignTests(a, b *Block, scale float64) int {
	score := 0
	if absF(centerX(a)-centerX(b)) < scale {
		score++
	}
	if absF(centerY(a)-centerY(b)) < scale {
		score++
	}
	if absF(a.XMin-b.XMin) < scale {
		score++
	}
	if absF(a.XMax-b.XMax) < scale {
		score++
	}
	if absF(a.YMin-b.YMin) < scale {
		score++
	}
	if absF(a.YMax-b.YMax) < scale {
		score++
	}
	return score
}

func joinTable(b1, b2, b3, b4 *Block, nextTableId *int) {
	maxId := -1
	for _, b := range []*Block{b1, b2, b3, b4} {
		if b.TableId > maxId {
			maxId = b.TableId
		}
	}
	if maxId < 0 {
		maxId = *nextTableId
		*nextTableId++
	}
	b1.TableId, b2.TableId, b3.TableId, b4.TableId = maxId, maxId, maxId, maxId
}

func applyTableEnvelope(members []*Block) {
	xMin, yMin := 1e18, 1e18
	xMax, yMax := -1e18, -1e18
	for _, b := range members {
		xMin, yMin = minF(xMin, b.XMin), minF(yMin, b.YMin)
		xMax, yMax = maxF(xMax, b.XMax), maxF(yMax, b.YMax)
	}
	endBlock := members[0]
	for _, b := range members[1:] {
		if b.Rot.Sign() >= 0 {
			if b.XMax+b.YMax > endBlock.XMax+endBlock.YMax {
				endBlock = b
			}
		} else {
			if b.XMin+b.YMin < endBlock.XMin+endBlock.YMin {
				endBlock = b
			}
		}
	}
	for _, b := range members {
		b.ExMin, b.EyMin, b.ExMax, b.EyMax = xMin, yMin, xMax, yMax
		b.TableEnd = b == endBlock
	}
}

func widenExtendedBox(blocks []*Block, b *Block) {
	b.ExMin, b.EyMin, b.ExMax, b.EyMax = b.XMin, b.YMin, b.XMax, b.YMax

	var leftNeighbor, rightNeighbor *Block
	leftDist, rightDist := math.MaxFloat64, math.MaxFloat64
	for _, c := range blocks {
		if c == b || c.Rot != b.Rot {
			continue
		}
		if !overlapsAxis(b.YMin, b.YMax, c.YMin, c.YMax) {
			continue
		}
		if c.XMax <= b.XMin {
			if crossesIntervening(blocks, b, c, true) {
				continue
			}
			d := b.XMin - c.XMax
			if d < leftDist {
				leftDist = d
				leftNeighbor = c
			}
		} else if c.XMin >= b.XMax {
			if crossesIntervening(blocks, b, c, false) {
				continue
			}
			d := c.XMin - b.XMax
			if d < rightDist {
				rightDist = d
				rightNeighbor = c
			}
		}
	}

	if leftNeighbor != nil {
		b.ExMin = leftNeighbor.XMax
	} else {
		b.ExMin = math.Inf(-1)
	}
	if rightNeighbor != nil {
		b.ExMax = rightNeighbor.XMin
	} else {
		b.ExMax = math.Inf(1)
	}
}

// crossesIntervening reports whether some third block sits strictly between
// b and candidate on the given side and ends (yMin) above b's yMax,
// meaning widening toward candidate would cross it.
func crossesIntervening(blocks []*Block, b, candidate *Block, left bool) bool {
	for _, c := range blocks {
		if c == b || c == candidate {
			continue
		}
		if c.YMin > b.YMax {
			continue
		}
		if left {
			if c.XMax > candidate.XMax && c.XMax < b.XMin {
				return true
			}
		} else {
			if c.XMin < candidate.XMin && c.XMin > b.XMax {
				return true
			}
		}
	}
	return false
}
