package textpage

import "testing"

// blockAt builds a block whose extended box defaults to its raw box (i.e.
// DetectTables never widened it). Tests exercising a widened extended box
// set ExMin/ExMax/EyMin/EyMax explicitly after construction.
func blockAt(xMin, yMin, xMax, yMax float64) *Block {
	return &Block{
		XMin: xMin, YMin: yMin, XMax: xMax, YMax: yMax,
		ExMin: xMin, EyMin: yMin, ExMax: xMax, EyMax: yMax,
		TableId: -1,
	}
}

func TestReadingOrderSortTopToBottom(t *testing.T) {
	bottom := blockAt(0, 100, 50, 120)
	top := blockAt(0, 0, 50, 20)
	middle := blockAt(0, 50, 50, 70)

	order := ReadingOrderSort([]*Block{bottom, top, middle}, Rotate0, true)
	if len(order) != 3 {
		t.Fatalf("got %d blocks, want 3", len(order))
	}
	if order[0] != top || order[1] != middle || order[2] != bottom {
		t.Errorf("reading order wrong: got %v, %v, %v", order[0].YMin, order[1].YMin, order[2].YMin)
	}
}

func TestReadingOrderSortLinksNextPrev(t *testing.T) {
	a := blockAt(0, 0, 50, 20)
	b := blockAt(0, 30, 50, 50)
	order := ReadingOrderSort([]*Block{a, b}, Rotate0, true)

	if order[0].Next != order[1] {
		t.Errorf("Next not linked")
	}
	if order[1].Prev != order[0] {
		t.Errorf("Prev not linked")
	}
	if order[0].Prev != nil || order[1].Next != nil {
		t.Errorf("boundary Next/Prev should be nil")
	}
}

func TestReadingOrderSortColumns(t *testing.T) {
	leftCol := blockAt(0, 0, 50, 100)
	rightCol := blockAt(60, 0, 110, 100)

	order := ReadingOrderSort([]*Block{rightCol, leftCol}, Rotate0, true)
	if order[0] != leftCol {
		t.Errorf("left column should come first in left-to-right reading order")
	}
}

func TestReadingOrderSortColumnsRightToLeft(t *testing.T) {
	leftCol := blockAt(0, 0, 50, 100)
	rightCol := blockAt(60, 0, 110, 100)

	order := ReadingOrderSort([]*Block{leftCol, rightCol}, Rotate0, false)
	if order[0] != rightCol {
		t.Errorf("right column should come first when primaryLR is false")
	}
}

func TestReadingOrderSortColumnsRotated90(t *testing.T) {
	// Rotate90: the primary axis is Y. Two blocks stacked along Y with
	// disjoint ranges and fully overlapping X should order by Y the same
	// way Rotate0 orders disjoint X ranges by X.
	first := blockAt(0, 0, 100, 50)
	second := blockAt(0, 60, 100, 110)

	order := ReadingOrderSort([]*Block{second, first}, Rotate90, true)
	if order[0] != first {
		t.Errorf("block with smaller Y should come first under Rotate90")
	}
}

func TestReadingOrderSortUsesExtendedBoxNotRawBox(t *testing.T) {
	// A and B's raw boxes don't overlap on X at all (A sits far right, B far
	// left), which would make a raw-box rule1 miss their shared-column
	// relationship and fall through to rule2, landing B before A - wrong,
	// since A is the top block. Their extended boxes (as DetectTables'
	// table envelope would set them) agree on X, so a correct rule1 fires
	// on EyMin and orders A (smaller EyMin) before B.
	a := blockAt(60, 0, 100, 20)
	b := blockAt(0, 30, 20, 50)
	a.ExMin, a.ExMax, a.EyMin, a.EyMax = 0, 100, 0, 20
	b.ExMin, b.ExMax, b.EyMin, b.EyMax = 0, 100, 30, 50

	order := ReadingOrderSort([]*Block{a, b}, Rotate0, true)
	if order[0] != a || order[1] != b {
		t.Errorf("reading order should follow the extended box (A before B), got order[0].ExMin=%v", order[0].ExMin)
	}
}

func TestAssignGlyphIndicesIsMonotone(t *testing.T) {
	w1 := &Word{Text: []rune("ab"), SpaceAfter: true}
	w2 := &Word{Text: []rune("cd")}
	line := &Line{Words: []*Word{w1, w2}}
	block := &Block{Lines: []*Line{line}}

	total := AssignGlyphIndices([]*Block{block})
	if w1.Index != 0 {
		t.Errorf("w1.Index = %d, want 0", w1.Index)
	}
	if w2.Index != 3 {
		t.Errorf("w2.Index = %d, want 3", w2.Index)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
}

func TestFillBlockEnvelopesMonotone(t *testing.T) {
	a := blockAt(0, 0, 10, 10)
	b := blockAt(0, 20, 10, 30)
	c := blockAt(0, 40, 10, 50)
	order := []*Block{a, b, c}

	FillBlockEnvelopes(order)

	if b.YMaxPre < a.YMax {
		t.Errorf("b.YMaxPre = %v, want >= a.YMax = %v", b.YMaxPre, a.YMax)
	}
	if b.YMinPost > c.YMin {
		t.Errorf("b.YMinPost = %v, want <= c.YMin = %v", b.YMinPost, c.YMin)
	}
}
