package textpage

import "testing"

func TestFormBlocksGroupsParagraphLines(t *testing.T) {
	p := NewPool()
	p.Insert(makeWord("First", 0, 0, 50, 10, 0, 5))
	p.Insert(makeWord("Second", 12, 0, 60, 10, 5, 6))
	p.Insert(makeWord("Third", 24, 0, 50, 10, 11, 5))

	blocks := FormBlocks(p, Rotate0)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1 (all lines close enough to merge)", len(blocks))
	}
	if blocks[0].CharCount == 0 {
		t.Errorf("CharCount not populated")
	}
}

func TestFormBlocksSeparatesFarApartText(t *testing.T) {
	p := NewPool()
	p.Insert(makeWord("Near top", 0, 0, 50, 10, 0, 8))
	p.Insert(makeWord("Far below", 500, 0, 50, 10, 8, 9))

	blocks := FormBlocks(p, Rotate0)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2 (far apart text stays separate)", len(blocks))
	}
}

func TestFillBlockLineEnvelopesMonotone(t *testing.T) {
	l1 := &Line{XMin: 0, XMax: 10, YMin: 0, YMax: 5}
	l2 := &Line{XMin: 0, XMax: 10, YMin: 10, YMax: 15}
	l3 := &Line{XMin: 0, XMax: 10, YMin: 20, YMax: 25}
	lines := []*Line{l1, l2, l3}

	fillBlockLineEnvelopes(lines)

	if l2.YMaxPre < l1.YMax {
		t.Errorf("l2.YMaxPre = %v, want >= l1.YMax = %v", l2.YMaxPre, l1.YMax)
	}
	if l2.YMinPost > l3.YMin {
		t.Errorf("l2.YMinPost = %v, want <= l3.YMin = %v", l2.YMinPost, l3.YMin)
	}
}
