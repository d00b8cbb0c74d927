package textpage

import "testing"

func makeWord(text string, base, leading, trailing, fontSize float64, charPos, charLen int) *Word {
	runes := []rune(text)
	edges := make([]float64, len(runes)+1)
	step := (trailing - leading) / float64(len(runes))
	for i := range edges {
		edges[i] = leading + float64(i)*step
	}
	return &Word{
		Text:     runes,
		Edges:    edges,
		Base:     base,
		Rot:      Rotate0,
		FontSize: fontSize,
		XMin:     leading, XMax: trailing,
		YMin: base - fontSize/2, YMax: base + fontSize/2,
		CharPos: charPos, CharLen: charLen,
	}
}

func TestRemoveDuplicatesDropsFakeBold(t *testing.T) {
	p := NewPool()
	original := makeWord("Bold", 100, 0, 40, 10, 0, 4)
	shadow := makeWord("Bold", 100.05, 0.05, 40.05, 10, 0, 4)
	p.Insert(original)
	p.Insert(shadow)

	removeDuplicates(p, Rotate0)

	if p.Size() != 1 {
		t.Fatalf("Size() = %d after dedup, want 1", p.Size())
	}
}

func TestRemoveDuplicatesKeepsDistinctText(t *testing.T) {
	p := NewPool()
	a := makeWord("foo", 100, 0, 40, 10, 0, 3)
	b := makeWord("bar", 100, 50, 90, 10, 3, 3)
	p.Insert(a)
	p.Insert(b)

	removeDuplicates(p, Rotate0)

	if p.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", p.Size())
	}
}

func TestRemoveDuplicatesRotatedAxesUseSwappedThresholds(t *testing.T) {
	p := NewPool()
	// Rotate90: Y is the primary (advance) axis, X is the secondary
	// (baseline) axis. The shadow's X bounds are offset by 1.5 (within
	// secDelta=0.2*10=2.0 but outside priDelta=0.1*10=1.0), and its Y
	// bounds are offset by 0.05 (within priDelta). A rotation-unaware
	// comparison that checks every bound against priDelta would reject
	// this as too far apart on X and fail to dedup it.
	original := &Word{
		Text: []rune("Bold"), Edges: []float64{0, 10, 20, 30, 40},
		Base: 10, Rot: Rotate90, FontSize: 10,
		XMin: 10, XMax: 10, YMin: 0, YMax: 40,
	}
	shadow := &Word{
		Text: []rune("Bold"), Edges: []float64{0, 10, 20, 30, 40},
		Base: 11.5, Rot: Rotate90, FontSize: 10,
		XMin: 11.5, XMax: 11.5, YMin: 0.05, YMax: 40.05,
	}
	p.Insert(original)
	p.Insert(shadow)

	removeDuplicates(p, Rotate90)

	if p.Size() != 1 {
		t.Fatalf("Size() = %d after dedup, want 1", p.Size())
	}
}

func TestExtractLinesGroupsByBaseline(t *testing.T) {
	p := NewPool()
	p.Insert(makeWord("one", 0, 0, 30, 10, 0, 3))
	p.Insert(makeWord("two", 0, 40, 70, 10, 3, 3))
	p.Insert(makeWord("three", 50, 0, 30, 10, 6, 5))

	lines := CoalesceLines(p, Rotate0)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, l := range lines {
		if len(l.Words) == 0 {
			t.Errorf("line has no words")
		}
	}
}

func TestCoalesceLineSpacingMergesContiguousSameFont(t *testing.T) {
	font := FontRef{}
	a := makeWord("Hel", 0, 0, 30, 10, 0, 3)
	b := makeWord("lo", 0, 30.01, 50, 10, 3, 2)
	a.Font, b.Font = font, font
	line := &Line{Rot: Rotate0, Words: []*Word{a, b}}

	coalesceLineSpacing(line)

	if len(line.Words) != 1 {
		t.Fatalf("got %d words after coalesce, want 1 (merged)", len(line.Words))
	}
	if string(line.Words[0].Text) != "Hello" {
		t.Errorf("merged text = %q, want %q", string(line.Words[0].Text), "Hello")
	}
}

func TestCoalesceLineSpacingMarksSpaceOnWideGap(t *testing.T) {
	a := makeWord("Hello", 0, 0, 50, 10, 0, 5)
	b := makeWord("World", 0, 55, 105, 10, 10, 5)
	line := &Line{Rot: Rotate0, Words: []*Word{a, b}}

	coalesceLineSpacing(line)

	if len(line.Words) != 2 {
		t.Fatalf("got %d words, want 2 (not merged)", len(line.Words))
	}
	if !line.Words[0].SpaceAfter {
		t.Errorf("SpaceAfter = false, want true for a wide gap")
	}
}

func TestFillLineEnvelopesMonotone(t *testing.T) {
	a := makeWord("a", 0, 0, 10, 10, 0, 1)
	b := makeWord("b", 0, 10, 20, 10, 1, 1)
	c := makeWord("c", 0, 20, 30, 10, 2, 1)
	line := &Line{Rot: Rotate0, Words: []*Word{a, b, c}}

	fillLineEnvelopes(line)

	if b.XMaxPre < a.XMax {
		t.Errorf("b.XMaxPre = %v, want >= a.XMax = %v", b.XMaxPre, a.XMax)
	}
	if b.XMinPost > c.XMin {
		t.Errorf("b.XMinPost = %v, want <= c.XMin = %v", b.XMinPost, c.XMin)
	}
}
