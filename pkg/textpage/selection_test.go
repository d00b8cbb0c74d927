package textpage

import "testing"

// buildTestPage runs the full pipeline over a small set of words so
// selection/search tests exercise the real envelope wiring rather than a
// hand-built Block graph.
func buildTestPage(t *testing.T, words []*Word, width, height float64) *Page {
	t.Helper()
	pool := NewPool()
	for _, w := range words {
		pool.Insert(w)
	}
	blocks := FormBlocks(pool, Rotate0)
	nextID := 0
	DetectTables(blocks, &nextID)
	order := ReadingOrderSort(blocks, Rotate0, true)
	FillBlockEnvelopes(order)
	AssignGlyphIndices(order)

	p := &Page{Width: width, Height: height, Blocks: order}
	p.sel = NewSelection(p)
	p.phase = phaseQueryable
	return p
}

func twoWordLine() []*Word {
	hello := makeWord("Hello", 10, 0, 50, 10, 0, 5)
	world := makeWord("World", 10, 55, 105, 10, 5, 5)
	hello.SpaceAfter = true
	return []*Word{hello, world}
}

func TestStartSelectionPicksNearestWord(t *testing.T) {
	p := buildTestPage(t, twoWordLine(), 200, 200)
	p.sel.StartSelection(25.0/200, 10.0/200)
	if p.sel.selStart == nil {
		t.Fatal("selStart is nil")
	}
	if string(p.sel.selStart.Text) != "Hello" {
		t.Errorf("selStart = %q, want Hello", string(p.sel.selStart.Text))
	}
}

func TestSelectedTextSingleWord(t *testing.T) {
	solo := makeWord("Hello", 10, 0, 50, 10, 0, 5)
	p := buildTestPage(t, []*Word{solo}, 200, 200)
	p.sel.StartSelection(5.0/200, 10.0/200)
	p.sel.MoveSelEndTo(55.0/200, 10.0/200)

	text := p.sel.GetSelectedText(false)
	if text != "Hello" {
		t.Errorf("GetSelectedText() = %q, want %q", text, "Hello")
	}
}

func TestSelectedTextAcrossWords(t *testing.T) {
	p := buildTestPage(t, twoWordLine(), 200, 200)
	p.sel.StartSelection(5.0/200, 10.0/200)
	p.sel.MoveSelEndTo(115.0/200, 10.0/200)

	text := p.sel.GetSelectedText(false)
	if text != "Hello World" {
		t.Errorf("GetSelectedText() = %q, want %q", text, "Hello World")
	}
}

func TestCalIdxClampsToWordBounds(t *testing.T) {
	w := makeWord("Hello", 0, 0, 50, 10, 0, 5)
	if idx := calIdx(-100, 0, w); idx != 0 {
		t.Errorf("calIdx before word start = %d, want 0", idx)
	}
	if idx := calIdx(1000, 0, w); idx != w.Len() {
		t.Errorf("calIdx after word end = %d, want %d", idx, w.Len())
	}
}

func TestRectDist(t *testing.T) {
	if d := rectDist(0, 0, 10, 10, 5, 5); d != 0 {
		t.Errorf("rectDist inside box = %v, want 0", d)
	}
	if d := rectDist(0, 0, 10, 10, 20, 5); d != 10 {
		t.Errorf("rectDist outside box = %v, want 10", d)
	}
}
