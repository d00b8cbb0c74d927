package textpage

import (
	"strings"
	"testing"
)

func glyphEventFor(text string, x, y, fontSize float64) GlyphEvent {
	r := []rune(text)
	return GlyphEvent{
		X: x, Y: y,
		DX: fontSize * float64(len(r)) * 0.6,
		W1: fontSize * 0.6, H1: fontSize,
		Runes:   r,
		ByteLen: len(text),
		CTM:     Identity(),
		FontMatrix: Matrix{A: 1, D: -1},
		FontSize:   fontSize,
		Font:       &FontInfo{Name: "Test"},
	}
}

func TestPageFeedAndCoalesceProducesWords(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PageWidth = 600
	cfg.PageHeight = 800
	p := NewPage(cfg)

	x := 0.0
	for _, r := range "Hi" {
		ev := glyphEventFor(string(r), x, 700, 12)
		if err := p.Feed(ev); err != nil {
			t.Fatalf("Feed: %v", err)
		}
		x += ev.W1
	}

	if err := p.Coalesce(); err != nil {
		t.Fatalf("Coalesce: %v", err)
	}
	if len(p.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(p.Blocks))
	}
	text := p.AllText(false)
	if text != "Hi" {
		t.Errorf("AllText() = %q, want %q", text, "Hi")
	}
}

func TestPageFeedAfterCoalesceRejected(t *testing.T) {
	p := NewPage(DefaultConfig())
	if err := p.Coalesce(); err != nil {
		t.Fatalf("Coalesce: %v", err)
	}
	if err := p.Feed(glyphEventFor("x", 0, 0, 10)); err == nil {
		t.Errorf("Feed after Coalesce should error")
	}
}

func TestPageQueryBeforeCoalesceRejected(t *testing.T) {
	p := NewPage(DefaultConfig())
	if _, err := p.TotalGlyphs(); err == nil {
		t.Errorf("TotalGlyphs before Coalesce should error")
	}
}

func TestDumpPhysicalLayoutWritesLines(t *testing.T) {
	words := []*Word{makeWord("Hello", 10, 0, 50, 10, 0, 5)}
	p := buildTestPage(t, words, 200, 200)

	var sb strings.Builder
	if err := p.DumpPhysicalLayout(&sb); err != nil {
		t.Fatalf("DumpPhysicalLayout: %v", err)
	}
	if !strings.Contains(sb.String(), "Hello") {
		t.Errorf("dump = %q, want it to contain Hello", sb.String())
	}
}
