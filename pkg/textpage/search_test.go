package textpage

import "testing"

func TestSearchSingleWordSubstring(t *testing.T) {
	words := []*Word{
		makeWord("Hello", 10, 0, 50, 10, 0, 5),
		makeWord("World", 10, 60, 110, 10, 5, 5),
	}
	words[0].SpaceAfter = true
	p := buildTestPage(t, words, 200, 200)

	results := p.Search([]string{"orl"}, MatchContains, false, false)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if string(results[0].Words[0].Text) != "World" {
		t.Errorf("matched word = %q, want World", string(results[0].Words[0].Text))
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	words := []*Word{makeWord("Hello", 10, 0, 50, 10, 0, 5)}
	p := buildTestPage(t, words, 200, 200)

	results := p.Search([]string{"hello"}, MatchEquals, false, false)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
}

func TestSearchMultiWordSequence(t *testing.T) {
	words := []*Word{
		makeWord("Hello", 10, 0, 50, 10, 0, 5),
		makeWord("World", 10, 60, 110, 10, 5, 5),
	}
	words[0].SpaceAfter = true
	p := buildTestPage(t, words, 200, 200)

	results := p.Search([]string{"Hello", "World"}, MatchEquals, false, true)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if len(results[0].Words) != 2 {
		t.Fatalf("got %d matched words, want 2", len(results[0].Words))
	}
}

func TestSearchMultiWordSequenceAcrossLineWrap(t *testing.T) {
	// Hello and World share an X range but their baselines are 12pt apart
	// (fontSize=10): farther than the intra-line band (maxIntraLineDelta*10
	// = 5) so they land in two lines, but closer than the block-merge band
	// (maxLineSpacingDelta*10 = 15) so they land in the same block. A match
	// starting on the last word of one line must continue onto the first
	// word of the next via Word.Next/Line.Next, not a single Line's slice.
	words := []*Word{
		makeWord("Hello", 10, 0, 50, 10, 0, 5),
		makeWord("World", 22, 0, 50, 10, 5, 5),
	}
	p := buildTestPage(t, words, 200, 200)

	results := p.Search([]string{"Hello", "World"}, MatchEquals, false, true)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if len(results[0].Words) != 2 {
		t.Fatalf("got %d matched words, want 2", len(results[0].Words))
	}
	if len(results[0].Rects) != 2 {
		t.Errorf("got %d rects, want 2 (one per line)", len(results[0].Rects))
	}
}

func TestSearchMultiWordMatchesMidWordBoundaries(t *testing.T) {
	// "lo wor" over "Hello world": the first matched word need only end
	// with the query's first token and the last matched word need only
	// start with the query's last token.
	words := []*Word{
		makeWord("Hello", 10, 0, 50, 10, 0, 5),
		makeWord("world", 10, 60, 110, 10, 5, 5),
	}
	words[0].SpaceAfter = true
	p := buildTestPage(t, words, 200, 200)

	results := p.Search([]string{"lo", "wor"}, MatchEquals, false, false)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if len(results[0].Words) != 2 {
		t.Fatalf("got %d matched words, want 2", len(results[0].Words))
	}
	if string(results[0].Words[0].Text) != "Hello" || string(results[0].Words[1].Text) != "world" {
		t.Errorf("matched words = %q, %q, want Hello, world",
			string(results[0].Words[0].Text), string(results[0].Words[1].Text))
	}
}

func TestSearchMultiWordRejectsPartialSequence(t *testing.T) {
	words := []*Word{
		makeWord("Hello", 10, 0, 50, 10, 0, 5),
		makeWord("Moon", 10, 60, 100, 10, 5, 4),
	}
	words[0].SpaceAfter = true
	p := buildTestPage(t, words, 200, 200)

	results := p.Search([]string{"Hello", "World"}, MatchEquals, false, true)
	if len(results) != 0 {
		t.Fatalf("got %d results, want 0 (second word doesn't match)", len(results))
	}
}

func TestContainsRunes(t *testing.T) {
	if !containsRunes([]rune("Hello"), []rune("ell")) {
		t.Errorf("containsRunes should find substring")
	}
	if containsRunes([]rune("Hi"), []rune("Hello")) {
		t.Errorf("containsRunes should not find a longer query")
	}
}
