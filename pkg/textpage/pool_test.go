package textpage

import "testing"

func wordAt(base, leading, trailing float64) *Word {
	return &Word{
		Text:  []rune("x"),
		Edges: []float64{leading, trailing},
		Base:  base,
		Rot:   Rotate0,
	}
}

func TestPoolInsertKeepsBucketSorted(t *testing.T) {
	p := NewPool()
	p.Insert(wordAt(10, 30, 40))
	p.Insert(wordAt(10, 10, 20))
	p.Insert(wordAt(10, 20, 30))

	words := p.Bucket(baseIdx(10))
	if len(words) != 3 {
		t.Fatalf("got %d words, want 3", len(words))
	}
	for i := 1; i < len(words); i++ {
		if words[i-1].PrimaryCmp(words[i]) > 0 {
			t.Errorf("bucket not sorted: %v before %v", words[i-1].Edges, words[i].Edges)
		}
	}
}

func TestPoolRemove(t *testing.T) {
	p := NewPool()
	w := wordAt(0, 0, 10)
	p.Insert(w)
	if p.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", p.Size())
	}
	p.Remove(w)
	if !p.Empty() {
		t.Errorf("Empty() = false after removing only word")
	}
}

func TestBaseIdxNegative(t *testing.T) {
	tests := []struct {
		base float64
		want int
	}{
		{0, 0},
		{3.9, 0},
		{4, 1},
		{-0.1, -1},
		{-4, -1},
		{-4.1, -2},
	}
	for _, tt := range tests {
		if got := baseIdx(tt.base); got != tt.want {
			t.Errorf("baseIdx(%v) = %d, want %d", tt.base, got, tt.want)
		}
	}
}

func TestFirstNonEmptyBucketsRespectsLimit(t *testing.T) {
	p := NewPool()
	for _, base := range []float64{0, 4, 8, 12, 16} {
		p.Insert(wordAt(base, 0, 10))
	}
	idxs := p.FirstNonEmptyBuckets(4)
	if len(idxs) != 4 {
		t.Fatalf("got %d buckets, want 4", len(idxs))
	}
	for i := 1; i < len(idxs); i++ {
		if idxs[i-1] >= idxs[i] {
			t.Errorf("buckets not ascending: %v", idxs)
		}
	}
}

func TestWordsInBaseRangeInclusive(t *testing.T) {
	p := NewPool()
	p.Insert(wordAt(0, 0, 10))
	p.Insert(wordAt(5, 0, 10))
	p.Insert(wordAt(10, 0, 10))

	got := p.WordsInBaseRange(0, 10)
	if len(got) != 3 {
		t.Fatalf("got %d words, want 3", len(got))
	}
	got = p.WordsInBaseRange(1, 9)
	if len(got) != 1 {
		t.Fatalf("got %d words, want 1", len(got))
	}
}
