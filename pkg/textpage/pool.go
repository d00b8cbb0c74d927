package textpage

// Pool is a bucketed, ordered container of words keyed by baseline, one pool
// per rotation, used before lines exist (spec.md §4.2, C2). The reference
// engine grows a fixed-size bucket array in blocks of 128 entries; a Go map
// keyed by bucket index gives the same amortized behavior with none of the
// manual resizing, so that is the implementation here.
type Pool struct {
	buckets map[int][]*Word

	// cursor accelerates near-in-order appends by remembering the last
	// bucket and position a word was inserted at.
	cursorBucket int
	cursorPos    int

	size int
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{buckets: make(map[int][]*Word)}
}

func baseIdx(base float64) int {
	idx := int(base / textPoolStep)
	if float64(idx)*textPoolStep > base {
		idx--
	}
	return idx
}

// Insert adds a word to its baseline bucket, keeping the bucket sorted
// ascending by PrimaryCmp.
func (p *Pool) Insert(w *Word) {
	idx := baseIdx(w.Base)
	bucket := p.buckets[idx]

	pos := len(bucket)
	if idx == p.cursorBucket && p.cursorPos <= len(bucket) {
		pos = p.cursorPos
		for pos > 0 && bucket[pos-1].PrimaryCmp(w) > 0 {
			pos--
		}
		for pos < len(bucket) && bucket[pos].PrimaryCmp(w) < 0 {
			pos++
		}
	} else {
		lo, hi := 0, len(bucket)
		for lo < hi {
			mid := (lo + hi) / 2
			if bucket[mid].PrimaryCmp(w) < 0 {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		pos = lo
	}

	bucket = append(bucket, nil)
	copy(bucket[pos+1:], bucket[pos:])
	bucket[pos] = w
	p.buckets[idx] = bucket

	p.cursorBucket = idx
	p.cursorPos = pos + 1
	p.size++
}

// Remove deletes w from its bucket; it is a no-op if w is not present.
func (p *Pool) Remove(w *Word) {
	idx := baseIdx(w.Base)
	bucket := p.buckets[idx]
	for i, cand := range bucket {
		if cand == w {
			p.buckets[idx] = append(bucket[:i], bucket[i+1:]...)
			p.size--
			return
		}
	}
}

// Size returns the total number of words in the pool.
func (p *Pool) Size() int {
	return p.size
}

// Empty reports whether the pool holds no words.
func (p *Pool) Empty() bool {
	return p.size == 0
}

// BucketRange returns the minimum and maximum populated bucket indices.
// The second return is false when the pool is empty.
func (p *Pool) BucketRange() (min, max int, ok bool) {
	first := true
	for idx, bucket := range p.buckets {
		if len(bucket) == 0 {
			continue
		}
		if first {
			min, max = idx, idx
			first = false
			continue
		}
		if idx < min {
			min = idx
		}
		if idx > max {
			max = idx
		}
	}
	return min, max, !first
}

// Bucket returns the words in bucket idx, in sorted PrimaryCmp order.
func (p *Pool) Bucket(idx int) []*Word {
	return p.buckets[idx]
}

// FirstNonEmptyBuckets returns up to n bucket indices, in ascending bucket
// order, that currently hold at least one word. Used by both line
// extraction and block seeding to bias candidate selection toward the
// lowest few baseline buckets (spec.md §4.3 step 2, §4.4 step 1).
func (p *Pool) FirstNonEmptyBuckets(n int) []int {
	min, max, ok := p.BucketRange()
	if !ok {
		return nil
	}
	var out []int
	for idx := min; idx <= max && len(out) < n; idx++ {
		if len(p.buckets[idx]) > 0 {
			out = append(out, idx)
		}
	}
	return out
}

// LeftmostAmong returns the word with the smallest PrimaryCmp rank among the
// words in the given buckets, along with the bucket it came from. The
// second return is false when every given bucket is empty.
func (p *Pool) LeftmostAmong(idxs []int) (*Word, int, bool) {
	var best *Word
	bestBucket := 0
	for _, idx := range idxs {
		for _, w := range p.buckets[idx] {
			if best == nil || w.PrimaryCmp(best) < 0 {
				best = w
				bestBucket = idx
			}
		}
	}
	return best, bestBucket, best != nil
}

// WordsWithinSecondary returns all words whose baseline lies within
// [base-delta, base+delta], across bucket boundaries.
func (p *Pool) WordsWithinSecondary(base, delta float64) []*Word {
	loIdx := baseIdx(base - delta)
	hiIdx := baseIdx(base + delta)
	var out []*Word
	for idx := loIdx; idx <= hiIdx; idx++ {
		for _, w := range p.buckets[idx] {
			if absF(w.Base-base) <= delta {
				out = append(out, w)
			}
		}
	}
	return out
}

// WordsInBaseRange returns every word whose baseline lies in [lo, hi],
// inclusive on both ends; callers needing an open interval filter further.
func (p *Pool) WordsInBaseRange(lo, hi float64) []*Word {
	loIdx := baseIdx(lo)
	hiIdx := baseIdx(hi)
	var out []*Word
	for idx := loIdx; idx <= hiIdx; idx++ {
		for _, w := range p.buckets[idx] {
			if w.Base >= lo && w.Base <= hi {
				out = append(out, w)
			}
		}
	}
	return out
}

// All returns every word currently in the pool, in no particular order.
func (p *Pool) All() []*Word {
	out := make([]*Word, 0, p.size)
	for _, bucket := range p.buckets {
		out = append(out, bucket...)
	}
	return out
}
