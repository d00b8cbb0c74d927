package textpage

// MatchMode selects how a query word sequence is compared against the
// page's words (spec.md §4.9, C9).
type MatchMode int

const (
	MatchEquals MatchMode = iota
	MatchStartsWith
	MatchEndsWith
	MatchContains
)

// SearchResult is one match: the matched words and their per-line merged
// rectangles in fractional page coordinates.
type SearchResult struct {
	Words []*Word
	Rects []Rect
}

// Search walks the page in reading order looking for query, a sequence of
// one or more words. A single-word query is compared with each word's
// (optionally normalized) text according to mode. A multi-word query
// requires query[0] to end one word, each middle query word to equal the
// next word exactly, and the last query word to start the word after them;
// mode is not used for multi-word queries, per spec.md §4.9.
func (p *Page) Search(query []string, mode MatchMode, normalize, caseSensitive bool) []SearchResult {
	if len(query) == 0 {
		return nil
	}
	q := make([][]rune, len(query))
	for i, s := range query {
		r := []rune(s)
		if !caseSensitive {
			r = upperFold(r)
		}
		q[i] = r
	}

	var results []SearchResult
	for _, b := range p.Blocks {
		for _, l := range b.Lines {
			for _, w := range l.Words {
				if len(q) == 1 {
					if m := matchSingle(w, q[0], mode, normalize, caseSensitive); m != nil {
						results = append(results, *m)
					}
					continue
				}
				if m := matchSequence(w, q, normalize, caseSensitive); m != nil {
					results = append(results, *m)
				}
			}
		}
	}
	for i := range results {
		for j := range results[i].Rects {
			r := results[i].Rects[j]
			results[i].Rects[j] = toFracRect(r.X0, r.Y0, r.X1, r.Y1, p.Width, p.Height)
		}
	}
	return results
}

func wordText(w *Word, normalize, caseSensitive bool) []rune {
	text := w.Text
	if normalize {
		text = w.Norm()
	}
	if !caseSensitive {
		text = upperFold(text)
	}
	return text
}

func matchSingle(w *Word, q []rune, mode MatchMode, normalize, caseSensitive bool) *SearchResult {
	text := wordText(w, normalize, caseSensitive)
	if !runesMatch(text, q, mode) {
		return nil
	}
	return &SearchResult{Words: []*Word{w}, Rects: []Rect{wordRect(w)}}
}

func runesMatch(text, q []rune, mode MatchMode) bool {
	switch mode {
	case MatchEquals:
		return runesEqual(text, q)
	case MatchStartsWith:
		return len(text) >= len(q) && runesEqual(text[:len(q)], q)
	case MatchEndsWith:
		return len(text) >= len(q) && runesEqual(text[len(text)-len(q):], q)
	default:
		return containsRunes(text, q)
	}
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsRunes(text, q []rune) bool {
	if len(q) == 0 {
		return true
	}
	if len(q) > len(text) {
		return false
	}
	for i := 0; i+len(q) <= len(text); i++ {
		if runesEqual(text[i:i+len(q)], q) {
			return true
		}
	}
	return false
}

// matchSequence attempts to match q starting at start: q[0] against start,
// requiring only that start's text end with q[0] (the query may begin
// mid-word), then each of q[1:len(q)-1] against the words immediately
// following in global reading order (crossing line and block boundaries via
// nextWordGlobal), required to equal exactly, and finally q[len(q)-1]
// against the last matched word, requiring only that it start with the
// query's last token (the query may end mid-word), per spec.md §4.9.
func matchSequence(start *Word, q [][]rune, normalize, caseSensitive bool) *SearchResult {
	first := wordText(start, normalize, caseSensitive)
	if !runesMatch(first, q[0], matchModeForFirst(q)) {
		return nil
	}
	matched := []*Word{start}
	w := start
	for i := 1; i < len(q); i++ {
		w = nextWordGlobal(w)
		if w == nil {
			return nil
		}
		text := wordText(w, normalize, caseSensitive)
		if i == len(q)-1 {
			if !runesMatch(text, q[i], MatchStartsWith) {
				return nil
			}
		} else if !runesEqual(text, q[i]) {
			return nil
		}
		matched = append(matched, w)
	}
	return &SearchResult{Words: matched, Rects: mergeRectsByLine(matched)}
}

func matchModeForFirst(q [][]rune) MatchMode {
	if len(q) > 1 {
		return MatchEndsWith
	}
	return MatchContains
}

func wordRect(w *Word) Rect {
	return Rect{X0: w.XMin, Y0: w.YMin, X1: w.XMax, Y1: w.YMax}
}

// mergeRectsByLine unions the boxes of consecutive matched words that share
// a line into one rectangle, so a match spanning a line wrap yields one
// rectangle per line rather than one per word.
func mergeRectsByLine(words []*Word) []Rect {
	if len(words) == 0 {
		return nil
	}
	var rects []Rect
	curLine := words[0].Line
	xMin, yMin, xMax, yMax := words[0].XMin, words[0].YMin, words[0].XMax, words[0].YMax
	for _, w := range words[1:] {
		if w.Line == curLine {
			xMin, yMin = minF(xMin, w.XMin), minF(yMin, w.YMin)
			xMax, yMax = maxF(xMax, w.XMax), maxF(yMax, w.YMax)
			continue
		}
		rects = append(rects, Rect{xMin, yMin, xMax, yMax})
		curLine = w.Line
		xMin, yMin, xMax, yMax = w.XMin, w.YMin, w.XMax, w.YMax
	}
	rects = append(rects, Rect{xMin, yMin, xMax, yMax})
	return rects
}
