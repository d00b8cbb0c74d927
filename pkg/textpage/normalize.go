package textpage

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Norm returns the NFKC-normalized code points for the word's text,
// computing and caching them on first use (spec.md §4.7, C7). The cache is
// never invalidated: words are immutable after coalesce().
func (w *Word) Norm() []rune {
	if !w.normDone {
		w.norm = nfkcRunes(w.Text)
		w.normLen = len(w.norm)
		w.normDone = true
	}
	return w.norm
}

// NormLen returns the cached NFKC length, computing it if necessary.
func (w *Word) NormLen() int {
	return len(w.Norm())
}

func nfkcRunes(text []rune) []rune {
	if len(text) == 0 {
		return nil
	}
	// Fold CJK fullwidth/halfwidth forms to their canonical width before
	// NFKC, so "Ａ" and "A" compare equal the same way a rotated column of
	// halfwidth katakana does against its fullwidth rendering elsewhere on
	// the page.
	folded := width.Fold.String(string(text))
	normalized := norm.NFKC.String(folded)
	return []rune(normalized)
}

// UpperFold returns the uppercased code points of s, used by the search
// engine for case-insensitive comparisons (spec.md §4.9).
func upperFold(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = unicode.ToUpper(r)
	}
	return out
}
