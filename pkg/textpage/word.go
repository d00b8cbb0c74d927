package textpage

// Word is an ordered sequence of Unicode code points sharing a rotation, a
// baseline, and a font, with per-glyph edge positions along the primary
// axis. See spec.md §3 for the full invariant list.
type Word struct {
	Text  []rune
	Edges []float64 // len(Edges) == len(Text)+1

	XMin, YMin, XMax, YMax float64
	Base                   float64

	Rot      Rotation
	FontSize float64
	Font     FontRef

	CharPos int
	CharLen int

	SpaceAfter bool
	Index      int

	norm     []rune
	normLen  int
	normDone bool

	// Pre/Post envelopes: running min/max of the tight boxes of all words
	// preceding (Pre) and following (Post) this one in reading order. Used
	// by the nearest-word search to short-circuit branches.
	XMinPre, YMinPre, XMaxPre, YMaxPre     float64
	XMinPost, YMinPost, XMaxPost, YMaxPost float64

	Next, Prev *Word
	Line       *Line
}

// Len returns the number of code points in the word.
func (w *Word) Len() int {
	return len(w.Text)
}

// PrimaryCmp compares two words' leading edges along their shared rotation's
// primary axis; the sign follows the rotation so "earlier in reading order"
// is always a smaller rank. Words are assumed to share a rotation.
func (w *Word) PrimaryCmp(other *Word) int {
	a := w.primaryLeading()
	b := other.primaryLeading()
	d := (a - b) * w.Rot.Sign()
	if d < 0 {
		return -1
	}
	if d > 0 {
		return 1
	}
	return 0
}

func (w *Word) primaryLeading() float64 {
	if len(w.Edges) == 0 {
		return 0
	}
	return w.Edges[0]
}

func (w *Word) primaryTrailing() float64 {
	if len(w.Edges) == 0 {
		return 0
	}
	return w.Edges[len(w.Edges)-1]
}

// boxFromRot returns the bounding-box extent consistent with leading/
// trailing edges and base for the given rotation, used when a word is
// finalized from its first glyph's geometry.
func boxFromEdgeBase(r Rotation, leading, trailing, base, halfHeight float64) (xMin, yMin, xMax, yMax float64) {
	if r == Rotate0 || r == Rotate180 {
		xMin, xMax = minF(leading, trailing), maxF(leading, trailing)
		yMin, yMax = base-halfHeight, base+halfHeight
		return
	}
	yMin, yMax = minF(leading, trailing), maxF(leading, trailing)
	xMin, xMax = base-halfHeight, base+halfHeight
	return
}
