package textpage

// Matrix is a 2D affine transform, (a b / c d) with translation (e, f),
// matching the PDF text/graphics state matrix convention.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Transform applies the matrix to a point.
func (m Matrix) Transform(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// FontInfo identifies a font for word/font-size continuity comparisons.
// Two glyphs are considered to share a font identity when FontInfo.Key()
// matches; the registry interns these so words can be reference counted.
type FontInfo struct {
	Name    string
	Flags   int
	Ascent  float64
	Descent float64
}

// Key returns the interning key used by FontRegistry.
func (f FontInfo) Key() string {
	return f.Name
}

// GlyphEvent is the wire contract the PDF content-stream collaborator feeds
// into Page.Feed. It carries exactly what the glyph-intake state machine
// needs and nothing about PDF structure.
type GlyphEvent struct {
	// X, Y is the pre-transform glyph origin; DX, DY is the advance before
	// char/word spacing adjustment.
	X, Y   float64
	DX, DY float64

	// W1, H1 are the device-space glyph width/height, used for the tiny
	// glyph and out-of-page rejection rules.
	W1, H1 float64

	// Runes is the decoded code point sequence for this glyph event; len>1
	// means a ligature or composed sequence. A lone unpaired surrogate is
	// presented as U+FFFD by the collaborator before reaching Feed.
	Runes []rune

	// ByteLen is the glyph's length in the content stream, used to keep
	// CharPos/CharLen byte-accurate even across dropped glyphs.
	ByteLen int

	// CTM and FontMatrix together determine the glyph's device-space
	// rotation and position; FontSize is already transformed.
	CTM        Matrix
	FontMatrix Matrix
	FontSize   float64
	CharSpace  float64
	WordSpace  float64
	Font       *FontInfo
}

// MarkedContentKind distinguishes ActualText span boundaries from other
// marked-content notifications the collaborator may forward; only
// ActualText affects glyph intake.
type MarkedContentKind int

const (
	MarkedContentOther MarkedContentKind = iota
	MarkedContentActualTextBegin
	MarkedContentActualTextEnd
)

// MarkedContentEvent notifies the glyph-intake state machine of an
// ActualText span boundary, per spec.md §4.1 "ActualText spans".
type MarkedContentEvent struct {
	Kind       MarkedContentKind
	ActualText []rune // populated on MarkedContentActualTextBegin
}

// Config is the explicit, per-Page configuration threaded into the Page
// constructor (DESIGN NOTES §9): no hidden singletons except the
// process-wide mapping caches in config_global.go.
type Config struct {
	// KeepTinyChars disables the 50,000-tiny-glyph cap when true.
	KeepTinyChars bool

	PageWidth  float64
	PageHeight float64
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{KeepTinyChars: false}
}
