package textpage

// Tuning constants for the glyph intake, line-coalescing and block-forming
// heuristics. Names and values are carried over unchanged from the
// reference page-text-analysis engine these algorithms are grounded on.
const (
	textPoolStep = 4.0

	minWordBreakSpace   = 0.1
	minDupBreakOverlap  = 0.2
	maxLineSpacingDelta = 1.5

	maxBlockFontSizeDelta1 = 0.05
	maxBlockFontSizeDelta2 = 0.6
	maxBlockFontSizeDelta3 = 0.2

	maxWordFontSizeDelta = 0.05

	maxIntraLineDelta = 0.5

	minWordSpacing = 0.15
	maxWordSpacing = 1.5

	minColSpacing1 = 0.3
	minColSpacing2 = 1.0

	minCharSpacing = -0.2
	maxCharSpacing = 0.03

	maxWideCharSpacingMul = 1.3
	maxWideCharSpacing    = 0.4

	dupMaxPriDelta = 0.1
	dupMaxSecDelta = 0.2

	maxTinyGlyphsDefault = 50000

	baselineJumpThreshold = 0.5

	underlineSlack     = 1.0
	underlineMinCover  = 0.8
)
