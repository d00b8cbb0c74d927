package pdf

import (
	"github.com/pyhub-apps/pdfplumber-golang/pkg/textpage"
)

// BuildTextPage converts the page's already-extracted CharObject stream
// into textpage.GlyphEvents and runs the full page-text-analysis pipeline
// over them, returning a queryable *textpage.Page. Positions in a
// CharObject are already resolved to device space by the content-stream
// parser's graphics state, so CTM is left as identity here and the
// character's own transform matrix stands in for FontMatrix; char/word
// spacing are likewise already baked into consecutive glyphs' X0/Y0, so
// they are not applied a second time.
func (p *PDFCPUPage) BuildTextPage() (*textpage.Page, error) {
	cfg := textpage.DefaultConfig()
	cfg.PageWidth = p.width
	cfg.PageHeight = p.height

	tp := textpage.NewPage(cfg)

	fonts := make(map[string]*textpage.FontInfo)
	for _, char := range p.objects.Chars {
		if char.Text == "" {
			continue
		}
		font := fonts[char.Font]
		if font == nil {
			font = &textpage.FontInfo{Name: char.Font}
			fonts[char.Font] = font
		}

		ev := textpage.GlyphEvent{
			X:  char.X0,
			Y:  char.Y0,
			DX: char.X1 - char.X0,
			DY: char.Y1 - char.Y0,
			W1: char.Width,
			H1: char.Height,

			Runes:   []rune(char.Text),
			ByteLen: len(char.Text),

			CTM:        textpage.Identity(),
			FontMatrix: textpage.Matrix(char.Matrix),
			FontSize:   char.FontSize,
			Font:       font,
		}
		if err := tp.Feed(ev); err != nil {
			return nil, err
		}
	}

	if err := tp.Coalesce(); err != nil {
		return nil, err
	}
	return tp, nil
}
