// Package page glues the pdfcpu-backed pdf.Page implementation to the page
// text analysis core in pkg/textpage: it builds one *textpage.Page per PDF
// page on first use and answers selection/search queries against it,
// instead of the placeholder char-concatenation this façade used to fall
// back to.
package page

import (
	"fmt"
	"io"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pyhub-apps/pdfplumber-golang/pkg/pdf"
	"github.com/pyhub-apps/pdfplumber-golang/pkg/textpage"
)

// PDFPage implements the pdf.Page interface, wired to the text analysis
// core. GetObjects/ExtractTables/Crop/ToImage delegate to an embedded
// *pdf.PDFCPUPage, which already does the real content-stream extraction;
// ExtractText/Select/Search go through the lazily-built *textpage.Page
// instead.
type PDFPage struct {
	inner *pdf.PDFCPUPage

	once  sync.Once
	tp    *textpage.Page
	tpErr error
}

// Wrap adapts an already-extracted pdfcpu page into the wired façade.
func Wrap(inner *pdf.PDFCPUPage) *PDFPage {
	return &PDFPage{inner: inner}
}

// NewPDFPage extracts page pageNumber from ctx and wires it to the text
// analysis core.
func NewPDFPage(ctx *model.Context, pageNumber int) (pdf.Page, error) {
	if pageNumber < 1 || pageNumber > ctx.PageCount {
		return nil, fmt.Errorf("invalid page number: %d", pageNumber)
	}

	inner, err := pdf.NewPDFCPUPage(ctx, pageNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to extract objects: %w", err)
	}

	return Wrap(inner), nil
}

// textPage builds the underlying *textpage.Page on first use and caches it
// for the lifetime of the façade; BuildTextPage feeds every extracted
// character exactly once, so re-running it per call would be wasted work.
func (p *PDFPage) textPage() (*textpage.Page, error) {
	p.once.Do(func() {
		p.tp, p.tpErr = p.inner.BuildTextPage()
	})
	return p.tp, p.tpErr
}

// GetPageNumber returns the page number (1-based)
func (p *PDFPage) GetPageNumber() int {
	return p.inner.GetPageNumber()
}

// GetWidth returns the page width
func (p *PDFPage) GetWidth() float64 {
	return p.inner.GetWidth()
}

// GetHeight returns the page height
func (p *PDFPage) GetHeight() float64 {
	return p.inner.GetHeight()
}

// GetRotation returns the page rotation in degrees
func (p *PDFPage) GetRotation() int {
	return p.inner.GetRotation()
}

// GetBBox returns the page bounding box
func (p *PDFPage) GetBBox() pdf.BoundingBox {
	return p.inner.GetBBox()
}

// GetObjects returns all objects on the page
func (p *PDFPage) GetObjects() pdf.Objects {
	return p.inner.GetObjects()
}

// ExtractText returns the page text in reading order via the wired text
// analysis core, falling back to the legacy heuristic extractor if the
// core failed to build.
func (p *PDFPage) ExtractText(opts ...pdf.TextExtractionOption) string {
	tp, err := p.textPage()
	if err != nil {
		return p.inner.ExtractText(opts...)
	}
	return tp.AllText(false)
}

// ExtractWords extracts individual words from the page using the legacy
// heuristic char-grouping extractor; ExtractTables' column-snapping logic
// depends on its flat pdf.Word shape, so it is kept rather than replaced.
func (p *PDFPage) ExtractWords(opts ...pdf.WordExtractionOption) []pdf.Word {
	return p.inner.ExtractWords(opts...)
}

// ExtractTables extracts tables from the page
func (p *PDFPage) ExtractTables(opts ...pdf.TableExtractionOption) []pdf.Table {
	return p.inner.ExtractTables(opts...)
}

// Crop returns a new page cropped to the specified bounding box
func (p *PDFPage) Crop(bbox pdf.BoundingBox) pdf.Page {
	return p.inner.Crop(bbox)
}

// WithinBBox filters objects within a bounding box
func (p *PDFPage) WithinBBox(bbox pdf.BoundingBox) pdf.Objects {
	return p.inner.WithinBBox(bbox)
}

// Filter filters objects based on a predicate function
func (p *PDFPage) Filter(predicate func(pdf.Object) bool) pdf.Objects {
	return p.inner.Filter(predicate)
}

// ToImage renders the page to an image (for visual debugging). Rendering is
// out of scope for the text analysis core; this delegates to the pdfcpu
// page's ToImage, which returns a "not implemented" error.
func (p *PDFPage) ToImage(opts ...pdf.ImageOption) (io.Reader, error) {
	return p.inner.ToImage(opts...)
}

// StartSelection anchors a new text selection at fractional page
// coordinates (0,0 top-left to 1,1 bottom-right).
func (p *PDFPage) StartSelection(xFrac, yFrac float64) error {
	tp, err := p.textPage()
	if err != nil {
		return fmt.Errorf("page: building text page: %w", err)
	}
	return tp.StartSelection(xFrac, yFrac)
}

// MoveSelectionTo drags the active selection's endpoint to fractional page
// coordinates, reporting whether the selection actually changed.
func (p *PDFPage) MoveSelectionTo(xFrac, yFrac float64) (bool, error) {
	tp, err := p.textPage()
	if err != nil {
		return false, fmt.Errorf("page: building text page: %w", err)
	}
	return tp.MoveSelectionTo(xFrac, yFrac)
}

// SelectedText returns the current selection's text.
func (p *PDFPage) SelectedText(normalize bool) (string, error) {
	tp, err := p.textPage()
	if err != nil {
		return "", fmt.Errorf("page: building text page: %w", err)
	}
	return tp.SelectedText(normalize)
}

// SelectedRegion returns the current selection's per-line rectangles in
// fractional page coordinates.
func (p *PDFPage) SelectedRegion() ([]textpage.Rect, error) {
	tp, err := p.textPage()
	if err != nil {
		return nil, fmt.Errorf("page: building text page: %w", err)
	}
	return tp.SelectedRegion()
}

// Search runs a substring/prefix/suffix/exact or multi-word sequence query
// against the wired text page.
func (p *PDFPage) Search(query []string, mode textpage.MatchMode, normalize, caseSensitive bool) ([]textpage.SearchResult, error) {
	tp, err := p.textPage()
	if err != nil {
		return nil, fmt.Errorf("page: building text page: %w", err)
	}
	return tp.SearchText(query, mode, normalize, caseSensitive)
}
