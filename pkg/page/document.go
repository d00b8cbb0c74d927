package page

import (
	"fmt"

	"github.com/pyhub-apps/pdfplumber-golang/pkg/pdf"
)

// Document wraps a pdfcpu-backed pdf.Document, handing back *PDFPage values
// wired to the text analysis core instead of bare pdf.Page values.
type Document struct {
	inner pdf.Document
}

// Open opens a PDF file with the pdfcpu backend and wires every page to the
// text analysis core.
func Open(filepath string) (*Document, error) {
	inner, err := pdf.Open(filepath)
	if err != nil {
		return nil, err
	}
	return &Document{inner: inner}, nil
}

// OpenWithPassword opens a password-protected PDF file with the pdfcpu
// backend.
func OpenWithPassword(filepath, password string) (*Document, error) {
	inner, err := pdf.OpenWithPassword(filepath, password)
	if err != nil {
		return nil, err
	}
	return &Document{inner: inner}, nil
}

// GetMetadata returns the PDF metadata
func (d *Document) GetMetadata() pdf.Metadata {
	return d.inner.GetMetadata()
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return d.inner.PageCount()
}

// GetPage returns a specific page by index (0-based), wired to the text
// analysis core.
func (d *Document) GetPage(index int) (*PDFPage, error) {
	pg, err := d.inner.GetPage(index)
	if err != nil {
		return nil, err
	}
	cpuPage, ok := pg.(*pdf.PDFCPUPage)
	if !ok {
		return nil, fmt.Errorf("page: document page %d is not pdfcpu-backed", index)
	}
	return Wrap(cpuPage), nil
}

// GetPages returns every page in the document, wired to the text analysis
// core.
func (d *Document) GetPages() ([]*PDFPage, error) {
	pages := make([]*PDFPage, d.PageCount())
	for i := range pages {
		pg, err := d.GetPage(i)
		if err != nil {
			return nil, err
		}
		pages[i] = pg
	}
	return pages, nil
}

// Close releases resources associated with the document
func (d *Document) Close() error {
	return d.inner.Close()
}
