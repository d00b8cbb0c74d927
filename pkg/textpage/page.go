package textpage

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
)

// phase tracks the Page lifecycle spec.md §6 describes: a page accepts
// glyphs only while ingesting, answers queries only once queryable, and
// rejects everything once disposed.
type phase int

const (
	phaseIngesting phase = iota
	phaseQueryable
	phaseDisposed
)

// Page is the façade spec.md §4.10 (C10) describes: it owns the per-page
// word pools during ingestion, and the finished Block graph plus the
// selection/search engines once Coalesce has run.
type Page struct {
	Width, Height float64

	phase phase

	cfg     Config
	fonts   *FontRegistry
	pools   [4]*Pool
	builder *WordBuilder

	// PrimaryRot and PrimaryLR pick the reading-order sort's primary axis
	// and direction (spec.md §4.6); defaults are the majority-population
	// rotation and left-to-right.
	PrimaryRot Rotation
	PrimaryLR  bool

	Blocks []*Block

	nextTableId  int
	totalGlyphs  int
	sel          *Selection
	logger       *log.Logger
}

// NewPage creates a page in its ingesting phase.
func NewPage(cfg Config) *Page {
	p := &Page{
		cfg:       cfg,
		fonts:     NewFontRegistry(),
		PrimaryLR: true,
		Width:     cfg.PageWidth,
		Height:    cfg.PageHeight,
		logger:    log.New(io.Discard, "", 0),
	}
	p.builder = NewWordBuilder(cfg, p.fonts, &p.pools)
	p.builder.Warnf = func(format string, args ...interface{}) {
		p.logger.Printf("WARN: "+format, args...)
	}
	return p
}

// SetLogger redirects diagnostic warnings to l; nil restores the default
// discard logger.
func (p *Page) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	p.logger = l
}

func (p *Page) requirePhase(want phase, op string) error {
	if p.phase != want {
		return fmt.Errorf("textpage: %s called while page is %s", op, p.phase)
	}
	return nil
}

func (ph phase) String() string {
	switch ph {
	case phaseIngesting:
		return "ingesting"
	case phaseQueryable:
		return "queryable"
	default:
		return "disposed"
	}
}

// Feed delivers one glyph event to the ingesting-phase word builder.
func (p *Page) Feed(ev GlyphEvent) error {
	if err := p.requirePhase(phaseIngesting, "Feed"); err != nil {
		return err
	}
	p.builder.FeedGlyph(ev)
	return nil
}

// FeedMarkedContent delivers an ActualText span boundary notification.
func (p *Page) FeedMarkedContent(ev MarkedContentEvent) error {
	if err := p.requirePhase(phaseIngesting, "FeedMarkedContent"); err != nil {
		return err
	}
	p.builder.FeedMarkedContent(ev)
	return nil
}

// Coalesce runs the full pipeline (C3-C7) over every populated rotation
// pool, merges the results, and transitions the page to queryable. It is
// idempotent only in the sense of erroring on a second call; spec.md §6
// treats coalescing as a one-shot transition.
func (p *Page) Coalesce() error {
	if err := p.requirePhase(phaseIngesting, "Coalesce"); err != nil {
		return err
	}
	p.builder.Flush()

	var allBlocks []*Block
	majorityRot, majorityCount := Rotate0, -1
	for rot := 0; rot < 4; rot++ {
		pool := p.pools[rot]
		if pool == nil || pool.Empty() {
			continue
		}
		if pool.Size() > majorityCount {
			majorityCount = pool.Size()
			majorityRot = Rotation(rot)
		}
		blocks := FormBlocks(pool, Rotation(rot))
		allBlocks = append(allBlocks, blocks...)
	}
	DetectTables(allBlocks, &p.nextTableId)

	p.PrimaryRot = majorityRot
	order := ReadingOrderSort(allBlocks, p.PrimaryRot, p.PrimaryLR)
	FillBlockEnvelopes(order)
	p.totalGlyphs = AssignGlyphIndices(order)

	p.Blocks = order
	p.sel = NewSelection(p)
	p.phase = phaseQueryable
	return nil
}

// Dispose releases the page's interned fonts and marks it unusable. Word,
// Line and Block pointers obtained before Dispose must not be retained.
func (p *Page) Dispose() {
	if p.fonts != nil {
		for _, b := range p.Blocks {
			for _, l := range b.Lines {
				for _, w := range l.Words {
					p.fonts.Release(w.Font)
				}
			}
		}
	}
	p.phase = phaseDisposed
	p.Blocks = nil
	p.sel = nil
}

// TotalGlyphs returns the number of glyph index slots on the page: every
// word's code points plus one per trailing space, i.e. the upper bound of a
// word's Index + Len() (+1 when SpaceAfter).
func (p *Page) TotalGlyphs() (int, error) {
	if err := p.requirePhase(phaseQueryable, "TotalGlyphs"); err != nil {
		return 0, err
	}
	return p.totalGlyphs, nil
}

// StartSelection anchors a new selection at fractional page coordinates.
func (p *Page) StartSelection(xFrac, yFrac float64) error {
	if err := p.requirePhase(phaseQueryable, "StartSelection"); err != nil {
		return err
	}
	p.sel.StartSelection(xFrac, yFrac)
	return nil
}

// MoveSelectionTo drags the active selection's end to fractional page
// coordinates, returning whether the selection actually changed.
func (p *Page) MoveSelectionTo(xFrac, yFrac float64) (bool, error) {
	if err := p.requirePhase(phaseQueryable, "MoveSelectionTo"); err != nil {
		return false, err
	}
	return p.sel.MoveSelEndTo(xFrac, yFrac), nil
}

// SelectedRegion returns the current selection's per-line rectangles.
func (p *Page) SelectedRegion() ([]Rect, error) {
	if err := p.requirePhase(phaseQueryable, "SelectedRegion"); err != nil {
		return nil, err
	}
	return p.sel.GetSelectedRegion(), nil
}

// SelectedText returns the current selection's text, NFKC-normalized when
// normalize is true.
func (p *Page) SelectedText(normalize bool) (string, error) {
	if err := p.requirePhase(phaseQueryable, "SelectedText"); err != nil {
		return "", err
	}
	return p.sel.GetSelectedText(normalize), nil
}

// AllText concatenates every block's text in reading order, one line per
// '\n', used by callers that want a plain-text dump without going through
// the selection engine.
func (p *Page) AllText(normalize bool) string {
	var sb strings.Builder
	for bi, b := range p.Blocks {
		for li, l := range b.Lines {
			for _, w := range l.Words {
				text := w.Text
				if normalize {
					text = w.Norm()
				}
				sb.WriteString(string(text))
				if w.SpaceAfter {
					sb.WriteByte(' ')
				}
			}
			if li < len(b.Lines)-1 {
				sb.WriteByte('\n')
			}
		}
		if bi < len(p.Blocks)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// DumpPhysicalLayout writes a column-aware plain-text reconstruction of the
// page, padding each word with spaces out to the column given by its XMin
// divided by the page's median glyph advance (SUPPLEMENTED
// FEATURES: physical-layout dump mode, grounded on TextOutputDev's
// physLayout branch of writeLineToStream).
func (p *Page) DumpPhysicalLayout(w io.Writer) error {
	advance := p.medianGlyphAdvance()
	if advance <= 0 {
		advance = 1
	}
	for _, b := range p.Blocks {
		for _, l := range b.Lines {
			col := 0
			for _, wd := range l.Words {
				target := int(wd.XMin / advance)
				for col < target {
					if _, err := io.WriteString(w, " "); err != nil {
						return err
					}
					col++
				}
				text := string(wd.Text)
				if _, err := io.WriteString(w, text); err != nil {
					return err
				}
				col += len([]rune(text))
				if wd.SpaceAfter {
					if _, err := io.WriteString(w, " "); err != nil {
						return err
					}
					col++
				}
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Page) medianGlyphAdvance() float64 {
	var advances []float64
	for _, b := range p.Blocks {
		for _, l := range b.Lines {
			for _, wd := range l.Words {
				if wd.Len() == 0 {
					continue
				}
				span := wd.Edges[len(wd.Edges)-1] - wd.Edges[0]
				advances = append(advances, absF(span)/float64(wd.Len()))
			}
		}
	}
	if len(advances) == 0 {
		return 0
	}
	sort.Float64s(advances)
	return advances[len(advances)/2]
}

// Search walks the page looking for query, delegating to search.go.
func (p *Page) SearchText(query []string, mode MatchMode, normalize, caseSensitive bool) ([]SearchResult, error) {
	if err := p.requirePhase(phaseQueryable, "SearchText"); err != nil {
		return nil, err
	}
	return p.Search(query, mode, normalize, caseSensitive), nil
}
