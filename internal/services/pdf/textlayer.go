// Package pdf provides the PDF text layer: positioned text runs per page.
//
// We use the ledongthuc/pdf library for parsing.
// It's a pure Go implementation with no CGO, so the server stays a single binary.
//
// The library reports one pdf.Text per glyph. Table extraction wants glyph
// runs (what a viewer would show as one piece of text), so consecutive glyphs
// on the same baseline are merged back together here.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/tables"
)

var (
	// ErrDocumentUnreadable means the file could not be opened or parsed.
	ErrDocumentUnreadable = errors.New("document unreadable")

	// ErrPageUnavailable means a single page is missing or its content
	// stream could not be decoded.
	ErrPageUnavailable = errors.New("page unavailable")
)

const (
	// wordGapFactor is the widest horizontal gap, as a fraction of the font
	// size, that still joins two glyphs into the same run.
	wordGapFactor = 0.3

	// spaceGapFactor is the narrowest gap, as a fraction of the font size,
	// that separates two words inside a run. Narrower gaps are kerning.
	spaceGapFactor = 0.1

	// fallbackGap is used when the font size is unknown (reported as 0).
	fallbackGap = 3.0

	// fallbackSpaceGap is the word-separating gap for an unknown font size.
	fallbackSpaceGap = 1.0

	// baselineEpsilon is how far apart two baselines may be and still
	// belong to the same run.
	baselineEpsilon = 0.5
)

// Document is an opened PDF.
type Document struct {
	reader    *pdf.Reader
	pageCount int
}

// Open parses PDF bytes held in memory.
//
// Go Pattern: We accept a byte slice instead of a filename because the data
// comes from an HTTP upload (in memory), not a file on disk. The pdf library
// requires io.ReaderAt for random access, which bytes.Reader provides.
func Open(data []byte) (doc *Document, err error) {
	// ledongthuc/pdf panics on some malformed files instead of returning
	// an error. recover() turns that into a normal error value.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: %v", ErrDocumentUnreadable, r)
		}
	}()

	if !ValidatePDF(data) {
		return nil, fmt.Errorf("%w: missing %%PDF- header", ErrDocumentUnreadable)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}

	return &Document{
		reader:    reader,
		pageCount: reader.NumPage(),
	}, nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.pageCount
}

// Items returns the glyph runs of page n (1-based), in content-stream order.
func (d *Document) Items(n int) (items []tables.TextItem, err error) {
	if n < 1 || n > d.pageCount {
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageUnavailable, n, d.pageCount)
	}

	defer func() {
		if r := recover(); r != nil {
			items = nil
			err = fmt.Errorf("%w: page %d: %v", ErrPageUnavailable, n, r)
		}
	}()

	page := d.reader.Page(n)
	if page.V.IsNull() {
		return nil, fmt.Errorf("%w: page %d has no page object", ErrPageUnavailable, n)
	}

	return MergeGlyphs(page.Content().Text), nil
}

// Pages reads the text layer of the given page numbers. A page that fails
// is reported through onError (if non-nil) and skipped. ctx is checked
// between pages.
func (d *Document) Pages(ctx context.Context, numbers []int, onError func(page int, err error)) ([]tables.Page, error) {
	pages := make([]tables.Page, 0, len(numbers))
	for _, n := range numbers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items, err := d.Items(n)
		if err != nil {
			if onError != nil {
				onError(n, err)
			}
			continue
		}
		pages = append(pages, tables.Page{Number: n, Items: items})
	}
	return pages, nil
}

// glyphRun accumulates consecutive glyphs.
type glyphRun struct {
	x, y     float64
	end      float64 // x of the right edge of the last glyph
	fontSize float64
	text     strings.Builder
}

func (r *glyphRun) add(g pdf.Text) {
	if r.text.Len() > 0 && r.separated(g) {
		r.text.WriteByte(' ')
	}
	r.text.WriteString(g.S)
	if right := g.X + g.W; right > r.end {
		r.end = right
	}
	if g.FontSize > r.fontSize {
		r.fontSize = g.FontSize
	}
}

// separated reports whether g sits far enough right of the run to start a
// new word that the PDF did not mark with its own space glyph.
func (r *glyphRun) separated(g pdf.Text) bool {
	minGap := spaceGapFactor * r.fontSize
	if r.fontSize <= 0 {
		minGap = fallbackSpaceGap
	}
	if g.X-r.end <= minGap {
		return false
	}
	text := r.text.String()
	return !strings.HasSuffix(text, " ") && !strings.HasPrefix(g.S, " ")
}

// continues reports whether g can extend the run: same baseline and a
// horizontal gap no wider than a fraction of the font size.
func (r *glyphRun) continues(g pdf.Text) bool {
	if math.Abs(g.Y-r.y) > baselineEpsilon {
		return false
	}
	maxGap := wordGapFactor * r.fontSize
	if r.fontSize <= 0 {
		maxGap = fallbackGap
	}
	gap := g.X - r.end
	return gap >= -maxGap && gap <= maxGap
}

// MergeGlyphs joins per-glyph text into runs, in stream order.
// Text is kept as-is (including spaces); trimming is the extractor's job.
func MergeGlyphs(glyphs []pdf.Text) []tables.TextItem {
	var items []tables.TextItem
	var run *glyphRun

	flush := func() {
		if run != nil {
			items = append(items, tables.TextItem{X: run.x, Y: run.y, Text: run.text.String()})
			run = nil
		}
	}

	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		if run != nil && run.continues(g) {
			run.add(g)
			continue
		}
		flush()
		run = &glyphRun{x: g.X, y: g.Y, end: g.X}
		run.add(g)
	}
	flush()

	return items
}

// ValidatePDF checks if the data looks like a valid PDF by checking the magic bytes.
func ValidatePDF(data []byte) bool {
	// PDF files start with "%PDF-"
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}
