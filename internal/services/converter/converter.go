// Package converter runs the PDF → Excel pipeline:
//
//	PDF bytes → text layer → page selection → table extraction → XLSX
//
// Each call works only on its own in-memory data. Nothing is cached or
// shared between conversions, so any number can run at once.
package converter

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	pdfservice "github.com/Shimizu-Technology/pdfhustle-api/internal/services/pdf"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/pagerange"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/spreadsheet"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/tables"
)

// Error kinds. Every error returned by Convert wraps exactly one of these,
// except cancellation: a done ctx comes back as ctx.Err() unwrapped.
var (
	ErrDocumentUnreadable = errors.New("document unreadable")
	ErrNoTabularContent   = errors.New("no tabular content")
	ErrEmitFailure        = errors.New("emit failure")
	ErrInvalidPageRange   = errors.New("invalid page range")
)

// ConversionError carries the kind of failure plus the underlying cause.
type ConversionError struct {
	Kind error
	Err  error
}

func (e *ConversionError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *ConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func fail(kind, cause error) error {
	return &ConversionError{Kind: kind, Err: cause}
}

// Options are the caller-supplied conversion settings.
type Options struct {
	// PageRange is "all" (or empty) or a selector like "1-3, 5".
	PageRange string
}

// Result is a successful conversion.
type Result struct {
	Workbook   []byte
	PageCount  int      // pages in the source document
	TableCount int      // sheets in the workbook
	Sheets     []string // sheet names, in order
}

// Converter wires the pipeline stages together.
type Converter struct {
	extractor *tables.Extractor
}

// New creates a converter; rowTolerance is passed to the table extractor.
func New(rowTolerance float64) *Converter {
	return &Converter{extractor: tables.NewExtractor(rowTolerance)}
}

// Convert turns PDF bytes into an XLSX workbook.
func (c *Converter) Convert(ctx context.Context, data []byte, opts Options) (*Result, error) {
	doc, err := pdfservice.Open(data)
	if err != nil {
		return nil, fail(ErrDocumentUnreadable, err)
	}

	selected, err := pagerange.Parse(opts.PageRange, doc.PageCount())
	if err != nil {
		return nil, fail(ErrInvalidPageRange, err)
	}

	failed := 0
	pages, err := doc.Pages(ctx, selected, func(page int, err error) {
		failed++
		log.Warn().Err(err).Int("page", page).Msg("⚠️  Page text extraction failed, skipping")
	})
	if err != nil {
		return nil, err
	}

	if len(selected) > 0 && failed == len(selected) {
		return nil, fail(ErrDocumentUnreadable, fmt.Errorf("none of the %d selected pages could be read", failed))
	}

	found := c.extractor.Extract(pages)
	if len(found) == 0 {
		return nil, fail(ErrNoTabularContent, nil)
	}

	workbook, err := spreadsheet.Emit(found)
	if err != nil {
		return nil, fail(ErrEmitFailure, err)
	}

	return &Result{
		Workbook:   workbook,
		PageCount:  doc.PageCount(),
		TableCount: len(found),
		Sheets:     spreadsheet.SheetNames(found),
	}, nil
}

// Message translates a Convert error into the text shown to end users.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoTabularContent):
		return "No table data found in PDF. Make sure your PDF contains tabular data."
	case errors.Is(err, ErrDocumentUnreadable):
		return "The PDF could not be read. It may be damaged, encrypted, or not a PDF."
	case errors.Is(err, ErrInvalidPageRange):
		var ce *ConversionError
		if errors.As(err, &ce) && ce.Err != nil {
			return "Invalid page range: " + strings.TrimPrefix(ce.Err.Error(), pagerange.ErrInvalidRange.Error()+": ")
		}
		return "Invalid page range."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "The conversion was cancelled."
	default:
		return "Failed to convert PDF to Excel."
	}
}

// OutputFilename derives the download name: "report.PDF" → "report.xlsx".
func OutputFilename(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "converted"
	}
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".pdf") {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		base = "converted"
	}
	return base + ".xlsx"
}
