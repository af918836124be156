// Package tables turns positioned PDF text into row/cell tables (PDF → Excel).
//
// There are no grid lines to follow in most PDFs, so this is a geometric
// heuristic: glyph runs that sit on (approximately) the same baseline form a
// row, and each run inside a row becomes one cell. Rows keep the visual
// top-to-bottom order, cells keep the left-to-right order. No global column
// grid is inferred; every row stands on its own.
//
// Go Pattern: The extractor is a pure function over plain data. It holds no
// state between calls, so one Extractor can be shared by any number of
// concurrent conversions without locks.
package tables

import (
	"math"
	"sort"
	"strings"
)

// DefaultRowTolerance buckets baselines to the nearest whole unit, which
// absorbs sub-pixel jitter between glyphs on the same visual line.
// Rows spaced closer than one unit will merge.
const DefaultRowTolerance = 1.0

// MinRows is the number of rows a page must produce to count as a table.
// Single-row pages are treated as noise (titles, footers, page numbers).
const MinRows = 2

// TextItem is one glyph run on a page. Coordinates use the PDF convention:
// the origin is bottom-left, so Y grows upward.
type TextItem struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
}

// Page is the text layer of a single page.
type Page struct {
	Number int        `json:"page_number"` // 1-based
	Items  []TextItem `json:"items"`
}

// Row is an ordered list of cell strings, left to right.
type Row []string

// Table is the set of rows found on one page.
type Table struct {
	PageNumber int   `json:"page_number"`
	Rows       []Row `json:"rows"`
}

// MaxCols returns the length of the longest row.
func (t Table) MaxCols() int {
	maxCols := 0
	for _, row := range t.Rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	return maxCols
}

// Extractor clusters text items into tables.
type Extractor struct {
	// RowTolerance is the vertical bucket size used to decide whether two
	// items share a row. 1.0 reproduces rounding Y to the nearest integer.
	RowTolerance float64
}

// NewExtractor creates an extractor. A non-positive tolerance falls back
// to DefaultRowTolerance.
func NewExtractor(rowTolerance float64) *Extractor {
	if rowTolerance <= 0 || math.IsNaN(rowTolerance) || math.IsInf(rowTolerance, 0) {
		rowTolerance = DefaultRowTolerance
	}
	return &Extractor{RowTolerance: rowTolerance}
}

// Extract returns one table per page that produced at least MinRows rows,
// in the order the pages were given. An empty result is not an error:
// the caller decides how to report "no tabular content".
func (e *Extractor) Extract(pages []Page) []Table {
	var result []Table
	for _, page := range pages {
		rows := e.Rows(page.Items)
		if len(rows) < MinRows {
			continue
		}
		result = append(result, Table{
			PageNumber: page.Number,
			Rows:       rows,
		})
	}
	return result
}

// cell pairs a trimmed string with its horizontal position while sorting.
type cell struct {
	x    float64
	text string
}

// Rows clusters the items of one page into ordered rows.
// The items slice is not modified.
func (e *Extractor) Rows(items []TextItem) []Row {
	tolerance := e.RowTolerance
	if tolerance <= 0 {
		tolerance = DefaultRowTolerance
	}

	// Go Pattern: A map from key to slice is the idiomatic "group by".
	// Map iteration order is random, so keys are collected and sorted below.
	byRow := make(map[int64][]cell)
	for _, item := range items {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}
		key := rowKey(item.Y, tolerance)
		byRow[key] = append(byRow[key], cell{x: item.X, text: text})
	}

	keys := make([]int64, 0, len(byRow))
	for k := range byRow {
		keys = append(keys, k)
	}
	// Descending: PDF y grows upward, so the top of the page comes first.
	sort.Slice(keys, func(i, j int) bool { return keys[i] > keys[j] })

	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		cells := byRow[k]
		// SliceStable keeps content-stream order for runs with equal x.
		sort.SliceStable(cells, func(i, j int) bool { return cells[i].x < cells[j].x })

		row := make(Row, len(cells))
		for i, c := range cells {
			row[i] = c.text
		}
		rows = append(rows, row)
	}
	return rows
}

// rowKey maps a baseline onto its bucket. math.Round rounds half away from
// zero; for positive page coordinates that is the usual "round half up".
func rowKey(y, tolerance float64) int64 {
	return int64(math.Round(y / tolerance))
}
