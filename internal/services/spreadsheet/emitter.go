// Package spreadsheet serializes extracted tables into an XLSX workbook.
//
// We use xuri/excelize for the container format. Building the grid
// (padding rows, sizing columns, naming sheets) is kept separate from
// writing it, so the layout rules can be tested without opening a zip file.
package spreadsheet

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/tables"
)

// Column width bounds, in character-width units.
const (
	MinColumnWidth = 10
	MaxColumnWidth = 50
)

// SingleSheetName is used when the whole document yields exactly one table.
const SingleSheetName = "Data"

// ContentType is the MIME type of the emitted workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	// ErrNoTables is returned when Emit is called without any table.
	// Callers are expected to short-circuit before reaching the emitter.
	ErrNoTables = errors.New("no tables to emit")

	// ErrEmitFailure wraps every failure of the serialization step.
	ErrEmitFailure = errors.New("spreadsheet serialization failed")
)

// Sheet is one normalized table, ready to be written.
type Sheet struct {
	Name   string
	Rows   [][]string // every row has exactly len(Widths) cells
	Widths []float64
}

// Emit builds the workbook for the given tables and returns its bytes.
func Emit(tbls []tables.Table) ([]byte, error) {
	if len(tbls) == 0 {
		return nil, ErrNoTables
	}

	sheets := Layout(tbls)
	for _, s := range sheets {
		if len(s.Rows) > excelize.TotalRows {
			return nil, fmt.Errorf("%w: sheet %q has %d rows (max %d)", ErrEmitFailure, s.Name, len(s.Rows), excelize.TotalRows)
		}
		if len(s.Widths) > excelize.MaxColumns {
			return nil, fmt.Errorf("%w: sheet %q has %d columns (max %d)", ErrEmitFailure, s.Name, len(s.Widths), excelize.MaxColumns)
		}
		// excelize truncates oversized cells; refuse instead of losing text.
		for r, row := range s.Rows {
			for c, v := range row {
				if utf8.RuneCountInString(v) > excelize.TotalCellChars {
					return nil, fmt.Errorf("%w: cell %d:%d of sheet %q exceeds %d characters", ErrEmitFailure, r+1, c+1, s.Name, excelize.TotalCellChars)
				}
			}
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if err := writeSheet(f, i, s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEmitFailure, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmitFailure, err)
	}
	return buf.Bytes(), nil
}

// writeSheet adds one sheet to the workbook. The first sheet reuses the
// default "Sheet1" that excelize creates with every new file.
func writeSheet(f *excelize.File, index int, s Sheet) error {
	if index == 0 {
		if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	} else if _, err := f.NewSheet(s.Name); err != nil {
		return fmt.Errorf("create sheet %q: %w", s.Name, err)
	}

	for r, row := range s.Rows {
		cellRef, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = v
		}
		if err := f.SetSheetRow(s.Name, cellRef, &values); err != nil {
			return fmt.Errorf("write row %d of %q: %w", r+1, s.Name, err)
		}
	}

	for c, width := range s.Widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.Name, col, col, width); err != nil {
			return fmt.Errorf("set width of column %s in %q: %w", col, s.Name, err)
		}
	}
	return nil
}

// Layout normalizes every table into a Sheet: rows padded to a common
// width, per-column widths, and a unique sheet name.
func Layout(tbls []tables.Table) []Sheet {
	names := SheetNames(tbls)
	sheets := make([]Sheet, 0, len(tbls))
	for i, t := range tbls {
		rows := PadRows(t.Rows, t.MaxCols())
		sheets = append(sheets, Sheet{
			Name:   names[i],
			Rows:   rows,
			Widths: ColumnWidths(rows),
		})
	}
	return sheets
}

// SheetNames returns the unique sheet name of every table, in order.
func SheetNames(tbls []tables.Table) []string {
	used := make(map[string]bool, len(tbls))
	names := make([]string, len(tbls))
	for i, t := range tbls {
		names[i] = uniqueName(SheetName(t.PageNumber, len(tbls)), used)
	}
	return names
}

// SheetName returns "Data" for a single-table document, else "Page N".
func SheetName(pageNumber, tableCount int) string {
	if tableCount == 1 {
		return SingleSheetName
	}
	return fmt.Sprintf("Page %d", pageNumber)
}

// uniqueName appends " (2)", " (3)", ... until the name is unused.
func uniqueName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s (%d)", name, n)
	}
	used[candidate] = true
	return candidate
}

// PadRows copies rows, appending empty cells so each has exactly maxCols
// cells. Rows are never truncated and the input is left untouched.
func PadRows(rows []tables.Row, maxCols int) [][]string {
	padded := make([][]string, len(rows))
	for i, row := range rows {
		width := maxCols
		if len(row) > width {
			width = len(row)
		}
		out := make([]string, width)
		copy(out, row)
		padded[i] = out
	}
	return padded
}

// ColumnWidths sizes each column after its longest cell, clamped to
// [MinColumnWidth, MaxColumnWidth]. Length is counted in runes.
func ColumnWidths(rows [][]string) []float64 {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	widths := make([]float64, cols)
	for c := 0; c < cols; c++ {
		longest := 0
		for _, row := range rows {
			if c < len(row) {
				if n := utf8.RuneCountInString(row[c]); n > longest {
					longest = n
				}
			}
		}
		widths[c] = float64(clamp(longest, MinColumnWidth, MaxColumnWidth))
	}
	return widths
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
