// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	// excelSheet is the single worksheet name.
	excelSheet = "Search Results"

	// excelHeaderRow is the fixed row the column headers occupy; the
	// metadata block sits above it and data rows follow below.
	excelHeaderRow = 6

	// excelMaxColWidth caps auto-sized column widths.
	excelMaxColWidth = 50
)

// metaLines returns the four header-block lines written above the table.
func (m Meta) metaLines() []string {
	return []string{
		"ICIJ Offshore Leaks Search Results",
		"Query: " + m.Query,
		"Sources: " + m.SourcesLabel(),
		"Date: " + m.Generated.Format(DateFormat),
	}
}

// excelCells returns the row's cell values with the score kept numeric.
func (r Row) excelCells(withTypes bool) []any {
	v := []any{r.EntityName, r.Score, r.ID}
	if withTypes {
		v = append(v, r.Type)
	}
	return append(v, r.Query, r.SearchDate, r.Link)
}

// Excel produces a styled single-sheet workbook: a four-line metadata block,
// a filled header row at the fixed offset, then one row per export row.
// Columns are sized to their longest rendered value plus padding, capped at
// excelMaxColWidth.
func Excel(rows []Row, meta Meta, withTypes bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", excelSheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	for i, line := range meta.metaLines() {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetCellValue(excelSheet, cell, line); err != nil {
			return nil, fmt.Errorf("writing metadata cell %s: %w", cell, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16, Color: "C62828"},
	})
	if err != nil {
		return nil, fmt.Errorf("building title style: %w", err)
	}
	if err := f.SetCellStyle(excelSheet, "A1", "A1", titleStyle); err != nil {
		return nil, fmt.Errorf("styling title: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"C62828"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("building header style: %w", err)
	}

	for i, title := range headers(withTypes) {
		cell, err := excelize.CoordinatesToCellName(i+1, excelHeaderRow)
		if err != nil {
			return nil, fmt.Errorf("addressing header column %d: %w", i+1, err)
		}
		if err := f.SetCellValue(excelSheet, cell, title); err != nil {
			return nil, fmt.Errorf("writing header %q: %w", title, err)
		}
		if err := f.SetCellStyle(excelSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("styling header %q: %w", title, err)
		}
	}

	for rowIdx, r := range rows {
		for colIdx, v := range r.excelCells(withTypes) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, excelHeaderRow+1+rowIdx)
			if err != nil {
				return nil, fmt.Errorf("addressing data cell: %w", err)
			}
			if err := f.SetCellValue(excelSheet, cell, v); err != nil {
				return nil, fmt.Errorf("writing row %s: %w", r.ID, err)
			}
		}
	}

	for i, w := range columnWidths(rows, meta, withTypes) {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("addressing column %d: %w", i+1, err)
		}
		if err := f.SetColWidth(excelSheet, name, name, w); err != nil {
			return nil, fmt.Errorf("sizing column %s: %w", name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("finalizing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths sizes each column to its longest rendered value plus two,
// capped at excelMaxColWidth. The metadata block occupies the first column
// and counts toward its width.
func columnWidths(rows []Row, meta Meta, withTypes bool) []float64 {
	longest := make([]int, len(headers(withTypes)))
	for i, title := range headers(withTypes) {
		longest[i] = len(title)
	}
	for _, line := range meta.metaLines() {
		if len(line) > longest[0] {
			longest[0] = len(line)
		}
	}
	for _, r := range rows {
		for i, cell := range r.cells(withTypes) {
			if len(cell) > longest[i] {
				longest[i] = len(cell)
			}
		}
	}

	widths := make([]float64, len(longest))
	for i, n := range longest {
		w := float64(n + 2)
		if w > excelMaxColWidth {
			w = excelMaxColWidth
		}
		widths[i] = w
	}
	return widths
}
