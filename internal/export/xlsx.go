// Package export writes the donors overview as a spreadsheet.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"registry/internal/domain"
	"registry/internal/domain/columncfg"
)

const (
	// Filename is the download name of the workbook.
	Filename = "export.xlsx"
	// ContentType is the MIME type of an xlsx workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// SheetName is the only sheet of the workbook.
	SheetName = "Sheet1"
)

// ValueFunc returns the text written for one cell, usually the filter
// representation of the rendered cell.
type ValueFunc func(row domain.Overview, column string) string

// WriteXLSX writes a header row of column titles followed by one row per
// donor. Number columns are stored as numbers when they parse.
func WriteXLSX(w io.Writer, columns []columncfg.Column, rows []domain.Overview, value ValueFunc) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("export: stream writer: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = excelize.Cell{StyleID: bold, Value: c.Title}
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{}); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}

	for r, row := range rows {
		cells := make([]any, len(columns))
		for i, c := range columns {
			v := value(row, c.Name)
			cells[i] = v
			if c.Kind == columncfg.KindNumber {
				if n, err := strconv.Atoi(v); err == nil {
					cells[i] = n
				}
			}
		}
		axis, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("export: row %d: %w", r, err)
		}
		if err := sw.SetRow(axis, cells); err != nil {
			return fmt.Errorf("export: row %d: %w", r, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}

// RawValue exports the plain column values without any rendering.
func RawValue(row domain.Overview, column string) string {
	v, _ := row.Value(column)
	return v
}
