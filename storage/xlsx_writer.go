package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/unidoc/unioffice/spreadsheet"

	"rentready/models"
)

// ExportGrid lays out the spreadsheet export as a cell grid: the report
// title block, the header row, then one row per unit. The title block
// fills the same six leading rows the source export has, so a downloaded
// file feeds straight back through the extractor.
func ExportGrid(units []*models.UnitRecord, generated time.Time) models.Grid {
	grid := models.Grid{
		{models.TextCell("Rent Ready Report")},
		{models.TextCell("Generated " + generated.Format("1/2/2006"))},
		nil,
		nil,
		nil,
	}

	header := make([]models.Cell, len(ExportColumns))
	for i, col := range ExportColumns {
		header[i] = models.TextCell(col)
	}
	grid = append(grid, header)

	for _, u := range units {
		row := make([]models.Cell, 0, len(ExportColumns))
		for i, val := range exportRow(u) {
			// Asking rent stays numeric so spreadsheet consumers can sum it.
			if ExportColumns[i] == "Asking Rent" {
				row = append(row, models.NumberCell(u.AskingRent, val))
				continue
			}
			if val == "" {
				row = append(row, models.EmptyCell())
				continue
			}
			row = append(row, models.TextCell(val))
		}
		grid = append(grid, row)
	}

	return grid
}

// WriteXLSX encodes the export grid as a workbook and writes it to w.
func WriteXLSX(w *bytes.Buffer, units []*models.UnitRecord, generated time.Time) error {
	wb := spreadsheet.New()
	sheet := wb.AddSheet()
	sheet.SetName("Rent Ready")

	for _, gridRow := range ExportGrid(units, generated) {
		row := sheet.AddRow()
		for _, c := range gridRow {
			cell := row.AddCell()
			switch c.Kind {
			case models.CellNumber:
				cell.SetNumber(c.Number)
			case models.CellDate:
				cell.SetString(c.String())
			case models.CellText:
				cell.SetString(c.Text)
			}
		}
	}

	if err := wb.Save(w); err != nil {
		return fmt.Errorf("xlsx: save workbook: %w", err)
	}
	return nil
}

// XLSXBytes renders the export for the dashboard's download endpoint.
func XLSXBytes(units []*models.UnitRecord, generated time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, units, generated); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteXLSXFile saves the export next to batch-mode inputs.
func WriteXLSXFile(path string, units []*models.UnitRecord, generated time.Time) error {
	b, err := XLSXBytes(units, generated)
	if err != nil {
		return err
	}
	return writeFile(path, b)
}

func writeFile(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("xlsx: create output dir: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("xlsx: write %q: %w", path, err)
	}
	return nil
}
