// Package ingest reads a Rent Ready XLSX export into the plain cell grid
// the extractor consumes. Values only; styling, merges and column widths
// are irrelevant to classification.
package ingest

import (
	"fmt"
	"io"
	"os"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"

	"rentready/models"
)

// ReadGrid parses the workbook and returns the first sheet as a grid.
// A parse failure here is the one terminal error of the pipeline; every
// later anomaly is tolerated row by row.
func ReadGrid(r io.ReaderAt, size int64) (models.Grid, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return nil, fmt.Errorf("ingest: read workbook: %w", err)
	}

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("ingest: workbook has no sheets")
	}
	return sheetGrid(sheets[0]), nil
}

// ReadGridFile is ReadGrid over a file on disk.
func ReadGridFile(path string) (models.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %q: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("ingest: stat %q: %w", path, err)
	}
	return ReadGrid(f, info.Size())
}

func sheetGrid(sheet spreadsheet.Sheet) models.Grid {
	var grid models.Grid

	for _, row := range sheet.Rows() {
		rowIdx := int(row.RowNumber()) - 1
		if rowIdx < 0 {
			continue
		}
		// Sparse rows: blank report rows still occupy a grid position
		// because the header offset is positional.
		for rowIdx >= len(grid) {
			grid = append(grid, nil)
		}

		cells := make([]models.Cell, 0, len(row.Cells()))
		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			colIdx := int(reference.ColumnToIndex(colName))
			for colIdx >= len(cells) {
				cells = append(cells, models.EmptyCell())
			}
			cells[colIdx] = convertCell(cell)
		}
		grid[rowIdx] = cells
	}

	return grid
}

// convertCell maps a worksheet cell to the grid representation. Numeric
// cells keep both the raw number and the formatted text, so that
// date-formatted numerics still present a parseable date string.
func convertCell(cell spreadsheet.Cell) models.Cell {
	formatted := cell.GetFormattedValue()
	if cell.IsNumber() {
		if n, err := cell.GetValueAsNumber(); err == nil {
			return models.NumberCell(n, formatted)
		}
	}
	if formatted == "" {
		return models.EmptyCell()
	}
	return models.TextCell(formatted)
}
