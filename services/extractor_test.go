package services

import (
	"testing"
	"time"

	"rentready/models"
)

// row builds a 15-cell report row from positional strings.
func row(cells ...string) []models.Cell {
	out := make([]models.Cell, len(cells))
	for i, s := range cells {
		if s == "" {
			out[i] = models.EmptyCell()
		} else {
			out[i] = models.TextCell(s)
		}
	}
	return out
}

func unitRow(code string) []models.Cell {
	return row(code, "0014t11c", "2 Bedroom Suite", "Long Term", "1/1/2024", "Notice",
		"", "", "$1,250.00", "paint touch-up", "1/15/2024", "no", "", "J-100", "")
}

// headerBlock fills the six skipped title/header rows.
func headerBlock() models.Grid {
	return models.Grid{
		row("Rent Ready Report"),
		row("Generated 1/1/2024"),
		nil,
		nil,
		nil,
		row("Unit Code", "Unit Type", "Unit Description"),
	}
}

func newTestExtractor() *Extractor {
	return NewExtractor(newTestClassifier(), newTestLogger())
}

func TestExtractSkipsHeaderRows(t *testing.T) {
	e := newTestExtractor()

	// A perfectly valid unit row inside the header block must be ignored.
	grid := models.Grid{
		unitRow("101"),
		unitRow("102"),
		nil,
		nil,
		nil,
		nil,
	}
	grid = append(grid, unitRow("201"))

	units := e.Extract(grid)
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if units[0].UnitCode != "201" {
		t.Errorf("UnitCode = %q; want %q", units[0].UnitCode, "201")
	}
}

func TestExtractSkipsBlankAndTotalRows(t *testing.T) {
	e := newTestExtractor()

	grid := headerBlock()
	grid = append(grid,
		unitRow("101"),
		nil,
		row("", "  ", ""),
		row("Total Vacant", "", "", "", "", "", "", "", "12500"),
		row("GRAND TOTAL", "", "", "", "", "", "", "", "99999"),
		unitRow("102"),
	)

	units := e.Extract(grid)
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if units[0].UnitCode != "101" || units[1].UnitCode != "102" {
		t.Errorf("unit codes = %q, %q; want 101, 102", units[0].UnitCode, units[1].UnitCode)
	}
}

func TestExtractRejectsPropertyHeaderRows(t *testing.T) {
	e := newTestExtractor()

	grid := headerBlock()
	grid = append(grid,
		// matches the code pattern but has no unit type at all
		row("14t"),
		// has a unit type but neither description nor positive rent
		row("205", "0014t11c", "", "", "", "", "", "", "0"),
		// no description, but rent > 0 qualifies it
		row("206", "0014t11c", "", "", "", "", "", "", "950"),
		unitRow("207"),
	)

	units := e.Extract(grid)
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if units[0].UnitCode != "206" || units[1].UnitCode != "207" {
		t.Errorf("unit codes = %q, %q; want 206, 207", units[0].UnitCode, units[1].UnitCode)
	}
}

func TestExtractCodePatterns(t *testing.T) {
	grid := headerBlock()
	grid = append(grid,
		unitRow("A-101"),
		unitRow("12"),
		unitRow("12345"), // five digits: fails the legacy pattern only
		unitRow("unit 9"), // space: fails both patterns
	)

	t.Run("canonical", func(t *testing.T) {
		e := newTestExtractor()
		units := e.Extract(grid)
		if len(units) != 3 {
			t.Fatalf("expected 3 units, got %d", len(units))
		}
	})

	t.Run("legacy", func(t *testing.T) {
		e := newTestExtractor()
		e.CodePattern = LegacyUnitCodePattern
		units := e.Extract(grid)
		if len(units) != 1 {
			t.Fatalf("expected 1 unit, got %d", len(units))
		}
		if units[0].UnitCode != "12" {
			t.Errorf("UnitCode = %q; want %q", units[0].UnitCode, "12")
		}
	})
}

func TestExtractMapsAllFields(t *testing.T) {
	e := newTestExtractor()

	grid := headerBlock()
	grid = append(grid, []models.Cell{
		models.TextCell("  309  "),
		models.TextCell("0014t11c"),
		models.TextCell("2 Bedroom Suite"),
		models.TextCell("Long Term"),
		models.TextCell("12/15/2023"),
		models.TextCell("Notice Given"),
		models.TextCell("2/1/2024"),
		models.TextCell("WO-884"),
		models.NumberCell(1495, "1495.00"),
		models.TextCell("carpet replacement"),
		models.TextCell("1/20/2024"),
		models.TextCell("YES"),
		models.DateCell(time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC)),
		models.TextCell("J-204"),
		models.TextCell("ok to show"),
	})

	units := e.Extract(grid)
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	u := units[0]

	if u.UnitCode != "309" {
		t.Errorf("UnitCode = %q; want trimmed %q", u.UnitCode, "309")
	}
	if u.Property != "14t" {
		t.Errorf("Property = %q; want %q", u.Property, "14t")
	}
	if u.AskingRent != 1495 {
		t.Errorf("AskingRent = %.2f; want 1495", u.AskingRent)
	}
	if u.RentReady != "yes" {
		t.Errorf("RentReady = %q; want lower-cased %q", u.RentReady, "yes")
	}
	if u.EstimatedReady == nil || !u.EstimatedReady.Equal(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("EstimatedReady = %v; want 2024-01-20", u.EstimatedReady)
	}
	if u.ActualReady.Kind != models.DateKnown {
		t.Fatalf("ActualReady.Kind = %v; want DateKnown", u.ActualReady.Kind)
	}
	if u.FutureMoveInDate != "2/1/2024" || u.WorkOrder != "WO-884" || u.JobCode != "J-204" {
		t.Error("passthrough fields not mapped positionally")
	}

	// Future move-in wins the category decision despite rent ready.
	if u.Category != models.CategoryAlreadyRented {
		t.Errorf("Category = %q; want %q", u.Category, models.CategoryAlreadyRented)
	}
}

func TestExtractNormalizesBadCells(t *testing.T) {
	e := newTestExtractor()

	grid := headerBlock()
	grid = append(grid,
		// short row, unparseable rent and date: row still included
		row("401", "0014t11c", "Bachelor Suite", "", "", "", "", "", "call us", "", "soon"),
	)

	units := e.Extract(grid)
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	u := units[0]
	if u.AskingRent != 0 {
		t.Errorf("AskingRent = %.2f; want 0", u.AskingRent)
	}
	if u.EstimatedReady != nil {
		t.Errorf("EstimatedReady = %v; want nil", u.EstimatedReady)
	}
	if u.Category != models.CategoryUnknown {
		t.Errorf("Category = %q; want %q", u.Category, models.CategoryUnknown)
	}
	if u.JobCode != "" || u.Comments != "" {
		t.Error("missing trailing cells must read as empty")
	}
}
