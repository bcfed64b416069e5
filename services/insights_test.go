package services

import (
	"testing"

	"rentready/models"
)

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleUnits())

	if r.TotalUnits != 5 {
		t.Errorf("TotalUnits: got %d, want 5", r.TotalUnits)
	}
	if r.ReadyNow != 2 {
		t.Errorf("ReadyNow: got %d, want 2", r.ReadyNow)
	}
	if r.Flagged != 1 {
		t.Errorf("Flagged: got %d, want 1", r.Flagged)
	}
	if r.CategoryCounts[models.CategoryRentReady] != 2 {
		t.Errorf("Rent Ready count: got %d, want 2", r.CategoryCounts[models.CategoryRentReady])
	}
	if r.CategoryCounts[models.CategoryNext30] != 1 {
		t.Errorf("Next 30 count: got %d, want 1", r.CategoryCounts[models.CategoryNext30])
	}
}

func TestInsightRentStats(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleUnits())

	if r.MinRent != 900 {
		t.Errorf("MinRent: got %.2f, want 900", r.MinRent)
	}
	if r.MaxRent != 3200 {
		t.Errorf("MaxRent: got %.2f, want 3200", r.MaxRent)
	}
	wantAvg := 1760.0 // (1400+1200+900+2100+3200)/5
	if r.AverageRent != wantAvg {
		t.Errorf("AverageRent: got %.2f, want %.2f", r.AverageRent, wantAvg)
	}
}

func TestInsightPropertyGrouping(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleUnits())

	if r.UnitsByProp["14t"] != 2 {
		t.Errorf("14t count: got %d, want 2", r.UnitsByProp["14t"])
	}
	if r.UnitsByProp["23b"] != 2 {
		t.Errorf("23b count: got %d, want 2", r.UnitsByProp["23b"])
	}
	if r.UnitsByProp["7a"] != 1 {
		t.Errorf("7a count: got %d, want 1", r.UnitsByProp["7a"])
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(nil)
	if r.TotalUnits != 0 {
		t.Errorf("expected 0 total units for empty input")
	}
	if len(r.CategoryCounts) != 0 {
		t.Errorf("expected no category counts for empty input")
	}
}
