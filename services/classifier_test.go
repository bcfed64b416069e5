package services

import (
	"testing"
	"time"

	"rentready/models"
	"rentready/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger() }

// fixed reference date so day-count math is deterministic
var testToday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestClassifier() *Classifier {
	return NewClassifier(newTestLogger(), testToday)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestExtractProperty(t *testing.T) {
	tests := []struct {
		unitType string
		want     string
	}{
		{"0014t11c", "14t"},
		{"14t11c", "14t"},
		{"", ""},
		{"AB", ""}, // no leading digit run
		{"7a", "7a"},
		{"  0023bld4  ", "23bld"},
		{"000", ""},
	}

	for _, tt := range tests {
		got := ExtractProperty(tt.unitType)
		if got != tt.want {
			t.Errorf("ExtractProperty(%q) = %q; want %q", tt.unitType, got, tt.want)
		}
	}
}

func TestExtractBedrooms(t *testing.T) {
	tests := []struct {
		description string
		want        int
	}{
		{"2 Bedroom Suite", 2},
		{"3-Bedroom Townhouse", 3},
		{"1bedroom", 1},
		{"0 Bedroom", 0},
		{"Bachelor Suite", 0},
		{"Studio", 0},
		{"Penthouse", BedroomsUnknown},
		{"", BedroomsUnknown},
	}

	for _, tt := range tests {
		got := ExtractBedrooms(tt.description)
		if got != tt.want {
			t.Errorf("ExtractBedrooms(%q) = %d; want %d", tt.description, got, tt.want)
		}
	}
}

func TestParseReportDate(t *testing.T) {
	tests := []struct {
		raw    string
		wantOK bool
		want   time.Time
	}{
		{"1/15/2024", true, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"12/3/24", true, time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC)},
		{" 2/29/2024 ", true, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"", false, time.Time{}},
		{"  ", false, time.Time{}},
		{"2024-01-15", false, time.Time{}},
		{"pending", false, time.Time{}},
		{"13/40/2024", false, time.Time{}},
	}

	for _, tt := range tests {
		got, ok := ParseReportDate(tt.raw)
		if ok != tt.wantOK {
			t.Errorf("ParseReportDate(%q) ok = %t; want %t", tt.raw, ok, tt.wantOK)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("ParseReportDate(%q) = %v; want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseRent(t *testing.T) {
	tests := []struct {
		cell models.Cell
		want float64
	}{
		{models.NumberCell(1250, "1250"), 1250},
		{models.NumberCell(-50, "-50"), 0},
		{models.TextCell("$1,250.00"), 1250},
		{models.TextCell("1895"), 1895},
		{models.TextCell("call for pricing"), 0},
		{models.TextCell(""), 0},
		{models.EmptyCell(), 0},
	}

	for _, tt := range tests {
		got := ParseRent(tt.cell)
		if got != tt.want {
			t.Errorf("ParseRent(%v) = %.2f; want %.2f", tt.cell, got, tt.want)
		}
	}
}

func TestCategorizeDecisionList(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name string
		unit models.UnitRecord
		want models.Category
	}{
		{
			name: "development keyword in rental type",
			unit: models.UnitRecord{RentalType: "Development Hold"},
			want: models.CategoryDownHold,
		},
		{
			name: "model keyword in comments",
			unit: models.UnitRecord{Comments: "used as MODEL suite"},
			want: models.CategoryDownHold,
		},
		{
			name: "future move-in wins over rent ready",
			unit: models.UnitRecord{FutureMoveInDate: "2/1/2024", RentReady: "yes"},
			want: models.CategoryAlreadyRented,
		},
		{
			name: "rent ready with actual date",
			unit: models.UnitRecord{RentReady: "yes", ActualReady: models.RawDate("1/10/2024")},
			want: models.CategoryRentReady,
		},
		{
			name: "rent ready without actual date is flagged",
			unit: models.UnitRecord{RentReady: "yes"},
			want: models.CategoryRentReadyFlagged,
		},
		{
			name: "estimated within 30 days",
			unit: models.UnitRecord{EstimatedReady: datePtr(2024, 1, 20)},
			want: models.CategoryNext30,
		},
		{
			name: "overdue estimated date is still next-30",
			unit: models.UnitRecord{EstimatedReady: datePtr(2023, 12, 15)},
			want: models.CategoryNext30,
		},
		{
			name: "estimated in 31-60 days",
			unit: models.UnitRecord{EstimatedReady: datePtr(2024, 2, 15)},
			want: models.CategoryNext31To60,
		},
		{
			name: "estimated beyond 60 days",
			unit: models.UnitRecord{EstimatedReady: datePtr(2024, 6, 1)},
			want: models.CategoryMoreThan60,
		},
		{
			name: "nothing usable",
			unit: models.UnitRecord{},
			want: models.CategoryUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Categorize(&tt.unit)
			if got != tt.want {
				t.Errorf("Categorize() = %q; want %q", got, tt.want)
			}
		})
	}
}

// Rule 1 outranks rent-ready even when a ready date is confirmed.
func TestCategorizePrecedenceModelOverReady(t *testing.T) {
	c := newTestClassifier()
	u := &models.UnitRecord{
		RentalType:  "Model Suite",
		RentReady:   "yes",
		ActualReady: models.KnownDate(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)),
	}

	if got := c.Categorize(u); got != models.CategoryDownHold {
		t.Errorf("Categorize() = %q; want %q", got, models.CategoryDownHold)
	}
}

// Every synthetically constructed record must land in exactly one of the
// eight buckets.
func TestCategorizeTotality(t *testing.T) {
	c := newTestClassifier()
	valid := make(map[models.Category]bool)
	for _, cat := range models.Categories {
		valid[cat] = true
	}

	units := []models.UnitRecord{
		{},
		{RentReady: "maybe"},
		{RentReady: "yes", ActualReady: models.RawDate("   ")},
		{Comments: "shutdown pending"},
		{FutureMoveInDate: "   "},
		{EstimatedReady: datePtr(1999, 1, 1)},
		{UnitCode: "x", UnitType: "x", RentalType: "x", Comments: "x"},
	}
	for i := range units {
		got := c.Categorize(&units[i])
		if !valid[got] {
			t.Errorf("unit %d: Categorize() returned %q, not one of the eight categories", i, got)
		}
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		cat  models.Category
		want models.Status
	}{
		{models.CategoryAlreadyRented, models.StatusRented},
		{models.CategoryDownHold, models.StatusNotAvailable},
		{models.CategoryRentReady, models.StatusReadyNow},
		{models.CategoryRentReadyFlagged, models.StatusFuture},
		{models.CategoryNext30, models.StatusFuture},
		{models.CategoryNext31To60, models.StatusFuture},
		{models.CategoryMoreThan60, models.StatusFuture},
		{models.CategoryUnknown, models.StatusFuture},
	}

	for _, tt := range tests {
		if got := StatusOf(tt.cat); got != tt.want {
			t.Errorf("StatusOf(%q) = %q; want %q", tt.cat, got, tt.want)
		}
	}
}

func TestDaysUntilReady(t *testing.T) {
	c := newTestClassifier()

	t.Run("estimated date", func(t *testing.T) {
		u := &models.UnitRecord{EstimatedReady: datePtr(2024, 1, 15)}
		got := c.DaysUntilReady(u)
		if got == nil || *got != 14 {
			t.Errorf("DaysUntilReady() = %v; want 14", got)
		}
	})

	t.Run("actual date preferred when rent ready", func(t *testing.T) {
		u := &models.UnitRecord{
			RentReady:      "yes",
			EstimatedReady: datePtr(2024, 1, 15),
			ActualReady:    models.RawDate("1/10/2024"),
		}
		got := c.DaysUntilReady(u)
		if got == nil || *got != 9 {
			t.Errorf("DaysUntilReady() = %v; want 9", got)
		}
	})

	t.Run("known actual date", func(t *testing.T) {
		u := &models.UnitRecord{
			RentReady:   "yes",
			ActualReady: models.KnownDate(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)),
		}
		got := c.DaysUntilReady(u)
		if got == nil || *got != 9 {
			t.Errorf("DaysUntilReady() = %v; want 9", got)
		}
	})

	t.Run("uncoercible actual falls back to estimated", func(t *testing.T) {
		u := &models.UnitRecord{
			RentReady:      "yes",
			EstimatedReady: datePtr(2024, 1, 15),
			ActualReady:    models.RawDate("as soon as painted"),
		}
		got := c.DaysUntilReady(u)
		if got == nil || *got != 14 {
			t.Errorf("DaysUntilReady() = %v; want 14", got)
		}
	})

	t.Run("overdue is negative", func(t *testing.T) {
		u := &models.UnitRecord{EstimatedReady: datePtr(2023, 12, 27)}
		got := c.DaysUntilReady(u)
		if got == nil || *got != -5 {
			t.Errorf("DaysUntilReady() = %v; want -5", got)
		}
	})

	t.Run("no usable date", func(t *testing.T) {
		u := &models.UnitRecord{RentReady: "yes", ActualReady: models.RawDate("tbd")}
		if got := c.DaysUntilReady(u); got != nil {
			t.Errorf("DaysUntilReady() = %v; want nil", *got)
		}
	})
}

func TestHasIssues(t *testing.T) {
	c := newTestClassifier()

	t.Run("ready without confirmed date", func(t *testing.T) {
		u := &models.UnitRecord{RentReady: "yes"}
		u.Category = c.Categorize(u)
		if !c.HasIssues(u) {
			t.Error("expected issue flag for ready unit without actual date")
		}
		if u.Category != models.CategoryRentReadyFlagged {
			t.Errorf("Category = %q; want %q", u.Category, models.CategoryRentReadyFlagged)
		}
	})

	t.Run("move-in scheduled but not ready", func(t *testing.T) {
		u := &models.UnitRecord{FutureMoveInDate: "2025-01-01", RentReady: "no"}
		u.Category = c.Categorize(u)
		if !c.HasIssues(u) {
			t.Error("expected issue flag for rented-but-not-ready unit")
		}
		if u.Category != models.CategoryAlreadyRented {
			t.Errorf("Category = %q; want %q", u.Category, models.CategoryAlreadyRented)
		}
	})

	t.Run("down unit marked ready", func(t *testing.T) {
		u := &models.UnitRecord{
			RentalType:  "Hold",
			RentReady:   "yes",
			ActualReady: models.RawDate("1/10/2024"),
		}
		u.Category = c.Categorize(u)
		if !c.HasIssues(u) {
			t.Error("expected issue flag for down/hold unit marked ready")
		}
	})

	t.Run("third clause can be disabled", func(t *testing.T) {
		legacy := newTestClassifier()
		legacy.FlagDevReady = false
		u := &models.UnitRecord{
			RentalType:  "Hold",
			RentReady:   "yes",
			ActualReady: models.RawDate("1/10/2024"),
		}
		u.Category = legacy.Categorize(u)
		if legacy.HasIssues(u) {
			t.Error("legacy behavior must not flag down-but-ready units")
		}
	})

	t.Run("clean unit", func(t *testing.T) {
		u := &models.UnitRecord{
			RentReady:   "yes",
			ActualReady: models.RawDate("1/10/2024"),
		}
		u.Category = c.Categorize(u)
		if c.HasIssues(u) {
			t.Error("unexpected issue flag for consistent record")
		}
	})
}

func TestApplyDerivesAllFields(t *testing.T) {
	c := newTestClassifier()
	u := &models.UnitRecord{
		UnitType:       "0014t11c",
		RentReady:      "yes",
		ActualReady:    models.RawDate("1/10/2024"),
		EstimatedReady: datePtr(2024, 1, 15),
	}
	c.Apply(u)

	if u.Property != "14t" {
		t.Errorf("Property = %q; want %q", u.Property, "14t")
	}
	if u.Category != models.CategoryRentReady {
		t.Errorf("Category = %q; want %q", u.Category, models.CategoryRentReady)
	}
	if u.Status != models.StatusReadyNow {
		t.Errorf("Status = %q; want %q", u.Status, models.StatusReadyNow)
	}
	if u.DaysUntilReady == nil || *u.DaysUntilReady != 9 {
		t.Errorf("DaysUntilReady = %v; want 9", u.DaysUntilReady)
	}
	if u.HasIssues {
		t.Error("unexpected issue flag")
	}
}
