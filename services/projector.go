package services

import (
	"sort"
	"strings"
	"time"

	"rentready/models"
	"rentready/utils"
)

// Projector applies the dashboard's view configuration to a classified
// unit list. It never mutates records or the input slice; every call
// returns a fresh slice.
type Projector struct {
	logger *utils.Logger
}

// NewProjector creates a Projector.
func NewProjector(logger *utils.Logger) *Projector {
	return &Projector{logger: logger}
}

// Apply filters and sorts the units per the configuration.
func (p *Projector) Apply(units []*models.UnitRecord, f models.FilterConfig) []*models.UnitRecord {
	out := make([]*models.UnitRecord, 0, len(units))
	for _, u := range units {
		if p.matches(u, f) {
			out = append(out, u)
		}
	}

	p.sortUnits(out, f)

	p.logger.Debug("[projector] %d → %d units after filtering", len(units), len(out))
	return out
}

// searchFields are the record fields covered by the free-text search.
func searchFields(u *models.UnitRecord) []string {
	return []string{
		u.UnitCode,
		u.UnitDescription,
		u.RentalType,
		u.MakeReadyNotes,
		u.Comments,
		u.JobCode,
	}
}

func (p *Projector) matches(u *models.UnitRecord, f models.FilterConfig) bool {
	if f.Property != "" && !containsFold(u.Property, strings.ToLower(f.Property)) {
		return false
	}
	if f.Category != "" && string(u.Category) != f.Category {
		return false
	}
	if f.RentReady != "" && u.RentReady != lowerTrim(f.RentReady) {
		return false
	}
	if f.FlaggedOnly && !u.HasIssues {
		return false
	}
	if f.MinRent != nil && u.AskingRent < *f.MinRent {
		return false
	}
	if f.MaxRent != nil && u.AskingRent > *f.MaxRent {
		return false
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		found := false
		for _, field := range searchFields(u) {
			if containsFold(field, needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.DateFrom != nil || f.DateTo != nil {
		t, ok := filterDate(u, f.DateField)
		if !ok {
			return false
		}
		if f.DateFrom != nil && t.Before(*f.DateFrom) {
			return false
		}
		if f.DateTo != nil && t.After(*f.DateTo) {
			return false
		}
	}

	return true
}

// filterDate picks the date the range filter targets. Raw actual dates
// are coerced the same way the classifier coerces them.
func filterDate(u *models.UnitRecord, field string) (time.Time, bool) {
	if field == models.DateFieldActual {
		switch u.ActualReady.Kind {
		case models.DateKnown:
			return u.ActualReady.Time, true
		case models.DateRaw:
			return ParseReportDate(u.ActualReady.Raw)
		}
		return time.Time{}, false
	}

	if u.EstimatedReady == nil {
		return time.Time{}, false
	}
	return *u.EstimatedReady, true
}

func (p *Projector) sortUnits(units []*models.UnitRecord, f models.FilterConfig) {
	if f.SortField == "" {
		// Default three-level ordering: category priority, then bedroom
		// count, then asking rent.
		sort.SliceStable(units, func(i, j int) bool {
			a, b := units[i], units[j]
			if ra, rb := a.Category.Rank(), b.Category.Rank(); ra != rb {
				return ra < rb
			}
			if ba, bb := ExtractBedrooms(a.UnitDescription), ExtractBedrooms(b.UnitDescription); ba != bb {
				return ba < bb
			}
			return a.AskingRent < b.AskingRent
		})
		return
	}

	less := fieldLess(f.SortField)
	sort.SliceStable(units, func(i, j int) bool {
		if f.SortDesc {
			return less(units[j], units[i])
		}
		return less(units[i], units[j])
	})
}

// fieldLess returns the comparison for an explicitly chosen sort column.
// Unknown fields fall back to unit code so a bad request still yields a
// stable, predictable order.
func fieldLess(field string) func(a, b *models.UnitRecord) bool {
	switch field {
	case "property":
		return func(a, b *models.UnitRecord) bool { return a.Property < b.Property }
	case "unitType":
		return func(a, b *models.UnitRecord) bool { return a.UnitType < b.UnitType }
	case "unitDescription":
		return func(a, b *models.UnitRecord) bool { return a.UnitDescription < b.UnitDescription }
	case "rentalType":
		return func(a, b *models.UnitRecord) bool { return a.RentalType < b.RentalType }
	case "askingRent":
		return func(a, b *models.UnitRecord) bool { return a.AskingRent < b.AskingRent }
	case "category":
		return func(a, b *models.UnitRecord) bool { return a.Category.Rank() < b.Category.Rank() }
	case "status":
		return func(a, b *models.UnitRecord) bool { return a.Status < b.Status }
	case "rentReady":
		return func(a, b *models.UnitRecord) bool { return a.RentReady < b.RentReady }
	case "daysUntilReady":
		return func(a, b *models.UnitRecord) bool {
			// nil day counts sort last in ascending order
			switch {
			case a.DaysUntilReady == nil:
				return false
			case b.DaysUntilReady == nil:
				return true
			default:
				return *a.DaysUntilReady < *b.DaysUntilReady
			}
		}
	case "estimatedReadyDate":
		return func(a, b *models.UnitRecord) bool {
			switch {
			case a.EstimatedReady == nil:
				return false
			case b.EstimatedReady == nil:
				return true
			default:
				return a.EstimatedReady.Before(*b.EstimatedReady)
			}
		}
	case "hasIssues":
		return func(a, b *models.UnitRecord) bool { return a.HasIssues && !b.HasIssues }
	default:
		return func(a, b *models.UnitRecord) bool { return a.UnitCode < b.UnitCode }
	}
}
