package models

import "time"

// Date-range filters can target either of the two date fields.
const (
	DateFieldEstimated = "estimated"
	DateFieldActual    = "actual"
)

// FilterConfig is the view configuration the dashboard sends. All filters
// are independently combinable; zero values mean "no filter". An empty
// SortField selects the default ordering (category rank, then bedrooms,
// then asking rent).
type FilterConfig struct {
	Property    string     `json:"property,omitempty"`    // substring match
	Category    string     `json:"category,omitempty"`    // exact match
	RentReady   string     `json:"rentReady,omitempty"`   // exact match on the raw flag
	Search      string     `json:"search,omitempty"`      // multi-field substring search
	MinRent     *float64   `json:"minRent,omitempty"`
	MaxRent     *float64   `json:"maxRent,omitempty"`
	FlaggedOnly bool       `json:"flaggedOnly,omitempty"` // hasIssues units only
	DateField   string     `json:"dateField,omitempty"`   // estimated (default) or actual
	DateFrom    *time.Time `json:"dateFrom,omitempty"`
	DateTo      *time.Time `json:"dateTo,omitempty"`

	SortField string `json:"sortField,omitempty"`
	SortDesc  bool   `json:"sortDesc,omitempty"`
}

// FilterPreset is a named, saved filter configuration. Presets are plain
// JSON blobs; there is no logic attached to them.
type FilterPreset struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Filters FilterConfig `json:"filters"`
	SavedAt time.Time    `json:"savedAt"`
}
