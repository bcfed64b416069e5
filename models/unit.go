package models

import (
	"strings"
	"time"
)

// Category is the lifecycle bucket assigned to every extracted unit.
// Exactly one of the eight values below; classification never produces
// anything else.
type Category string

const (
	CategoryRentReady        Category = "Available & Rent Ready"
	CategoryRentReadyFlagged Category = "Available & Rent Ready (Flagged)"
	CategoryNext30           Category = "Available in Next 30 Days"
	CategoryNext31To60       Category = "Available in Next 31-60 Days"
	CategoryMoreThan60       Category = "Available in More than 60 Days"
	CategoryAlreadyRented    Category = "Already Rented"
	CategoryDownHold         Category = "Down/Hold/Model/Development"
	CategoryUnknown          Category = "Unknown"
)

// Categories lists every category in display/priority order. The default
// sort ranks units by position in this slice, Unknown last.
var Categories = []Category{
	CategoryRentReady,
	CategoryRentReadyFlagged,
	CategoryNext30,
	CategoryNext31To60,
	CategoryMoreThan60,
	CategoryAlreadyRented,
	CategoryDownHold,
	CategoryUnknown,
}

// Rank returns the category's position in the priority order.
func (c Category) Rank() int {
	for i, cat := range Categories {
		if c == cat {
			return i
		}
	}
	return len(Categories)
}

// Status is the four-value shorthand derived from Category.
type Status string

const (
	StatusReadyNow     Status = "Ready Now"
	StatusFuture       Status = "Future"
	StatusRented       Status = "Rented"
	StatusNotAvailable Status = "Not Available"
)

// DateKind tags the representation of a mixed-type date field.
type DateKind int

const (
	DateAbsent DateKind = iota
	DateKnown           // parsed calendar date
	DateRaw             // original text kept as-is
)

// DateValue represents the actual-ready date, which the source export
// stores inconsistently as either a real date cell or free text. The
// legacy mixed representation is intentional; consumers must handle all
// three kinds.
type DateValue struct {
	Kind DateKind  `json:"kind"`
	Time time.Time `json:"time,omitempty"`
	Raw  string    `json:"raw,omitempty"`
}

// KnownDate returns a DateValue holding a parsed calendar date.
func KnownDate(t time.Time) DateValue { return DateValue{Kind: DateKnown, Time: t} }

// RawDate returns a DateValue holding unparsed source text.
func RawDate(s string) DateValue { return DateValue{Kind: DateRaw, Raw: s} }

// NoDate returns the absent DateValue.
func NoDate() DateValue { return DateValue{Kind: DateAbsent} }

// Present reports whether the value carries any date information at all:
// a known date, or raw text that is not blank.
func (d DateValue) Present() bool {
	switch d.Kind {
	case DateKnown:
		return !d.Time.IsZero()
	case DateRaw:
		return strings.TrimSpace(d.Raw) != ""
	default:
		return false
	}
}

// Display renders the value for exports: known dates in M/D/YYYY form,
// raw text verbatim, absent as "".
func (d DateValue) Display() string {
	switch d.Kind {
	case DateKnown:
		return d.Time.Format("1/2/2006")
	case DateRaw:
		return d.Raw
	default:
		return ""
	}
}

// UnitRecord is the canonical classified unit produced by the extraction
// pipeline. Records are built once per qualifying report row and never
// mutated afterwards; filtering, sorting and exporting all work on copies
// of the slice, not the records.
type UnitRecord struct {
	UnitCode         string     `json:"unitCode"`
	UnitType         string     `json:"unitType"`
	UnitDescription  string     `json:"unitDescription"`
	RentalType       string     `json:"rentalType"`
	VacantAsOf       string     `json:"vacantAsOf"`
	VacateType       string     `json:"vacateType"`
	FutureMoveInDate string     `json:"futureMoveInDate"`
	WorkOrder        string     `json:"workOrder"`
	AskingRent       float64    `json:"askingRent"`
	MakeReadyNotes   string     `json:"makeReadyNotes"`
	EstimatedReady   *time.Time `json:"estimatedReadyDate"`
	RentReady        string     `json:"rentReady"` // lower-cased; "yes" means ready
	ActualReady      DateValue  `json:"actualReadyDate"`
	JobCode          string     `json:"jobCode"`
	Comments         string     `json:"comments"`

	// Derived fields, attached by the classifier.
	Property       string   `json:"property"`
	Category       Category `json:"category"`
	Status         Status   `json:"status"`
	DaysUntilReady *int     `json:"daysUntilReady"` // negative = overdue, nil = no usable date
	HasIssues      bool     `json:"hasIssues"`
}

// IsRentReady reports whether the unit is marked ready in the source.
func (u *UnitRecord) IsRentReady() bool { return u.RentReady == "yes" }

// ReadyReport holds the aggregate summary over a classified unit list,
// shown in the terminal after a batch run and in the print view header.
type ReadyReport struct {
	TotalUnits     int              `json:"totalUnits"`
	ReadyNow       int              `json:"readyNow"`
	Flagged        int              `json:"flagged"`
	CategoryCounts map[Category]int `json:"categoryCounts"`
	UnitsByProp    map[string]int   `json:"unitsByProperty"`
	AverageRent    float64          `json:"averageRent"`
	MinRent        float64          `json:"minRent"`
	MaxRent        float64          `json:"maxRent"`
}
