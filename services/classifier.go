package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"rentready/models"
	"rentready/utils"
)

var (
	// propertyRegexp captures the property code: a leading digit run
	// followed by letters, after leading zeros are stripped.
	propertyRegexp = regexp.MustCompile(`^(\d+[A-Za-z]+)`)
	// bedroomRegexp captures "2 Bedroom", "3-bedroom", "1bedroom" etc.
	bedroomRegexp = regexp.MustCompile(`(?i)(\d+)\s*-?\s*bed\s*room`)
	// rentRegexp captures the numeric part of currency-like text.
	rentRegexp = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// BedroomsUnknown sorts units with no recognizable bedroom count after
// every real value.
const BedroomsUnknown = 999

// Down/hold keywords checked against rental type and comments.
var downHoldKeywords = []string{"development", "model", "hold", "down"}

// Classifier derives the category, status, days-until-ready and
// data-quality fields of a unit record. It is pure over its inputs: the
// reference date is injected rather than read from the wall clock, so a
// fixed Today makes the whole pipeline deterministic.
type Classifier struct {
	logger *utils.Logger

	// Today is the reference date for day-count math.
	Today time.Time
	// FlagDevReady enables the third hasIssues clause (down/hold unit
	// marked rent ready). Older report revisions did not flag this.
	FlagDevReady bool
}

// NewClassifier creates a Classifier using today as the reference date.
func NewClassifier(logger *utils.Logger, today time.Time) *Classifier {
	return &Classifier{
		logger:       logger,
		Today:        today.Truncate(24 * time.Hour),
		FlagDevReady: true,
	}
}

// Apply computes and attaches all derived fields. Order matters: category
// first, then status and the two fields that read category.
func (c *Classifier) Apply(u *models.UnitRecord) {
	u.Property = ExtractProperty(u.UnitType)
	u.Category = c.Categorize(u)
	u.Status = StatusOf(u.Category)
	u.DaysUntilReady = c.DaysUntilReady(u)
	u.HasIssues = c.HasIssues(u)
}

// Categorize assigns the lifecycle category. First matching rule wins:
//
//  1. down/hold/model/development keyword in rental type or comments
//  2. a future move-in date is set → already rented
//  3. marked rent ready → ready now, or flagged when no actual date backs it
//  4. estimated date present → one of the three future windows
//  5. nothing usable → Unknown
//
// Rule 1 deliberately outranks rent-ready status; a model suite marked
// ready stays Down/Hold and is flagged separately by HasIssues.
func (c *Classifier) Categorize(u *models.UnitRecord) models.Category {
	if containsAny(u.RentalType, downHoldKeywords) || containsAny(u.Comments, downHoldKeywords) {
		return models.CategoryDownHold
	}

	if strings.TrimSpace(u.FutureMoveInDate) != "" {
		return models.CategoryAlreadyRented
	}

	if u.IsRentReady() {
		if u.ActualReady.Present() {
			return models.CategoryRentReady
		}
		return models.CategoryRentReadyFlagged
	}

	if u.EstimatedReady != nil {
		diff := c.daysFromToday(*u.EstimatedReady)
		switch {
		case diff <= 30: // overdue units land here too: most urgent
			return models.CategoryNext30
		case diff <= 60:
			return models.CategoryNext31To60
		default:
			return models.CategoryMoreThan60
		}
	}

	return models.CategoryUnknown
}

// StatusOf is the four-value shorthand of the category.
func StatusOf(cat models.Category) models.Status {
	switch cat {
	case models.CategoryAlreadyRented:
		return models.StatusRented
	case models.CategoryDownHold:
		return models.StatusNotAvailable
	case models.CategoryRentReady:
		return models.StatusReadyNow
	default:
		return models.StatusFuture
	}
}

// DaysUntilReady computes the signed day count to the unit's ready date,
// nil when no usable date exists. Rent-ready units with an actual date use
// it; an actual date that cannot be coerced to a calendar date falls back
// to the estimated date.
func (c *Classifier) DaysUntilReady(u *models.UnitRecord) *int {
	if u.IsRentReady() && u.ActualReady.Present() {
		switch u.ActualReady.Kind {
		case models.DateKnown:
			d := c.daysFromToday(u.ActualReady.Time)
			return &d
		case models.DateRaw:
			if t, ok := ParseReportDate(u.ActualReady.Raw); ok {
				d := c.daysFromToday(t)
				return &d
			}
			// fall through to the estimated date
		}
	}

	if u.EstimatedReady == nil {
		return nil
	}
	d := c.daysFromToday(*u.EstimatedReady)
	return &d
}

// HasIssues flags internally inconsistent records. These are triage hints
// for the user, never errors.
func (c *Classifier) HasIssues(u *models.UnitRecord) bool {
	// Claims ready but no confirmed date.
	if u.IsRentReady() && !u.ActualReady.Present() {
		return true
	}
	// Move-in scheduled but the unit is not marked ready.
	if strings.TrimSpace(u.FutureMoveInDate) != "" && !u.IsRentReady() {
		return true
	}
	// Held/down unit contradictorily marked ready.
	if c.FlagDevReady && u.Category == models.CategoryDownHold && u.IsRentReady() {
		return true
	}
	return false
}

func (c *Classifier) daysFromToday(t time.Time) int {
	return int(math.Ceil(t.Sub(c.Today).Hours() / 24))
}

func containsAny(s string, keywords []string) bool {
	s = strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// ExtractProperty derives the property code from the raw unit type:
// leading zeros stripped, then the leading digits+letters run.
// "0014t11c" → "14t". No leading digit run means no property code.
func ExtractProperty(unitType string) string {
	s := strings.TrimLeft(strings.TrimSpace(unitType), "0")
	m := propertyRegexp.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractBedrooms reads the bedroom count out of the unit description.
// Bachelor and studio suites count as zero bedrooms; anything
// unrecognizable gets the BedroomsUnknown sentinel so it sorts last.
func ExtractBedrooms(description string) int {
	if m := bedroomRegexp.FindStringSubmatch(description); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	lower := strings.ToLower(description)
	if strings.Contains(lower, "bachelor") || strings.Contains(lower, "studio") {
		return 0
	}
	return BedroomsUnknown
}

// ParseReportDate parses the export's slash-separated M/D/Y dates. Any
// other shape yields ok=false, never an error.
func ParseReportDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"1/2/2006", "1/2/06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseRent extracts a non-negative rent amount from a cell. Numeric
// cells are used directly; text is treated as currency-like ("$1,250.00")
// and anything unparseable normalizes to 0.
func ParseRent(cell models.Cell) float64 {
	if cell.Kind == models.CellNumber {
		if cell.Number < 0 {
			return 0
		}
		return cell.Number
	}

	cleaned := strings.ReplaceAll(cell.String(), ",", "")
	m := rentRegexp.FindString(cleaned)
	if m == "" {
		return 0
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
