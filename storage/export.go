package storage

import (
	"strconv"

	"rentready/models"
)

// ExportColumns is the fixed 20-column header every tabular export uses:
// the fifteen raw report fields plus the five derived ones.
var ExportColumns = []string{
	"Unit Code",
	"Unit Type",
	"Unit Description",
	"Rental Type",
	"Vacant As Of",
	"Vacate Type",
	"Future Move-In Date",
	"Work Order",
	"Asking Rent",
	"Make Ready Notes",
	"Estimated Ready Date",
	"Rent Ready",
	"Actual Ready Date",
	"Job Code",
	"Comments",
	"Property",
	"Category",
	"Status",
	"Days Until Ready",
	"Has Issues",
}

// exportRow renders one unit into the 20 columns. Raw fields pass
// through verbatim so an exported sheet re-extracts to the same records;
// derived fields are rendered for reading, not re-derivation.
func exportRow(u *models.UnitRecord) []string {
	days := ""
	if u.DaysUntilReady != nil {
		days = strconv.Itoa(*u.DaysUntilReady)
	}
	est := ""
	if u.EstimatedReady != nil {
		est = u.EstimatedReady.Format("1/2/2006")
	}

	return []string{
		u.UnitCode,
		u.UnitType,
		u.UnitDescription,
		u.RentalType,
		u.VacantAsOf,
		u.VacateType,
		u.FutureMoveInDate,
		u.WorkOrder,
		strconv.FormatFloat(u.AskingRent, 'f', 2, 64),
		u.MakeReadyNotes,
		est,
		u.RentReady,
		u.ActualReady.Display(),
		u.JobCode,
		u.Comments,
		u.Property,
		string(u.Category),
		string(u.Status),
		days,
		yesNo(u.HasIssues),
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
