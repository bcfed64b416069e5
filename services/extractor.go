package services

import (
	"regexp"
	"strings"

	"rentready/models"
	"rentready/utils"
)

// Report column layout, fixed at columns A through O.
const (
	colUnitCode = iota
	colUnitType
	colUnitDescription
	colRentalType
	colVacantAsOf
	colVacateType
	colFutureMoveIn
	colWorkOrder
	colAskingRent
	colMakeReadyNotes
	colEstimatedReady
	colRentReady
	colActualReady
	colJobCode
	colComments
	columnCount
)

// DefaultHeaderRows is the fixed title/header block at the top of the
// export; those rows never contain unit data.
const DefaultHeaderRows = 6

var (
	// UnitCodePattern matches the current export's unit identifiers:
	// alphanumerics plus hyphens.
	UnitCodePattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	// LegacyUnitCodePattern is the strict 2-4 digit pattern older report
	// revisions used. Selectable via config for old exports.
	LegacyUnitCodePattern = regexp.MustCompile(`^\d{2,4}$`)
)

// Extractor scans a report grid, keeps the genuine unit rows and hands
// each to the classifier. Malformed rows are skipped individually; the
// extractor never rejects a whole grid.
type Extractor struct {
	classifier *Classifier
	logger     *utils.Logger

	// HeaderRows is the number of leading rows skipped unconditionally.
	HeaderRows int
	// CodePattern identifies candidate unit rows by their first cell.
	CodePattern *regexp.Regexp
}

// NewExtractor creates an Extractor with the current report layout.
func NewExtractor(classifier *Classifier, logger *utils.Logger) *Extractor {
	return &Extractor{
		classifier:  classifier,
		logger:      logger,
		HeaderRows:  DefaultHeaderRows,
		CodePattern: UnitCodePattern,
	}
}

// Extract runs the single pass over the grid and returns classified unit
// records in row order.
func (e *Extractor) Extract(grid models.Grid) []*models.UnitRecord {
	units := make([]*models.UnitRecord, 0, len(grid))
	seen := utils.NewStringSet()

	for i, row := range grid {
		if i < e.HeaderRows {
			continue
		}
		if !e.isUnitRow(row) {
			continue
		}

		unit := e.mapRow(row)
		e.classifier.Apply(unit)

		if !seen.Add(unit.Property + "/" + unit.UnitCode) {
			e.logger.Warn("[extract] Duplicate unit code %q in property %q (row %d), keeping both",
				unit.UnitCode, unit.Property, i+1)
		}
		units = append(units, unit)
	}

	e.logger.Info("[extract] %d rows in, %d units out", len(grid), len(units))
	return units
}

// isUnitRow applies the skip rules: blank rows, subtotal rows, rows whose
// first cell is not a unit code, and property-header rows that match the
// code pattern but carry no unit data.
func (e *Extractor) isUnitRow(row []models.Cell) bool {
	if isBlankRow(row) {
		return false
	}

	first := cellAt(row, colUnitCode).String()
	if containsFold(first, "total") {
		return false
	}
	if !e.CodePattern.MatchString(first) {
		return false
	}

	// Property headers repeat the code pattern but have no unit type, and
	// neither a description nor a positive rent.
	if cellAt(row, colUnitType).IsEmpty() {
		return false
	}
	if cellAt(row, colUnitDescription).IsEmpty() && ParseRent(cellAt(row, colAskingRent)) <= 0 {
		return false
	}
	return true
}

// mapRow maps the positional cells into the raw fields of a unit record.
func (e *Extractor) mapRow(row []models.Cell) *models.UnitRecord {
	unit := &models.UnitRecord{
		UnitCode:         cellAt(row, colUnitCode).String(),
		UnitType:         cellAt(row, colUnitType).String(),
		UnitDescription:  cellAt(row, colUnitDescription).String(),
		RentalType:       cellAt(row, colRentalType).String(),
		VacantAsOf:       cellAt(row, colVacantAsOf).String(),
		VacateType:       cellAt(row, colVacateType).String(),
		FutureMoveInDate: cellAt(row, colFutureMoveIn).String(),
		WorkOrder:        cellAt(row, colWorkOrder).String(),
		AskingRent:       ParseRent(cellAt(row, colAskingRent)),
		MakeReadyNotes:   cellAt(row, colMakeReadyNotes).String(),
		RentReady:        lowerTrim(cellAt(row, colRentReady).String()),
		JobCode:          cellAt(row, colJobCode).String(),
		Comments:         cellAt(row, colComments).String(),
	}

	if est := cellAt(row, colEstimatedReady); est.Kind == models.CellDate {
		t := est.Date
		unit.EstimatedReady = &t
	} else if t, ok := ParseReportDate(est.String()); ok {
		unit.EstimatedReady = &t
	}

	switch actual := cellAt(row, colActualReady); {
	case actual.Kind == models.CellDate:
		unit.ActualReady = models.KnownDate(actual.Date)
	case !actual.IsEmpty():
		unit.ActualReady = models.RawDate(actual.String())
	default:
		unit.ActualReady = models.NoDate()
	}

	return unit
}

func cellAt(row []models.Cell, idx int) models.Cell {
	if idx < 0 || idx >= len(row) {
		return models.EmptyCell()
	}
	return row[idx]
}

func isBlankRow(row []models.Cell) bool {
	for _, c := range row {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
