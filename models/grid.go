package models

import (
	"strconv"
	"strings"
	"time"
)

// CellKind tags the value type of a worksheet cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellDate
)

// Cell is one worksheet cell as handed to the extractor. Number cells
// keep their formatted text alongside the numeric value so that
// date-formatted numerics still carry a readable date string.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Date   time.Time
}

// TextCell builds a text cell.
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// NumberCell builds a numeric cell whose Text holds the formatted value.
func NumberCell(n float64, formatted string) Cell {
	return Cell{Kind: CellNumber, Number: n, Text: formatted}
}

// DateCell builds a date cell.
func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Date: t} }

// EmptyCell is the zero cell.
func EmptyCell() Cell { return Cell{} }

// IsEmpty reports whether the cell holds no usable value. Whitespace-only
// text counts as empty.
func (c Cell) IsEmpty() bool {
	switch c.Kind {
	case CellText:
		return strings.TrimSpace(c.Text) == ""
	case CellNumber, CellDate:
		return false
	default:
		return true
	}
}

// String renders the cell for field mapping: trimmed text when present,
// otherwise the numeric value or an M/D/YYYY date.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return strings.TrimSpace(c.Text)
	case CellNumber:
		if s := strings.TrimSpace(c.Text); s != "" {
			return s
		}
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellDate:
		return c.Date.Format("1/2/2006")
	default:
		return ""
	}
}

// Grid is one worksheet as a rectangular slice of rows. Rows may be
// ragged; the extractor treats missing trailing cells as empty.
type Grid [][]Cell
