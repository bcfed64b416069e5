package storage

import (
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"

	"rentready/models"
)

// PrintColumns selects which optional columns the print view includes.
// Unit code, property and category always print.
type PrintColumns struct {
	Rent     bool `json:"rent"`
	Notes    bool `json:"notes"`
	Dates    bool `json:"dates"`
	Comments bool `json:"comments"`
	JobCode  bool `json:"jobCode"`
	Status   bool `json:"status"`
	Issues   bool `json:"issues"`
}

// DefaultPrintColumns is the column set the dashboard preselects.
func DefaultPrintColumns() PrintColumns {
	return PrintColumns{Rent: true, Dates: true, Status: true, Issues: true}
}

// PrintData is everything the print/PDF document needs.
type PrintData struct {
	Title     string
	Generated time.Time
	Report    *models.ReadyReport
	Units     []*models.UnitRecord
	Columns   PrintColumns
}

// PrintWriter renders the printable HTML document: category summary on
// top, then the unit table with conditionally included columns. The
// browser's print-to-PDF does the rest.
type PrintWriter struct {
	tmpl *template.Template
}

// NewPrintWriter parses the embedded template.
func NewPrintWriter() (*PrintWriter, error) {
	tmpl, err := template.New("print").Funcs(template.FuncMap{
		"fmtDate": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("1/2/2006")
		},
		"fmtRent": func(f float64) string { return "$" + strconv.FormatFloat(f, 'f', 2, 64) },
		"yesNo":   yesNo,
		"catCount": func(r *models.ReadyReport, c models.Category) int {
			return r.CategoryCounts[c]
		},
	}).Parse(printTemplate)
	if err != nil {
		return nil, fmt.Errorf("print: parse template: %w", err)
	}
	return &PrintWriter{tmpl: tmpl}, nil
}

// Render writes the HTML document to w.
func (p *PrintWriter) Render(w io.Writer, data PrintData) error {
	if err := p.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("print: render: %w", err)
	}
	return nil
}

// Categories is exposed to the template for the summary table.
func (PrintData) Categories() []models.Category { return models.Categories }

const printTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: Arial, Helvetica, sans-serif; margin: 24px; color: #222; }
  h1 { font-size: 20px; margin-bottom: 4px; }
  .meta { color: #666; font-size: 12px; margin-bottom: 16px; }
  table { border-collapse: collapse; width: 100%; font-size: 12px; }
  th, td { border: 1px solid #999; padding: 4px 6px; text-align: left; }
  th { background: #eee; }
  .summary { width: auto; margin-bottom: 20px; }
  .flagged { background: #fdd; }
  @media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">Generated {{.Generated.Format "1/2/2006"}} &mdash; {{.Report.TotalUnits}} units, {{.Report.Flagged}} flagged</div>

<table class="summary">
<tr><th>Category</th><th>Units</th></tr>
{{- $report := .Report}}
{{- range .Categories}}
{{- $n := catCount $report .}}
{{- if $n}}
<tr><td>{{.}}</td><td>{{$n}}</td></tr>
{{- end}}
{{- end}}
</table>

<table>
<tr>
  <th>Unit</th><th>Property</th><th>Description</th><th>Category</th>
  {{- if .Columns.Status}}<th>Status</th>{{end}}
  {{- if .Columns.Rent}}<th>Asking Rent</th>{{end}}
  {{- if .Columns.Dates}}<th>Est. Ready</th><th>Actual Ready</th><th>Days</th>{{end}}
  {{- if .Columns.Notes}}<th>Make Ready Notes</th>{{end}}
  {{- if .Columns.JobCode}}<th>Job Code</th>{{end}}
  {{- if .Columns.Comments}}<th>Comments</th>{{end}}
  {{- if .Columns.Issues}}<th>Issues</th>{{end}}
</tr>
{{- $cols := .Columns}}
{{- range .Units}}
<tr{{if .HasIssues}} class="flagged"{{end}}>
  <td>{{.UnitCode}}</td><td>{{.Property}}</td><td>{{.UnitDescription}}</td><td>{{.Category}}</td>
  {{- if $cols.Status}}<td>{{.Status}}</td>{{end}}
  {{- if $cols.Rent}}<td>{{fmtRent .AskingRent}}</td>{{end}}
  {{- if $cols.Dates}}<td>{{fmtDate .EstimatedReady}}</td><td>{{.ActualReady.Display}}</td><td>{{if .DaysUntilReady}}{{.DaysUntilReady}}{{end}}</td>{{end}}
  {{- if $cols.Notes}}<td>{{.MakeReadyNotes}}</td>{{end}}
  {{- if $cols.JobCode}}<td>{{.JobCode}}</td>{{end}}
  {{- if $cols.Comments}}<td>{{.Comments}}</td>{{end}}
  {{- if $cols.Issues}}<td>{{yesNo .HasIssues}}</td>{{end}}
</tr>
{{- end}}
</table>
</body>
</html>
`
