package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"rentready/ingest"
	"rentready/models"
	"rentready/services"
	"rentready/storage"
	"rentready/utils"
)

// maxUploadBytes caps report uploads; real exports are well under this.
const maxUploadBytes = 32 << 20

// Handlers wires the pipeline services into the dashboard API.
type Handlers struct {
	extractor *services.Extractor
	projector *services.Projector
	insights  *services.InsightService
	printer   *storage.PrintWriter
	presets   *storage.PresetStore
	sessions  *SessionStore
	logger    *utils.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(
	extractor *services.Extractor,
	projector *services.Projector,
	insights *services.InsightService,
	printer *storage.PrintWriter,
	presets *storage.PresetStore,
	logger *utils.Logger,
) *Handlers {
	return &Handlers{
		extractor: extractor,
		projector: projector,
		insights:  insights,
		printer:   printer,
		presets:   presets,
		sessions:  NewSessionStore(),
		logger:    logger,
	}
}

// HandleUploadReport accepts a multipart XLSX upload, runs the
// extraction pass and opens a session. An unreadable workbook is the one
// terminal failure; malformed rows are silently excluded.
func (h *Handlers) HandleUploadReport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}

	file, header, err := r.FormFile("report")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Field 'report' with the XLSX file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Could not read upload")
		return
	}

	grid, err := ingest.ReadGrid(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		h.logger.Warn("[api] Unreadable workbook %q: %v", header.Filename, err)
		writeJSONError(w, http.StatusUnprocessableEntity, "The uploaded file is not a readable spreadsheet")
		return
	}

	units := h.extractor.Extract(grid)
	report := h.insights.Generate(units)
	session := h.sessions.Put(header.Filename, units, report)

	h.logger.Info("[api] Session %s opened: %q, %d units", session.ID, header.Filename, len(units))
	respondJSON(w, http.StatusCreated, session)
}

// HandleListUnits returns the session's units after applying the
// filter/sort query parameters.
func (h *Handlers) HandleListUnits(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	if session == nil {
		return
	}

	filters, err := filtersFromQuery(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	units := h.projector.Apply(session.Units, filters)
	respondJSON(w, http.StatusOK, map[string]any{
		"total":   len(session.Units),
		"matched": len(units),
		"units":   units,
	})
}

// HandleSummary returns the category-count summary for the session.
func (h *Handlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	if session == nil {
		return
	}
	respondJSON(w, http.StatusOK, session.Report)
}

// HandleExportCSV streams the filtered view as the 20-column CSV export.
func (h *Handlers) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	if session == nil {
		return
	}

	filters, err := filtersFromQuery(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	units := h.projector.Apply(session.Units, filters)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="rent-ready.csv"`)
	if err := storage.WriteCSV(w, units); err != nil {
		h.logger.Error("[api] CSV export failed: %v", err)
	}
}

// HandleExportXLSX streams the filtered view as a workbook that
// round-trips through the extractor.
func (h *Handlers) HandleExportXLSX(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	if session == nil {
		return
	}

	filters, err := filtersFromQuery(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	units := h.projector.Apply(session.Units, filters)

	b, err := storage.XLSXBytes(units, time.Now())
	if err != nil {
		h.logger.Error("[api] XLSX export failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Export failed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="rent-ready.xlsx"`)
	_, _ = w.Write(b)
}

// HandleExportPrint renders the printable HTML document. Column choices
// come from boolean query parameters (rent, notes, dates, comments,
// jobCode, status, issues).
func (h *Handlers) HandleExportPrint(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	if session == nil {
		return
	}

	filters, err := filtersFromQuery(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	units := h.projector.Apply(session.Units, filters)

	cols := printColumnsFromQuery(r)
	data := storage.PrintData{
		Title:     "Rent Ready Report - " + session.FileName,
		Generated: time.Now(),
		Report:    h.insights.Generate(units),
		Units:     units,
		Columns:   cols,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.printer.Render(w, data); err != nil {
		h.logger.Error("[api] Print render failed: %v", err)
	}
}

// HandleSavePreset stores a named filter configuration.
func (h *Handlers) HandleSavePreset(w http.ResponseWriter, r *http.Request) {
	var preset models.FilterPreset
	if err := json.NewDecoder(r.Body).Decode(&preset); err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	saved, err := h.presets.Save(preset)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, saved)
}

// HandleListPresets returns all saved presets, newest first.
func (h *Handlers) HandleListPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := h.presets.List()
	if err != nil {
		h.logger.Error("[api] Preset list failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Could not list presets")
		return
	}
	respondJSON(w, http.StatusOK, presets)
}

// HandleGetPreset returns one preset by id.
func (h *Handlers) HandleGetPreset(w http.ResponseWriter, r *http.Request) {
	preset, err := h.presets.Load(chi.URLParam(r, "presetID"))
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Preset not found")
		return
	}
	respondJSON(w, http.StatusOK, preset)
}

// HandleDeletePreset removes one preset by id.
func (h *Handlers) HandleDeletePreset(w http.ResponseWriter, r *http.Request) {
	if err := h.presets.Delete(chi.URLParam(r, "presetID")); err != nil {
		writeJSONError(w, http.StatusNotFound, "Preset not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) session(w http.ResponseWriter, r *http.Request) *Session {
	id := chi.URLParam(r, "reportID")
	session := h.sessions.Get(id)
	if session == nil {
		writeJSONError(w, http.StatusNotFound, "Report session not found")
	}
	return session
}

// filtersFromQuery maps query parameters onto the filter configuration.
func filtersFromQuery(r *http.Request) (models.FilterConfig, error) {
	q := r.URL.Query()
	f := models.FilterConfig{
		Property:    q.Get("property"),
		Category:    q.Get("category"),
		RentReady:   q.Get("rentReady"),
		Search:      q.Get("search"),
		FlaggedOnly: q.Get("flaggedOnly") == "true",
		DateField:   q.Get("dateField"),
		SortField:   q.Get("sortField"),
		SortDesc:    q.Get("sortDesc") == "true",
	}

	if v := q.Get("minRent"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, fmt.Errorf("minRent must be a number")
		}
		f.MinRent = &n
	}
	if v := q.Get("maxRent"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, fmt.Errorf("maxRent must be a number")
		}
		f.MaxRent = &n
	}
	if v := q.Get("dateFrom"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("dateFrom must be YYYY-MM-DD")
		}
		f.DateFrom = &t
	}
	if v := q.Get("dateTo"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("dateTo must be YYYY-MM-DD")
		}
		f.DateTo = &t
	}

	return f, nil
}

func printColumnsFromQuery(r *http.Request) storage.PrintColumns {
	q := r.URL.Query()
	if !q.Has("rent") && !q.Has("notes") && !q.Has("dates") &&
		!q.Has("comments") && !q.Has("jobCode") && !q.Has("status") && !q.Has("issues") {
		return storage.DefaultPrintColumns()
	}
	return storage.PrintColumns{
		Rent:     q.Get("rent") == "true",
		Notes:    q.Get("notes") == "true",
		Dates:    q.Get("dates") == "true",
		Comments: q.Get("comments") == "true",
		JobCode:  q.Get("jobCode") == "true",
		Status:   q.Get("status") == "true",
		Issues:   q.Get("issues") == "true",
	}
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
