// Package server exposes the classification pipeline as the dashboard's
// REST API: upload a report, query filtered/sorted units, download
// exports, manage filter presets.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"rentready/utils"
)

// Server wraps the HTTP server and its routes.
type Server struct {
	httpServer *http.Server
	logger     *utils.Logger
}

// New builds the router. corsOrigin is the dashboard origin ("*" for dev).
func New(port string, corsOrigin string, h *Handlers, logger *utils.Logger) *Server {
	r := chi.NewRouter()

	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{corsOrigin},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/reports", func(r chi.Router) {
			r.Post("/", h.HandleUploadReport)
			r.Route("/{reportID}", func(r chi.Router) {
				r.Get("/units", h.HandleListUnits)
				r.Get("/summary", h.HandleSummary)
				r.Get("/export.csv", h.HandleExportCSV)
				r.Get("/export.xlsx", h.HandleExportXLSX)
				r.Get("/print.html", h.HandleExportPrint)
			})
		})

		r.Route("/presets", func(r chi.Router) {
			r.Get("/", h.HandleListPresets)
			r.Post("/", h.HandleSavePreset)
			r.Get("/{presetID}", h.HandleGetPreset)
			r.Delete("/{presetID}", h.HandleDeletePreset)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: logger,
	}
}

// Start runs the server until it errors or Stop is called.
func (s *Server) Start() error {
	s.logger.Info("[api] Listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("[api] Shutting down")
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs method, path, status and duration for every request.
func requestLogger(logger *utils.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("[api] %s %s → %d (%dms)",
				r.Method, r.URL.Path, ww.Status(), time.Since(start).Milliseconds())
		})
	}
}
