package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"rentready/config"
	"rentready/ingest"
	"rentready/models"
	"rentready/server"
	"rentready/services"
	"rentready/storage"
	"rentready/utils"
)

func main() {
	serve := flag.Bool("serve", false, "run the dashboard API instead of batch processing")
	flag.Parse()

	logger := utils.NewLogger()
	cfg := config.Load()
	if cfg.Debug {
		logger.EnableDebug()
	}

	logger.Info("=== Rent Ready pipeline starting ===")
	logger.Info("Config: header rows: %d | legacy codes: %t | dev-ready flag: %t | reference date: %s",
		cfg.HeaderRows, cfg.LegacyUnitCodes, cfg.FlagDevReady, cfg.Today().Format("2006-01-02"))

	classifier := services.NewClassifier(logger, cfg.Today())
	classifier.FlagDevReady = cfg.FlagDevReady

	extractor := services.NewExtractor(classifier, logger)
	extractor.HeaderRows = cfg.HeaderRows
	if cfg.LegacyUnitCodes {
		extractor.CodePattern = services.LegacyUnitCodePattern
	}

	if *serve {
		runServer(cfg, extractor, logger)
		return
	}

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: rentready [-serve] <report.xlsx> [more.xlsx ...]")
		os.Exit(1)
	}

	runBatch(cfg, extractor, logger, files)
}

func runBatch(cfg *config.Config, extractor *services.Extractor, logger *utils.Logger, files []string) {
	insights := services.NewInsightService(logger)
	projector := services.NewProjector(logger)

	var pgWriter *storage.PostgresWriter
	if cfg.PersistUnits {
		retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: logger}
		pw, err := storage.NewPostgresWriter(cfg.DSN(), retry)
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			logger.Error("Continuing without persistence")
		} else {
			pgWriter = pw
			defer pgWriter.Close()
		}
	}

	printer, err := storage.NewPrintWriter()
	if err != nil {
		logger.Error("Print template failed to parse: %v", err)
		os.Exit(1)
	}

	pool := utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs)
	processed := utils.NewStringSet()
	var failures int64

	for _, file := range files {
		file := file
		if !processed.Add(file) {
			logger.Warn("Skipping duplicate input %s", file)
			continue
		}
		pool.Submit(func() {
			if err := processFile(cfg, extractor, insights, projector, printer, pgWriter, logger, file); err != nil {
				logger.Error("%s: %v", file, err)
				atomic.AddInt64(&failures, 1)
			}
		})
	}
	pool.Wait()

	if failures > 0 {
		os.Exit(1)
	}
	fmt.Printf("  Done. %d file(s) processed → %s\n\n", processed.Size(), cfg.OutputDir)
}

// processFile runs one report through the full pipeline: ingest, extract,
// classify, summarize, export.
func processFile(
	cfg *config.Config,
	extractor *services.Extractor,
	insights *services.InsightService,
	projector *services.Projector,
	printer *storage.PrintWriter,
	pgWriter *storage.PostgresWriter,
	logger *utils.Logger,
	file string,
) error {
	grid, err := ingest.ReadGridFile(file)
	if err != nil {
		return err
	}

	units := extractor.Extract(grid)
	if len(units) == 0 {
		logger.Warn("%s: no unit rows found", file)
	}

	// Default view ordering for the exports.
	sorted := projector.Apply(units, defaultView())

	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	outBase := filepath.Join(cfg.OutputDir, base)

	csvWriter, err := storage.NewCSVWriter(outBase + ".csv")
	if err != nil {
		return err
	}
	if err := csvWriter.Write(sorted); err != nil {
		_ = csvWriter.Close()
		return err
	}
	if err := csvWriter.Close(); err != nil {
		return err
	}

	if err := storage.WriteXLSXFile(outBase+"-export.xlsx", sorted, time.Now()); err != nil {
		return err
	}

	report := insights.Generate(units)
	if err := writePrintFile(printer, outBase+"-print.html", base, report, sorted); err != nil {
		return err
	}

	if pgWriter != nil {
		if err := pgWriter.Write(sorted); err != nil {
			logger.Error("PostgreSQL write failed: %v", err)
		} else {
			logger.Info("%d units stored in PostgreSQL (table: units)", len(sorted))
		}
	}

	insights.Print(report, filepath.Base(file))
	return nil
}

func writePrintFile(printer *storage.PrintWriter, path, title string, report *models.ReadyReport, units []*models.UnitRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	data := storage.PrintData{
		Title:     "Rent Ready Report - " + title,
		Generated: time.Now(),
		Report:    report,
		Units:     units,
		Columns:   storage.DefaultPrintColumns(),
	}
	if err := printer.Render(f, data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func runServer(cfg *config.Config, extractor *services.Extractor, logger *utils.Logger) {
	presets, err := storage.NewPresetStore(cfg.PresetDir)
	if err != nil {
		logger.Error("Preset store init failed: %v", err)
		os.Exit(1)
	}
	printer, err := storage.NewPrintWriter()
	if err != nil {
		logger.Error("Print template failed to parse: %v", err)
		os.Exit(1)
	}

	handlers := server.NewHandlers(
		extractor,
		services.NewProjector(logger),
		services.NewInsightService(logger),
		printer,
		presets,
		logger,
	)
	srv := server.New(cfg.HTTPPort, cfg.CORSOrigin, handlers, logger)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
	}()

	if err := srv.Start(); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}

// defaultView is the zero filter config: no filters, default three-level
// ordering.
func defaultView() models.FilterConfig { return models.FilterConfig{} }
