package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/scholarform/applicant-parser/internal/acquire"
	"github.com/scholarform/applicant-parser/internal/config"
	"github.com/scholarform/applicant-parser/internal/fields"
	"github.com/scholarform/applicant-parser/internal/server"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging installs a slog handler at the configured level.
func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// runServer starts the HTTP server and blocks until a shutdown signal or a
// server error.
func runServer(ctx context.Context, cancel context.CancelFunc, srv *server.Server) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.Run(ctx)
	}()

	select {
	case sig := <-signalCh:
		slog.Info("received signal, shutting down", "signal", sig.String())
		cancel()

		if err := <-serverErrCh; err != nil {
			slog.Error("server shutdown with error", "error", err)
			os.Exit(1)
		}

	case err := <-serverErrCh:
		if err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("server stopped")
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	// .env is optional; flags and PARSER_* environment variables win
	_ = godotenv.Load()

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)
	logger := slog.Default()

	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		logger.Debug("starting", "config", cfg.String())
	}

	textLayer := acquire.NewTextLayerExtractor()
	ocr := acquire.NewOCREngine(acquire.OCRConfig{
		Pdftoppm:  cfg.Pdftoppm,
		Tesseract: cfg.Tesseract,
		Lang:      cfg.OCRLang,
		DPI:       cfg.OCRDPI,
		MaxPages:  cfg.OCRMaxPages,
	}, logger)
	pipeline := acquire.NewPipeline(textLayer, ocr, cfg.OCRTimeout(), logger)

	if !ocr.Available() {
		logger.Warn("ocr tools not found, scanned documents will not be readable",
			"pdftoppm", cfg.Pdftoppm, "tesseract", cfg.Tesseract)
	}

	srv := server.NewServer(cfg, pipeline, fields.NewEngine(), ocr.Available, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runServer(ctx, cancel, srv)
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Applicant Parser\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
