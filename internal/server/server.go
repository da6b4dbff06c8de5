// Package server is the HTTP boundary: it adapts uploads and raw-text posts
// onto the acquisition pipeline and extraction engine, and maps pipeline
// outcomes to the response contract.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/scholarform/applicant-parser/internal/acquire"
	"github.com/scholarform/applicant-parser/internal/config"
	"github.com/scholarform/applicant-parser/internal/fields"
)

// Acquirer is the pipeline surface the handlers depend on.
type Acquirer interface {
	FromDocument(ctx context.Context, doc acquire.RawDocument) (acquire.AcquiredText, error)
	FromText(pre string) (acquire.AcquiredText, error)
}

// Server serves the parse API.
type Server struct {
	cfg          *config.Config
	pipeline     Acquirer
	engine       *fields.Engine
	ocrAvailable func() bool
	logger       *slog.Logger
	router       chi.Router
}

// NewServer wires the routes. ocrAvailable reports the rasterizer/OCR
// capability for the capabilities endpoint; nil means "never available".
func NewServer(cfg *config.Config, pipeline Acquirer, engine *fields.Engine, ocrAvailable func() bool, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if ocrAvailable == nil {
		ocrAvailable = func() bool { return false }
	}

	s := &Server{
		cfg:          cfg,
		pipeline:     pipeline,
		engine:       engine,
		ocrAvailable: ocrAvailable,
		logger:       logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/api/capabilities", s.handleCapabilities)
	r.Post("/api/parse", s.handleParse)
	r.Post("/api/parse-text", s.handleParseText)

	s.router = r
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Address())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
