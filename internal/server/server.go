// Package server provides the HTTP API for the CV parser.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/cv-parser/internal/types"
)

// Runner executes one resume parse end to end. The pipeline satisfies it;
// tests substitute fakes.
type Runner interface {
	Run(ctx context.Context, apiKey, filename string, data []byte) (*types.CandidateRecord, error)
}

// Config holds server configuration.
type Config struct {
	Port           int
	StaticDir      string
	MaxUploadBytes int64
}

// Server represents the HTTP server.
type Server struct {
	httpServer     *http.Server
	runner         Runner
	maxUploadBytes int64
	logger         zerolog.Logger
}

// New creates a new server instance.
func New(cfg Config, runner Runner, logger zerolog.Logger) *Server {
	s := &Server{
		runner:         runner,
		maxUploadBytes: cfg.MaxUploadBytes,
		logger:         logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/parse-cv", s.handleParseCV)
	mux.HandleFunc("GET /health", s.handleHealth)

	// The prebuilt front-end is hosted at the root.
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start runs the server until an interrupt or termination signal arrives,
// then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("server stopped")
	return nil
}
