// Package server hosts the local upload UI. It serves the embedded
// frontend, accepts browser uploads, forwards them to the OCR backend,
// and renders results server-side.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/ocrdesk/ocrdesk/internal/api"
	"github.com/ocrdesk/ocrdesk/internal/config"
)

// Server is the local ocrdesk web host.
type Server struct {
	httpServer *http.Server
	backend    *api.Client
	configMgr  *config.Manager
	logger     *slog.Logger
	templates  *template.Template

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8080)
	Port string
	// Backend is the OCR backend client uploads are forwarded to.
	Backend *api.Client
	// ConfigManager provides configuration with hot-reload support.
	ConfigManager *config.Manager
	// Logger is the structured logger to use.
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Backend == nil {
		return nil, errors.New("backend client is required")
	}

	s := &Server{
		backend:   cfg.Backend,
		configMgr: cfg.ConfigManager,
		logger:    cfg.Logger,
	}

	router, err := s.routes()
	if err != nil {
		return nil, fmt.Errorf("failed to build routes: %w", err)
	}

	s.httpServer = &http.Server{
		Addr:    net.JoinHostPort(cfg.Host, cfg.Port),
		Handler: router,
		// No WriteTimeout: result uploads can take minutes end to end.
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s, nil
}

// Start starts the server. It blocks until the context is cancelled or
// an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	// An unreachable backend is not fatal: the UI still loads and every
	// submission reports the failure to the user.
	if err := s.waitForBackend(ctx, 10*time.Second); err != nil {
		s.logger.Warn("OCR backend not reachable", "url", s.backend.BaseURL(), "error", err)
	} else {
		s.logger.Info("OCR backend is ready", "url", s.backend.BaseURL())
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			s.setNotRunning()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// waitForBackend polls the backend health endpoint until it responds.
func (s *Server) waitForBackend(ctx context.Context, timeout time.Duration) error {
	return retry.Do(
		func() error {
			checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			return s.backend.Health(checkCtx)
		},
		retry.Context(ctx),
		retry.Attempts(uint(timeout.Seconds())),
		retry.Delay(1*time.Second),
	)
}

// shutdown performs graceful shutdown of the HTTP server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// processOptions returns the OCR options to forward, refreshed from the
// config manager so hot reloads take effect without a restart.
func (s *Server) processOptions() api.ProcessOptions {
	if s.configMgr == nil {
		return api.ProcessOptions{}
	}
	cfg := s.configMgr.Get()
	preprocess := cfg.OCR.Preprocess
	return api.ProcessOptions{
		Engine:     cfg.OCR.Engine,
		Language:   cfg.OCR.Language,
		Preprocess: &preprocess,
	}
}
