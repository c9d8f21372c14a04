// Package server defines the core Server struct that composes the app's main dependencies.
//
// It contains the initialization logic to spin up the HTTP server
// and handles graceful shutdowns
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the filesystem the topic store reads from
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/deppfellow/topicsvc/internal/config"
	loggerPkg "github.com/deppfellow/topicsvc/internal/logger"
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself. It holds:
//   - the config
//   - the logger(s)
//   - the filesystem backing the topic store
//   - an internal *http.Server used to listen and serve requests
type Server struct {
	// Config holds all environment/config values for the app.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	LoggerService *loggerPkg.LoggerService

	// Fs is where the topic store file lives. Tests swap in afero.NewMemMapFs.
	Fs afero.Fs

	httpServer *http.Server
}

// Option customizes a Server built by New.
type Option func(*Server)

// WithFs makes the topic store read from fs instead of the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Server) {
		s.Fs = fs
	}
}

// New constructs a Server reading the topic store from the OS filesystem
// unless WithFs says otherwise.
//
// The store file is not required to exist at startup: a missing or broken file
// surfaces per request as a 500, and on /status as unhealthy.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	s := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		Fs:            afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if exists, err := afero.Exists(s.Fs, cfg.Store.Path); err != nil || !exists {
		logger.Warn().
			Err(err).
			Str("path", cfg.Store.Path).
			Msg("topic store file not found, requests will fail until it exists")
	}

	return s, nil
}

// SetupHTTPServer configures the internal net/http server.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Config.Server.Port,
		Handler: handler,

		// Config stores int values, interpreted here as seconds.
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops.
//
// It requires SetupHTTPServer to be called first. A graceful Shutdown makes
// Start return nil.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("store", s.Config.Store.Path).
		Msg("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown gracefully shuts down the server and its dependencies.
//
// In-flight requests get until ctx's deadline to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	s.LoggerService.Shutdown()

	return nil
}

// ShutdownTimeout is the drain budget configured for Shutdown.
func (s *Server) ShutdownTimeout() time.Duration {
	return time.Duration(s.Config.Server.ShutdownTimeout) * time.Second
}
