package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deppfellow/topicsvc/internal/config"
	"github.com/deppfellow/topicsvc/internal/handler"
	"github.com/deppfellow/topicsvc/internal/logger"
	"github.com/deppfellow/topicsvc/internal/repository"
	"github.com/deppfellow/topicsvc/internal/router"
	"github.com/deppfellow/topicsvc/internal/server"
	"github.com/deppfellow/topicsvc/internal/service"
)

type serveOptions struct {
	port     string
	dataFile string
}

func (o *serveOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.port, "port", "", "port to listen on (overrides TOPICS_SERVER_PORT)")
	cmd.Flags().StringVar(&o.dataFile, "data-file", "", "topic store file (overrides TOPICS_STORE_PATH)")
}

// apply copies explicitly set flags onto cfg.
func (o *serveOptions) apply(cfg *config.Config) {
	if o.port != "" {
		cfg.Server.Port = o.port
	}
	if o.dataFile != "" {
		cfg.Store.Path = o.dataFile
	}
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	opts.bind(cmd)

	return cmd
}

// runServe starts the HTTP server and blocks until SIGINT or SIGTERM, then
// drains in-flight requests within server.shutdown_timeout.
func runServe(cmd *cobra.Command, opts *serveOptions) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	opts.apply(cfg)

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLogger(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Error().Err(err).Msg("could not create services")
		return err
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			srv.LoggerService.Shutdown()
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	if err := <-errCh; err != nil {
		return err
	}

	log.Info().Msg("server exited properly")

	return nil
}
