// Package testutils builds application containers for tests.
package testutils

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/topicsvc/internal/config"
	"github.com/deppfellow/topicsvc/internal/logger"
	"github.com/deppfellow/topicsvc/internal/server"
)

// StorePath is where NewServer expects the topic store.
const StorePath = "topics.json"

// ConfigForTests returns DefaultConfig with a test environment, debug level
// JSON logs and New Relic disabled.
func ConfigForTests() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Primary.Env = "test"
	cfg.Store.Path = StorePath
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"
	cfg.Observability = &config.ObservabilityConfig{
		ServiceName: config.ServiceName,
		Environment: cfg.Primary.Env,
		Logging:     cfg.Logging,
		NewRelic:    cfg.NewRelic,
	}
	return cfg
}

// NewServer returns a Server whose filesystem is in memory. When store is
// non-nil it is written to StorePath. Log output is collected in the returned
// buffer.
func NewServer(t *testing.T, store *string) (*server.Server, *bytes.Buffer) {
	t.Helper()

	cfg := ConfigForTests()
	logs := &bytes.Buffer{}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithWriter(cfg.Observability, loggerService, logs)

	fs := afero.NewMemMapFs()
	if store != nil {
		require.NoError(t, afero.WriteFile(fs, StorePath, []byte(*store), 0o644))
	}

	s, err := server.New(cfg, &log, loggerService, server.WithFs(fs))
	require.NoError(t, err)

	return s, logs
}

// Store is a convenience for passing literal store contents to NewServer.
func Store(content string) *string {
	return &content
}
