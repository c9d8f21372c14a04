package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "topics.json", cfg.Store.Path)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "und", cfg.Query.Locale)
	assert.Zero(t, cfg.Server.RateLimit)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, cfg.Primary.Env, cfg.Observability.Environment)
	assert.False(t, cfg.Observability.NewRelicEnabled())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TOPICS_SERVER_PORT", "8081")
	t.Setenv("TOPICS_SERVER_READ_TIMEOUT", "3")
	t.Setenv("TOPICS_SERVER_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("TOPICS_STORE_PATH", "/data/topics.yaml")
	t.Setenv("TOPICS_PRIMARY_ENV", "production")
	t.Setenv("TOPICS_LOGGING_LEVEL", "warn")
	t.Setenv("TOPICS_QUERY_LOCALE", "de")
	t.Setenv("TOPICS_SERVER_RATE_LIMIT", "2.5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Server.ReadTimeout)
	// Untouched keys in the same section keep their defaults.
	assert.Equal(t, 10, cfg.Server.WriteTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 2.5, cfg.Server.RateLimit)
	assert.Equal(t, 20, cfg.Server.RateBurst)
	assert.Equal(t, "/data/topics.yaml", cfg.Store.Path)
	assert.Equal(t, "warn", cfg.Observability.GetLogLevel())
	assert.True(t, cfg.Observability.IsProduction())

	tag, err := cfg.Query.Tag()
	require.NoError(t, err)
	assert.Equal(t, language.German, tag)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "log level", key: "TOPICS_LOGGING_LEVEL", value: "loud"},
		{name: "log format", key: "TOPICS_LOGGING_FORMAT", value: "xml"},
		{name: "port", key: "TOPICS_SERVER_PORT", value: "http"},
		{name: "locale", key: "TOPICS_QUERY_LOCALE", value: "not a locale"},
		{name: "negative rate limit", key: "TOPICS_SERVER_RATE_LIMIT", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.port", envKey("TOPICS_SERVER_PORT"))
	assert.Equal(t, "server.cors_allowed_origins", envKey("TOPICS_SERVER_CORS_ALLOWED_ORIGINS"))
	assert.Equal(t, "newrelic.license_key", envKey("TOPICS_NEWRELIC_LICENSE_KEY"))
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	dev := &ObservabilityConfig{Environment: "development"}
	assert.Equal(t, "debug", dev.GetLogLevel())

	prod := &ObservabilityConfig{Environment: "production"}
	assert.Equal(t, "info", prod.GetLogLevel())

	explicit := &ObservabilityConfig{Environment: "production", Logging: LoggingConfig{Level: "error"}}
	assert.Equal(t, "error", explicit.GetLogLevel())
}
