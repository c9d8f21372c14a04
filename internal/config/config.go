// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when one
// exists), loads them into structured Go types, and validates that required
// values are present so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate values so the app fails fast on bad config.
//   - Provide sane defaults for everything.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// triggers godotenv's autoload: a `.env` file, if present, is loaded into
	// the process env before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"golang.org/x/text/language"
)

/*
	Env vars are read with the prefix TOPICS_. The first underscore after the
	prefix separates the section from the key, so

		TOPICS_SERVER_PORT             -> server.port
		TOPICS_SERVER_READ_TIMEOUT     -> server.read_timeout
		TOPICS_NEWRELIC_LICENSE_KEY    -> newrelic.license_key

	Section names therefore never contain an underscore.
*/

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "TOPICS_"

// ServiceName identifies this service in logs and APM.
const ServiceName = "topicsvc"

// Config is the root configuration object for the application.
type Config struct {
	Primary  Primary        `koanf:"primary" validate:"required"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Store    StoreConfig    `koanf:"store" validate:"required"`
	Query    QueryConfig    `koanf:"query" validate:"required"`
	Logging  LoggingConfig  `koanf:"logging" validate:"required"`
	NewRelic NewRelicConfig `koanf:"newrelic"`

	// Observability is derived from Primary, Logging and NewRelic after load.
	Observability *ObservabilityConfig `koanf:"-"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required,numeric"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	ShutdownTimeout    int      `koanf:"shutdown_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// RateLimit is the sustained requests per second allowed per client IP.
	// 0 disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
	// RateBurst is how many requests a client may send at once.
	RateBurst int `koanf:"rate_burst" validate:"min=0"`
}

// StoreConfig locates the static topics file. The extension picks the codec
// (.json, .yaml, .yml).
type StoreConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// QueryConfig tunes query semantics.
type QueryConfig struct {
	// Locale is the BCP 47 tag used for collation when sorting by name.
	// "und" selects the CLDR root collation.
	Locale string `koanf:"locale" validate:"required"`
}

// DefaultConfig returns the configuration used when no env var overrides a key.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "3000",
			ReadTimeout:        10,
			WriteTimeout:       10,
			IdleTimeout:        60,
			ShutdownTimeout:    10,
			CORSAllowedOrigins: []string{"*"},
			RateLimit:          0,
			RateBurst:          20,
		},
		Store: StoreConfig{Path: "topics.json"},
		Query: QueryConfig{Locale: "und"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		NewRelic: NewRelicConfig{
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
		},
	}
}

// LoadConfig loads configuration from environment variables on top of
// DefaultConfig, validates it and derives the observability block.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := DefaultConfig()

	// Unmarshal only overwrites keys that are present, defaults survive.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	mainConfig.Server.CORSAllowedOrigins = splitList(mainConfig.Server.CORSAllowedOrigins)

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := mainConfig.Query.Tag(); err != nil {
		return nil, err
	}

	mainConfig.Observability = &ObservabilityConfig{
		ServiceName: ServiceName,
		Environment: mainConfig.Primary.Env,
		Logging:     mainConfig.Logging,
		NewRelic:    mainConfig.NewRelic,
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// Tag parses Locale into a language tag.
func (q QueryConfig) Tag() (language.Tag, error) {
	tag, err := language.Parse(q.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid query locale %q: %w", q.Locale, err)
	}
	return tag, nil
}

// envKey maps TOPICS_SECTION_SOME_KEY to section.some_key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// splitList flattens comma separated entries, env vars arrive as one string.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
