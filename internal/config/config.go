// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Telemetry exporters.
const (
	ExporterNone     = "none"
	ExporterStdout   = "stdout"
	ExporterOTLPGRPC = "otlp-grpc"
	ExporterOTLPHTTP = "otlp-http"
)

// Config holds all configuration for the application.
type Config struct {
	StoreDriver       string
	SQLitePath        string
	DatabaseURL       string
	LogLevel          string
	LogFormat         string
	TelemetryExporter string
	ServiceName       string
	DefaultUserID     string
}

// Load reads configuration from environment variables, after loading a
// .env file if one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		StoreDriver:       envOr("LEDGER_STORE", StoreSQLite),
		SQLitePath:        envOr("SQLITE_PATH", "data/ledger.db"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		LogLevel:          envOr("LOG_LEVEL", "info"),
		LogFormat:         envOr("LOG_FORMAT", "console"),
		TelemetryExporter: envOr("TELEMETRY_EXPORTER", ExporterNone),
		ServiceName:       envOr("SERVICE_NAME", "expense-ledger"),
		DefaultUserID:     os.Getenv("LEDGER_USER"),
	}

	cfg.StoreDriver = strings.ToLower(cfg.StoreDriver)
	cfg.TelemetryExporter = strings.ToLower(cfg.TelemetryExporter)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// validate checks that the configuration is usable.
func (c *Config) validate() error {
	var errs []string

	switch c.StoreDriver {
	case StoreSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, "SQLITE_PATH is required for the sqlite store")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required for the postgres store")
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Sprintf("LEDGER_STORE must be one of sqlite, postgres, memory (got %q)", c.StoreDriver))
	}

	switch c.TelemetryExporter {
	case ExporterNone, ExporterStdout, ExporterOTLPGRPC, ExporterOTLPHTTP:
	default:
		errs = append(errs, fmt.Sprintf("TELEMETRY_EXPORTER must be one of none, stdout, otlp-grpc, otlp-http (got %q)", c.TelemetryExporter))
	}

	if c.LogFormat != "console" && c.LogFormat != "json" {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be console or json (got %q)", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
