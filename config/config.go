// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Depreciation DepreciationConfig
	Snapshot     SnapshotConfig
	Legacy       LegacyConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the SQLite location. Use ":memory:" for an
// in-memory database.
type DatabaseConfig struct {
	Path string
}

// DepreciationConfig feeds the engine profile.
type DepreciationConfig struct {
	FiscalStartMonth   int    // zero-based; 5 = June
	LifeSpanUnit       string // "months" or "years"
	NewAssetWindowDays int
}

// SnapshotConfig holds the stats snapshot schedule.
type SnapshotConfig struct {
	CronSchedule string
}

// LegacyConfig points at the legacy inventory API used for imports.
// Empty BaseURL disables the import endpoint.
type LegacyConfig struct {
	BaseURL string
}

// Load reads environment variables (optionally from the provided file)
// and materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes
		// from the environment directly.
		_ = godotenv.Load()
	}

	fiscalStart, err := getenvInt("FISCAL_START_MONTH", 5)
	if err != nil {
		return nil, err
	}
	window, err := getenvInt("NEW_ASSET_WINDOW_DAYS", 15)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Path: getenvWithDefault("DB_PATH", "assets.db"),
		},
		Depreciation: DepreciationConfig{
			FiscalStartMonth:   fiscalStart,
			LifeSpanUnit:       getenvWithDefault("LIFESPAN_UNIT", "months"),
			NewAssetWindowDays: window,
		},
		Snapshot: SnapshotConfig{
			CronSchedule: getenvWithDefault("SNAPSHOT_CRON", "0 2 * * *"),
		},
		Legacy: LegacyConfig{
			BaseURL: os.Getenv("LEGACY_API_URL"),
		},
	}

	return cfg, nil
}

func getenvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
