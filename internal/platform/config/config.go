package config

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Config is the process configuration, read from the environment after an
// optional .env file has been loaded.
type Config struct {
	AppEnvironment    string   `env:"APP_ENVIRONMENT" default:"production"`
	Port              string   `env:"PORT" default:"8080"`
	LogLevel          string   `env:"LOG_LEVEL" default:"info"`
	StoreDriver       string   `env:"STORE_DRIVER" default:"sqlite"`
	DatabaseURL       string   `env:"DATABASE_URL" default:"file:sortable.db?_pragma=busy_timeout(5000)"`
	FirebaseProjectID string   `env:"FIREBASE_PROJECT_ID"`
	SeedOnStart       bool     `env:"SEED_ON_START" default:"false"`
	SeedCount         int      `env:"SEED_COUNT" default:"10"`
	OpenAPISpecPath   string   `env:"OPENAPI_SPEC_PATH" default:"api-docs/swagger.json"`
	CORSOrigins       []string `env:"CORS_ORIGINS"`
}

// demoProjectID is used for Firestore when running locally without a project.
const demoProjectID = "demo-test-project"

var drivers = []string{"sqlite", "postgres", "firestore", "memory"}

// Load reads .env (when present) and the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv maps the current environment into a validated Config.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs in local development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnvironment == "development"
}

func validate(cfg *Config) error {
	if !slices.Contains(drivers, cfg.StoreDriver) {
		return fmt.Errorf("STORE_DRIVER must be one of %v, got %q", drivers, cfg.StoreDriver)
	}

	switch cfg.StoreDriver {
	case "sqlite", "postgres":
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s store", cfg.StoreDriver)
		}
	case "firestore":
		if cfg.FirebaseProjectID == "" {
			if !cfg.IsDevelopment() {
				return fmt.Errorf("FIREBASE_PROJECT_ID is required for the firestore store")
			}
			cfg.FirebaseProjectID = demoProjectID
		}
	}

	if cfg.SeedCount < 0 {
		return fmt.Errorf("SEED_COUNT must not be negative, got %d", cfg.SeedCount)
	}
	return nil
}
