// Package cli provides common binary initialization utilities.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"bollette/internal/config"
	applog "bollette/internal/log"
	"bollette/internal/storage"
)

// SetupLogger initializes structured logging and sets it as the default.
func SetupLogger() *applog.Logger {
	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitPreferences opens the preference store at the given path.
// Returns the store or exits the process on failure.
func InitPreferences(logger *applog.Logger, dbPath string) *storage.PreferenceStore {
	store, err := storage.NewPreferenceStore(dbPath)
	if err != nil {
		logger.Error("Failed to initialize preference store", applog.FieldError, err, "path", dbPath)
		os.Exit(1)
	}
	return store
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// ShutdownTimeout is how long a graceful shutdown may take before the
// process gives up.
const ShutdownTimeout = 30 * time.Second
