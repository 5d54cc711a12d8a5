package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// SupportedCurrencies is the set of display currency codes the dashboard
// can format. The stored preference must be one of these.
var SupportedCurrencies = []string{"EUR", "USD", "GBP"}

type Config struct {
	// HTTP Server
	Port string

	// Bills backend
	DataBackend    string
	APIBaseURL     string
	APIToken       string
	RequestTimeout time.Duration
	SeedFile       string

	// Preferences database
	SQLiteDBPath string

	// User identity the currency preference is keyed by
	UserID string

	// Display defaults
	DefaultCurrency string

	// Collection cache
	CacheTTL  time.Duration
	CacheSize int
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8082"),

		DataBackend:    getEnv("DATA_BACKEND", "memory"),
		APIBaseURL:     getEnv("BILLS_API_URL", ""),
		APIToken:       getEnv("BILLS_API_TOKEN", ""),
		RequestTimeout: getEnvDuration("BILLS_API_TIMEOUT", 10*time.Second),
		SeedFile:       getEnv("SEED_FILE", ""),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/bollette.db"),

		UserID: getEnv("USER_ID", "default"),

		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "EUR"),

		CacheTTL:  getEnvDuration("CACHE_TTL", 2*time.Minute),
		CacheSize: getEnvInt("CACHE_SIZE", 50),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	switch c.DataBackend {
	case "memory", "rest":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [memory rest]", c.DataBackend))
	}

	// Validate REST configuration if backend is rest
	if c.DataBackend == "rest" {
		if c.APIBaseURL == "" {
			errs = append(errs, "bills API URL is required when using rest backend")
		} else if parsed, err := url.Parse(c.APIBaseURL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			errs = append(errs, fmt.Sprintf("invalid bills API URL '%s': must be http or https", c.APIBaseURL))
		}
		if c.APIToken == "" {
			errs = append(errs, "bills API token is required when using rest backend")
		}
		if c.RequestTimeout < time.Second || c.RequestTimeout > time.Minute {
			errs = append(errs, fmt.Sprintf("invalid request timeout %v: must be between 1s and 1m", c.RequestTimeout))
		}
	}

	// Validate preferences database path
	if c.SQLiteDBPath == "" {
		errs = append(errs, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if strings.TrimSpace(c.UserID) == "" {
		errs = append(errs, "user id cannot be empty")
	}

	// Validate default currency
	if !IsSupportedCurrency(c.DefaultCurrency) {
		errs = append(errs, fmt.Sprintf("invalid default currency '%s': must be one of %v", c.DefaultCurrency, SupportedCurrencies))
	}

	// Validate cache configuration
	if c.CacheTTL < time.Second || c.CacheTTL > time.Hour {
		errs = append(errs, fmt.Sprintf("invalid cache TTL %v: must be between 1s and 1h", c.CacheTTL))
	}
	if c.CacheSize < 1 || c.CacheSize > 10000 {
		errs = append(errs, fmt.Sprintf("invalid cache size %d: must be between 1 and 10000", c.CacheSize))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// IsSupportedCurrency reports whether code is a known display currency.
func IsSupportedCurrency(code string) bool {
	for _, c := range SupportedCurrencies {
		if code == c {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
