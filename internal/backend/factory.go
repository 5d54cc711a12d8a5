package backend

import (
	"context"
	"fmt"
	"log/slog"

	"bollette/internal/bills/memory"
	"bollette/internal/bills/rest"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(_ context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case RESTBackend:
		client, err := rest.NewClient(config.APIBaseURL, config.APIToken, config.RequestTimeout)
		if err != nil {
			return nil, fmt.Errorf("initialize bills API client: %w", err)
		}
		f.logger.Info("Initialized REST bills backend",
			"base_url", config.APIBaseURL,
			"timeout", config.RequestTimeout)
		return &Result{Store: client}, nil

	case MemoryBackend:
		var result *Result
		if config.SeedFile != "" {
			result = &Result{Store: memory.NewFromFile(config.SeedFile)}
		} else {
			result = &Result{Store: memory.New(nil)}
		}
		f.logger.Info("Initialized memory bills backend", "seed_file", config.SeedFile)
		return result, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
