package backend

import (
	"context"
	"time"

	"bollette/internal/bills"
)

// Type selects how the dashboard reaches the bills collection.
type Type string

const (
	RESTBackend   Type = "rest"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case RESTBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result contains the store instance and optional cleanup function.
type Result struct {
	Store   bills.Store
	Cleanup CleanupFunc
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// REST specific
	APIBaseURL     string
	APIToken       string
	RequestTimeout time.Duration

	// Memory backend specific
	SeedFile string
}

// Factory creates stores based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}
