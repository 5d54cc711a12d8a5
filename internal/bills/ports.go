package bills

import (
	"context"
	"errors"

	"bollette/internal/core"
)

// Errors every backend implementation maps its failures onto. An
// authorization failure is distinct from a generic network failure so the
// dashboard can surface it separately.
var (
	ErrUnauthorized = errors.New("bills: bearer credential missing or rejected")
	ErrNotFound     = errors.New("bills: bill not found")
)

// Ports for the external bills backend.
type (
	Lister interface {
		ListBills(ctx context.Context) ([]core.Bill, error)
	}

	// Creator persists a new bill. The returned record carries the
	// server-assigned ID and timestamps.
	Creator interface {
		CreateBill(ctx context.Context, b core.Bill) (core.Bill, error)
	}

	// Updater replaces a bill wholesale; the full-record response
	// overwrites the local copy by id.
	Updater interface {
		UpdateBill(ctx context.Context, b core.Bill) (core.Bill, error)
	}

	Deleter interface {
		DeleteBill(ctx context.Context, id string) error
	}

	// Store is the composite every backend satisfies.
	Store interface {
		Lister
		Creator
		Updater
		Deleter
	}
)
