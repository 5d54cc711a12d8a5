package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bollette/internal/bills"
	"bollette/internal/core"
)

func fixedClock() func() time.Time {
	t := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func TestCreateAndList(t *testing.T) {
	s := New(nil).WithClock(fixedClock())
	ctx := context.Background()

	created, err := s.CreateBill(ctx, core.Bill{
		Name:     "Electricity",
		Amount:   core.Money{Cents: 8500},
		DueDate:  core.NewDate(2025, 1, 13),
		Status:   core.StatusPending,
		Category: core.CategoryUtilities,
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected an assigned id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt != created.CreatedAt {
		t.Fatalf("expected matching timestamps, got %v / %v", created.CreatedAt, created.UpdatedAt)
	}

	got, err := s.ListBills(ctx)
	if err != nil {
		t.Fatalf("ListBills: %v", err)
	}
	if len(got) != 1 || got[0].ID != created.ID {
		t.Fatalf("expected the created bill back, got %+v", got)
	}

	// The returned slice is a copy; mutating it must not affect the store.
	got[0].Name = "tampered"
	again, _ := s.ListBills(ctx)
	if again[0].Name != "Electricity" {
		t.Fatalf("store was mutated through the listed slice")
	}
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	s := New(nil).WithClock(fixedClock())
	ctx := context.Background()

	created, _ := s.CreateBill(ctx, core.Bill{Name: "Gym", Amount: core.Money{Cents: 4500}, DueDate: core.NewDate(2025, 1, 1), Status: core.StatusPending})

	later := time.Date(2025, 1, 11, 9, 0, 0, 0, time.UTC)
	s.WithClock(func() time.Time { return later })

	created.Status = core.StatusPaid
	updated, err := s.UpdateBill(ctx, created)
	if err != nil {
		t.Fatalf("UpdateBill: %v", err)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Fatalf("CreatedAt must survive updates")
	}
	if !updated.UpdatedAt.Equal(later) {
		t.Fatalf("expected UpdatedAt %v, got %v", later, updated.UpdatedAt)
	}
	if updated.Status != core.StatusPaid {
		t.Fatalf("expected paid, got %s", updated.Status)
	}
}

func TestUpdateAndDeleteUnknown(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	if _, err := s.UpdateBill(ctx, core.Bill{ID: "ghost"}); !errors.Is(err, bills.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteBill(ctx, "ghost"); !errors.Is(err, bills.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := New(nil)
	ctx := context.Background()
	created, _ := s.CreateBill(ctx, core.Bill{Name: "Water", Amount: core.Money{Cents: 2200}, DueDate: core.NewDate(2025, 1, 8), Status: core.StatusPending})

	if err := s.DeleteBill(ctx, created.ID); err != nil {
		t.Fatalf("DeleteBill: %v", err)
	}
	got, _ := s.ListBills(ctx)
	if len(got) != 0 {
		t.Fatalf("expected empty store, got %d bills", len(got))
	}
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	seed := `[
		{"name":"Electricity","amount":"85.00","dueDate":"2025-01-13","status":"pending","category":"utilities"},
		{"name":"Broken","amount":"not-a-number","dueDate":"2025-01-13","status":"pending","category":"utilities"},
		{"name":"Netflix","amount":"12.99","dueDate":"2025-01-15","status":"pending","category":"subscriptions"}
	]`
	if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	s := NewFromFile(path)
	got, _ := s.ListBills(context.Background())
	if len(got) != 2 {
		t.Fatalf("expected the malformed entry skipped, got %d bills", len(got))
	}
	for _, b := range got {
		if b.ID == "" {
			t.Fatalf("seeded bills need ids")
		}
	}
}

func TestNewFromFileMissing(t *testing.T) {
	s := NewFromFile(filepath.Join(t.TempDir(), "nope.json"))
	got, _ := s.ListBills(context.Background())
	if len(got) != 0 {
		t.Fatalf("missing seed file should yield an empty store")
	}
}
