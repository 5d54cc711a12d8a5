package memory

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"

	"bollette/internal/core"
)

type seedBill struct {
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	DueDate  string `json:"dueDate"`
	Status   string `json:"status"`
	Category string `json:"category"`
}

// NewFromFile seeds the store from a JSON array of bills. A missing or
// unreadable file yields an empty store; malformed entries are skipped.
func NewFromFile(path string) *Store {
	data, err := os.ReadFile(path)
	if err != nil {
		return New(nil)
	}
	var seeds []seedBill
	if err := json.Unmarshal(data, &seeds); err != nil {
		return New(nil)
	}

	now := time.Now().UTC()
	var items []core.Bill
	for _, s := range seeds {
		cents, err := core.ParseDecimalToCents(s.Amount)
		if err != nil {
			continue
		}
		due, err := core.ParseDate(s.DueDate)
		if err != nil {
			continue
		}
		status, err := core.ParseStatus(s.Status)
		if err != nil {
			continue
		}
		items = append(items, core.Bill{
			ID:        uuid.NewString(),
			Name:      s.Name,
			Amount:    core.Money{Cents: cents},
			DueDate:   due,
			Status:    status,
			Category:  core.ParseCategory(s.Category),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return New(items)
}
