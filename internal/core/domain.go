package core

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

type (
	// Status is the lifecycle stage of a bill.
	Status string

	// Date is a calendar date with day granularity. The embedded time is
	// always truncated to midnight UTC.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Bill is a recurring financial obligation. ID and the timestamps are
	// assigned by the backend and never mutated locally.
	Bill struct {
		ID        string
		Name      string
		Amount    Money
		DueDate   Date
		Status    Status
		Category  Category
		CreatedAt time.Time
		UpdatedAt time.Time
	}
)

var (
	ErrEmptyName     = errors.New("empty bill name")
	ErrNameTooLong   = errors.New("bill name too long (max 120 characters)")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrZeroDueDate   = errors.New("due date cannot be zero")
	ErrInvalidStatus = errors.New("invalid status")
	ErrFutureOverdue = errors.New("a bill cannot be overdue with a future due date")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary instant to day granularity.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Before reports whether d falls on an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d falls on a later day than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// AddMonths returns the date n calendar months later.
func (d Date) AddMonths(n int) Date {
	return Date{Time: d.Time.AddDate(0, n, 0)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrZeroDueDate
	}
	return nil
}

// ParseStatus maps a wire value to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusPaid:
		return StatusPaid, nil
	case StatusOverdue:
		return StatusOverdue, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status is exited by any automatic transition.
// Paid bills stay paid; only a direct user edit can change them.
func (s Status) Terminal() bool {
	return s == StatusPaid
}

// CanMarkPaid reports whether the "mark as paid" action applies.
func (s Status) CanMarkPaid() bool {
	return s == StatusPending || s == StatusOverdue
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks a bill against the current date. This is the input
// validation boundary: a bill submitted as overdue with a due date not
// strictly in the past is rejected here, before any network call is made.
func (b Bill) Validate(today Date) error {
	if len(strings.TrimSpace(b.Name)) == 0 {
		return ErrEmptyName
	}
	if len(b.Name) > 120 {
		return ErrNameTooLong
	}
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	if err := b.DueDate.Validate(); err != nil {
		return err
	}
	if !b.Status.IsValid() {
		return ErrInvalidStatus
	}
	if b.Status == StatusOverdue && !b.DueDate.Before(today) {
		return ErrFutureOverdue
	}
	return nil
}
