package core

import "testing"

func TestDaysUntilDue(t *testing.T) {
	today := NewDate(2025, 1, 10)
	cases := []struct {
		due  Date
		want int
	}{
		{NewDate(2025, 1, 10), 0},
		{NewDate(2025, 1, 11), 1},
		{NewDate(2025, 1, 17), 7},
		{NewDate(2025, 1, 9), -1},
		{NewDate(2025, 1, 5), -5},
		{NewDate(2025, 2, 10), 31},
	}
	for _, tc := range cases {
		if got := DaysUntilDue(tc.due, today); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.due, tc.want, got)
		}
	}
}

func TestDueMessage(t *testing.T) {
	today := NewDate(2025, 1, 10)
	cases := []struct {
		name   string
		due    Date
		status Status
		want   string
	}{
		{"due today", NewDate(2025, 1, 10), StatusPending, "Due today"},
		{"due tomorrow", NewDate(2025, 1, 11), StatusPending, "Due in 1 day"},
		{"due in a week", NewDate(2025, 1, 17), StatusPending, "Due in 7 days"},
		{"one day late", NewDate(2025, 1, 9), StatusOverdue, "Overdue by 1 day"},
		{"five days late", NewDate(2025, 1, 5), StatusOverdue, "Overdue by 5 days"},
		{"paid future", NewDate(2025, 1, 20), StatusPaid, "Paid"},
		{"paid past", NewDate(2025, 1, 1), StatusPaid, "Paid"},
	}
	for _, tc := range cases {
		b := Bill{Name: "x", DueDate: tc.due, Status: tc.status}
		if got := DueMessage(b, today); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
