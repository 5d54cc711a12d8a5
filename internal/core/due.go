package core

import "fmt"

// DaysUntilDue returns the signed day difference between a due date and
// today, both at day granularity. Positive means the bill is still ahead,
// zero means due today, negative means the due date has passed.
func DaysUntilDue(due, today Date) int {
	return int(due.Time.Sub(today.Time).Hours() / 24)
}

// DueMessage renders the human due-date message for a bill. Paid bills get
// a fixed "Paid" label regardless of the arithmetic.
func DueMessage(b Bill, today Date) string {
	if b.Status == StatusPaid {
		return "Paid"
	}
	days := DaysUntilDue(b.DueDate, today)
	switch {
	case days == 0:
		return "Due today"
	case days == 1:
		return "Due in 1 day"
	case days > 1:
		return fmt.Sprintf("Due in %d days", days)
	case days == -1:
		return "Overdue by 1 day"
	default:
		return fmt.Sprintf("Overdue by %d days", -days)
	}
}
