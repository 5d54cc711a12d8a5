// Package engine derives every view the dashboard renders from the raw bill
// collection: overdue status correction, filtering, sorting, pagination and
// aggregate statistics. All operations are pure; the current date is always
// an explicit parameter so behavior never depends on the wall clock.
package engine

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"bollette/internal/core"
)

// ApplyOverdueCorrection re-derives the overdue status for pending bills
// whose due date has passed. Paid and already-overdue bills are untouched.
// The input slice is never mutated; the returned bool reports whether any
// bill changed, so the caller can decide whether to re-store the corrected
// collection. Applying the correction twice yields the same result as once.
func ApplyOverdueCorrection(bills []core.Bill, today core.Date) ([]core.Bill, bool) {
	out := make([]core.Bill, len(bills))
	copy(out, bills)

	changed := false
	for i, b := range out {
		if b.Status == core.StatusPending && b.DueDate.Before(today) {
			out[i].Status = core.StatusOverdue
			changed = true
		}
	}
	return out, changed
}

// Filter returns the ordered subsequence of bills passing every predicate
// in the filter state. Relative order of the input is preserved.
func Filter(bills []core.Bill, fs FilterState, today core.Date) []core.Bill {
	out := make([]core.Bill, 0, len(bills))
	for _, b := range bills {
		if matches(b, fs, today) {
			out = append(out, b)
		}
	}
	return out
}

// Sort orders bills by the given option. The sort is stable, so ties keep
// the filtered order, and the input slice is left untouched. Name ordering
// is locale-aware.
func Sort(bills []core.Bill, option SortOption) []core.Bill {
	out := make([]core.Bill, len(bills))
	copy(out, bills)

	var less func(a, b core.Bill) bool
	switch option {
	case SortDueDesc:
		less = func(a, b core.Bill) bool { return a.DueDate.After(b.DueDate) }
	case SortNameAsc, SortNameDesc:
		// Collators are not safe for concurrent use, so build one per call.
		col := collate.New(language.Und, collate.Loose)
		if option == SortNameAsc {
			less = func(a, b core.Bill) bool { return col.CompareString(a.Name, b.Name) < 0 }
		} else {
			less = func(a, b core.Bill) bool { return col.CompareString(a.Name, b.Name) > 0 }
		}
	case SortAmountDesc:
		less = func(a, b core.Bill) bool { return a.Amount.Cents > b.Amount.Cents }
	case SortAmountAsc:
		less = func(a, b core.Bill) bool { return a.Amount.Cents < b.Amount.Cents }
	default: // SortDueAsc
		less = func(a, b core.Bill) bool { return a.DueDate.Before(b.DueDate) }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Paginate returns the 1-indexed page of the given size. A page beyond the
// end yields an empty slice, never an error; clamping the cursor back into
// range after the filtered set shrinks is the caller's job.
func Paginate(bills []core.Bill, page, pageSize int) []core.Bill {
	if page < 1 || pageSize < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(bills) {
		return nil
	}
	end := start + pageSize
	if end > len(bills) {
		end = len(bills)
	}
	return bills[start:end]
}

// TotalPages returns ceil(count/pageSize), minimum 1 so an empty result
// never produces a zero-page state.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 || count <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

// Aggregate computes the dashboard statistics over the full post-correction
// collection, independent of any active filters.
func Aggregate(bills []core.Bill, today core.Date) core.BillStats {
	var stats core.BillStats
	weekEnd := today.AddDays(7)

	byCategory := make(map[core.Category]*core.CategorySummary)
	for _, b := range bills {
		stats.TotalMonthly = stats.TotalMonthly.Add(b.Amount)

		switch b.Status {
		case core.StatusPending:
			if !b.DueDate.Before(today) && !b.DueDate.After(weekEnd) {
				stats.Upcoming = append(stats.Upcoming, b)
				stats.UpcomingTotal = stats.UpcomingTotal.Add(b.Amount)
			}
		case core.StatusOverdue:
			stats.Overdue = append(stats.Overdue, b)
			stats.OverdueTotal = stats.OverdueTotal.Add(b.Amount)
		case core.StatusPaid:
			stats.Paid = append(stats.Paid, b)
			stats.PaidTotal = stats.PaidTotal.Add(b.Amount)
		}

		cs, ok := byCategory[b.Category]
		if !ok {
			cs = &core.CategorySummary{Category: b.Category}
			byCategory[b.Category] = cs
		}
		cs.Amount = cs.Amount.Add(b.Amount)
		cs.Count++
	}

	for _, cs := range byCategory {
		stats.ByCategory = append(stats.ByCategory, *cs)
	}
	return stats
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
