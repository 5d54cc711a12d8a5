package engine

import (
	"testing"

	"bollette/internal/core"
)

var fixtureToday = core.NewDate(2025, 1, 10)

// fixture returns a mixed collection: three statuses, several categories,
// due dates on both sides of today.
func fixture() []core.Bill {
	return []core.Bill{
		{ID: "1", Name: "Electricity", Amount: core.Money{Cents: 8500}, DueDate: core.NewDate(2025, 1, 13), Status: core.StatusPending, Category: core.CategoryUtilities},
		{ID: "2", Name: "Internet", Amount: core.Money{Cents: 3999}, DueDate: core.NewDate(2025, 1, 5), Status: core.StatusPending, Category: core.CategoryUtilities},
		{ID: "3", Name: "Netflix", Amount: core.Money{Cents: 1299}, DueDate: core.NewDate(2025, 1, 15), Status: core.StatusPending, Category: core.CategorySubscriptions},
		{ID: "4", Name: "Gym", Amount: core.Money{Cents: 4500}, DueDate: core.NewDate(2025, 1, 1), Status: core.StatusPaid, Category: core.CategoryHealthFitness},
		{ID: "5", Name: "Water", Amount: core.Money{Cents: 2200}, DueDate: core.NewDate(2025, 1, 8), Status: core.StatusOverdue, Category: core.CategoryUtilities},
		{ID: "6", Name: "Spotify", Amount: core.Money{Cents: 999}, DueDate: core.NewDate(2025, 1, 10), Status: core.StatusPending, Category: core.CategorySubscriptions},
		{ID: "7", Name: "Groceries", Amount: core.Money{Cents: 12000}, DueDate: core.NewDate(2025, 1, 25), Status: core.StatusPending, Category: core.CategoryGroceries},
		{ID: "8", Name: "Italian course", Amount: core.Money{Cents: 9900}, DueDate: core.NewDate(2025, 2, 20), Status: core.StatusPending, Category: core.CategoryEducation},
		{ID: "9", Name: "Dentist", Amount: core.Money{Cents: 15000}, DueDate: core.NewDate(2025, 1, 3), Status: core.StatusPaid, Category: core.CategoryHealthFitness},
		{ID: "10", Name: "Cinema club", Amount: core.Money{Cents: 1500}, DueDate: core.NewDate(2025, 1, 17), Status: core.StatusPending, Category: core.CategoryEntertainment},
	}
}

func ids(bills []core.Bill) []string {
	out := make([]string, len(bills))
	for i, b := range bills {
		out[i] = b.ID
	}
	return out
}

func equalIDs(t *testing.T, got []core.Bill, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("expected %v, got %v", want, g)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, g)
		}
	}
}

func TestApplyOverdueCorrection(t *testing.T) {
	in := fixture()
	out, changed := ApplyOverdueCorrection(in, fixtureToday)
	if !changed {
		t.Fatalf("expected a change: bill 2 is pending and past due")
	}

	// Input untouched.
	if in[1].Status != core.StatusPending {
		t.Fatalf("input slice was mutated")
	}

	for _, b := range out {
		switch b.ID {
		case "2":
			if b.Status != core.StatusOverdue {
				t.Fatalf("bill 2 should be corrected to overdue, got %s", b.Status)
			}
		case "4", "9":
			if b.Status != core.StatusPaid {
				t.Fatalf("paid bill %s must stay paid", b.ID)
			}
		case "6":
			// Due today is not past due.
			if b.Status != core.StatusPending {
				t.Fatalf("bill due today must stay pending, got %s", b.Status)
			}
		}
	}

	// Idempotent: a second pass changes nothing.
	again, changed2 := ApplyOverdueCorrection(out, fixtureToday)
	if changed2 {
		t.Fatalf("second pass reported changes")
	}
	for i := range out {
		if again[i] != out[i] {
			t.Fatalf("second pass altered bill %s", out[i].ID)
		}
	}
}

func TestFilterConjunctive(t *testing.T) {
	bills, _ := ApplyOverdueCorrection(fixture(), fixtureToday)

	fs := DefaultFilterState()
	fs.Status = string(core.StatusPending)
	fs.Category = string(core.CategoryUtilities)
	equalIDs(t, Filter(bills, fs, fixtureToday), "1")

	fs = DefaultFilterState()
	fs.SearchTerm = "net"
	equalIDs(t, Filter(bills, fs, fixtureToday), "2", "3")

	// Search also matches the category label.
	fs = DefaultFilterState()
	fs.SearchTerm = "subscription"
	equalIDs(t, Filter(bills, fs, fixtureToday), "3", "6")

	fs = DefaultFilterState()
	fs.Status = string(core.StatusOverdue)
	equalIDs(t, Filter(bills, fs, fixtureToday), "2", "5")

	// No predicate active returns everything in order.
	got := Filter(bills, DefaultFilterState(), fixtureToday)
	if len(got) != len(bills) {
		t.Fatalf("expected %d bills, got %d", len(bills), len(got))
	}
}

func TestFilterTimeFrames(t *testing.T) {
	bills := fixture()

	fs := DefaultFilterState()
	fs.TimeFrame = TimeFrameWeek
	// Window is [today, today+7d] inclusive: 2025-01-10 .. 2025-01-17.
	equalIDs(t, Filter(bills, fs, fixtureToday), "1", "3", "6", "10")

	fs.TimeFrame = TimeFrameMonth
	// Window is [today, today+1mo]: past-due bills are excluded.
	equalIDs(t, Filter(bills, fs, fixtureToday), "1", "3", "6", "7", "10")
}

func TestSort(t *testing.T) {
	bills := fixture()[:4] // 1,2,3,4

	equalIDs(t, Sort(bills, SortDueAsc), "4", "2", "1", "3")
	equalIDs(t, Sort(bills, SortDueDesc), "3", "1", "2", "4")
	equalIDs(t, Sort(bills, SortNameAsc), "1", "4", "2", "3")
	equalIDs(t, Sort(bills, SortNameDesc), "3", "2", "4", "1")
	equalIDs(t, Sort(bills, SortAmountDesc), "1", "4", "2", "3")
	equalIDs(t, Sort(bills, SortAmountAsc), "3", "2", "4", "1")

	// Input untouched.
	if bills[0].ID != "1" {
		t.Fatalf("input slice was reordered")
	}
}

func TestSortStable(t *testing.T) {
	bills := []core.Bill{
		{ID: "a", Name: "Same", Amount: core.Money{Cents: 100}, DueDate: core.NewDate(2025, 1, 10)},
		{ID: "b", Name: "Same", Amount: core.Money{Cents: 100}, DueDate: core.NewDate(2025, 1, 10)},
		{ID: "c", Name: "Same", Amount: core.Money{Cents: 100}, DueDate: core.NewDate(2025, 1, 10)},
	}
	for _, opt := range []SortOption{SortDueAsc, SortDueDesc, SortNameAsc, SortNameDesc, SortAmountAsc, SortAmountDesc} {
		equalIDs(t, Sort(bills, opt), "a", "b", "c")
	}
}

func TestPaginate(t *testing.T) {
	bills := fixture()

	page1 := Paginate(bills, 1, 4)
	equalIDs(t, page1, "1", "2", "3", "4")
	page2 := Paginate(bills, 2, 4)
	equalIDs(t, page2, "5", "6", "7", "8")
	page3 := Paginate(bills, 3, 4)
	equalIDs(t, page3, "9", "10")

	if got := Paginate(bills, 4, 4); len(got) != 0 {
		t.Fatalf("out-of-range page should be empty, got %v", ids(got))
	}
	if got := Paginate(bills, 0, 4); len(got) != 0 {
		t.Fatalf("page 0 should be empty, got %v", ids(got))
	}
	if got := Paginate(nil, 1, 4); len(got) != 0 {
		t.Fatalf("empty input should yield empty page")
	}

	// Concatenating all pages reproduces the input.
	var all []core.Bill
	for p := 1; p <= TotalPages(len(bills), 4); p++ {
		all = append(all, Paginate(bills, p, 4)...)
	}
	equalIDs(t, all, ids(bills)...)
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		count, size, want int
	}{
		{0, 6, 1},
		{1, 6, 1},
		{6, 6, 1},
		{7, 6, 2},
		{12, 6, 2},
		{13, 6, 3},
		{10, 0, 1},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.count, tc.size); got != tc.want {
			t.Fatalf("TotalPages(%d, %d): expected %d, got %d", tc.count, tc.size, got, tc.want)
		}
	}
}

func TestAggregate(t *testing.T) {
	bills := []core.Bill{
		{ID: "1", Name: "Power", Amount: core.Money{Cents: 10000}, DueDate: fixtureToday.AddDays(3), Status: core.StatusPending, Category: core.CategoryUtilities},
		{ID: "2", Name: "Water", Amount: core.Money{Cents: 5000}, DueDate: fixtureToday.AddDays(-2), Status: core.StatusOverdue, Category: core.CategoryUtilities},
		{ID: "3", Name: "Gym", Amount: core.Money{Cents: 2500}, DueDate: fixtureToday.AddDays(-5), Status: core.StatusPaid, Category: core.CategoryHealthFitness},
	}

	stats := Aggregate(bills, fixtureToday)

	if stats.TotalMonthly.Cents != 17500 {
		t.Fatalf("expected total 17500, got %d", stats.TotalMonthly.Cents)
	}
	if len(stats.Upcoming) != 1 || stats.UpcomingTotal.Cents != 10000 {
		t.Fatalf("expected 1 upcoming worth 10000, got %d worth %d", len(stats.Upcoming), stats.UpcomingTotal.Cents)
	}
	if len(stats.Overdue) != 1 || stats.OverdueTotal.Cents != 5000 {
		t.Fatalf("expected 1 overdue worth 5000, got %d worth %d", len(stats.Overdue), stats.OverdueTotal.Cents)
	}
	if len(stats.Paid) != 1 || stats.PaidTotal.Cents != 2500 {
		t.Fatalf("expected 1 paid worth 2500, got %d worth %d", len(stats.Paid), stats.PaidTotal.Cents)
	}

	if len(stats.ByCategory) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(stats.ByCategory))
	}
	for _, cs := range stats.ByCategory {
		switch cs.Category {
		case core.CategoryUtilities:
			if cs.Amount.Cents != 15000 || cs.Count != 2 {
				t.Fatalf("utilities: expected 15000/2, got %d/%d", cs.Amount.Cents, cs.Count)
			}
		case core.CategoryHealthFitness:
			if cs.Amount.Cents != 2500 || cs.Count != 1 {
				t.Fatalf("health: expected 2500/1, got %d/%d", cs.Amount.Cents, cs.Count)
			}
		default:
			t.Fatalf("unexpected category %s", cs.Category)
		}
	}
}

func TestAggregateUpcomingWindow(t *testing.T) {
	bills := []core.Bill{
		{ID: "today", Amount: core.Money{Cents: 1}, DueDate: fixtureToday, Status: core.StatusPending},
		{ID: "edge", Amount: core.Money{Cents: 1}, DueDate: fixtureToday.AddDays(7), Status: core.StatusPending},
		{ID: "beyond", Amount: core.Money{Cents: 1}, DueDate: fixtureToday.AddDays(8), Status: core.StatusPending},
		{ID: "paid", Amount: core.Money{Cents: 1}, DueDate: fixtureToday.AddDays(2), Status: core.StatusPaid},
	}
	stats := Aggregate(bills, fixtureToday)
	equalIDs(t, stats.Upcoming, "today", "edge")
}

// TestPipeline runs the full derivation the dashboard performs for one
// request: correction, filter, sort, paginate.
func TestPipeline(t *testing.T) {
	today := core.NewDate(2025, 1, 10)
	bills := fixture()

	corrected, _ := ApplyOverdueCorrection(bills, today)

	fs := DefaultFilterState()
	fs.Status = string(core.StatusPending)
	filtered := Filter(corrected, fs, today)
	// Bill 2 became overdue in the correction, so it is out.
	equalIDs(t, filtered, "1", "3", "6", "7", "8", "10")

	sorted := Sort(filtered, SortDueAsc)
	equalIDs(t, sorted, "6", "1", "3", "10", "7", "8")

	size := PageSize(PresentationList, ViewportNarrow)
	if size != 4 {
		t.Fatalf("expected list/narrow page size 4, got %d", size)
	}
	if tp := TotalPages(len(sorted), size); tp != 2 {
		t.Fatalf("expected 2 pages, got %d", tp)
	}
	equalIDs(t, Paginate(sorted, 1, size), "6", "1", "3", "10")
	equalIDs(t, Paginate(sorted, 2, size), "7", "8")
}
