package core

// CategorySummary is the aggregated amount and count for one category
// present in the current collection. Derived, never persisted.
type CategorySummary struct {
	Category Category
	Amount   Money
	Count    int
}

// BillStats is the aggregate view over the full (post-correction) bill
// collection, independent of any active filters.
type BillStats struct {
	TotalMonthly Money

	Upcoming      []Bill
	UpcomingTotal Money

	Overdue      []Bill
	OverdueTotal Money

	Paid      []Bill
	PaidTotal Money

	ByCategory []CategorySummary
}
