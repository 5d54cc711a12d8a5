package http

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"bollette/internal/core"
	"bollette/internal/engine"
)

type categoryRow struct {
	Label  string
	Amount string
	Count  int
}

type statsData struct {
	TotalMonthly  string
	UpcomingCount int
	UpcomingTotal string
	OverdueCount  int
	OverdueTotal  string
	PaidCount     int
	PaidTotal     string
	Upcoming      []billView
	Overdue       []billView
	Categories    []categoryRow
	Currency      string
}

// handleStatsPartial renders the summary panel: headline totals, the
// upcoming and overdue sets and a per-category breakdown.
func (s *Server) handleStatsPartial(w http.ResponseWriter, r *http.Request) {
	today := core.DateOf(time.Now())

	items, err := s.fetchBills(r.Context(), today)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load bills",
			"error", err, "component", "stats_handler", "operation", "stats")
		apiErrorResponse(err).Write(w)
		return
	}

	stats := engine.Aggregate(items, today)
	currency := s.currency(r.Context())

	data := statsData{
		TotalMonthly:  formatAmount(stats.TotalMonthly, currency),
		UpcomingCount: len(stats.Upcoming),
		UpcomingTotal: formatAmount(stats.UpcomingTotal, currency),
		OverdueCount:  len(stats.Overdue),
		OverdueTotal:  formatAmount(stats.OverdueTotal, currency),
		PaidCount:     len(stats.Paid),
		PaidTotal:     formatAmount(stats.PaidTotal, currency),
		Currency:      currency,
	}
	for _, b := range stats.Upcoming {
		data.Upcoming = append(data.Upcoming, billToView(b, today, currency))
	}
	for _, b := range stats.Overdue {
		data.Overdue = append(data.Overdue, billToView(b, today, currency))
	}

	rows := make([]core.CategorySummary, len(stats.ByCategory))
	copy(rows, stats.ByCategory)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Amount.Cents > rows[j].Amount.Cents
	})
	for _, row := range rows {
		data.Categories = append(data.Categories, categoryRow{
			Label:  row.Category.Label(),
			Amount: formatAmount(row.Amount, currency),
			Count:  row.Count,
		})
	}

	s.renderPartial(w, r, "stats.html", data)
}
