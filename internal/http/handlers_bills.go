package http

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"bollette/internal/core"
	"bollette/internal/engine"
)

// billView is a render-ready projection of a single bill.
type billView struct {
	ID         string
	Name       string
	Amount     string
	DueDate    string
	DueMessage string
	Status     string
	Category   string
	Overdue    bool
	Paid       bool
	CanPay     bool
}

// billListData feeds both the list and the grid partials.
type billListData struct {
	Bills        []billView
	View         string
	Viewport     string
	Page         int
	TotalPages   int
	HasPrev      bool
	HasNext      bool
	PrevPage     int
	NextPage     int
	TotalMatched int
	Query        string
	Filter       engine.FilterState
}

func billToView(b core.Bill, today core.Date, currency string) billView {
	return billView{
		ID:         b.ID,
		Name:       b.Name,
		Amount:     formatAmount(b.Amount, currency),
		DueDate:    b.DueDate.String(),
		DueMessage: core.DueMessage(b, today),
		Status:     string(b.Status),
		Category:   b.Category.Label(),
		Overdue:    b.Status == core.StatusOverdue,
		Paid:       b.Status == core.StatusPaid,
		CanPay:     b.Status.CanMarkPaid(),
	}
}

// handleBillsPartial renders one page of the list or grid view, applying
// the full filter/sort/paginate pipeline over the corrected collection.
func (s *Server) handleBillsPartial(w http.ResponseWriter, r *http.Request) {
	today := core.DateOf(time.Now())
	fs := parseFilterState(r.URL.Query())
	presentation, viewport := parseViewParams(r.URL.Query())

	items, err := s.fetchBills(r.Context(), today)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load bills",
			"error", err, "component", "bills_handler", "operation", "list")
		apiErrorResponse(err).Write(w)
		return
	}

	filtered := engine.Filter(items, fs, today)
	sorted := engine.Sort(filtered, fs.Sort)

	pageSize := engine.PageSize(presentation, viewport)
	totalPages := engine.TotalPages(len(sorted), pageSize)
	page := fs.Page(presentation)
	if page > totalPages {
		// A mutation can shrink the result set under the cursor.
		page = totalPages
	}
	pageItems := engine.Paginate(sorted, page, pageSize)

	currency := s.currency(r.Context())
	data := billListData{
		View:         string(presentation),
		Viewport:     string(viewport),
		Page:         page,
		TotalPages:   totalPages,
		HasPrev:      page > 1,
		HasNext:      page < totalPages,
		PrevPage:     page - 1,
		NextPage:     page + 1,
		TotalMatched: len(sorted),
		Query:        fs.SearchTerm,
		Filter:       fs,
	}
	for _, b := range pageItems {
		data.Bills = append(data.Bills, billToView(b, today, currency))
	}

	tmpl := "bills_list.html"
	if presentation == engine.PresentationGrid {
		tmpl = "bills_grid.html"
	}
	s.renderPartial(w, r, tmpl, data)
}

func (s *Server) renderPartial(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", name)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	today := core.DateOf(time.Now())

	bill, err := parseBillForm(r, "")
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if err := bill.Validate(today); err != nil {
		UnprocessableEntityError("Invalid data: " + err.Error()).Write(w)
		return
	}

	created, err := s.store.CreateBill(r.Context(), bill)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create bill",
			"error", err,
			"bill_name", bill.Name,
			"amount_cents", bill.Amount.Cents,
			"component", "bills_handler",
			"operation", "create")
		apiErrorResponse(err).Write(w)
		return
	}

	s.invalidateBills()

	slog.InfoContext(r.Context(), "Bill created",
		"bill_id", created.ID,
		"bill_name", created.Name,
		"amount_cents", created.Amount.Cents,
		"due_date", created.DueDate.String(),
		"component", "bills_handler",
		"operation", "create")

	msg := fmt.Sprintf("Bill saved: %s", template.HTMLEscapeString(created.Name))
	NewHTMXResponse().
		TriggerBillCreated(created.ID).
		TriggerBillsRefresh().
		TriggerFormReset().
		TriggerSuccessNotification(msg).
		Write(w)
}

func (s *Server) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		BadRequestError("missing bill id").Write(w)
		return
	}
	today := core.DateOf(time.Now())

	bill, err := parseBillForm(r, id)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if err := bill.Validate(today); err != nil {
		UnprocessableEntityError("Invalid data: " + err.Error()).Write(w)
		return
	}

	updated, err := s.store.UpdateBill(r.Context(), bill)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to update bill",
			"error", err, "bill_id", id,
			"component", "bills_handler", "operation", "update")
		apiErrorResponse(err).Write(w)
		return
	}

	s.invalidateBills()

	slog.InfoContext(r.Context(), "Bill updated",
		"bill_id", updated.ID, "bill_name", updated.Name,
		"component", "bills_handler", "operation", "update")

	NewHTMXResponse().
		TriggerBillUpdated(updated.ID).
		TriggerBillsRefresh().
		TriggerSuccessNotification("Bill updated").
		Write(w)
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		BadRequestError("missing bill id").Write(w)
		return
	}

	if err := s.store.DeleteBill(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete bill",
			"error", err, "bill_id", id,
			"component", "bills_handler", "operation", "delete")
		apiErrorResponse(err).Write(w)
		return
	}

	s.invalidateBills()

	slog.InfoContext(r.Context(), "Bill deleted",
		"bill_id", id, "component", "bills_handler", "operation", "delete")

	NewHTMXResponse().
		TriggerBillDeleted(id).
		TriggerBillsRefresh().
		TriggerSuccessNotification("Bill deleted").
		Write(w)
}

// handleMarkPaid transitions a pending or overdue bill to paid. Marking an
// already paid bill is a no-op success so a double click never errors.
func (s *Server) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		BadRequestError("missing bill id").Write(w)
		return
	}
	today := core.DateOf(time.Now())

	items, err := s.fetchBills(r.Context(), today)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load bills",
			"error", err, "component", "bills_handler", "operation", "mark_paid")
		apiErrorResponse(err).Write(w)
		return
	}

	var target *core.Bill
	for i := range items {
		if items[i].ID == id {
			target = &items[i]
			break
		}
	}
	if target == nil {
		NotFoundError("This bill no longer exists").Write(w)
		return
	}

	if target.Status == core.StatusPaid {
		NewHTMXResponse().
			TriggerSuccessNotification("Bill already paid").
			Write(w)
		return
	}

	bill := *target
	bill.Status = core.StatusPaid
	updated, err := s.store.UpdateBill(r.Context(), bill)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to mark bill paid",
			"error", err, "bill_id", id,
			"component", "bills_handler", "operation", "mark_paid")
		apiErrorResponse(err).Write(w)
		return
	}

	s.invalidateBills()

	slog.InfoContext(r.Context(), "Bill marked paid",
		"bill_id", updated.ID, "bill_name", updated.Name,
		"component", "bills_handler", "operation", "mark_paid")

	msg := fmt.Sprintf("Paid: %s", template.HTMLEscapeString(updated.Name))
	NewHTMXResponse().
		TriggerBillPaid(updated.ID).
		TriggerBillsRefresh().
		TriggerSuccessNotification(msg).
		Write(w)
}
