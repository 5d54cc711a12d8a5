package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"bollette/internal/config"
)

// handleGetCurrency returns the active display currency as JSON.
func (s *Server) handleGetCurrency(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"currency": s.currency(r.Context()),
	})
}

// handleSetCurrency persists a new display currency preference and asks the
// panels showing amounts to reload.
func (s *Server) handleSetCurrency(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("invalid form data").Write(w)
		return
	}

	code := sanitizeInput(r.FormValue("currency"))
	if !config.IsSupportedCurrency(code) {
		UnprocessableEntityError(fmt.Sprintf("unsupported currency %q", code)).Write(w)
		return
	}

	if s.prefs == nil {
		UnprocessableEntityError("preference storage unavailable").Write(w)
		return
	}
	if err := s.prefs.SetCurrency(r.Context(), s.opts.UserID, code); err != nil {
		slog.ErrorContext(r.Context(), "Failed to save currency preference",
			"error", err, "currency", code, "user_id", s.opts.UserID,
			"component", "prefs_handler", "operation", "set_currency")
		ErrorResponse(http.StatusInternalServerError, "Could not save the currency preference").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Currency preference updated",
		"currency", code, "user_id", s.opts.UserID,
		"component", "prefs_handler", "operation", "set_currency")

	NewHTMXResponse().
		TriggerCurrencyChanged(code).
		TriggerBillsRefresh().
		TriggerSuccessNotification("Currency set to " + code).
		Write(w)
}
