package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"bollette/internal/config"
	"bollette/internal/core"
	"bollette/internal/engine"
)

// parseFilterState reads the view state from query parameters, falling back
// to the defaults for anything missing or invalid.
func parseFilterState(query url.Values) engine.FilterState {
	fs := engine.DefaultFilterState()

	fs.SearchTerm = sanitizeInput(query.Get("q"))

	if v := strings.TrimSpace(query.Get("status")); v != "" {
		if v == engine.FilterAll {
			fs.Status = engine.FilterAll
		} else if st, err := core.ParseStatus(v); err == nil {
			fs.Status = string(st)
		}
	}
	if v := strings.TrimSpace(query.Get("category")); v != "" {
		if v == engine.FilterAll {
			fs.Category = engine.FilterAll
		} else if c := core.ParseCategory(v); c.IsValid() {
			fs.Category = string(c)
		}
	}
	if tf := engine.TimeFrame(strings.TrimSpace(query.Get("timeframe"))); tf.IsValid() {
		fs.TimeFrame = tf
	}
	if so := engine.SortOption(strings.TrimSpace(query.Get("sort"))); so.IsValid() {
		fs.Sort = so
	}
	if p := parsePositiveInt(query.Get("listPage")); p > 0 {
		fs.ListPage = p
	}
	if p := parsePositiveInt(query.Get("gridPage")); p > 0 {
		fs.GridPage = p
	}

	return fs
}

// parseViewParams resolves the presentation and viewport class of a partial
// request. Unknown values map onto list/medium.
func parseViewParams(query url.Values) (engine.Presentation, engine.ViewportClass) {
	p := engine.Presentation(strings.TrimSpace(query.Get("view")))
	if !p.IsValid() {
		p = engine.PresentationList
	}
	v := engine.ViewportClass(strings.TrimSpace(query.Get("viewport")))
	switch v {
	case engine.ViewportNarrow, engine.ViewportMedium, engine.ViewportWide:
	default:
		v = engine.ViewportMedium
	}
	return p, v
}

func parsePositiveInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// currencySymbols covers the supported display currencies.
var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
}

func supportedCurrencies() []string {
	return config.SupportedCurrencies
}

// formatAmount formats cents in the given currency (e.g. "€12.34").
func formatAmount(m core.Money, code string) string {
	sym, ok := currencySymbols[code]
	if !ok {
		sym = code + " "
	}
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-" + sym + s
	}
	return sym + s
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// parseBillForm builds a Bill from submitted form values. The ID, when
// present, is taken from the route. Field errors come back as a single
// message suitable for the error partial.
func parseBillForm(r *http.Request, id string) (core.Bill, error) {
	if err := r.ParseForm(); err != nil {
		return core.Bill{}, fmt.Errorf("invalid form data")
	}

	name := sanitizeInput(r.FormValue("name"))

	cents, err := core.ParseDecimalToCents(r.FormValue("amount"))
	if err != nil {
		return core.Bill{}, fmt.Errorf("invalid amount %q", r.FormValue("amount"))
	}

	due, err := core.ParseDate(r.FormValue("dueDate"))
	if err != nil {
		return core.Bill{}, fmt.Errorf("invalid due date %q, expected YYYY-MM-DD", r.FormValue("dueDate"))
	}

	statusValue := r.FormValue("status")
	if statusValue == "" {
		statusValue = string(core.StatusPending)
	}
	status, err := core.ParseStatus(statusValue)
	if err != nil {
		return core.Bill{}, fmt.Errorf("invalid status %q", statusValue)
	}

	return core.Bill{
		ID:       id,
		Name:     name,
		Amount:   core.Money{Cents: cents},
		DueDate:  due,
		Status:   status,
		Category: core.ParseCategory(r.FormValue("category")),
	}, nil
}
