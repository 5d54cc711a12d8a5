package engine

import "bollette/internal/core"

// FilterAll is the wildcard value for the status and category filters.
const FilterAll = "all"

const (
	TimeFrameAll   TimeFrame = "all"
	TimeFrameMonth TimeFrame = "month"
	TimeFrameWeek  TimeFrame = "week"
)

const (
	SortDueAsc     SortOption = "due-asc"
	SortDueDesc    SortOption = "due-desc"
	SortNameAsc    SortOption = "name-asc"
	SortNameDesc   SortOption = "name-desc"
	SortAmountDesc SortOption = "amount-desc"
	SortAmountAsc  SortOption = "amount-asc"
)

const (
	PresentationList Presentation = "list"
	PresentationGrid Presentation = "grid"
)

const (
	ViewportNarrow ViewportClass = "narrow"
	ViewportMedium ViewportClass = "medium"
	ViewportWide   ViewportClass = "wide"
)

type (
	// TimeFrame is a relative date-window predicate applied to due dates.
	TimeFrame string

	// SortOption selects one of the six supported orderings.
	SortOption string

	// Presentation distinguishes the two independent views, each with its
	// own page cursor and page-size table.
	Presentation string

	// ViewportClass is the resolved viewport size bucket. Resolving the
	// actual viewport is a presentation concern; the engine only maps the
	// class to a page size.
	ViewportClass string

	// FilterState is the ephemeral view state owned by the engine's caller.
	FilterState struct {
		SearchTerm string
		Status     string // FilterAll or a core.Status value
		Category   string // FilterAll or a core.Category value
		TimeFrame  TimeFrame
		Sort       SortOption

		// Independent 1-indexed page cursors per presentation.
		ListPage int
		GridPage int
	}
)

func (tf TimeFrame) IsValid() bool {
	switch tf {
	case TimeFrameAll, TimeFrameMonth, TimeFrameWeek:
		return true
	default:
		return false
	}
}

func (o SortOption) IsValid() bool {
	switch o {
	case SortDueAsc, SortDueDesc, SortNameAsc, SortNameDesc, SortAmountDesc, SortAmountAsc:
		return true
	default:
		return false
	}
}

func (p Presentation) IsValid() bool {
	return p == PresentationList || p == PresentationGrid
}

// DefaultFilterState returns the state a fresh dashboard visit starts with.
func DefaultFilterState() FilterState {
	return FilterState{
		SearchTerm: "",
		Status:     FilterAll,
		Category:   FilterAll,
		TimeFrame:  TimeFrameAll,
		Sort:       SortDueAsc,
		ListPage:   1,
		GridPage:   1,
	}
}

// Page returns the cursor for the given presentation.
func (fs FilterState) Page(p Presentation) int {
	if p == PresentationGrid {
		return fs.GridPage
	}
	return fs.ListPage
}

// pageSizes maps presentation and viewport class to a page size. The grid
// packs cards in rows of three on wide screens, the list shows more rows.
var pageSizes = map[Presentation]map[ViewportClass]int{
	PresentationList: {
		ViewportNarrow: 4,
		ViewportMedium: 6,
		ViewportWide:   8,
	},
	PresentationGrid: {
		ViewportNarrow: 3,
		ViewportMedium: 6,
		ViewportWide:   9,
	},
}

// PageSize resolves the page size for a presentation and viewport class.
// Unknown inputs fall back to the list/medium size.
func PageSize(p Presentation, v ViewportClass) int {
	if sizes, ok := pageSizes[p]; ok {
		if n, ok := sizes[v]; ok {
			return n
		}
		return sizes[ViewportMedium]
	}
	return pageSizes[PresentationList][ViewportMedium]
}

// matches reports whether a single bill passes every active predicate.
// Filtering is conjunctive: failing any predicate excludes the bill.
func matches(b core.Bill, fs FilterState, today core.Date) bool {
	if !matchesSearch(b, fs.SearchTerm) {
		return false
	}
	if fs.Status != "" && fs.Status != FilterAll && string(b.Status) != fs.Status {
		return false
	}
	if fs.Category != "" && fs.Category != FilterAll && string(b.Category) != fs.Category {
		return false
	}
	return matchesTimeFrame(b, fs.TimeFrame, today)
}

func matchesSearch(b core.Bill, term string) bool {
	term = normalize(term)
	if term == "" {
		return true
	}
	return contains(b.Name, term) || contains(b.Category.Label(), term) || contains(string(b.Category), term)
}

func matchesTimeFrame(b core.Bill, tf TimeFrame, today core.Date) bool {
	switch tf {
	case TimeFrameMonth:
		return !b.DueDate.Before(today) && !b.DueDate.After(today.AddMonths(1))
	case TimeFrameWeek:
		return !b.DueDate.Before(today) && !b.DueDate.After(today.AddDays(7))
	default:
		return true
	}
}
