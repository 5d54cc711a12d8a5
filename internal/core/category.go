package core

import "strings"

// Category is the closed set of bill categories. Values the backend sends
// that are not in the set map to CategoryOther on parse, so an unmapped
// value is an explicit variant rather than a silent default.
type Category string

const (
	CategoryUtilities     Category = "utilities"
	CategorySubscriptions Category = "subscriptions"
	CategoryGroceries     Category = "groceries"
	CategoryHealthFitness Category = "health_fitness"
	CategoryEducation     Category = "education"
	CategoryPersonalCare  Category = "personal_care"
	CategoryEntertainment Category = "entertainment"
	CategoryOther         Category = "other"
)

var categoryLabels = map[Category]string{
	CategoryUtilities:     "Utilities",
	CategorySubscriptions: "Subscriptions",
	CategoryGroceries:     "Groceries",
	CategoryHealthFitness: "Health & Fitness",
	CategoryEducation:     "Education",
	CategoryPersonalCare:  "Personal Care",
	CategoryEntertainment: "Entertainment",
	CategoryOther:         "Other",
}

// Categories returns the full set in display order.
func Categories() []Category {
	return []Category{
		CategoryUtilities,
		CategorySubscriptions,
		CategoryGroceries,
		CategoryHealthFitness,
		CategoryEducation,
		CategoryPersonalCare,
		CategoryEntertainment,
		CategoryOther,
	}
}

// ParseCategory maps a wire or form value onto the closed set, accepting
// both the canonical value and the display label. Unknown values fall back
// to CategoryOther.
func ParseCategory(s string) Category {
	v := strings.ToLower(strings.TrimSpace(s))
	for c, label := range categoryLabels {
		if v == string(c) || v == strings.ToLower(label) {
			return c
		}
	}
	return CategoryOther
}

// Label returns the human-readable name of the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}

func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}
