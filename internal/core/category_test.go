package core

import "testing"

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"utilities", CategoryUtilities},
		{"Utilities", CategoryUtilities},
		{"health_fitness", CategoryHealthFitness},
		{"Health & Fitness", CategoryHealthFitness},
		{" entertainment ", CategoryEntertainment},
		{"other", CategoryOther},
		{"rent", CategoryOther}, // unknown falls back
		{"", CategoryOther},
	}
	for _, tc := range cases {
		if got := ParseCategory(tc.in); got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestCategoriesComplete(t *testing.T) {
	all := Categories()
	if len(all) != len(categoryLabels) {
		t.Fatalf("Categories() returns %d entries, labels map has %d", len(all), len(categoryLabels))
	}
	seen := map[Category]bool{}
	for _, c := range all {
		if !c.IsValid() {
			t.Fatalf("category %s missing a label", c)
		}
		if seen[c] {
			t.Fatalf("category %s listed twice", c)
		}
		seen[c] = true
	}
	if all[len(all)-1] != CategoryOther {
		t.Fatalf("Other should close the display order")
	}
}
