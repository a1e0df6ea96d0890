package core

import (
	"slices"
	"testing"
)

func TestFilter(t *testing.T) {
	all := products("Red Shirt", 10.0, "Blue Jeans", 40.0, "red hat", 5.0, "Sneakers", 60.0)

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"blank query keeps all", "", []int{1, 2, 3, 4}},
		{"whitespace query keeps all", "   ", []int{1, 2, 3, 4}},
		{"case insensitive", "RED", []int{1, 3}},
		{"surrounding whitespace trimmed", "  jeans ", []int{2}},
		{"substring match", "ea", []int{2, 4}},
		{"no match", "socks", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(all, tt.query))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Filter(%q) ids = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	all := products("b", 1.0, "a", 2.0, "ab", 3.0)
	before := slices.Clone(all)

	Filter(all, "a")

	if !slices.EqualFunc(all, before, func(x, y Product) bool { return x.ID == y.ID && x.Title == y.Title }) {
		t.Errorf("input modified: %v", all)
	}
}

func TestFilter_Idempotent(t *testing.T) {
	all := products("Alpha", 1.0, "alphabet", 2.0, "Beta", 3.0)
	once := Filter(all, "alp")
	twice := Filter(once, "alp")
	if !slices.Equal(ids(once), ids(twice)) {
		t.Errorf("Filter not idempotent: %v then %v", ids(once), ids(twice))
	}
}
