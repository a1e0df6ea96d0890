package core

import (
	"slices"
	"testing"
)

func TestSort(t *testing.T) {
	all := products("banana", 20.0, "Apple", 5.0, "cherry", 1.0)

	tests := []struct {
		name string
		spec SortSpec
		want []int
	}{
		{"unsorted keeps input order", SortSpec{}, []int{1, 2, 3}},
		{"price asc", SortSpec{Field: SortPrice, Dir: DirAsc}, []int{3, 2, 1}},
		{"price desc", SortSpec{Field: SortPrice, Dir: DirDesc}, []int{1, 2, 3}},
		{"title asc ignores case", SortSpec{Field: SortTitle, Dir: DirAsc}, []int{2, 1, 3}},
		{"title desc ignores case", SortSpec{Field: SortTitle, Dir: DirDesc}, []int{3, 1, 2}},
		{"field without direction", SortSpec{Field: SortPrice}, []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Sort(all, tt.spec))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Sort(%+v) ids = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestSort_StableForEqualKeys(t *testing.T) {
	all := products("same", 5.0, "Same", 5.0, "other", 1.0, "SAME", 5.0)

	asc := ids(Sort(all, SortSpec{Field: SortPrice, Dir: DirAsc}))
	if want := []int{3, 1, 2, 4}; !slices.Equal(asc, want) {
		t.Errorf("price asc = %v, want %v", asc, want)
	}

	desc := ids(Sort(all, SortSpec{Field: SortPrice, Dir: DirDesc}))
	if want := []int{1, 2, 4, 3}; !slices.Equal(desc, want) {
		t.Errorf("price desc = %v, want %v", desc, want)
	}

	byTitle := ids(Sort(all, SortSpec{Field: SortTitle, Dir: DirAsc}))
	if want := []int{3, 1, 2, 4}; !slices.Equal(byTitle, want) {
		t.Errorf("title asc = %v, want %v", byTitle, want)
	}
}

func TestSort_DescIsReverseOfAscForDistinctKeys(t *testing.T) {
	all := products("d", 4.0, "a", 1.0, "c", 3.0, "b", 2.0)

	asc := ids(Sort(all, SortSpec{Field: SortPrice, Dir: DirAsc}))
	desc := ids(Sort(all, SortSpec{Field: SortPrice, Dir: DirDesc}))
	slices.Reverse(desc)

	if !slices.Equal(asc, desc) {
		t.Errorf("reversed desc %v != asc %v", desc, asc)
	}
}

func TestSort_DoesNotModifyInput(t *testing.T) {
	all := products("b", 2.0, "a", 1.0)
	Sort(all, SortSpec{Field: SortTitle, Dir: DirAsc})
	if all[0].Title != "b" || all[1].Title != "a" {
		t.Errorf("input modified: %v", all)
	}
}

func TestSortSpec_Next(t *testing.T) {
	var s SortSpec

	steps := []struct {
		click SortField
		want  SortSpec
	}{
		{SortPrice, SortSpec{Field: SortPrice, Dir: DirAsc}},
		{SortPrice, SortSpec{Field: SortPrice, Dir: DirDesc}},
		{SortPrice, SortSpec{}},
		{SortPrice, SortSpec{Field: SortPrice, Dir: DirAsc}},
		{SortTitle, SortSpec{Field: SortTitle, Dir: DirAsc}},
		{SortPrice, SortSpec{Field: SortPrice, Dir: DirAsc}},
	}

	for i, step := range steps {
		s = s.Next(step.click)
		if s != step.want {
			t.Fatalf("step %d: Next(%s) = %+v, want %+v", i, step.click, s, step.want)
		}
	}
}

func TestSortSpec_Indicator(t *testing.T) {
	s := SortSpec{Field: SortTitle, Dir: DirDesc}
	if got := s.Indicator(SortTitle); got != "↓" {
		t.Errorf("Indicator(title) = %q, want ↓", got)
	}
	if got := s.Indicator(SortPrice); got != "↕" {
		t.Errorf("Indicator(price) = %q, want ↕", got)
	}
	if got := (SortSpec{Field: SortPrice, Dir: DirAsc}).Indicator(SortPrice); got != "↑" {
		t.Errorf("Indicator(price asc) = %q, want ↑", got)
	}
}

func TestParseSortField(t *testing.T) {
	tests := []struct {
		in      string
		want    SortField
		wantErr bool
	}{
		{"title", SortTitle, false},
		{" Price ", SortPrice, false},
		{"category", SortNone, true},
		{"", SortNone, true},
	}

	for _, tt := range tests {
		got, err := ParseSortField(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSortField(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseSortField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
