package core

import (
	"cmp"
	"slices"
	"strings"
)

// Sort returns a copy of products ordered by spec. The input is never modified.
// Titles compare case-insensitively, prices numerically, and equal keys keep
// their input order in both directions. An inactive spec returns a plain copy.
func Sort(products []Product, spec SortSpec) []Product {
	out := slices.Clone(products)
	if !spec.Active() {
		return out
	}

	compare := compareFunc(spec.Field)
	if compare == nil {
		return out
	}
	if spec.Dir == DirDesc {
		asc := compare
		compare = func(a, b Product) int { return asc(b, a) }
	}

	slices.SortStableFunc(out, compare)
	return out
}

func compareFunc(field SortField) func(a, b Product) int {
	switch field {
	case SortTitle:
		return func(a, b Product) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	case SortPrice:
		return func(a, b Product) int {
			return cmp.Compare(float64(a.Price), float64(b.Price))
		}
	default:
		return nil
	}
}
