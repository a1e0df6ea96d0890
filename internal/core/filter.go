package core

import "strings"

// Filter returns the products whose title contains query, ignoring case and
// surrounding whitespace in the query. A blank query returns products unchanged.
// Matches keep their original relative order.
func Filter(products []Product, query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}

	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), q) {
			matched = append(matched, p)
		}
	}
	return matched
}
