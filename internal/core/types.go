// Package core provides the business logic for the product catalog admin table.
// This package has no UI dependencies and can be used by any frontend.
package core

import (
	"context"
	"fmt"
	"strings"
)

// Product is one catalog record as returned by the remote API.
// ID is stable and is the only key used for detail lookups and edits.
type Product struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Price       Price     `json:"price"`
	Description string    `json:"description,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Images      []string  `json:"images"`
}

// Category is the inline category object embedded in a product.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CategoryName returns the category display name, or "" when absent.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// CategoryID returns the category id, or 0 when absent.
func (p Product) CategoryID() int {
	if p.Category == nil {
		return 0
	}
	return p.Category.ID
}

// SortField selects the column a view is ordered by.
type SortField string

const (
	SortNone  SortField = ""
	SortTitle SortField = "title"
	SortPrice SortField = "price"
)

// ParseSortField converts a column name to a SortField.
func ParseSortField(s string) (SortField, error) {
	switch SortField(strings.ToLower(strings.TrimSpace(s))) {
	case SortTitle:
		return SortTitle, nil
	case SortPrice:
		return SortPrice, nil
	default:
		return SortNone, fmt.Errorf("%w: %q", ErrUnknownSortField, s)
	}
}

// SortDir is the direction of a sort.
type SortDir string

const (
	DirNone SortDir = ""
	DirAsc  SortDir = "asc"
	DirDesc SortDir = "desc"
)

// SortSpec pairs a field with a direction.
// Both are set or both are empty; the zero value means "unsorted".
type SortSpec struct {
	Field SortField `json:"field"`
	Dir   SortDir   `json:"dir"`
}

// Active reports whether the spec orders anything.
func (s SortSpec) Active() bool {
	return s.Field != SortNone && s.Dir != DirNone
}

// Next returns the spec produced by clicking the sort control of field.
// Clicking the same field cycles asc -> desc -> unsorted; any other field starts at asc.
func (s SortSpec) Next(field SortField) SortSpec {
	if s.Field != field {
		return SortSpec{Field: field, Dir: DirAsc}
	}
	if s.Dir == DirAsc {
		return SortSpec{Field: field, Dir: DirDesc}
	}
	return SortSpec{}
}

// Indicator returns the arrow shown on the sort control of field.
func (s SortSpec) Indicator(field SortField) string {
	if s.Field != field {
		return "↕"
	}
	switch s.Dir {
	case DirAsc:
		return "↑"
	case DirDesc:
		return "↓"
	default:
		return "↕"
	}
}

// ViewState is everything that decides which rows are visible.
type ViewState struct {
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
	Sort     SortSpec `json:"sort"`
	Query    string   `json:"query"`
}

// Severity is the level of an alert.
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

// Alert is the single transient message shown above the table.
type Alert struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// PageLink is one control in the pagination bar.
type PageLink struct {
	Label    string `json:"label"`
	Page     int    `json:"page"`
	Disabled bool   `json:"disabled,omitempty"`
	Active   bool   `json:"active,omitempty"`
}

// PageLinks is the full pagination bar: Prev, a window of numbered pages, Next.
type PageLinks struct {
	Prev  PageLink   `json:"prev"`
	Pages []PageLink `json:"pages"`
	Next  PageLink   `json:"next"`
}

// View is a render snapshot of the table for one ViewState and record set.
type View struct {
	State      ViewState `json:"state"`
	Rows       []Product `json:"rows"`
	Total      int       `json:"total"`
	TotalPages int       `json:"totalPages"`
	From       int       `json:"from"`
	To         int       `json:"to"`
	Links      PageLinks `json:"links"`
	Alert      *Alert    `json:"alert,omitempty"`
	PageSizes  []int     `json:"pageSizes"`
}

// PageInfo returns the "Showing a-b of n" summary.
func (v View) PageInfo() string {
	return fmt.Sprintf("Showing %d-%d of %d", v.From, v.To, v.Total)
}

// ProductAPI is the remote product service.
// Implementations return *NetworkError for transport failures and non-2xx responses.
type ProductAPI interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int) (*Product, error)
	Create(ctx context.Context, p Payload) (*Product, error)
	Update(ctx context.Context, id int, p Payload) (*Product, error)
}
