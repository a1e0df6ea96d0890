package core

import "strconv"

// MaxPageLinks is the number of numbered page links shown at once.
const MaxPageLinks = 7

// TotalPages returns max(1, ceil(total/pageSize)).
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// PageSlice returns the items of page (1-based), truncated at the end of items.
// Pages past the end are empty.
func PageSlice[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 || page < 1 {
		return items[:0:0]
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return items[:0:0]
	}
	end := min(start+pageSize, len(items))
	return items[start:end:end]
}

// PageWindow builds the pagination bar for current out of totalPages.
// The numbered window holds at most MaxPageLinks pages, centred on current and
// shifted left when it would run past the last page.
func PageWindow(current, totalPages int) PageLinks {
	totalPages = max(totalPages, 1)
	current = ClampPage(current, totalPages)

	start := max(1, current-MaxPageLinks/2)
	end := start + MaxPageLinks - 1
	if end > totalPages {
		end = totalPages
		start = max(1, end-MaxPageLinks+1)
	}

	links := PageLinks{
		Prev:  PageLink{Label: "Prev", Page: max(1, current-1), Disabled: current == 1},
		Pages: make([]PageLink, 0, end-start+1),
		Next:  PageLink{Label: "Next", Page: min(totalPages, current+1), Disabled: current == totalPages},
	}
	for i := start; i <= end; i++ {
		links.Pages = append(links.Pages, PageLink{
			Label:  strconv.Itoa(i),
			Page:   i,
			Active: i == current,
		})
	}
	return links
}

// Compute runs Filter, Sort and pagination over products for state.
// The returned view carries the clamped page in its state.
func Compute(products []Product, state ViewState) View {
	working := Sort(Filter(products, state.Query), state.Sort)

	total := len(working)
	totalPages := TotalPages(total, state.PageSize)
	state.Page = ClampPage(state.Page, totalPages)
	rows := PageSlice(working, state.Page, state.PageSize)

	from, to := 0, 0
	if total > 0 {
		from = (state.Page-1)*state.PageSize + 1
		to = min(total, from-1+len(rows))
	}

	return View{
		State:      state,
		Rows:       rows,
		Total:      total,
		TotalPages: totalPages,
		From:       from,
		To:         to,
		Links:      PageWindow(state.Page, totalPages),
	}
}
