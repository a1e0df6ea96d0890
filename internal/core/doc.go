// Package core provides the business logic for the product catalog admin table.
//
// This package is independent of any UI or transport layer. It can be used by
// web handlers, the CLI, or tests without modification.
//
// # Architecture
//
// The view pipeline is a chain of pure functions over an in-memory record set:
//
//   - [Filter]: case-insensitive title search.
//   - [Sort]: stable ordering by title or price, ascending or descending.
//   - [TotalPages], [ClampPage], [PageSlice], [PageWindow]: pagination.
//   - [Compute]: runs the whole chain for a [ViewState] and returns a [View].
//
// A [Controller] owns one ViewState and record set and is the only thing that
// mutates them. Browser events map onto its transitions:
//
//	view, err := ctrl.SortClick(core.SortPrice)   // (none) -> asc -> desc -> (none)
//	view = ctrl.SetPageSize(20)                   // back to page 1
//	view = ctrl.GoToPage(3)
//	view, err = ctrl.Search(ctx, "phone")         // debounced, may return ErrSuperseded
//	view, err = ctrl.Refresh(ctx)                 // reload from the ProductAPI
//
// Remote calls go through the [ProductAPI] interface; the concrete HTTP client
// lives in the catalog package.
//
// # Error Handling
//
// Remote failures are [*NetworkError] values carrying the HTTP status. Lookups
// of ids that are not loaded return [*NotFoundError]. Both are surfaced through
// the controller's single alert slot and never change the loaded records.
// [MapError] converts any of them into a [UserMessage] with a support code.
//
// # Input Normalization
//
// Form input is never rejected. [PayloadForm] turns non-numeric prices into 0,
// blank categories into [DefaultCategoryID] on create, and drops blank image URLs.
package core
