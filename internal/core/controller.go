package core

// controller.go owns the interaction state of one admin table.
//
// The controller is the only thing that mutates a ViewState or its record set.
// Each transition takes the lock, updates state, and returns a fresh View
// computed by the pure Filter/Sort/pagination functions. Network calls are made
// without holding the lock; refreshes are sequenced so a response that arrives
// after a newer refresh started is discarded instead of overwriting newer data.

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 10

// DefaultPageSizes is the page size selector offered when none is configured.
var DefaultPageSizes = []int{5, 10, 20, 50}

// ControllerConfig holds the settings of a Controller.
// Zero values fall back to the package defaults.
type ControllerConfig struct {
	PageSizes       []int         // allowed page sizes
	DefaultPageSize int           // initial size, and fallback for sizes outside PageSizes
	DebounceWindow  time.Duration // quiet window for search input
	Auditor         Auditor       // receives successful create/update calls
	Logger          *slog.Logger
}

// Controller applies user transitions to a ViewState over an in-memory record set.
type Controller struct {
	api      ProductAPI
	auditor  Auditor
	logger   *slog.Logger
	debounce *Debouncer

	pageSizes       []int
	defaultPageSize int

	mu         sync.Mutex
	products   []Product
	state      ViewState
	alert      *Alert
	rendered   []Product // rows of the last computed page, used by Export and Detail
	loaded     bool
	generation uint64
}

// NewController creates a controller with an empty record set.
func NewController(api ProductAPI, cfg ControllerConfig) *Controller {
	sizes := slices.Clone(cfg.PageSizes)
	if len(sizes) == 0 {
		sizes = slices.Clone(DefaultPageSizes)
	}
	def := cfg.DefaultPageSize
	if def <= 0 {
		def = DefaultPageSize
	}
	if !slices.Contains(sizes, def) {
		sizes = append(sizes, def)
		slices.Sort(sizes)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	auditor := cfg.Auditor
	if auditor == nil {
		auditor = NopAuditor{}
	}

	return &Controller{
		api:             api,
		auditor:         auditor,
		logger:          logger,
		debounce:        NewDebouncer(cfg.DebounceWindow),
		pageSizes:       sizes,
		defaultPageSize: def,
		state:           ViewState{Page: 1, PageSize: def},
	}
}

// View recomputes the current view without changing state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderLocked()
}

// State returns a copy of the current view state.
func (c *Controller) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Loaded reports whether at least one refresh has succeeded.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// SortClick applies a click on the sort control of field and returns to page 1.
func (c *Controller) SortClick(field SortField) (View, error) {
	if field != SortTitle && field != SortPrice {
		return c.View(), ErrUnknownSortField
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Sort = c.state.Sort.Next(field)
	c.state.Page = 1
	return c.renderLocked(), nil
}

// SetPageSize changes the page size and returns to page 1.
// Sizes outside the allowed set fall back to the default size.
func (c *Controller) SetPageSize(n int) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !slices.Contains(c.pageSizes, n) {
		n = c.defaultPageSize
	}
	c.state.PageSize = n
	c.state.Page = 1
	return c.renderLocked()
}

// GoToPage moves to page n. Clicking the current page changes nothing.
func (c *Controller) GoToPage(n int) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n != c.state.Page {
		c.state.Page = n
	}
	return c.renderLocked()
}

// Search debounces a search input. Only the last input of a burst applies its
// query and returns to page 1; earlier inputs return ErrSuperseded and change nothing.
func (c *Controller) Search(ctx context.Context, query string) (View, error) {
	done := c.debounce.Schedule(func() {
		c.mu.Lock()
		c.state.Query = query
		c.state.Page = 1
		c.mu.Unlock()
	})

	select {
	case applied := <-done:
		if !applied {
			return View{}, ErrSuperseded
		}
		return c.View(), nil
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

// Refresh replaces the record set with a fresh list from the API and returns to
// page 1. Sort, query and page size are kept. On failure the alert is set and
// the previous records stay in place.
func (c *Controller) Refresh(ctx context.Context) (View, error) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	products, err := c.api.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("discarding stale product list", "generation", gen, "current", c.generation)
		return c.renderLocked(), ErrStaleResponse
	}
	if err != nil {
		c.setAlertLocked(SeverityDanger, "Failed to load products: "+err.Error())
		return c.renderLocked(), err
	}

	c.products = products
	c.loaded = true
	c.state.Page = 1
	c.logger.Debug("product list refreshed", "count", len(products))
	return c.renderLocked(), nil
}

// Create submits a new product built from form and refreshes on success.
func (c *Controller) Create(ctx context.Context, form PayloadForm) (View, error) {
	payload := form.CreatePayload()
	created, err := c.api.Create(ctx, payload)
	if err != nil {
		return c.fail("Create failed: ", err), err
	}

	id := 0
	if created != nil {
		id = created.ID
	}
	c.record(ctx, Mutation{Action: ActionCreate, ProductID: id, Payload: payload})
	return c.succeed(ctx, "Created successfully"), nil
}

// Update submits an edited product and refreshes on success.
func (c *Controller) Update(ctx context.Context, id int, form PayloadForm) (View, error) {
	payload := form.UpdatePayload()
	if _, err := c.api.Update(ctx, id, payload); err != nil {
		return c.fail("Update failed: ", err), err
	}

	c.record(ctx, Mutation{Action: ActionUpdate, ProductID: id, Payload: payload})
	return c.succeed(ctx, "Updated successfully"), nil
}

// Detail looks a product up by id in the loaded records, then in the last
// rendered page. A miss sets a warning and returns *NotFoundError.
func (c *Controller) Detail(id int) (Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, set := range [][]Product{c.products, c.rendered} {
		if i := slices.IndexFunc(set, func(p Product) bool { return p.ID == id }); i >= 0 {
			return set[i], nil
		}
	}

	c.setAlertLocked(SeverityWarning, "Item not found")
	return Product{}, &NotFoundError{ID: id}
}

// Export renders the rows of the last computed page as CSV.
// It returns the download filename along with the document.
func (c *Controller) Export() (string, []byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.rendered) == 0 {
		c.setAlertLocked(SeverityWarning, "No data to export")
		return "", nil, ErrNothingToExport
	}

	data, err := ExportCSV(c.rendered)
	if err != nil {
		return "", nil, err
	}
	return ExportFilename(c.state.Page), data, nil
}

// ClearAlert hides the current alert.
func (c *Controller) ClearAlert() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alert = nil
}

// Close cancels any pending search input.
func (c *Controller) Close() {
	c.debounce.Stop()
}

// fail sets a danger alert for a failed mutation and leaves state untouched.
func (c *Controller) fail(prefix string, err error) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setAlertLocked(SeverityDanger, prefix+err.Error())
	return c.renderLocked()
}

// succeed reports a successful mutation and reloads the record set.
// A failed reload replaces the success alert with the load failure.
func (c *Controller) succeed(ctx context.Context, msg string) View {
	c.mu.Lock()
	c.setAlertLocked(SeveritySuccess, msg)
	c.mu.Unlock()

	view, err := c.Refresh(ctx)
	if err != nil && !errors.Is(err, ErrStaleResponse) {
		c.logger.Warn("refresh after mutation failed", "error", err)
	}
	return view
}

func (c *Controller) record(ctx context.Context, m Mutation) {
	if err := c.auditor.Record(ctx, m); err != nil {
		c.logger.Warn("audit record failed", "action", m.Action, "product_id", m.ProductID, "error", err)
	}
}

func (c *Controller) setAlertLocked(sev Severity, msg string) {
	c.alert = &Alert{Severity: sev, Message: msg}
}

// renderLocked computes the view for the current state, clamps the stored
// page, and remembers the visible rows. Callers hold mu.
func (c *Controller) renderLocked() View {
	v := Compute(c.products, c.state)
	c.state.Page = v.State.Page
	c.rendered = v.Rows
	if c.alert != nil {
		a := *c.alert
		v.Alert = &a
	}
	v.PageSizes = slices.Clone(c.pageSizes)
	return v
}
