package core

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"
)

// fakeAPI is an in-memory ProductAPI.
type fakeAPI struct {
	mu        sync.Mutex
	products  []Product
	listErr   error
	createErr error
	updateErr error
	listCalls int
	created   []Payload
	updated   map[int]Payload

	// gates, when set, block the nth List call until gates[n] receives.
	gates []chan []Product
}

func (f *fakeAPI) List(ctx context.Context) ([]Product, error) {
	f.mu.Lock()
	var gate chan []Product
	if f.listCalls < len(f.gates) {
		gate = f.gates[f.listCalls]
	}
	f.listCalls++
	err := f.listErr
	out := slices.Clone(f.products)
	f.mu.Unlock()

	if gate != nil {
		select {
		case out = <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeAPI) Get(_ context.Context, id int) (*Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, &NetworkError{Op: "get", Status: 404}
}

func (f *fakeAPI) Create(_ context.Context, p Payload) (*Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, p)
	prod := Product{ID: len(f.products) + 1, Title: p.Title, Price: Price(p.Price)}
	f.products = append(f.products, prod)
	return &prod, nil
}

func (f *fakeAPI) Update(_ context.Context, id int, p Payload) (*Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updated == nil {
		f.updated = make(map[int]Payload)
	}
	f.updated[id] = p
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].Title = p.Title
			f.products[i].Price = Price(p.Price)
			return &f.products[i], nil
		}
	}
	return nil, &NetworkError{Op: "update", Status: 404}
}

// recordingAuditor captures mutations.
type recordingAuditor struct {
	mu        sync.Mutex
	mutations []Mutation
}

func (a *recordingAuditor) Record(_ context.Context, m Mutation) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mutations = append(a.mutations, m)
	return nil
}

func newTestController(t *testing.T, api *fakeAPI) *Controller {
	t.Helper()
	c := NewController(api, ControllerConfig{DebounceWindow: 10 * time.Millisecond})
	t.Cleanup(c.Close)
	return c
}

func loadedController(t *testing.T, n int) (*Controller, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{products: numbered(n)}
	c := newTestController(t, api)
	if _, err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	return c, api
}

func TestNewController_InitialState(t *testing.T) {
	c := newTestController(t, &fakeAPI{})

	st := c.State()
	if st.Page != 1 || st.PageSize != DefaultPageSize || st.Query != "" || st.Sort.Active() {
		t.Errorf("initial state = %+v", st)
	}
	if c.Loaded() {
		t.Error("Loaded() = true before any refresh")
	}
	if v := c.View(); len(v.Rows) != 0 || v.PageInfo() != "Showing 0-0 of 0" {
		t.Errorf("initial view = %+v", v)
	}
}

func TestNewController_AddsDefaultSizeToAllowed(t *testing.T) {
	c := NewController(&fakeAPI{}, ControllerConfig{PageSizes: []int{5, 20}, DefaultPageSize: 15})
	defer c.Close()

	if got := c.View().PageSizes; !slices.Equal(got, []int{5, 15, 20}) {
		t.Errorf("PageSizes = %v, want [5 15 20]", got)
	}
}

func TestController_SortClickCycle(t *testing.T) {
	c, _ := loadedController(t, 25)
	c.GoToPage(3)

	v, err := c.SortClick(SortPrice)
	if err != nil {
		t.Fatalf("SortClick() error = %v", err)
	}
	if v.State.Sort != (SortSpec{Field: SortPrice, Dir: DirAsc}) || v.State.Page != 1 {
		t.Errorf("after first click state = %+v", v.State)
	}

	v, _ = c.SortClick(SortPrice)
	if v.State.Sort.Dir != DirDesc {
		t.Errorf("after second click dir = %q, want desc", v.State.Sort.Dir)
	}
	if v.Rows[0].ID != 25 {
		t.Errorf("first row = %d, want 25", v.Rows[0].ID)
	}

	v, _ = c.SortClick(SortPrice)
	if v.State.Sort.Active() {
		t.Errorf("after third click sort = %+v, want unsorted", v.State.Sort)
	}
	if v.Rows[0].ID != 1 {
		t.Errorf("unsorted first row = %d, want 1", v.Rows[0].ID)
	}
}

func TestController_SortClickRejectsUnknownField(t *testing.T) {
	c, _ := loadedController(t, 3)
	before := c.State()

	_, err := c.SortClick(SortField("category"))
	if !errors.Is(err, ErrUnknownSortField) {
		t.Fatalf("SortClick() error = %v, want ErrUnknownSortField", err)
	}
	if c.State() != before {
		t.Errorf("state changed: %+v -> %+v", before, c.State())
	}
}

func TestController_SetPageSize(t *testing.T) {
	c, _ := loadedController(t, 25)
	c.GoToPage(2)

	v := c.SetPageSize(5)
	if v.State.PageSize != 5 || v.State.Page != 1 || v.TotalPages != 5 {
		t.Errorf("after SetPageSize(5) = %+v, totalPages %d", v.State, v.TotalPages)
	}

	v = c.SetPageSize(7)
	if v.State.PageSize != DefaultPageSize {
		t.Errorf("unsupported size kept: %d, want fallback %d", v.State.PageSize, DefaultPageSize)
	}
}

func TestController_GoToPage(t *testing.T) {
	c, _ := loadedController(t, 25)

	v := c.GoToPage(3)
	if v.State.Page != 3 || v.PageInfo() != "Showing 21-25 of 25" {
		t.Errorf("GoToPage(3) = page %d, %q", v.State.Page, v.PageInfo())
	}

	again := c.GoToPage(3)
	if again.State != v.State || !slices.Equal(ids(again.Rows), ids(v.Rows)) {
		t.Error("clicking the current page changed the view")
	}

	if v := c.GoToPage(40); v.State.Page != 3 {
		t.Errorf("GoToPage(40) page = %d, want clamped to 3", v.State.Page)
	}
	if v := c.GoToPage(-1); v.State.Page != 1 {
		t.Errorf("GoToPage(-1) page = %d, want 1", v.State.Page)
	}
}

func TestController_SearchAppliesLastInputOnly(t *testing.T) {
	api := &fakeAPI{products: numbered(25)}
	c := NewController(api, ControllerConfig{DebounceWindow: 200 * time.Millisecond})
	defer c.Close()
	ctx := context.Background()
	if _, err := c.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	c.GoToPage(2)

	inputs := []string{"P", "Pr", "Product 2"}
	errs := make([]error, len(inputs))
	views := make([]View, len(inputs))

	var wg sync.WaitGroup
	var prev chan bool
	for i, q := range inputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			views[i], errs[i] = c.Search(ctx, q)
		}()
		// Each input must be scheduled before the next one is typed.
		waitFor(t, func() bool {
			cur := pendingTask(c.debounce)
			return cur != nil && cur != prev
		})
		prev = pendingTask(c.debounce)
	}
	wg.Wait()

	applied := 0
	for i, err := range errs {
		switch {
		case err == nil:
			applied++
			if inputs[i] != "Product 2" {
				t.Errorf("input %q applied, want only the last", inputs[i])
			}
			if views[i].State.Page != 1 {
				t.Errorf("page after search = %d, want 1", views[i].State.Page)
			}
		case errors.Is(err, ErrSuperseded):
		default:
			t.Errorf("Search(%q) error = %v", inputs[i], err)
		}
	}
	if applied != 1 {
		t.Errorf("%d inputs applied, want 1", applied)
	}

	if st := c.State(); st.Query != "Product 2" {
		t.Errorf("query = %q, want %q", st.Query, "Product 2")
	}
	// "Product 2" and "Product 20".."Product 25".
	if v := c.View(); v.Total != 7 {
		t.Errorf("filtered total = %d, want 7", v.Total)
	}
}

func pendingTask(d *Debouncer) chan bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func TestController_SearchWhitespaceShowsAll(t *testing.T) {
	c, _ := loadedController(t, 12)

	v, err := c.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if v.Total != 12 {
		t.Errorf("total = %d, want 12", v.Total)
	}
}

func TestController_SearchCancelledContext(t *testing.T) {
	api := &fakeAPI{}
	c := NewController(api, ControllerConfig{DebounceWindow: time.Hour})
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Search(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("Search() error = %v, want context.Canceled", err)
	}
}

func TestController_RefreshKeepsViewSettings(t *testing.T) {
	c, api := loadedController(t, 25)
	c.SortClick(SortTitle)
	c.SetPageSize(5)
	c.Search(context.Background(), "Product")
	c.GoToPage(3)

	api.mu.Lock()
	api.products = numbered(30)
	api.mu.Unlock()

	v, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if v.State.Page != 1 {
		t.Errorf("page = %d, want 1", v.State.Page)
	}
	if v.State.PageSize != 5 || v.State.Query != "Product" || v.State.Sort.Field != SortTitle {
		t.Errorf("settings lost: %+v", v.State)
	}
	if v.Total != 30 {
		t.Errorf("total = %d, want 30", v.Total)
	}
}

func TestController_RefreshFailureKeepsRecords(t *testing.T) {
	c, api := loadedController(t, 4)

	api.mu.Lock()
	api.listErr = &NetworkError{Op: "list", Status: 500}
	api.mu.Unlock()

	v, err := c.Refresh(context.Background())
	if err == nil {
		t.Fatal("Refresh() expected error")
	}
	if v.Total != 4 {
		t.Errorf("total = %d, want previous 4", v.Total)
	}
	if v.Alert == nil || v.Alert.Severity != SeverityDanger || v.Alert.Message != "Failed to load products: HTTP 500" {
		t.Errorf("alert = %+v", v.Alert)
	}
}

func TestController_RefreshDiscardsStaleResponse(t *testing.T) {
	api := &fakeAPI{gates: []chan []Product{make(chan []Product), make(chan []Product)}}
	c := newTestController(t, api)
	ctx := context.Background()

	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Refresh(ctx)
		firstErr <- err
	}()

	// Wait until the first refresh is blocked in List.
	waitFor(t, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return api.listCalls == 1
	})

	secondErr := make(chan error, 1)
	go func() {
		_, err := c.Refresh(ctx)
		secondErr <- err
	}()
	waitFor(t, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return api.listCalls == 2
	})

	// The newer request answers first, then the older one.
	api.gates[1] <- numbered(2)
	if err := <-secondErr; err != nil {
		t.Fatalf("second Refresh() error = %v", err)
	}
	api.gates[0] <- numbered(9)
	if err := <-firstErr; !errors.Is(err, ErrStaleResponse) {
		t.Fatalf("first Refresh() error = %v, want ErrStaleResponse", err)
	}

	if v := c.View(); v.Total != 2 {
		t.Errorf("total = %d, want 2 from the newer response", v.Total)
	}
}

func TestController_CreateSuccess(t *testing.T) {
	c, api := loadedController(t, 2)
	auditor := &recordingAuditor{}
	c.auditor = auditor

	v, err := c.Create(context.Background(), PayloadForm{Title: "New", Price: "abc", Images: "a, b"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if v.Alert == nil || v.Alert.Severity != SeveritySuccess || v.Alert.Message != "Created successfully" {
		t.Errorf("alert = %+v", v.Alert)
	}
	if v.Total != 3 {
		t.Errorf("total after refresh = %d, want 3", v.Total)
	}

	got := api.created[0]
	if got.Price != 0 || got.CategoryID != DefaultCategoryID || !slices.Equal(got.Images, []string{"a", "b"}) {
		t.Errorf("payload = %+v", got)
	}
	if len(auditor.mutations) != 1 || auditor.mutations[0].Action != ActionCreate || auditor.mutations[0].ProductID != 3 {
		t.Errorf("audit = %+v", auditor.mutations)
	}
}

func TestController_CreateFailure(t *testing.T) {
	c, api := loadedController(t, 2)
	api.createErr = &NetworkError{Op: "create", Status: 400}
	calls := api.listCalls

	v, err := c.Create(context.Background(), PayloadForm{Title: "New"})
	if err == nil {
		t.Fatal("Create() expected error")
	}
	if v.Alert == nil || v.Alert.Message != "Create failed: HTTP 400" {
		t.Errorf("alert = %+v", v.Alert)
	}
	if api.listCalls != calls {
		t.Error("failed create should not refresh")
	}
}

func TestController_UpdateSuccessAndFailure(t *testing.T) {
	c, api := loadedController(t, 3)

	v, err := c.Update(context.Background(), 2, PayloadForm{Title: "Renamed", Price: "9", CategoryID: "x"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if v.Alert == nil || v.Alert.Message != "Updated successfully" {
		t.Errorf("alert = %+v", v.Alert)
	}
	if api.updated[2].CategoryID != 0 {
		t.Errorf("update payload category = %d, want omitted", api.updated[2].CategoryID)
	}
	p, err := c.Detail(2)
	if err != nil || p.Title != "Renamed" {
		t.Errorf("Detail(2) = %+v, %v", p, err)
	}

	api.updateErr = &NetworkError{Op: "update", Status: 404}
	v, err = c.Update(context.Background(), 2, PayloadForm{Title: "Again"})
	if err == nil {
		t.Fatal("Update() expected error")
	}
	if v.Alert == nil || v.Alert.Severity != SeverityDanger || v.Alert.Message != "Update failed: HTTP 404" {
		t.Errorf("alert = %+v", v.Alert)
	}
}

func TestController_DetailNotFound(t *testing.T) {
	c, _ := loadedController(t, 3)

	_, err := c.Detail(99)
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != 99 {
		t.Fatalf("Detail(99) error = %v, want NotFoundError", err)
	}
	if v := c.View(); v.Alert == nil || v.Alert.Severity != SeverityWarning || v.Alert.Message != "Item not found" {
		t.Errorf("alert = %+v", v.Alert)
	}

	c.ClearAlert()
	if c.View().Alert != nil {
		t.Error("ClearAlert() left the alert")
	}
}

func TestController_ExportCurrentPage(t *testing.T) {
	c, _ := loadedController(t, 25)
	c.GoToPage(3)

	name, data, err := c.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if name != "products_page_3.csv" {
		t.Errorf("filename = %q", name)
	}
	want, _ := ExportCSV(numbered(25)[20:])
	if string(data) != string(want) {
		t.Errorf("export =\n%s\nwant\n%s", data, want)
	}
}

func TestController_ExportEmpty(t *testing.T) {
	c := newTestController(t, &fakeAPI{})
	c.View()

	_, _, err := c.Export()
	if !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("Export() error = %v, want ErrNothingToExport", err)
	}
	if v := c.View(); v.Alert == nil || v.Alert.Message != "No data to export" {
		t.Errorf("alert = %+v", v.Alert)
	}
}

func TestController_ViewIsIdempotent(t *testing.T) {
	c, _ := loadedController(t, 25)
	c.SortClick(SortTitle)
	c.GoToPage(2)

	a, b := c.View(), c.View()
	if a.State != b.State || !slices.Equal(ids(a.Rows), ids(b.Rows)) || a.PageInfo() != b.PageInfo() {
		t.Error("View() is not idempotent")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(time.Millisecond)
	}
}
