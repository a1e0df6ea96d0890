package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JonMunkholm/catalog-admin/internal/core"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/v1/products/", time.Second)
}

func TestClient_List(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/v1/products" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `[
			{"id":1,"title":"Shirt","price":10,"category":{"id":1,"name":"Clothes"},"images":["a"]},
			{"id":2,"title":"Mug","price":"4.5","category":null,"images":[]}
		]`)
	})

	products, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("List() returned %d products, want 2", len(products))
	}
	if products[0].CategoryName() != "Clothes" {
		t.Errorf("category = %q", products[0].CategoryName())
	}
	if products[1].Price != 4.5 {
		t.Errorf("lenient price = %v, want 4.5", products[1].Price)
	}
}

func TestClient_ListEmptyIsNotNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `null`)
	})

	products, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Errorf("List() = %#v, want empty slice", products)
	}
}

func TestClient_ListSharesConcurrentCalls(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		io.WriteString(w, `[{"id":1,"title":"A","price":1}]`)
	})

	var wg sync.WaitGroup
	results := make([][]core.Product, 3)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = c.List(context.Background())
		}()
	}
	// Let every caller join the in-flight request before it completes.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if hits.Load() != 1 {
		t.Errorf("upstream hits = %d, want 1", hits.Load())
	}
	results[0][0].Title = "changed"
	if results[1][0].Title != "A" {
		t.Error("callers share the same backing slice")
	}
}

// waitHits polls until the upstream has seen n requests.
func waitHits(t *testing.T, hits *atomic.Int32, n int32) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hits.Load() < n {
		if time.Now().After(deadline) {
			t.Fatalf("upstream hits = %d, want %d", hits.Load(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestClient_ListSurvivesFirstCallerCancel(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		io.WriteString(w, `[{"id":1,"title":"A","price":1}]`)
	})

	ctxA, cancelA := context.WithCancel(context.Background())
	doneA := make(chan struct{})
	go func() {
		defer close(doneA)
		c.List(ctxA)
	}()
	waitHits(t, &hits, 1)

	type result struct {
		products []core.Product
		err      error
	}
	doneB := make(chan result, 1)
	go func() {
		products, err := c.List(context.Background())
		doneB <- result{products, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelA()
	time.Sleep(20 * time.Millisecond)
	close(release)

	got := <-doneB
	<-doneA
	if got.err != nil {
		t.Fatalf("List() for the remaining caller error = %v", got.err)
	}
	if len(got.products) != 1 {
		t.Errorf("List() returned %d products, want 1", len(got.products))
	}
}

func TestClient_ListAfterCreateIsFresh(t *testing.T) {
	var (
		gets    atomic.Int32
		mu      sync.Mutex
		titles  = []string{"A"}
		release = make(chan struct{})
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			mu.Lock()
			titles = append(titles, "B")
			mu.Unlock()
			io.WriteString(w, `{"id":2,"title":"B","price":2}`)
			return
		}

		mu.Lock()
		snapshot := append([]string(nil), titles...)
		mu.Unlock()
		if gets.Add(1) == 1 {
			<-release
		}
		list := make([]map[string]any, len(snapshot))
		for i, title := range snapshot {
			list[i] = map[string]any{"id": i + 1, "title": title, "price": i + 1}
		}
		json.NewEncoder(w).Encode(list)
	})

	staleDone := make(chan struct{})
	go func() {
		defer close(staleDone)
		c.List(context.Background())
	}()
	waitHits(t, &gets, 1)

	if _, err := c.Create(context.Background(), core.Payload{Title: "B", Price: 2}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	products, err := c.List(context.Background())
	close(release)
	<-staleDone
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(products) != 2 {
		t.Errorf("List() after create returned %d products, want 2", len(products))
	}
	if gets.Load() != 2 {
		t.Errorf("upstream GETs = %d, want 2", gets.Load())
	}
}

func TestClient_CreateSendsPayload(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":42,"title":"Hat","price":12}`)
	})

	p, err := c.Create(context.Background(), core.Payload{Title: "Hat", Price: 12, CategoryID: 1, Images: []string{}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.ID != 42 {
		t.Errorf("created id = %d, want 42", p.ID)
	}
	if got["title"] != "Hat" || got["categoryId"] != float64(1) {
		t.Errorf("request body = %v", got)
	}
}

func TestClient_UpdateTargetsProduct(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/v1/products/7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{"id":7,"title":"New","price":3}`)
	})

	p, err := c.Update(context.Background(), 7, core.Payload{Title: "New", Price: 3})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if p.Title != "New" {
		t.Errorf("title = %q", p.Title)
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"bad"}`, http.StatusBadRequest)
	})

	_, err := c.Get(context.Background(), 1)
	var ne *core.NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("Get() error = %v, want *core.NetworkError", err)
	}
	if ne.Status != http.StatusBadRequest || ne.Op != "get" {
		t.Errorf("NetworkError = %+v", ne)
	}
	if err.Error() != "HTTP 400" {
		t.Errorf("Error() = %q, want %q", err.Error(), "HTTP 400")
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, time.Second)
	_, err := c.List(context.Background())
	var ne *core.NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("List() error = %v, want *core.NetworkError", err)
	}
	if ne.Status != 0 {
		t.Errorf("Status = %d, want 0 for transport failure", ne.Status)
	}
}

func TestClient_BadJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{not json`)
	})

	if _, err := c.Get(context.Background(), 1); err == nil {
		t.Fatal("Get() expected decode error")
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New("https://example.com/products/", 0)
	if c.BaseURL() != "https://example.com/products" {
		t.Errorf("BaseURL() = %q", c.BaseURL())
	}
}
