// Package catalog is the HTTP client for the remote product API.
//
// The API exposes a product collection at a single base URL:
//
//	GET  {base}        list all products
//	GET  {base}/{id}   one product
//	POST {base}        create, JSON body {title, price, description, categoryId, images}
//	PUT  {base}/{id}   update, same body
//
// Every non-2xx response is returned as a *core.NetworkError carrying the
// status code. Nothing is retried.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"golang.org/x/sync/singleflight"
)

// DefaultTimeout bounds a single API call when the caller's context has no deadline.
const DefaultTimeout = 15 * time.Second

// maxErrorBody caps how much of an error response is kept for logging.
const maxErrorBody = 512

// Client talks to the product API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	// lists collapses concurrent list calls into one upstream request.
	lists singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the product collection at baseURL.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the product collection URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// listKey is the singleflight key shared by all List calls.
const listKey = "list"

// List returns every product. Concurrent calls share one upstream request.
//
// The shared request is detached from the cancellation of whichever caller
// started it and bounded by the client timeout instead, so one caller going
// away does not fail the others.
func (c *Client) List(ctx context.Context) ([]core.Product, error) {
	v, err, shared := c.lists.Do(listKey, func() (any, error) {
		flightCtx, cancel := c.detached(ctx)
		defer cancel()

		var products []core.Product
		if err := c.do(flightCtx, "list", http.MethodGet, c.baseURL, nil, &products); err != nil {
			return nil, err
		}
		if products == nil {
			products = []core.Product{}
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("product list shared with concurrent caller")
	}
	// Callers own their slice; the shared result must not be aliased.
	products := v.([]core.Product)
	out := make([]core.Product, len(products))
	copy(out, products)
	return out, nil
}

func (c *Client) detached(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if c.httpClient.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.httpClient.Timeout)
}

// Get returns the product with id.
func (c *Client) Get(ctx context.Context, id int) (*core.Product, error) {
	var p core.Product
	if err := c.do(ctx, "get", http.MethodGet, c.productURL(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create posts a new product and returns the created record.
func (c *Client) Create(ctx context.Context, payload core.Payload) (*core.Product, error) {
	var p core.Product
	if err := c.do(ctx, "create", http.MethodPost, c.baseURL, payload, &p); err != nil {
		return nil, err
	}
	c.lists.Forget(listKey)
	return &p, nil
}

// Update replaces the editable fields of product id and returns the updated record.
func (c *Client) Update(ctx context.Context, id int, payload core.Payload) (*core.Product, error) {
	var p core.Product
	if err := c.do(ctx, "update", http.MethodPut, c.productURL(id), payload, &p); err != nil {
		return nil, err
	}
	// A list already in flight may predate this change.
	c.lists.Forget(listKey)
	return &p, nil
}

func (c *Client) productURL(id int) string {
	return c.baseURL + "/" + strconv.Itoa(id)
}

// do performs one JSON request. body is marshalled when non-nil and the
// response is decoded into out on a 2xx status.
func (c *Client) do(ctx context.Context, op, method, url string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", op, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return &core.NetworkError{Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("product api request failed", "op", op, "method", method, "url", url, "error", err)
		return &core.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("product api response",
		"op", op,
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Debug("product api error body", "op", op, "body", string(snippet))
		return &core.NetworkError{Op: op, Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &core.NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

var _ core.ProductAPI = (*Client)(nil)
