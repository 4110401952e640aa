// Package carts fetches order records from the public demo API.
package carts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"

	"github.com/fairyhunter13/sales-dashboard-service/internal/cache"
	"github.com/fairyhunter13/sales-dashboard-service/internal/model"
	"github.com/fairyhunter13/sales-dashboard-service/internal/obs"
)

const (
	// DefaultBaseURL is the public demo API.
	DefaultBaseURL = "https://dummyjson.com"
	// DefaultLimit is used when FetchCarts is called with a non-positive limit.
	DefaultLimit = 20
)

// BreakerSettings configures the upstream circuit breaker.
type BreakerSettings struct {
	// MaxFailures consecutive failures open the breaker.
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// Stats are counters exposed on the metrics endpoint.
type Stats struct {
	Fetches      uint64 `json:"carts_fetches"`
	Failures     uint64 `json:"carts_failures"`
	CacheHits    uint64 `json:"carts_cache_hits"`
	BreakerState string `json:"carts_breaker_state"`
}

// Client reads carts from the demo API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	cache      cache.CartCache
	breaker    *gobreaker.CircuitBreaker[[]model.Cart]
	sfg        singleflight.Group

	fetches   atomic.Uint64
	failures  atomic.Uint64
	cacheHits atomic.Uint64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. The client is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each upstream fetch, including cache access.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithCache enables the cart snapshot cache.
func WithCache(cc cache.CartCache) Option {
	return func(c *Client) { c.cache = cc }
}

// WithBreaker configures the circuit breaker.
func WithBreaker(s BreakerSettings) Option {
	return func(c *Client) { c.breaker = newBreaker(s) }
}

// New returns a Client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		timeout: 5 * time.Second,
		cache:   cache.Noop{},
		breaker: newBreaker(BreakerSettings{MaxFailures: 5, OpenTimeout: 30 * time.Second}),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func newBreaker(s BreakerSettings) *gobreaker.CircuitBreaker[[]model.Cart] {
	maxFailures := s.MaxFailures
	if maxFailures == 0 {
		maxFailures = 1
	}
	return gobreaker.NewCircuitBreaker[[]model.Cart](gobreaker.Settings{
		Name:        "carts",
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			obs.Logger.Warn("breaker_state_change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// FetchCarts returns up to limit carts. Concurrent calls with the same limit
// share one upstream request, and the returned slice must not be modified.
//
// The shared request is detached from any single caller's cancellation and
// bounded by the client timeout instead; each caller still returns as soon
// as its own ctx is done.
func (c *Client) FetchCarts(ctx context.Context, limit int) ([]model.Cart, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	ch := c.sfg.DoChan(strconv.Itoa(limit), func() (any, error) {
		sctx, cancel := c.sharedContext(ctx)
		defer cancel()
		return c.load(sctx, limit)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]model.Cart), nil
	}
}

func (c *Client) sharedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if c.timeout > 0 {
		return context.WithTimeout(detached, c.timeout)
	}
	return context.WithCancel(detached)
}

func (c *Client) load(ctx context.Context, limit int) ([]model.Cart, error) {
	carts, err := c.cache.Get(ctx, limit)
	if err == nil {
		c.cacheHits.Add(1)
		return carts, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		obs.Logger.Warn("carts_cache_get_failed", "limit", limit, "error", err)
	}

	carts, err = c.breaker.Execute(func() ([]model.Cart, error) {
		return c.fetch(ctx, limit)
	})
	if err != nil {
		c.failures.Add(1)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
		obs.Logger.Error("carts_fetch_failed", "limit", limit, "error", err)
		return nil, err
	}

	if err := c.cache.Set(ctx, limit, carts); err != nil {
		obs.Logger.Warn("carts_cache_set_failed", "limit", limit, "error", err)
	}
	return carts, nil
}

func (c *Client) fetch(ctx context.Context, limit int) ([]model.Cart, error) {
	c.fetches.Add(1)
	const op = "GET /carts"

	endpoint, err := url.JoinPath(c.baseURL, "carts")
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?limit="+strconv.Itoa(limit), nil)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &NetworkError{Op: op, StatusCode: resp.StatusCode}
	}

	var page model.CartsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, &NetworkError{Op: "decode carts", Err: err}
	}
	if page.Carts == nil {
		page.Carts = []model.Cart{}
	}
	obs.Logger.Debug("carts_fetched", "limit", limit, "count", len(page.Carts), "upstream_total", page.Total)
	return page.Carts, nil
}

// Stats returns a snapshot of the client counters.
func (c *Client) Stats() Stats {
	return Stats{
		Fetches:      c.fetches.Load(),
		Failures:     c.failures.Load(),
		CacheHits:    c.cacheHits.Load(),
		BreakerState: c.breaker.State().String(),
	}
}
