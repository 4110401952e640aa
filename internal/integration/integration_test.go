package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/sales-dashboard-service/internal/cache"
	"github.com/fairyhunter13/sales-dashboard-service/internal/carts"
	"github.com/fairyhunter13/sales-dashboard-service/internal/catalog"
	"github.com/fairyhunter13/sales-dashboard-service/internal/config"
	"github.com/fairyhunter13/sales-dashboard-service/internal/dashboard"
	httpapi "github.com/fairyhunter13/sales-dashboard-service/internal/http"
	"github.com/fairyhunter13/sales-dashboard-service/internal/model"
	"github.com/fairyhunter13/sales-dashboard-service/internal/sales"
)

const upstreamBody = `{"carts":[
  {"id":1,"products":[],"total":10.10,"discountedTotal":9,"userId":1,"totalProducts":1,"totalQuantity":1},
  {"id":2,"products":[],"total":20.20,"discountedTotal":18,"userId":2,"totalProducts":1,"totalQuantity":2},
  {"id":3,"products":[],"total":30.30,"discountedTotal":27,"userId":3,"totalProducts":1,"totalQuantity":3}
],"total":3,"skip":0,"limit":3}`

type stack struct {
	handler http.Handler
	client  *carts.Client
	hits    *atomic.Int64
	status  *atomic.Int64
	mr      *miniredis.Miniredis
}

func newStack(t *testing.T) *stack {
	t.Helper()
	var hits, status atomic.Int64
	status.Store(http.StatusOK)
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/carts" || r.URL.Query().Get("limit") != "3" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(int(status.Load()))
		_, _ = w.Write([]byte(upstreamBody))
	}))
	t.Cleanup(up.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := config.Config{CartsBaseURL: up.URL, CartsLimit: 3, CartsCacheTTL: time.Minute}
	client := carts.New(cfg.CartsBaseURL,
		carts.WithTimeout(2*time.Second),
		carts.WithCache(cache.NewRedisCache(rdb, cfg.CartsCacheTTL)),
		carts.WithBreaker(carts.BreakerSettings{MaxFailures: 2, OpenTimeout: time.Minute}),
	)
	now := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	cat := catalog.New(catalog.WithClock(func() time.Time { return now }))
	cat.Seed(catalog.DefaultSeed)
	f, err := sales.NewFormatter("en-US", "USD")
	if err != nil {
		t.Fatalf("formatter: %v", err)
	}
	dash := dashboard.New(client, cfg.CartsLimit, f, func() time.Time { return now })
	app := httpapi.NewApp(cfg, cat, dash, client)
	return &stack{handler: httpapi.NewRouter(app), client: client, hits: &hits, status: &status, mr: mr}
}

func (s *stack) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestIntegration_DashboardFromUpstream(t *testing.T) {
	s := newStack(t)
	rr := s.get(t, "/api/dashboard")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}
	var ov model.Overview
	if err := json.Unmarshal(rr.Body.Bytes(), &ov); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ov.KPIs.Orders != 3 || !ov.KPIs.Revenue.Equal(decimal.RequireFromString("60.6")) {
		t.Fatalf("unexpected kpis: %+v", ov.KPIs)
	}
	want := []string{"2024-12-31", "2025-01-01", "2025-01-02"}
	if len(ov.Sales) != len(want) {
		t.Fatalf("unexpected sales: %+v", ov.Sales)
	}
	sum := decimal.Zero
	for i, p := range ov.Sales {
		if p.Label != want[i] {
			t.Fatalf("label %d: want %s, got %s", i, want[i], p.Label)
		}
		sum = sum.Add(p.Total)
	}
	if !sum.Equal(ov.KPIs.Revenue) {
		t.Fatalf("sales sum %s != revenue %s", sum, ov.KPIs.Revenue)
	}
}

func TestIntegration_CacheServesRepeatRequests(t *testing.T) {
	s := newStack(t)
	for i := 0; i < 3; i++ {
		if rr := s.get(t, "/api/dashboard/kpis"); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rr.Code)
		}
	}
	if got := s.hits.Load(); got != 1 {
		t.Fatalf("expected one upstream hit, got %d", got)
	}
	st := s.client.Stats()
	if st.CacheHits != 2 {
		t.Fatalf("expected 2 cache hits, got %+v", st)
	}

	s.mr.FastForward(2 * time.Minute)
	if rr := s.get(t, "/api/dashboard/sales"); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := s.hits.Load(); got != 2 {
		t.Fatalf("expected refetch after ttl, got %d hits", got)
	}
}

func TestIntegration_UpstreamFailureThenBreaker(t *testing.T) {
	s := newStack(t)
	s.status.Store(http.StatusInternalServerError)
	for i := 0; i < 2; i++ {
		if rr := s.get(t, "/api/dashboard"); rr.Code != http.StatusBadGateway {
			t.Fatalf("request %d: expected 502, got %d", i, rr.Code)
		}
	}
	rr := s.get(t, "/api/dashboard")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 once breaker opens, got %d", rr.Code)
	}
	if got := s.hits.Load(); got != 2 {
		t.Fatalf("open breaker should not reach upstream, got %d hits", got)
	}

	mr := s.get(t, "/debug/metrics")
	var m map[string]any
	if err := json.Unmarshal(mr.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if m["carts_breaker_state"] != "open" {
		t.Fatalf("unexpected breaker state: %v", m["carts_breaker_state"])
	}
}

func TestIntegration_ProductLifecycle(t *testing.T) {
	s := newStack(t)
	send := func(method, path, ct, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if ct != "" {
			req.Header.Set("Content-Type", ct)
		}
		rr := httptest.NewRecorder()
		s.handler.ServeHTTP(rr, req)
		return rr
	}

	rr := send(http.MethodPost, "/api/products", "application/json", `{"name":"Widget","price":"9.99","stock":5}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", rr.Code, rr.Body.String())
	}
	var created model.Product
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID != 3 {
		t.Fatalf("expected id 3 after two seeds, got %d", created.ID)
	}

	if rr := send(http.MethodPatch, "/api/products/3", "application/json", `{"name":"Widget Pro"}`); rr.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", rr.Code)
	}
	if rr := send(http.MethodDelete, "/api/products/3", "", ""); rr.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rr.Code)
	}

	rr = send(http.MethodPost, "/api/products", "application/json", `{"name":"Gadget","price":1,"stock":1}`)
	var next model.Product
	if err := json.Unmarshal(rr.Body.Bytes(), &next); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if next.ID != 4 {
		t.Fatalf("ids must not be reused, got %d", next.ID)
	}
}
