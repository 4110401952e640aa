package httpapi

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/fairyhunter13/sales-dashboard-service/internal/carts"
	"github.com/fairyhunter13/sales-dashboard-service/internal/catalog"
	"github.com/fairyhunter13/sales-dashboard-service/internal/config"
	"github.com/fairyhunter13/sales-dashboard-service/internal/dashboard"
	httpopenapi "github.com/fairyhunter13/sales-dashboard-service/internal/http/openapi"
)

// CartStats exposes upstream counters for the metrics endpoint.
type CartStats interface {
	Stats() carts.Stats
}

// App holds the dependencies of the HTTP handlers.
type App struct {
	Cfg       config.Config
	Catalog   *catalog.Catalog
	Dashboard *dashboard.Service
	CartStats CartStats
	started   time.Time
	shutting  atomic.Bool
}

// NewApp wires handlers to the catalog and dashboard. stats may be nil.
func NewApp(cfg config.Config, cat *catalog.Catalog, dash *dashboard.Service, stats CartStats) *App {
	return &App{Cfg: cfg, Catalog: cat, Dashboard: dash, CartStats: stats, started: time.Now()}
}

// StartShutdown marks the app as draining; health checks and writes return 503.
func (a *App) StartShutdown() { a.shutting.Store(true) }

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	if a.shutting.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "shutting_down"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// rejectWrites refuses mutating requests while the server drains.
func (a *App) rejectWrites(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.shutting.Load() {
			WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	m := map[string]any{
		"products":   a.Catalog.Len(),
		"uptime_sec": time.Since(a.started).Seconds(),
	}
	if a.CartStats != nil {
		st := a.CartStats.Stats()
		m["carts_fetches"] = st.Fetches
		m["carts_failures"] = st.Failures
		m["carts_cache_hits"] = st.CacheHits
		m["carts_breaker_state"] = st.BreakerState
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

const docsHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Sales Dashboard API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(docsHTML))
}

func (a *App) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSONError(w, http.StatusNotFound, "not_found", "")
}

func (a *App) methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
}
