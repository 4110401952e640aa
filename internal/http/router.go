package httpapi

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxBodyBytes = 1 << 20

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(WithRequestID, WithLogging, middleware.Recoverer, WithBodyLimit(maxBodyBytes))
	r.NotFound(app.notFoundHandler)
	r.MethodNotAllowed(app.methodNotAllowedHandler)

	r.Get("/healthz", app.healthHandler)
	r.Get("/debug/metrics", app.metricsHandler)
	r.Method(http.MethodGet, "/debug/vars", expvar.Handler())
	r.Get("/openapi.yaml", app.openapiHandler)
	r.Get("/docs", app.docsHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", app.overviewHandler)
			r.Get("/kpis", app.kpisHandler)
			r.Get("/sales", app.salesHandler)
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", app.listProductsHandler)
			r.Get("/{id}", app.getProductHandler)
			r.Group(func(r chi.Router) {
				r.Use(app.rejectWrites)
				r.Post("/", app.createProductHandler)
				r.Patch("/{id}", app.updateProductHandler)
				r.Put("/{id}", app.updateProductHandler)
				r.Delete("/{id}", app.deleteProductHandler)
			})
		})
	})

	return otelhttp.NewHandler(r, "sales-dashboard")
}
