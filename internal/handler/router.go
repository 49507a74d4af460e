package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mudancafacil/mf-webclient-go/internal/infra/observability"
	"github.com/mudancafacil/mf-webclient-go/internal/infra/resilience"
	"github.com/mudancafacil/mf-webclient-go/internal/service"
	"github.com/mudancafacil/mf-webclient-go/internal/view"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter creates the HTTP router with all pages and middleware.
func NewRouter(svc *service.AccountService, renderer *view.Renderer, metrics *observability.Metrics, flashTTL time.Duration, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(metrics))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	flashes := NewFlashes(flashTTL)
	sess := svc.Session()

	// One slot per form keeps double submits out without queueing them.
	busy := func() *resilience.Bulkhead { return resilience.NewBulkhead(1) }

	// --- Public pages ---
	r.Get("/", rootHandler(svc))
	r.Get("/login", loginPageHandler(svc, renderer, flashes))
	r.Post("/login", loginSubmitHandler(svc, renderer, busy(), logger))
	r.Get("/cadastro", registerCompanyPageHandler(renderer, flashes))
	r.Post("/cadastro", registerCompanySubmitHandler(svc, renderer, flashes, busy(), logger))
	r.Get("/cadastro-cliente", registerCustomerPageHandler(renderer, flashes))
	r.Post("/cadastro-cliente", registerCustomerSubmitHandler(svc, renderer, flashes, busy(), logger))
	r.Get("/logout", logoutHandler(svc))
	r.Post("/logout", logoutHandler(svc))

	// --- Signed-in pages ---
	r.Group(func(r chi.Router) {
		r.Use(RequireSession(sess))

		r.Get("/home", homeHandler(svc, renderer, flashes))

		r.Group(func(r chi.Router) {
			r.Use(RequireCompany(sess))
			r.Get("/empresa/editar", companyEditPageHandler(svc, renderer, flashes))
			r.Post("/empresa/editar", companyEditSubmitHandler(svc, renderer, flashes, busy(), logger))
			r.Get("/empresa/complementar", companyComplementPageHandler(svc, renderer, flashes))
			r.Post("/empresa/complementar", companyComplementSubmitHandler(svc, renderer, flashes, busy(), logger))
			r.Get("/empresa/excluir", companyDeletePageHandler(svc, renderer))
			r.Post("/empresa/excluir", companyDeleteSubmitHandler(svc, renderer, flashes, busy(), logger))
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireCustomer(sess))
			r.Get("/cliente/editar", customerEditPageHandler(svc, renderer, flashes))
			r.Post("/cliente/editar", customerEditSubmitHandler(svc, renderer, flashes, busy(), logger))
			r.Get("/cliente/excluir", customerDeletePageHandler(svc, renderer))
			r.Post("/cliente/excluir", customerDeleteSubmitHandler(svc, renderer, flashes, busy(), logger))
		})
	})

	return r
}

func healthzHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"metrics": metrics.GetSnapshot(),
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	}
}
