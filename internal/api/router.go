package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iac-studio/projects/internal/api/handlers"
	mw "github.com/iac-studio/projects/internal/api/middleware"
)

type Dependencies struct {
	// HMACSecret gates /api/v1 behind bearer JWTs when non-empty.
	HMACSecret      []byte
	// CORSOrigins lists the origins allowed to read the API; empty allows any.
	CORSOrigins     []string
	Limiter         *mw.Limiter
	Gatherer        prometheus.Gatherer
	HealthHandler   *handlers.HealthHandler
	ProjectsHandler *handlers.ProjectsHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS(dep.CORSOrigins))
	r.Use(chimid.Compress(5))

	hh := dep.HealthHandler
	if hh == nil {
		hh = handlers.NewHealthHandler(nil)
	}
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	if dep.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(dep.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(api chi.Router) {
		if dep.Limiter != nil {
			api.Use(mw.RateLimit(dep.Limiter))
		}
		if len(dep.HMACSecret) > 0 {
			api.Use(mw.Auth(dep.HMACSecret))
		}

		api.Route("/projects", func(pr chi.Router) {
			pr.Get("/", dep.ProjectsHandler.List)
		})
	})

	return r
}
