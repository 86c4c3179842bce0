// Package http assembles the route tree for the API server.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	appchem "github.com/turtacn/SmilesKit/internal/application/chem"
	"github.com/turtacn/SmilesKit/internal/config"
	"github.com/turtacn/SmilesKit/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SmilesKit/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/SmilesKit/internal/interfaces/http/handlers"
)

// NewRouter builds the complete route tree: the v1 SMILES endpoints, the
// health probe, and the optional Prometheus exposition endpoint, wired behind
// the global middleware chain.
func NewRouter(cfg *config.Config, svc *appchem.Service, metrics *prometheus.PipelineMetrics, log logging.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(log.Named("http")))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	chemHandler := handlers.NewChemHandler(svc, log)
	r.Route("/api/v1/smiles", func(api chi.Router) {
		registerSMILESRoutes(api, chemHandler)
	})

	if cfg.Metrics.Enabled && metrics != nil {
		r.Method(http.MethodGet, cfg.Metrics.Path, metrics.Handler())
	}

	return r
}

// registerSMILESRoutes mounts the pipeline endpoints.
func registerSMILESRoutes(r chi.Router, h *handlers.ChemHandler) {
	r.Post("/parse", h.Parse)
	r.Post("/canonical", h.Canonical)
	r.Post("/rings", h.Rings)
}

// requestLogger logs one line per request with latency and status.  Health
// probes are skipped to keep the log free of keepalive noise.
func requestLogger(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" {
				next.ServeHTTP(w, r)
				return
			}
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("request",
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", ww.Status()),
				logging.Duration("latency", time.Since(start)))
		})
	}
}
