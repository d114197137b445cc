// Package api exposes the ephemeris query service over HTTP: point queries
// for interpolated states, segment listings, and integrity checks, with
// Prometheus instrumentation.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/seren-space/orrery/pkg/cache"
	"github.com/seren-space/orrery/pkg/spk"
)

// Server answers ephemeris queries against a set of loaded kernels.
type Server struct {
	set     *spk.Set
	cache   *cache.StateCache // may be nil
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a server. cache may be nil to disable state caching.
func NewServer(set *spk.Set, stateCache *cache.StateCache, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		set:     set,
		cache:   stateCache,
		config:  config,
		metrics: metrics,
	}
}

// Router builds the chi router with all routes configured.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(s.config.APIKey, s.metrics))

		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))
		r.Get("/state", s.metrics.InstrumentHandler("GET", "/api/v1/state", s.handleState))
		r.Get("/segments", s.metrics.InstrumentHandler("GET", "/api/v1/segments", s.handleSegments))
		r.Get("/integrity", s.metrics.InstrumentHandler("GET", "/api/v1/integrity", s.handleIntegrity))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured
func StartServer(set *spk.Set, stateCache *cache.StateCache, config ServerConfig) error {
	metrics := NewMetrics()

	segments := 0
	for _, ent := range set.Entries() {
		segments += len(ent.Kernel.Segments())
	}
	metrics.SetSegmentsLoaded(segments)

	server := NewServer(set, stateCache, config, metrics)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	return http.ListenAndServe(addr, server.Router())
}
