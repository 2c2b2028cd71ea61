// Package httpx exposes the GraphQL endpoint and its supporting routes.
package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"

	"log/slog"

	"github.com/gorilla/websocket"
	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vanessaike/social-feed-graphql-api/internal/service/auth"
	"github.com/vanessaike/social-feed-graphql-api/internal/ws"
)

const (
	rateWindow         = time.Minute
	healthCheckTimeout = 2 * time.Second
)

// Router wires the GraphQL schema and supporting endpoints.
type Router struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	schema   *graphqlgo.Schema
	auth     auth.Service
	hub      *ws.Hub
	upgrader websocket.Upgrader
	limiter  RateLimiter
	rpm      int
	dbHealth func(context.Context) error

	metricsOnce        sync.Once
	metricsInitialized bool
	requestTotal       *prometheus.CounterVec
	requestLatency     *prometheus.HistogramVec
	rateLimitHits      *prometheus.CounterVec
}

// NewRouter assembles routes with dependencies. hub may be nil when the live
// feed is disabled.
func NewRouter(logger *slog.Logger, schema *graphqlgo.Schema, authSvc auth.Service, hub *ws.Hub, limiter RateLimiter, rpm int, dbHealth func(context.Context) error) *Router {
	r := &Router{
		mux:    http.NewServeMux(),
		logger: logger,
		schema: schema,
		auth:   authSvc,
		hub:    hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		limiter:  limiter,
		rpm:      rpm,
		dbHealth: dbHealth,
	}
	if r.limiter == nil {
		r.limiter = NewMemoryRateLimiter()
	}
	r.initMetrics()
	r.register()
	return r
}

// ServeHTTP applies the cross-cutting middleware and delegates to the mux.
// CORS runs first and short-circuits OPTIONS; the identity step decorates the
// context and never rejects on its own.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	corsHeaders(r.withIdentity(r.mux)).ServeHTTP(w, req)
}

// Close releases background resources.
func (r *Router) Close() {
	if r.limiter != nil {
		r.limiter.Close()
	}
}

func (r *Router) register() {
	r.mux.HandleFunc("/graphql", r.instrument("graphql", r.withRateLimit("graphql", r.rpm, rateWindow, r.handleGraphQL)))
	r.mux.HandleFunc("/healthz", r.instrument("healthz", r.handleHealthz))
	r.mux.Handle("/metrics", promhttp.Handler())
	r.mux.HandleFunc("/ws/feed", r.handleFeedWS)
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
	defer cancel()
	if r.dbHealth != nil {
		if err := r.dbHealth(ctx); err != nil {
			r.logger.Error("database health check failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
