package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/servicekit/pkg/agentstats"
	"github.com/dmitrymomot/servicekit/pkg/clientip"
	"github.com/dmitrymomot/servicekit/pkg/httpserver"
	"github.com/dmitrymomot/servicekit/pkg/logger"
	"github.com/dmitrymomot/servicekit/pkg/requestid"
	"github.com/dmitrymomot/servicekit/pkg/serviceerror"
	"github.com/dmitrymomot/servicekit/pkg/useragent"
)

var (
	errMethodNotAllowed = serviceerror.MustErrorType(serviceerror.InvalidArgument, "Api:MethodNotAllowed")
	errBodyTooLarge     = serviceerror.MustErrorType(serviceerror.RequestEntityTooLarge, "Api:RequestBodyTooLarge")
)

// Deps are the collaborators of the HTTP API.
type Deps struct {
	// Store receives a count for every API call. Required.
	Store agentstats.Store
	// Logger defaults to a no-op logger.
	Logger *slog.Logger
	// ReadinessChecks back GET /readyz.
	ReadinessChecks []func(context.Context) error
	// Metrics is served on GET /metrics when set.
	Metrics prometheus.Gatherer
	// Self is sent in the Server header of every response when set.
	Self useragent.UserAgent
}

// NewRouter returns the service handler. Probes and metrics are served
// outside the agent statistics so that orchestrator traffic is not counted.
func NewRouter(deps Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	h := &handlers{store: deps.Store, log: log}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(useragent.Middleware)
	if !deps.Self.IsZero() {
		r.Use(serverHeader(deps.Self))
	}
	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.methodNotAllowed)

	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log, deps.ReadinessChecks...))
	if deps.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(accessLog(log))
		r.Use(agentstats.Middleware(deps.Store, log))

		r.Route("/v1", func(r chi.Router) {
			r.Post("/user-agents/parse", h.parse)
			r.Post("/user-agents/format", h.format)
			r.Get("/user-agents/self", h.self)
			r.Get("/agents", h.listAgents)
			r.Delete("/agents", h.resetAgents)
		})
	})

	return r
}

func serverHeader(self useragent.UserAgent) func(http.Handler) http.Handler {
	value := useragent.Format(self)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Server", value)
			next.ServeHTTP(w, r)
		})
	}
}

func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				logger.Component("api"),
			)
		})
	}
}
