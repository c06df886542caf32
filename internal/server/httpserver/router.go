// Package httpserver provides the HTTP/HTTPS server for the rendezvous
// service.
package httpserver

import (
	"net/http"

	"github.com/yndnr/rendezvous-go/internal/core/service"
	"github.com/yndnr/rendezvous-go/internal/server/config"
	"github.com/yndnr/rendezvous-go/internal/server/httpserver/handler"
	"github.com/yndnr/rendezvous-go/internal/telemetry/logger"
	"github.com/yndnr/rendezvous-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// RendezvousService handles session operations. Required in
	// native mode, ignored otherwise.
	RendezvousService *service.RendezvousService

	// Rendezvous selects the mode, delegation target, legacy redirect,
	// and session URL prefix.
	Rendezvous config.RendezvousSection

	// RateLimit configures per-IP request limiting.
	RateLimit config.RateLimitConfig

	// Logger for request logging.
	Logger logger.Logger

	// Metrics is the Prometheus registry; nil disables /metrics and
	// request instrumentation.
	Metrics *metric.Registry

	// EnableAudit enables per-request access logging.
	EnableAudit bool
}

// NewRouter creates and configures the HTTP router with all routes and
// middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	mux := http.NewServeMux()

	// Health endpoints. Probes stay cheap: no audit, no rate limit.
	mux.HandleFunc("GET /health", handler.HandleHealth)
	mux.HandleFunc("GET /ready", handler.HandleReady)

	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}

	// Rendezvous endpoints, by mode. In disabled mode nothing is
	// registered and requests fall through to the mux's 404.
	switch cfg.Rendezvous.Mode {
	case config.ModeNative:
		h := handler.New(cfg.RendezvousService, cfg.Rendezvous.SessionURLPrefix, log)
		mux.Handle("/rendezvous", rendezvousChain(h, cfg, log))
		mux.Handle("/rendezvous/{id}", rendezvousChain(h, cfg, log))

	case config.ModeDelegated:
		redirect := redirectHandler(cfg.Rendezvous.DelegationURL)
		mux.Handle("/rendezvous", redirect)
		mux.Handle("/rendezvous/{id}", redirect)
	}

	// The legacy endpoint only ever redirects, and only when a target
	// is configured. Independent of the mode above.
	if cfg.Rendezvous.LegacyRedirectURL != "" {
		mux.Handle("/legacy/rendezvous", redirectHandler(cfg.Rendezvous.LegacyRedirectURL))
	}

	return Chain(mux, Recover(log), RequestID())
}

// rendezvousChain wraps the rendezvous handler with its middleware.
func rendezvousChain(h http.Handler, cfg *RouterConfig, log logger.Logger) http.Handler {
	var middlewares []Middleware

	if cfg.Metrics != nil {
		middlewares = append(middlewares, Metrics(cfg.Metrics))
	}
	if cfg.EnableAudit {
		middlewares = append(middlewares, Audit(log))
	}
	if cfg.RateLimit.Enabled {
		middlewares = append(middlewares, RateLimit(cfg.RateLimit))
	}

	return Chain(h, middlewares...)
}

// redirectHandler answers every request with a temporary redirect,
// carrying the CORS headers browsers need to follow it.
func redirectHandler(target string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Expose-Headers", "etag")
		h.Set("Location", target)
		w.WriteHeader(http.StatusTemporaryRedirect)
	})
}
