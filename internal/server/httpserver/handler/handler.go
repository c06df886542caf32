// Package handler provides HTTP request handlers for the rendezvous
// server.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yndnr/rendezvous-go/internal/core/domain"
	"github.com/yndnr/rendezvous-go/internal/core/service"
	"github.com/yndnr/rendezvous-go/internal/telemetry/logger"
)

// Handler serves the rendezvous channel endpoints.
type Handler struct {
	svc *service.RendezvousService

	// urlPrefix is the configured absolute session URL prefix with a
	// trailing slash, or empty to derive URLs from the request.
	urlPrefix string

	log logger.Logger
	mux *http.ServeMux
}

// New creates a new Handler.
func New(svc *service.RendezvousService, urlPrefix string, log logger.Logger) *Handler {
	h := &Handler{
		svc:       svc,
		urlPrefix: urlPrefix,
		log:       log,
		mux:       http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler. Requests the route table rejects
// (unknown method, unknown path) never reach the mux's plain-text
// 404/405: every response on this surface carries the rendezvous
// headers and a Matrix error body.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := h.mux.Handler(r); pattern == "" {
		h.handleUnmatched(w, r)
		return
	}
	h.mux.ServeHTTP(w, r)
}

// handleUnmatched answers requests no registered route accepts.
func (h *Handler) handleUnmatched(w http.ResponseWriter, r *http.Request) {
	var allowed string
	switch {
	case r.URL.Path == "/rendezvous":
		allowed = "POST, OPTIONS"
	case strings.HasPrefix(r.URL.Path, "/rendezvous/"):
		allowed = "GET, PUT, DELETE, OPTIONS"
	}

	if allowed == "" {
		h.writeError(w, http.StatusNotFound, "M_NOT_FOUND", "Not found")
		return
	}

	w.Header().Set("Allow", allowed)
	h.writeError(w, http.StatusMethodNotAllowed, "M_UNRECOGNIZED", "Method not allowed")
}

// registerRoutes registers the rendezvous channel routes.
func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("POST /rendezvous", h.handleCreate)
	h.mux.HandleFunc("OPTIONS /rendezvous", h.handleOptions)
	h.mux.HandleFunc("GET /rendezvous/{id}", h.handleGet)
	h.mux.HandleFunc("PUT /rendezvous/{id}", h.handleUpdate)
	h.mux.HandleFunc("DELETE /rendezvous/{id}", h.handleDelete)
	h.mux.HandleFunc("OPTIONS /rendezvous/{id}", h.handleOptions)
}

// writeRendezvousHeaders sets the headers every rendezvous response
// carries, success or error. The channel is used cross-origin from
// browsers and its content must never be cached.
func writeRendezvousHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Expose-Headers", "etag")
	h.Set("Cache-Control", "no-store")
	h.Set("Pragma", "no-cache")
}

// writeJSON writes a JSON response with the rendezvous header set.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	writeRendezvousHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

// writeError writes a Matrix-format error body.
func (h *Handler) writeError(w http.ResponseWriter, status int, errcode, message string) {
	writeRendezvousHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&ErrorBody{Errcode: errcode, Error: message})
}

// handleServiceError converts service errors to HTTP responses.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.DomainError
	if !errors.As(err, &de) {
		logger.L(r.Context()).Error("internal error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "M_UNKNOWN", "Internal server error")
		return
	}

	h.writeError(w, errorStatus(de), de.Code, de.Message)
}

// errorStatus maps a domain error to its HTTP status. Sentinels that
// share a wire code still map to distinct statuses, so the mapping
// goes through errors.Is rather than the code string.
func errorStatus(de *domain.DomainError) int {
	switch {
	case de.Is(domain.ErrSessionNotFound):
		return http.StatusNotFound
	case de.Is(domain.ErrConcurrentWrite):
		return http.StatusPreconditionFailed
	case de.Is(domain.ErrPreconditionRequired):
		return http.StatusPreconditionRequired
	case de.Is(domain.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case de.Is(domain.ErrMissingParam), de.Is(domain.ErrInvalidParam):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// setEntityHeaders sets the concurrency coordination headers: the bare
// entity tag (no quotes; clients echo it verbatim) and the expiry as
// an HTTP date.
func setEntityHeaders(w http.ResponseWriter, etag string, expiresAt int64) {
	w.Header().Set("ETag", etag)
	w.Header().Set("Expires", time.UnixMilli(expiresAt).UTC().Format(http.TimeFormat))
}

// buildSessionURL returns the absolute URL of a session. A configured
// prefix wins; otherwise the URL is derived from the incoming request
// so the service works behind any hostname without configuration.
func (h *Handler) buildSessionURL(r *http.Request, id string) string {
	if h.urlPrefix != "" {
		return h.urlPrefix + id
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	u := url.URL{
		Scheme: scheme,
		Host:   r.Host,
		Path:   r.URL.Path + "/" + id,
	}
	return u.String()
}
