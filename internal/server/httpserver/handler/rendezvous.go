// Package handler provides HTTP request handlers for the rendezvous
// server.
package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/yndnr/rendezvous-go/internal/core/service"
)

// readPayload reads the request body against its declared length.
// The declared length is validated before any byte is read so an
// oversized upload is rejected without consuming it.
func (h *Handler) readPayload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	length := r.ContentLength
	if length < 0 {
		h.writeError(w, http.StatusBadRequest, "M_MISSING_PARAM", "Missing Content-Length")
		return nil, false
	}
	if length > int64(h.svc.MaxContentLength()) {
		h.writeError(w, http.StatusRequestEntityTooLarge, "M_TOO_LARGE", "Upload request body is too large")
		return nil, false
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r.Body, payload); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			h.writeError(w, http.StatusBadRequest, "M_INVALID_PARAM", "Content-Length does not match body")
			return nil, false
		}
		h.writeError(w, http.StatusInternalServerError, "M_UNKNOWN", "Internal server error")
		return nil, false
	}

	return payload, true
}

// handleCreate handles POST /rendezvous.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.readPayload(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.Create(r.Context(), &service.CreateRequest{
		ContentType: r.Header.Get("Content-Type"),
		Payload:     payload,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	setEntityHeaders(w, resp.ETag, resp.ExpiresAt)
	h.writeJSON(w, http.StatusCreated, &CreateResponse{
		URL: h.buildSessionURL(r, resp.SessionID),
	})
}

// handleOptions handles CORS preflight on the rendezvous endpoints.
// Browsers must be allowed to send If-Match and If-None-Match.
func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeRendezvousHeaders(w)
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, If-Match, If-None-Match")
	w.Header().Set("Access-Control-Max-Age", "86400")
	w.WriteHeader(http.StatusNoContent)
}
