// Package handler provides HTTP request handlers for the rendezvous
// server.
package handler

import (
	"errors"
	"net/http"

	"github.com/yndnr/rendezvous-go/internal/core/domain"
	"github.com/yndnr/rendezvous-go/internal/core/service"
)

// handleGet handles GET /rendezvous/{id}. A conditional read whose tag
// still matches answers 304 with the tag and expiry of the very record
// the tag was checked against, so the client can keep polling on 304s
// alone without ever adopting a tag from a write it raced with.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Get(r.Context(), &service.GetRequest{
		SessionID:   r.PathValue("id"),
		IfNoneMatch: r.Header.Get("If-None-Match"),
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeRendezvousHeaders(w)
	setEntityHeaders(w, resp.ETag, resp.ExpiresAt)
	if resp.NotModified {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(resp.Payload)
}

// handleUpdate handles PUT /rendezvous/{id}.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.readPayload(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.Update(r.Context(), &service.UpdateRequest{
		SessionID:   r.PathValue("id"),
		IfMatch:     r.Header.Get("If-Match"),
		ContentType: r.Header.Get("Content-Type"),
		Payload:     payload,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeRendezvousHeaders(w)
	setEntityHeaders(w, resp.ETag, resp.ExpiresAt)
	w.WriteHeader(http.StatusAccepted)
}

// handleDelete handles DELETE /rendezvous/{id}.
//
// Deletion is idempotent on the wire: whether the session was live,
// already gone, or never existed, the caller observes 204. A genuinely
// malformed request (empty id) still surfaces.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Delete(r.Context(), &service.DeleteRequest{
		SessionID: r.PathValue("id"),
	})
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		h.handleServiceError(w, r, err)
		return
	}

	writeRendezvousHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}
