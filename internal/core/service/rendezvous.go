package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yndnr/rendezvous-go/internal/core/domain"
	"github.com/yndnr/rendezvous-go/internal/telemetry/logger"
)

// SessionStore defines the storage interface for rendezvous sessions.
// The memory store implements it; expiry, capacity, and entity-tag
// bookkeeping are the store's responsibility.
type SessionStore interface {
	// Create inserts a fresh session holding the given content.
	Create(contentType string, payload []byte) (*domain.Session, error)

	// Get retrieves the current record. When ifNoneMatch equals the
	// current entity tag the record is returned together with
	// ErrNotModified, from the same atomic lookup.
	Get(id, ifNoneMatch string) (*domain.Session, error)

	// Update replaces the content under optimistic concurrency.
	Update(id, ifMatch, contentType string, payload []byte) (*domain.Session, error)

	// Delete removes the session.
	Delete(id string) error

	// TTL returns the configured session lifetime.
	TTL() time.Duration

	// MaxContentLength returns the payload size limit in bytes.
	MaxContentLength() int
}

// RendezvousService handles rendezvous session operations.
type RendezvousService struct {
	store SessionStore
}

// NewRendezvousService creates a new RendezvousService.
func NewRendezvousService(store SessionStore) *RendezvousService {
	return &RendezvousService{
		store: store,
	}
}

// MaxContentLength returns the payload size limit in bytes.
func (s *RendezvousService) MaxContentLength() int {
	return s.store.MaxContentLength()
}

// CreateRequest contains parameters for session creation.
type CreateRequest struct {
	ContentType string // Optional, defaults to application/x-www-form-urlencoded
	Payload     []byte
}

// CreateResponse contains the result of session creation.
type CreateResponse struct {
	SessionID string
	ETag      string
	ExpiresAt int64 // Unix MS
}

// Create creates a new rendezvous session.
func (s *RendezvousService) Create(ctx context.Context, req *CreateRequest) (*CreateResponse, error) {
	session, err := s.store.Create(req.ContentType, req.Payload)
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Debug("session created",
		"session_id", session.ID,
		"content_length", len(req.Payload),
		"expires_at", session.ExpiresAtTime().Format(time.RFC3339),
	)

	return &CreateResponse{
		SessionID: session.ID,
		ETag:      session.ETag,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// GetRequest contains parameters for session retrieval.
type GetRequest struct {
	SessionID   string
	IfNoneMatch string // Optional
}

// GetResponse contains the current session record. When NotModified is
// set the caller's tag still matches; ETag and ExpiresAt describe the
// same record the tag was checked against.
type GetResponse struct {
	ContentType  string
	Payload      []byte
	ETag         string
	ExpiresAt    int64 // Unix MS
	LastModified int64 // Unix MS
	NotModified  bool
}

// Get retrieves the current session content.
func (s *RendezvousService) Get(ctx context.Context, req *GetRequest) (*GetResponse, error) {
	if err := validateSessionID(req.SessionID); err != nil {
		return nil, err
	}

	session, err := s.store.Get(req.SessionID, req.IfNoneMatch)
	notModified := errors.Is(err, domain.ErrNotModified)
	if err != nil && !notModified {
		return nil, err
	}

	return &GetResponse{
		ContentType:  session.ContentType,
		Payload:      session.Payload,
		ETag:         session.ETag,
		ExpiresAt:    session.ExpiresAt,
		LastModified: session.LastModified,
		NotModified:  notModified,
	}, nil
}

// UpdateRequest contains parameters for a session content update.
type UpdateRequest struct {
	SessionID   string
	IfMatch     string // Mandatory; its absence is a client error
	ContentType string // Optional, defaults to application/x-www-form-urlencoded
	Payload     []byte
}

// UpdateResponse contains the result of a session content update.
type UpdateResponse struct {
	ETag      string
	ExpiresAt int64 // Unix MS
}

// Update replaces the session content. The update only applies when
// IfMatch equals the current entity tag; a stale tag means the other
// side of the handshake wrote first and this writer must re-read.
func (s *RendezvousService) Update(ctx context.Context, req *UpdateRequest) (*UpdateResponse, error) {
	if err := validateSessionID(req.SessionID); err != nil {
		return nil, err
	}

	session, err := s.store.Update(req.SessionID, req.IfMatch, req.ContentType, req.Payload)
	if err != nil {
		if errors.Is(err, domain.ErrConcurrentWrite) {
			logger.L(ctx).Debug("concurrent write rejected",
				"session_id", req.SessionID,
			)
		}
		return nil, err
	}

	return &UpdateResponse{
		ETag:      session.ETag,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// DeleteRequest contains parameters for session deletion.
type DeleteRequest struct {
	SessionID string
}

// Delete removes the session. ErrSessionNotFound reports that nothing
// was deleted; the transport treats deletion as idempotent and answers
// the same either way.
func (s *RendezvousService) Delete(ctx context.Context, req *DeleteRequest) error {
	if err := validateSessionID(req.SessionID); err != nil {
		return err
	}

	if err := s.store.Delete(req.SessionID); err != nil {
		return err
	}

	logger.L(ctx).Debug("session deleted", "session_id", req.SessionID)
	return nil
}

// validateSessionID rejects ids that could not have been issued by this
// server before they reach the store.
func validateSessionID(id string) error {
	if id == "" {
		return domain.ErrInvalidParam.WithDetails("session id is required")
	}
	if !domain.IsValidSessionID(id) {
		return domain.ErrSessionNotFound.WithDetails(
			fmt.Sprintf("malformed session id (%d bytes)", len(id)),
		)
	}
	return nil
}
