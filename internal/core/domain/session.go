// Package domain defines the core domain models for the rendezvous server.
package domain

import (
	"time"

	"github.com/yndnr/rendezvous-go/pkg/token"
)

// Session constraints.
const (
	// SessionIDBytes is the entropy of a session identifier. 8 bytes
	// (64 bits) keeps the URL short while staying unguessable.
	SessionIDBytes = 8

	// SessionIDLength is the encoded identifier length
	// (base64url, no padding).
	SessionIDLength = 11

	// MaxSessionIDLength bounds identifiers accepted from the wire.
	MaxSessionIDLength = 64

	// DefaultContentType is assumed when a creator or updater does not
	// supply a Content-Type.
	DefaultContentType = "application/x-www-form-urlencoded"
)

// Session is one rendezvous channel: an opaque byte slot shared by the
// two sides of an out-of-band handshake. The session URL is the
// capability; there is no further authentication.
type Session struct {
	// ID is the URL-safe, unguessable identifier.
	ID string `json:"id"`

	// ContentType is the MIME type supplied by the last writer.
	ContentType string `json:"content_type"`

	// Payload is the opaque byte string being exchanged.
	Payload []byte `json:"-"`

	// ETag is the current strong entity tag. It changes on every
	// successful write and is never reused within the session lifetime.
	ETag string `json:"etag"`

	// Version is the monotonically increasing write counter backing
	// the entity tag.
	Version uint64 `json:"version"`

	// CreatedAt is the creation timestamp (Unix milliseconds).
	CreatedAt int64 `json:"created_at"`

	// LastModified is the last write timestamp (Unix milliseconds).
	LastModified int64 `json:"last_modified"`

	// ExpiresAt is the absolute expiration timestamp (Unix milliseconds).
	// Always LastModified plus the store TTL.
	ExpiresAt int64 `json:"expires_at"`
}

// NewSession creates a Session with a freshly generated identifier and
// the given initial content. Timestamps and the entity tag are zero
// until the first Touch.
func NewSession(contentType string, payload []byte) (*Session, error) {
	id, err := GenerateSessionID()
	if err != nil {
		return nil, err
	}

	if contentType == "" {
		contentType = DefaultContentType
	}

	return &Session{
		ID:          id,
		ContentType: contentType,
		Payload:     payload,
	}, nil
}

// GenerateSessionID generates a new unguessable session identifier:
// 64 bits from crypto/rand, base64url encoded.
func GenerateSessionID() (string, error) {
	id, err := token.GenerateWithLength(SessionIDBytes)
	if err != nil {
		return "", ErrUnknown.WithCause(err)
	}
	return id, nil
}

// IsValidSessionID reports whether a string looks like a session
// identifier. It is a cheap pre-filter for wire input; the store lookup
// remains the source of truth.
func IsValidSessionID(id string) bool {
	if id == "" || len(id) > MaxSessionIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

// Touch records a successful write at now: the modification and expiry
// timestamps are refreshed and the session advances to a new entity tag.
// Called once on create and once per update.
func (s *Session) Touch(now time.Time, ttl time.Duration) error {
	etag, err := s.nextETag()
	if err != nil {
		return err
	}

	ms := now.UnixMilli()
	if s.CreatedAt == 0 {
		s.CreatedAt = ms
	}
	s.LastModified = ms
	s.ExpiresAt = now.Add(ttl).UnixMilli()
	s.ETag = etag
	return nil
}

// Replace swaps in a new payload and content type. An empty content
// type falls back to the default, same as on create.
func (s *Session) Replace(contentType string, payload []byte) {
	if contentType == "" {
		contentType = DefaultContentType
	}
	s.ContentType = contentType
	s.Payload = payload
}

// IsExpired reports whether the session is unreachable at now.
// A session expires at ExpiresAt exactly, not one tick later.
func (s *Session) IsExpired(now time.Time) bool {
	return now.UnixMilli() >= s.ExpiresAt
}

// ETagMatches compares a client-supplied entity tag against the current
// one. Tags are opaque: the comparison is byte-for-byte with what the
// server emitted, never a parse.
func (s *Session) ETagMatches(candidate string) bool {
	return candidate == s.ETag
}

// Clone creates a deep copy of the session.
func (s *Session) Clone() *Session {
	clone := *s
	if s.Payload != nil {
		clone.Payload = make([]byte, len(s.Payload))
		copy(clone.Payload, s.Payload)
	}
	return &clone
}

// CreatedAtTime returns CreatedAt as time.Time.
func (s *Session) CreatedAtTime() time.Time {
	return time.UnixMilli(s.CreatedAt)
}

// LastModifiedTime returns LastModified as time.Time.
func (s *Session) LastModifiedTime() time.Time {
	return time.UnixMilli(s.LastModified)
}

// ExpiresAtTime returns ExpiresAt as time.Time.
func (s *Session) ExpiresAtTime() time.Time {
	return time.UnixMilli(s.ExpiresAt)
}
