// Package domain defines the core domain models for the rendezvous server.
package domain

import (
	"encoding/hex"
	"fmt"

	"github.com/yndnr/rendezvous-go/pkg/token"
)

// etagNonceBytes is the random component of an entity tag. The version
// counter alone guarantees uniqueness within a session; the nonce keeps
// tags unguessable across sessions.
const etagNonceBytes = 2

// nextETag advances the session version counter and renders the new
// entity tag, e.g. "3-f91c". Tags for two distinct versions of the same
// session can never collide because the counter only moves forward.
func (s *Session) nextETag() (string, error) {
	nonce, err := token.GenerateBytes(etagNonceBytes)
	if err != nil {
		return "", ErrUnknown.WithCause(err)
	}
	s.Version++
	return fmt.Sprintf("%d-%s", s.Version, hex.EncodeToString(nonce)), nil
}
