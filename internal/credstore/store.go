// Package credstore persists bearer credentials across gateway restarts.
//
// A credential is a token plus the profile returned with it, written as a
// pair with one shared expiry. The pair is all-or-nothing: a read that finds
// either half missing, expired or unparsable reports the credential absent
// and removes whatever is left, so callers never see partial state and never
// receive an error for expected conditions.
package credstore

import (
	"context"
	"time"

	"github.com/spec-kit/hotel-front/internal/identity"
)

// Credential is a stored bearer token with its expiry and the profile it
// authenticates.
type Credential struct {
	Token     string
	Profile   identity.Profile
	ExpiresAt time.Time
}

// Expired reports whether the credential's lifetime has passed.
func (c *Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// Store persists one credential per (session, identity class).
//
// Read returns (nil, nil) when no usable credential exists; errors are
// reserved for storage faults (unreachable backend), never for absence,
// expiry or corruption.
type Store interface {
	Save(ctx context.Context, sessionID string, class identity.Class, token string, profile identity.Profile) error
	Read(ctx context.Context, sessionID string, class identity.Class) (*Credential, error)
	Clear(ctx context.Context, sessionID string, class identity.Class) error
	Ping(ctx context.Context) error
	Close() error
}
