package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hotel-front/internal/credstore"
	"github.com/spec-kit/hotel-front/internal/identity"
)

// Registry owns every live Session and is the single mutation path for
// authentication state. Each mutator writes the credential store and the
// in-memory flags inside one critical section, so no reader ever observes
// "authenticated with no credential" or the reverse.
type Registry struct {
	store  credstore.Store
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry builds a registry over the given credential store.
func NewRegistry(store credstore.Store, logger *zap.Logger) *Registry {
	return &Registry{
		store:    store,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Resolve returns the session for the given ID, hydrating it from the
// credential store the first time the ID is seen. A gateway restart behaves
// like a page reload: whatever credentials survived in storage come back as
// authenticated state.
//
// Hydration completes before the session is published, so no request ever
// observes a known session half-loaded. When two requests race on a new ID
// the first insert wins and the loser's session is discarded.
func (r *Registry) Resolve(ctx context.Context, sessionID string) *Session {
	r.mu.Lock()
	if sess, ok := r.sessions[sessionID]; ok {
		r.mu.Unlock()
		sess.touch()
		return sess
	}
	r.mu.Unlock()

	sess := newSession(sessionID)
	for _, class := range identity.Classes {
		cred, err := r.store.Read(ctx, sessionID, class)
		if err != nil {
			r.logger.Warn("credential hydration failed",
				zap.String("class", string(class.Name)), zap.Error(err))
			continue
		}
		if cred == nil {
			continue
		}
		sess.mu.Lock()
		sess.markAuthenticated(class, cred.Profile)
		sess.mu.Unlock()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[sessionID]; ok {
		existing.touch()
		return existing
	}
	r.sessions[sessionID] = sess
	return sess
}

// Sweep evicts sessions with no activity for maxIdle and returns the count.
// Eviction is always safe: the next Resolve for an evicted ID rehydrates
// its state from the credential store, so only cold in-memory entries are
// dropped. This is what keeps one-shot cookie-less visits from growing the
// session map forever.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, sess := range r.sessions {
		sess.mu.RLock()
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.RUnlock()
		if idle {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Authenticate persists the credential and flips the session's state for the
// class, as one logical transaction.
func (r *Registry) Authenticate(ctx context.Context, sess *Session, class identity.Class, token string, profile identity.Profile) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := r.store.Save(ctx, sess.id, class, token, profile); err != nil {
		return err
	}
	sess.markAuthenticated(class, profile)
	return nil
}

// Invalidate logs the class out and clears its stored credential, as one
// logical transaction. Invalidating an already logged-out class is a no-op.
func (r *Registry) Invalidate(ctx context.Context, sess *Session, class identity.Class) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.markLoggedOut(class)
	return r.store.Clear(ctx, sess.id, class)
}

// Credential reads the class's stored credential for the session. A read
// that comes back absent (expired, cleared elsewhere) also drops the
// in-memory flag so state never outlives storage.
func (r *Registry) Credential(ctx context.Context, sess *Session, class identity.Class) (*credstore.Credential, error) {
	cred, err := r.store.Read(ctx, sess.id, class)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		sess.mu.Lock()
		sess.markLoggedOut(class)
		sess.mu.Unlock()
		return nil, nil
	}
	return cred, nil
}
