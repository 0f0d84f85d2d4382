// Package authflow implements login, registration and logout for both
// identity classes against the remote booking API.
package authflow

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/hotel-front/internal/events"
	"github.com/spec-kit/hotel-front/internal/identity"
	"github.com/spec-kit/hotel-front/internal/session"
	"github.com/spec-kit/hotel-front/internal/upstream"
	apperrors "github.com/spec-kit/hotel-front/pkg/util"
)

// Flows coordinates authentication operations. One instance serves both
// identity classes; the class descriptor parameterizes endpoints, storage
// and redirects.
type Flows struct {
	client     *upstream.Client
	registry   *session.Registry
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// New builds the flows.
func New(client *upstream.Client, registry *session.Registry, dispatcher events.Dispatcher, logger *zap.Logger) *Flows {
	return &Flows{client: client, registry: registry, dispatcher: dispatcher, logger: logger}
}

// Login authenticates credentials with the booking API. On success the
// credential is persisted and the session marked authenticated before the
// post-auth destination is returned. On failure nothing is mutated and the
// error surfaces to the caller; login failures are user-actionable, so there
// is no retry.
func (f *Flows) Login(ctx context.Context, sess *session.Session, class identity.Class, req upstream.LoginRequest) (string, error) {
	if req.Mail == "" || req.Password == "" {
		return "", apperrors.NewValidationError("mail and password required", nil)
	}

	resp, err := f.client.Login(ctx, class, req)
	if err != nil {
		f.publishFailure(ctx, class, "login rejected")
		return "", err
	}

	return f.establish(ctx, sess, class, resp, events.EventLoginSucceeded)
}

// Register creates an account. The API returns a token immediately, so a
// successful registration follows the same path as a login. An existing
// identity surfaces as a distinct conflict error.
func (f *Flows) Register(ctx context.Context, sess *session.Session, class identity.Class, req upstream.RegisterRequest) (string, error) {
	if req.Mail == "" || req.Password == "" || req.FullName == "" {
		return "", apperrors.NewValidationError("fullName, mail and password required", nil)
	}
	if class.Name == identity.ClassStaff && !req.Role.Valid() {
		return "", apperrors.NewValidationError("a valid staff role is required", nil)
	}

	resp, err := f.client.Register(ctx, class, req)
	if err != nil {
		f.publishFailure(ctx, class, "registration rejected")
		return "", err
	}

	return f.establish(ctx, sess, class, resp, events.EventRegistered)
}

// Logout drops the class's session state and stored credential together,
// then reports the class's login route as the redirect target. Logging out
// an unauthenticated class is harmless.
func (f *Flows) Logout(ctx context.Context, sess *session.Session, class identity.Class) (string, error) {
	profile := sess.Profile(class)
	if err := f.registry.Invalidate(ctx, sess, class); err != nil {
		return "", apperrors.NewInternalError(err)
	}

	event := events.NewEvent(events.EventLoggedOut, class)
	if profile != nil {
		event.ProfileID = profile.ID
		event.Role = profile.Role
	}
	f.dispatcher.Publish(ctx, event)

	return class.LoginRoute, nil
}

func (f *Flows) establish(ctx context.Context, sess *session.Session, class identity.Class, resp *upstream.AuthResponse, eventType events.EventType) (string, error) {
	if resp.Token == "" || resp.User.ID == "" {
		return "", apperrors.NewUpstreamUnavailable(errors.New("auth response missing token or profile"))
	}

	if err := f.registry.Authenticate(ctx, sess, class, resp.Token, resp.User); err != nil {
		f.logger.Error("credential persistence failed", zap.Error(err))
		return "", apperrors.NewInternalError(err)
	}

	event := events.NewEvent(eventType, class)
	event.ProfileID = resp.User.ID
	event.Role = resp.User.Role
	f.dispatcher.Publish(ctx, event)

	return class.Destination(resp.User.Role), nil
}

func (f *Flows) publishFailure(ctx context.Context, class identity.Class, reason string) {
	event := events.NewEvent(events.EventLoginFailed, class)
	event.Reason = reason
	f.dispatcher.Publish(ctx, event)
}
