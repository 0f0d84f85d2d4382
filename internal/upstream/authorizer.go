package upstream

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/hotel-front/internal/events"
	"github.com/spec-kit/hotel-front/internal/identity"
	"github.com/spec-kit/hotel-front/internal/observability"
	"github.com/spec-kit/hotel-front/internal/session"
	apperrors "github.com/spec-kit/hotel-front/pkg/util"
)

type contextKey string

const (
	sessionContextKey contextKey = "session"
	routeContextKey   contextKey = "gateway_route"
)

// WithSession attaches the visitor's session to an outgoing call's context
// so the authorizer can find its credentials.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// SessionFromContext retrieves the session placed by WithSession.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionContextKey).(*session.Session)
	return sess
}

// WithRoute records the gateway route the visitor was on when the call was
// made. Used to attribute a 401 when no credential was attached.
func WithRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeContextKey, route)
}

// RouteFromContext retrieves the route placed by WithRoute.
func RouteFromContext(ctx context.Context) string {
	route, _ := ctx.Value(routeContextKey).(string)
	return route
}

// Authorizer is the request pipeline stage in front of the booking API.
//
// Per outgoing request it checks the exemption rules, then attaches at most
// one bearer credential, preferring the staff class when both are live. On a
// 401 it logs the attached class out, clears its stored credential and
// surfaces a stale-session error the HTTP layer turns into a login redirect.
// A 403 passes through untouched: insufficient permission does not
// invalidate the session. Transport failures pass through unmodified; there
// are no retries and no response caching.
type Authorizer struct {
	base       http.RoundTripper
	registry   *session.Registry
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	basePath   string
}

// NewAuthorizer wraps base with credential handling. basePath is the path
// prefix of the booking API base URL, stripped before exemption matching.
func NewAuthorizer(base http.RoundTripper, registry *session.Registry, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger, basePath string) *Authorizer {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Authorizer{
		base:       base,
		registry:   registry,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
		basePath:   strings.TrimSuffix(basePath, "/"),
	}
}

// RoundTrip implements http.RoundTripper.
func (a *Authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	apiPath := a.apiPath(req.URL.Path)
	exempt := Exempt(req.Method, apiPath)
	sess := SessionFromContext(ctx)

	var attached *identity.Class
	if !exempt && sess != nil {
		for _, class := range identity.Classes {
			cred, err := a.registry.Credential(ctx, sess, class)
			if err != nil {
				a.logger.Warn("credential lookup failed",
					zap.String("class", string(class.Name)), zap.Error(err))
				continue
			}
			if cred == nil {
				continue
			}
			clone := req.Clone(ctx)
			clone.Header.Set("Authorization", "Bearer "+cred.Token)
			req = clone
			c := class
			attached = &c
			break
		}
	}

	resp, err := a.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if a.metrics != nil {
		a.metrics.UpstreamRequests.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()
	}

	if exempt {
		return resp, nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		class := a.rejectedClass(ctx, attached)
		if sess != nil {
			if err := a.registry.Invalidate(ctx, sess, class); err != nil {
				a.logger.Warn("session invalidation failed", zap.Error(err))
			}
			if a.dispatcher != nil {
				event := events.NewEvent(events.EventSessionInvalidated, class)
				event.Reason = "credential rejected"
				a.dispatcher.Publish(ctx, event)
			}
		}
		drain(resp)
		return nil, apperrors.NewSessionExpired(string(class.Name), class.LoginRoute)
	case http.StatusForbidden:
		if sess != nil && attached != nil {
			if profile := sess.Profile(*attached); profile != nil {
				a.logger.Info("permission denied by booking api",
					zap.String("class", string(attached.Name)),
					zap.String("role", string(profile.Role)),
					zap.String("path", apiPath))
			}
		}
	}

	return resp, nil
}

// rejectedClass attributes a 401 to the class whose credential was attached,
// falling back to the class owning the current route's namespace when the
// request carried no credential at all.
func (a *Authorizer) rejectedClass(ctx context.Context, attached *identity.Class) identity.Class {
	if attached != nil {
		return *attached
	}
	return identity.OwnerOfRoute(RouteFromContext(ctx))
}

func (a *Authorizer) apiPath(fullPath string) string {
	path := strings.TrimPrefix(fullPath, a.basePath)
	if path == "" || path[0] != '/' {
		path = "/" + path
	}
	return path
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
