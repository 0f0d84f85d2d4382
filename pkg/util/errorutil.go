package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string) error {
	return NewDomainError("NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound, nil)
}

// NewInvalidCredentials marks a login or registration rejected at submit
// time. No session state changes on this error.
func NewInvalidCredentials() error {
	return NewDomainError("INVALID_CREDENTIALS", "invalid credentials", http.StatusUnauthorized, nil)
}

// NewIdentityConflict marks a registration rejected because the identity
// already exists.
func NewIdentityConflict() error {
	return NewDomainError("IDENTITY_CONFLICT", "an account with this mail already exists", http.StatusConflict, nil)
}

// NewSessionExpired marks a previously valid credential rejected by the
// booking API. The session for the named class has already been cleared;
// the HTTP layer redirects the visitor to loginRoute.
func NewSessionExpired(class string, loginRoute string) error {
	return NewDomainError("SESSION_EXPIRED", "please sign in again", http.StatusUnauthorized, map[string]any{
		"class":       class,
		"login_route": loginRoute,
	})
}

// NewForbidden marks an insufficient-permission response. The session stays
// valid for other actions.
func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

// NewUpstreamUnavailable wraps a transport failure reaching the booking API.
func NewUpstreamUnavailable(err error) error {
	return &DomainError{
		Code:       "UPSTREAM_UNAVAILABLE",
		Message:    "booking service unavailable",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// IsSessionExpired reports whether err is a stale-session rejection and, if
// so, which login route the visitor should be sent to.
func IsSessionExpired(err error) (loginRoute string, ok bool) {
	de := ToDomainError(err)
	if de == nil || de.Code != "SESSION_EXPIRED" {
		return "", false
	}
	route, _ := de.Details["login_route"].(string)
	return route, true
}
