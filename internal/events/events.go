package events

import (
	"time"

	"github.com/spec-kit/hotel-front/internal/identity"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded     EventType = "login_succeeded"
	EventLoginFailed        EventType = "login_failed"
	EventRegistered         EventType = "registered"
	EventLoggedOut          EventType = "logged_out"
	EventSessionInvalidated EventType = "session_invalidated"
)

// Event represents an authentication event emitted by the auth flows and
// the request authorizer.
type Event struct {
	Type      EventType          `json:"type"`
	Class     identity.ClassName `json:"class"`
	ProfileID string             `json:"profile_id,omitempty"`
	Role      identity.Role      `json:"role,omitempty"`
	Reason    string             `json:"reason,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

// NewEvent builds an event stamped with the current time.
func NewEvent(eventType EventType, class identity.Class) Event {
	return Event{Type: eventType, Class: class.Name, Timestamp: time.Now()}
}
