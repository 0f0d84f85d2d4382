package events

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/hotel-front/internal/identity"
)

func TestDispatcherRouting(t *testing.T) {
	d := NewInMemoryDispatcher()

	var typed, all []Event
	d.Subscribe(EventLoginSucceeded, func(_ context.Context, e Event) error {
		typed = append(typed, e)
		return nil
	})
	d.SubscribeAll(func(_ context.Context, e Event) error {
		all = append(all, e)
		return nil
	})

	d.Publish(context.Background(), NewEvent(EventLoginSucceeded, identity.Customer))
	d.Publish(context.Background(), NewEvent(EventLoggedOut, identity.Customer))

	if len(typed) != 1 || typed[0].Type != EventLoginSucceeded {
		t.Errorf("typed handler saw %+v", typed)
	}
	if len(all) != 2 {
		t.Errorf("catch-all handler saw %d events, want 2", len(all))
	}
}

func TestDispatcherSwallowsHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()

	var second bool
	d.SubscribeAll(func(context.Context, Event) error { return errors.New("sink down") })
	d.SubscribeAll(func(context.Context, Event) error {
		second = true
		return nil
	})

	d.Publish(context.Background(), NewEvent(EventLoginFailed, identity.Staff))
	if !second {
		t.Error("handler error stopped later handlers")
	}
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventSessionInvalidated, identity.Staff)
	if e.Type != EventSessionInvalidated || e.Class != identity.ClassStaff {
		t.Errorf("event = %+v", e)
	}
	if e.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}
