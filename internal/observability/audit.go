package observability

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/hotel-front/internal/events"
)

// RegisterAuditSinks subscribes a structured audit log line and a metrics
// increment to every authentication event.
func RegisterAuditSinks(dispatcher events.Dispatcher, logger *zap.Logger, metrics *Metrics) {
	dispatcher.SubscribeAll(func(_ context.Context, event events.Event) error {
		fields := []zap.Field{
			zap.String("event", string(event.Type)),
			zap.String("class", string(event.Class)),
		}
		if event.ProfileID != "" {
			fields = append(fields, zap.String("profile_id", event.ProfileID))
		}
		if event.Role != "" {
			fields = append(fields, zap.String("role", string(event.Role)))
		}
		if event.Reason != "" {
			fields = append(fields, zap.String("reason", event.Reason))
		}
		logger.Info("auth event", fields...)

		if metrics != nil {
			metrics.AuthEvents.WithLabelValues(string(event.Type), string(event.Class)).Inc()
		}
		return nil
	})
}
