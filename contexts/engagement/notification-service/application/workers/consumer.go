package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "helvetia/contexts/engagement/notification-service/application"
	"helvetia/contexts/engagement/notification-service/application/commands"
	contractsv1 "helvetia/contracts/gen/events/v1"
	"helvetia/internal/shared/events"
)

const dedupTTL = 7 * 24 * time.Hour

// EventDedup reserves event ids so replayed events are processed once.
type EventDedup interface {
	ReserveEvent(ctx context.Context, eventID string, payloadHash string, expiresAt time.Time) (bool, error)
}

// Consumer is the delivery half of the outbox pattern: it turns
// notification.requested events into stored notification rows.
type Consumer struct {
	Record commands.RecordNotificationUseCase
	Dedup  EventDedup
	Logger *slog.Logger
}

func (c Consumer) Handle(ctx context.Context, envelope contractsv1.Envelope) error {
	logger := application.ResolveLogger(c.Logger)

	processed, err := c.Dedup.ReserveEvent(ctx, envelope.EventID, events.PayloadHash(envelope.Data), time.Now().UTC().Add(dedupTTL))
	if err != nil {
		return err
	}
	if processed {
		return nil
	}

	if envelope.EventType != events.TypeNotificationRequested {
		logger.Debug("ignoring event",
			"event", "notification_consumer_skipped",
			"module", "engagement/notification-service",
			"layer", "worker",
			"event_type", envelope.EventType,
		)
		return nil
	}

	var intent events.NotificationIntent
	if err := json.Unmarshal(envelope.Data, &intent); err != nil {
		return err
	}
	_, err = c.Record.Execute(ctx, commands.RecordNotificationCommand{
		UserID:     intent.UserID,
		Category:   intent.Category,
		Title:      intent.Title,
		Body:       intent.Body,
		EntityType: intent.EntityType,
		EntityID:   intent.EntityID,
	})
	return err
}
