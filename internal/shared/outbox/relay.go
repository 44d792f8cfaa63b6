package outbox

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	contractsv1 "helvetia/contracts/gen/events/v1"
)

type Repository interface {
	ListPending(ctx context.Context, limit int) ([]Message, error)
	MarkPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type Publisher interface {
	Publish(ctx context.Context, topic string, event contractsv1.Envelope) error
}

// Relay publishes pending outbox rows to the event bus. Topics are the
// event types, so consumers subscribe by type.
type Relay struct {
	Outbox    Repository
	Publisher Publisher
	BatchSize int
	Logger    *slog.Logger
}

func (r Relay) RunOnce(ctx context.Context) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPending(ctx, limit)
	if err != nil {
		logger.Error("outbox list failed",
			"event", "outbox_list_failed",
			"module", "internal/shared/outbox",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	for _, row := range pending {
		var event contractsv1.Envelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("outbox decode failed",
				"event", "outbox_decode_failed",
				"module", "internal/shared/outbox",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}

		topic := event.EventType
		if topic == "" {
			topic = row.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("outbox publish failed",
				"event", "outbox_publish_failed",
				"module", "internal/shared/outbox",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"event_type", event.EventType,
				"topic", topic,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkPublished(ctx, row.OutboxID, now); err != nil {
			logger.Error("outbox mark published failed",
				"event", "outbox_mark_published_failed",
				"module", "internal/shared/outbox",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
	}

	if len(pending) > 0 {
		logger.Info("outbox relay cycle completed",
			"event", "outbox_relay_completed",
			"module", "internal/shared/outbox",
			"layer", "worker",
			"published_count", len(pending),
		)
	}
	return nil
}
