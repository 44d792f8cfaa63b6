package ports

import (
	"context"
	"time"

	"helvetia/contexts/engagement/notification-service/domain/entities"
)

type NotificationRepository interface {
	Insert(ctx context.Context, notification entities.Notification) error
	Get(ctx context.Context, notificationID string) (entities.Notification, error)
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]entities.Notification, error)
	MarkRead(ctx context.Context, notificationID string, at time.Time) error
	// MarkAllRead flips every unread notification of the user and
	// reports how many rows changed.
	MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error)
	CountersFor(ctx context.Context, userID string) (entities.Counters, error)
}

// CounterCache holds per-user unread counters ahead of the store.
// Zero overwrites the entry with zeroed buckets so readers see the
// effect of mark-all-read before the store confirms it.
type CounterCache interface {
	Get(ctx context.Context, userID string) (entities.Counters, bool, error)
	Set(ctx context.Context, userID string, counters entities.Counters) error
	Zero(ctx context.Context, userID string) error
	Invalidate(ctx context.Context, userID string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
