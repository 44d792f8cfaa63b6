package queries

import (
	"context"
	"log/slog"
	"strings"

	application "helvetia/contexts/engagement/notification-service/application"
	"helvetia/contexts/engagement/notification-service/domain/entities"
	domainerrors "helvetia/contexts/engagement/notification-service/domain/errors"
	"helvetia/contexts/engagement/notification-service/ports"
)

type ListNotificationsUseCase struct {
	Repo   ports.NotificationRepository
	Logger *slog.Logger
}

func (uc ListNotificationsUseCase) Execute(
	ctx context.Context,
	userID string,
	unreadOnly bool,
	limit int,
) ([]entities.Notification, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domainerrors.ErrInvalidNotificationInput
	}
	return uc.Repo.ListByUser(ctx, strings.TrimSpace(userID), unreadOnly, limit)
}

// GetCountersUseCase serves unread counters cache-aside: a hit returns
// immediately, a miss recomputes from the store and refills the cache.
type GetCountersUseCase struct {
	Repo   ports.NotificationRepository
	Cache  ports.CounterCache
	Logger *slog.Logger
}

func (uc GetCountersUseCase) Execute(ctx context.Context, userID string) (entities.Counters, error) {
	logger := application.ResolveLogger(uc.Logger)
	trimmed := strings.TrimSpace(userID)
	if trimmed == "" {
		return entities.Counters{}, domainerrors.ErrInvalidNotificationInput
	}

	cached, hit, err := uc.Cache.Get(ctx, trimmed)
	if err != nil {
		logger.Warn("counter cache read failed",
			"event", "notification_counter_cache_read_failed",
			"module", "engagement/notification-service",
			"layer", "application",
			"user_id", trimmed,
			"error", err,
		)
	} else if hit {
		return cached, nil
	}

	counters, err := uc.Repo.CountersFor(ctx, trimmed)
	if err != nil {
		return entities.Counters{}, err
	}
	if err := uc.Cache.Set(ctx, trimmed, counters); err != nil {
		logger.Warn("counter cache write failed",
			"event", "notification_counter_cache_write_failed",
			"module", "engagement/notification-service",
			"layer", "application",
			"user_id", trimmed,
			"error", err,
		)
	}
	return counters, nil
}
