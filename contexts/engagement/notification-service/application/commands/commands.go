package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "helvetia/contexts/engagement/notification-service/application"
	"helvetia/contexts/engagement/notification-service/domain/entities"
	domainerrors "helvetia/contexts/engagement/notification-service/domain/errors"
	"helvetia/contexts/engagement/notification-service/ports"
)

type RecordNotificationCommand struct {
	UserID     string
	Category   string
	Title      string
	Body       string
	EntityType string
	EntityID   string
}

// RecordNotificationUseCase inserts a notification row for a user and
// drops the user's cached counters so the next read recomputes them.
type RecordNotificationUseCase struct {
	Repo        ports.NotificationRepository
	Cache       ports.CounterCache
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc RecordNotificationUseCase) Execute(ctx context.Context, cmd RecordNotificationCommand) (entities.Notification, error) {
	logger := application.ResolveLogger(uc.Logger)

	notificationID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Notification{}, fmt.Errorf("generate notification id: %w", err)
	}

	notification := entities.Notification{
		NotificationID: notificationID,
		UserID:         strings.TrimSpace(cmd.UserID),
		Category:       strings.TrimSpace(cmd.Category),
		Title:          strings.TrimSpace(cmd.Title),
		Body:           strings.TrimSpace(cmd.Body),
		EntityType:     strings.TrimSpace(cmd.EntityType),
		EntityID:       strings.TrimSpace(cmd.EntityID),
		CreatedAt:      uc.Clock.Now().UTC(),
	}
	if !notification.Validate() {
		return entities.Notification{}, domainerrors.ErrInvalidNotificationInput
	}

	if err := uc.Repo.Insert(ctx, notification); err != nil {
		return entities.Notification{}, fmt.Errorf("insert notification: %w", err)
	}
	if err := uc.Cache.Invalidate(ctx, notification.UserID); err != nil {
		logger.Warn("counter cache invalidation failed",
			"event", "notification_counter_invalidate_failed",
			"module", "engagement/notification-service",
			"layer", "application",
			"user_id", notification.UserID,
			"error", err,
		)
	}

	logger.Info("notification recorded",
		"event", "notification_recorded",
		"module", "engagement/notification-service",
		"layer", "application",
		"notification_id", notification.NotificationID,
		"user_id", notification.UserID,
		"category", notification.Category,
	)
	return notification, nil
}

type MarkReadCommand struct {
	NotificationID string
	ReaderID       string
}

type MarkReadUseCase struct {
	Repo   ports.NotificationRepository
	Cache  ports.CounterCache
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc MarkReadUseCase) Execute(ctx context.Context, cmd MarkReadCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	notification, err := uc.Repo.Get(ctx, cmd.NotificationID)
	if err != nil {
		return err
	}
	if notification.UserID != strings.TrimSpace(cmd.ReaderID) {
		return domainerrors.ErrNotAuthorized
	}
	if notification.IsRead {
		return nil
	}

	if err := uc.Repo.MarkRead(ctx, notification.NotificationID, uc.Clock.Now().UTC()); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if err := uc.Cache.Invalidate(ctx, notification.UserID); err != nil {
		logger.Warn("counter cache invalidation failed",
			"event", "notification_counter_invalidate_failed",
			"module", "engagement/notification-service",
			"layer", "application",
			"user_id", notification.UserID,
			"error", err,
		)
	}
	return nil
}

type MarkAllReadCommand struct {
	UserID string
}

// MarkAllReadUseCase zeroes the cached counters before touching the
// store, so badge reads go to zero the moment the user clears the tray.
type MarkAllReadUseCase struct {
	Repo   ports.NotificationRepository
	Cache  ports.CounterCache
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc MarkAllReadUseCase) Execute(ctx context.Context, cmd MarkAllReadCommand) (int64, error) {
	logger := application.ResolveLogger(uc.Logger)
	userID := strings.TrimSpace(cmd.UserID)
	if userID == "" {
		return 0, domainerrors.ErrInvalidNotificationInput
	}

	if err := uc.Cache.Zero(ctx, userID); err != nil {
		logger.Warn("counter cache zero failed",
			"event", "notification_counter_zero_failed",
			"module", "engagement/notification-service",
			"layer", "application",
			"user_id", userID,
			"error", err,
		)
	}

	updated, err := uc.Repo.MarkAllRead(ctx, userID, uc.Clock.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}

	logger.Info("notifications cleared",
		"event", "notifications_cleared",
		"module", "engagement/notification-service",
		"layer", "application",
		"user_id", userID,
		"updated", updated,
	)
	return updated, nil
}
