package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"helvetia/contexts/engagement/notification-service/application/commands"
	"helvetia/contexts/engagement/notification-service/application/queries"
	"helvetia/contexts/engagement/notification-service/domain/entities"
	httptransport "helvetia/contexts/engagement/notification-service/transport/http"
)

type Handler struct {
	MarkRead    commands.MarkReadUseCase
	MarkAllRead commands.MarkAllReadUseCase
	List        queries.ListNotificationsUseCase
	Counters    queries.GetCountersUseCase
	Logger      *slog.Logger
}

func (h Handler) ListNotificationsHandler(
	ctx context.Context,
	userID string,
	unreadOnly bool,
	limit int,
) (httptransport.ListNotificationsResponse, error) {
	items, err := h.List.Execute(ctx, userID, unreadOnly, limit)
	if err != nil {
		return httptransport.ListNotificationsResponse{}, err
	}
	dtos := make([]httptransport.NotificationDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, mapNotification(item))
	}
	return httptransport.ListNotificationsResponse{Items: dtos}, nil
}

func (h Handler) GetCountersHandler(ctx context.Context, userID string) (httptransport.CountersResponse, error) {
	counters, err := h.Counters.Execute(ctx, userID)
	if err != nil {
		return httptransport.CountersResponse{}, err
	}
	return httptransport.CountersResponse{
		Total:        counters.Total,
		Messages:     counters.Messages,
		Applications: counters.Applications,
		Deliverables: counters.Deliverables,
	}, nil
}

func (h Handler) MarkReadHandler(ctx context.Context, userID string, notificationID string) error {
	return h.MarkRead.Execute(ctx, commands.MarkReadCommand{
		NotificationID: notificationID,
		ReaderID:       userID,
	})
}

func (h Handler) MarkAllReadHandler(ctx context.Context, userID string) (httptransport.MarkAllReadResponse, error) {
	updated, err := h.MarkAllRead.Execute(ctx, commands.MarkAllReadCommand{UserID: userID})
	if err != nil {
		return httptransport.MarkAllReadResponse{}, err
	}
	return httptransport.MarkAllReadResponse{Updated: updated}, nil
}

func mapNotification(item entities.Notification) httptransport.NotificationDTO {
	result := httptransport.NotificationDTO{
		NotificationID: item.NotificationID,
		UserID:         item.UserID,
		Category:       item.Category,
		Title:          item.Title,
		Body:           item.Body,
		EntityType:     item.EntityType,
		EntityID:       item.EntityID,
		IsRead:         item.IsRead,
		CreatedAt:      item.CreatedAt.Format(time.RFC3339),
	}
	if item.ReadAt != nil {
		result.ReadAt = item.ReadAt.UTC().Format(time.RFC3339)
	}
	return result
}
