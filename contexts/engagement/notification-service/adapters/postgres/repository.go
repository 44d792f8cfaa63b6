package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"helvetia/contexts/engagement/notification-service/domain/entities"
	domainerrors "helvetia/contexts/engagement/notification-service/domain/errors"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Insert(ctx context.Context, notification entities.Notification) error {
	row := modelFromEntity(notification)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) Get(ctx context.Context, notificationID string) (entities.Notification, error) {
	var row notificationModel
	err := r.db.WithContext(ctx).
		Where("notification_id = ?", strings.TrimSpace(notificationID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Notification{}, domainerrors.ErrNotificationNotFound
		}
		return entities.Notification{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListByUser(
	ctx context.Context,
	userID string,
	unreadOnly bool,
	limit int,
) ([]entities.Notification, error) {
	if limit <= 0 {
		limit = 100
	}
	query := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Order("created_at DESC").
		Limit(limit)
	if unreadOnly {
		query = query.Where("is_read = FALSE")
	}

	var rows []notificationModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Notification, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) MarkRead(ctx context.Context, notificationID string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("notification_id = ?", strings.TrimSpace(notificationID)).
		Updates(map[string]any{
			"is_read": true,
			"read_at": at.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotificationNotFound
	}
	return nil
}

func (r *Repository) MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("user_id = ? AND is_read = FALSE", strings.TrimSpace(userID)).
		Updates(map[string]any{
			"is_read": true,
			"read_at": at.UTC(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *Repository) CountersFor(ctx context.Context, userID string) (entities.Counters, error) {
	var rows []struct {
		Category string
		Count    int64
	}
	err := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Select("category, COUNT(*) AS count").
		Where("user_id = ? AND is_read = FALSE", strings.TrimSpace(userID)).
		Group("category").
		Scan(&rows).
		Error
	if err != nil {
		return entities.Counters{}, err
	}

	var counters entities.Counters
	for _, row := range rows {
		counters.Add(row.Category, row.Count)
	}
	return counters, nil
}

// SystemClock is the default runtime clock implementation.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator creates UUIDv4 identifiers for notifications.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type notificationModel struct {
	NotificationID string     `gorm:"column:notification_id;primaryKey"`
	UserID         string     `gorm:"column:user_id"`
	Category       string     `gorm:"column:category"`
	Title          string     `gorm:"column:title"`
	Body           string     `gorm:"column:body"`
	EntityType     string     `gorm:"column:entity_type"`
	EntityID       string     `gorm:"column:entity_id"`
	IsRead         bool       `gorm:"column:is_read"`
	ReadAt         *time.Time `gorm:"column:read_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
}

func (notificationModel) TableName() string {
	return "notifications"
}

func modelFromEntity(item entities.Notification) notificationModel {
	return notificationModel{
		NotificationID: strings.TrimSpace(item.NotificationID),
		UserID:         strings.TrimSpace(item.UserID),
		Category:       strings.TrimSpace(item.Category),
		Title:          item.Title,
		Body:           item.Body,
		EntityType:     item.EntityType,
		EntityID:       item.EntityID,
		IsRead:         item.IsRead,
		ReadAt:         item.ReadAt,
		CreatedAt:      item.CreatedAt.UTC(),
	}
}

func (m notificationModel) toEntity() entities.Notification {
	return entities.Notification{
		NotificationID: m.NotificationID,
		UserID:         m.UserID,
		Category:       m.Category,
		Title:          m.Title,
		Body:           m.Body,
		EntityType:     m.EntityType,
		EntityID:       m.EntityID,
		IsRead:         m.IsRead,
		ReadAt:         m.ReadAt,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}
