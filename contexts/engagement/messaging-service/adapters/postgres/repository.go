package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"helvetia/contexts/engagement/messaging-service/domain/entities"
	domainerrors "helvetia/contexts/engagement/messaging-service/domain/errors"
	"helvetia/contexts/engagement/messaging-service/ports"
	"helvetia/internal/shared/outbox"
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

func (r *Repository) CreateConversation(ctx context.Context, conversation entities.Conversation) error {
	row := conversationModelFromEntity(conversation)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateConversation
		}
		return err
	}
	return nil
}

func (r *Repository) GetConversation(ctx context.Context, conversationID string) (entities.Conversation, error) {
	var row conversationModel
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", strings.TrimSpace(conversationID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Conversation{}, domainerrors.ErrConversationNotFound
		}
		return entities.Conversation{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) FindConversation(
	ctx context.Context,
	campaignID string,
	brandID string,
	creatorID string,
) (entities.Conversation, error) {
	var row conversationModel
	err := r.db.WithContext(ctx).
		Where(
			"campaign_id = ? AND brand_id = ? AND creator_id = ?",
			strings.TrimSpace(campaignID), strings.TrimSpace(brandID), strings.TrimSpace(creatorID),
		).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Conversation{}, domainerrors.ErrConversationNotFound
		}
		return entities.Conversation{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListConversations(ctx context.Context, userID string) ([]entities.Conversation, error) {
	trimmed := strings.TrimSpace(userID)
	var rows []conversationModel
	if err := r.db.WithContext(ctx).
		Where("brand_id = ? OR creator_id = ?", trimmed, trimmed).
		Order("last_message_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Conversation, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) AppendMessage(ctx context.Context, message entities.Message, envelopes []ports.EventEnvelope) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&conversationModel{}).
			Where("conversation_id = ?", strings.TrimSpace(message.ConversationID)).
			Update("last_message_at", message.CreatedAt.UTC())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrConversationNotFound
		}

		row := messageModelFromEntity(message)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		for _, envelope := range envelopes {
			if err := outbox.InsertTx(tx, envelope); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) ListMessages(ctx context.Context, conversationID string, limit int) ([]entities.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []messageModel
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", strings.TrimSpace(conversationID)).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Message, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) MarkRead(ctx context.Context, conversationID string, readerID string, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&messageModel{}).
		Where(
			"conversation_id = ? AND sender_id <> ? AND read_at IS NULL",
			strings.TrimSpace(conversationID), strings.TrimSpace(readerID),
		).
		Update("read_at", at.UTC())
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *Repository) CountUnread(ctx context.Context, conversationID string, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&messageModel{}).
		Where(
			"conversation_id = ? AND sender_id <> ? AND read_at IS NULL",
			strings.TrimSpace(conversationID), strings.TrimSpace(userID),
		).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SystemClock is the default runtime clock implementation.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator creates UUIDv4 identifiers for conversations and messages.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type conversationModel struct {
	ConversationID string    `gorm:"column:conversation_id;primaryKey"`
	CampaignID     string    `gorm:"column:campaign_id"`
	BrandID        string    `gorm:"column:brand_id"`
	CreatorID      string    `gorm:"column:creator_id"`
	LastMessageAt  time.Time `gorm:"column:last_message_at"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (conversationModel) TableName() string {
	return "conversations"
}

func conversationModelFromEntity(item entities.Conversation) conversationModel {
	return conversationModel{
		ConversationID: strings.TrimSpace(item.ConversationID),
		CampaignID:     strings.TrimSpace(item.CampaignID),
		BrandID:        strings.TrimSpace(item.BrandID),
		CreatorID:      strings.TrimSpace(item.CreatorID),
		LastMessageAt:  item.LastMessageAt.UTC(),
		CreatedAt:      item.CreatedAt.UTC(),
	}
}

func (m conversationModel) toEntity() entities.Conversation {
	return entities.Conversation{
		ConversationID: m.ConversationID,
		CampaignID:     m.CampaignID,
		BrandID:        m.BrandID,
		CreatorID:      m.CreatorID,
		LastMessageAt:  m.LastMessageAt.UTC(),
		CreatedAt:      m.CreatedAt.UTC(),
	}
}

type messageModel struct {
	MessageID      string     `gorm:"column:message_id;primaryKey"`
	ConversationID string     `gorm:"column:conversation_id"`
	SenderID       string     `gorm:"column:sender_id"`
	Content        string     `gorm:"column:content"`
	ReadAt         *time.Time `gorm:"column:read_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
}

func (messageModel) TableName() string {
	return "messages"
}

func messageModelFromEntity(item entities.Message) messageModel {
	return messageModel{
		MessageID:      strings.TrimSpace(item.MessageID),
		ConversationID: strings.TrimSpace(item.ConversationID),
		SenderID:       strings.TrimSpace(item.SenderID),
		Content:        item.Content,
		ReadAt:         item.ReadAt,
		CreatedAt:      item.CreatedAt.UTC(),
	}
}

func (m messageModel) toEntity() entities.Message {
	return entities.Message{
		MessageID:      m.MessageID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		ReadAt:         m.ReadAt,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
