package ports

import (
	"context"
	"time"

	"helvetia/contexts/engagement/messaging-service/domain/entities"
	contractsv1 "helvetia/contracts/gen/events/v1"
)

type EventEnvelope = contractsv1.Envelope

type MessagingRepository interface {
	CreateConversation(ctx context.Context, conversation entities.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (entities.Conversation, error)
	FindConversation(ctx context.Context, campaignID string, brandID string, creatorID string) (entities.Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]entities.Conversation, error)
	// AppendMessage stores the message, bumps the conversation's
	// last_message_at, and appends the outbox envelopes atomically.
	AppendMessage(ctx context.Context, message entities.Message, outbox []EventEnvelope) error
	ListMessages(ctx context.Context, conversationID string, limit int) ([]entities.Message, error)
	MarkRead(ctx context.Context, conversationID string, readerID string, at time.Time) (int64, error)
	CountUnread(ctx context.Context, conversationID string, userID string) (int64, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
