package queries

import (
	"context"
	"log/slog"
	"strings"

	"helvetia/contexts/engagement/messaging-service/domain/entities"
	domainerrors "helvetia/contexts/engagement/messaging-service/domain/errors"
	"helvetia/contexts/engagement/messaging-service/ports"
)

// ConversationView pairs a conversation with the caller's unread count.
type ConversationView struct {
	Conversation entities.Conversation
	UnreadCount  int64
}

type ListConversationsUseCase struct {
	Repo   ports.MessagingRepository
	Logger *slog.Logger
}

func (uc ListConversationsUseCase) Execute(ctx context.Context, userID string) ([]ConversationView, error) {
	items, err := uc.Repo.ListConversations(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	views := make([]ConversationView, 0, len(items))
	for _, item := range items {
		unread, err := uc.Repo.CountUnread(ctx, item.ConversationID, strings.TrimSpace(userID))
		if err != nil {
			return nil, err
		}
		views = append(views, ConversationView{Conversation: item, UnreadCount: unread})
	}
	return views, nil
}

type ListMessagesUseCase struct {
	Repo   ports.MessagingRepository
	Logger *slog.Logger
}

func (uc ListMessagesUseCase) Execute(
	ctx context.Context,
	conversationID string,
	userID string,
	limit int,
) ([]entities.Message, error) {
	conversation, err := uc.Repo.GetConversation(ctx, strings.TrimSpace(conversationID))
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, domainerrors.ErrNotAuthorized
	}
	return uc.Repo.ListMessages(ctx, conversation.ConversationID, limit)
}
