package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"helvetia/contexts/engagement/messaging-service/application/commands"
	"helvetia/contexts/engagement/messaging-service/application/queries"
	"helvetia/contexts/engagement/messaging-service/domain/entities"
	httptransport "helvetia/contexts/engagement/messaging-service/transport/http"
)

type Handler struct {
	StartConversation commands.StartConversationUseCase
	SendMessage       commands.SendMessageUseCase
	MarkRead          commands.MarkReadUseCase
	ListConversations queries.ListConversationsUseCase
	ListMessages      queries.ListMessagesUseCase
	Logger            *slog.Logger
}

func (h Handler) StartConversationHandler(
	ctx context.Context,
	userID string,
	req httptransport.StartConversationRequest,
) (httptransport.StartConversationResponse, error) {
	conversation, err := h.StartConversation.Execute(ctx, commands.StartConversationCommand{
		CampaignID: req.CampaignID,
		BrandID:    req.BrandID,
		CreatorID:  req.CreatorID,
		ActorID:    userID,
	})
	if err != nil {
		return httptransport.StartConversationResponse{}, err
	}
	return httptransport.StartConversationResponse{
		Conversation: mapConversation(conversation, 0),
	}, nil
}

func (h Handler) SendMessageHandler(
	ctx context.Context,
	userID string,
	conversationID string,
	req httptransport.SendMessageRequest,
) (httptransport.SendMessageResponse, error) {
	message, err := h.SendMessage.Execute(ctx, commands.SendMessageCommand{
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        req.Content,
	})
	if err != nil {
		return httptransport.SendMessageResponse{}, err
	}
	return httptransport.SendMessageResponse{Message: mapMessage(message)}, nil
}

func (h Handler) MarkReadHandler(ctx context.Context, userID string, conversationID string) (httptransport.MarkReadResponse, error) {
	updated, err := h.MarkRead.Execute(ctx, commands.MarkReadCommand{
		ConversationID: conversationID,
		ReaderID:       userID,
	})
	if err != nil {
		return httptransport.MarkReadResponse{}, err
	}
	return httptransport.MarkReadResponse{Updated: updated}, nil
}

func (h Handler) ListConversationsHandler(ctx context.Context, userID string) (httptransport.ListConversationsResponse, error) {
	views, err := h.ListConversations.Execute(ctx, userID)
	if err != nil {
		return httptransport.ListConversationsResponse{}, err
	}
	items := make([]httptransport.ConversationDTO, 0, len(views))
	for _, view := range views {
		items = append(items, mapConversation(view.Conversation, view.UnreadCount))
	}
	return httptransport.ListConversationsResponse{Items: items}, nil
}

func (h Handler) ListMessagesHandler(
	ctx context.Context,
	userID string,
	conversationID string,
	limit int,
) (httptransport.ListMessagesResponse, error) {
	messages, err := h.ListMessages.Execute(ctx, conversationID, userID, limit)
	if err != nil {
		return httptransport.ListMessagesResponse{}, err
	}
	items := make([]httptransport.MessageDTO, 0, len(messages))
	for _, message := range messages {
		items = append(items, mapMessage(message))
	}
	return httptransport.ListMessagesResponse{Items: items}, nil
}

func mapConversation(item entities.Conversation, unread int64) httptransport.ConversationDTO {
	return httptransport.ConversationDTO{
		ConversationID: item.ConversationID,
		CampaignID:     item.CampaignID,
		BrandID:        item.BrandID,
		CreatorID:      item.CreatorID,
		LastMessageAt:  item.LastMessageAt.Format(time.RFC3339),
		UnreadCount:    unread,
	}
}

func mapMessage(item entities.Message) httptransport.MessageDTO {
	result := httptransport.MessageDTO{
		MessageID:      item.MessageID,
		ConversationID: item.ConversationID,
		SenderID:       item.SenderID,
		Content:        item.Content,
		CreatedAt:      item.CreatedAt.Format(time.RFC3339),
	}
	if item.ReadAt != nil {
		result.ReadAt = item.ReadAt.UTC().Format(time.RFC3339)
	}
	return result
}
