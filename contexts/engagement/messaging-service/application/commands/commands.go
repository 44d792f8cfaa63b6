package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "helvetia/contexts/engagement/messaging-service/application"
	"helvetia/contexts/engagement/messaging-service/domain/entities"
	domainerrors "helvetia/contexts/engagement/messaging-service/domain/errors"
	"helvetia/contexts/engagement/messaging-service/ports"
	"helvetia/internal/shared/events"
)

const sourceService = "messaging-service"

type StartConversationCommand struct {
	CampaignID string
	BrandID    string
	CreatorID  string
	ActorID    string
}

// StartConversationUseCase opens the thread for a campaign pair. Starting
// an existing conversation returns it instead of failing, so both sides
// can call this blindly.
type StartConversationUseCase struct {
	Repo        ports.MessagingRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc StartConversationUseCase) Execute(ctx context.Context, cmd StartConversationCommand) (entities.Conversation, error) {
	logger := application.ResolveLogger(uc.Logger)

	campaignID := strings.TrimSpace(cmd.CampaignID)
	brandID := strings.TrimSpace(cmd.BrandID)
	creatorID := strings.TrimSpace(cmd.CreatorID)
	actorID := strings.TrimSpace(cmd.ActorID)
	if campaignID == "" || brandID == "" || creatorID == "" {
		return entities.Conversation{}, domainerrors.ErrInvalidMessageInput
	}
	if actorID != brandID && actorID != creatorID {
		return entities.Conversation{}, domainerrors.ErrNotAuthorized
	}

	now := uc.Clock.Now().UTC()
	conversationID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Conversation{}, err
	}
	conversation := entities.Conversation{
		ConversationID: conversationID,
		CampaignID:     campaignID,
		BrandID:        brandID,
		CreatorID:      creatorID,
		LastMessageAt:  now,
		CreatedAt:      now,
	}
	if err := uc.Repo.CreateConversation(ctx, conversation); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateConversation) {
			return uc.Repo.FindConversation(ctx, campaignID, brandID, creatorID)
		}
		return entities.Conversation{}, err
	}

	logger.Info("conversation started",
		"event", "conversation_started",
		"module", "engagement/messaging-service",
		"layer", "application",
		"conversation_id", conversation.ConversationID,
		"campaign_id", campaignID,
	)
	return conversation, nil
}

type SendMessageCommand struct {
	ConversationID string
	SenderID       string
	Content        string
}

// SendMessageUseCase appends a message and queues a notification intent
// for the other participant in the same transaction.
type SendMessageUseCase struct {
	Repo        ports.MessagingRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc SendMessageUseCase) Execute(ctx context.Context, cmd SendMessageCommand) (entities.Message, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !entities.ValidMessageContent(cmd.Content) {
		return entities.Message{}, domainerrors.ErrInvalidMessageInput
	}

	conversation, err := uc.Repo.GetConversation(ctx, strings.TrimSpace(cmd.ConversationID))
	if err != nil {
		return entities.Message{}, err
	}
	if !conversation.HasParticipant(cmd.SenderID) {
		return entities.Message{}, domainerrors.ErrNotAuthorized
	}

	now := uc.Clock.Now().UTC()
	messageID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Message{}, err
	}
	message := entities.Message{
		MessageID:      messageID,
		ConversationID: conversation.ConversationID,
		SenderID:       strings.TrimSpace(cmd.SenderID),
		Content:        strings.TrimSpace(cmd.Content),
		CreatedAt:      now,
	}

	eventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Message{}, err
	}
	intent, err := events.NewEnvelope(eventID, events.TypeNotificationRequested, sourceService, conversation.ConversationID, now, events.NotificationIntent{
		UserID:     conversation.OtherParticipant(message.SenderID),
		Category:   events.CategoryMessage,
		Title:      "New message",
		Body:       "You received a new message.",
		EntityType: "conversation",
		EntityID:   conversation.ConversationID,
	})
	if err != nil {
		return entities.Message{}, err
	}

	if err := uc.Repo.AppendMessage(ctx, message, []ports.EventEnvelope{intent}); err != nil {
		return entities.Message{}, err
	}

	logger.Info("message sent",
		"event", "message_sent",
		"module", "engagement/messaging-service",
		"layer", "application",
		"conversation_id", conversation.ConversationID,
		"message_id", message.MessageID,
	)
	return message, nil
}

type MarkReadCommand struct {
	ConversationID string
	ReaderID       string
}

// MarkReadUseCase marks every message from the other participant read.
type MarkReadUseCase struct {
	Repo   ports.MessagingRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc MarkReadUseCase) Execute(ctx context.Context, cmd MarkReadCommand) (int64, error) {
	conversation, err := uc.Repo.GetConversation(ctx, strings.TrimSpace(cmd.ConversationID))
	if err != nil {
		return 0, err
	}
	if !conversation.HasParticipant(cmd.ReaderID) {
		return 0, domainerrors.ErrNotAuthorized
	}
	return uc.Repo.MarkRead(ctx, conversation.ConversationID, strings.TrimSpace(cmd.ReaderID), uc.Clock.Now().UTC())
}
