package messagingservice

import (
	"context"
	"errors"
	"strings"
	"testing"

	domainerrors "helvetia/contexts/engagement/messaging-service/domain/errors"
	httptransport "helvetia/contexts/engagement/messaging-service/transport/http"
	"helvetia/internal/shared/events"
)

func startConversation(t *testing.T, module Module) httptransport.ConversationDTO {
	t.Helper()
	resp, err := module.Handler.StartConversationHandler(context.Background(), "brand-1", httptransport.StartConversationRequest{
		CampaignID: "camp-1",
		BrandID:    "brand-1",
		CreatorID:  "creator-1",
	})
	if err != nil {
		t.Fatalf("start conversation failed: %v", err)
	}
	return resp.Conversation
}

func TestStartConversationIsIdempotentPerPair(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	first := startConversation(t, module)
	resp, err := module.Handler.StartConversationHandler(ctx, "creator-1", httptransport.StartConversationRequest{
		CampaignID: "camp-1",
		BrandID:    "brand-1",
		CreatorID:  "creator-1",
	})
	if err != nil {
		t.Fatalf("second start failed: %v", err)
	}
	if resp.Conversation.ConversationID != first.ConversationID {
		t.Fatalf("expected same conversation, got %s and %s", first.ConversationID, resp.Conversation.ConversationID)
	}

	_, err = module.Handler.StartConversationHandler(ctx, "someone-else", httptransport.StartConversationRequest{
		CampaignID: "camp-1",
		BrandID:    "brand-1",
		CreatorID:  "creator-1",
	})
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized for outsider, got %v", err)
	}
}

func TestSendMessageValidatesBeforeWrite(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()
	conversation := startConversation(t, module)

	_, err := module.Handler.SendMessageHandler(ctx, "brand-1", conversation.ConversationID, httptransport.SendMessageRequest{
		Content: "   ",
	})
	if !errors.Is(err, domainerrors.ErrInvalidMessageInput) {
		t.Fatalf("expected invalid input for blank message, got %v", err)
	}

	_, err = module.Handler.SendMessageHandler(ctx, "brand-1", conversation.ConversationID, httptransport.SendMessageRequest{
		Content: strings.Repeat("x", 2001),
	})
	if !errors.Is(err, domainerrors.ErrInvalidMessageInput) {
		t.Fatalf("expected invalid input for oversized message, got %v", err)
	}

	messages, err := module.Handler.ListMessagesHandler(ctx, "brand-1", conversation.ConversationID, 0)
	if err != nil {
		t.Fatalf("list messages failed: %v", err)
	}
	if len(messages.Items) != 0 {
		t.Fatalf("rejected messages must not be stored, got %d", len(messages.Items))
	}
}

func TestSendMessageNotifiesOtherParticipant(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()
	conversation := startConversation(t, module)

	_, err := module.Handler.SendMessageHandler(ctx, "outsider", conversation.ConversationID, httptransport.SendMessageRequest{
		Content: "hello",
	})
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized for outsider, got %v", err)
	}

	if _, err := module.Handler.SendMessageHandler(ctx, "brand-1", conversation.ConversationID, httptransport.SendMessageRequest{
		Content: "Hi, when can you start?",
	}); err != nil {
		t.Fatalf("send message failed: %v", err)
	}

	envelopes := module.Store.Outbox()
	if len(envelopes) != 1 {
		t.Fatalf("expected one notification intent, got %d", len(envelopes))
	}
	if envelopes[0].EventType != events.TypeNotificationRequested {
		t.Fatalf("expected notification.requested, got %s", envelopes[0].EventType)
	}
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()
	conversation := startConversation(t, module)

	for _, content := range []string{"first", "second", "third"} {
		if _, err := module.Handler.SendMessageHandler(ctx, "brand-1", conversation.ConversationID, httptransport.SendMessageRequest{
			Content: content,
		}); err != nil {
			t.Fatalf("send message failed: %v", err)
		}
	}

	listed, err := module.Handler.ListConversationsHandler(ctx, "creator-1")
	if err != nil {
		t.Fatalf("list conversations failed: %v", err)
	}
	if len(listed.Items) != 1 || listed.Items[0].UnreadCount != 3 {
		t.Fatalf("expected 3 unread for creator, got %+v", listed.Items)
	}

	// The sender's own messages never count as unread for them.
	brandView, err := module.Handler.ListConversationsHandler(ctx, "brand-1")
	if err != nil {
		t.Fatalf("list conversations failed: %v", err)
	}
	if brandView.Items[0].UnreadCount != 0 {
		t.Fatalf("expected 0 unread for sender, got %d", brandView.Items[0].UnreadCount)
	}

	marked, err := module.Handler.MarkReadHandler(ctx, "creator-1", conversation.ConversationID)
	if err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	if marked.Updated != 3 {
		t.Fatalf("expected 3 messages marked, got %d", marked.Updated)
	}

	listed, err = module.Handler.ListConversationsHandler(ctx, "creator-1")
	if err != nil {
		t.Fatalf("list conversations failed: %v", err)
	}
	if listed.Items[0].UnreadCount != 0 {
		t.Fatalf("expected 0 unread after mark read, got %d", listed.Items[0].UnreadCount)
	}
}
