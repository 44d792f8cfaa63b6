package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"helvetia/contexts/engagement/messaging-service/domain/entities"
	domainerrors "helvetia/contexts/engagement/messaging-service/domain/errors"
	"helvetia/contexts/engagement/messaging-service/ports"
)

type Store struct {
	mu sync.RWMutex

	conversations map[string]entities.Conversation
	messages      map[string][]entities.Message
	outbox        []ports.EventEnvelope

	now time.Time
}

func NewStore() *Store {
	return &Store{
		conversations: make(map[string]entities.Conversation),
		messages:      make(map[string][]entities.Message),
	}
}

func (s *Store) CreateConversation(_ context.Context, conversation entities.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.conversations {
		if existing.CampaignID == conversation.CampaignID &&
			existing.BrandID == conversation.BrandID &&
			existing.CreatorID == conversation.CreatorID {
			return domainerrors.ErrDuplicateConversation
		}
	}
	s.conversations[conversation.ConversationID] = conversation
	return nil
}

func (s *Store) GetConversation(_ context.Context, conversationID string) (entities.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.conversations[strings.TrimSpace(conversationID)]
	if !exists {
		return entities.Conversation{}, domainerrors.ErrConversationNotFound
	}
	return item, nil
}

func (s *Store) FindConversation(
	_ context.Context,
	campaignID string,
	brandID string,
	creatorID string,
) (entities.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.conversations {
		if item.CampaignID == strings.TrimSpace(campaignID) &&
			item.BrandID == strings.TrimSpace(brandID) &&
			item.CreatorID == strings.TrimSpace(creatorID) {
			return item, nil
		}
	}
	return entities.Conversation{}, domainerrors.ErrConversationNotFound
}

func (s *Store) ListConversations(_ context.Context, userID string) ([]entities.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Conversation, 0)
	for _, item := range s.conversations {
		if item.HasParticipant(userID) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].LastMessageAt.After(items[j].LastMessageAt)
	})
	return items, nil
}

func (s *Store) AppendMessage(_ context.Context, message entities.Message, outbox []ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conversation, exists := s.conversations[message.ConversationID]
	if !exists {
		return domainerrors.ErrConversationNotFound
	}
	conversation.LastMessageAt = message.CreatedAt
	s.conversations[message.ConversationID] = conversation
	s.messages[message.ConversationID] = append(s.messages[message.ConversationID], message)
	s.outbox = append(s.outbox, outbox...)
	return nil
}

func (s *Store) ListMessages(_ context.Context, conversationID string, limit int) ([]entities.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.conversations[strings.TrimSpace(conversationID)]; !exists {
		return nil, domainerrors.ErrConversationNotFound
	}
	items := append([]entities.Message(nil), s.messages[strings.TrimSpace(conversationID)]...)
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}
	return items, nil
}

func (s *Store) MarkRead(_ context.Context, conversationID string, readerID string, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.conversations[strings.TrimSpace(conversationID)]; !exists {
		return 0, domainerrors.ErrConversationNotFound
	}
	var updated int64
	items := s.messages[strings.TrimSpace(conversationID)]
	for i, message := range items {
		if message.SenderID != strings.TrimSpace(readerID) && message.ReadAt == nil {
			readAt := at.UTC()
			items[i].ReadAt = &readAt
			updated++
		}
	}
	s.messages[strings.TrimSpace(conversationID)] = items
	return updated, nil
}

func (s *Store) CountUnread(_ context.Context, conversationID string, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var unread int64
	for _, message := range s.messages[strings.TrimSpace(conversationID)] {
		if message.SenderID != strings.TrimSpace(userID) && message.ReadAt == nil {
			unread++
		}
	}
	return unread, nil
}

func (s *Store) Outbox() []ports.EventEnvelope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.EventEnvelope(nil), s.outbox...)
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.now.IsZero() {
		return s.now
	}
	return time.Now().UTC()
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now.UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
