package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"helvetia/contexts/engagement/notification-service/domain/entities"
	domainerrors "helvetia/contexts/engagement/notification-service/domain/errors"
)

type Store struct {
	mu sync.RWMutex

	notifications map[string]entities.Notification
	dedup         map[string]string

	now time.Time
}

func NewStore() *Store {
	return &Store{
		notifications: make(map[string]entities.Notification),
		dedup:         make(map[string]string),
	}
}

func (s *Store) Insert(_ context.Context, notification entities.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[notification.NotificationID] = notification
	return nil
}

func (s *Store) Get(_ context.Context, notificationID string) (entities.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.notifications[strings.TrimSpace(notificationID)]
	if !exists {
		return entities.Notification{}, domainerrors.ErrNotificationNotFound
	}
	return item, nil
}

func (s *Store) ListByUser(_ context.Context, userID string, unreadOnly bool, limit int) ([]entities.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Notification, 0)
	for _, item := range s.notifications {
		if item.UserID != userID {
			continue
		}
		if unreadOnly && item.IsRead {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkRead(_ context.Context, notificationID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.notifications[strings.TrimSpace(notificationID)]
	if !exists {
		return domainerrors.ErrNotificationNotFound
	}
	readAt := at.UTC()
	item.IsRead = true
	item.ReadAt = &readAt
	s.notifications[item.NotificationID] = item
	return nil
}

func (s *Store) MarkAllRead(_ context.Context, userID string, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	readAt := at.UTC()
	var updated int64
	for id, item := range s.notifications {
		if item.UserID != userID || item.IsRead {
			continue
		}
		item.IsRead = true
		item.ReadAt = &readAt
		s.notifications[id] = item
		updated++
	}
	return updated, nil
}

func (s *Store) CountersFor(_ context.Context, userID string) (entities.Counters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var counters entities.Counters
	for _, item := range s.notifications {
		if item.UserID != userID || item.IsRead {
			continue
		}
		counters.Add(item.Category, 1)
	}
	return counters, nil
}

func (s *Store) ReserveEvent(_ context.Context, eventID string, payloadHash string, _ time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, exists := s.dedup[eventID]; exists {
		if existing != payloadHash {
			return false, domainerrors.ErrInvalidNotificationInput
		}
		return true, nil
	}
	s.dedup[eventID] = payloadHash
	return false, nil
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
