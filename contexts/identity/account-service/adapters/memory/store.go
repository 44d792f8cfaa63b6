package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"helvetia/contexts/identity/account-service/domain/entities"
	domainerrors "helvetia/contexts/identity/account-service/domain/errors"
)

type Store struct {
	mu sync.RWMutex

	users           map[string]entities.User
	emailIndex      map[string]string
	brandProfiles   map[string]entities.BrandProfile
	creatorProfiles map[string]entities.CreatorProfile

	now time.Time
}

func NewStore() *Store {
	return &Store{
		users:           make(map[string]entities.User),
		emailIndex:      make(map[string]string),
		brandProfiles:   make(map[string]entities.BrandProfile),
		creatorProfiles: make(map[string]entities.CreatorProfile),
	}
}

func (s *Store) CreateUser(
	_ context.Context,
	user entities.User,
	brand *entities.BrandProfile,
	creator *entities.CreatorProfile,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.emailIndex[user.Email]; exists {
		return domainerrors.ErrEmailTaken
	}
	s.users[user.UserID] = user
	s.emailIndex[user.Email] = user.UserID
	if brand != nil {
		s.brandProfiles[user.UserID] = *brand
	}
	if creator != nil {
		s.creatorProfiles[user.UserID] = *creator
	}
	return nil
}

func (s *Store) GetUser(_ context.Context, userID string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[strings.TrimSpace(userID)]
	if !exists {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, exists := s.emailIndex[entities.NormalizeEmail(email)]
	if !exists {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return s.users[userID], nil
}

func (s *Store) GetBrandProfile(_ context.Context, userID string) (entities.BrandProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, exists := s.brandProfiles[strings.TrimSpace(userID)]
	if !exists {
		return entities.BrandProfile{}, domainerrors.ErrProfileNotFound
	}
	return profile, nil
}

func (s *Store) GetCreatorProfile(_ context.Context, userID string) (entities.CreatorProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, exists := s.creatorProfiles[strings.TrimSpace(userID)]
	if !exists {
		return entities.CreatorProfile{}, domainerrors.ErrProfileNotFound
	}
	return profile, nil
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

// SessionCache is the in-process session cache used by tests.
type SessionCache struct {
	mu       sync.RWMutex
	sessions map[string]entities.Session
}

func NewSessionCache() *SessionCache {
	return &SessionCache{sessions: make(map[string]entities.Session)}
}

func (c *SessionCache) Get(_ context.Context, userID string) (entities.Session, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	session, exists := c.sessions[userID]
	return session, exists, nil
}

func (c *SessionCache) Set(_ context.Context, userID string, session entities.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[userID] = session
	return nil
}

func (c *SessionCache) Delete(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, userID)
	return nil
}
