package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"helvetia/contexts/marketplace/contract-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/contract-service/domain/errors"
	"helvetia/contexts/marketplace/contract-service/ports"
)

type Store struct {
	mu sync.RWMutex

	contracts map[string]entities.Contract
	dedup     map[string]string
	outbox    []ports.EventEnvelope

	now time.Time
}

func NewStore() *Store {
	return &Store{
		contracts: make(map[string]entities.Contract),
		dedup:     make(map[string]string),
	}
}

func (s *Store) Create(_ context.Context, item entities.Contract, outbox []ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.contracts {
		if existing.CampaignID == item.CampaignID && existing.CreatorID == item.CreatorID {
			return domainerrors.ErrDuplicateContract
		}
	}
	s.contracts[item.ContractID] = item
	s.outbox = append(s.outbox, outbox...)
	return nil
}

func (s *Store) Get(_ context.Context, contractID string) (entities.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.contracts[strings.TrimSpace(contractID)]
	if !exists {
		return entities.Contract{}, domainerrors.ErrContractNotFound
	}
	return item, nil
}

func (s *Store) GetByPair(_ context.Context, campaignID string, creatorID string) (entities.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.contracts {
		if item.CampaignID == strings.TrimSpace(campaignID) && item.CreatorID == strings.TrimSpace(creatorID) {
			return item, nil
		}
	}
	return entities.Contract{}, domainerrors.ErrContractNotFound
}

func (s *Store) ListByUser(_ context.Context, userID string) ([]entities.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trimmed := strings.TrimSpace(userID)
	items := make([]entities.Contract, 0)
	for _, item := range s.contracts {
		if item.BrandID == trimmed || item.CreatorID == trimmed {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].IssuedAt.Before(items[j].IssuedAt)
	})
	return items, nil
}

func (s *Store) UpdateStatus(_ context.Context, item entities.Contract, outbox []ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.contracts[item.ContractID]; !exists {
		return domainerrors.ErrContractNotFound
	}
	s.contracts[item.ContractID] = item
	s.outbox = append(s.outbox, outbox...)
	return nil
}

func (s *Store) ReserveEvent(_ context.Context, eventID string, payloadHash string, _ time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, exists := s.dedup[eventID]; exists {
		if existing != payloadHash {
			return false, domainerrors.ErrInvalidContractInput
		}
		return true, nil
	}
	s.dedup[eventID] = payloadHash
	return false, nil
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
