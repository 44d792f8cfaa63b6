package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"helvetia/contexts/marketplace/campaign-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/campaign-service/domain/errors"
	"helvetia/contexts/marketplace/campaign-service/ports"
)

// Store backs the campaign module in tests and local runs. Transitions
// apply atomically under one lock, mirroring the postgres transaction.
type Store struct {
	mu sync.RWMutex

	campaigns   map[string]entities.Campaign
	steps       map[string][]entities.MissionStep
	outbox      []ports.EventEnvelope
	idempotency map[string]ports.IdempotencyRecord

	now time.Time
}

func NewStore(seed []entities.Campaign) *Store {
	campaigns := make(map[string]entities.Campaign, len(seed))
	for _, item := range seed {
		campaigns[item.CampaignID] = item
	}
	return &Store{
		campaigns:   campaigns,
		steps:       make(map[string][]entities.MissionStep),
		idempotency: make(map[string]ports.IdempotencyRecord),
	}
}

func (s *Store) CreateCampaign(
	_ context.Context,
	campaign entities.Campaign,
	steps []entities.MissionStep,
	outbox []ports.EventEnvelope,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; exists {
		return domainerrors.ErrInvalidCampaignInput
	}
	s.campaigns[campaign.CampaignID] = campaign
	s.steps[campaign.CampaignID] = append([]entities.MissionStep(nil), steps...)
	s.outbox = append(s.outbox, outbox...)
	return nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return item, nil
}

func (s *Store) ListCampaigns(_ context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Campaign, 0, len(s.campaigns))
	for _, campaign := range s.campaigns {
		if filter.BrandID != "" && campaign.BrandID != filter.BrandID {
			continue
		}
		if filter.CreatorID != "" && campaign.SelectedCreatorID != filter.CreatorID {
			continue
		}
		if filter.Status != "" && campaign.Status != filter.Status {
			continue
		}
		items = append(items, campaign)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListSteps(_ context.Context, campaignID string) ([]entities.MissionStep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	steps, exists := s.steps[strings.TrimSpace(campaignID)]
	if !exists {
		return nil, domainerrors.ErrCampaignNotFound
	}
	return append([]entities.MissionStep(nil), steps...), nil
}

func (s *Store) ApplyTransition(_ context.Context, transition ports.Transition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[transition.CampaignID]; !exists {
		return domainerrors.ErrCampaignNotFound
	}
	if transition.Campaign != nil {
		s.campaigns[transition.CampaignID] = *transition.Campaign
	}
	existing := s.steps[transition.CampaignID]
	for _, updated := range transition.Steps {
		for i, step := range existing {
			if step.Type == updated.Type {
				existing[i] = updated
				break
			}
		}
	}
	s.steps[transition.CampaignID] = existing
	s.outbox = append(s.outbox, transition.Outbox...)
	return nil
}

func (s *Store) CancelCampaignsPastDeadline(_ context.Context, now time.Time, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cancelled := make([]string, 0)
	for id, campaign := range s.campaigns {
		if len(cancelled) >= limit {
			break
		}
		if campaign.Status != entities.CampaignStatusOpen || campaign.DeadlineAt == nil {
			continue
		}
		if campaign.DeadlineAt.UTC().Before(now.UTC()) {
			campaign.Status = entities.CampaignStatusCancelled
			cancelledAt := now.UTC()
			campaign.CancelledAt = &cancelledAt
			campaign.UpdatedAt = now.UTC()
			s.campaigns[id] = campaign
			cancelled = append(cancelled, id)
		}
	}
	return cancelled, nil
}

// Outbox returns the envelopes appended so far, oldest first.
func (s *Store) Outbox() []ports.EventEnvelope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.EventEnvelope(nil), s.outbox...)
}

func (s *Store) Get(_ context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.idempotency[strings.TrimSpace(key)]
	if !exists {
		return ports.IdempotencyRecord{}, false, nil
	}
	if !record.ExpiresAt.IsZero() && now.UTC().After(record.ExpiresAt.UTC()) {
		return ports.IdempotencyRecord{}, false, nil
	}
	return record, true, nil
}

func (s *Store) Put(_ context.Context, record ports.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idempotency[strings.TrimSpace(record.Key)] = record
	return nil
}

// Now returns a fixed time when set via SetNow, otherwise wall time.
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

// Gate is an in-memory contract gate; campaigns listed in Signed are
// considered under an active contract.
type Gate struct {
	mu     sync.RWMutex
	signed map[string]string
}

func NewGate() *Gate {
	return &Gate{signed: make(map[string]string)}
}

func (g *Gate) Sign(campaignID string, creatorID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.signed[campaignID] = creatorID
}

func (g *Gate) Active(_ context.Context, campaignID string, creatorID string) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.signed[campaignID] == creatorID && creatorID != "", nil
}
