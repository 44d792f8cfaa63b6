package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"helvetia/contexts/marketplace/application-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/application-service/domain/errors"
	"helvetia/contexts/marketplace/application-service/ports"
)

type Store struct {
	mu sync.RWMutex

	applications map[string]entities.Application
	campaigns    map[string]ports.CampaignSummary
	outbox       []ports.EventEnvelope

	now time.Time
}

func NewStore() *Store {
	return &Store{
		applications: make(map[string]entities.Application),
		campaigns:    make(map[string]ports.CampaignSummary),
	}
}

// SeedCampaign registers a campaign summary for the directory lookups.
func (s *Store) SeedCampaign(summary ports.CampaignSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[summary.CampaignID] = summary
}

func (s *Store) Summary(_ context.Context, campaignID string) (ports.CampaignSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return ports.CampaignSummary{}, domainerrors.ErrCampaignNotFound
	}
	return summary, nil
}

func (s *Store) Create(_ context.Context, item entities.Application, outbox []ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.applications {
		if existing.CampaignID == item.CampaignID && existing.CreatorID == item.CreatorID {
			return domainerrors.ErrDuplicateApplication
		}
	}
	s.applications[item.ApplicationID] = item
	s.outbox = append(s.outbox, outbox...)
	return nil
}

func (s *Store) Get(_ context.Context, applicationID string) (entities.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.applications[strings.TrimSpace(applicationID)]
	if !exists {
		return entities.Application{}, domainerrors.ErrApplicationNotFound
	}
	return item, nil
}

func (s *Store) ListByCampaign(_ context.Context, campaignID string) ([]entities.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Application, 0)
	for _, item := range s.applications {
		if item.CampaignID == strings.TrimSpace(campaignID) {
			items = append(items, item)
		}
	}
	sortApplications(items)
	return items, nil
}

func (s *Store) ListByCreator(_ context.Context, creatorID string) ([]entities.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Application, 0)
	for _, item := range s.applications {
		if item.CreatorID == strings.TrimSpace(creatorID) {
			items = append(items, item)
		}
	}
	sortApplications(items)
	return items, nil
}

func (s *Store) UpdateStatus(_ context.Context, item entities.Application, outbox []ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.applications[item.ApplicationID]; !exists {
		return domainerrors.ErrApplicationNotFound
	}
	s.applications[item.ApplicationID] = item
	s.outbox = append(s.outbox, outbox...)
	return nil
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

func sortApplications(items []entities.Application) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
