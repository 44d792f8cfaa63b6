package ports

import (
	"context"
	"time"

	"helvetia/contexts/marketplace/campaign-service/domain/entities"
	contractsv1 "helvetia/contracts/gen/events/v1"
)

type EventEnvelope = contractsv1.Envelope

type CampaignFilter struct {
	BrandID   string
	CreatorID string
	Status    entities.CampaignStatus
}

// Transition is one workflow step: the new campaign row (nil when
// unchanged), the step rows to upsert, and the outbox envelopes to
// append. Adapters must apply all three atomically.
type Transition struct {
	CampaignID string
	Campaign   *entities.Campaign
	Steps      []entities.MissionStep
	Outbox     []EventEnvelope
}

type WorkflowRepository interface {
	CreateCampaign(
		ctx context.Context,
		campaign entities.Campaign,
		steps []entities.MissionStep,
		outbox []EventEnvelope,
	) error
	GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error)
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]entities.Campaign, error)
	ListSteps(ctx context.Context, campaignID string) ([]entities.MissionStep, error)
	ApplyTransition(ctx context.Context, transition Transition) error
}

// ContractGate answers whether the campaign/creator contract is active.
// Script submission is blocked until it is.
type ContractGate interface {
	Active(ctx context.Context, campaignID string, creatorID string) (bool, error)
}

type IdempotencyRecord struct {
	Key         string
	RequestHash string
	Payload     []byte
	ExpiresAt   time.Time
}

type IdempotencyStore interface {
	Get(ctx context.Context, key string, now time.Time) (IdempotencyRecord, bool, error)
	Put(ctx context.Context, record IdempotencyRecord) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// DeadlineRepository closes open campaigns whose deadline has passed.
type DeadlineRepository interface {
	CancelCampaignsPastDeadline(ctx context.Context, now time.Time, limit int) ([]string, error)
}
