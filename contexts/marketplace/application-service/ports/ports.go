package ports

import (
	"context"
	"time"

	"helvetia/contexts/marketplace/application-service/domain/entities"
	contractsv1 "helvetia/contracts/gen/events/v1"
)

type EventEnvelope = contractsv1.Envelope

type ApplicationRepository interface {
	Create(ctx context.Context, application entities.Application, outbox []EventEnvelope) error
	Get(ctx context.Context, applicationID string) (entities.Application, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]entities.Application, error)
	ListByCreator(ctx context.Context, creatorID string) ([]entities.Application, error)
	UpdateStatus(ctx context.Context, application entities.Application, outbox []EventEnvelope) error
}

// CampaignSummary is the read-only slice of campaign state this module
// needs for authorization and the open-for-applications check.
type CampaignSummary struct {
	CampaignID string
	BrandID    string
	Title      string
	Status     string
}

type CampaignDirectory interface {
	Summary(ctx context.Context, campaignID string) (CampaignSummary, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
