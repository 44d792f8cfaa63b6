package ports

import (
	"context"
	"time"

	"helvetia/contexts/marketplace/contract-service/domain/entities"
	contractsv1 "helvetia/contracts/gen/events/v1"
)

type EventEnvelope = contractsv1.Envelope

type ContractRepository interface {
	Create(ctx context.Context, contract entities.Contract, outbox []EventEnvelope) error
	Get(ctx context.Context, contractID string) (entities.Contract, error)
	GetByPair(ctx context.Context, campaignID string, creatorID string) (entities.Contract, error)
	ListByUser(ctx context.Context, userID string) ([]entities.Contract, error)
	UpdateStatus(ctx context.Context, contract entities.Contract, outbox []EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
