package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "helvetia/contexts/marketplace/contract-service/application"
	"helvetia/contexts/marketplace/contract-service/application/commands"
	contractsv1 "helvetia/contracts/gen/events/v1"
	"helvetia/internal/shared/events"
)

const dedupTTL = 7 * 24 * time.Hour

// EventDedup reserves event ids so replayed events are processed once.
type EventDedup interface {
	ReserveEvent(ctx context.Context, eventID string, payloadHash string, expiresAt time.Time) (bool, error)
}

// Consumer reacts to campaign lifecycle events: a creator selection
// issues a contract, a cancellation voids it.
type Consumer struct {
	Issue  commands.IssueContractUseCase
	Void   commands.VoidContractUseCase
	Dedup  EventDedup
	Logger *slog.Logger
}

func (c Consumer) Handle(ctx context.Context, envelope contractsv1.Envelope) error {
	logger := application.ResolveLogger(c.Logger)

	processed, err := c.Dedup.ReserveEvent(ctx, envelope.EventID, events.PayloadHash(envelope.Data), time.Now().UTC().Add(dedupTTL))
	if err != nil {
		return err
	}
	if processed {
		return nil
	}

	switch envelope.EventType {
	case events.TypeContractRequested:
		var request events.ContractRequest
		if err := json.Unmarshal(envelope.Data, &request); err != nil {
			return err
		}
		_, err := c.Issue.Execute(ctx, commands.IssueContractCommand{
			CampaignID:  request.CampaignID,
			BrandID:     request.BrandID,
			CreatorID:   request.CreatorID,
			Title:       request.Title,
			BudgetCHF:   request.BudgetCHF,
			UsageRights: request.UsageRights,
		})
		return err
	case events.TypeCampaignCancelled:
		var payload struct {
			CampaignID string `json:"campaign_id"`
			CreatorID  string `json:"creator_id"`
			Reason     string `json:"reason"`
		}
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			return err
		}
		if payload.CreatorID == "" {
			return nil
		}
		return c.Void.Execute(ctx, commands.VoidContractCommand{
			CampaignID: payload.CampaignID,
			CreatorID:  payload.CreatorID,
			Reason:     payload.Reason,
		})
	default:
		logger.Debug("ignoring event",
			"event", "contract_consumer_skipped",
			"module", "marketplace/contract-service",
			"layer", "worker",
			"event_type", envelope.EventType,
		)
		return nil
	}
}
