package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "helvetia/contexts/marketplace/contract-service/application"
	"helvetia/contexts/marketplace/contract-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/contract-service/domain/errors"
	"helvetia/contexts/marketplace/contract-service/ports"
	"helvetia/internal/shared/events"
)

const sourceService = "contract-service"

type IssueContractCommand struct {
	CampaignID  string
	BrandID     string
	CreatorID   string
	Title       string
	BudgetCHF   float64
	UsageRights string
}

// IssueContractUseCase creates a pending contract for a selection.
// Issuing twice for the same pair is a no-op, which makes the
// contract.requested consumer safe to replay.
type IssueContractUseCase struct {
	Repo        ports.ContractRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc IssueContractUseCase) Execute(ctx context.Context, cmd IssueContractCommand) (entities.Contract, error) {
	logger := application.ResolveLogger(uc.Logger)

	now := uc.Clock.Now().UTC()
	contractID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Contract{}, err
	}
	item := entities.Contract{
		ContractID: contractID,
		CampaignID: strings.TrimSpace(cmd.CampaignID),
		BrandID:    strings.TrimSpace(cmd.BrandID),
		CreatorID:  strings.TrimSpace(cmd.CreatorID),
		Terms:      entities.StandardTerms(cmd.Title, cmd.BudgetCHF, cmd.UsageRights),
		Status:     entities.ContractStatusPendingSignature,
		IssuedAt:   now,
	}
	if !item.ValidateBasics() {
		return entities.Contract{}, domainerrors.ErrInvalidContractInput
	}

	eventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Contract{}, err
	}
	intent, err := events.NewEnvelope(eventID, events.TypeNotificationRequested, sourceService, item.CampaignID, now, events.NotificationIntent{
		UserID:     item.CreatorID,
		Category:   events.CategoryWorkflow,
		Title:      "Contract ready to sign",
		Body:       "Review and sign the contract to start the mission.",
		EntityType: "contract",
		EntityID:   item.ContractID,
	})
	if err != nil {
		return entities.Contract{}, err
	}

	if err := uc.Repo.Create(ctx, item, []ports.EventEnvelope{intent}); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateContract) {
			existing, getErr := uc.Repo.GetByPair(ctx, item.CampaignID, item.CreatorID)
			if getErr != nil {
				return entities.Contract{}, getErr
			}
			return existing, nil
		}
		return entities.Contract{}, err
	}

	logger.Info("contract issued",
		"event", "contract_issued",
		"module", "marketplace/contract-service",
		"layer", "application",
		"contract_id", item.ContractID,
		"campaign_id", item.CampaignID,
	)
	return item, nil
}

type SignContractCommand struct {
	ContractID string
	ActorID    string
}

// SignContractUseCase activates a pending contract. Only the named
// creator can sign. Activation unblocks script submission on the
// campaign side via the contract gate.
type SignContractUseCase struct {
	Repo        ports.ContractRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc SignContractUseCase) Execute(ctx context.Context, cmd SignContractCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	item, err := uc.Repo.Get(ctx, strings.TrimSpace(cmd.ContractID))
	if err != nil {
		return err
	}
	if item.CreatorID != strings.TrimSpace(cmd.ActorID) {
		return domainerrors.ErrNotAuthorized
	}
	if item.Status != entities.ContractStatusPendingSignature {
		return domainerrors.ErrInvalidContractState
	}

	now := uc.Clock.Now().UTC()
	item.Status = entities.ContractStatusActive
	signedAt := now
	item.SignedAt = &signedAt

	outbox := make([]ports.EventEnvelope, 0, 2)
	intentID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	intent, err := events.NewEnvelope(intentID, events.TypeNotificationRequested, sourceService, item.CampaignID, now, events.NotificationIntent{
		UserID:     item.BrandID,
		Category:   events.CategoryWorkflow,
		Title:      "Contract signed",
		Body:       "The creator signed the contract. The mission can start.",
		EntityType: "contract",
		EntityID:   item.ContractID,
	})
	if err != nil {
		return err
	}
	outbox = append(outbox, intent)

	signedEventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	signedEvent, err := events.NewEnvelope(signedEventID, events.TypeContractSigned, sourceService, item.CampaignID, now, map[string]any{
		"contract_id": item.ContractID,
		"campaign_id": item.CampaignID,
		"brand_id":    item.BrandID,
		"creator_id":  item.CreatorID,
		"signed_at":   now.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	outbox = append(outbox, signedEvent)

	if err := uc.Repo.UpdateStatus(ctx, item, outbox); err != nil {
		return err
	}

	logger.Info("contract signed",
		"event", "contract_signed",
		"module", "marketplace/contract-service",
		"layer", "application",
		"contract_id", item.ContractID,
		"campaign_id", item.CampaignID,
	)
	return nil
}

type VoidContractCommand struct {
	CampaignID string
	CreatorID  string
	Reason     string
}

// VoidContractUseCase cancels the contract for a campaign/creator pair.
// Used when the campaign is cancelled; voiding an already cancelled or
// missing contract is a no-op.
type VoidContractUseCase struct {
	Repo   ports.ContractRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc VoidContractUseCase) Execute(ctx context.Context, cmd VoidContractCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	item, err := uc.Repo.GetByPair(ctx, strings.TrimSpace(cmd.CampaignID), strings.TrimSpace(cmd.CreatorID))
	if err != nil {
		if errors.Is(err, domainerrors.ErrContractNotFound) {
			return nil
		}
		return err
	}
	if item.Status == entities.ContractStatusCancelled {
		return nil
	}

	now := uc.Clock.Now().UTC()
	item.Status = entities.ContractStatusCancelled
	cancelledAt := now
	item.CancelledAt = &cancelledAt

	if err := uc.Repo.UpdateStatus(ctx, item, nil); err != nil {
		return err
	}

	logger.Info("contract voided",
		"event", "contract_voided",
		"module", "marketplace/contract-service",
		"layer", "application",
		"contract_id", item.ContractID,
		"campaign_id", item.CampaignID,
		"reason", strings.TrimSpace(cmd.Reason),
	)
	return nil
}
