package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	application "helvetia/contexts/marketplace/campaign-service/application"
	"helvetia/contexts/marketplace/campaign-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/campaign-service/domain/errors"
	"helvetia/contexts/marketplace/campaign-service/ports"
	"helvetia/internal/shared/events"
)

type SelectCreatorCommand struct {
	CampaignID string
	ActorID    string
	ActorRole  string
	CreatorID  string
}

// SelectCreatorUseCase assigns the chosen creator, moves the campaign to
// in_progress, and requests the contract for the pair. The selection,
// both steps, and every notification intent commit in one transaction.
type SelectCreatorUseCase struct {
	Repo        ports.WorkflowRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc SelectCreatorUseCase) Execute(ctx context.Context, cmd SelectCreatorCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	creatorID := strings.TrimSpace(cmd.CreatorID)
	if creatorID == "" {
		return domainerrors.ErrInvalidCampaignInput
	}

	campaign, mission, err := loadMission(ctx, uc.Repo, cmd.CampaignID)
	if err != nil {
		return err
	}
	if err := brandOrAdmin(campaign, cmd.ActorID, cmd.ActorRole); err != nil {
		return err
	}
	if campaign.Status != entities.CampaignStatusOpen {
		return domainerrors.ErrInvalidStateTransition
	}

	proposal, ok := mission.Step(entities.StepProfilesProposed)
	if !ok || proposal.Status != entities.StepStatusInProgress {
		return domainerrors.ErrStepOrderViolation
	}
	if !proposedContains(proposal.Payload, creatorID) {
		return domainerrors.ErrInvalidCampaignInput
	}

	now := uc.Clock.Now().UTC()
	proposal.Status = entities.StepStatusDone
	proposal.UpdatedAt = now

	selected, err := mutateStep(mission, entities.StepCreatorSelected, entities.StepStatusDone, creatorID, now)
	if err != nil {
		return err
	}

	campaign.SelectedCreatorID = creatorID
	campaign.Status = entities.CampaignStatusInProgress
	campaign.UpdatedAt = now

	outbox := make([]ports.EventEnvelope, 0, 3)
	brandEventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	brandIntent, err := notificationEnvelope(brandEventID, campaign.CampaignID, now, events.NotificationIntent{
		UserID:     campaign.BrandID,
		Category:   events.CategoryWorkflow,
		Title:      "Creator selected",
		Body:       "Your campaign is now in production with the selected creator.",
		EntityType: "campaign",
		EntityID:   campaign.CampaignID,
	})
	if err != nil {
		return err
	}
	outbox = append(outbox, brandIntent)

	creatorEventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	creatorIntent, err := notificationEnvelope(creatorEventID, campaign.CampaignID, now, events.NotificationIntent{
		UserID:     creatorID,
		Category:   events.CategoryWorkflow,
		Title:      "You have been selected",
		Body:       "A brand selected you for a campaign. Sign the contract to start.",
		EntityType: "campaign",
		EntityID:   campaign.CampaignID,
	})
	if err != nil {
		return err
	}
	outbox = append(outbox, creatorIntent)

	contractEventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	contractEvent, err := campaignEnvelope(contractEventID, events.TypeContractRequested, campaign.CampaignID, now, events.ContractRequest{
		CampaignID:  campaign.CampaignID,
		BrandID:     campaign.BrandID,
		CreatorID:   creatorID,
		Title:       campaign.Title,
		BudgetCHF:   campaign.BudgetCHF,
		UsageRights: string(campaign.UsageRights),
	})
	if err != nil {
		return err
	}
	outbox = append(outbox, contractEvent)

	if err := uc.Repo.ApplyTransition(ctx, ports.Transition{
		CampaignID: campaign.CampaignID,
		Campaign:   &campaign,
		Steps:      []entities.MissionStep{proposal, selected},
		Outbox:     outbox,
	}); err != nil {
		return err
	}

	logger.Info("creator selected",
		"event", "campaign_creator_selected",
		"module", "marketplace/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"creator_id", creatorID,
	)
	return nil
}

// proposedContains checks the candidate list stored on the proposal step.
// Older rows may carry a plain comma-joined list instead of JSON.
func proposedContains(payload string, creatorID string) bool {
	if strings.TrimSpace(payload) == "" {
		return false
	}
	var ids []string
	if err := json.Unmarshal([]byte(payload), &ids); err != nil {
		ids = strings.Split(payload, ",")
	}
	for _, id := range ids {
		if strings.TrimSpace(id) == creatorID {
			return true
		}
	}
	return false
}
