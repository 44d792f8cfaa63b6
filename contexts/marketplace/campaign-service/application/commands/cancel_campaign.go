package commands

import (
	"context"
	"log/slog"
	"strings"

	application "helvetia/contexts/marketplace/campaign-service/application"
	"helvetia/contexts/marketplace/campaign-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/campaign-service/domain/errors"
	"helvetia/contexts/marketplace/campaign-service/ports"
	"helvetia/internal/shared/events"
)

type CancelCampaignCommand struct {
	CampaignID string
	ActorID    string
	ActorRole  string
	Reason     string
}

// CancelCampaignUseCase cancels a campaign from any non-terminal state.
// The cancellation event lets the contract service void a pending
// contract for the pair.
type CancelCampaignUseCase struct {
	Repo        ports.WorkflowRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc CancelCampaignUseCase) Execute(ctx context.Context, cmd CancelCampaignCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	campaign, err := uc.Repo.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return err
	}
	if err := brandOrAdmin(campaign, cmd.ActorID, cmd.ActorRole); err != nil {
		return err
	}
	if campaign.IsTerminal() {
		return domainerrors.ErrInvalidStateTransition
	}

	now := uc.Clock.Now().UTC()
	campaign.Status = entities.CampaignStatusCancelled
	campaign.UpdatedAt = now
	cancelledAt := now
	campaign.CancelledAt = &cancelledAt

	outbox := make([]ports.EventEnvelope, 0, 3)
	recipients := []string{campaign.BrandID}
	if campaign.SelectedCreatorID != "" {
		recipients = append(recipients, campaign.SelectedCreatorID)
	}
	for _, userID := range recipients {
		eventID, err := uc.IDGenerator.NewID(ctx)
		if err != nil {
			return err
		}
		intent, err := notificationEnvelope(eventID, campaign.CampaignID, now, events.NotificationIntent{
			UserID:     userID,
			Category:   events.CategoryWorkflow,
			Title:      "Campaign cancelled",
			Body:       "The campaign was cancelled.",
			EntityType: "campaign",
			EntityID:   campaign.CampaignID,
		})
		if err != nil {
			return err
		}
		outbox = append(outbox, intent)
	}

	cancelEventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	cancelEvent, err := campaignEnvelope(cancelEventID, events.TypeCampaignCancelled, campaign.CampaignID, now, map[string]any{
		"campaign_id": campaign.CampaignID,
		"brand_id":    campaign.BrandID,
		"creator_id":  campaign.SelectedCreatorID,
		"reason":      strings.TrimSpace(cmd.Reason),
	})
	if err != nil {
		return err
	}
	outbox = append(outbox, cancelEvent)

	if err := uc.Repo.ApplyTransition(ctx, ports.Transition{
		CampaignID: campaign.CampaignID,
		Campaign:   &campaign,
		Outbox:     outbox,
	}); err != nil {
		return err
	}

	logger.Info("campaign cancelled",
		"event", "campaign_cancelled",
		"module", "marketplace/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
	)
	return nil
}
