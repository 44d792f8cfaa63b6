package commands

import (
	"context"
	"log/slog"

	application "helvetia/contexts/marketplace/campaign-service/application"
	"helvetia/contexts/marketplace/campaign-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/campaign-service/domain/errors"
	"helvetia/contexts/marketplace/campaign-service/ports"
	"helvetia/internal/shared/events"
)

type CompleteMissionCommand struct {
	CampaignID string
	ActorID    string
	ActorRole  string
}

// CompleteMissionUseCase closes the pipeline once the final deliverable
// is approved.
type CompleteMissionUseCase struct {
	Repo        ports.WorkflowRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc CompleteMissionUseCase) Execute(ctx context.Context, cmd CompleteMissionCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	campaign, mission, err := loadMission(ctx, uc.Repo, cmd.CampaignID)
	if err != nil {
		return err
	}
	if err := brandOrAdmin(campaign, cmd.ActorID, cmd.ActorRole); err != nil {
		return err
	}
	if campaign.Status != entities.CampaignStatusInProgress {
		return domainerrors.ErrInvalidStateTransition
	}
	if !mission.PredecessorDone(entities.StepMissionCompleted) {
		return domainerrors.ErrStepOrderViolation
	}

	now := uc.Clock.Now().UTC()
	step, err := mutateStep(mission, entities.StepMissionCompleted, entities.StepStatusDone, "", now)
	if err != nil {
		return err
	}

	campaign.Status = entities.CampaignStatusCompleted
	campaign.UpdatedAt = now
	completedAt := now
	campaign.CompletedAt = &completedAt

	outbox := make([]ports.EventEnvelope, 0, 3)
	for _, target := range []struct {
		userID string
		body   string
	}{
		{campaign.BrandID, "Your campaign finished successfully."},
		{campaign.SelectedCreatorID, "The mission is complete. Well done."},
	} {
		eventID, err := uc.IDGenerator.NewID(ctx)
		if err != nil {
			return err
		}
		intent, err := notificationEnvelope(eventID, campaign.CampaignID, now, events.NotificationIntent{
			UserID:     target.userID,
			Category:   events.CategoryWorkflow,
			Title:      "Mission completed",
			Body:       target.body,
			EntityType: "campaign",
			EntityID:   campaign.CampaignID,
		})
		if err != nil {
			return err
		}
		outbox = append(outbox, intent)
	}

	completedEventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	completedEvent, err := campaignEnvelope(completedEventID, events.TypeCampaignCompleted, campaign.CampaignID, now, map[string]any{
		"campaign_id": campaign.CampaignID,
		"brand_id":    campaign.BrandID,
		"creator_id":  campaign.SelectedCreatorID,
	})
	if err != nil {
		return err
	}
	outbox = append(outbox, completedEvent)

	if err := uc.Repo.ApplyTransition(ctx, ports.Transition{
		CampaignID: campaign.CampaignID,
		Campaign:   &campaign,
		Steps:      []entities.MissionStep{step},
		Outbox:     outbox,
	}); err != nil {
		return err
	}

	logger.Info("mission completed",
		"event", "campaign_mission_completed",
		"module", "marketplace/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
	)
	return nil
}
