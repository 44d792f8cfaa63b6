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

type RejectProfilesCommand struct {
	CampaignID string
	ActorID    string
	ActorRole  string
	Reason     string
}

// RejectProfilesUseCase marks the proposal step rejected. The campaign
// stays open and a human must re-invoke propose for a new cycle.
type RejectProfilesUseCase struct {
	Repo        ports.WorkflowRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc RejectProfilesUseCase) Execute(ctx context.Context, cmd RejectProfilesCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	campaign, mission, err := loadMission(ctx, uc.Repo, cmd.CampaignID)
	if err != nil {
		return err
	}
	if err := brandOrAdmin(campaign, cmd.ActorID, cmd.ActorRole); err != nil {
		return err
	}
	step, ok := mission.Step(entities.StepProfilesProposed)
	if !ok || step.Status != entities.StepStatusInProgress {
		return domainerrors.ErrInvalidStateTransition
	}

	now := uc.Clock.Now().UTC()
	step.Status = entities.StepStatusRejected
	if reason := strings.TrimSpace(cmd.Reason); reason != "" {
		step.Payload = reason
	}
	step.UpdatedAt = now

	eventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	intent, err := notificationEnvelope(eventID, campaign.CampaignID, now, events.NotificationIntent{
		UserID:     campaign.BrandID,
		Category:   events.CategoryWorkflow,
		Title:      "Profiles rejected",
		Body:       "The proposed creators were declined. New proposals will follow.",
		EntityType: "campaign",
		EntityID:   campaign.CampaignID,
	})
	if err != nil {
		return err
	}

	if err := uc.Repo.ApplyTransition(ctx, ports.Transition{
		CampaignID: campaign.CampaignID,
		Steps:      []entities.MissionStep{step},
		Outbox:     []ports.EventEnvelope{intent},
	}); err != nil {
		return err
	}

	logger.Info("creator profiles rejected",
		"event", "campaign_profiles_rejected",
		"module", "marketplace/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
	)
	return nil
}
