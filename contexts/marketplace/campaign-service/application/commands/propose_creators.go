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

type ProposeCreatorsCommand struct {
	CampaignID string
	ActorRole  string
	ProfileIDs []string
}

// ProposeCreatorsUseCase attaches candidate creator profiles to the
// proposal step and opens the campaign. Re-invoking after a brand
// rejection starts a fresh proposal cycle; nothing retries automatically.
type ProposeCreatorsUseCase struct {
	Repo        ports.WorkflowRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc ProposeCreatorsUseCase) Execute(ctx context.Context, cmd ProposeCreatorsCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.ActorRole != RoleAdmin {
		return domainerrors.ErrNotAuthorized
	}
	profiles := make([]string, 0, len(cmd.ProfileIDs))
	for _, id := range cmd.ProfileIDs {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			profiles = append(profiles, trimmed)
		}
	}
	if len(profiles) == 0 {
		return domainerrors.ErrInvalidCampaignInput
	}

	campaign, mission, err := loadMission(ctx, uc.Repo, cmd.CampaignID)
	if err != nil {
		return err
	}
	if campaign.Status != entities.CampaignStatusDraft && campaign.Status != entities.CampaignStatusOpen {
		return domainerrors.ErrInvalidStateTransition
	}
	if !mission.PredecessorDone(entities.StepProfilesProposed) {
		return domainerrors.ErrStepOrderViolation
	}
	if step, ok := mission.Step(entities.StepProfilesProposed); ok && step.Status == entities.StepStatusDone {
		return domainerrors.ErrInvalidStateTransition
	}

	now := uc.Clock.Now().UTC()
	payload, err := json.Marshal(profiles)
	if err != nil {
		return err
	}
	step, err := mutateStep(mission, entities.StepProfilesProposed, entities.StepStatusInProgress, string(payload), now)
	if err != nil {
		return err
	}

	campaign.Status = entities.CampaignStatusOpen
	campaign.UpdatedAt = now

	eventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	intent, err := notificationEnvelope(eventID, campaign.CampaignID, now, events.NotificationIntent{
		UserID:     campaign.BrandID,
		Category:   events.CategoryWorkflow,
		Title:      "Creator profiles proposed",
		Body:       "New creator profiles are ready for review on your campaign.",
		EntityType: "campaign",
		EntityID:   campaign.CampaignID,
	})
	if err != nil {
		return err
	}

	if err := uc.Repo.ApplyTransition(ctx, ports.Transition{
		CampaignID: campaign.CampaignID,
		Campaign:   &campaign,
		Steps:      []entities.MissionStep{step},
		Outbox:     []ports.EventEnvelope{intent},
	}); err != nil {
		return err
	}

	logger.Info("creator profiles proposed",
		"event", "campaign_profiles_proposed",
		"module", "marketplace/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"profile_count", len(profiles),
	)
	return nil
}
