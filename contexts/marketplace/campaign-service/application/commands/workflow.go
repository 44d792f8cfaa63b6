package commands

import (
	"context"
	"strings"
	"time"

	"helvetia/contexts/marketplace/campaign-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/campaign-service/domain/errors"
	"helvetia/contexts/marketplace/campaign-service/ports"
)

// Role names accepted by workflow commands. The HTTP layer resolves them
// from the session token.
const (
	RoleBrand   = "brand"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

func loadMission(
	ctx context.Context,
	repo ports.WorkflowRepository,
	campaignID string,
) (entities.Campaign, entities.Mission, error) {
	campaign, err := repo.GetCampaign(ctx, strings.TrimSpace(campaignID))
	if err != nil {
		return entities.Campaign{}, entities.Mission{}, err
	}
	steps, err := repo.ListSteps(ctx, campaign.CampaignID)
	if err != nil {
		return entities.Campaign{}, entities.Mission{}, err
	}
	return campaign, entities.NewMission(steps), nil
}

// brandOrAdmin gates brand-side actions: the owning brand or an admin.
func brandOrAdmin(campaign entities.Campaign, actorID string, actorRole string) error {
	if actorRole == RoleAdmin {
		return nil
	}
	if strings.TrimSpace(actorID) == "" || campaign.BrandID != strings.TrimSpace(actorID) {
		return domainerrors.ErrNotAuthorized
	}
	return nil
}

// selectedCreator gates creator-side actions to the assigned creator.
func selectedCreator(campaign entities.Campaign, actorID string) error {
	if strings.TrimSpace(actorID) == "" || campaign.SelectedCreatorID != strings.TrimSpace(actorID) {
		return domainerrors.ErrNotAuthorized
	}
	return nil
}

// mutateStep copies a step with a new status, optional payload, and
// timestamp. The caller has already validated ordering via the mission.
func mutateStep(
	mission entities.Mission,
	stepType entities.StepType,
	status entities.StepStatus,
	payload string,
	now time.Time,
) (entities.MissionStep, error) {
	step, ok := mission.Step(stepType)
	if !ok {
		return entities.MissionStep{}, domainerrors.ErrStepNotFound
	}
	step.Status = status
	if payload != "" {
		step.Payload = payload
	}
	step.UpdatedAt = now
	return step, nil
}
