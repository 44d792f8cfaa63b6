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

const maxScriptLength = 10_000

type SubmitScriptCommand struct {
	CampaignID string
	ActorID    string
	Script     string
}

// SubmitScriptUseCase records the creator's script. Submission is gated
// on an active contract for the campaign/creator pair.
type SubmitScriptUseCase struct {
	Repo        ports.WorkflowRepository
	Contracts   ports.ContractGate
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc SubmitScriptUseCase) Execute(ctx context.Context, cmd SubmitScriptCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	script := strings.TrimSpace(cmd.Script)
	if script == "" || len(script) > maxScriptLength {
		return domainerrors.ErrInvalidCampaignInput
	}

	campaign, mission, err := loadMission(ctx, uc.Repo, cmd.CampaignID)
	if err != nil {
		return err
	}
	if err := selectedCreator(campaign, cmd.ActorID); err != nil {
		return err
	}
	if campaign.Status != entities.CampaignStatusInProgress {
		return domainerrors.ErrInvalidStateTransition
	}
	if !mission.PredecessorDone(entities.StepScriptSubmitted) {
		return domainerrors.ErrStepOrderViolation
	}
	if mission.IsDone(entities.StepScriptApproved) {
		return domainerrors.ErrInvalidStateTransition
	}

	active, err := uc.Contracts.Active(ctx, campaign.CampaignID, campaign.SelectedCreatorID)
	if err != nil {
		return err
	}
	if !active {
		return domainerrors.ErrContractNotSigned
	}

	now := uc.Clock.Now().UTC()
	step, err := mutateStep(mission, entities.StepScriptSubmitted, entities.StepStatusDone, script, now)
	if err != nil {
		return err
	}

	eventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	intent, err := notificationEnvelope(eventID, campaign.CampaignID, now, events.NotificationIntent{
		UserID:     campaign.BrandID,
		Category:   events.CategoryWorkflow,
		Title:      "Script submitted",
		Body:       "The creator submitted a script for your review.",
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

	logger.Info("script submitted",
		"event", "campaign_script_submitted",
		"module", "marketplace/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
	)
	return nil
}

type ReviewScriptCommand struct {
	CampaignID string
	ActorID    string
	ActorRole  string
	Approve    bool
	Note       string
}

// ReviewScriptUseCase lets the brand approve the script or request a
// revision. A revision request reopens the submission step with the note
// attached and never changes the campaign status.
type ReviewScriptUseCase struct {
	Repo        ports.WorkflowRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc ReviewScriptUseCase) Execute(ctx context.Context, cmd ReviewScriptCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	campaign, mission, err := loadMission(ctx, uc.Repo, cmd.CampaignID)
	if err != nil {
		return err
	}
	if err := brandOrAdmin(campaign, cmd.ActorID, cmd.ActorRole); err != nil {
		return err
	}
	if !mission.IsDone(entities.StepScriptSubmitted) {
		return domainerrors.ErrStepOrderViolation
	}
	if mission.IsDone(entities.StepScriptApproved) {
		return domainerrors.ErrInvalidStateTransition
	}

	now := uc.Clock.Now().UTC()
	var steps []entities.MissionStep
	var title, body, logEvent string

	if cmd.Approve {
		if !mission.PredecessorDone(entities.StepScriptApproved) {
			return domainerrors.ErrStepOrderViolation
		}
		approved, err := mutateStep(mission, entities.StepScriptApproved, entities.StepStatusDone, "", now)
		if err != nil {
			return err
		}
		steps = []entities.MissionStep{approved}
		title = "Script approved"
		body = "Your script was approved. You can start producing the video."
		logEvent = "campaign_script_approved"
	} else {
		note := strings.TrimSpace(cmd.Note)
		if note == "" {
			return domainerrors.ErrInvalidCampaignInput
		}
		reopened, err := mutateStep(mission, entities.StepScriptSubmitted, entities.StepStatusInProgress, note, now)
		if err != nil {
			return err
		}
		steps = []entities.MissionStep{reopened}
		title = "Script revision requested"
		body = "The brand requested changes to your script."
		logEvent = "campaign_script_revision_requested"
	}

	eventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	intent, err := notificationEnvelope(eventID, campaign.CampaignID, now, events.NotificationIntent{
		UserID:     campaign.SelectedCreatorID,
		Category:   events.CategoryWorkflow,
		Title:      title,
		Body:       body,
		EntityType: "campaign",
		EntityID:   campaign.CampaignID,
	})
	if err != nil {
		return err
	}

	if err := uc.Repo.ApplyTransition(ctx, ports.Transition{
		CampaignID: campaign.CampaignID,
		Steps:      steps,
		Outbox:     []ports.EventEnvelope{intent},
	}); err != nil {
		return err
	}

	logger.Info("script reviewed",
		"event", logEvent,
		"module", "marketplace/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"approved", cmd.Approve,
	)
	return nil
}
