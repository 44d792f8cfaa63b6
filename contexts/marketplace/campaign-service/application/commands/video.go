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

type SubmitVideoCommand struct {
	CampaignID string
	ActorID    string
	MediaKey   string
}

// SubmitVideoUseCase records a deliverable submission. MediaKey points at
// the uploaded object in storage.
type SubmitVideoUseCase struct {
	Repo        ports.WorkflowRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc SubmitVideoUseCase) Execute(ctx context.Context, cmd SubmitVideoCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	mediaKey := strings.TrimSpace(cmd.MediaKey)
	if mediaKey == "" {
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
	if !mission.PredecessorDone(entities.StepVideoSubmitted) {
		return domainerrors.ErrStepOrderViolation
	}
	if mission.IsDone(entities.StepVideoApproved) {
		return domainerrors.ErrInvalidStateTransition
	}

	now := uc.Clock.Now().UTC()
	step, err := mutateStep(mission, entities.StepVideoSubmitted, entities.StepStatusDone, mediaKey, now)
	if err != nil {
		return err
	}

	eventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	intent, err := notificationEnvelope(eventID, campaign.CampaignID, now, events.NotificationIntent{
		UserID:     campaign.BrandID,
		Category:   events.CategoryDeliverable,
		Title:      "Video submitted",
		Body:       "The creator delivered a video for your review.",
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

	logger.Info("video submitted",
		"event", "campaign_video_submitted",
		"module", "marketplace/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
	)
	return nil
}

type VideoReviewAction string

const (
	VideoActionApprove         VideoReviewAction = "approve"
	VideoActionRequestRevision VideoReviewAction = "request_revision"
	VideoActionReject          VideoReviewAction = "reject"
)

type ReviewVideoCommand struct {
	CampaignID string
	ActorID    string
	ActorRole  string
	Action     VideoReviewAction
	Note       string
}

// ReviewVideoUseCase handles the brand's verdict on a deliverable.
// Approval completes the step; a revision request reopens the submission;
// a rejection is terminal for the submission and never advances the
// pipeline.
type ReviewVideoUseCase struct {
	Repo        ports.WorkflowRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc ReviewVideoUseCase) Execute(ctx context.Context, cmd ReviewVideoCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	campaign, mission, err := loadMission(ctx, uc.Repo, cmd.CampaignID)
	if err != nil {
		return err
	}
	if err := brandOrAdmin(campaign, cmd.ActorID, cmd.ActorRole); err != nil {
		return err
	}
	if !mission.IsDone(entities.StepVideoSubmitted) {
		return domainerrors.ErrStepOrderViolation
	}
	if mission.IsDone(entities.StepVideoApproved) {
		return domainerrors.ErrInvalidStateTransition
	}

	now := uc.Clock.Now().UTC()
	note := strings.TrimSpace(cmd.Note)
	var steps []entities.MissionStep
	var title, body, logEvent string

	switch cmd.Action {
	case VideoActionApprove:
		approved, err := mutateStep(mission, entities.StepVideoApproved, entities.StepStatusDone, "", now)
		if err != nil {
			return err
		}
		steps = []entities.MissionStep{approved}
		title = "Video approved"
		body = "Your video was approved by the brand."
		logEvent = "campaign_video_approved"
	case VideoActionRequestRevision:
		if note == "" {
			return domainerrors.ErrInvalidCampaignInput
		}
		reopened, err := mutateStep(mission, entities.StepVideoSubmitted, entities.StepStatusInProgress, note, now)
		if err != nil {
			return err
		}
		steps = []entities.MissionStep{reopened}
		title = "Video revision requested"
		body = "The brand requested changes to your video."
		logEvent = "campaign_video_revision_requested"
	case VideoActionReject:
		rejected, err := mutateStep(mission, entities.StepVideoApproved, entities.StepStatusRejected, note, now)
		if err != nil {
			return err
		}
		steps = []entities.MissionStep{rejected}
		title = "Video rejected"
		body = "The brand rejected the delivered video."
		logEvent = "campaign_video_rejected"
	default:
		return domainerrors.ErrInvalidStateTransition
	}

	eventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	intent, err := notificationEnvelope(eventID, campaign.CampaignID, now, events.NotificationIntent{
		UserID:     campaign.SelectedCreatorID,
		Category:   events.CategoryDeliverable,
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

	logger.Info("video reviewed",
		"event", logEvent,
		"module", "marketplace/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"action", string(cmd.Action),
	)
	return nil
}
