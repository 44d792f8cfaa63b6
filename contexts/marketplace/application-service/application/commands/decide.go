package commands

import (
	"context"
	"log/slog"
	"strings"

	application "helvetia/contexts/marketplace/application-service/application"
	"helvetia/contexts/marketplace/application-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/application-service/domain/errors"
	"helvetia/contexts/marketplace/application-service/ports"
	"helvetia/internal/shared/events"
)

type DecisionAction string

const (
	DecisionAccept DecisionAction = "accept"
	DecisionReject DecisionAction = "reject"
)

type DecideCommand struct {
	ApplicationID string
	ActorID       string
	ActorRole     string
	Action        DecisionAction
}

// DecideUseCase records the brand's verdict on a pending application and
// notifies the creator in the same transaction.
type DecideUseCase struct {
	Repo        ports.ApplicationRepository
	Campaigns   ports.CampaignDirectory
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc DecideUseCase) Execute(ctx context.Context, cmd DecideCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	item, err := uc.Repo.Get(ctx, strings.TrimSpace(cmd.ApplicationID))
	if err != nil {
		return err
	}
	summary, err := uc.Campaigns.Summary(ctx, item.CampaignID)
	if err != nil {
		return err
	}
	if cmd.ActorRole != RoleAdmin && (cmd.ActorRole != RoleBrand || summary.BrandID != strings.TrimSpace(cmd.ActorID)) {
		return domainerrors.ErrNotAuthorized
	}
	if item.Status != entities.ApplicationStatusPending {
		return domainerrors.ErrInvalidStatusChange
	}

	var title, body, logEvent string
	switch cmd.Action {
	case DecisionAccept:
		item.Status = entities.ApplicationStatusAccepted
		title = "Application accepted"
		body = "The brand accepted your application."
		logEvent = "application_accepted"
	case DecisionReject:
		item.Status = entities.ApplicationStatusRejected
		title = "Application rejected"
		body = "The brand passed on your application this time."
		logEvent = "application_rejected"
	default:
		return domainerrors.ErrInvalidApplicationInput
	}

	now := uc.Clock.Now().UTC()
	item.UpdatedAt = now

	eventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	intent, err := notificationEnvelope(eventID, item.CampaignID, now, events.NotificationIntent{
		UserID:     item.CreatorID,
		Category:   events.CategoryApplication,
		Title:      title,
		Body:       body,
		EntityType: "application",
		EntityID:   item.ApplicationID,
	})
	if err != nil {
		return err
	}

	if err := uc.Repo.UpdateStatus(ctx, item, []ports.EventEnvelope{intent}); err != nil {
		return err
	}

	logger.Info("application decided",
		"event", logEvent,
		"module", "marketplace/application-service",
		"layer", "application",
		"application_id", item.ApplicationID,
		"campaign_id", item.CampaignID,
	)
	return nil
}
