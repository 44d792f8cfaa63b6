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

type ApplyCommand struct {
	CampaignID      string
	CreatorID       string
	Pitch           string
	ProposedRateCHF float64
}

// ApplyUseCase records a creator's application to an open campaign and
// notifies the brand. The unique (campaign, creator) constraint makes a
// second application fail regardless of interleaving.
type ApplyUseCase struct {
	Repo        ports.ApplicationRepository
	Campaigns   ports.CampaignDirectory
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc ApplyUseCase) Execute(ctx context.Context, cmd ApplyCommand) (entities.Application, error) {
	logger := application.ResolveLogger(uc.Logger)

	summary, err := uc.Campaigns.Summary(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.Application{}, err
	}
	if summary.Status != "open" {
		return entities.Application{}, domainerrors.ErrCampaignNotOpen
	}

	now := uc.Clock.Now().UTC()
	applicationID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Application{}, err
	}
	item := entities.Application{
		ApplicationID:   applicationID,
		CampaignID:      summary.CampaignID,
		CreatorID:       strings.TrimSpace(cmd.CreatorID),
		Pitch:           strings.TrimSpace(cmd.Pitch),
		ProposedRateCHF: cmd.ProposedRateCHF,
		Status:          entities.ApplicationStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if !item.ValidateBasics() {
		return entities.Application{}, domainerrors.ErrInvalidApplicationInput
	}

	eventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Application{}, err
	}
	intent, err := notificationEnvelope(eventID, item.CampaignID, now, events.NotificationIntent{
		UserID:     summary.BrandID,
		Category:   events.CategoryApplication,
		Title:      "New application",
		Body:       "A creator applied to your campaign.",
		EntityType: "application",
		EntityID:   item.ApplicationID,
	})
	if err != nil {
		return entities.Application{}, err
	}

	if err := uc.Repo.Create(ctx, item, []ports.EventEnvelope{intent}); err != nil {
		return entities.Application{}, err
	}

	logger.Info("application submitted",
		"event", "application_submitted",
		"module", "marketplace/application-service",
		"layer", "application",
		"application_id", item.ApplicationID,
		"campaign_id", item.CampaignID,
	)
	return item, nil
}
