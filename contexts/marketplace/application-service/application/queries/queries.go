package queries

import (
	"context"
	"log/slog"
	"strings"

	"helvetia/contexts/marketplace/application-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/application-service/domain/errors"
	"helvetia/contexts/marketplace/application-service/ports"
)

type ListByCampaignUseCase struct {
	Repo      ports.ApplicationRepository
	Campaigns ports.CampaignDirectory
	Logger    *slog.Logger
}

// Execute lists a campaign's applications for its brand or an admin.
func (uc ListByCampaignUseCase) Execute(
	ctx context.Context,
	campaignID string,
	actorID string,
	actorRole string,
) ([]entities.Application, error) {
	summary, err := uc.Campaigns.Summary(ctx, strings.TrimSpace(campaignID))
	if err != nil {
		return nil, err
	}
	if actorRole != "admin" && summary.BrandID != strings.TrimSpace(actorID) {
		return nil, domainerrors.ErrNotAuthorized
	}
	return uc.Repo.ListByCampaign(ctx, summary.CampaignID)
}

type ListByCreatorUseCase struct {
	Repo   ports.ApplicationRepository
	Logger *slog.Logger
}

func (uc ListByCreatorUseCase) Execute(ctx context.Context, creatorID string) ([]entities.Application, error) {
	return uc.Repo.ListByCreator(ctx, strings.TrimSpace(creatorID))
}
