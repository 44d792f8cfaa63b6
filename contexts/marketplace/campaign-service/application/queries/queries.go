package queries

import (
	"context"
	"log/slog"
	"strings"

	application "helvetia/contexts/marketplace/campaign-service/application"
	"helvetia/contexts/marketplace/campaign-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/campaign-service/domain/errors"
	"helvetia/contexts/marketplace/campaign-service/ports"
)

type GetCampaignUseCase struct {
	Repo   ports.WorkflowRepository
	Logger *slog.Logger
}

type CampaignDetail struct {
	Campaign entities.Campaign
	Steps    []entities.MissionStep
}

func (uc GetCampaignUseCase) Execute(ctx context.Context, campaignID string) (CampaignDetail, error) {
	if strings.TrimSpace(campaignID) == "" {
		return CampaignDetail{}, domainerrors.ErrCampaignNotFound
	}
	campaign, err := uc.Repo.GetCampaign(ctx, strings.TrimSpace(campaignID))
	if err != nil {
		return CampaignDetail{}, err
	}
	steps, err := uc.Repo.ListSteps(ctx, campaign.CampaignID)
	if err != nil {
		return CampaignDetail{}, err
	}
	return CampaignDetail{Campaign: campaign, Steps: steps}, nil
}

type ListCampaignsQuery struct {
	BrandID   string
	CreatorID string
	Status    string
}

type ListCampaignsUseCase struct {
	Repo   ports.WorkflowRepository
	Logger *slog.Logger
}

func (uc ListCampaignsUseCase) Execute(ctx context.Context, query ListCampaignsQuery) ([]entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	items, err := uc.Repo.ListCampaigns(ctx, ports.CampaignFilter{
		BrandID:   strings.TrimSpace(query.BrandID),
		CreatorID: strings.TrimSpace(query.CreatorID),
		Status:    entities.CampaignStatus(strings.TrimSpace(query.Status)),
	})
	if err != nil {
		logger.Error("campaign list failed",
			"event", "campaign_list_failed",
			"module", "marketplace/campaign-service",
			"layer", "application",
			"error", err.Error(),
		)
		return nil, err
	}
	return items, nil
}
