package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"helvetia/contexts/marketplace/application-service/application/commands"
	"helvetia/contexts/marketplace/application-service/application/queries"
	"helvetia/contexts/marketplace/application-service/domain/entities"
	httptransport "helvetia/contexts/marketplace/application-service/transport/http"
)

type Handler struct {
	Apply          commands.ApplyUseCase
	Withdraw       commands.WithdrawUseCase
	Decide         commands.DecideUseCase
	ListByCampaign queries.ListByCampaignUseCase
	ListByCreator  queries.ListByCreatorUseCase
	Logger         *slog.Logger
}

func (h Handler) ApplyHandler(ctx context.Context, userID string, req httptransport.ApplyRequest) (httptransport.ApplyResponse, error) {
	item, err := h.Apply.Execute(ctx, commands.ApplyCommand{
		CampaignID:      req.CampaignID,
		CreatorID:       userID,
		Pitch:           req.Pitch,
		ProposedRateCHF: req.ProposedRateCHF,
	})
	if err != nil {
		return httptransport.ApplyResponse{}, err
	}
	return httptransport.ApplyResponse{Application: mapApplication(item)}, nil
}

func (h Handler) WithdrawHandler(ctx context.Context, userID string, applicationID string) error {
	return h.Withdraw.Execute(ctx, commands.WithdrawCommand{
		ApplicationID: applicationID,
		ActorID:       userID,
	})
}

func (h Handler) DecideHandler(
	ctx context.Context,
	userID string,
	actorRole string,
	applicationID string,
	req httptransport.DecideRequest,
) error {
	return h.Decide.Execute(ctx, commands.DecideCommand{
		ApplicationID: applicationID,
		ActorID:       userID,
		ActorRole:     actorRole,
		Action:        commands.DecisionAction(strings.TrimSpace(req.Action)),
	})
}

func (h Handler) ListByCampaignHandler(
	ctx context.Context,
	userID string,
	actorRole string,
	campaignID string,
) (httptransport.ListApplicationsResponse, error) {
	items, err := h.ListByCampaign.Execute(ctx, campaignID, userID, actorRole)
	if err != nil {
		return httptransport.ListApplicationsResponse{}, err
	}
	return httptransport.ListApplicationsResponse{Items: mapApplications(items)}, nil
}

func (h Handler) ListByCreatorHandler(ctx context.Context, userID string) (httptransport.ListApplicationsResponse, error) {
	items, err := h.ListByCreator.Execute(ctx, userID)
	if err != nil {
		return httptransport.ListApplicationsResponse{}, err
	}
	return httptransport.ListApplicationsResponse{Items: mapApplications(items)}, nil
}

func mapApplication(item entities.Application) httptransport.ApplicationDTO {
	return httptransport.ApplicationDTO{
		ApplicationID:   item.ApplicationID,
		CampaignID:      item.CampaignID,
		CreatorID:       item.CreatorID,
		Pitch:           item.Pitch,
		ProposedRateCHF: item.ProposedRateCHF,
		Status:          string(item.Status),
		CreatedAt:       item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       item.UpdatedAt.Format(time.RFC3339),
	}
}

func mapApplications(items []entities.Application) []httptransport.ApplicationDTO {
	result := make([]httptransport.ApplicationDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapApplication(item))
	}
	return result
}
