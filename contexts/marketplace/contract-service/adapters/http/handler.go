package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"helvetia/contexts/marketplace/contract-service/application/commands"
	"helvetia/contexts/marketplace/contract-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/contract-service/domain/errors"
	"helvetia/contexts/marketplace/contract-service/ports"
	httptransport "helvetia/contexts/marketplace/contract-service/transport/http"
)

type Handler struct {
	Repo   ports.ContractRepository
	Sign   commands.SignContractUseCase
	Logger *slog.Logger
}

func (h Handler) GetContractHandler(ctx context.Context, userID string, contractID string) (httptransport.GetContractResponse, error) {
	item, err := h.Repo.Get(ctx, contractID)
	if err != nil {
		return httptransport.GetContractResponse{}, err
	}
	trimmed := strings.TrimSpace(userID)
	if item.BrandID != trimmed && item.CreatorID != trimmed {
		return httptransport.GetContractResponse{}, domainerrors.ErrNotAuthorized
	}
	return httptransport.GetContractResponse{Contract: mapContract(item)}, nil
}

func (h Handler) ListContractsHandler(ctx context.Context, userID string) (httptransport.ListContractsResponse, error) {
	items, err := h.Repo.ListByUser(ctx, userID)
	if err != nil {
		return httptransport.ListContractsResponse{}, err
	}
	result := make([]httptransport.ContractDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapContract(item))
	}
	return httptransport.ListContractsResponse{Items: result}, nil
}

func (h Handler) SignContractHandler(ctx context.Context, userID string, contractID string) error {
	return h.Sign.Execute(ctx, commands.SignContractCommand{
		ContractID: contractID,
		ActorID:    userID,
	})
}

func mapContract(item entities.Contract) httptransport.ContractDTO {
	result := httptransport.ContractDTO{
		ContractID: item.ContractID,
		CampaignID: item.CampaignID,
		BrandID:    item.BrandID,
		CreatorID:  item.CreatorID,
		Terms:      item.Terms,
		Status:     string(item.Status),
		IssuedAt:   item.IssuedAt.Format(time.RFC3339),
	}
	if item.SignedAt != nil {
		result.SignedAt = item.SignedAt.UTC().Format(time.RFC3339)
	}
	if item.CancelledAt != nil {
		result.CancelledAt = item.CancelledAt.UTC().Format(time.RFC3339)
	}
	return result
}
