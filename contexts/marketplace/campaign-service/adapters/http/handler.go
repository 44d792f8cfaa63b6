package httpadapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"helvetia/contexts/marketplace/campaign-service/application/commands"
	"helvetia/contexts/marketplace/campaign-service/application/queries"
	"helvetia/contexts/marketplace/campaign-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/campaign-service/domain/errors"
	httptransport "helvetia/contexts/marketplace/campaign-service/transport/http"
)

type Handler struct {
	CreateCampaign  commands.CreateCampaignUseCase
	ProposeCreators commands.ProposeCreatorsUseCase
	SelectCreator   commands.SelectCreatorUseCase
	RejectProfiles  commands.RejectProfilesUseCase
	SubmitScript    commands.SubmitScriptUseCase
	ReviewScript    commands.ReviewScriptUseCase
	SubmitVideo     commands.SubmitVideoUseCase
	ReviewVideo     commands.ReviewVideoUseCase
	CompleteMission commands.CompleteMissionUseCase
	CancelCampaign  commands.CancelCampaignUseCase
	ListCampaigns   queries.ListCampaignsUseCase
	GetCampaign     queries.GetCampaignUseCase
	Logger          *slog.Logger
}

func (h Handler) CreateCampaignHandler(
	ctx context.Context,
	userID string,
	idempotencyKey string,
	req httptransport.CreateCampaignRequest,
) (httptransport.CreateCampaignResponse, error) {
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return httptransport.CreateCampaignResponse{}, domainerrors.ErrInvalidCampaignInput
	}
	result, err := h.CreateCampaign.Execute(ctx, commands.CreateCampaignCommand{
		BrandID:        userID,
		IdempotencyKey: idempotencyKey,
		Title:          req.Title,
		Description:    req.Description,
		ProductName:    req.ProductName,
		ProductURL:     req.ProductURL,
		VideoFormat:    req.VideoFormat,
		ScriptType:     req.ScriptType,
		ScriptNotes:    req.ScriptNotes,
		UsageRights:    req.UsageRights,
		BudgetCHF:      req.BudgetCHF,
		DeadlineAt:     deadline,
	})
	if err != nil {
		return httptransport.CreateCampaignResponse{}, err
	}
	return httptransport.CreateCampaignResponse{
		Campaign: mapCampaign(result.Campaign),
		Replayed: result.Replayed,
	}, nil
}

func (h Handler) ListCampaignsHandler(
	ctx context.Context,
	brandID string,
	creatorID string,
	status string,
) (httptransport.ListCampaignsResponse, error) {
	items, err := h.ListCampaigns.Execute(ctx, queries.ListCampaignsQuery{
		BrandID:   brandID,
		CreatorID: creatorID,
		Status:    status,
	})
	if err != nil {
		return httptransport.ListCampaignsResponse{}, err
	}
	result := make([]httptransport.CampaignDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapCampaign(item))
	}
	return httptransport.ListCampaignsResponse{Items: result}, nil
}

func (h Handler) GetCampaignHandler(ctx context.Context, campaignID string) (httptransport.GetCampaignResponse, error) {
	detail, err := h.GetCampaign.Execute(ctx, campaignID)
	if err != nil {
		return httptransport.GetCampaignResponse{}, err
	}
	steps := make([]httptransport.MissionStepDTO, 0, len(detail.Steps))
	for _, step := range detail.Steps {
		steps = append(steps, httptransport.MissionStepDTO{
			StepID:    step.StepID,
			StepType:  string(step.Type),
			Status:    string(step.Status),
			Payload:   step.Payload,
			UpdatedAt: step.UpdatedAt.Format(time.RFC3339),
		})
	}
	return httptransport.GetCampaignResponse{
		Campaign: mapCampaign(detail.Campaign),
		Steps:    steps,
	}, nil
}

func (h Handler) ProposeCreatorsHandler(
	ctx context.Context,
	actorRole string,
	campaignID string,
	req httptransport.ProposeCreatorsRequest,
) error {
	return h.ProposeCreators.Execute(ctx, commands.ProposeCreatorsCommand{
		CampaignID: campaignID,
		ActorRole:  actorRole,
		ProfileIDs: append([]string(nil), req.ProfileIDs...),
	})
}

func (h Handler) SelectCreatorHandler(
	ctx context.Context,
	userID string,
	actorRole string,
	campaignID string,
	req httptransport.SelectCreatorRequest,
) error {
	return h.SelectCreator.Execute(ctx, commands.SelectCreatorCommand{
		CampaignID: campaignID,
		ActorID:    userID,
		ActorRole:  actorRole,
		CreatorID:  req.CreatorID,
	})
}

func (h Handler) RejectProfilesHandler(
	ctx context.Context,
	userID string,
	actorRole string,
	campaignID string,
	req httptransport.RejectProfilesRequest,
) error {
	return h.RejectProfiles.Execute(ctx, commands.RejectProfilesCommand{
		CampaignID: campaignID,
		ActorID:    userID,
		ActorRole:  actorRole,
		Reason:     req.Reason,
	})
}

func (h Handler) SubmitScriptHandler(
	ctx context.Context,
	userID string,
	campaignID string,
	req httptransport.SubmitScriptRequest,
) error {
	return h.SubmitScript.Execute(ctx, commands.SubmitScriptCommand{
		CampaignID: campaignID,
		ActorID:    userID,
		Script:     req.Script,
	})
}

func (h Handler) ReviewScriptHandler(
	ctx context.Context,
	userID string,
	actorRole string,
	campaignID string,
	req httptransport.ReviewScriptRequest,
) error {
	return h.ReviewScript.Execute(ctx, commands.ReviewScriptCommand{
		CampaignID: campaignID,
		ActorID:    userID,
		ActorRole:  actorRole,
		Approve:    req.Approve,
		Note:       req.Note,
	})
}

func (h Handler) SubmitVideoHandler(
	ctx context.Context,
	userID string,
	campaignID string,
	req httptransport.SubmitVideoRequest,
) error {
	return h.SubmitVideo.Execute(ctx, commands.SubmitVideoCommand{
		CampaignID: campaignID,
		ActorID:    userID,
		MediaKey:   req.MediaKey,
	})
}

func (h Handler) ReviewVideoHandler(
	ctx context.Context,
	userID string,
	actorRole string,
	campaignID string,
	req httptransport.ReviewVideoRequest,
) error {
	return h.ReviewVideo.Execute(ctx, commands.ReviewVideoCommand{
		CampaignID: campaignID,
		ActorID:    userID,
		ActorRole:  actorRole,
		Action:     commands.VideoReviewAction(strings.TrimSpace(req.Action)),
		Note:       req.Note,
	})
}

func (h Handler) CompleteMissionHandler(
	ctx context.Context,
	userID string,
	actorRole string,
	campaignID string,
) error {
	return h.CompleteMission.Execute(ctx, commands.CompleteMissionCommand{
		CampaignID: campaignID,
		ActorID:    userID,
		ActorRole:  actorRole,
	})
}

func (h Handler) CancelCampaignHandler(
	ctx context.Context,
	userID string,
	actorRole string,
	campaignID string,
	req httptransport.CancelCampaignRequest,
) error {
	return h.CancelCampaign.Execute(ctx, commands.CancelCampaignCommand{
		CampaignID: campaignID,
		ActorID:    userID,
		ActorRole:  actorRole,
		Reason:     req.Reason,
	})
}

func mapCampaign(item entities.Campaign) httptransport.CampaignDTO {
	result := httptransport.CampaignDTO{
		CampaignID:        item.CampaignID,
		BrandID:           item.BrandID,
		Title:             item.Title,
		Description:       item.Description,
		ProductName:       item.ProductName,
		ProductURL:        item.ProductURL,
		VideoFormat:       string(item.VideoFormat),
		ScriptType:        string(item.ScriptType),
		ScriptNotes:       item.ScriptNotes,
		UsageRights:       string(item.UsageRights),
		BudgetCHF:         item.BudgetCHF,
		Status:            string(item.Status),
		SelectedCreatorID: item.SelectedCreatorID,
		CreatedAt:         item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         item.UpdatedAt.Format(time.RFC3339),
	}
	if item.DeadlineAt != nil {
		result.Deadline = item.DeadlineAt.UTC().Format(time.RFC3339)
	}
	if item.CompletedAt != nil {
		result.CompletedAt = item.CompletedAt.UTC().Format(time.RFC3339)
	}
	if item.CancelledAt != nil {
		result.CancelledAt = item.CancelledAt.UTC().Format(time.RFC3339)
	}
	return result
}

func parseDeadline(raw string) (*time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("parse deadline: %w", err)
	}
	utc := parsed.UTC()
	return &utc, nil
}
