package httpadapter

import (
	"context"
	"log/slog"

	"helvetia/contexts/studio/clip-service/application"
	httptransport "helvetia/contexts/studio/clip-service/transport/http"
)

type Handler struct {
	Service *application.Service
	Logger  *slog.Logger
}

func (h Handler) TrimHandler(ctx context.Context, userID string, req httptransport.TrimRequest) (httptransport.TrimResponse, error) {
	result, err := h.Service.Trim(ctx, application.TrimInput{
		UserID:       userID,
		CampaignID:   req.CampaignID,
		FileName:     req.FileName,
		Media:        req.Media,
		StartSeconds: req.StartSeconds,
		EndSeconds:   req.EndSeconds,
		SubtitlesSRT: req.SubtitlesSRT,
	})
	if err != nil {
		return httptransport.TrimResponse{}, err
	}
	return httptransport.TrimResponse{
		ObjectKey:       result.ObjectKey,
		StorageRef:      result.StorageRef,
		DurationSeconds: result.DurationSeconds,
		SizeBytes:       result.SizeBytes,
	}, nil
}
