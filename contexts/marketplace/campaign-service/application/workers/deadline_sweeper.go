package workers

import (
	"context"
	"log/slog"

	application "helvetia/contexts/marketplace/campaign-service/application"
	"helvetia/contexts/marketplace/campaign-service/ports"
)

// DeadlineSweeper cancels open campaigns whose deadline passed without a
// creator being selected.
type DeadlineSweeper struct {
	Repo   ports.DeadlineRepository
	Clock  ports.Clock
	Limit  int
	Logger *slog.Logger
}

func (w DeadlineSweeper) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(w.Logger)
	limit := w.Limit
	if limit <= 0 {
		limit = 100
	}

	cancelled, err := w.Repo.CancelCampaignsPastDeadline(ctx, w.Clock.Now().UTC(), limit)
	if err != nil {
		logger.Error("deadline sweep failed",
			"event", "campaign_deadline_sweep_failed",
			"module", "marketplace/campaign-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(cancelled) > 0 {
		logger.Info("deadline sweep cancelled campaigns",
			"event", "campaign_deadline_sweep_completed",
			"module", "marketplace/campaign-service",
			"layer", "worker",
			"cancelled_count", len(cancelled),
		)
	}
	return nil
}
