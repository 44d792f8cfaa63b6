package commands

import (
	"context"
	"log/slog"
	"strings"

	application "helvetia/contexts/marketplace/application-service/application"
	"helvetia/contexts/marketplace/application-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/application-service/domain/errors"
	"helvetia/contexts/marketplace/application-service/ports"
)

type WithdrawCommand struct {
	ApplicationID string
	ActorID       string
}

// WithdrawUseCase lets the applying creator retract a pending application.
type WithdrawUseCase struct {
	Repo   ports.ApplicationRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc WithdrawUseCase) Execute(ctx context.Context, cmd WithdrawCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	item, err := uc.Repo.Get(ctx, strings.TrimSpace(cmd.ApplicationID))
	if err != nil {
		return err
	}
	if item.CreatorID != strings.TrimSpace(cmd.ActorID) {
		return domainerrors.ErrNotAuthorized
	}
	if item.Status != entities.ApplicationStatusPending {
		return domainerrors.ErrInvalidStatusChange
	}

	item.Status = entities.ApplicationStatusWithdrawn
	item.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Repo.UpdateStatus(ctx, item, nil); err != nil {
		return err
	}

	logger.Info("application withdrawn",
		"event", "application_withdrawn",
		"module", "marketplace/application-service",
		"layer", "application",
		"application_id", item.ApplicationID,
	)
	return nil
}
