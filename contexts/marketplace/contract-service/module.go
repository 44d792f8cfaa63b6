package contractservice

import (
	"context"
	"errors"
	"log/slog"

	httpadapter "helvetia/contexts/marketplace/contract-service/adapters/http"
	"helvetia/contexts/marketplace/contract-service/adapters/memory"
	"helvetia/contexts/marketplace/contract-service/application/commands"
	"helvetia/contexts/marketplace/contract-service/application/workers"
	"helvetia/contexts/marketplace/contract-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/contract-service/domain/errors"
	"helvetia/contexts/marketplace/contract-service/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Consumer workers.Consumer
	Gate     Gate
	Store    *memory.Store
}

type Dependencies struct {
	Repo        ports.ContractRepository
	Dedup       workers.EventDedup
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Gate answers whether a campaign/creator pair has an active contract.
// The campaign module consults it before accepting script submissions.
type Gate struct {
	Repo ports.ContractRepository
}

func (g Gate) Active(ctx context.Context, campaignID string, creatorID string) (bool, error) {
	item, err := g.Repo.GetByPair(ctx, campaignID, creatorID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrContractNotFound) {
			return false, nil
		}
		return false, err
	}
	return item.Status == entities.ContractStatusActive, nil
}

func NewModule(deps Dependencies) Module {
	issue := commands.IssueContractUseCase{
		Repo:        deps.Repo,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	sign := commands.SignContractUseCase{
		Repo:        deps.Repo,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	void := commands.VoidContractUseCase{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			Repo:   deps.Repo,
			Sign:   sign,
			Logger: deps.Logger,
		},
		Consumer: workers.Consumer{
			Issue:  issue,
			Void:   void,
			Dedup:  deps.Dedup,
			Logger: deps.Logger,
		},
		Gate: Gate{Repo: deps.Repo},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:        store,
		Dedup:       store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
