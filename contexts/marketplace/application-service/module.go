package applicationservice

import (
	"log/slog"

	httpadapter "helvetia/contexts/marketplace/application-service/adapters/http"
	"helvetia/contexts/marketplace/application-service/adapters/memory"
	"helvetia/contexts/marketplace/application-service/application/commands"
	"helvetia/contexts/marketplace/application-service/application/queries"
	"helvetia/contexts/marketplace/application-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repo        ports.ApplicationRepository
	Campaigns   ports.CampaignDirectory
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	apply := commands.ApplyUseCase{
		Repo:        deps.Repo,
		Campaigns:   deps.Campaigns,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	withdraw := commands.WithdrawUseCase{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	decide := commands.DecideUseCase{
		Repo:        deps.Repo,
		Campaigns:   deps.Campaigns,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			Apply:    apply,
			Withdraw: withdraw,
			Decide:   decide,
			ListByCampaign: queries.ListByCampaignUseCase{
				Repo:      deps.Repo,
				Campaigns: deps.Campaigns,
				Logger:    deps.Logger,
			},
			ListByCreator: queries.ListByCreatorUseCase{
				Repo:   deps.Repo,
				Logger: deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:        store,
		Campaigns:   store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
