package campaignservice

import (
	"log/slog"
	"time"

	httpadapter "helvetia/contexts/marketplace/campaign-service/adapters/http"
	"helvetia/contexts/marketplace/campaign-service/adapters/memory"
	"helvetia/contexts/marketplace/campaign-service/application/commands"
	"helvetia/contexts/marketplace/campaign-service/application/queries"
	"helvetia/contexts/marketplace/campaign-service/application/workers"
	"helvetia/contexts/marketplace/campaign-service/domain/entities"
	"helvetia/contexts/marketplace/campaign-service/ports"
)

type Module struct {
	Handler         httpadapter.Handler
	DeadlineSweeper workers.DeadlineSweeper
	Store           *memory.Store
	Gate            *memory.Gate
}

type Dependencies struct {
	Repo           ports.WorkflowRepository
	Deadlines      ports.DeadlineRepository
	Contracts      ports.ContractGate
	Idempotency    ports.IdempotencyStore
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	IdempotencyTTL time.Duration
	SweepLimit     int
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createCampaign := commands.CreateCampaignUseCase{
		Repo:           deps.Repo,
		Idempotency:    deps.Idempotency,
		Clock:          deps.Clock,
		IDGenerator:    deps.IDGenerator,
		IdempotencyTTL: deps.IdempotencyTTL,
		Logger:         deps.Logger,
	}
	proposeCreators := commands.ProposeCreatorsUseCase{
		Repo:        deps.Repo,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	selectCreator := commands.SelectCreatorUseCase{
		Repo:        deps.Repo,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	rejectProfiles := commands.RejectProfilesUseCase{
		Repo:        deps.Repo,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	submitScript := commands.SubmitScriptUseCase{
		Repo:        deps.Repo,
		Contracts:   deps.Contracts,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	reviewScript := commands.ReviewScriptUseCase{
		Repo:        deps.Repo,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	submitVideo := commands.SubmitVideoUseCase{
		Repo:        deps.Repo,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	reviewVideo := commands.ReviewVideoUseCase{
		Repo:        deps.Repo,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	completeMission := commands.CompleteMissionUseCase{
		Repo:        deps.Repo,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	cancelCampaign := commands.CancelCampaignUseCase{
		Repo:        deps.Repo,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}

	listCampaigns := queries.ListCampaignsUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}
	getCampaign := queries.GetCampaignUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateCampaign:  createCampaign,
			ProposeCreators: proposeCreators,
			SelectCreator:   selectCreator,
			RejectProfiles:  rejectProfiles,
			SubmitScript:    submitScript,
			ReviewScript:    reviewScript,
			SubmitVideo:     submitVideo,
			ReviewVideo:     reviewVideo,
			CompleteMission: completeMission,
			CancelCampaign:  cancelCampaign,
			ListCampaigns:   listCampaigns,
			GetCampaign:     getCampaign,
			Logger:          deps.Logger,
		},
		DeadlineSweeper: workers.DeadlineSweeper{
			Repo:   deps.Deadlines,
			Clock:  deps.Clock,
			Limit:  deps.SweepLimit,
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Campaign, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	gate := memory.NewGate()
	module := NewModule(Dependencies{
		Repo:           store,
		Deadlines:      store,
		Contracts:      gate,
		Idempotency:    store,
		Clock:          store,
		IDGenerator:    store,
		IdempotencyTTL: 7 * 24 * time.Hour,
		SweepLimit:     100,
		Logger:         logger,
	})
	module.Store = store
	module.Gate = gate
	return module
}
