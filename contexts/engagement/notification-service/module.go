package notificationservice

import (
	"log/slog"

	httpadapter "helvetia/contexts/engagement/notification-service/adapters/http"
	"helvetia/contexts/engagement/notification-service/adapters/memory"
	"helvetia/contexts/engagement/notification-service/application/commands"
	"helvetia/contexts/engagement/notification-service/application/queries"
	"helvetia/contexts/engagement/notification-service/application/workers"
	"helvetia/contexts/engagement/notification-service/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Consumer workers.Consumer

	// Test handles, only set by NewInMemoryModule.
	Store *memory.Store
	Cache *memory.CounterCache
}

type Dependencies struct {
	Repo        ports.NotificationRepository
	Cache       ports.CounterCache
	Dedup       workers.EventDedup
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	record := commands.RecordNotificationUseCase{
		Repo:        deps.Repo,
		Cache:       deps.Cache,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			MarkRead: commands.MarkReadUseCase{
				Repo:   deps.Repo,
				Cache:  deps.Cache,
				Clock:  deps.Clock,
				Logger: deps.Logger,
			},
			MarkAllRead: commands.MarkAllReadUseCase{
				Repo:   deps.Repo,
				Cache:  deps.Cache,
				Clock:  deps.Clock,
				Logger: deps.Logger,
			},
			List: queries.ListNotificationsUseCase{
				Repo:   deps.Repo,
				Logger: deps.Logger,
			},
			Counters: queries.GetCountersUseCase{
				Repo:   deps.Repo,
				Cache:  deps.Cache,
				Logger: deps.Logger,
			},
			Logger: deps.Logger,
		},
		Consumer: workers.Consumer{
			Record: record,
			Dedup:  deps.Dedup,
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	cache := memory.NewCounterCache()
	module := NewModule(Dependencies{
		Repo:        store,
		Cache:       cache,
		Dedup:       store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	module.Cache = cache
	return module
}
