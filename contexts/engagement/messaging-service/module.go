package messagingservice

import (
	"log/slog"

	httpadapter "helvetia/contexts/engagement/messaging-service/adapters/http"
	"helvetia/contexts/engagement/messaging-service/adapters/memory"
	"helvetia/contexts/engagement/messaging-service/application/commands"
	"helvetia/contexts/engagement/messaging-service/application/queries"
	"helvetia/contexts/engagement/messaging-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repo        ports.MessagingRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			StartConversation: commands.StartConversationUseCase{
				Repo:        deps.Repo,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Logger:      deps.Logger,
			},
			SendMessage: commands.SendMessageUseCase{
				Repo:        deps.Repo,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Logger:      deps.Logger,
			},
			MarkRead: commands.MarkReadUseCase{
				Repo:   deps.Repo,
				Clock:  deps.Clock,
				Logger: deps.Logger,
			},
			ListConversations: queries.ListConversationsUseCase{
				Repo:   deps.Repo,
				Logger: deps.Logger,
			},
			ListMessages: queries.ListMessagesUseCase{
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
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
