package clipservice

import (
	"log/slog"

	httpadapter "helvetia/contexts/studio/clip-service/adapters/http"
	"helvetia/contexts/studio/clip-service/adapters/memory"
	"helvetia/contexts/studio/clip-service/application"
	"helvetia/contexts/studio/clip-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service *application.Service

	// Test handles, only set by NewInMemoryModule.
	Runner   *memory.Runner
	Uploader *memory.Uploader
}

type Dependencies struct {
	Runner      ports.Runner
	Uploader    ports.ObjectUploader
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := &application.Service{
		Runner:      deps.Runner,
		Uploader:    deps.Uploader,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	runner := memory.NewRunner()
	uploader := memory.NewUploader()
	module := NewModule(Dependencies{
		Runner:      runner,
		Uploader:    uploader,
		IDGenerator: memory.UUIDGenerator{},
		Logger:      logger,
	})
	module.Runner = runner
	module.Uploader = uploader
	return module
}
