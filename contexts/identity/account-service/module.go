package accountservice

import (
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"helvetia/contexts/identity/account-service/adapters/auth"
	httpadapter "helvetia/contexts/identity/account-service/adapters/http"
	"helvetia/contexts/identity/account-service/adapters/memory"
	"helvetia/contexts/identity/account-service/application/commands"
	"helvetia/contexts/identity/account-service/application/queries"
	"helvetia/contexts/identity/account-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Tokens  ports.TokenIssuer

	// Test handles, only set by NewInMemoryModule.
	Store    *memory.Store
	Sessions *memory.SessionCache
}

type Dependencies struct {
	Repo        ports.AccountRepository
	Cache       ports.SessionCache
	Hasher      ports.PasswordHasher
	Tokens      ports.TokenIssuer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	LoadTimeout time.Duration
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			SignUp: commands.SignUpUseCase{
				Repo:        deps.Repo,
				Cache:       deps.Cache,
				Hasher:      deps.Hasher,
				Tokens:      deps.Tokens,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Logger:      deps.Logger,
			},
			SignIn: commands.SignInUseCase{
				Repo:   deps.Repo,
				Cache:  deps.Cache,
				Hasher: deps.Hasher,
				Tokens: deps.Tokens,
				Clock:  deps.Clock,
				Logger: deps.Logger,
			},
			SignOut: commands.SignOutUseCase{
				Cache:  deps.Cache,
				Logger: deps.Logger,
			},
			LoadSession: queries.LoadSessionUseCase{
				Repo:    deps.Repo,
				Cache:   deps.Cache,
				Clock:   deps.Clock,
				Group:   new(singleflight.Group),
				Timeout: deps.LoadTimeout,
				Logger:  deps.Logger,
			},
			Logger: deps.Logger,
		},
		Tokens: deps.Tokens,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	sessions := memory.NewSessionCache()
	module := NewModule(Dependencies{
		Repo:        store,
		Cache:       sessions,
		Hasher:      auth.BcryptHasher{},
		Tokens:      auth.JWTIssuer{Secret: []byte("local-dev-secret"), TTL: 24 * time.Hour},
		Clock:       store,
		IDGenerator: store,
		LoadTimeout: 3 * time.Second,
		Logger:      logger,
	})
	module.Store = store
	module.Sessions = sessions
	return module
}
