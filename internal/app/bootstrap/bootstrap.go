package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	messagingservice "helvetia/contexts/engagement/messaging-service"
	messagingpostgres "helvetia/contexts/engagement/messaging-service/adapters/postgres"
	notificationservice "helvetia/contexts/engagement/notification-service"
	notificationpostgres "helvetia/contexts/engagement/notification-service/adapters/postgres"
	notificationredis "helvetia/contexts/engagement/notification-service/adapters/redis"
	notificationworkers "helvetia/contexts/engagement/notification-service/application/workers"
	accountservice "helvetia/contexts/identity/account-service"
	accountauth "helvetia/contexts/identity/account-service/adapters/auth"
	accountpostgres "helvetia/contexts/identity/account-service/adapters/postgres"
	accountredis "helvetia/contexts/identity/account-service/adapters/redis"
	applicationservice "helvetia/contexts/marketplace/application-service"
	applicationpostgres "helvetia/contexts/marketplace/application-service/adapters/postgres"
	campaignservice "helvetia/contexts/marketplace/campaign-service"
	campaignpostgres "helvetia/contexts/marketplace/campaign-service/adapters/postgres"
	campaignworkers "helvetia/contexts/marketplace/campaign-service/application/workers"
	contractservice "helvetia/contexts/marketplace/contract-service"
	contractpostgres "helvetia/contexts/marketplace/contract-service/adapters/postgres"
	contractworkers "helvetia/contexts/marketplace/contract-service/application/workers"
	clipservice "helvetia/contexts/studio/clip-service"
	clipffmpeg "helvetia/contexts/studio/clip-service/adapters/ffmpeg"
	"helvetia/internal/platform/cache"
	"helvetia/internal/platform/config"
	"helvetia/internal/platform/db"
	"helvetia/internal/platform/httpserver"
	"helvetia/internal/platform/messaging"
	"helvetia/internal/platform/storage"
	"helvetia/internal/shared/events"
	"helvetia/internal/shared/outbox"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const (
	idempotencyTTL  = 7 * 24 * time.Hour
	counterCacheTTL = 5 * time.Minute
	sessionTimeout  = 3 * time.Second
	sweepLimit      = 100
)

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	redis    *cache.Redis
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres      *db.Postgres
	redis         *cache.Redis
	bus           *messaging.Bus
	relay         outbox.Relay
	notifications notificationworkers.Consumer
	contracts     contractworkers.Consumer
	sweeper       campaignworkers.DeadlineSweeper
	pollInterval  time.Duration
	sweepEnabled  bool
	logger        *slog.Logger
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := buildLogger(cfg).With("service", cfg.ServiceName, "process", "api")

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, errors.New("AUTH_JWT_SECRET is required")
	}

	pg, redisConn, err := connectStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	objectStore, err := storage.Connect(
		ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.Bucket,
		cfg.Minio.UseSSL,
		logger,
	)
	if err != nil {
		return nil, err
	}

	runner, err := clipffmpeg.NewRunner(cfg.Clip.FFmpegBinary, cfg.Clip.ScratchDir)
	if err != nil {
		return nil, err
	}

	modules, err := buildModules(cfg, pg, redisConn, logger)
	if err != nil {
		return nil, err
	}
	modules.Clips = clipservice.NewModule(clipservice.Dependencies{
		Runner:      runner,
		Uploader:    objectStore,
		IDGenerator: clipffmpeg.UUIDGenerator{},
		Logger:      logger,
	})

	router := httpserver.NewRouter(modules, logger)
	return &APIApp{
		server:   httpserver.New(cfg.HTTP.Addr, router, logger),
		postgres: pg,
		redis:    redisConn,
		logger:   logger,
	}, nil
}

func BuildWorker(ctx context.Context) (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := buildLogger(cfg).With("service", cfg.ServiceName, "process", "worker")

	pg, redisConn, err := connectStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)
	dedup := outbox.NewDedupStore(pg.DB)

	notificationModule := notificationservice.NewModule(notificationservice.Dependencies{
		Repo:        notificationpostgres.NewRepository(pg.DB, logger),
		Cache:       notificationredis.NewCounterCache(redisConn.Client, counterCacheTTL),
		Dedup:       dedup,
		Clock:       notificationpostgres.SystemClock{},
		IDGenerator: notificationpostgres.UUIDGenerator{},
		Logger:      logger,
	})
	contractModule := contractservice.NewModule(contractservice.Dependencies{
		Repo:        contractpostgres.NewRepository(pg.DB, logger),
		Dedup:       dedup,
		Clock:       contractpostgres.SystemClock{},
		IDGenerator: contractpostgres.UUIDGenerator{},
		Logger:      logger,
	})
	campaignRepo := campaignpostgres.NewRepository(pg.DB, logger)

	return &WorkerApp{
		postgres: pg,
		redis:    redisConn,
		bus:      bus,
		relay: outbox.Relay{
			Outbox:    outbox.NewStore(pg.DB),
			Publisher: bus,
			BatchSize: cfg.Worker.OutboxBatchSize,
			Logger:    logger,
		},
		notifications: notificationModule.Consumer,
		contracts:     contractModule.Consumer,
		sweeper: campaignworkers.DeadlineSweeper{
			Repo:   campaignRepo,
			Clock:  campaignpostgres.SystemClock{},
			Limit:  sweepLimit,
			Logger: logger,
		},
		pollInterval: cfg.Worker.PollInterval,
		sweepEnabled: cfg.Worker.EnableDeadlineSweep,
		logger:       logger,
	}, nil
}

func buildModules(
	cfg config.Config,
	pg *db.Postgres,
	redisConn *cache.Redis,
	logger *slog.Logger,
) (httpserver.Modules, error) {
	tokens := accountauth.JWTIssuer{
		Secret: []byte(cfg.Auth.JWTSecret),
		TTL:    cfg.Auth.TokenTTL,
	}
	accounts := accountservice.NewModule(accountservice.Dependencies{
		Repo:        accountpostgres.NewRepository(pg.DB, logger),
		Cache:       accountredis.NewSessionCache(redisConn.Client, cfg.Auth.TokenTTL),
		Hasher:      accountauth.BcryptHasher{},
		Tokens:      tokens,
		Clock:       accountpostgres.SystemClock{},
		IDGenerator: accountpostgres.UUIDGenerator{},
		LoadTimeout: sessionTimeout,
		Logger:      logger,
	})

	contracts := contractservice.NewModule(contractservice.Dependencies{
		Repo:        contractpostgres.NewRepository(pg.DB, logger),
		Dedup:       outbox.NewDedupStore(pg.DB),
		Clock:       contractpostgres.SystemClock{},
		IDGenerator: contractpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	campaignRepo := campaignpostgres.NewRepository(pg.DB, logger)
	campaigns := campaignservice.NewModule(campaignservice.Dependencies{
		Repo:           campaignRepo,
		Deadlines:      campaignRepo,
		Contracts:      contracts.Gate,
		Idempotency:    campaignRepo,
		Clock:          campaignpostgres.SystemClock{},
		IDGenerator:    campaignpostgres.UUIDGenerator{},
		IdempotencyTTL: idempotencyTTL,
		SweepLimit:     sweepLimit,
		Logger:         logger,
	})

	applications := applicationservice.NewModule(applicationservice.Dependencies{
		Repo:        applicationpostgres.NewRepository(pg.DB, logger),
		Campaigns:   applicationpostgres.NewCampaignDirectory(pg.DB),
		Clock:       applicationpostgres.SystemClock{},
		IDGenerator: applicationpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	messagingModule := messagingservice.NewModule(messagingservice.Dependencies{
		Repo:        messagingpostgres.NewRepository(pg.DB, logger),
		Clock:       messagingpostgres.SystemClock{},
		IDGenerator: messagingpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	notifications := notificationservice.NewModule(notificationservice.Dependencies{
		Repo:        notificationpostgres.NewRepository(pg.DB, logger),
		Cache:       notificationredis.NewCounterCache(redisConn.Client, counterCacheTTL),
		Dedup:       outbox.NewDedupStore(pg.DB),
		Clock:       notificationpostgres.SystemClock{},
		IDGenerator: notificationpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	return httpserver.Modules{
		Accounts:      accounts,
		Campaigns:     campaigns,
		Applications:  applications,
		Contracts:     contracts,
		Messaging:     messagingModule,
		Notifications: notifications,
	}, nil
}

func connectStores(ctx context.Context, cfg config.Config) (*db.Postgres, *cache.Redis, error) {
	if strings.TrimSpace(cfg.Psql.DSN) == "" {
		return nil, nil, errors.New("PSQL_DSN is required")
	}
	if cfg.Psql.Migrate {
		if err := db.Migrate(cfg.Psql.DSN); err != nil {
			return nil, nil, err
		}
	}
	pg, err := db.Connect(cfg.Psql.DSN)
	if err != nil {
		return nil, nil, err
	}

	redisConn, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		_ = pg.Close()
		return nil, nil, err
	}
	return pg, redisConn, nil
}

func buildLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}
	if cfg.Log.JSONFormat() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func (a *APIApp) Run(_ context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return a.server.Start()
}

func (a *APIApp) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

func (a *APIApp) Close() error {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.bus.Subscribe(ctx, events.TypeNotificationRequested, "notification-service-cg", w.notifications.Handle); err != nil {
		return err
	}
	if err := w.bus.Subscribe(ctx, events.TypeContractRequested, "contract-service-cg", w.contracts.Handle); err != nil {
		return err
	}
	if err := w.bus.Subscribe(ctx, events.TypeCampaignCancelled, "contract-service-cg", w.contracts.Handle); err != nil {
		return err
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"deadline_sweep", w.sweepEnabled,
	)

	for {
		if w.sweepEnabled {
			if err := w.sweeper.RunOnce(ctx); err != nil {
				return err
			}
		}
		if err := w.relay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.redis != nil {
		_ = w.redis.Close()
	}
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}
