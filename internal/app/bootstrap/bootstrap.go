package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	authservice "requisite/contexts/identity-access/auth-service"
	authpostgres "requisite/contexts/identity-access/auth-service/adapters/postgres"
	"requisite/contexts/identity-access/auth-service/adapters/token"
	trackingservice "requisite/contexts/requirements/tracking-service"
	trackingpostgres "requisite/contexts/requirements/tracking-service/adapters/postgres"
	workerapp "requisite/contexts/requirements/tracking-service/application/workers"
	trackingports "requisite/contexts/requirements/tracking-service/ports"
	"requisite/internal/platform/config"
	"requisite/internal/platform/db"
	"requisite/internal/platform/httpserver"
	"requisite/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const entityChangedTopic = "tracking.entity-changed"

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  workerapp.OutboxRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	pg, err := connectPostgres(cfg)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.TokenSecret) == "" {
		return nil, errors.New("TOKEN_SECRET is required")
	}
	signer, err := token.NewSigner(cfg.TokenSecret, cfg.TokenTTL, nil)
	if err != nil {
		return nil, err
	}

	authRepo := authpostgres.NewRepository(pg.DB, logger)
	authModule := authservice.NewModule(authservice.Dependencies{
		Users:       authRepo,
		Memberships: authRepo,
		Members:     authRepo,
		Tokens:      signer,
		Logger:      logger,
	})

	trackingRepo := trackingpostgres.NewRepository(pg.DB, logger)
	trackingModule := trackingservice.NewModule(trackingservice.Dependencies{
		Repository: trackingRepo,
		Logger:     logger,
	})

	var opts []httpserver.Option
	if !cfg.EnableRegistration {
		opts = append(opts, httpserver.WithRegistrationDisabled())
	}
	server := httpserver.New(authModule, trackingModule, logger, normalizeAddr(cfg.HTTPPort), opts...)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	pg, err := connectPostgres(cfg)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(nil, logger)
	if err != nil {
		return nil, err
	}

	repo := trackingpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: workerapp.OutboxRelay{
			Outbox:    repo,
			Publisher: entityChangedBus{kafka: kafka, topic: entityChangedTopic},
			Clock:     trackingpostgres.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		pollInterval: cfg.WorkerPollInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
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
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

// entityChangedBus adapts the messaging bus to the tracking publisher port,
// pinning the topic at wiring time.
type entityChangedBus struct {
	kafka *messaging.Kafka
	topic string
}

func (b entityChangedBus) PublishEntityChanged(ctx context.Context, event trackingports.EntityChangedEvent) error {
	return b.kafka.Publish(ctx, b.topic, event)
}

func connectPostgres(cfg config.Config) (*db.Postgres, error) {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	return db.Connect(cfg.PostgresDSN, db.PoolLimits{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MinIdleConns:    cfg.DBMinIdleConns,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
		ConnectTimeout:  cfg.DBAcquireTimeout,
	})
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
