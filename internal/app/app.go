package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/config"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/db"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/repos"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/observability"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/logger"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

type Options struct {
	ConfigPath string
	// Verbose forces debug logging and mirrors logs to stderr.
	Verbose bool
}

type App struct {
	Log       *logger.Logger
	DB        *gorm.DB
	Cfg       config.Config
	Repos     repos.Set
	Metrics   *observability.Metrics
	SessionID string
	Aggregates

	store        *db.StoreService
	shutdownOTel func(context.Context) error
}

func New(opts Options) (*App, error) {
	config.LoadDotEnv()

	// Config errors go to stderr until the configured logger exists.
	bootLog, err := logger.New("production")
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	cfg, err := config.Load(opts.ConfigPath, bootLog)
	if err != nil {
		bootLog.Sync()
		return nil, fmt.Errorf("load config: %w", err)
	}

	logOpts := logger.Options{Level: cfg.Log.Level, OutputPaths: cfg.Log.Output}
	if opts.Verbose {
		logOpts.Level = "debug"
		logOpts.OutputPaths = append(append([]string{}, cfg.Log.Output...), "stderr")
	}
	baseLog, err := logger.NewWithOptions(cfg.Log.Mode, logOpts)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	sessionID := uuid.NewString()
	log := baseLog.With("session_id", sessionID)
	log.Info("Starting session", "env", cfg.Env, "driver", cfg.Store.Driver, "version", Version)

	store, err := db.NewStoreService(cfg.Store, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init store: %w", err)
	}

	shutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		Enabled:     cfg.Telemetry.TracingEnabled,
		ServiceName: cfg.Telemetry.ServiceName,
		Environment: cfg.Env,
		Version:     Version,
		SampleRatio: cfg.Telemetry.SampleRatio,
		TracesFile:  cfg.Telemetry.TracesFile,
	})

	metrics := observability.NewMetrics()
	reposet := wireRepos(store.DB(), log)
	aggs := WireAggregates(store.DB(), log, reposet, metrics)

	return &App{
		Log:          log,
		DB:           store.DB(),
		Cfg:          cfg,
		Repos:        reposet,
		Metrics:      metrics,
		SessionID:    sessionID,
		Aggregates:   aggs,
		store:        store,
		shutdownOTel: shutdown,
	}, nil
}

// Migrate creates or updates the schema regardless of store.auto_migrate.
func (a *App) Migrate() error {
	if a == nil || a.DB == nil {
		return fmt.Errorf("app not initialized")
	}
	return db.AutoMigrateAll(a.DB)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.shutdownOTel != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.shutdownOTel(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil && a.Log != nil {
			a.Log.Warn("store close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Info("Session closed")
		a.Log.Sync()
	}
}
