package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/scorewise/predictions-api/external/highlightly"
	"github.com/scorewise/predictions-api/internal/config"
	"github.com/scorewise/predictions-api/internal/infrastructure/account/passport"
	"github.com/scorewise/predictions-api/internal/infrastructure/repository/postgres"
	"github.com/scorewise/predictions-api/internal/interfaces/httpapi"
	"github.com/scorewise/predictions-api/internal/platform/cache"
	"github.com/scorewise/predictions-api/internal/platform/logging"
	"github.com/scorewise/predictions-api/internal/platform/resilience"
	"github.com/scorewise/predictions-api/internal/scheduler"
	"github.com/scorewise/predictions-api/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
)

// Application bundles the wired service graph: the HTTP server, the database
// handle and the background job scheduler.
type Application struct {
	Config    config.Config
	Logger    *logging.Logger
	DB        *sqlx.DB
	Server    *http.Server
	Scheduler *scheduler.Scheduler
}

func New(cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := otelsqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	logger.Info("database connected", "db", dbNameFromURL(cfg.DBURL))

	matchRepo := postgres.NewMatchRepository(db)
	leagueRepo := postgres.NewLeagueRepository(db)
	standingRepo := postgres.NewStandingRepository(db)
	predictionRepo := postgres.NewPredictionRepository(db)

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	provider := highlightly.NewClient(highlightly.ClientConfig{
		BaseURL:    cfg.HighlightlyBaseURL,
		Token:      cfg.HighlightlyToken,
		Timeout:    cfg.HighlightlyTimeout,
		MaxRetries: cfg.HighlightlyMaxRetries,
		RetryDelay: cfg.HighlightlyRetryDelay,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.HighlightlyCircuitEnabled,
			FailureThreshold: cfg.HighlightlyCircuitFailureCount,
			OpenTimeout:      cfg.HighlightlyCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.HighlightlyCircuitHalfOpenMaxReq,
		},
	})

	passportClient := passport.NewClient(
		&http.Client{Timeout: cfg.PassportTimeout},
		cfg.PassportBaseURL,
		logger,
	)

	engine := usecase.NewEngine()
	matchService := usecase.NewMatchService(matchRepo, store, logger)
	standingService := usecase.NewStandingService(standingRepo, store, logger)
	predictionService := usecase.NewPredictionService(predictionRepo, standingRepo, provider, engine, cfg.Sports, logger)
	batchService := usecase.NewPredictionBatchService(matchRepo, standingRepo, predictionRepo, engine, usecase.BatchConfig{
		Sports:        cfg.Sports,
		Pacing:        cfg.PredictionPacing,
		UpsertWorkers: cfg.PredictionWorkers,
	}, logger)
	matchSyncService := usecase.NewMatchSyncService(provider, matchRepo, leagueRepo, standingRepo, usecase.MatchSyncConfig{
		Sports:         cfg.Sports,
		WindowDays:     cfg.FixturesWindow,
		LivePruneAfter: cfg.LivePruneAfter,
		MajorLeagueIDs: cfg.MajorLeagueIDs,
	}, logger)

	handler := httpapi.NewHandler(
		predictionService,
		batchService,
		matchService,
		standingService,
		matchSyncService,
		passportClient,
		logger,
	)
	router := httpapi.NewRouter(handler, passportClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		_ = db.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	sched := scheduler.New(db, logger)
	if cfg.JobsEnabled {
		registerJobs(sched, cfg, matchSyncService, batchService)
	} else {
		logger.Info("background jobs disabled", "reason", "JOBS_ENABLED=false")
	}

	return &Application{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Server:    server,
		Scheduler: sched,
	}, nil
}

func registerJobs(
	sched *scheduler.Scheduler,
	cfg config.Config,
	matchSyncService *usecase.MatchSyncService,
	batchService *usecase.PredictionBatchService,
) {
	sched.Register(scheduler.Job{
		Name:     "sync-live-matches",
		Interval: cfg.JobLiveInterval,
		Run: func(ctx context.Context) error {
			_, err := matchSyncService.SyncLive(ctx)
			return err
		},
	})
	sched.Register(scheduler.Job{
		Name:       "sync-fixtures-window",
		Interval:   cfg.JobFixturesInterval,
		RunOnStart: true,
		Run: func(ctx context.Context) error {
			_, err := matchSyncService.SyncFixturesWindow(ctx)
			return err
		},
	})
	sched.Register(scheduler.Job{
		Name:       "sync-leagues-standings",
		Interval:   cfg.JobLeaguesInterval,
		RunOnStart: true,
		Run: func(ctx context.Context) error {
			_, err := matchSyncService.SyncLeaguesAndStandings(ctx)
			return err
		},
	})
	sched.Register(scheduler.Job{
		Name:       "generate-predictions",
		Interval:   cfg.JobPredictionsInterval,
		RunOnStart: true,
		Run: func(ctx context.Context) error {
			_, err := batchService.GenerateForDate(ctx, time.Now().UTC())
			return err
		},
	})
}

func (a *Application) Close() error {
	return a.DB.Close()
}
