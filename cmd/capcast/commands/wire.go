package commands

import (
	"context"
	"fmt"

	"github.com/pondmetrics/capcast/internal/capspace"
	"github.com/pondmetrics/capcast/internal/dataset"
	"github.com/pondmetrics/capcast/internal/features"
	"github.com/pondmetrics/capcast/internal/ingest"
	"github.com/pondmetrics/capcast/internal/model"
	"github.com/pondmetrics/capcast/internal/predict"
	"github.com/pondmetrics/capcast/internal/store"
	"github.com/pondmetrics/capcast/internal/train"
	"github.com/pondmetrics/capcast/pkg/config"
	"github.com/pondmetrics/capcast/pkg/database"
	"github.com/pondmetrics/capcast/pkg/httputil"
	"github.com/pondmetrics/capcast/pkg/logger"
)

// app holds the wired components shared by the CLI commands.
type app struct {
	cfg *config.Config
	log *logger.Logger
	db  *database.DB

	caps capspace.Table

	players       *store.PlayerRepository
	contracts     *store.ContractRepository
	skaterStats   *store.SkaterStatsRepository
	goalieStats   *store.GoalieStatsRepository
	contractYears *store.ContractYearRepository

	moneypuck *ingest.MoneyPuckClient
	seeder    *ingest.Seeder

	modelStore *model.Store
	trainer    *train.Trainer
	evaluator  *train.Evaluator
	predictor  *predict.Predictor
}

// newApp loads config, connects to the database, ensures the schema,
// and wires every component. Commands that touch no database still go
// through here; the connection doubles as a config sanity check.
func newApp() (*app, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := store.EnsureSchema(context.Background(), db.Pool); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	// 4. Load the salary cap table
	caps, err := capspace.Load(cfg.Model.CapTableFile)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load cap table: %w", err)
	}

	// 5. Create HTTP clients for the upstream sources
	capwagesHTTP := httputil.New(log).
		WithRateLimit(cfg.CapWages.RateLimit).
		WithUserAgent(cfg.CapWages.UserAgent)
	nhlHTTP := httputil.New(log).WithRateLimit(cfg.NHLStats.RateLimit)
	moneypuckHTTP := httputil.New(log)

	capwages := ingest.NewCapWagesClient(capwagesHTTP, cfg.CapWages.BaseURL, log)
	nhl := ingest.NewNHLClient(nhlHTTP, cfg.NHLStats.BaseURL, log)
	moneypuck := ingest.NewMoneyPuckClient(moneypuckHTTP, cfg.MoneyPuck.BaseURL)

	// 6. Create repositories
	players := store.NewPlayerRepository(db.Pool)
	contracts := store.NewContractRepository(db.Pool)
	skaterStats := store.NewSkaterStatsRepository(db.Pool)
	goalieStats := store.NewGoalieStatsRepository(db.Pool)
	contractYears := store.NewContractYearRepository(db.Pool)

	// 7. Create the seeder
	seeder := ingest.NewSeeder(capwages, nhl, players, contracts, skaterStats, goalieStats, contractYears, caps, log)

	// 8. Create the training and prediction components
	builder := dataset.NewBuilder(db.Pool, log)
	modelStore := model.NewStore(cfg.Model.ArtifactsDir, features.SchemaVersion)
	trainer := train.NewTrainer(builder, modelStore, log, cfg.Model.MinIcetimeSeconds)
	evaluator := train.NewEvaluator(builder, modelStore, log, cfg.Model.MinIcetimeSeconds)
	predictor := predict.New(modelStore, caps, cfg.Model.PredictSeason, cfg.Model.MinIcetimeSeconds, log)

	return &app{
		cfg:           cfg,
		log:           log,
		db:            db,
		caps:          caps,
		players:       players,
		contracts:     contracts,
		skaterStats:   skaterStats,
		goalieStats:   goalieStats,
		contractYears: contractYears,
		moneypuck:     moneypuck,
		seeder:        seeder,
		modelStore:    modelStore,
		trainer:       trainer,
		evaluator:     evaluator,
		predictor:     predictor,
	}, nil
}

// Close releases the database pool.
func (a *app) Close() {
	a.db.Close()
}
