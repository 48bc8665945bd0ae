package jobs

import (
	"context"
	"fmt"

	"github.com/pondmetrics/capcast/internal/domain"
	"github.com/pondmetrics/capcast/internal/ingest"
	"github.com/pondmetrics/capcast/pkg/logger"
)

// ContractSyncJob refreshes the player roster and contract tables from
// CapWages.
type ContractSyncJob struct {
	seeder *ingest.Seeder
	logger *logger.Logger
}

// NewContractSyncJob creates a new contract sync job
func NewContractSyncJob(seeder *ingest.Seeder, log *logger.Logger) *ContractSyncJob {
	return &ContractSyncJob{
		seeder: seeder,
		logger: log,
	}
}

// Name returns the job name
func (j *ContractSyncJob) Name() string {
	return "contract_sync"
}

// Schedule returns the cron schedule (every Monday at 3 AM)
func (j *ContractSyncJob) Schedule() string {
	return "0 0 3 * * MON"
}

// Run executes the contract sync
func (j *ContractSyncJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled contract sync")

	// 1. Refresh the active-player roster
	j.logger.Info("Seeding players")
	report, err := j.seeder.SeedPlayers(ctx)
	if err != nil {
		return fmt.Errorf("seed players: %w", err)
	}
	j.logReport("players", report)

	// 2. Refresh contracts for every rostered player
	j.logger.Info("Seeding contracts")
	report, err = j.seeder.SeedContracts(ctx)
	if err != nil {
		return fmt.Errorf("seed contracts: %w", err)
	}
	j.logReport("contracts", report)

	// 3. Derive per-year cap figures
	j.logger.Info("Seeding contract years")
	report, err = j.seeder.SeedContractYears(ctx)
	if err != nil {
		return fmt.Errorf("seed contract years: %w", err)
	}
	j.logReport("contract_years", report)

	j.logger.Info("Scheduled contract sync completed successfully")
	return nil
}

func (j *ContractSyncJob) logReport(stage string, report domain.IngestReport) {
	j.logger.WithFields(map[string]interface{}{
		"stage":   stage,
		"created": report.Created,
		"updated": report.Updated,
		"skipped": report.Skipped,
		"errors":  len(report.Errors),
	}).Info("Sync stage completed")
}
