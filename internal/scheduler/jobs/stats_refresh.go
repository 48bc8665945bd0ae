package jobs

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/pondmetrics/capcast/internal/ingest"
	"github.com/pondmetrics/capcast/pkg/logger"
)

// StatsRefreshJob downloads the current season's advanced-stat exports
// and loads them into the stats tables.
type StatsRefreshJob struct {
	moneypuck *ingest.MoneyPuckClient
	seeder    *ingest.Seeder
	logger    *logger.Logger
}

// NewStatsRefreshJob creates a new stats refresh job
func NewStatsRefreshJob(mp *ingest.MoneyPuckClient, seeder *ingest.Seeder, log *logger.Logger) *StatsRefreshJob {
	return &StatsRefreshJob{
		moneypuck: mp,
		seeder:    seeder,
		logger:    log,
	}
}

// Name returns the job name
func (j *StatsRefreshJob) Name() string {
	return "stats_refresh"
}

// Schedule returns the cron schedule (every day at 5 AM)
func (j *StatsRefreshJob) Schedule() string {
	return "0 0 5 * * *"
}

// Run executes the stats refresh
func (j *StatsRefreshJob) Run(ctx context.Context) error {
	season := currentSeason(time.Now())

	j.logger.WithField("season", season).Info("Starting scheduled stats refresh")

	// 1. Skater advanced stats
	body, err := j.moneypuck.FetchSkaterCSV(ctx, season)
	if err != nil {
		return fmt.Errorf("fetch skater stats: %w", err)
	}
	report, err := j.seeder.SeedSkaterStats(ctx, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("seed skater stats: %w", err)
	}
	j.logger.WithFields(map[string]interface{}{
		"created": report.Created,
		"updated": report.Updated,
		"skipped": report.Skipped,
	}).Info("Skater stats loaded")

	// 2. Goalie advanced stats
	body, err = j.moneypuck.FetchGoalieCSV(ctx, season)
	if err != nil {
		return fmt.Errorf("fetch goalie stats: %w", err)
	}
	report, err = j.seeder.SeedGoalieStats(ctx, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("seed goalie stats: %w", err)
	}
	j.logger.WithFields(map[string]interface{}{
		"created": report.Created,
		"updated": report.Updated,
		"skipped": report.Skipped,
	}).Info("Goalie stats loaded")

	// 3. Goalie win/loss records from the league stats API
	report, err = j.seeder.SeedBasicGoalieStats(ctx)
	if err != nil {
		return fmt.Errorf("seed basic goalie stats: %w", err)
	}
	j.logger.WithFields(map[string]interface{}{
		"created": report.Created,
		"updated": report.Updated,
		"skipped": report.Skipped,
	}).Info("Basic goalie stats loaded")

	j.logger.Info("Scheduled stats refresh completed successfully")
	return nil
}

// currentSeason maps a date to the starting year of the season it falls
// in. Seasons start in October, so January through September belong to
// the prior year's season.
func currentSeason(now time.Time) int {
	if now.Month() >= time.October {
		return now.Year()
	}
	return now.Year() - 1
}
