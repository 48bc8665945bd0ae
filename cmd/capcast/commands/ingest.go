package commands

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pondmetrics/capcast/internal/domain"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load data from the upstream sources",
	Long: `Loads players, contracts, and season statistics into the database.

Subcommands:
  players             - Scrape the active roster
  contracts           - Scrape contracts for every rostered player
  contract-years      - Derive per-year cap figures from contracts
  skater-stats        - Load a skater season CSV
  goalie-stats        - Load a goalie season CSV
  basic-goalie-stats  - Fetch goalie win/loss records from the stats API
  all                 - Run every stage in order

Example:
  go run ./cmd/capcast ingest players
  go run ./cmd/capcast ingest skater-stats --season 2023
  go run ./cmd/capcast ingest skater-stats --file data/skaters.csv`,
}

var (
	ingestFile   string
	ingestSeason int

	ingestPlayersCmd = &cobra.Command{
		Use:   "players",
		Short: "Scrape the active roster",
		RunE:  runIngestPlayers,
	}

	ingestContractsCmd = &cobra.Command{
		Use:   "contracts",
		Short: "Scrape contracts for every rostered player",
		RunE:  runIngestContracts,
	}

	ingestContractYearsCmd = &cobra.Command{
		Use:   "contract-years",
		Short: "Derive per-year cap figures from contracts",
		RunE:  runIngestContractYears,
	}

	ingestSkaterStatsCmd = &cobra.Command{
		Use:   "skater-stats",
		Short: "Load a skater season CSV",
		RunE:  runIngestSkaterStats,
	}

	ingestGoalieStatsCmd = &cobra.Command{
		Use:   "goalie-stats",
		Short: "Load a goalie season CSV",
		RunE:  runIngestGoalieStats,
	}

	ingestBasicGoalieStatsCmd = &cobra.Command{
		Use:   "basic-goalie-stats",
		Short: "Fetch goalie win/loss records",
		RunE:  runIngestBasicGoalieStats,
	}

	ingestAllCmd = &cobra.Command{
		Use:   "all",
		Short: "Run every ingest stage in order",
		RunE:  runIngestAll,
	}
)

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.AddCommand(ingestPlayersCmd)
	ingestCmd.AddCommand(ingestContractsCmd)
	ingestCmd.AddCommand(ingestContractYearsCmd)
	ingestCmd.AddCommand(ingestSkaterStatsCmd)
	ingestCmd.AddCommand(ingestGoalieStatsCmd)
	ingestCmd.AddCommand(ingestBasicGoalieStatsCmd)
	ingestCmd.AddCommand(ingestAllCmd)

	for _, cmd := range []*cobra.Command{ingestSkaterStatsCmd, ingestGoalieStatsCmd, ingestAllCmd} {
		cmd.Flags().StringVar(&ingestFile, "file", "", "local CSV file to load")
		cmd.Flags().IntVar(&ingestSeason, "season", 0, "season starting year to download, e.g. 2023")
	}
}

func runIngestPlayers(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := app.seeder.SeedPlayers(cmd.Context())
	printReport("players", report)
	return err
}

func runIngestContracts(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := app.seeder.SeedContracts(cmd.Context())
	printReport("contracts", report)
	return err
}

func runIngestContractYears(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := app.seeder.SeedContractYears(cmd.Context())
	printReport("contract-years", report)
	return err
}

func runIngestSkaterStats(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := seedSkaterStats(cmd.Context(), app)
	printReport("skater-stats", report)
	return err
}

func runIngestGoalieStats(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := seedGoalieStats(cmd.Context(), app)
	printReport("goalie-stats", report)
	return err
}

func runIngestBasicGoalieStats(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := app.seeder.SeedBasicGoalieStats(cmd.Context())
	printReport("basic-goalie-stats", report)
	return err
}

func runIngestAll(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()

	stages := []struct {
		name string
		run  func() (domain.IngestReport, error)
	}{
		{"players", func() (domain.IngestReport, error) { return app.seeder.SeedPlayers(ctx) }},
		{"contracts", func() (domain.IngestReport, error) { return app.seeder.SeedContracts(ctx) }},
		{"contract-years", func() (domain.IngestReport, error) { return app.seeder.SeedContractYears(ctx) }},
		{"skater-stats", func() (domain.IngestReport, error) { return seedSkaterStats(ctx, app) }},
		{"goalie-stats", func() (domain.IngestReport, error) { return seedGoalieStats(ctx, app) }},
		{"basic-goalie-stats", func() (domain.IngestReport, error) { return app.seeder.SeedBasicGoalieStats(ctx) }},
	}

	for _, stage := range stages {
		fmt.Printf("=== %s ===\n", stage.name)
		report, err := stage.run()
		printReport(stage.name, report)
		if err != nil {
			return fmt.Errorf("%s: %w", stage.name, err)
		}
	}

	return nil
}

// seedSkaterStats loads the skater CSV from --file when given,
// otherwise downloads the --season export.
func seedSkaterStats(ctx context.Context, app *app) (domain.IngestReport, error) {
	if ingestFile != "" {
		return app.seeder.SeedSkaterStatsFile(ctx, ingestFile)
	}
	if ingestSeason == 0 {
		return domain.IngestReport{}, fmt.Errorf("either --file or --season is required")
	}
	body, err := app.moneypuck.FetchSkaterCSV(ctx, ingestSeason)
	if err != nil {
		return domain.IngestReport{}, err
	}
	return app.seeder.SeedSkaterStats(ctx, bytes.NewReader(body))
}

func seedGoalieStats(ctx context.Context, app *app) (domain.IngestReport, error) {
	if ingestFile != "" {
		return app.seeder.SeedGoalieStatsFile(ctx, ingestFile)
	}
	if ingestSeason == 0 {
		return domain.IngestReport{}, fmt.Errorf("either --file or --season is required")
	}
	body, err := app.moneypuck.FetchGoalieCSV(ctx, ingestSeason)
	if err != nil {
		return domain.IngestReport{}, err
	}
	return app.seeder.SeedGoalieStats(ctx, bytes.NewReader(body))
}

func printReport(stage string, report domain.IngestReport) {
	fmt.Printf("%s: %s\n", stage, report.Summary())
	for _, msg := range report.Errors {
		fmt.Printf("  error: %s\n", msg)
	}
}
