package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pondmetrics/capcast/internal/scheduler"
	"github.com/pondmetrics/capcast/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Manage scheduled jobs",
	Long: `Starts the scheduler daemon or manages its jobs.

Registered jobs:
  contract_sync  - Weekly roster and contract refresh (Monday 3 AM)
  stats_refresh  - Daily season stat download (5 AM)
  model_retrain  - Weekly model retraining (Monday 6 AM)

Subcommands:
  start   - Start the scheduler
  list    - List registered jobs
  run     - Run one job immediately
  status  - Show job execution history

Example:
  go run ./cmd/capcast scheduler start
  go run ./cmd/capcast scheduler run stats_refresh`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler",
		RunE:  runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run one job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}

	schedulerStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show job execution history",
		RunE:  showStatus,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
	schedulerCmd.AddCommand(schedulerStatusCmd)
}

func initScheduler() (*scheduler.Scheduler, *app, error) {
	app, err := newApp()
	if err != nil {
		return nil, nil, err
	}

	sched := scheduler.New(app.log)

	register := []scheduler.Job{
		jobs.NewContractSyncJob(app.seeder, app.log),
		jobs.NewStatsRefreshJob(app.moneypuck, app.seeder, app.log),
		jobs.NewRetrainJob(app.trainer, app.log),
	}
	for _, job := range register {
		if err := sched.AddJob(job); err != nil {
			app.Close()
			return nil, nil, fmt.Errorf("register job: %w", err)
		}
	}

	return sched, app, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Capcast Scheduler ===")

	sched, app, err := initScheduler()
	if err != nil {
		return err
	}
	defer app.Close()

	sched.Start()

	fmt.Println("\nScheduler started. Registered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, app, err := initScheduler()
	if err != nil {
		return err
	}
	defer app.Close()

	fmt.Println("Registered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}

	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	sched, app, err := initScheduler()
	if err != nil {
		return err
	}
	defer app.Close()

	fmt.Printf("Running job: %s\n", jobName)

	// Run synchronously so the process stays alive until the job is
	// done and the result is recorded.
	if err := sched.RunJob(jobName); err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	for {
		time.Sleep(time.Second)

		history, err := sched.GetJobHistory(jobName)
		if err != nil {
			return err
		}
		if latest := history.Latest(); latest != nil {
			if !latest.Success {
				return fmt.Errorf("job %s failed: %s", jobName, latest.Error)
			}
			fmt.Printf("Job %s completed in %s\n", jobName, latest.Duration)
			return nil
		}
	}
}

func showStatus(cmd *cobra.Command, args []string) error {
	sched, app, err := initScheduler()
	if err != nil {
		return err
	}
	defer app.Close()

	fmt.Println("Job history:")
	for _, jobName := range sched.GetAllJobs() {
		history, err := sched.GetJobHistory(jobName)
		if err != nil {
			return err
		}

		fmt.Printf("\n%s\n", jobName)
		fmt.Printf("  Total runs: %d\n", len(history.Results))
		fmt.Printf("  Success rate: %.1f%%\n", history.SuccessRate()*100)
		if latest := history.Latest(); latest != nil {
			fmt.Printf("  Last run: %s (%s)\n", latest.StartTime.Format("2006-01-02 15:04:05"), latest.Duration)
		}
	}

	return nil
}
