package jobs

import (
	"context"
	"fmt"

	"github.com/pondmetrics/capcast/internal/train"
	"github.com/pondmetrics/capcast/pkg/logger"
)

// RetrainJob retrains all three position models from the current
// contents of the stats tables.
type RetrainJob struct {
	trainer *train.Trainer
	logger  *logger.Logger
}

// NewRetrainJob creates a new retrain job
func NewRetrainJob(trainer *train.Trainer, log *logger.Logger) *RetrainJob {
	return &RetrainJob{
		trainer: trainer,
		logger:  log,
	}
}

// Name returns the job name
func (j *RetrainJob) Name() string {
	return "model_retrain"
}

// Schedule returns the cron schedule (every Monday at 6 AM, after the
// weekly contract sync)
func (j *RetrainJob) Schedule() string {
	return "0 0 6 * * MON"
}

// Run executes the retraining
func (j *RetrainJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled model retraining")

	results, err := j.trainer.TrainAll(ctx)
	for _, res := range results {
		j.logger.WithFields(map[string]interface{}{
			"model":       res.Name,
			"rows":        res.Rows,
			"cv_score":    res.CVScore,
			"holdout_mae": res.Holdout.MAE,
			"holdout_r2":  res.Holdout.R2,
		}).Info("Model trained")
	}
	if err != nil {
		return fmt.Errorf("train models: %w", err)
	}

	j.logger.Info("Scheduled model retraining completed successfully")
	return nil
}
