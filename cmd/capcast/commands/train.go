package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pondmetrics/capcast/internal/train"
)

// trainCmd represents the train command
var trainCmd = &cobra.Command{
	Use:   "train [model_name]",
	Short: "Train the cap-hit models",
	Long: `Trains the position models from the loaded season statistics.

Without arguments all three models are trained. A model name
(forward_model, defenseman_model, goalie_model) trains just that one.

Example:
  go run ./cmd/capcast train
  go run ./cmd/capcast train goalie_model`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrain,
}

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate [model_name]",
	Short: "Evaluate stored models on their holdout split",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEvaluate,
}

func init() {
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(evaluateCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Capcast Model Training ===")

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	var results []train.Result
	var trainErr error
	if len(args) == 1 {
		var res train.Result
		res, trainErr = app.trainer.Train(cmd.Context(), args[0])
		if trainErr == nil {
			results = append(results, res)
		}
	} else {
		results, trainErr = app.trainer.TrainAll(cmd.Context())
	}

	for _, res := range results {
		printTrainResult(res)
	}
	return trainErr
}

func printTrainResult(res train.Result) {
	fmt.Printf("\n%s\n", res.Name)
	fmt.Printf("  Rows: %d\n", res.Rows)
	fmt.Printf("  Config: lr=%.3f iters=%d depth=%d min_leaf=%d l2=%.2f\n",
		res.Config.LearningRate, res.Config.MaxIter, res.Config.MaxDepth,
		res.Config.MinSamplesLeaf, res.Config.L2)
	fmt.Printf("  CV score: %.4f\n", res.CVScore)
	fmt.Printf("  Holdout: mae=%.4f rmse=%.4f r2=%.4f (n=%d)\n",
		res.Holdout.MAE, res.Holdout.RMSE, res.Holdout.R2, res.Holdout.Samples)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if len(args) == 1 {
		metrics, err := app.evaluator.Evaluate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: mae=%.4f rmse=%.4f r2=%.4f (n=%d)\n",
			args[0], metrics.MAE, metrics.RMSE, metrics.R2, metrics.Samples)
		return nil
	}

	all, err := app.evaluator.EvaluateAll(cmd.Context())
	for name, metrics := range all {
		fmt.Printf("%s: mae=%.4f rmse=%.4f r2=%.4f (n=%d)\n",
			name, metrics.MAE, metrics.RMSE, metrics.R2, metrics.Samples)
	}
	return err
}
