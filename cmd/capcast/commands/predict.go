package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pondmetrics/capcast/internal/domain"
	"github.com/pondmetrics/capcast/internal/frame"
)

// predictCmd represents the predict command
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict a cap hit from a stat line",
	Long: `Predicts the cap hit a stat line would command.

The input file is a flat JSON object: a "position" string plus the raw
season stat columns as numbers, the same shape the API accepts.

Example:
  go run ./cmd/capcast predict --input statline.json`,
	RunE: runPredict,
}

var predictInput string

func init() {
	rootCmd.AddCommand(predictCmd)

	predictCmd.Flags().StringVar(&predictInput, "input", "", "JSON stat line file")
	predictCmd.MarkFlagRequired("input")
}

func runPredict(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(predictInput)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(data, &body); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}

	position, _ := body["position"].(string)
	if position == "" {
		return fmt.Errorf("position is required")
	}
	modelName := domain.ModelNameForPosition(position)

	row := make(frame.Row)
	var cols []string
	for key, value := range body {
		if key == "position" {
			continue
		}
		num, ok := value.(float64)
		if !ok {
			return fmt.Errorf("stat %s must be a number", key)
		}
		row[key] = num
		cols = append(cols, key)
	}
	input := frame.New(cols...)
	input.Append(row)

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := app.predictor.Predict(input, modelName)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}
	if result.Len() == 0 {
		return fmt.Errorf("stat line below minimum ice time")
	}

	fmt.Printf("Model: %s\n", modelName)
	fmt.Printf("Predicted cap pct: %.4f\n", result.Value(0, "predicted_cap_pct"))
	fmt.Printf("Predicted cap hit: $%.0f\n", result.Value(0, "predicted_cap_hit"))
	return nil
}
