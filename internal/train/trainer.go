// Package train runs the model pipeline end to end: build a dataset,
// derive features, search hyperparameters, fit, measure, persist. The
// evaluator in this package replays the exact holdout a model was
// fitted against, so reported metrics stay comparable across runs.
package train

import (
	"context"
	"fmt"

	"github.com/pondmetrics/capcast/internal/features"
	"github.com/pondmetrics/capcast/internal/frame"
	"github.com/pondmetrics/capcast/internal/model"
	"github.com/pondmetrics/capcast/pkg/logger"
)

const (
	// ModelForward serves centers and wingers.
	ModelForward = "forward_model"
	// ModelDefenseman serves defensemen.
	ModelDefenseman = "defenseman_model"
	// ModelGoalie serves goalies.
	ModelGoalie = "goalie_model"

	testFraction     = 0.2
	searchCandidates = 20
	searchFolds      = 5
)

// excluded are identifier and target-adjacent columns that must never
// enter the feature matrix.
var excluded = map[string]bool{
	"id":          true,
	"player_id":   true,
	"contract_id": true,
	"season":      true,
	"cap_hit":     true,
	"cap_pct":     true,
	features.Target: true,
}

// Source builds the raw per-class datasets; *dataset.Builder satisfies
// it, tests substitute fixtures.
type Source interface {
	BuildForwards(ctx context.Context) *frame.Dataset
	BuildDefensemen(ctx context.Context) *frame.Dataset
	BuildGoalies(ctx context.Context) *frame.Dataset
}

// Store persists and reloads model artifacts; *model.Store satisfies
// it.
type Store interface {
	Save(name string, m *model.GBT, featureNames []string) error
	Load(name string) (*model.GBT, []string, error)
}

// Result reports one completed training run.
type Result struct {
	Name    string        `json:"name"`
	Rows    int           `json:"rows"`
	Config  model.Config  `json:"config"`
	CVScore float64       `json:"cv_score"`
	Holdout model.Metrics `json:"holdout"`
}

// Trainer fits and persists the three position-class models.
type Trainer struct {
	source     Source
	store      Store
	log        *logger.Logger
	minIcetime float64
}

// NewTrainer creates a trainer. minIcetime is the inclusion threshold
// in seconds of ice time.
func NewTrainer(source Source, store Store, log *logger.Logger, minIcetime float64) *Trainer {
	return &Trainer{source: source, store: store, log: log, minIcetime: minIcetime}
}

type class struct {
	name      string
	build     func(context.Context) *frame.Dataset
	transform func(*frame.Dataset, features.Mode, float64) *frame.Dataset
}

func (t *Trainer) classes() []class {
	return []class{
		{ModelForward, t.source.BuildForwards, features.SkaterWithMinIcetime},
		{ModelDefenseman, t.source.BuildDefensemen, features.SkaterWithMinIcetime},
		{ModelGoalie, t.source.BuildGoalies, features.GoalieWithMinIcetime},
	}
}

func classByName(classes []class, name string) (class, error) {
	for _, c := range classes {
		if c.name == name {
			return c, nil
		}
	}
	return class{}, fmt.Errorf("unknown model %q", name)
}

// TrainAll trains all three models, continuing past per-class failures
// and returning the first error alongside the completed results.
func (t *Trainer) TrainAll(ctx context.Context) ([]Result, error) {
	var results []Result
	var firstErr error
	for _, c := range t.classes() {
		res, err := t.trainClass(ctx, c)
		if err != nil {
			t.log.WithError(err).WithField("model", c.name).Error("training failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		results = append(results, res)
	}
	return results, firstErr
}

// Train trains a single model by name.
func (t *Trainer) Train(ctx context.Context, name string) (Result, error) {
	c, err := classByName(t.classes(), name)
	if err != nil {
		return Result{}, err
	}
	return t.trainClass(ctx, c)
}

func (t *Trainer) trainClass(ctx context.Context, c class) (Result, error) {
	feats := c.transform(c.build(ctx), features.Train, t.minIcetime)
	if feats.Len() == 0 {
		return Result{}, fmt.Errorf("%s: no training rows", c.name)
	}

	names := FeatureNames(feats)
	x, err := feats.Matrix(names)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", c.name, err)
	}
	y := feats.Column(features.Target)

	xTrain, xTest, yTrain, yTest := model.TrainTestSplit(x, y, testFraction, model.SplitSeed)

	search := model.RandomizedSearch(xTrain, yTrain, searchCandidates, searchFolds, model.SplitSeed)
	fitted := model.Fit(xTrain, yTrain, search.Config)
	holdout := model.Evaluate(fitted.Predict(xTest), yTest)

	if err := t.store.Save(c.name, fitted, names); err != nil {
		return Result{}, fmt.Errorf("%s: %w", c.name, err)
	}

	t.log.WithFields(map[string]interface{}{
		"model":    c.name,
		"rows":     feats.Len(),
		"features": len(names),
		"mae":      holdout.MAE,
		"r2":       holdout.R2,
	}).Info("model trained")

	return Result{
		Name:    c.name,
		Rows:    feats.Len(),
		Config:  search.Config,
		CVScore: search.Score,
		Holdout: holdout,
	}, nil
}

// FeatureNames returns the model-input columns of a feature table in
// dataset order, with identifiers and target columns removed. The
// order is persisted with the model and re-imposed at prediction time.
func FeatureNames(d *frame.Dataset) []string {
	var names []string
	for _, col := range d.Columns() {
		if !excluded[col] {
			names = append(names, col)
		}
	}
	return names
}
