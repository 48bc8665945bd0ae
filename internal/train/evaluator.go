package train

import (
	"context"
	"fmt"

	"github.com/pondmetrics/capcast/internal/features"
	"github.com/pondmetrics/capcast/internal/model"
	"github.com/pondmetrics/capcast/pkg/logger"
)

// Evaluator re-measures a persisted model against the holdout split of
// a freshly built dataset. Using the shared split seed reproduces the
// partition the trainer held out.
type Evaluator struct {
	source     Source
	store      Store
	log        *logger.Logger
	minIcetime float64
}

// NewEvaluator creates an evaluator over the same source and store the
// trainer used.
func NewEvaluator(source Source, store Store, log *logger.Logger, minIcetime float64) *Evaluator {
	return &Evaluator{source: source, store: store, log: log, minIcetime: minIcetime}
}

// Evaluate reloads the named model and scores it on the holdout rows.
// The persisted feature-name list drives column selection, so a schema
// drift between training and now surfaces as a matrix error rather
// than silently reordered inputs.
func (e *Evaluator) Evaluate(ctx context.Context, name string) (model.Metrics, error) {
	t := &Trainer{source: e.source}
	c, err := classByName(t.classes(), name)
	if err != nil {
		return model.Metrics{}, err
	}

	fitted, names, err := e.store.Load(name)
	if err != nil {
		return model.Metrics{}, fmt.Errorf("load %s: %w", name, err)
	}

	feats := c.transform(c.build(ctx), features.Train, e.minIcetime)
	if feats.Len() == 0 {
		return model.Metrics{}, fmt.Errorf("%s: no evaluation rows", name)
	}

	x, err := feats.Matrix(names)
	if err != nil {
		return model.Metrics{}, fmt.Errorf("%s: %w", name, err)
	}
	y := feats.Column(features.Target)

	_, xTest, _, yTest := model.TrainTestSplit(x, y, testFraction, model.SplitSeed)
	metrics := model.Evaluate(fitted.Predict(xTest), yTest)

	e.log.WithFields(map[string]interface{}{
		"model":   name,
		"samples": metrics.Samples,
		"mae":     metrics.MAE,
		"rmse":    metrics.RMSE,
		"r2":      metrics.R2,
	}).Info("model evaluated")

	return metrics, nil
}

// EvaluateAll evaluates every model that exists in the store.
func (e *Evaluator) EvaluateAll(ctx context.Context) (map[string]model.Metrics, error) {
	out := make(map[string]model.Metrics)
	var firstErr error
	for _, name := range []string{ModelForward, ModelDefenseman, ModelGoalie} {
		m, err := e.Evaluate(ctx, name)
		if err != nil {
			e.log.WithError(err).WithField("model", name).Warn("evaluation skipped")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		out[name] = m
	}
	return out, firstErr
}
