// Package predict serves cap-hit predictions from persisted models.
// Input is a raw stat dataset in the same shape the dataset builder
// emits; the predictor applies the inference feature transform, aligns
// columns to the order the model was fitted on, and inverts the log
// target back to dollars.
package predict

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pondmetrics/capcast/internal/capspace"
	"github.com/pondmetrics/capcast/internal/features"
	"github.com/pondmetrics/capcast/internal/frame"
	"github.com/pondmetrics/capcast/internal/model"
	"github.com/pondmetrics/capcast/pkg/logger"
)

// Store reloads persisted models; *model.Store satisfies it.
type Store interface {
	Load(name string) (*model.GBT, []string, error)
}

// Predictor scores raw stat lines against a named model.
type Predictor struct {
	store      Store
	caps       capspace.Table
	season     int
	minIcetime float64
	log        *logger.Logger
}

// New creates a predictor. season selects the cap ceiling used to turn
// predicted cap percentages into dollar figures.
func New(store Store, caps capspace.Table, season int, minIcetime float64, log *logger.Logger) *Predictor {
	return &Predictor{
		store:      store,
		caps:       caps,
		season:     season,
		minIcetime: minIcetime,
		log:        log,
	}
}

// Predict transforms the raw rows for the named model, scores them,
// and returns the feature table with predicted_log_cap_pct,
// predicted_cap_pct, and predicted_cap_hit columns appended. Rows
// below the ice-time threshold are filtered out, so the output may
// hold fewer rows than the input.
//
// A model that was never trained yields ErrModelNotFound; input
// missing persisted feature columns yields a *FeatureMismatchError
// naming them.
func (p *Predictor) Predict(input *frame.Dataset, modelName string) (*frame.Dataset, error) {
	fitted, names, err := p.store.Load(modelName)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", modelName, ErrModelNotFound)
		}
		return nil, err
	}

	feats := p.transform(input, modelName)
	if err := checkFeatures(feats, modelName, names); err != nil {
		return nil, err
	}

	x, err := feats.Matrix(names)
	if err != nil {
		return nil, err
	}
	preds := fitted.Predict(x)

	ceiling, ok := p.caps.Ceiling(p.season)
	if !ok {
		return nil, fmt.Errorf("no cap ceiling for season %d", p.season)
	}

	i := 0
	feats.Apply("predicted_log_cap_pct", func(frame.Row) float64 {
		v := preds[i]
		i++
		return v
	})
	feats.Apply("predicted_cap_pct", func(r frame.Row) float64 {
		return math.Expm1(r["predicted_log_cap_pct"])
	})
	feats.Apply("predicted_cap_hit", func(r frame.Row) float64 {
		return r["predicted_cap_pct"] * ceiling
	})

	p.log.WithFields(map[string]interface{}{
		"model": modelName,
		"rows":  feats.Len(),
	}).Info("predictions served")
	return feats, nil
}

// transform picks the feature derivation by model family: anything
// named like a goalie model gets the goalie transform, everything else
// the skater transform.
func (p *Predictor) transform(input *frame.Dataset, modelName string) *frame.Dataset {
	if strings.Contains(modelName, "goalie") {
		return features.GoalieWithMinIcetime(input, features.Infer, p.minIcetime)
	}
	return features.SkaterWithMinIcetime(input, features.Infer, p.minIcetime)
}

func checkFeatures(d *frame.Dataset, modelName string, names []string) error {
	var missing []string
	for _, name := range names {
		if !d.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &FeatureMismatchError{Model: modelName, Missing: missing}
	}
	return nil
}
