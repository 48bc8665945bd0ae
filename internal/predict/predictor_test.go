package predict

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pondmetrics/capcast/internal/capspace"
	"github.com/pondmetrics/capcast/internal/features"
	"github.com/pondmetrics/capcast/internal/frame"
	"github.com/pondmetrics/capcast/internal/model"
	"github.com/pondmetrics/capcast/pkg/logger"
)

type stubStore struct {
	m     *model.GBT
	names []string
	err   error
}

func (s *stubStore) Load(string) (*model.GBT, []string, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.m, s.names, nil
}

func skaterInput() *frame.Dataset {
	d := frame.New(
		"player_id", "icetime", "games_played",
		"i_f_goals", "i_f_points", "i_f_x_goals",
		"on_ice_x_goals_percentage",
	)
	d.Append(frame.Row{
		"player_id": 8478402, "icetime": 60000, "games_played": 80,
		"i_f_goals": 50, "i_f_points": 120, "i_f_x_goals": 42.5,
		"on_ice_x_goals_percentage": 0.58,
	})
	return d
}

func newPredictor(store Store) *Predictor {
	caps := capspace.Table{2025: 100_000_000}
	return New(store, caps, 2025, features.DefaultMinIcetimeSeconds, logger.NewNop())
}

func TestPredictInvertsLogTarget(t *testing.T) {
	// A treeless model predicts its baseline everywhere; a baseline of
	// log1p(0.05) must come back as exactly a 5% cap hit.
	store := &stubStore{
		m:     &model.GBT{Baseline: math.Log1p(0.05)},
		names: []string{"goals_per_60", "games_played"},
	}

	out, err := newPredictor(store).Predict(skaterInput(), "forward_model")
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())

	assert.InDelta(t, math.Log1p(0.05), out.Value(0, "predicted_log_cap_pct"), 1e-12)
	assert.InDelta(t, 0.05, out.Value(0, "predicted_cap_pct"), 1e-12)
	assert.InDelta(t, 5_000_000, out.Value(0, "predicted_cap_hit"), 1e-6)
}

func TestPredictModelNotFound(t *testing.T) {
	store := &stubStore{err: model.ErrNotFound}
	for _, name := range []string{"forward_model", "defenseman_model", "goalie_model"} {
		_, err := newPredictor(store).Predict(skaterInput(), name)
		assert.ErrorIs(t, err, ErrModelNotFound, name)
	}
}

func TestPredictFeatureMismatch(t *testing.T) {
	store := &stubStore{
		m:     &model.GBT{},
		names: []string{"zz_missing", "aa_missing", "goals_per_60"},
	}

	_, err := newPredictor(store).Predict(skaterInput(), "forward_model")
	var mismatch *FeatureMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "forward_model", mismatch.Model)
	assert.Equal(t, []string{"aa_missing", "zz_missing"}, mismatch.Missing)
	assert.Contains(t, err.Error(), "aa_missing, zz_missing")
}

func TestPredictFiltersLowIcetime(t *testing.T) {
	store := &stubStore{m: &model.GBT{}, names: []string{"goals_per_60"}}

	d := skaterInput()
	d.Append(frame.Row{"player_id": 1, "icetime": 100, "i_f_goals": 1})
	out, err := newPredictor(store).Predict(d, "forward_model")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())
}

func TestPredictGoalieModelUsesGoalieTransform(t *testing.T) {
	store := &stubStore{m: &model.GBT{}, names: []string{"GSAx_per_60", "save_pct"}}

	d := frame.New("player_id", "icetime", "goals", "x_goals", "on_goal",
		"unblocked_shot_attempts")
	d.Append(frame.Row{
		"player_id": 8479973, "icetime": 200000,
		"goals": 120, "x_goals": 135, "on_goal": 1600,
		"unblocked_shot_attempts": 2200,
	})

	out, err := newPredictor(store).Predict(d, "goalie_model")
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.InDelta(t, 1.0-120.0/1600.0, out.Value(0, "save_pct"), 1e-12)
	assert.True(t, out.Has("predicted_cap_hit"))
}
