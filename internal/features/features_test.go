package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pondmetrics/capcast/internal/frame"
)

func skaterFixture() *frame.Dataset {
	d := frame.New(
		"player_id", "contract_id", "cap_hit", "cap_pct",
		"icetime", "games_played",
		"i_f_goals", "i_f_primary_assists", "i_f_secondary_assists", "i_f_points",
		"i_f_x_goals", "i_f_shots_on_goal", "i_f_unblocked_shot_attempts",
		"on_ice_x_goals_percentage",
		"shots_blocked_by_player", "i_f_takeaways", "i_f_giveaways",
		"i_f_penalties", "penalties_drawn",
		"i_f_o_zone_shift_starts", "i_f_d_zone_shift_starts", "i_f_neutral_zone_shift_starts",
	)
	d.Append(frame.Row{
		"player_id": 8478402, "contract_id": 11, "cap_hit": 12_500_000, "cap_pct": 0.15,
		"icetime": 60000, "games_played": 80,
		"i_f_goals": 50, "i_f_primary_assists": 40, "i_f_secondary_assists": 30, "i_f_points": 120,
		"i_f_x_goals": 42.5, "i_f_shots_on_goal": 300, "i_f_unblocked_shot_attempts": 450,
		"on_ice_x_goals_percentage": 0.58,
		"shots_blocked_by_player":   25, "i_f_takeaways": 60, "i_f_giveaways": 55,
		"i_f_penalties": 20, "penalties_drawn": 30,
		"i_f_o_zone_shift_starts": 400, "i_f_d_zone_shift_starts": 300, "i_f_neutral_zone_shift_starts": 300,
	})
	return d
}

func TestSkaterIcetimeThresholdIsExclusive(t *testing.T) {
	d := skaterFixture()
	// Exactly at the threshold: must be filtered out.
	at := d.Copy()
	atRow := at.Row(0)
	atRow["icetime"] = 300 * 60
	out := Skater(at, Train)
	assert.Equal(t, 0, out.Len())

	// One second above: stays in.
	above := d.Copy()
	above.Row(0)["icetime"] = 300*60 + 1
	out = Skater(above, Train)
	assert.Equal(t, 1, out.Len())
}

func TestSkaterPerMinuteRates(t *testing.T) {
	out := Skater(skaterFixture(), Train)
	require.Equal(t, 1, out.Len())

	minutes := 60000.0 / 60.0
	assert.InDelta(t, 50.0/minutes, out.Value(0, "goals_per_60"), 1e-12)
	assert.InDelta(t, 40.0/minutes, out.Value(0, "primary_assists_per_60"), 1e-12)
	assert.InDelta(t, 30.0/minutes, out.Value(0, "secondary_assists_per_60"), 1e-12)
	assert.InDelta(t, 120.0/minutes, out.Value(0, "points_per_60"), 1e-12)
	assert.InDelta(t, 50.0-42.5, out.Value(0, "goals_above_expected"), 1e-12)
	// Unblocked attempts, not shots on goal.
	assert.InDelta(t, 450.0/minutes, out.Value(0, "shots_per_60"), 1e-12)
	assert.InDelta(t, (30.0-20.0)/minutes, out.Value(0, "net_penalties_per_60"), 1e-12)
	assert.InDelta(t, 25.0/minutes, out.Value(0, "blocks_per_60"), 1e-12)
	assert.InDelta(t, 400.0/1000.0, out.Value(0, "o_zone_start_pct"), 1e-12)
	assert.InDelta(t, 0.58, out.Value(0, "xGoals_percentage"), 1e-12)
}

func TestSkaterDerivedColumnSet(t *testing.T) {
	out := Skater(skaterFixture(), Infer)
	derived := []string{
		"goals_per_60", "primary_assists_per_60", "secondary_assists_per_60",
		"points_per_60", "goals_above_expected", "shots_per_60",
		"xGoals_percentage", "net_penalties_per_60", "blocks_per_60",
		"takeaways_per_60", "giveaways_per_60", "o_zone_start_pct",
	}
	for _, col := range derived {
		assert.True(t, out.Has(col), col)
	}
	for _, col := range []string{
		"x_goals_per_60", "shot_attempts_per_60",
		"penalties_per_60", "penalties_drawn_per_60",
	} {
		assert.False(t, out.Has(col), col)
	}
}

func TestSkaterTargetAndCapColumns(t *testing.T) {
	out := Skater(skaterFixture(), Train)
	require.Equal(t, 1, out.Len())
	assert.InDelta(t, math.Log1p(0.15), out.Value(0, Target), 1e-12)
	assert.False(t, out.Has("cap_hit"))
	assert.False(t, out.Has("cap_pct"))
	assert.False(t, out.Has("icetime"))
	assert.False(t, out.Has("i_f_goals"))

	infer := Skater(skaterFixture(), Infer)
	assert.False(t, infer.Has(Target))
}

func TestSkaterZoneStartNullZeroFilled(t *testing.T) {
	d := skaterFixture()
	r := d.Row(0)
	r["i_f_o_zone_shift_starts"] = 0
	r["i_f_d_zone_shift_starts"] = 0
	r["i_f_neutral_zone_shift_starts"] = 0
	out := Skater(d, Infer)
	require.Equal(t, 1, out.Len())
	assert.Zero(t, out.Value(0, "o_zone_start_pct"))
}

func TestSkaterTrainInferParity(t *testing.T) {
	train := Skater(skaterFixture(), Train)
	infer := Skater(skaterFixture(), Infer)
	for _, col := range infer.Columns() {
		require.True(t, train.Has(col), "train output missing %s", col)
		assert.Equal(t, train.Value(0, col), infer.Value(0, col), col)
	}
}

func goalieFixture() *frame.Dataset {
	d := frame.New(
		"player_id", "contract_id", "season", "cap_hit", "cap_pct",
		"icetime", "games_played",
		"goals", "x_goals", "unblocked_shot_attempts", "blocked_shot_attempts",
		"on_goal", "x_on_goal",
		"rebounds", "x_rebounds", "act_freeze", "x_freeze",
		"low_danger_shots", "medium_danger_shots", "high_danger_shots",
		"low_danger_goals", "medium_danger_goals", "high_danger_goals",
		"wins", "losses", "ot_losses", "shutouts",
	)
	d.Append(frame.Row{
		"player_id": 8479973, "contract_id": 7, "season": 2023, "cap_hit": 9_000_000, "cap_pct": 0.1,
		"icetime": 200000, "games_played": 55,
		"goals": 120, "x_goals": 135, "unblocked_shot_attempts": 2200, "blocked_shot_attempts": 400,
		"on_goal": 1600, "x_on_goal": 1580,
		"rebounds": 180, "x_rebounds": 170, "act_freeze": 600, "x_freeze": 580,
		"low_danger_shots": 1200, "medium_danger_shots": 700, "high_danger_shots": 300,
		"low_danger_goals": 30, "medium_danger_goals": 50, "high_danger_goals": 40,
		"wins": 30, "losses": 20, "ot_losses": 5, "shutouts": 4,
	})
	return d
}

func TestGoalieDerivedMetrics(t *testing.T) {
	out := Goalie(goalieFixture(), Train)
	require.Equal(t, 1, out.Len())

	minutes := 200000.0 / 60.0
	assert.InDelta(t, 15.0, out.Value(0, "GSAx_total"), 1e-12)
	assert.InDelta(t, 15.0/minutes, out.Value(0, "GSAx_per_60"), 1e-12)
	assert.InDelta(t, 1.0-120.0/1600.0, out.Value(0, "save_pct"), 1e-12)
	assert.InDelta(t, 1.0-40.0/300.0, out.Value(0, "hd_save_pct"), 1e-12)
	assert.InDelta(t, 10.0/minutes, out.Value(0, "rebound_excess_per_60"), 1e-12)
	assert.InDelta(t, 600.0/580.0, out.Value(0, "freeze_performance_ratio"), 1e-12)
	assert.InDelta(t, 2200.0/minutes, out.Value(0, "shots_faced_per_60"), 1e-12)
	assert.InDelta(t, 135.0/2200.0, out.Value(0, "avg_shot_difficulty"), 1e-12)
	assert.InDelta(t, math.Log1p(0.1), out.Value(0, Target), 1e-12)
}

func TestGoalieDropsConsumedColumns(t *testing.T) {
	out := Goalie(goalieFixture(), Infer)
	for _, col := range append([]string{"cap_hit", "cap_pct"}, goalieDrop...) {
		assert.False(t, out.Has(col), col)
	}
	assert.False(t, out.Has(Target))
	// Danger-bucket raw counts are genuine features and survive.
	assert.True(t, out.Has("high_danger_shots"))
	assert.True(t, out.Has("wins"))
}

func TestGoalieZeroDenominatorsZeroFilled(t *testing.T) {
	d := goalieFixture()
	r := d.Row(0)
	r["x_freeze"] = 0
	r["high_danger_shots"] = 0
	r["high_danger_goals"] = 0
	out := Goalie(d, Infer)
	require.Equal(t, 1, out.Len())
	assert.Zero(t, out.Value(0, "freeze_performance_ratio"))
	// 1 - null is still null before the fill.
	assert.Zero(t, out.Value(0, "hd_save_pct"))
}
