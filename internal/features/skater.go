package features

import (
	"github.com/pondmetrics/capcast/internal/frame"
)

// skaterDrop lists raw columns consumed into derived rates. Dropping
// them keeps collinear absolute counts out of the model.
var skaterDrop = []string{
	"i_f_goals",
	"i_f_primary_assists",
	"i_f_secondary_assists",
	"i_f_points",
	"i_f_x_goals",
	"i_f_shots_on_goal",
	"i_f_unblocked_shot_attempts",
	"i_f_penalties",
	"penalties_drawn",
	"i_f_takeaways",
	"i_f_giveaways",
	"shots_blocked_by_player",
	"i_f_o_zone_shift_starts",
	"i_f_d_zone_shift_starts",
	"i_f_neutral_zone_shift_starts",
	"icetime",
	"minutes_played",
}

// Skater derives the skater feature set with the default ice-time
// threshold. See SkaterWithMinIcetime.
func Skater(d *frame.Dataset, mode Mode) *frame.Dataset {
	return SkaterWithMinIcetime(d, mode, DefaultMinIcetimeSeconds)
}

// SkaterWithMinIcetime filters out low-ice-time rows, derives
// per-minute production rates and zone-deployment share, drops the
// consumed raw columns, and zero-fills remaining nulls. In Train mode
// the log1p cap-percentage target is computed before the raw cap
// columns are removed.
func SkaterWithMinIcetime(d *frame.Dataset, mode Mode, minIcetime float64) *frame.Dataset {
	out := d.Filter(aboveThreshold(minIcetime)).Copy()

	out.Apply("minutes_played", func(r frame.Row) float64 {
		return r["icetime"] / 60.0
	})

	if mode == Train {
		out.Apply(Target, logCapPct)
	}

	out.Apply("goals_per_60", perMinute("i_f_goals"))
	out.Apply("primary_assists_per_60", perMinute("i_f_primary_assists"))
	out.Apply("secondary_assists_per_60", perMinute("i_f_secondary_assists"))
	out.Apply("points_per_60", perMinute("i_f_points"))

	out.Apply("goals_above_expected", func(r frame.Row) float64 {
		return r["i_f_goals"] - r["i_f_x_goals"]
	})

	// Shot volume counts every unblocked attempt, not just shots on
	// goal.
	out.Apply("shots_per_60", perMinute("i_f_unblocked_shot_attempts"))

	out.Apply("xGoals_percentage", func(r frame.Row) float64 {
		return r["on_ice_x_goals_percentage"]
	})

	out.Apply("net_penalties_per_60", func(r frame.Row) float64 {
		return (r["penalties_drawn"] - r["i_f_penalties"]) / r["minutes_played"]
	})

	out.Apply("blocks_per_60", perMinute("shots_blocked_by_player"))
	out.Apply("takeaways_per_60", perMinute("i_f_takeaways"))
	out.Apply("giveaways_per_60", perMinute("i_f_giveaways"))

	out.Apply("o_zone_start_pct", func(r frame.Row) float64 {
		total := r["i_f_o_zone_shift_starts"] +
			r["i_f_d_zone_shift_starts"] +
			r["i_f_neutral_zone_shift_starts"]
		return div(r["i_f_o_zone_shift_starts"], total)
	})

	out.Drop(skaterDrop...)
	out.Drop(capColumns...)
	out.FillNA(0)
	return out
}
