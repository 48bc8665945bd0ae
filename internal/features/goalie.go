package features

import (
	"github.com/pondmetrics/capcast/internal/frame"
)

// goalieDrop lists raw columns consumed into derived goaltending
// metrics, plus identifier columns with no predictive content.
var goalieDrop = []string{
	"goals",
	"x_goals",
	"rebounds",
	"x_rebounds",
	"act_freeze",
	"x_freeze",
	"icetime",
	"minutes_played",
	"season",
}

// Goalie derives the goalie feature set with the default ice-time
// threshold. See GoalieWithMinIcetime.
func Goalie(d *frame.Dataset, mode Mode) *frame.Dataset {
	return GoalieWithMinIcetime(d, mode, DefaultMinIcetimeSeconds)
}

// GoalieWithMinIcetime filters out low-ice-time rows, derives goals
// saved above expected, save percentages, rebound and freeze control,
// and workload rates, then drops the consumed raw columns and
// zero-fills remaining nulls. In Train mode the log1p cap-percentage
// target is computed before the raw cap columns are removed.
func GoalieWithMinIcetime(d *frame.Dataset, mode Mode, minIcetime float64) *frame.Dataset {
	out := d.Filter(aboveThreshold(minIcetime)).Copy()

	out.Apply("minutes_played", func(r frame.Row) float64 {
		return r["icetime"] / 60.0
	})

	if mode == Train {
		out.Apply(Target, logCapPct)
	}

	out.Apply("GSAx_total", func(r frame.Row) float64 {
		return r["x_goals"] - r["goals"]
	})
	out.Apply("GSAx_per_60", perMinute("GSAx_total"))

	out.Apply("save_pct", func(r frame.Row) float64 {
		return 1.0 - r["goals"]/r["on_goal"]
	})
	out.Apply("hd_save_pct", func(r frame.Row) float64 {
		return 1.0 - div(r["high_danger_goals"], r["high_danger_shots"])
	})

	out.Apply("rebound_excess_per_60", func(r frame.Row) float64 {
		return (r["rebounds"] - r["x_rebounds"]) / r["minutes_played"]
	})
	out.Apply("freeze_performance_ratio", func(r frame.Row) float64 {
		return div(r["act_freeze"], r["x_freeze"])
	})

	out.Apply("shots_faced_per_60", perMinute("unblocked_shot_attempts"))
	out.Apply("avg_shot_difficulty", func(r frame.Row) float64 {
		return div(r["x_goals"], r["unblocked_shot_attempts"])
	})

	out.Drop(goalieDrop...)
	out.Drop(capColumns...)
	out.FillNA(0)
	return out
}
