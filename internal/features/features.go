// Package features turns flat per-player-season datasets into
// model-ready feature tables. The transforms are pure: no I/O, no
// stored state. Training mode and inference mode run the same derived
// math so the two can never diverge on column content; the only
// difference is the presence of the target column.
package features

import (
	"math"

	"github.com/pondmetrics/capcast/internal/frame"
)

// Mode selects training or inference behavior.
type Mode int

const (
	// Train keeps the log-transformed target column in the output.
	Train Mode = iota
	// Infer omits all target-adjacent columns.
	Infer
)

// DefaultMinIcetimeSeconds is the inclusion threshold: rows at or below
// 300 minutes of ice time are excluded entirely, never clamped.
const DefaultMinIcetimeSeconds = 300 * 60

// SchemaVersion tags the derived-column layout. It is persisted with
// every model artifact and checked at load, so a model trained against
// an older feature generation fails fast instead of silently serving.
const SchemaVersion = "advanced/v2"

// Target is the training target column: log1p of the cap percentage.
const Target = "log_cap_pct"

// capColumns are target-adjacent raw columns that must never survive
// as features in either mode.
var capColumns = []string{"cap_hit", "cap_pct"}

// div returns NaN when the denominator is zero, mirroring a null. The
// caller decides whether nulls are later zero-filled.
func div(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// perMinute divides a counting stat by minutes played. The columns it
// feeds carry "_per_60" names for historical reasons, but the rate has
// always been per minute; trained models expect exactly this scale.
func perMinute(col string) func(frame.Row) float64 {
	return func(r frame.Row) float64 {
		return r[col] / r["minutes_played"]
	}
}

// aboveThreshold keeps rows with strictly more ice time (seconds) than
// the threshold.
func aboveThreshold(minIcetime float64) func(frame.Row) bool {
	return func(r frame.Row) bool {
		return r["icetime"] > minIcetime
	}
}

func logCapPct(r frame.Row) float64 {
	return math.Log1p(r["cap_pct"])
}
