// Package dataset assembles flat model-input tables by joining players,
// contracts, and per-season stats. One build per player class; every
// row is one (contract, season) observation. Builds degrade instead of
// failing: any query error is logged and yields an empty dataset so a
// scheduled training run reports poor coverage rather than crashing.
package dataset

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pondmetrics/capcast/internal/frame"
	"github.com/pondmetrics/capcast/pkg/logger"
)

// Querier is the subset of pgxpool.Pool the builder needs; tests
// substitute a stub.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Builder builds model-input datasets from the entity tables.
type Builder struct {
	db  Querier
	log *logger.Logger
}

// NewBuilder creates a dataset builder.
func NewBuilder(db Querier, log *logger.Logger) *Builder {
	return &Builder{db: db, log: log}
}

// skaterColumns is the emitted column order for skater datasets. The
// stat names intentionally match the source table columns so feature
// derivation reads naturally.
var skaterColumns = []string{
	"player_id", "contract_id", "cap_hit", "cap_pct",
	"icetime", "games_played",
	"i_f_goals", "i_f_primary_assists", "i_f_secondary_assists", "i_f_points",
	"i_f_x_goals", "i_f_shots_on_goal", "i_f_unblocked_shot_attempts",
	"on_ice_x_goals_percentage",
	"shots_blocked_by_player", "i_f_takeaways", "i_f_giveaways",
	"i_f_penalties", "penalties_drawn",
	"i_f_o_zone_shift_starts", "i_f_d_zone_shift_starts", "i_f_neutral_zone_shift_starts",
}

var goalieColumns = []string{
	"player_id", "contract_id", "season", "cap_hit", "cap_pct",
	"icetime", "games_played",
	"goals", "x_goals",
	"unblocked_shot_attempts", "blocked_shot_attempts",
	"on_goal", "x_on_goal",
	"rebounds", "x_rebounds", "act_freeze", "x_freeze",
	"low_danger_shots", "medium_danger_shots", "high_danger_shots",
	"low_danger_x_goals", "medium_danger_x_goals", "high_danger_x_goals",
	"low_danger_goals", "medium_danger_goals", "high_danger_goals",
	"wins", "losses", "ot_losses", "shutouts",
}

const skaterSelect = `
	SELECT
		s.player_id, s.contract_id, c.cap_hit, c.cap_pct,
		s.icetime, s.games_played,
		s.i_f_goals, s.i_f_primary_assists, s.i_f_secondary_assists, s.i_f_points,
		s.i_f_x_goals, s.i_f_shots_on_goal, s.i_f_unblocked_shot_attempts,
		s.on_ice_x_goals_percentage,
		s.shots_blocked_by_player, s.i_f_takeaways, s.i_f_giveaways,
		s.i_f_penalties, s.penalties_drawn,
		s.i_f_o_zone_shift_starts, s.i_f_d_zone_shift_starts, s.i_f_neutral_zone_shift_starts
	FROM skater_advanced_stats s
	JOIN contracts c ON c.id = s.contract_id
	JOIN player_info p ON p.player_id = s.player_id
	WHERE s.situation = 'all'
	  AND NOT s.playoff
	  AND NOT c.elc
`

// BuildForwards builds the forward training dataset: regular-season
// all-situations stat lines under non-entry-level contracts, for
// players whose position marks them a center or winger.
func (b *Builder) BuildForwards(ctx context.Context) *frame.Dataset {
	query := skaterSelect + `
	  AND (p.position ILIKE '%C%' OR p.position ILIKE '%W%')
	`
	return b.build(ctx, "forwards", query, skaterColumns)
}

// BuildDefensemen builds the defenseman training dataset. Positions
// carrying a C or W are forwards even when a D is present, matching
// the classification used at prediction time.
func (b *Builder) BuildDefensemen(ctx context.Context) *frame.Dataset {
	query := skaterSelect + `
	  AND p.position ILIKE '%D%'
	  AND p.position NOT ILIKE '%C%'
	  AND p.position NOT ILIKE '%W%'
	`
	return b.build(ctx, "defensemen", query, skaterColumns)
}

// BuildGoalies builds the goalie training dataset, joining the
// advanced season line with win/loss totals where present.
func (b *Builder) BuildGoalies(ctx context.Context) *frame.Dataset {
	query := `
	SELECT
		g.player_id, g.contract_id, g.season, c.cap_hit, c.cap_pct,
		g.icetime, g.games_played,
		g.goals, g.x_goals,
		g.unblocked_shot_attempts, g.blocked_shot_attempts,
		g.on_goal, g.x_on_goal,
		g.rebounds, g.x_rebounds, g.act_freeze, g.x_freeze,
		g.low_danger_shots, g.medium_danger_shots, g.high_danger_shots,
		g.low_danger_x_goals, g.medium_danger_x_goals, g.high_danger_x_goals,
		g.low_danger_goals, g.medium_danger_goals, g.high_danger_goals,
		COALESCE(b.wins, 0), COALESCE(b.losses, 0), COALESCE(b.ot_losses, 0), COALESCE(b.shutouts, 0)
	FROM goalie_advanced_stats g
	JOIN contracts c ON c.id = g.contract_id
	JOIN player_info p ON p.player_id = g.player_id
	LEFT JOIN basic_goalie_stats b
	  ON b.player_id = g.player_id AND b.season = g.season AND b.playoff = g.playoff
	WHERE g.situation = 'all'
	  AND NOT g.playoff
	  AND NOT c.elc
	  AND p.position ILIKE '%G%'
	`
	return b.build(ctx, "goalies", query, goalieColumns)
}

func (b *Builder) build(ctx context.Context, name, query string, cols []string) *frame.Dataset {
	out := frame.New(cols...)

	rows, err := b.db.Query(ctx, query)
	if err != nil {
		b.log.WithError(err).WithField("dataset", name).Error("dataset build failed, returning empty")
		return out
	}
	defer rows.Close()

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			b.log.WithError(err).WithField("dataset", name).Error("dataset row read failed, returning empty")
			return frame.New(cols...)
		}
		r := make(frame.Row, len(cols))
		for i, col := range cols {
			r[col] = toFloat(values[i])
		}
		out.Append(r)
	}
	if err := rows.Err(); err != nil {
		b.log.WithError(err).WithField("dataset", name).Error("dataset scan failed, returning empty")
		return frame.New(cols...)
	}

	b.log.WithFields(map[string]interface{}{
		"dataset": name,
		"rows":    out.Len(),
	}).Info("dataset built")
	return out
}

// toFloat widens any numeric driver value to float64. Non-numeric or
// null values become zero.
func toFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int64:
		return float64(x)
	case int32:
		return float64(x)
	case int16:
		return float64(x)
	case int:
		return float64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case nil:
		return 0
	default:
		// Numeric types the driver hands back as text.
		var f float64
		if _, err := fmt.Sscanf(fmt.Sprint(x), "%g", &f); err == nil {
			return f
		}
		return 0
	}
}
