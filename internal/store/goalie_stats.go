package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pondmetrics/capcast/internal/domain"
)

// GoalieStatsRepository implements domain.GoalieStatsRepository.
type GoalieStatsRepository struct {
	pool *pgxpool.Pool
}

// NewGoalieStatsRepository creates a new goalie stats repository.
func NewGoalieStatsRepository(pool *pgxpool.Pool) *GoalieStatsRepository {
	return &GoalieStatsRepository{pool: pool}
}

// Upsert inserts or refreshes a goalie season row, keyed by the
// (player, season, playoff, situation, team) tuple.
func (r *GoalieStatsRepository) Upsert(ctx context.Context, g *domain.GoalieSeason) (bool, error) {
	query := `
		INSERT INTO goalie_advanced_stats (
			player_id, contract_id, season, playoff, team, situation,
			icetime, games_played,
			x_goals, goals,
			unblocked_shot_attempts, blocked_shot_attempts,
			x_rebounds, rebounds, x_freeze, act_freeze,
			x_on_goal, on_goal,
			low_danger_shots, medium_danger_shots, high_danger_shots,
			low_danger_x_goals, medium_danger_x_goals, high_danger_x_goals,
			low_danger_goals, medium_danger_goals, high_danger_goals
		)
		VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8,
			$9, $10,
			$11, $12,
			$13, $14, $15, $16,
			$17, $18,
			$19, $20, $21,
			$22, $23, $24,
			$25, $26, $27
		)
		ON CONFLICT (player_id, season, playoff, situation, team) DO UPDATE SET
			contract_id = EXCLUDED.contract_id,
			icetime = EXCLUDED.icetime,
			games_played = EXCLUDED.games_played,
			x_goals = EXCLUDED.x_goals,
			goals = EXCLUDED.goals,
			unblocked_shot_attempts = EXCLUDED.unblocked_shot_attempts,
			blocked_shot_attempts = EXCLUDED.blocked_shot_attempts,
			x_rebounds = EXCLUDED.x_rebounds,
			rebounds = EXCLUDED.rebounds,
			x_freeze = EXCLUDED.x_freeze,
			act_freeze = EXCLUDED.act_freeze,
			x_on_goal = EXCLUDED.x_on_goal,
			on_goal = EXCLUDED.on_goal,
			low_danger_shots = EXCLUDED.low_danger_shots,
			medium_danger_shots = EXCLUDED.medium_danger_shots,
			high_danger_shots = EXCLUDED.high_danger_shots,
			low_danger_x_goals = EXCLUDED.low_danger_x_goals,
			medium_danger_x_goals = EXCLUDED.medium_danger_x_goals,
			high_danger_x_goals = EXCLUDED.high_danger_x_goals,
			low_danger_goals = EXCLUDED.low_danger_goals,
			medium_danger_goals = EXCLUDED.medium_danger_goals,
			high_danger_goals = EXCLUDED.high_danger_goals
		RETURNING id, (xmax = 0)
	`

	var created bool
	err := r.pool.QueryRow(ctx, query,
		g.PlayerID, g.ContractID, g.Season, g.Playoff, g.Team, g.Situation,
		g.Icetime, g.GamesPlayed,
		g.XGoals, g.Goals,
		g.UnblockedShotAttempts, g.BlockedShotAttempts,
		g.XRebounds, g.Rebounds, g.XFreeze, g.ActFreeze,
		g.XOnGoal, g.OnGoal,
		g.LowDangerShots, g.MediumDangerShots, g.HighDangerShots,
		g.LowDangerXGoals, g.MediumDangerXGoals, g.HighDangerXGoals,
		g.LowDangerGoals, g.MediumDangerGoals, g.HighDangerGoals,
	).Scan(&g.ID, &created)
	return created, err
}

// UpsertBasic records win/loss totals for a goalie season in the basic
// stats table, keyed by (player, season, playoff).
func (r *GoalieStatsRepository) UpsertBasic(ctx context.Context, playerID, contractID int64, season int, playoff bool, wins, losses, otLosses, shutouts int) error {
	query := `
		INSERT INTO basic_goalie_stats (
			player_id, contract_id, season, playoff, wins, losses, ot_losses, shutouts
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (player_id, season, playoff) DO UPDATE SET
			contract_id = EXCLUDED.contract_id,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			ot_losses = EXCLUDED.ot_losses,
			shutouts = EXCLUDED.shutouts
	`

	_, err := r.pool.Exec(ctx, query,
		playerID, contractID, season, playoff, wins, losses, otLosses, shutouts,
	)
	return err
}
