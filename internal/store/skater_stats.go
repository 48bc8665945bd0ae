package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pondmetrics/capcast/internal/domain"
)

// SkaterStatsRepository implements domain.SkaterStatsRepository.
type SkaterStatsRepository struct {
	pool *pgxpool.Pool
}

// NewSkaterStatsRepository creates a new skater stats repository.
func NewSkaterStatsRepository(pool *pgxpool.Pool) *SkaterStatsRepository {
	return &SkaterStatsRepository{pool: pool}
}

// Upsert inserts or refreshes a skater season row, keyed by the
// (player, season, playoff, situation, team) tuple.
func (r *SkaterStatsRepository) Upsert(ctx context.Context, s *domain.SkaterSeason) (bool, error) {
	query := `
		INSERT INTO skater_advanced_stats (
			player_id, contract_id, season, playoff, team, situation,
			icetime, games_played,
			i_f_goals, i_f_primary_assists, i_f_secondary_assists, i_f_points,
			i_f_x_goals, i_f_shots_on_goal, i_f_unblocked_shot_attempts,
			on_ice_x_goals_percentage,
			shots_blocked_by_player, i_f_takeaways, i_f_giveaways,
			i_f_penalties, penalties_drawn,
			i_f_o_zone_shift_starts, i_f_d_zone_shift_starts, i_f_neutral_zone_shift_starts
		)
		VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8,
			$9, $10, $11, $12,
			$13, $14, $15,
			$16,
			$17, $18, $19,
			$20, $21,
			$22, $23, $24
		)
		ON CONFLICT (player_id, season, playoff, situation, team) DO UPDATE SET
			contract_id = EXCLUDED.contract_id,
			icetime = EXCLUDED.icetime,
			games_played = EXCLUDED.games_played,
			i_f_goals = EXCLUDED.i_f_goals,
			i_f_primary_assists = EXCLUDED.i_f_primary_assists,
			i_f_secondary_assists = EXCLUDED.i_f_secondary_assists,
			i_f_points = EXCLUDED.i_f_points,
			i_f_x_goals = EXCLUDED.i_f_x_goals,
			i_f_shots_on_goal = EXCLUDED.i_f_shots_on_goal,
			i_f_unblocked_shot_attempts = EXCLUDED.i_f_unblocked_shot_attempts,
			on_ice_x_goals_percentage = EXCLUDED.on_ice_x_goals_percentage,
			shots_blocked_by_player = EXCLUDED.shots_blocked_by_player,
			i_f_takeaways = EXCLUDED.i_f_takeaways,
			i_f_giveaways = EXCLUDED.i_f_giveaways,
			i_f_penalties = EXCLUDED.i_f_penalties,
			penalties_drawn = EXCLUDED.penalties_drawn,
			i_f_o_zone_shift_starts = EXCLUDED.i_f_o_zone_shift_starts,
			i_f_d_zone_shift_starts = EXCLUDED.i_f_d_zone_shift_starts,
			i_f_neutral_zone_shift_starts = EXCLUDED.i_f_neutral_zone_shift_starts
		RETURNING id, (xmax = 0)
	`

	var created bool
	err := r.pool.QueryRow(ctx, query,
		s.PlayerID, s.ContractID, s.Season, s.Playoff, s.Team, s.Situation,
		s.Icetime, s.GamesPlayed,
		s.Goals, s.PrimaryAssists, s.SecondaryAssists, s.Points,
		s.XGoals, s.ShotsOnGoal, s.UnblockedShotAttempts,
		s.OnIceXGoalsPercentage,
		s.ShotsBlocked, s.Takeaways, s.Giveaways,
		s.Penalties, s.PenaltiesDrawn,
		s.OZoneShiftStarts, s.DZoneShiftStarts, s.NeutralZoneShiftStarts,
	).Scan(&s.ID, &created)
	return created, err
}
