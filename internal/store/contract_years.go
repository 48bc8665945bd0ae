package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pondmetrics/capcast/internal/domain"
)

// ContractYearRepository implements domain.ContractYearRepository.
type ContractYearRepository struct {
	pool *pgxpool.Pool
}

// NewContractYearRepository creates a new contract-year repository.
func NewContractYearRepository(pool *pgxpool.Pool) *ContractYearRepository {
	return &ContractYearRepository{pool: pool}
}

// GetByPlayer retrieves a player's per-season cap slices in year order.
func (r *ContractYearRepository) GetByPlayer(ctx context.Context, playerID int64) ([]domain.ContractYear, error) {
	query := `
		SELECT player_id, contract_id, year, cap_hit, cap_pct
		FROM contract_years
		WHERE player_id = $1
		ORDER BY year
	`

	rows, err := r.pool.Query(ctx, query, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []domain.ContractYear
	for rows.Next() {
		var y domain.ContractYear
		if err := rows.Scan(&y.PlayerID, &y.ContractID, &y.Year, &y.CapHit, &y.CapPct); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// Upsert inserts or refreshes one season slice of a contract, keyed by
// (contract, year).
func (r *ContractYearRepository) Upsert(ctx context.Context, y *domain.ContractYear) (bool, error) {
	query := `
		INSERT INTO contract_years (player_id, contract_id, year, cap_hit, cap_pct)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (contract_id, year) DO UPDATE SET
			player_id = EXCLUDED.player_id,
			cap_hit = EXCLUDED.cap_hit,
			cap_pct = EXCLUDED.cap_pct
		RETURNING (xmax = 0)
	`

	var created bool
	err := r.pool.QueryRow(ctx, query,
		y.PlayerID, y.ContractID, y.Year, y.CapHit, y.CapPct,
	).Scan(&created)
	return created, err
}
