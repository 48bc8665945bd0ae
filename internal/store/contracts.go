package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pondmetrics/capcast/internal/domain"
)

const contractColumns = `
	id, player_id, team, start_year, end_year, duration,
	cap_hit, rfa, elc, cap_pct, total_value`

// ContractRepository implements domain.ContractRepository.
type ContractRepository struct {
	pool *pgxpool.Pool
}

// NewContractRepository creates a new contract repository.
func NewContractRepository(pool *pgxpool.Pool) *ContractRepository {
	return &ContractRepository{pool: pool}
}

func scanContract(row pgx.Row) (*domain.Contract, error) {
	var c domain.Contract
	err := row.Scan(
		&c.ID, &c.PlayerID, &c.Team, &c.StartYear, &c.EndYear, &c.Duration,
		&c.CapHit, &c.RFA, &c.ELC, &c.CapPct, &c.TotalValue,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByPlayer retrieves every contract of a player, newest first.
func (r *ContractRepository) GetByPlayer(ctx context.Context, playerID int64) ([]domain.Contract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE player_id = $1
		ORDER BY start_year DESC
	`
	return r.queryContracts(ctx, query, playerID)
}

// List retrieves every contract.
func (r *ContractRepository) List(ctx context.Context) ([]domain.Contract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		ORDER BY player_id, start_year
	`
	return r.queryContracts(ctx, query)
}

func (r *ContractRepository) queryContracts(ctx context.Context, query string, args ...any) ([]domain.Contract, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// FindForSeason returns the first contract of the player covering the
// season. A non-empty team must also match, case-insensitively. No
// match returns (nil, nil).
func (r *ContractRepository) FindForSeason(ctx context.Context, playerID int64, season int, team string) (*domain.Contract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE player_id = $1
		  AND start_year <= $2 AND end_year >= $2
		  AND ($3 = '' OR team ILIKE $3)
		ORDER BY start_year
		LIMIT 1
	`

	c, err := scanContract(r.pool.QueryRow(ctx, query, playerID, season, team))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Upsert inserts or refreshes a contract keyed by its player and
// season span, reporting whether a new row was created. The generated
// id is written back to c.
func (r *ContractRepository) Upsert(ctx context.Context, c *domain.Contract) (bool, error) {
	query := `
		INSERT INTO contracts (
			player_id, team, start_year, end_year, duration,
			cap_hit, rfa, elc, cap_pct, total_value
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (player_id, team, start_year, end_year) DO UPDATE SET
			duration = EXCLUDED.duration,
			cap_hit = EXCLUDED.cap_hit,
			rfa = EXCLUDED.rfa,
			elc = EXCLUDED.elc,
			cap_pct = EXCLUDED.cap_pct,
			total_value = EXCLUDED.total_value
		RETURNING id, (xmax = 0)
	`

	var created bool
	err := r.pool.QueryRow(ctx, query,
		c.PlayerID, c.Team, c.StartYear, c.EndYear, c.Duration,
		c.CapHit, c.RFA, c.ELC, c.CapPct, c.TotalValue,
	).Scan(&c.ID, &created)
	return created, err
}
