// Package store implements the domain repositories on Postgres. All
// SQL for the entity tables lives here and nowhere else; upserts key
// on the natural identity of each table so ingestion is idempotent.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pondmetrics/capcast/internal/domain"
)

// PlayerRepository implements domain.PlayerRepository.
type PlayerRepository struct {
	pool *pgxpool.Pool
}

// NewPlayerRepository creates a new player repository.
func NewPlayerRepository(pool *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{pool: pool}
}

// GetByID retrieves a player by league id. A missing player returns
// (nil, nil).
func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	query := `
		SELECT player_id, first_name, last_name, team, position, age
		FROM player_info
		WHERE player_id = $1
	`

	var p domain.Player
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Team, &p.Position, &p.Age,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List retrieves every player, ordered by last then first name.
func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	query := `
		SELECT player_id, first_name, last_name, team, position, age
		FROM player_info
		ORDER BY last_name, first_name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Team, &p.Position, &p.Age); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// GetByName matches first and last name case-insensitively. Name
// collisions return every candidate; the caller decides how to
// disambiguate.
func (r *PlayerRepository) GetByName(ctx context.Context, firstName, lastName string) ([]domain.Player, error) {
	query := `
		SELECT player_id, first_name, last_name, team, position, age
		FROM player_info
		WHERE first_name ILIKE $1 AND last_name ILIKE $2
	`

	rows, err := r.pool.Query(ctx, query, firstName, lastName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Team, &p.Position, &p.Age); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// Upsert inserts or refreshes a player keyed by name and team,
// reporting whether a new row was created. The generated id is written
// back to p.
func (r *PlayerRepository) Upsert(ctx context.Context, p *domain.Player) (bool, error) {
	query := `
		INSERT INTO player_info (first_name, last_name, team, position, age)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (first_name, last_name, team) DO UPDATE SET
			position = EXCLUDED.position,
			age = EXCLUDED.age
		RETURNING player_id, (xmax = 0)
	`

	var created bool
	err := r.pool.QueryRow(ctx, query,
		p.FirstName, p.LastName, p.Team, p.Position, p.Age,
	).Scan(&p.ID, &created)
	return created, err
}
