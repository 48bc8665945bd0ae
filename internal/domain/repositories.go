package domain

import "context"

// PlayerRepository provides access to player_info.
type PlayerRepository interface {
	GetByID(ctx context.Context, id int64) (*Player, error)
	List(ctx context.Context) ([]Player, error)
	// GetByName matches first/last name case-insensitively; name
	// collisions return every candidate.
	GetByName(ctx context.Context, firstName, lastName string) ([]Player, error)
	Upsert(ctx context.Context, p *Player) (created bool, err error)
}

// ContractRepository provides access to contracts.
type ContractRepository interface {
	GetByPlayer(ctx context.Context, playerID int64) ([]Contract, error)
	List(ctx context.Context) ([]Contract, error)
	// FindForSeason returns the first contract of the player covering
	// the season; team, when non-empty, must match case-insensitively.
	FindForSeason(ctx context.Context, playerID int64, season int, team string) (*Contract, error)
	Upsert(ctx context.Context, c *Contract) (created bool, err error)
}

// SkaterStatsRepository provides access to skater_advanced_stats.
type SkaterStatsRepository interface {
	Upsert(ctx context.Context, s *SkaterSeason) (created bool, err error)
}

// GoalieStatsRepository provides access to goalie_advanced_stats and
// the basic goalie win/loss table.
type GoalieStatsRepository interface {
	Upsert(ctx context.Context, g *GoalieSeason) (created bool, err error)
	UpsertBasic(ctx context.Context, playerID, contractID int64, season int, playoff bool, wins, losses, otLosses, shutouts int) error
}

// ContractYearRepository provides access to contract_years.
type ContractYearRepository interface {
	GetByPlayer(ctx context.Context, playerID int64) ([]ContractYear, error)
	Upsert(ctx context.Context, y *ContractYear) (created bool, err error)
}
