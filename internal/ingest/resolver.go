package ingest

import (
	"context"

	"github.com/pondmetrics/capcast/internal/domain"
)

// Resolution is the outcome of matching a stat line to a stored player
// and contract. A nil Player means no usable match; Ambiguous marks
// the case where several same-named players held contracts for the
// season and none could be told apart.
type Resolution struct {
	Player    *domain.Player
	Contract  *domain.Contract
	Ambiguous bool
}

// Resolver matches upstream stat rows, which carry only a name, season
// and team, to stored players and their contracts.
type Resolver struct {
	players   domain.PlayerRepository
	contracts domain.ContractRepository
}

// NewResolver creates a resolver over the player and contract
// repositories.
func NewResolver(players domain.PlayerRepository, contracts domain.ContractRepository) *Resolver {
	return &Resolver{players: players, contracts: contracts}
}

// Resolve finds the player and contract behind a stat line. Same-named
// players are disambiguated in two passes: first a contract covering
// the season whose team matches the row's team, then, failing that, a
// contract covering the season regardless of team. Either pass accepts
// only a unique match; several matching candidates is an ambiguous
// skip.
func (r *Resolver) Resolve(ctx context.Context, firstName, lastName string, season int, team string) (Resolution, error) {
	candidates, err := r.players.GetByName(ctx, firstName, lastName)
	if err != nil {
		return Resolution{}, err
	}
	if len(candidates) == 0 {
		return Resolution{}, nil
	}

	res, matches, err := r.uniqueMatch(ctx, candidates, season, team)
	if err != nil {
		return Resolution{}, err
	}
	if matches > 1 {
		return Resolution{Ambiguous: true}, nil
	}
	if matches == 1 {
		return res, nil
	}

	res, matches, err = r.uniqueMatch(ctx, candidates, season, "")
	if err != nil {
		return Resolution{}, err
	}
	switch matches {
	case 1:
		return res, nil
	case 0:
		return Resolution{}, nil
	default:
		return Resolution{Ambiguous: true}, nil
	}
}

// uniqueMatch counts candidates holding a contract covering the season
// (and team, when non-empty), returning the last match found.
func (r *Resolver) uniqueMatch(ctx context.Context, candidates []domain.Player, season int, team string) (Resolution, int, error) {
	var match Resolution
	matches := 0
	for i := range candidates {
		c, err := r.contracts.FindForSeason(ctx, candidates[i].ID, season, team)
		if err != nil {
			return Resolution{}, 0, err
		}
		if c != nil {
			matches++
			match = Resolution{Player: &candidates[i], Contract: c}
		}
	}
	return match, matches, nil
}
