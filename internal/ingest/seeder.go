package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pondmetrics/capcast/internal/capspace"
	"github.com/pondmetrics/capcast/internal/domain"
	"github.com/pondmetrics/capcast/pkg/logger"
)

// checkpointEvery controls progress logging during long seeds.
const checkpointEvery = 100

// Seeder orchestrates the ingest loaders against the entity
// repositories.
type Seeder struct {
	capwages *CapWagesClient
	nhl      *NHLClient

	players       domain.PlayerRepository
	contracts     domain.ContractRepository
	skaterStats   domain.SkaterStatsRepository
	goalieStats   domain.GoalieStatsRepository
	contractYears domain.ContractYearRepository

	resolver *Resolver
	caps     capspace.Table
	log      *logger.Logger
}

// NewSeeder wires a seeder.
func NewSeeder(
	capwages *CapWagesClient,
	nhl *NHLClient,
	players domain.PlayerRepository,
	contracts domain.ContractRepository,
	skaterStats domain.SkaterStatsRepository,
	goalieStats domain.GoalieStatsRepository,
	contractYears domain.ContractYearRepository,
	caps capspace.Table,
	log *logger.Logger,
) *Seeder {
	return &Seeder{
		capwages:      capwages,
		nhl:           nhl,
		players:       players,
		contracts:     contracts,
		skaterStats:   skaterStats,
		goalieStats:   goalieStats,
		contractYears: contractYears,
		resolver:      NewResolver(players, contracts),
		caps:          caps,
		log:           log,
	}
}

// SeedPlayers scrapes the active roster and upserts every complete
// entry. Rows with unknown names, a missing team or position, or no
// age are skipped.
func (s *Seeder) SeedPlayers(ctx context.Context) (domain.IngestReport, error) {
	var report domain.IngestReport

	entries, err := s.capwages.FetchActivePlayers(ctx)
	if err != nil {
		return report, fmt.Errorf("fetch active players: %w", err)
	}

	for _, e := range entries {
		if e.FirstName == "Unknown" || e.LastName == "Unknown" ||
			e.Team == "" || e.Team == "N/A" ||
			e.Position == "" || e.Position == "N/A" || e.Age == 0 {
			report.Skipped++
			continue
		}

		p := domain.Player{
			FirstName: e.FirstName,
			LastName:  e.LastName,
			Team:      e.Team,
			Position:  e.Position,
			Age:       e.Age,
		}
		created, err := s.players.Upsert(ctx, &p)
		if err != nil {
			report.AddErrorf("player %s %s: %v", e.FirstName, e.LastName, err)
			continue
		}
		if created {
			report.Created++
		} else {
			report.Updated++
		}
	}

	s.log.WithField("report", report.Summary()).Info("players seeded")
	return report, nil
}

// SeedContracts walks every stored player, finds their CapWages page
// through the roster slug lookup (or a slug derived from their name),
// and upserts each scraped contract. The stored cap percentage is the
// cap hit against the ceiling of the contract's first season, zero
// when that season predates the cap table.
func (s *Seeder) SeedContracts(ctx context.Context) (domain.IngestReport, error) {
	var report domain.IngestReport

	players, err := s.players.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list players: %w", err)
	}

	slugs, err := s.slugLookup(ctx)
	if err != nil {
		return report, fmt.Errorf("build slug lookup: %w", err)
	}

	for i, p := range players {
		slug, ok := slugs[slugKey(p.FirstName, p.LastName, p.Team)]
		if !ok {
			slug = SlugFromName(p.FirstName, p.LastName)
		}
		if slug == "" {
			report.Skipped++
			continue
		}

		scraped, err := s.capwages.FetchContracts(ctx, slug, p.Team)
		if err != nil {
			report.AddErrorf("contracts for %s: %v", slug, err)
			continue
		}
		if len(scraped) == 0 {
			report.Skipped++
			continue
		}

		for _, sc := range scraped {
			capPct, _ := s.caps.CapPct(sc.CapHit, sc.StartYear)
			c := domain.Contract{
				PlayerID:   p.ID,
				Team:       sc.Team,
				StartYear:  sc.StartYear,
				EndYear:    sc.EndYear,
				Duration:   sc.Duration,
				CapHit:     sc.CapHit,
				RFA:        sc.RFA,
				ELC:        sc.ELC,
				CapPct:     capPct,
				TotalValue: sc.TotalValue,
			}
			created, err := s.contracts.Upsert(ctx, &c)
			if err != nil {
				report.AddErrorf("contract %s %d-%d: %v", slug, sc.StartYear, sc.EndYear, err)
				continue
			}
			if created {
				report.Created++
			} else {
				report.Updated++
			}
		}

		if (i+1)%checkpointEvery == 0 {
			s.log.WithFields(map[string]interface{}{
				"players": i + 1,
				"report":  report.Summary(),
			}).Info("contract seed progress")
		}
	}

	s.log.WithField("report", report.Summary()).Info("contracts seeded")
	return report, nil
}

// SeedContractYears expands every stored contract into per-season cap
// slices. The per-year cap hit is the contract's total value spread
// evenly over its duration; seasons outside the cap table are skipped.
func (s *Seeder) SeedContractYears(ctx context.Context) (domain.IngestReport, error) {
	var report domain.IngestReport

	contracts, err := s.contracts.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list contracts: %w", err)
	}

	for _, c := range contracts {
		var capHit float64
		if c.Duration > 0 {
			capHit = c.TotalValue / float64(c.Duration)
		}

		for year := c.StartYear; year <= c.EndYear; year++ {
			ceiling, ok := s.caps.Ceiling(year)
			if !ok {
				report.Skipped++
				continue
			}

			y := domain.ContractYear{
				PlayerID:   c.PlayerID,
				ContractID: c.ID,
				Year:       year,
				CapHit:     capHit,
				CapPct:     capHit / ceiling,
			}
			created, err := s.contractYears.Upsert(ctx, &y)
			if err != nil {
				report.AddErrorf("contract %d year %d: %v", c.ID, year, err)
				continue
			}
			if created {
				report.Created++
			} else {
				report.Updated++
			}
		}
	}

	s.log.WithField("report", report.Summary()).Info("contract years seeded")
	return report, nil
}

// SeedSkaterStatsFile loads one MoneyPuck skater CSV from disk.
func (s *Seeder) SeedSkaterStatsFile(ctx context.Context, path string) (domain.IngestReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.IngestReport{}, err
	}
	defer f.Close()
	return s.SeedSkaterStats(ctx, f)
}

// SeedSkaterStats parses a skater CSV and upserts every resolvable
// row. Rows whose name matches no stored player, or several stored
// players indistinguishably, are skipped.
func (s *Seeder) SeedSkaterStats(ctx context.Context, src io.Reader) (domain.IngestReport, error) {
	var report domain.IngestReport

	rows, err := ParseSkaterCSV(src)
	if err != nil {
		return report, err
	}

	for i, row := range rows {
		first, last := splitStatName(row.Name)
		if first == "" || last == "" {
			report.Skipped++
			continue
		}

		res, err := s.resolver.Resolve(ctx, first, last, row.Stats.Season, row.Stats.Team)
		if err != nil {
			report.AddErrorf("resolve %s: %v", row.Name, err)
			continue
		}
		if res.Ambiguous {
			report.SkippedAmbiguous++
			continue
		}
		if res.Player == nil {
			report.Skipped++
			continue
		}

		stats := row.Stats
		stats.PlayerID = res.Player.ID
		stats.ContractID = res.Contract.ID
		stats.Playoff = false

		created, err := s.skaterStats.Upsert(ctx, &stats)
		if err != nil {
			report.AddErrorf("skater stats %s %d: %v", row.Name, stats.Season, err)
			continue
		}
		if created {
			report.Created++
		} else {
			report.Updated++
		}

		if (i+1)%checkpointEvery == 0 {
			s.log.WithFields(map[string]interface{}{
				"rows":   i + 1,
				"report": report.Summary(),
			}).Info("skater stat seed progress")
		}
	}

	s.log.WithField("report", report.Summary()).Info("skater stats seeded")
	return report, nil
}

// SeedGoalieStatsFile loads one MoneyPuck goalie CSV from disk.
func (s *Seeder) SeedGoalieStatsFile(ctx context.Context, path string) (domain.IngestReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.IngestReport{}, err
	}
	defer f.Close()
	return s.SeedGoalieStats(ctx, f)
}

// SeedGoalieStats parses a goalie CSV and upserts every resolvable
// row under the same matching rules as skater stats.
func (s *Seeder) SeedGoalieStats(ctx context.Context, src io.Reader) (domain.IngestReport, error) {
	var report domain.IngestReport

	rows, err := ParseGoalieCSV(src)
	if err != nil {
		return report, err
	}

	for _, row := range rows {
		first, last := splitStatName(row.Name)
		if first == "" || last == "" {
			report.Skipped++
			continue
		}

		res, err := s.resolver.Resolve(ctx, first, last, row.Stats.Season, row.Stats.Team)
		if err != nil {
			report.AddErrorf("resolve %s: %v", row.Name, err)
			continue
		}
		if res.Ambiguous {
			report.SkippedAmbiguous++
			continue
		}
		if res.Player == nil {
			report.Skipped++
			continue
		}

		stats := row.Stats
		stats.PlayerID = res.Player.ID
		stats.ContractID = res.Contract.ID
		stats.Playoff = false

		created, err := s.goalieStats.Upsert(ctx, &stats)
		if err != nil {
			report.AddErrorf("goalie stats %s %d: %v", row.Name, stats.Season, err)
			continue
		}
		if created {
			report.Created++
		} else {
			report.Updated++
		}
	}

	s.log.WithField("report", report.Summary()).Info("goalie stats seeded")
	return report, nil
}

// SeedBasicGoalieStats pulls win/loss season lines from the league
// stats API for every stored goalie and records them against the
// contract covering each season.
func (s *Seeder) SeedBasicGoalieStats(ctx context.Context) (domain.IngestReport, error) {
	var report domain.IngestReport

	players, err := s.players.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list players: %w", err)
	}

	for _, p := range players {
		if p.Class() != domain.ClassGoalie {
			continue
		}

		records, err := s.nhl.FetchGoalieSummary(ctx, p.FirstName+" "+p.LastName)
		if err != nil {
			report.AddErrorf("goalie summary %s %s: %v", p.FirstName, p.LastName, err)
			continue
		}

		for _, rec := range records {
			contract, err := s.contracts.FindForSeason(ctx, p.ID, rec.Season, "")
			if err != nil {
				report.AddErrorf("contract for %s %d: %v", p.LastName, rec.Season, err)
				continue
			}
			if contract == nil {
				report.Skipped++
				continue
			}

			err = s.goalieStats.UpsertBasic(ctx, p.ID, contract.ID, rec.Season, rec.Playoff,
				rec.Wins, rec.Losses, rec.OTLosses, rec.Shutouts)
			if err != nil {
				report.AddErrorf("basic goalie stats %s %d: %v", p.LastName, rec.Season, err)
				continue
			}
			report.Created++
		}
	}

	s.log.WithField("report", report.Summary()).Info("basic goalie stats seeded")
	return report, nil
}

func (s *Seeder) slugLookup(ctx context.Context) (map[string]string, error) {
	entries, err := s.capwages.FetchActivePlayers(ctx)
	if err != nil {
		return nil, err
	}
	lookup := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Slug != "" {
			lookup[slugKey(e.FirstName, e.LastName, e.Team)] = e.Slug
		}
	}
	return lookup, nil
}

func slugKey(firstName, lastName, team string) string {
	return strings.ToLower(firstName) + "_" + strings.ToLower(lastName) + "_" + team
}

// splitStatName splits a stat-line name on the first space: MoneyPuck
// exports carry plain "First Last" names.
func splitStatName(full string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(full), " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	if len(parts) == 1 && parts[0] != "" {
		return parts[0], ""
	}
	return "", ""
}
