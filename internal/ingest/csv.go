package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pondmetrics/capcast/internal/domain"
)

// SkaterRow is one parsed line of a MoneyPuck skater season CSV. The
// name is kept separate because the player id is only known after
// resolution against the store.
type SkaterRow struct {
	Name  string
	Stats domain.SkaterSeason
}

// GoalieRow is one parsed line of a MoneyPuck goalie season CSV.
type GoalieRow struct {
	Name  string
	Stats domain.GoalieSeason
}

// csvRecord resolves fields by header name, tolerating absent columns
// and unparseable cells as zero values.
type csvRecord struct {
	index  map[string]int
	fields []string
}

func (r csvRecord) str(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return r.fields[i]
}

func (r csvRecord) in(col string) int {
	f, err := strconv.ParseFloat(r.str(col), 64)
	if err != nil {
		return 0
	}
	return int(f)
}

func (r csvRecord) fl(col string) float64 {
	f, err := strconv.ParseFloat(r.str(col), 64)
	if err != nil {
		return 0
	}
	return f
}

func readAll(src io.Reader, fn func(csvRecord)) error {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read csv record: %w", err)
		}
		fn(csvRecord{index: index, fields: fields})
	}
}

// ParseSkaterCSV parses a MoneyPuck skater season export. Every
// situation row is returned; the caller filters if it wants only one
// strength state.
func ParseSkaterCSV(src io.Reader) ([]SkaterRow, error) {
	var rows []SkaterRow
	err := readAll(src, func(r csvRecord) {
		rows = append(rows, SkaterRow{
			Name: r.str("name"),
			Stats: domain.SkaterSeason{
				Season:    r.in("season"),
				Team:      r.str("team"),
				Situation: r.str("situation"),

				Icetime:     r.fl("icetime"),
				GamesPlayed: r.in("games_played"),

				Goals:                 r.in("I_F_goals"),
				PrimaryAssists:        r.in("I_F_primaryAssists"),
				SecondaryAssists:      r.in("I_F_secondaryAssists"),
				Points:                r.in("I_F_points"),
				XGoals:                r.fl("I_F_xGoals"),
				ShotsOnGoal:           r.in("I_F_shotsOnGoal"),
				UnblockedShotAttempts: r.in("I_F_unblockedShotAttempts"),

				OnIceXGoalsPercentage: r.fl("onIce_xGoalsPercentage"),

				ShotsBlocked: r.in("shotsBlockedByPlayer"),
				Takeaways:    r.in("I_F_takeaways"),
				Giveaways:    r.in("I_F_giveaways"),

				Penalties:      r.in("penalties"),
				PenaltiesDrawn: r.in("penaltiesDrawn"),

				OZoneShiftStarts:       r.in("I_F_oZoneShiftStarts"),
				DZoneShiftStarts:       r.in("I_F_dZoneShiftStarts"),
				NeutralZoneShiftStarts: r.in("I_F_neutralZoneShiftStarts"),
			},
		})
	})
	return rows, err
}

// ParseGoalieCSV parses a MoneyPuck goalie season export.
func ParseGoalieCSV(src io.Reader) ([]GoalieRow, error) {
	var rows []GoalieRow
	err := readAll(src, func(r csvRecord) {
		rows = append(rows, GoalieRow{
			Name: r.str("name"),
			Stats: domain.GoalieSeason{
				Season:    r.in("season"),
				Team:      r.str("team"),
				Situation: r.str("situation"),

				Icetime:     r.fl("icetime"),
				GamesPlayed: r.in("games_played"),

				XGoals: r.fl("xGoals"),
				Goals:  r.fl("goals"),

				UnblockedShotAttempts: r.in("unblocked_shot_attempts"),
				BlockedShotAttempts:   r.in("blocked_shot_attempts"),

				XRebounds: r.fl("xRebounds"),
				Rebounds:  r.in("rebounds"),
				XFreeze:   r.fl("xFreeze"),
				ActFreeze: r.in("freeze"),

				XOnGoal: r.fl("xOnGoal"),
				OnGoal:  r.in("ongoal"),

				LowDangerShots:     r.in("lowDangerShots"),
				MediumDangerShots:  r.in("mediumDangerShots"),
				HighDangerShots:    r.in("highDangerShots"),
				LowDangerXGoals:    r.fl("lowDangerxGoals"),
				MediumDangerXGoals: r.fl("mediumDangerxGoals"),
				HighDangerXGoals:   r.fl("highDangerxGoals"),
				LowDangerGoals:     r.in("lowDangerGoals"),
				MediumDangerGoals:  r.in("mediumDangerGoals"),
				HighDangerGoals:    r.in("highDangerGoals"),
			},
		})
	})
	return rows, err
}
