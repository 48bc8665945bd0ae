package domain

// SkaterSeason is a row of the skater_advanced_stats table: one
// (player, contract, season, playoff, situation) tuple. Only the "all"
// situation feeds the model pipeline; other strength states are kept
// for lookups.
type SkaterSeason struct {
	ID         int64
	PlayerID   int64
	ContractID int64
	Season     int
	Playoff    bool
	Team       string
	Situation  string

	Icetime     float64
	GamesPlayed int

	Goals            int
	PrimaryAssists   int
	SecondaryAssists int
	Points           int
	XGoals           float64
	ShotsOnGoal      int
	UnblockedShotAttempts int

	OnIceXGoalsPercentage float64

	ShotsBlocked int
	Takeaways    int
	Giveaways    int

	Penalties      int
	PenaltiesDrawn int

	OZoneShiftStarts       int
	DZoneShiftStarts       int
	NeutralZoneShiftStarts int
}

// GoalieSeason is a row of the goalie_advanced_stats table, optionally
// enriched with basic win/loss totals from basic_goalie_stats.
type GoalieSeason struct {
	ID         int64
	PlayerID   int64
	ContractID int64
	Season     int
	Playoff    bool
	Team       string
	Situation  string

	Icetime     float64
	GamesPlayed int

	XGoals float64
	Goals  float64

	UnblockedShotAttempts int
	BlockedShotAttempts   int

	XRebounds float64
	Rebounds  int

	XFreeze   float64
	ActFreeze int

	XOnGoal float64
	OnGoal  int

	LowDangerShots    int
	MediumDangerShots int
	HighDangerShots   int
	LowDangerXGoals   float64
	MediumDangerXGoals float64
	HighDangerXGoals  float64
	LowDangerGoals    int
	MediumDangerGoals int
	HighDangerGoals   int

	// From basic goalie stats (left join; zero when absent).
	Wins     int
	Losses   int
	OTLosses int
	Shutouts int
}
