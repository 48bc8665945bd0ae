package domain

// Contract is a row of the contracts table. StartYear and EndYear are
// an inclusive season range; a player may hold zero, one or several
// (possibly overlapping) contracts.
type Contract struct {
	ID         int64
	PlayerID   int64
	Team       string
	StartYear  int
	EndYear    int
	Duration   int
	CapHit     float64
	RFA        bool
	ELC        bool
	CapPct     float64
	TotalValue float64
}

// Covers reports whether the contract is active for the given season.
func (c Contract) Covers(season int) bool {
	return c.StartYear <= season && season <= c.EndYear
}

// ContractYear is one season slice of a contract, with the cap hit and
// cap percentage that season carries.
type ContractYear struct {
	PlayerID   int64
	ContractID int64
	Year       int
	CapHit     float64
	CapPct     float64
}

// YearlyCapHits aggregates contracts into a year -> total cap hit map.
// Each contract contributes its cap hit to every year it covers;
// overlapping contracts sum.
func YearlyCapHits(contracts []Contract) map[int]float64 {
	totals := make(map[int]float64)
	for _, c := range contracts {
		for year := c.StartYear; year <= c.EndYear; year++ {
			totals[year] += c.CapHit
		}
	}
	return totals
}
