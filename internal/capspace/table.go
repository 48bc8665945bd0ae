// Package capspace holds the league salary-cap ceiling table. The table
// is injected into every consumer so historical and future cap values
// can be updated without touching pipeline code.
package capspace

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Table maps a season start year to the league-wide cap ceiling in
// dollars for that season.
type Table map[int]float64

// Default returns the upper-limit table for the 2005-2025 seasons.
func Default() Table {
	return Table{
		2005: 39_000_000,
		2006: 44_000_000,
		2007: 50_300_000,
		2008: 56_700_000,
		2009: 56_800_000,
		2010: 59_400_000,
		2011: 64_300_000,
		2012: 70_200_000,
		2013: 64_300_000,
		2014: 69_000_000,
		2015: 71_400_000,
		2016: 73_000_000,
		2017: 75_000_000,
		2018: 79_500_000,
		2019: 81_500_000,
		2020: 81_500_000,
		2021: 81_500_000,
		2022: 82_500_000,
		2023: 82_500_000,
		2024: 88_000_000,
		2025: 95_500_000,
	}
}

// Load builds a table from config: when path is empty the built-in
// table is used, otherwise the JSON file (year -> ceiling) replaces it.
func Load(path string) (Table, error) {
	if path == "" {
		return Default(), nil
	}
	return FromFile(path)
}

// FromFile reads a {"2024": 88000000, ...} JSON object.
func FromFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cap table: %w", err)
	}

	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse cap table: %w", err)
	}

	table := make(Table, len(raw))
	for yearStr, ceiling := range raw {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, fmt.Errorf("parse cap table year %q: %w", yearStr, err)
		}
		table[year] = ceiling
	}
	return table, nil
}

// Ceiling returns the cap ceiling for a season, and whether the season
// is known to the table.
func (t Table) Ceiling(year int) (float64, bool) {
	ceiling, ok := t[year]
	return ceiling, ok
}

// CapPct converts a cap hit into a percentage of that season's ceiling.
// Unknown seasons and zero ceilings report false.
func (t Table) CapPct(capHit float64, year int) (float64, bool) {
	ceiling, ok := t[year]
	if !ok || ceiling <= 0 {
		return 0, false
	}
	return capHit / ceiling, true
}

// LatestYear returns the most recent season present in the table.
func (t Table) LatestYear() int {
	latest := 0
	for year := range t {
		if year > latest {
			latest = year
		}
	}
	return latest
}
