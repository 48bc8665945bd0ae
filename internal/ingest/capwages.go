// Package ingest loads the entity tables from their upstream sources:
// the CapWages site for players and contracts, the league stats API
// for goalie win/loss records, and MoneyPuck season CSVs for advanced
// stats. Every loader is idempotent and reports what it created,
// updated, and skipped.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pondmetrics/capcast/pkg/httputil"
	"github.com/pondmetrics/capcast/pkg/logger"
)

// RosterEntry is one row of the CapWages active-players listing.
type RosterEntry struct {
	FirstName string
	LastName  string
	Slug      string
	Team      string
	Position  string
	Age       int
}

// ScrapedContract is one contract block from a CapWages player page.
type ScrapedContract struct {
	Team       string
	StartYear  int
	EndYear    int
	Duration   int
	CapHit     float64
	RFA        bool
	ELC        bool
	TotalValue float64
}

// CapWagesClient scrapes CapWages pages. The data lives in the
// __NEXT_DATA__ JSON document embedded in each page, not in the
// rendered markup.
type CapWagesClient struct {
	http    *httputil.Client
	baseURL string
	log     *logger.Logger
}

// NewCapWagesClient creates a scraping client over the shared HTTP
// client, which handles retries and rate limiting.
func NewCapWagesClient(http *httputil.Client, baseURL string, log *logger.Logger) *CapWagesClient {
	return &CapWagesClient{http: http, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

// FetchActivePlayers scrapes the active-players listing. Each listing
// row is a positional array: name, slug, team, position, with age at
// index 8.
func (c *CapWagesClient) FetchActivePlayers(ctx context.Context) ([]RosterEntry, error) {
	var page struct {
		Props struct {
			PageProps struct {
				PlayersArray [][]json.RawMessage `json:"playersArray"`
			} `json:"pageProps"`
		} `json:"props"`
	}
	if err := c.fetchNextData(ctx, c.baseURL+"/players/active", &page); err != nil {
		return nil, err
	}

	var entries []RosterEntry
	for _, row := range page.Props.PageProps.PlayersArray {
		if len(row) < 4 {
			continue
		}
		first, last := ParseName(rawString(row[0]))
		e := RosterEntry{
			FirstName: first,
			LastName:  last,
			Slug:      rawString(row[1]),
			Team:      rawString(row[2]),
			Position:  rawString(row[3]),
		}
		if len(row) > 8 {
			e.Age = rawInt(row[8])
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// FetchContracts scrapes every contract on a player page. Contracts
// with no season details or no parseable cap hit are dropped;
// fallbackTeam fills in when the block names no signing team.
func (c *CapWagesClient) FetchContracts(ctx context.Context, slug, fallbackTeam string) ([]ScrapedContract, error) {
	var page struct {
		Props struct {
			PageProps struct {
				Player struct {
					Contracts []struct {
						Details []struct {
							Season string `json:"season"`
							CapHit string `json:"capHit"`
						} `json:"details"`
						SigningTeam  string `json:"signingTeam"`
						Value        string `json:"value"`
						ExpiryStatus string `json:"expiryStatus"`
						Type         string `json:"type"`
					} `json:"contracts"`
				} `json:"player"`
			} `json:"pageProps"`
		} `json:"props"`
	}
	if err := c.fetchNextData(ctx, c.baseURL+"/players/"+slug, &page); err != nil {
		return nil, err
	}

	var contracts []ScrapedContract
	for _, raw := range page.Props.PageProps.Player.Contracts {
		if len(raw.Details) == 0 {
			continue
		}

		startYear, ok := seasonStartYear(raw.Details[0].Season)
		if !ok {
			continue
		}
		endYear, ok := seasonEndYear(raw.Details[len(raw.Details)-1].Season)
		if !ok {
			continue
		}
		capHit, ok := parseDollars(raw.Details[0].CapHit)
		if !ok {
			continue
		}

		duration := len(raw.Details)
		totalValue, ok := parseDollars(raw.Value)
		if !ok {
			totalValue = capHit * float64(duration)
		}

		team := raw.SigningTeam
		if team == "" {
			team = fallbackTeam
		}

		contracts = append(contracts, ScrapedContract{
			Team:       team,
			StartYear:  startYear,
			EndYear:    endYear,
			Duration:   duration,
			CapHit:     capHit,
			RFA:        strings.Contains(strings.ToUpper(raw.ExpiryStatus), "RFA"),
			ELC:        isEntryLevel(raw.Type),
			TotalValue: totalValue,
		})
	}
	return contracts, nil
}

// fetchNextData downloads a page and decodes the embedded
// __NEXT_DATA__ JSON into out.
func (c *CapWagesClient) fetchNextData(ctx context.Context, url string, out any) error {
	body, err := c.http.GetBody(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parse %s: %w", url, err)
	}

	payload := doc.Find("script#__NEXT_DATA__").First().Text()
	if payload == "" {
		return fmt.Errorf("no __NEXT_DATA__ document in %s", url)
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("decode __NEXT_DATA__ from %s: %w", url, err)
	}
	return nil
}

// ParseName splits a listed player name into first and last. Both the
// "Last, First" and "First Last" forms appear upstream; multi-word
// surnames stay together.
func ParseName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if full == "" || full == "N/A" {
		return "Unknown", "Unknown"
	}

	if i := strings.Index(full, ","); i >= 0 {
		last := strings.TrimSpace(full[:i])
		first := strings.TrimSpace(full[i+1:])
		if first != "" && last != "" {
			return first, last
		}
	}

	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "Unknown", "Unknown"
	case 1:
		return parts[0], "Unknown"
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9-]`)
var slugDashes = regexp.MustCompile(`-+`)

// SlugFromName builds the CapWages URL slug for a player whose listing
// row carried none.
func SlugFromName(firstName, lastName string) string {
	slug := strings.ToLower(firstName + " " + lastName)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugDashes.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// seasonStartYear parses "2020-21" into 2020.
func seasonStartYear(season string) (int, bool) {
	parts := strings.SplitN(season, "-", 2)
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	return year, true
}

// seasonEndYear parses the trailing year of "2025-26" into 2026;
// already-full years pass through.
func seasonEndYear(season string) (int, bool) {
	parts := strings.SplitN(season, "-", 2)
	if len(parts) != 2 {
		return 0, false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	if year < 100 {
		year += 2000
	}
	return year, true
}

// parseDollars parses "$12,500,000" into 12500000.
func parseDollars(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.ReplaceAll(s, "$", ""), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isEntryLevel(contractType string) bool {
	t := strings.ToUpper(contractType)
	return strings.Contains(t, "ENTRY") || strings.Contains(t, "ELC")
}

func rawString(r json.RawMessage) string {
	var s string
	if err := json.Unmarshal(r, &s); err != nil {
		return ""
	}
	return s
}

func rawInt(r json.RawMessage) int {
	var n int
	if err := json.Unmarshal(r, &n); err != nil {
		var f float64
		if err := json.Unmarshal(r, &f); err != nil {
			return 0
		}
		return int(f)
	}
	return n
}
