package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pondmetrics/capcast/pkg/httputil"
	"github.com/pondmetrics/capcast/pkg/logger"
)

// GoalieRecord is one season line from the league stats API goalie
// summary: the basic win/loss totals the advanced CSVs lack.
type GoalieRecord struct {
	Name     string
	Season   int
	Playoff  bool
	Team     string
	Wins     int
	Losses   int
	OTLosses int
	Shutouts int
}

// NHLClient reads the public league stats API.
type NHLClient struct {
	http    *httputil.Client
	baseURL string
	log     *logger.Logger
}

// NewNHLClient creates a stats API client.
func NewNHLClient(http *httputil.Client, baseURL string, log *logger.Logger) *NHLClient {
	return &NHLClient{http: http, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

// regular season and playoffs
var gameTypes = []int{2, 3}

// FetchGoalieSummary fetches every season line for one goalie by full
// name, regular season and playoffs.
func (c *NHLClient) FetchGoalieSummary(ctx context.Context, fullName string) ([]GoalieRecord, error) {
	var records []GoalieRecord
	for _, gameType := range gameTypes {
		page, err := c.fetchSummaryPage(ctx, fullName, gameType)
		if err != nil {
			return nil, err
		}
		records = append(records, page...)
	}
	return records, nil
}

func (c *NHLClient) fetchSummaryPage(ctx context.Context, fullName string, gameType int) ([]GoalieRecord, error) {
	params := url.Values{}
	params.Set("isAggregate", "false")
	params.Set("isGame", "false")
	params.Set("start", "0")
	params.Set("limit", "100")
	params.Set("cayenneExp", fmt.Sprintf("goalieFullName=%q and gameTypeId=%d", fullName, gameType))

	endpoint := c.baseURL + "/goalie/summary?" + params.Encode()
	body, err := c.http.GetBody(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch goalie summary: %w", err)
	}

	var payload struct {
		Data []struct {
			GoalieFullName string `json:"goalieFullName"`
			SeasonID       int    `json:"seasonId"`
			TeamAbbrevs    string `json:"teamAbbrevs"`
			Wins           int    `json:"wins"`
			Losses         int    `json:"losses"`
			OTLosses       int    `json:"otLosses"`
			Shutouts       int    `json:"shutouts"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode goalie summary: %w", err)
	}

	var records []GoalieRecord
	for _, d := range payload.Data {
		season, ok := seasonFromID(d.SeasonID)
		if !ok {
			continue
		}
		records = append(records, GoalieRecord{
			Name:     d.GoalieFullName,
			Season:   season,
			Playoff:  gameType == 3,
			Team:     d.TeamAbbrevs,
			Wins:     d.Wins,
			Losses:   d.Losses,
			OTLosses: d.OTLosses,
			Shutouts: d.Shutouts,
		})
	}
	return records, nil
}

// seasonFromID turns a composite season id like 20232024 into its
// starting year.
func seasonFromID(id int) (int, bool) {
	s := strconv.Itoa(id)
	if len(s) != 8 {
		return 0, false
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}
