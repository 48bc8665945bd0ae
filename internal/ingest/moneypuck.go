package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/pondmetrics/capcast/pkg/httputil"
)

// MoneyPuckClient downloads season-summary CSV exports.
type MoneyPuckClient struct {
	http    *httputil.Client
	baseURL string
}

// NewMoneyPuckClient creates a download client over the shared HTTP
// client.
func NewMoneyPuckClient(http *httputil.Client, baseURL string) *MoneyPuckClient {
	return &MoneyPuckClient{http: http, baseURL: strings.TrimRight(baseURL, "/")}
}

// FetchSkaterCSV downloads the regular-season skater export for one
// season. The season is the starting year, e.g. 2023 for 2023-24.
func (c *MoneyPuckClient) FetchSkaterCSV(ctx context.Context, season int) ([]byte, error) {
	return c.fetch(ctx, season, "skaters")
}

// FetchGoalieCSV downloads the regular-season goalie export for one
// season.
func (c *MoneyPuckClient) FetchGoalieCSV(ctx context.Context, season int) ([]byte, error) {
	return c.fetch(ctx, season, "goalies")
}

func (c *MoneyPuckClient) fetch(ctx context.Context, season int, kind string) ([]byte, error) {
	url := fmt.Sprintf("%s/moneypuck/playerData/seasonSummary/%d/regular/%s.csv", c.baseURL, season, kind)
	body, err := c.http.GetBody(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s csv for season %d: %w", kind, season, err)
	}
	return body, nil
}
