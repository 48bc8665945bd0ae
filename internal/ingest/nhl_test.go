package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pondmetrics/capcast/pkg/httputil"
	"github.com/pondmetrics/capcast/pkg/logger"
)

func TestFetchGoalieSummary(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exp := r.URL.Query().Get("cayenneExp")
		queries = append(queries, exp)

		// Regular season gets one row, playoffs none.
		if exp == fmt.Sprintf("goalieFullName=%q and gameTypeId=%d", "Connor Hellebuyck", 2) {
			fmt.Fprint(w, `{"data":[{
				"goalieFullName": "Connor Hellebuyck",
				"seasonId": 20232024,
				"teamAbbrevs": "WPG",
				"wins": 37,
				"losses": 19,
				"otLosses": 4,
				"shutouts": 5
			}]}`)
			return
		}
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer srv.Close()

	client := NewNHLClient(httputil.New(logger.NewNop()).DisableRetry(), srv.URL, logger.NewNop())

	records, err := client.FetchGoalieSummary(context.Background(), "Connor Hellebuyck")
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Connor Hellebuyck", rec.Name)
	assert.Equal(t, 2023, rec.Season)
	assert.False(t, rec.Playoff)
	assert.Equal(t, "WPG", rec.Team)
	assert.Equal(t, 37, rec.Wins)
	assert.Equal(t, 19, rec.Losses)
	assert.Equal(t, 4, rec.OTLosses)
	assert.Equal(t, 5, rec.Shutouts)

	// Both regular season and playoffs are queried.
	require.Len(t, queries, 2)
	assert.Contains(t, queries[0], "gameTypeId=2")
	assert.Contains(t, queries[1], "gameTypeId=3")
}

func TestFetchGoalieSummarySkipsMalformedSeasons(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"goalieFullName":"X","seasonId":2023,"wins":1}]}`)
	}))
	defer srv.Close()

	client := NewNHLClient(httputil.New(logger.NewNop()).DisableRetry(), srv.URL, logger.NewNop())

	records, err := client.FetchGoalieSummary(context.Background(), "X")
	require.NoError(t, err)
	assert.Empty(t, records)
}
