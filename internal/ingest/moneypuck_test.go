package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pondmetrics/capcast/pkg/httputil"
	"github.com/pondmetrics/capcast/pkg/logger"
)

func TestFetchSkaterCSV(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("name,team\nConnor McDavid,EDM\n"))
	}))
	defer srv.Close()

	client := NewMoneyPuckClient(httputil.New(logger.NewNop()).DisableRetry(), srv.URL)

	body, err := client.FetchSkaterCSV(context.Background(), 2023)
	require.NoError(t, err)

	assert.Equal(t, "/moneypuck/playerData/seasonSummary/2023/regular/skaters.csv", gotPath)
	assert.Contains(t, string(body), "Connor McDavid")
}

func TestFetchGoalieCSVError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewMoneyPuckClient(httputil.New(logger.NewNop()).DisableRetry(), srv.URL)

	_, err := client.FetchGoalieCSV(context.Background(), 2023)
	assert.ErrorContains(t, err, "goalies csv for season 2023")
}
