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

func nextDataPage(payload string) string {
	return fmt.Sprintf(
		`<html><body><script id="__NEXT_DATA__" type="application/json">%s</script></body></html>`,
		payload,
	)
}

func TestFetchActivePlayers(t *testing.T) {
	payload := `{"props":{"pageProps":{"playersArray":[
		["McDavid, Connor","connor-mcdavid","EDM","C",0,0,0,0,28],
		["Makar, Cale","cale-makar","COL","D",0,0,0,0,26],
		["incomplete"]
	]}}}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players/active", r.URL.Path)
		fmt.Fprint(w, nextDataPage(payload))
	}))
	defer srv.Close()

	c := NewCapWagesClient(httputil.New(logger.NewNop()).DisableRetry(), srv.URL, logger.NewNop())
	players, err := c.FetchActivePlayers(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 2)

	assert.Equal(t, "Connor", players[0].FirstName)
	assert.Equal(t, "McDavid", players[0].LastName)
	assert.Equal(t, "connor-mcdavid", players[0].Slug)
	assert.Equal(t, "EDM", players[0].Team)
	assert.Equal(t, "C", players[0].Position)
	assert.Equal(t, 28, players[0].Age)
}

func TestFetchContracts(t *testing.T) {
	payload := `{"props":{"pageProps":{"player":{"contracts":[
		{
			"details":[
				{"season":"2018-19","capHit":"$12,500,000"},
				{"season":"2019-20","capHit":"$12,500,000"},
				{"season":"2025-26","capHit":"$12,500,000"}
			],
			"signingTeam":"EDM",
			"value":"$100,000,000",
			"expiryStatus":"UFA",
			"type":"Standard"
		},
		{
			"details":[{"season":"2015-16","capHit":"$925,000"}],
			"signingTeam":"",
			"value":"",
			"expiryStatus":"RFA",
			"type":"Entry Level"
		},
		{"details":[]}
	]}}}}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players/connor-mcdavid", r.URL.Path)
		fmt.Fprint(w, nextDataPage(payload))
	}))
	defer srv.Close()

	c := NewCapWagesClient(httputil.New(logger.NewNop()).DisableRetry(), srv.URL, logger.NewNop())
	contracts, err := c.FetchContracts(context.Background(), "connor-mcdavid", "EDM")
	require.NoError(t, err)
	require.Len(t, contracts, 2)

	big := contracts[0]
	assert.Equal(t, 2018, big.StartYear)
	assert.Equal(t, 2026, big.EndYear)
	assert.Equal(t, 3, big.Duration)
	assert.Equal(t, 12_500_000.0, big.CapHit)
	assert.Equal(t, 100_000_000.0, big.TotalValue)
	assert.False(t, big.RFA)
	assert.False(t, big.ELC)

	elc := contracts[1]
	assert.Equal(t, 2015, elc.StartYear)
	assert.Equal(t, 2016, elc.EndYear)
	assert.True(t, elc.RFA)
	assert.True(t, elc.ELC)
	// No listed total value: cap hit times duration.
	assert.Equal(t, 925_000.0, elc.TotalValue)
	// No signing team: fall back to the roster team.
	assert.Equal(t, "EDM", elc.Team)
}

func TestFetchContractsNoNextData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>not the page you wanted</body></html>")
	}))
	defer srv.Close()

	c := NewCapWagesClient(httputil.New(logger.NewNop()).DisableRetry(), srv.URL, logger.NewNop())
	_, err := c.FetchContracts(context.Background(), "nobody", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "__NEXT_DATA__")
}

func TestParseName(t *testing.T) {
	cases := []struct {
		in, first, last string
	}{
		{"McDavid, Connor", "Connor", "McDavid"},
		{"Connor McDavid", "Connor", "McDavid"},
		{"J.T. Miller", "J.T.", "Miller"},
		{"van Riemsdyk, James", "James", "van Riemsdyk"},
		{"Pierre-Luc Dubois", "Pierre-Luc", "Dubois"},
		{"Zegras", "Zegras", "Unknown"},
		{"", "Unknown", "Unknown"},
		{"N/A", "Unknown", "Unknown"},
	}
	for _, tc := range cases {
		first, last := ParseName(tc.in)
		assert.Equal(t, tc.first, first, tc.in)
		assert.Equal(t, tc.last, last, tc.in)
	}
}

func TestSlugFromName(t *testing.T) {
	assert.Equal(t, "connor-mcdavid", SlugFromName("Connor", "McDavid"))
	assert.Equal(t, "jt-miller", SlugFromName("J.T.", "Miller"))
	assert.Equal(t, "pierre-luc-dubois", SlugFromName("Pierre-Luc", "Dubois"))
}

func TestSeasonParsing(t *testing.T) {
	start, ok := seasonStartYear("2020-21")
	require.True(t, ok)
	assert.Equal(t, 2020, start)

	end, ok := seasonEndYear("2025-26")
	require.True(t, ok)
	assert.Equal(t, 2026, end)

	_, ok = seasonEndYear("2025")
	assert.False(t, ok)

	_, ok = seasonStartYear("")
	assert.False(t, ok)
}

func TestParseDollars(t *testing.T) {
	v, ok := parseDollars("$12,500,000")
	require.True(t, ok)
	assert.Equal(t, 12_500_000.0, v)

	_, ok = parseDollars("")
	assert.False(t, ok)
}

func TestSeasonFromID(t *testing.T) {
	season, ok := seasonFromID(20232024)
	require.True(t, ok)
	assert.Equal(t, 2023, season)

	_, ok = seasonFromID(2023)
	assert.False(t, ok)
}
