package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/launchdeck/internal/testutil/fakeapi"
	"github.com/matzehuels/launchdeck/pkg/errors"
	"github.com/matzehuels/launchdeck/pkg/launch"
	"github.com/matzehuels/launchdeck/pkg/observability"
)

// setup points a fresh CLI at srv with an isolated environment.
func setup(t *testing.T, srv *fakeapi.Server) *CLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("LAUNCHDECK_API_URL", srv.URL)
	t.Setenv("LAUNCHDECK_RETRY_ATTEMPTS", "2")
	t.Setenv("LAUNCHDECK_RETRY_DELAY", "1ms")
	return New(&bytes.Buffer{}, LogInfo)
}

// execute runs one command line and returns stdout and stderr.
func execute(t *testing.T, c *CLI, args ...string) (string, string, error) {
	t.Helper()
	root := c.RootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func assertContains(t *testing.T, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		assert.Contains(t, got, w)
	}
}

func assertNotContains(t *testing.T, got string, unwanted ...string) {
	t.Helper()
	for _, w := range unwanted {
		assert.NotContains(t, got, w)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	want := []string{"launches", "launch", "upcoming", "past", "stats", "series", "browse", "health", "info", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if assert.NoError(t, err, "subcommand %q", name) {
			assert.Equal(t, name, cmd.Name())
		}
	}
	for _, flag := range []string{"config", "verbose", "metrics"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "persistent flag --%s", flag)
	}
}

func TestVersionFlag(t *testing.T) {
	out, _, err := execute(t, New(&bytes.Buffer{}, LogInfo), "--version")
	require.NoError(t, err, "--version")
	assertContains(t, out, "launchdeck version", "commit:")
}

func TestCompletion(t *testing.T) {
	out, _, err := execute(t, New(&bytes.Buffer{}, LogInfo), "completion", "bash")
	require.NoError(t, err, "completion")
	assertContains(t, out, "launchdeck")

	_, _, err = execute(t, New(&bytes.Buffer{}, LogInfo), "completion", "tcsh")
	assert.Error(t, err, "unknown shell should be rejected")
}

func TestLaunchesSearch(t *testing.T) {
	srv := fakeapi.New(t)
	c := setup(t, srv)

	out, _, err := execute(t, c, "launches", "--search", "CREW")
	require.NoError(t, err, "launches")
	assertContains(t, out, "Crew-1", "page 1 of 1, 1 matching launches")
	assertNotContains(t, out, "RatSat", "Starlink")

	assert.Equal(t, 1, srv.Hits("/launches"))
}

func TestLaunchesSortAndPage(t *testing.T) {
	c := setup(t, fakeapi.New(t))

	out, _, err := execute(t, c, "launches", "--sort", "flight_number", "--order", "asc", "--limit", "2", "--page", "2")
	require.NoError(t, err, "launches")
	assertContains(t, out, "Arabsat-6A", "CRS-20", "page 2 of 4, 7 matching launches")
	assertNotContains(t, out, "FalconSat", "RatSat", "Crew-1")

	assert.Less(t, strings.Index(out, "Arabsat-6A"), strings.Index(out, "CRS-20"), "flight 78 should be listed before flight 91")
}

func TestLaunchesFilters(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		want   []string
		reject []string
	}{
		{"failures", []string{"--outcome", "failure"}, []string{"FalconSat"}, []string{"RatSat", "Crew-1"}},
		{"upcoming", []string{"--upcoming"}, []string{"USSF-44"}, []string{"Crew-1"}},
		{"past", []string{"--past", "--limit", "0"}, []string{"FalconSat", "Starlink 4-36"}, []string{"USSF-44"}},
		{"date range", []string{"--from", "2020-01-01", "--to", "2020-12-31"}, []string{"CRS-20", "Crew-1"}, []string{"Starlink", "Arabsat"}},
		{"inclusive end day", []string{"--from", "2022-10-20", "--to", "2022-10-20"}, []string{"Starlink 4-36"}, nil},
		{"rocket", []string{"--rocket", "5e9d0d95eda69973a809d1ec"}, []string{"CRS-20", "Crew-1", "Starlink 4-36"}, []string{"FalconSat", "USSF-44"}},
		{"no match", []string{"--search", "apollo"}, []string{"No launches match"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := setup(t, fakeapi.New(t))
			out, _, err := execute(t, c, append([]string{"launches"}, tt.args...)...)
			require.NoError(t, err, "launches %v", tt.args)
			assertContains(t, out, tt.want...)
			assertNotContains(t, out, tt.reject...)
		})
	}
}

func TestLaunchesInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown outcome", []string{"--outcome", "exploded"}},
		{"bad date", []string{"--from", "yesterday"}},
		{"empty range", []string{"--from", "2022-01-01", "--to", "2021-01-01"}},
		{"negative page", []string{"--page", "-1"}},
		{"upcoming and past", []string{"--upcoming", "--past"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeapi.New(t)
			c := setup(t, srv)
			_, _, err := execute(t, c, append([]string{"launches"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, 0, srv.Hits("/launches"))
		})
	}
}

func TestLaunchesJSON(t *testing.T) {
	c := setup(t, fakeapi.New(t))

	out, _, err := execute(t, c, "launches", "--json", "--limit", "0")
	require.NoError(t, err, "launches --json")
	var ls []launch.Launch
	require.NoError(t, json.Unmarshal([]byte(out), &ls), "output is not JSON:\n%s", out)
	require.Len(t, ls, len(fakeapi.Launches()))
	assert.Equal(t, "USSF-44", ls[0].Name, "default order should be newest first")
}

func TestLaunchesServerFilter(t *testing.T) {
	srv := fakeapi.New(t)
	c := setup(t, srv)

	out, _, err := execute(t, c, "launches", "--server-filter", "--search", "starlink")
	require.NoError(t, err, "launches --server-filter")
	assertContains(t, out, "Starlink 4-36")
	assertNotContains(t, out, "Crew-1")
}

func TestLaunchCard(t *testing.T) {
	c := setup(t, fakeapi.New(t))

	out, _, err := execute(t, c, "launch", "5eb87d46ffd86e000604b388")
	require.NoError(t, err, "launch")
	assertContains(t, out, "Crew-1", "#107", "First operational crewed flight of Dragon", "success")
}

func TestLaunchErrors(t *testing.T) {
	srv := fakeapi.New(t)
	c := setup(t, srv)

	_, _, err := execute(t, c, "launch", "foo/bar")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "malformed id: got %v", err)

	_, _, err = execute(t, c, "launch", "does-not-exist")
	status, ok := errors.StatusCode(err)
	require.True(t, ok, "unknown id: got %v, want a 404", err)
	assert.Equal(t, 404, status)
	assert.Contains(t, FormatError(err), "Resource not found.")
}

func TestUpcomingAndPast(t *testing.T) {
	c := setup(t, fakeapi.New(t))

	out, _, err := execute(t, c, "upcoming")
	require.NoError(t, err, "upcoming")
	assertContains(t, out, "USSF-44")
	assertNotContains(t, out, "FalconSat")

	out, _, err = execute(t, c, "past", "-n", "2")
	require.NoError(t, err, "past")
	assertContains(t, out, "Starlink 4-36", "Crew-1")
	assertNotContains(t, out, "USSF-44", "FalconSat")
}

func TestStats(t *testing.T) {
	srv := fakeapi.New(t)
	c := setup(t, srv)

	out, _, err := execute(t, c, "stats", "--json")
	require.NoError(t, err, "stats")
	var got launch.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &got), "output is not JSON")
	assert.Equal(t, fakeapi.StatsOf(fakeapi.Launches()), got)

	out, _, err = execute(t, c, "stats", "--refresh")
	require.NoError(t, err, "stats --refresh")
	assertContains(t, out, "Launch statistics", "Success rate")
}

func TestStatsRetriesTransientFailure(t *testing.T) {
	srv := fakeapi.New(t)
	c := setup(t, srv)
	srv.Fail("/statistics", 503, 1)

	_, _, err := execute(t, c, "stats")
	require.NoError(t, err, "stats should recover on the second attempt")
	assert.Equal(t, 2, srv.Hits("/statistics"))
}

func TestSeries(t *testing.T) {
	c := setup(t, fakeapi.New(t))

	out, _, err := execute(t, c, "series")
	require.NoError(t, err, "series")
	assertContains(t, out, "Monthly launches", "Success rate", "Rocket usage",
		"Launches by year", "Launchpad usage", "Launchpad success rate", "Falcon Heavy")
}

func TestSeriesSelection(t *testing.T) {
	c := setup(t, fakeapi.New(t))

	out, _, err := execute(t, c, "series", "rocket-usage")
	require.NoError(t, err, "series rocket-usage")
	assertContains(t, out, "Rocket usage", "Falcon 9")
	assertNotContains(t, out, "Launchpad usage")

	_, _, err = execute(t, c, "series", "moon-landings")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "unknown series: got %v", err)
}

func TestSeriesPartialFailure(t *testing.T) {
	srv := fakeapi.New(t)
	c := setup(t, srv)
	srv.Fail("/rocket-usage", 500, 10)

	out, _, err := execute(t, c, "series")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 6 series unavailable")
	assertContains(t, out, "Monthly launches", "Internal server error")
}

func TestSeriesFallback(t *testing.T) {
	srv := fakeapi.New(t)
	c := setup(t, srv)
	srv.Fail("/rocket-usage", 500, 10)

	out, _, err := execute(t, c, "series", "--fallback", "rocket-usage", "success-rate")
	require.NoError(t, err, "series --fallback")
	assertContains(t, out, "Rocket usage", "sample data", "Success rate")
}

func TestSeriesByYear(t *testing.T) {
	srv := fakeapi.New(t)
	c := setup(t, srv)

	out, _, err := execute(t, c, "series", "--year", "2022")
	require.NoError(t, err, "series --year")
	assertContains(t, out, "Monthly launches 2022", "Feb")
	assert.Equal(t, 1, srv.Hits("/monthly-launches"))
}

func TestHealthAndInfo(t *testing.T) {
	srv := fakeapi.New(t)
	c := setup(t, srv)

	out, _, err := execute(t, c, "health")
	require.NoError(t, err, "health")
	assertContains(t, out, "API is ok", srv.URL)

	out, _, err = execute(t, c, "info")
	require.NoError(t, err, "info")
	assertContains(t, out, "launch-api", "1.0.0", "/statistics")
}

func TestHealthIsNotRetried(t *testing.T) {
	srv := fakeapi.New(t)
	c := setup(t, srv)
	srv.Fail("/health", 503, 1)

	_, _, err := execute(t, c, "health")
	status, ok := errors.StatusCode(err)
	require.True(t, ok, "err = %v, want a 503", err)
	assert.Equal(t, 503, status)
	assert.Equal(t, 1, srv.Hits("/health"))
}

func TestConnectionFailure(t *testing.T) {
	srv := fakeapi.New(t)
	c := setup(t, srv)
	srv.Close()

	_, _, err := execute(t, c, "stats")
	require.True(t, errors.IsConnection(err), "err = %v, want a connection error", err)
	assertContains(t, FormatError(err), "Could not reach the server.")
}

func TestInvalidConfig(t *testing.T) {
	srv := fakeapi.New(t)
	c := setup(t, srv)
	t.Setenv("LAUNCHDECK_API_URL", "ftp://launches.example.com")

	_, _, err := execute(t, c, "stats")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "err = %v", err)
	assert.Equal(t, 0, srv.Hits("/statistics"))
}

func TestMetricsFlag(t *testing.T) {
	t.Cleanup(observability.Reset)
	c := setup(t, fakeapi.New(t))

	_, errOut, err := execute(t, c, "--metrics", "series", "rocket-usage")
	require.NoError(t, err, "series --metrics")
	assertContains(t, errOut, "launchdeck_cache_operations_total", "launchdeck_http_requests_total", "op=miss")
}

func TestFormatError(t *testing.T) {
	plain := FormatError(errors.New(errors.ErrCodeInvalidInput, "unknown outcome"))
	assertContains(t, plain, "unknown outcome")
	assertNotContains(t, plain, "INVALID_INPUT", "\n")

	api := FormatError(&errors.HTTPError{Status: 429, URL: "http://x/statistics"})
	assertContains(t, api, "Too many requests. Try again later.", "\n")
}
