package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/cbb-gamelogs/internal/config"
	"github.com/pfrederiksen/cbb-gamelogs/internal/features"
	"github.com/pfrederiksen/cbb-gamelogs/internal/gamelog"
	"github.com/pfrederiksen/cbb-gamelogs/internal/names"
	"github.com/pfrederiksen/cbb-gamelogs/internal/storage"
)

// run executes the root command and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigFile, "")

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

// rivalrySeason has duke host north-carolina on three consecutive days.
func rivalrySeason() []gamelog.Record {
	var out []gamelog.Record
	for i := 0; i < 3; i++ {
		d := time.Date(2018, time.November, 10+i, 0, 0, 0, 0, time.UTC)
		out = append(out,
			gamelog.Record{
				Date: d, Team: "duke", Opponent: "north-carolina", Venue: gamelog.Home,
				TeamPoints: 80, OpponentPoints: 70, TeamWon: true,
				Stats: map[string]float64{"FG%": 0.5},
			},
			gamelog.Record{
				Date: d, Team: "north-carolina", Opponent: "duke", Venue: gamelog.Away,
				TeamPoints: 70, OpponentPoints: 80,
				Stats: map[string]float64{"FG%": 0.4},
			},
		)
	}
	return out
}

func saveRivalry(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	s, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveGameLogs(context.Background(), 2019, rivalrySeason()))
	return dir
}

type featuresJSON struct {
	Season  string                   `json:"season"`
	Skipped int                      `json:"skipped"`
	Saved   int                      `json:"saved"`
	Rows    []map[string]interface{} `json:"rows"`
}

func TestFeaturesCommand(t *testing.T) {
	dir := saveRivalry(t)
	metricsFile := filepath.Join(dir, "run.prom")

	out, err := run(t, "features", "--season", "2019", "--warmup", "1",
		"--format", "csv", "--sort", "team", "--data-dir", dir, "--metrics-file", metricsFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "team_FGA,team_FG%,"))
	assert.True(t, strings.HasSuffix(lines[1], ",duke,north-carolina,1,0,1,150,2018-11-11,H,duke"), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], ",duke,north-carolina,1,0,1,150,2018-11-12,H,duke"), lines[2])
	assert.True(t, strings.HasSuffix(lines[3], ",north-carolina,duke,0,0,0,150,2018-11-11,A,duke"), lines[3])

	assert.FileExists(t, filepath.Join(dir, "features_2018_2019.csv"))

	out, err = run(t, "features", "--season", "2019", "--warmup", "1", "--format", "json", "--data-dir", dir)
	require.NoError(t, err)
	var got featuresJSON
	require.NoError(t, sonic.UnmarshalString(out, &got))
	assert.Equal(t, 4, got.Saved)
	assert.Equal(t, 1.0, got.Rows[0]["team_won"])

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cbb_features_rows 4")
	assert.Contains(t, string(data), "cbb_features_rows_emitted_total 4")
}

func TestFeaturesCommand_TeamAndPhase(t *testing.T) {
	dir := saveRivalry(t)

	out, err := run(t, "features", "--season", "2019", "--warmup", "0", "--team", "UNC",
		"--format", "json", "--data-dir", dir, "--no-save")
	require.NoError(t, err)

	var got featuresJSON
	require.NoError(t, sonic.UnmarshalString(out, &got))
	assert.Equal(t, "2018-19", got.Season)
	assert.Equal(t, 1, got.Skipped, "the first game has no history")
	assert.Zero(t, got.Saved)
	require.Len(t, got.Rows, 2)

	row := got.Rows[0]
	assert.Equal(t, "north-carolina", row["team_name"])
	assert.Equal(t, 0.4, row["team_FG%"])
	assert.Equal(t, 0.5, row["opp_FG%"])
	assert.Contains(t, row, "team_ORtg")
	assert.Nil(t, row["team_ORtg"], "undefined means are null")
	assert.Equal(t, 0.0, row["team_won"])
	assert.Equal(t, 0.0, row["team_at_home"])
	assert.Equal(t, 150.0, row["total_score"])
	assert.Equal(t, "2018-11-11", row["date"])
	assert.NoFileExists(t, filepath.Join(dir, "features_2018_2019_north-carolina.csv"))

	out, err = run(t, "features", "--season", "2019", "--phase", "tournament", "--data-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "No rows built for 2018-19 (0 games skipped).\n", out)
}

func TestFeaturesCommand_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unsupported season", []string{"--season", "1999"}, gamelog.ErrUnsupportedSeason},
		{"not scraped", []string{"--season", "2019"}, gamelog.ErrNoDataForScope},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"features", "--data-dir", dir}, tt.args...)
			_, err := run(t, args...)
			require.ErrorIs(t, err, tt.want)
		})
	}

	_, err := run(t, "features", "--season", "2019", "--phase", "summer", "--data-dir", dir)
	assert.ErrorContains(t, err, "invalid phase")
	_, err = run(t, "features", "--season", "2019", "--sort", "venue", "--data-dir", dir)
	assert.ErrorContains(t, err, "invalid sort")
	_, err = run(t, "features", "--data-dir", dir)
	assert.ErrorContains(t, err, "season")
	_, err = run(t, "teams", "--format", "xml")
	assert.ErrorContains(t, err, "invalid format")
}

func TestScrapeCommand(t *testing.T) {
	basic, err := os.ReadFile(filepath.Join("..", "scraper", "testdata", "duke_2019_gamelogs.html"))
	require.NoError(t, err)
	advanced, err := os.ReadFile(filepath.Join("..", "scraper", "testdata", "duke_2019_gamelogs_advanced.html"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/schools/duke/men/2019-gamelogs.html":
			_, _ = w.Write(basic)
		case "/schools/duke/men/2019-gamelogs-advanced.html":
			_, _ = w.Write(advanced)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	t.Setenv("CBB_SCRAPER__BASE_URL", srv.URL)
	t.Setenv("CBB_SCRAPER__REQUEST_INTERVAL", "0s")
	dir := t.TempDir()

	for _, storageKind := range []string{config.StorageCSV, config.StorageSQLite} {
		t.Run(storageKind, func(t *testing.T) {
			out, err := run(t, "scrape", "--season", "2019", "--team", "Duke", "--team", "Kentucky",
				"--format", "json", "--data-dir", dir, "--storage", storageKind)
			require.NoError(t, err)
			assert.JSONEq(t, `{"season":"2018-19","teams":1,"games":3,"missing":["kentucky"]}`, out)
		})
	}

	s, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	records, err := s.LoadGameLogs(context.Background(), 2019)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.EqualValues(t, "kentucky", records[0].Opponent)

	db, err := storage.OpenSQLite(context.Background(), filepath.Join(dir, "cbb.db"))
	require.NoError(t, err)
	defer db.Close()
	records, err = db.LoadGameLogs(context.Background(), 2019)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	entries, err := os.ReadDir(filepath.Join(dir, "pages"))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "both duke pages are cached")

	_, err = run(t, "scrape", "--season", "2019", "--team", "Fictional University", "--data-dir", dir)
	assert.ErrorIs(t, err, names.ErrUnknownTeamName)
}

func TestScrapeCommand_KeepsSavedSeasonOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	t.Setenv("CBB_SCRAPER__BASE_URL", srv.URL)
	t.Setenv("CBB_SCRAPER__REQUEST_INTERVAL", "0s")
	t.Setenv("CBB_SCRAPER__MAX_RETRIES", "0")
	dir := saveRivalry(t)

	_, err := run(t, "scrape", "--season", "2019", "--team", "Duke", "--data-dir", dir, "--no-cache")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")

	s, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	records, err := s.LoadGameLogs(context.Background(), 2019)
	require.NoError(t, err)
	assert.Len(t, records, len(rivalrySeason()), "the saved season is left alone")
}

func TestNormalizeCommand(t *testing.T) {
	out, err := run(t, "normalize", "Kansas State NCAA", "UNC")
	require.NoError(t, err)
	assert.Equal(t, "Kansas State NCAA => kansas-state [NCAA]\nUNC => north-carolina\n", out)

	out, err = run(t, "normalize", "--conference", "--format", "csv", "Pac 12 (South)")
	require.NoError(t, err)
	assert.Equal(t, "input,id,made_tournament\nPac 12 (South),pac-12,false\n", out)

	out, err = run(t, "normalize", "--ignore-errors", "Hogwarts")
	require.NoError(t, err)
	assert.Equal(t, "Hogwarts => (unknown)\n", out)

	_, err = run(t, "normalize", "Hogwarts")
	assert.ErrorIs(t, err, names.ErrUnknownTeamName)
	_, err = run(t, "normalize", "--conference", "Quidditch League")
	assert.ErrorIs(t, err, names.ErrUnknownConferenceName)
}

func TestListCommands(t *testing.T) {
	out, err := run(t, "teams")
	require.NoError(t, err)
	assert.Contains(t, out, "duke\n")
	assert.Contains(t, out, "Total: ")

	out, err = run(t, "conferences", "--format", "json")
	require.NoError(t, err)
	var confs map[string][]string
	require.NoError(t, sonic.UnmarshalString(out, &confs))
	assert.Contains(t, confs["conferences"], "pac-12")

	out, err = run(t, "seasons", "--format", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(gamelog.SupportedSeasons())+1)
	assert.Contains(t, lines, "2019,2018-19,2018-11-06,2019-03-17,2019-03-19,2019-04-08")
}

func TestSortRows(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2019, time.January, d, 0, 0, 0, 0, time.UTC) }
	rows := func() []features.Row {
		return []features.Row{
			{Date: day(3), Team: "duke", Opponent: "army"},
			{Date: day(1), Team: "kentucky", Opponent: "duke"},
			{Date: day(1), Team: "duke", Opponent: "kentucky"},
			{Date: day(2), Team: "army", Opponent: "duke"},
		}
	}
	key := func(rs []features.Row) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = fmt.Sprintf("%d:%s-%s", r.Date.Day(), r.Team, r.Opponent)
		}
		return out
	}

	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortByDate, []string{"1:duke-kentucky", "1:kentucky-duke", "2:army-duke", "3:duke-army"}},
		{SortByTeam, []string{"2:army-duke", "1:duke-kentucky", "3:duke-army", "1:kentucky-duke"}},
		{SortByOpponent, []string{"3:duke-army", "1:kentucky-duke", "2:army-duke", "1:duke-kentucky"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			rs := rows()
			sortRows(rs, tt.order)
			assert.Equal(t, tt.want, key(rs))
		})
	}
}
