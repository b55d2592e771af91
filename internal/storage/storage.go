package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/cbb-gamelogs/internal/features"
	"github.com/pfrederiksen/cbb-gamelogs/internal/gamelog"
	"github.com/pfrederiksen/cbb-gamelogs/internal/names"
)

// Store persists scraped game logs and built feature rows, one season at a
// time.
type Store interface {
	// SaveGameLogs replaces everything stored for season.
	SaveGameLogs(ctx context.Context, season int, records []gamelog.Record) error
	// LoadGameLogs returns the saved records of season in saved order. A
	// season never saved returns gamelog.ErrNoDataForScope.
	LoadGameLogs(ctx context.Context, season int) ([]gamelog.Record, error)
	// SaveFeatures replaces the rows saved for team in season. names.Absent
	// stands for a season-wide table covering every team.
	SaveFeatures(ctx context.Context, season int, team names.ID, stats []string, rows []features.Row) error
	// FeatureCount returns how many feature rows are saved for team in
	// season; zero when none were saved.
	FeatureCount(ctx context.Context, season int, team names.ID) (int, error)
	Close() error
}

// Missing marks an absent statistic in CSV output.
const Missing = features.Undefined

// Fixed game log columns, in file order. Statistics follow, sorted by name.
const (
	colDate           = "Date"
	colTeam           = "Team"
	colOpponent       = "Opponent"
	colLocation       = "Location"
	colTeamPoints     = "TeamPoints"
	colOpponentPoints = "OpponentPoints"
	colTeamWon        = "TeamWon"
)

var gameLogColumns = []string{colDate, colTeam, colOpponent, colLocation, colTeamPoints, colOpponentPoints, colTeamWon}

// ExpandPath replaces a leading "~/" with the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "getting home directory")
	}
	return filepath.Join(home, path[2:]), nil
}

// seasonSpan names a season by both of its years, "2018_2019" for 2019.
func seasonSpan(season int) string {
	return fmt.Sprintf("%d_%d", season-1, season)
}

// FileStore keeps CSV files in a data directory.
type FileStore struct {
	dataDir string
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dataDir string) (*FileStore, error) {
	dataDir, err := ExpandPath(dataDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}

	return &FileStore{dataDir: dataDir}, nil
}

// Dir is the expanded data directory.
func (s *FileStore) Dir() string {
	return s.dataDir
}

// GameLogPath is the CSV file holding a season's game logs.
func (s *FileStore) GameLogPath(season int) string {
	return filepath.Join(s.dataDir, "gamelogs_"+seasonSpan(season)+".csv")
}

// FeaturePath is the CSV file holding a season's feature rows, for one team
// or, with names.Absent, for all of them.
func (s *FileStore) FeaturePath(season int, team names.ID) string {
	name := "features_" + seasonSpan(season)
	if team.Known() {
		name += "_" + string(team)
	}
	return filepath.Join(s.dataDir, name+".csv")
}

// writeCSV writes rows through a temp file and renames it into place.
func writeCSV(path string, header []string, rows [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing header")
	}
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing rows")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), path), "renaming temp file")
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return Missing
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// statColumns is the sorted union of statistic names over records.
func statColumns(records []gamelog.Record) []string {
	seen := make(map[string]bool)
	for _, r := range records {
		for name := range r.Stats {
			seen[name] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for name := range seen {
		cols = append(cols, name)
	}
	sort.Strings(cols)
	return cols
}

// SaveGameLogs writes gamelogs_<y-1>_<y>.csv.
func (s *FileStore) SaveGameLogs(_ context.Context, season int, records []gamelog.Record) error {
	stats := statColumns(records)
	header := append(append([]string(nil), gameLogColumns...), stats...)

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		won := "0"
		if r.TeamWon {
			won = "1"
		}
		row := []string{
			r.Date.Format(gamelog.DateLayout),
			string(r.Team),
			string(r.Opponent),
			string(r.Venue),
			formatFloat(r.TeamPoints),
			formatFloat(r.OpponentPoints),
			won,
		}
		for _, name := range stats {
			if v, ok := r.Stat(name); ok {
				row = append(row, formatFloat(v))
			} else {
				row = append(row, Missing)
			}
		}
		rows = append(rows, row)
	}

	if err := writeCSV(s.GameLogPath(season), header, rows); err != nil {
		return errors.Wrapf(err, "saving %s game logs", seasonSpan(season))
	}
	return nil
}

// LoadGameLogs reads a file written by SaveGameLogs.
func (s *FileStore) LoadGameLogs(_ context.Context, season int) ([]gamelog.Record, error) {
	path := s.GameLogPath(season)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(gamelog.ErrNoDataForScope, "no game logs saved for %s", seasonSpan(season))
		}
		return nil, errors.Wrap(err, "opening game logs")
	}
	defer f.Close()

	lines, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(gamelog.ErrMalformedInput, "reading %s: %v", path, err)
	}
	if len(lines) == 0 {
		return nil, errors.Wrapf(gamelog.ErrMalformedInput, "%s has no header", path)
	}

	header := lines[0]
	for i, c := range gameLogColumns {
		if i >= len(header) || header[i] != c {
			return nil, errors.Wrapf(gamelog.ErrMalformedInput, "%s: expected column %q at position %d", path, c, i)
		}
	}

	records := make([]gamelog.Record, 0, len(lines)-1)
	for n, line := range lines[1:] {
		r, err := parseGameLogLine(header, line)
		if err != nil {
			return nil, errors.Wrapf(err, "%s line %d", path, n+2)
		}
		records = append(records, r)
	}
	return records, nil
}

func parseGameLogLine(header, line []string) (gamelog.Record, error) {
	date, err := time.Parse(gamelog.DateLayout, line[0])
	if err != nil {
		return gamelog.Record{}, errors.Wrapf(gamelog.ErrMalformedInput, "bad date %q", line[0])
	}
	venue, ok := gamelog.ParseVenue(line[3])
	if !ok {
		return gamelog.Record{}, errors.Wrapf(gamelog.ErrMalformedInput, "bad location %q", line[3])
	}

	num := func(s string) (float64, bool, error) {
		if s == "" || s == Missing {
			return 0, false, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, errors.Wrapf(gamelog.ErrMalformedInput, "not a number: %q", s)
		}
		return v, true, nil
	}

	r := gamelog.Record{
		Date:     date,
		Team:     names.ID(line[1]),
		Opponent: names.ID(line[2]),
		Venue:    venue,
		TeamWon:  line[6] == "1",
		Stats:    make(map[string]float64, len(header)-len(gameLogColumns)),
	}
	if r.TeamPoints, _, err = num(line[4]); err != nil {
		return gamelog.Record{}, err
	}
	if r.OpponentPoints, _, err = num(line[5]); err != nil {
		return gamelog.Record{}, err
	}
	for i := len(gameLogColumns); i < len(header); i++ {
		v, ok, err := num(line[i])
		if err != nil {
			return gamelog.Record{}, err
		}
		if ok {
			r.Stats[header[i]] = v
		}
	}
	return r, nil
}

// SaveFeatures writes features_<y-1>_<y>[_<team>].csv.
func (s *FileStore) SaveFeatures(_ context.Context, season int, team names.ID, stats []string, rows []features.Row) error {
	lines := make([][]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, r.Values(stats))
	}
	if err := writeCSV(s.FeaturePath(season, team), features.Columns(stats), lines); err != nil {
		return errors.Wrapf(err, "saving %s features", seasonSpan(season))
	}
	return nil
}

// FeatureCount counts the data lines of the features file.
func (s *FileStore) FeatureCount(_ context.Context, season int, team names.ID) (int, error) {
	f, err := os.Open(s.FeaturePath(season, team))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "opening features")
	}
	defer f.Close()

	lines, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return 0, errors.Wrapf(gamelog.ErrMalformedInput, "reading %s: %v", f.Name(), err)
	}
	if len(lines) == 0 {
		return 0, nil
	}
	return len(lines) - 1, nil
}

func (s *FileStore) Close() error {
	return nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)
