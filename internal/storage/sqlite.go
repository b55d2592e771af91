package storage

import (
	"context"
	"math"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/pfrederiksen/cbb-gamelogs/internal/features"
	"github.com/pfrederiksen/cbb-gamelogs/internal/gamelog"
	"github.com/pfrederiksen/cbb-gamelogs/internal/names"
)

const schema = `
CREATE TABLE IF NOT EXISTS game_logs (
	season          INTEGER NOT NULL,
	seq             INTEGER NOT NULL,
	run_id          TEXT    NOT NULL,
	game_date       TEXT    NOT NULL,
	team            TEXT    NOT NULL,
	opponent        TEXT    NOT NULL,
	location        TEXT    NOT NULL,
	team_points     REAL    NOT NULL,
	opponent_points REAL    NOT NULL,
	team_won        INTEGER NOT NULL,
	stats           TEXT    NOT NULL,
	PRIMARY KEY (season, seq)
);
CREATE INDEX IF NOT EXISTS game_logs_team ON game_logs (season, team, game_date);

CREATE TABLE IF NOT EXISTS feature_rows (
	season    INTEGER NOT NULL,
	scope     TEXT    NOT NULL,
	seq       INTEGER NOT NULL,
	run_id    TEXT    NOT NULL,
	game_date TEXT    NOT NULL,
	team      TEXT    NOT NULL,
	opponent  TEXT    NOT NULL,
	data      TEXT    NOT NULL,
	PRIMARY KEY (season, scope, seq)
);
`

// allTeams is the feature_rows scope of a season-wide table.
const allTeams = "all"

type gameLogRow struct {
	Season         int     `db:"season"`
	Seq            int     `db:"seq"`
	RunID          string  `db:"run_id"`
	GameDate       string  `db:"game_date"`
	Team           string  `db:"team"`
	Opponent       string  `db:"opponent"`
	Location       string  `db:"location"`
	TeamPoints     float64 `db:"team_points"`
	OpponentPoints float64 `db:"opponent_points"`
	TeamWon        int     `db:"team_won"`
	Stats          string  `db:"stats"`
}

type featureRow struct {
	Season   int    `db:"season"`
	Scope    string `db:"scope"`
	Seq      int    `db:"seq"`
	RunID    string `db:"run_id"`
	GameDate string `db:"game_date"`
	Team     string `db:"team"`
	Opponent string `db:"opponent"`
	Data     string `db:"data"`
}

// SQLiteStore keeps game logs and feature rows in a SQLite database. Each save
// is tagged with a fresh run id.
type SQLiteStore struct {
	db *sqlx.DB
}

// OpenSQLite opens or creates the database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite database")
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "applying schema")
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

// SaveGameLogs replaces the season inside one transaction.
func (s *SQLiteStore) SaveGameLogs(ctx context.Context, season int, records []gamelog.Record) error {
	runID := uuid.NewString()

	rows := make([]gameLogRow, 0, len(records))
	for i, r := range records {
		stats := make(map[string]float64, len(r.Stats))
		for name, v := range r.Stats {
			if !math.IsNaN(v) {
				stats[name] = v
			}
		}
		blob, err := sonic.Marshal(stats)
		if err != nil {
			return errors.Wrap(err, "encoding stats")
		}
		won := 0
		if r.TeamWon {
			won = 1
		}
		rows = append(rows, gameLogRow{
			Season:         season,
			Seq:            i,
			RunID:          runID,
			GameDate:       r.Date.Format(gamelog.DateLayout),
			Team:           string(r.Team),
			Opponent:       string(r.Opponent),
			Location:       string(r.Venue),
			TeamPoints:     r.TeamPoints,
			OpponentPoints: r.OpponentPoints,
			TeamWon:        won,
			Stats:          string(blob),
		})
	}

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM game_logs WHERE season = ?`, season); err != nil {
			return errors.Wrap(err, "clearing season")
		}
		for _, row := range rows {
			if _, err := tx.NamedExecContext(ctx, `
				INSERT INTO game_logs (season, seq, run_id, game_date, team, opponent, location,
					team_points, opponent_points, team_won, stats)
				VALUES (:season, :seq, :run_id, :game_date, :team, :opponent, :location,
					:team_points, :opponent_points, :team_won, :stats)`, row); err != nil {
				return errors.Wrapf(err, "inserting game log %d", row.Seq)
			}
		}
		return nil
	})
}

// LoadGameLogs returns a season's records in saved order.
func (s *SQLiteStore) LoadGameLogs(ctx context.Context, season int) ([]gamelog.Record, error) {
	var rows []gameLogRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM game_logs WHERE season = ? ORDER BY seq`, season); err != nil {
		return nil, errors.Wrap(err, "querying game logs")
	}
	if len(rows) == 0 {
		return nil, errors.Wrapf(gamelog.ErrNoDataForScope, "no game logs saved for %s", seasonSpan(season))
	}

	records := make([]gamelog.Record, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse(gamelog.DateLayout, row.GameDate)
		if err != nil {
			return nil, errors.Wrapf(gamelog.ErrMalformedInput, "game log %d: bad date %q", row.Seq, row.GameDate)
		}
		venue, ok := gamelog.ParseVenue(row.Location)
		if !ok {
			return nil, errors.Wrapf(gamelog.ErrMalformedInput, "game log %d: bad location %q", row.Seq, row.Location)
		}
		stats := make(map[string]float64)
		if err := sonic.UnmarshalString(row.Stats, &stats); err != nil {
			return nil, errors.Wrapf(gamelog.ErrMalformedInput, "game log %d: decoding stats: %v", row.Seq, err)
		}
		records = append(records, gamelog.Record{
			Date:           date,
			Team:           names.ID(row.Team),
			Opponent:       names.ID(row.Opponent),
			Venue:          venue,
			TeamPoints:     row.TeamPoints,
			OpponentPoints: row.OpponentPoints,
			TeamWon:        row.TeamWon == 1,
			Stats:          stats,
		})
	}
	return records, nil
}

// SaveFeatures stores each row as a JSON object keyed by column name.
func (s *SQLiteStore) SaveFeatures(ctx context.Context, season int, team names.ID, stats []string, rows []features.Row) error {
	scope := allTeams
	if team.Known() {
		scope = string(team)
	}
	runID := uuid.NewString()
	cols := features.Columns(stats)

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM feature_rows WHERE season = ? AND scope = ?`, season, scope); err != nil {
			return errors.Wrap(err, "clearing feature rows")
		}
		for i, r := range rows {
			vals := r.Values(stats)
			obj := make(map[string]string, len(cols))
			for j, c := range cols {
				obj[c] = vals[j]
			}
			blob, err := sonic.MarshalString(obj)
			if err != nil {
				return errors.Wrap(err, "encoding feature row")
			}
			row := featureRow{
				Season:   season,
				Scope:    scope,
				Seq:      i,
				RunID:    runID,
				GameDate: r.Date.Format(gamelog.DateLayout),
				Team:     string(r.Team),
				Opponent: string(r.Opponent),
				Data:     blob,
			}
			if _, err := tx.NamedExecContext(ctx, `
				INSERT INTO feature_rows (season, scope, seq, run_id, game_date, team, opponent, data)
				VALUES (:season, :scope, :seq, :run_id, :game_date, :team, :opponent, :data)`, row); err != nil {
				return errors.Wrapf(err, "inserting feature row %d", i)
			}
		}
		return nil
	})
}

// FeatureCount returns how many rows are stored for team in season.
func (s *SQLiteStore) FeatureCount(ctx context.Context, season int, team names.ID) (int, error) {
	scope := allTeams
	if team.Known() {
		scope = string(team)
	}
	var n int
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM feature_rows WHERE season = ? AND scope = ?`, season, scope)
	return n, errors.Wrap(err, "counting feature rows")
}
