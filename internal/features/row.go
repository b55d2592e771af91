package features

import (
	"strconv"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pfrederiksen/cbb-gamelogs/internal/gamelog"
	"github.com/pfrederiksen/cbb-gamelogs/internal/names"
)

// DefaultStats are the box score statistics averaged into every row.
var DefaultStats = []string{
	"FGA", "FG%", "PF", "3P%", "FT%",
	"ORtg", "DRtg", "Pace", "FTr", "3PAr",
	"TS%", "TRB%", "AST%", "STL%", "BLK%",
	"eFG%", "TOV%", "ORB%", "FT/FGA", "DRB%",
}

// Undefined is how an undefined mean is rendered in tabular output.
const Undefined = "NAN"

// Mean is the average of one statistic over a set of prior games. N counts the
// games that had the statistic; a mean over zero games is undefined, never zero.
type Mean struct {
	Value float64
	N     int
}

func (m Mean) Defined() bool {
	return m.N > 0
}

func (m Mean) String() string {
	if !m.Defined() {
		return Undefined
	}
	return strconv.FormatFloat(m.Value, 'g', -1, 64)
}

// meanOf averages each statistic over records, skipping games where it is
// missing.
func meanOf(records []gamelog.Record, stats []string) map[string]Mean {
	means := make(map[string]Mean, len(stats))
	values := make([]float64, 0, len(records))
	for _, s := range stats {
		values = values[:0]
		for _, r := range records {
			if v, ok := r.Stat(s); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			means[s] = Mean{}
			continue
		}
		means[s] = Mean{Value: stat.Mean(values, nil), N: len(values)}
	}
	return means
}

// Row is one training example: both teams' prior means plus the game's labels.
type Row struct {
	Date     time.Time
	Team     names.ID
	Opponent names.ID
	Venue    gamelog.Venue
	HomeName names.ID

	TeamAtHome  bool
	NeutralSite bool
	TeamWon     bool
	TotalScore  float64

	TeamMeans     map[string]Mean
	OpponentMeans map[string]Mean
}

func newRow(game gamelog.Record, team, opp map[string]Mean) Row {
	return Row{
		Date:          game.Date,
		Team:          game.Team,
		Opponent:      game.Opponent,
		Venue:         game.Venue,
		HomeName:      game.HomeName(),
		TeamAtHome:    game.TeamAtHome(),
		NeutralSite:   game.NeutralSite(),
		TeamWon:       game.TeamWon,
		TotalScore:    game.TotalScore(),
		TeamMeans:     team,
		OpponentMeans: opp,
	}
}

// Columns is the flattened header for rows built over stats.
func Columns(stats []string) []string {
	cols := make([]string, 0, 2*len(stats)+9)
	for _, s := range stats {
		cols = append(cols, "team_"+s)
	}
	for _, s := range stats {
		cols = append(cols, "opp_"+s)
	}
	return append(cols,
		"team_name", "opponent_name", "team_at_home", "neutral_site",
		"team_won", "total_score", "date", "location", "home_name",
	)
}

// Columns is the header matching Values.
func (r Row) Columns(stats []string) []string {
	return Columns(stats)
}

// Values flattens the row in Columns order. Undefined means render as
// Undefined and booleans as 0 or 1.
func (r Row) Values(stats []string) []string {
	vals := make([]string, 0, 2*len(stats)+9)
	for _, s := range stats {
		vals = append(vals, r.TeamMeans[s].String())
	}
	for _, s := range stats {
		vals = append(vals, r.OpponentMeans[s].String())
	}
	return append(vals,
		string(r.Team),
		string(r.Opponent),
		flag(r.TeamAtHome),
		flag(r.NeutralSite),
		flag(r.TeamWon),
		strconv.FormatFloat(r.TotalScore, 'g', -1, 64),
		r.Date.Format(gamelog.DateLayout),
		string(r.Venue),
		string(r.HomeName),
	)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
