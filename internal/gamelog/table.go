package gamelog

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/cbb-gamelogs/internal/names"
)

// Columns every raw game log table must carry. Team statistics keep the site's
// header names; the opponent's copy of a statistic carries a ".1" suffix.
const (
	ColDate           = "Date"
	ColLocation       = "Location"
	ColOpponent       = "Opp"
	ColResult         = "W/L"
	ColTeamPoints     = "Tm"
	ColOpponentPoints = "Opp.1"
)

var requiredColumns = []string{ColDate, ColLocation, ColOpponent, ColResult, ColTeamPoints, ColOpponentPoints}

// Table is a raw game log table as extracted from a page: ordered column
// headers and one string slice per row.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Kind distinguishes the basic and advanced game log tables. They name the
// opponent's copy of a statistic differently.
type Kind int

const (
	Basic Kind = iota
	Advanced
)

func (k Kind) String() string {
	if k == Advanced {
		return "advanced"
	}
	return "basic"
}

// opponentColumn renames an opponent statistic: "FG%.1" becomes "opp_fg%" in
// the basic table and "eFG%.1" becomes "opponent_efg%" in the advanced one.
func (k Kind) opponentColumn(col string) string {
	base := strings.ToLower(strings.TrimSuffix(col, ".1"))
	if k == Advanced {
		return "opponent_" + strings.ReplaceAll(base, "/", "_per_")
	}
	return "opp_" + base
}

// ParseBasic converts a basic game log table for team into records.
func ParseBasic(t Table, team names.ID) ([]Record, error) {
	return Parse(t, team, Basic)
}

// ParseAdvanced converts an advanced game log table for team into records.
func ParseAdvanced(t Table, team names.ID) ([]Record, error) {
	return Parse(t, team, Advanced)
}

// Parse converts a raw table into records. Delimiter rows (blank or repeated
// header rows) are skipped, as are games against opponents that do not resolve
// to a canonical name (non-D1 programs).
func Parse(t Table, team names.ID, kind Kind) ([]Record, error) {
	if !team.Known() {
		return nil, errors.Wrap(ErrMalformedInput, "team identifier is empty")
	}

	idx := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		idx[c] = i
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, errors.Wrapf(ErrMalformedInput, "%s table for %s: missing column %q", kind, team, c)
		}
	}

	records := make([]Record, 0, len(t.Rows))
	for n, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return nil, errors.Wrapf(ErrMalformedInput, "%s table for %s: row %d has %d cells, want %d",
				kind, team, n, len(row), len(t.Columns))
		}

		cell := func(col string) string {
			return strings.TrimSpace(row[idx[col]])
		}

		dateText := cell(ColDate)
		if dateText == "" || dateText == ColDate {
			continue
		}
		date, err := time.Parse(DateLayout, dateText)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedInput, "%s table for %s: row %d: unparseable date %q", kind, team, n, dateText)
		}

		venue, ok := ParseVenue(cell(ColLocation))
		if !ok {
			return nil, errors.Wrapf(ErrMalformedInput, "%s table for %s: row %d: unknown venue %q", kind, team, n, cell(ColLocation))
		}

		opp, _ := names.NormalizeTeam(cell(ColOpponent), true)
		if !opp.Known() {
			continue
		}

		rec := Record{
			Date:     date,
			Team:     team,
			Opponent: opp,
			Venue:    venue,
			TeamWon:  parseResult(cell(ColResult)),
			Stats:    make(map[string]float64, len(t.Columns)),
		}

		for i, col := range t.Columns {
			switch col {
			case ColDate, ColLocation, ColOpponent, ColResult:
				continue
			}

			v, present, err := parseStat(row[i])
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedInput, "%s table for %s: row %d: column %q: %v", kind, team, n, col, err)
			}

			switch col {
			case ColTeamPoints:
				rec.TeamPoints = v
			case ColOpponentPoints:
				rec.OpponentPoints = v
			default:
				if !present {
					continue
				}
				if strings.HasSuffix(col, ".1") {
					col = kind.opponentColumn(col)
				}
				rec.Stats[col] = v
			}
		}

		records = append(records, rec)
	}

	return records, nil
}

// parseResult reads "W", "L", "W (1 OT)" and the like. Overtime annotations are
// ignored.
func parseResult(s string) bool {
	fields := strings.Fields(s)
	return len(fields) > 0 && fields[0] == "W"
}

// parseStat coerces a cell to a float. Blank cells are missing, not zero.
func parseStat(s string) (float64, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, errors.Newf("not a number: %q", s)
	}
	return v, true, nil
}

// Join merges advanced records into basic ones. Records are matched on date and
// opponent; a basic record without an advanced match is kept as is. When both
// tables carry a statistic the basic value wins.
func Join(basic, advanced []Record) []Record {
	type key struct {
		date     time.Time
		opponent names.ID
	}

	pending := make(map[key][]Record, len(advanced))
	for _, r := range advanced {
		k := key{r.Date, r.Opponent}
		pending[k] = append(pending[k], r)
	}

	out := make([]Record, 0, len(basic))
	for _, r := range basic {
		merged := r
		merged.Stats = make(map[string]float64, len(r.Stats))
		for name, v := range r.Stats {
			merged.Stats[name] = v
		}

		k := key{r.Date, r.Opponent}
		if matches := pending[k]; len(matches) > 0 {
			adv := matches[0]
			pending[k] = matches[1:]
			for name, v := range adv.Stats {
				if _, dup := merged.Stats[name]; !dup {
					merged.Stats[name] = v
				}
			}
		}

		out = append(out, merged)
	}

	return out
}
