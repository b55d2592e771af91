package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/pfrederiksen/cbb-gamelogs/internal/features"
	"github.com/pfrederiksen/cbb-gamelogs/internal/gamelog"
	"github.com/pfrederiksen/cbb-gamelogs/internal/names"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatCSV  OutputFormat = "csv"
)

// ScrapeResult summarizes one scrape run.
type ScrapeResult struct {
	Season  string     `json:"season"`
	Teams   int        `json:"teams"`
	Games   int        `json:"games"`
	Missing []names.ID `json:"missing"`
}

// FeaturesResult holds the rows built for a season.
type FeaturesResult struct {
	Season  string
	Stats   []string
	Rows    []features.Row
	Skipped int
	// Saved is the number of rows the store holds after saving.
	Saved int
}

// NameResult is one normalized name.
type NameResult struct {
	Input          string   `json:"input"`
	ID             names.ID `json:"id"`
	MadeTournament bool     `json:"made_tournament,omitempty"`
}

type seasonJSON struct {
	Year            int    `json:"year"`
	Label           string `json:"label"`
	RegularStart    string `json:"regular_start"`
	RegularEnd      string `json:"regular_end"`
	TournamentStart string `json:"tournament_start"`
	TournamentEnd   string `json:"tournament_end"`
}

// writeJSON outputs v as indented JSON with sorted map keys.
func writeJSON(w io.Writer, v interface{}) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	return cw.WriteAll(rows)
}

func unknownFormat(format OutputFormat) error {
	return fmt.Errorf("unknown format: %s", format)
}

// WriteScrape writes a scrape summary.
func WriteScrape(w io.Writer, result *ScrapeResult, format OutputFormat) error {
	if result.Missing == nil {
		result.Missing = []names.ID{}
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatCSV:
		missing := make([]string, len(result.Missing))
		for i, id := range result.Missing {
			missing[i] = string(id)
		}
		return writeCSV(w, []string{"season", "teams", "games", "missing"}, [][]string{{
			result.Season,
			strconv.Itoa(result.Teams),
			strconv.Itoa(result.Games),
			strings.Join(missing, ";"),
		}})
	case FormatText:
		fmt.Fprintf(w, "Season %s: %d games from %d teams\n", result.Season, result.Games, result.Teams)
		if len(result.Missing) > 0 {
			fmt.Fprintf(w, "\nNo game logs (%d):\n", len(result.Missing))
			for _, id := range result.Missing {
				fmt.Fprintf(w, "  %s\n", id)
			}
		}
		return nil
	default:
		return unknownFormat(format)
	}
}

// WriteFeatures writes feature rows. Text output is a summary followed by one
// line per game.
func WriteFeatures(w io.Writer, result *FeaturesResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		rows := make([]map[string]interface{}, 0, len(result.Rows))
		for _, r := range result.Rows {
			rows = append(rows, rowJSON(r, result.Stats))
		}
		return writeJSON(w, struct {
			Season  string                   `json:"season"`
			Skipped int                      `json:"skipped"`
			Saved   int                      `json:"saved"`
			Rows    []map[string]interface{} `json:"rows"`
		}{result.Season, result.Skipped, result.Saved, rows})
	case FormatCSV:
		lines := make([][]string, 0, len(result.Rows))
		for _, r := range result.Rows {
			lines = append(lines, r.Values(result.Stats))
		}
		return writeCSV(w, features.Columns(result.Stats), lines)
	case FormatText:
		if len(result.Rows) == 0 {
			fmt.Fprintf(w, "No rows built for %s (%d games skipped).\n", result.Season, result.Skipped)
			return nil
		}
		for _, r := range result.Rows {
			wl := "L"
			if r.TeamWon {
				wl = "W"
			}
			fmt.Fprintf(w, "%s  %s vs %s (%s) %s %s\n",
				r.Date.Format(gamelog.DateLayout), r.Team, r.Opponent, r.Venue, wl,
				strconv.FormatFloat(r.TotalScore, 'g', -1, 64))
		}
		fmt.Fprintf(w, "\nSeason %s: %d rows, %d games skipped, %d saved\n",
			result.Season, len(result.Rows), result.Skipped, result.Saved)
		return nil
	default:
		return unknownFormat(format)
	}
}

// rowJSON keys a row by its column names. Means and labels are numbers and an
// undefined mean is null.
func rowJSON(r features.Row, stats []string) map[string]interface{} {
	m := make(map[string]interface{}, 2*len(stats)+9)
	for _, stat := range stats {
		m["team_"+stat] = meanJSON(r.TeamMeans[stat])
		m["opp_"+stat] = meanJSON(r.OpponentMeans[stat])
	}
	m["team_name"] = string(r.Team)
	m["opponent_name"] = string(r.Opponent)
	m["team_at_home"] = flagJSON(r.TeamAtHome)
	m["neutral_site"] = flagJSON(r.NeutralSite)
	m["team_won"] = flagJSON(r.TeamWon)
	m["total_score"] = r.TotalScore
	m["date"] = r.Date.Format(gamelog.DateLayout)
	m["location"] = string(r.Venue)
	m["home_name"] = string(r.HomeName)
	return m
}

func meanJSON(m features.Mean) interface{} {
	if !m.Defined() || math.IsNaN(m.Value) {
		return nil
	}
	return m.Value
}

func flagJSON(b bool) int {
	if b {
		return 1
	}
	return 0
}

// WriteIDs writes a list of canonical identifiers.
func WriteIDs(w io.Writer, label string, ids []names.ID, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, map[string][]names.ID{label: ids})
	case FormatCSV:
		rows := make([][]string, len(ids))
		for i, id := range ids {
			rows[i] = []string{string(id)}
		}
		return writeCSV(w, []string{"id"}, rows)
	case FormatText:
		for _, id := range ids {
			fmt.Fprintln(w, id)
		}
		fmt.Fprintf(w, "\nTotal: %d %s\n", len(ids), label)
		return nil
	default:
		return unknownFormat(format)
	}
}

// WriteNames writes normalization results.
func WriteNames(w io.Writer, results []NameResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, results)
	case FormatCSV:
		rows := make([][]string, len(results))
		for i, r := range results {
			rows[i] = []string{r.Input, string(r.ID), strconv.FormatBool(r.MadeTournament)}
		}
		return writeCSV(w, []string{"input", "id", "made_tournament"}, rows)
	case FormatText:
		for _, r := range results {
			id := string(r.ID)
			if !r.ID.Known() {
				id = "(unknown)"
			}
			if r.MadeTournament {
				id += " [NCAA]"
			}
			fmt.Fprintf(w, "%s => %s\n", r.Input, id)
		}
		return nil
	default:
		return unknownFormat(format)
	}
}

// WriteSeasons writes the season calendar.
func WriteSeasons(w io.Writer, seasons []gamelog.Season, format OutputFormat) error {
	out := make([]seasonJSON, len(seasons))
	for i, s := range seasons {
		out[i] = seasonJSON{
			Year:            s.Year,
			Label:           s.Label(),
			RegularStart:    s.RegularStart.Format(gamelog.DateLayout),
			RegularEnd:      s.RegularEnd.Format(gamelog.DateLayout),
			TournamentStart: s.TournamentStart.Format(gamelog.DateLayout),
			TournamentEnd:   s.TournamentEnd.Format(gamelog.DateLayout),
		}
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, out)
	case FormatCSV:
		rows := make([][]string, len(out))
		for i, s := range out {
			rows[i] = []string{strconv.Itoa(s.Year), s.Label, s.RegularStart, s.RegularEnd, s.TournamentStart, s.TournamentEnd}
		}
		return writeCSV(w, []string{"season", "label", "regular_start", "regular_end", "tournament_start", "tournament_end"}, rows)
	case FormatText:
		for _, s := range out {
			fmt.Fprintf(w, "%d (%s)  regular %s to %s  tournament %s to %s\n",
				s.Year, s.Label, s.RegularStart, s.RegularEnd, s.TournamentStart, s.TournamentEnd)
		}
		return nil
	default:
		return unknownFormat(format)
	}
}
