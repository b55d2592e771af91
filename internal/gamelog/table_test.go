package gamelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicTable() Table {
	return Table{
		Columns: []string{"Date", "Location", "Opp", "W/L", "Tm", "Opp.1", "FG", "FGA", "FG%", "PF", "FG.1", "FG%.1"},
		Rows: [][]string{
			{"2018-11-06", "", "Army", "W", "94", "72", "35", "70", ".500", "15", "28", ".400"},
			{"2018-11-09", "@", "Kentucky NCAA", "L (1 OT)", "80", "84", "30", "66", ".455", "", "31", ".470"},
			{"", "", "", "", "", "", "", "", "", "", "", ""},
			{"Date", "", "Opp", "W/L", "Tm", "Opp", "FG", "FGA", "FG%", "PF", "FG", "FG%"},
			{"2018-11-12", "N", "Bethel (TN)", "W", "101", "50", "40", "72", ".556", "10", "20", ".300"},
			{"2018-11-15", "N", "Texas Tech", "W", "70", "60", "25", "61", ".410", "18", "22", ".380"},
		},
	}
}

func TestParseBasic(t *testing.T) {
	records, err := ParseBasic(basicTable(), "duke")
	require.NoError(t, err)
	// The delimiter rows are dropped and so is the non-D1 opponent.
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, time.Date(2018, time.November, 6, 0, 0, 0, 0, time.UTC), first.Date)
	assert.EqualValues(t, "duke", first.Team)
	assert.EqualValues(t, "army", first.Opponent)
	assert.Equal(t, Home, first.Venue)
	assert.True(t, first.TeamWon)
	assert.Equal(t, 94.0, first.TeamPoints)
	assert.Equal(t, 72.0, first.OpponentPoints)
	assert.Equal(t, 166.0, first.TotalScore())
	assert.Equal(t, 0.5, first.Stats["FG%"])
	assert.Equal(t, 28.0, first.Stats["opp_fg"])
	assert.Equal(t, 0.4, first.Stats["opp_fg%"])
	assert.True(t, first.TeamAtHome())
	assert.EqualValues(t, "duke", first.HomeName())

	second := records[1]
	assert.Equal(t, Away, second.Venue)
	assert.EqualValues(t, "kentucky", second.Opponent)
	assert.False(t, second.TeamWon, "overtime annotation must not hide the loss")
	assert.EqualValues(t, "kentucky", second.HomeName())
	_, ok := second.Stat("PF")
	assert.False(t, ok, "blank cell is missing, not zero")

	third := records[2]
	assert.True(t, third.NeutralSite())
	assert.EqualValues(t, "duke", third.HomeName())
}

func TestParseAdvanced_OpponentColumns(t *testing.T) {
	table := Table{
		Columns: []string{"Date", "Location", "Opp", "W/L", "Tm", "Opp.1", "ORtg", "eFG%", "eFG%.1", "FT/FGA.1"},
		Rows: [][]string{
			{"2018-11-06", "", "Army", "W", "94", "72", "120.3", ".560", ".420", ".190"},
		},
	}

	records, err := ParseAdvanced(table, "duke")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 120.3, records[0].Stats["ORtg"])
	assert.Equal(t, 0.42, records[0].Stats["opponent_efg%"])
	assert.Equal(t, 0.19, records[0].Stats["opponent_ft_per_fga"])
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		table Table
	}{
		{
			name:  "missing column",
			table: Table{Columns: []string{"Date", "Opp", "W/L", "Tm", "Opp.1"}},
		},
		{
			name: "bad date",
			table: Table{
				Columns: requiredColumns,
				Rows:    [][]string{{"11/06/2018", "", "Army", "W", "90", "70"}},
			},
		},
		{
			name: "non numeric stat",
			table: Table{
				Columns: append(append([]string{}, requiredColumns...), "FG%"),
				Rows:    [][]string{{"2018-11-06", "", "Army", "W", "90", "70", "abc"}},
			},
		},
		{
			name: "unknown venue",
			table: Table{
				Columns: requiredColumns,
				Rows:    [][]string{{"2018-11-06", "X", "Army", "W", "90", "70"}},
			},
		},
		{
			name: "ragged row",
			table: Table{
				Columns: requiredColumns,
				Rows:    [][]string{{"2018-11-06", "", "Army"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBasic(tt.table, "duke")
			require.ErrorIs(t, err, ErrMalformedInput)
		})
	}

	_, err := ParseBasic(basicTable(), "")
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestJoin(t *testing.T) {
	d1 := time.Date(2019, time.January, 5, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 3)

	basic := []Record{
		{Date: d1, Team: "duke", Opponent: "clemson", Stats: map[string]float64{"FG%": 0.5, "Pace": 70}},
		{Date: d2, Team: "duke", Opponent: "virginia", Stats: map[string]float64{"FG%": 0.4}},
	}
	advanced := []Record{
		{Date: d1, Team: "duke", Opponent: "clemson", Stats: map[string]float64{"Pace": 99, "ORtg": 110}},
		{Date: d2, Team: "duke", Opponent: "syracuse", Stats: map[string]float64{"ORtg": 1}},
	}

	joined := Join(basic, advanced)
	require.Len(t, joined, 2)

	assert.Equal(t, 70.0, joined[0].Stats["Pace"], "basic value wins on duplicate columns")
	assert.Equal(t, 110.0, joined[0].Stats["ORtg"])
	_, ok := joined[1].Stat("ORtg")
	assert.False(t, ok, "advanced rows only match on date and opponent")

	// inputs are not mutated
	_, ok = basic[0].Stats["ORtg"]
	assert.False(t, ok)
}

func TestSortByDate_StableTieBreak(t *testing.T) {
	d := time.Date(2019, time.February, 1, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{Date: d.AddDate(0, 0, 2), Opponent: "c"},
		{Date: d, Opponent: "a"},
		{Date: d, Opponent: "b"},
	}

	SortByDate(records)

	assert.EqualValues(t, "a", records[0].Opponent)
	assert.EqualValues(t, "b", records[1].Opponent)
	assert.EqualValues(t, "c", records[2].Opponent)
}

func TestParseVenue(t *testing.T) {
	for marker, want := range map[string]Venue{"": Home, "H": Home, "@": Away, "A": Away, "N": Neutral} {
		got, ok := ParseVenue(marker)
		assert.True(t, ok, marker)
		assert.Equal(t, want, got, marker)
	}
	_, ok := ParseVenue("?")
	assert.False(t, ok)
}
