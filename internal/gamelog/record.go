package gamelog

import (
	"math"
	"sort"
	"time"

	"github.com/pfrederiksen/cbb-gamelogs/internal/names"
)

// DateLayout is the calendar date format used in game logs.
const DateLayout = "2006-01-02"

// Venue says where a game was played, from the team's point of view.
type Venue string

const (
	Home    Venue = "H"
	Away    Venue = "A"
	Neutral Venue = "N"
)

// Record is one team's box score for a single game.
type Record struct {
	Date           time.Time
	Team           names.ID
	Opponent       names.ID
	Venue          Venue
	TeamPoints     float64
	OpponentPoints float64
	TeamWon        bool

	// Stats holds every box score statistic by column name. A statistic the
	// source left blank is absent from the map.
	Stats map[string]float64
}

// Stat returns the named statistic. ok is false when the value is missing.
func (r Record) Stat(name string) (v float64, ok bool) {
	v, ok = r.Stats[name]
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// HomeName is the team hosting the game. Neutral site games are credited to
// the team whose log the record came from.
func (r Record) HomeName() names.ID {
	if r.Venue == Away {
		return r.Opponent
	}
	return r.Team
}

func (r Record) TeamAtHome() bool {
	return r.Venue == Home
}

func (r Record) NeutralSite() bool {
	return r.Venue == Neutral
}

func (r Record) TotalScore() float64 {
	return r.TeamPoints + r.OpponentPoints
}

// SortByDate orders records chronologically in place. The sort is stable, so
// two games on the same date (double-headers) keep their input order.
func SortByDate(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}

// ParseVenue maps a venue marker to a Venue. An empty marker means home and
// "@" means away.
func ParseVenue(marker string) (Venue, bool) {
	switch marker {
	case "", "H":
		return Home, true
	case "@", "A":
		return Away, true
	case "N":
		return Neutral, true
	}
	return "", false
}
