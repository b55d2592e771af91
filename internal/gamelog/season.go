package gamelog

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// Phase is the part of a season a game belongs to.
type Phase string

const (
	PhaseRegular    Phase = "regular"
	PhaseTournament Phase = "tournament"
	// PhaseOther covers the gap between Selection Sunday and the first round
	// and the other postseason events that run alongside the tournament.
	PhaseOther Phase = "other"
)

// Season is one college basketball season, named by the year it ends in:
// Season 2019 is the 2018-19 season.
type Season struct {
	Year            int
	RegularStart    time.Time
	RegularEnd      time.Time
	TournamentStart time.Time
	TournamentEnd   time.Time
}

// Label formats the season as "2018-19".
func (s Season) Label() string {
	return fmt.Sprintf("%d-%02d", s.Year-1, s.Year%100)
}

// Phase classifies a game date. Window bounds are inclusive.
func (s Season) Phase(d time.Time) Phase {
	switch {
	case within(d, s.RegularStart, s.RegularEnd):
		return PhaseRegular
	case within(d, s.TournamentStart, s.TournamentEnd):
		return PhaseTournament
	}
	return PhaseOther
}

func within(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seasons lists every season whose game logs have been validated.
var seasons = []Season{
	{2011, day(2010, time.November, 8), day(2011, time.March, 13), day(2011, time.March, 15), day(2011, time.April, 4)},
	{2012, day(2011, time.November, 7), day(2012, time.March, 11), day(2012, time.March, 13), day(2012, time.April, 2)},
	{2013, day(2012, time.November, 9), day(2013, time.March, 17), day(2013, time.March, 19), day(2013, time.April, 8)},
	{2014, day(2013, time.November, 8), day(2014, time.March, 16), day(2014, time.March, 18), day(2014, time.April, 7)},
	{2015, day(2014, time.November, 14), day(2015, time.March, 15), day(2015, time.March, 17), day(2015, time.April, 6)},
	{2016, day(2015, time.November, 13), day(2016, time.March, 13), day(2016, time.March, 15), day(2016, time.April, 4)},
	{2017, day(2016, time.November, 11), day(2017, time.March, 12), day(2017, time.March, 14), day(2017, time.April, 3)},
	{2018, day(2017, time.November, 10), day(2018, time.March, 11), day(2018, time.March, 13), day(2018, time.April, 2)},
	{2019, day(2018, time.November, 6), day(2019, time.March, 17), day(2019, time.March, 19), day(2019, time.April, 8)},
	// The 2020 tournament was cancelled; its window is kept so the phase
	// boundaries stay consistent with the other seasons.
	{2020, day(2019, time.November, 5), day(2020, time.March, 8), day(2020, time.March, 17), day(2020, time.April, 6)},
	{2021, day(2020, time.November, 25), day(2021, time.March, 14), day(2021, time.March, 18), day(2021, time.April, 5)},
	{2022, day(2021, time.November, 9), day(2022, time.March, 13), day(2022, time.March, 15), day(2022, time.April, 4)},
	{2023, day(2022, time.November, 7), day(2023, time.March, 12), day(2023, time.March, 14), day(2023, time.April, 3)},
	{2024, day(2023, time.November, 6), day(2024, time.March, 17), day(2024, time.March, 19), day(2024, time.April, 8)},
}

// LookupSeason returns the calendar for the season ending in year.
func LookupSeason(year int) (Season, error) {
	for _, s := range seasons {
		if s.Year == year {
			return s, nil
		}
	}
	first, last := seasons[0].Year, seasons[len(seasons)-1].Year
	return Season{}, errors.Wrapf(ErrUnsupportedSeason, "season %d (supported: %d-%d)", year, first, last)
}

// SupportedSeasons returns every season in the calendar, oldest first.
func SupportedSeasons() []Season {
	return append([]Season(nil), seasons...)
}
