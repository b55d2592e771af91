package cli

import (
	"sort"

	"github.com/pfrederiksen/cbb-gamelogs/internal/features"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate     SortOrder = "date"
	SortByTeam     SortOrder = "team"
	SortByOpponent SortOrder = "opponent"
)

func (o SortOrder) valid() bool {
	return o == SortByDate || o == SortByTeam || o == SortByOpponent
}

// sortRows sorts feature rows in place. Ties keep their build order.
func sortRows(rows []features.Row, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(rows, func(i, j int) bool {
			if !rows[i].Date.Equal(rows[j].Date) {
				return rows[i].Date.Before(rows[j].Date)
			}
			return rows[i].Team < rows[j].Team
		})
	case SortByTeam:
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Team != rows[j].Team {
				return rows[i].Team < rows[j].Team
			}
			// If teams are equal, sort by date
			return rows[i].Date.Before(rows[j].Date)
		})
	case SortByOpponent:
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Opponent != rows[j].Opponent {
				return rows[i].Opponent < rows[j].Opponent
			}
			return rows[i].Date.Before(rows[j].Date)
		})
	}
}
