package features

import (
	"sort"
	"time"

	"github.com/pfrederiksen/cbb-gamelogs/internal/gamelog"
	"github.com/pfrederiksen/cbb-gamelogs/internal/names"
)

// Index maps each team to its chronologically ordered records. It is built
// once from a season's records and never modified afterwards, so it can be
// shared by concurrent builders.
type Index struct {
	logs map[names.ID][]gamelog.Record
}

// NewIndex partitions records by team. Each team's log is sorted by date with
// input order breaking ties. The caller's slice is not reordered.
func NewIndex(records []gamelog.Record) *Index {
	logs := make(map[names.ID][]gamelog.Record)
	for _, r := range records {
		logs[r.Team] = append(logs[r.Team], r)
	}
	for _, log := range logs {
		gamelog.SortByDate(log)
	}
	return &Index{logs: logs}
}

// Log returns a team's games in date order. The slice must not be modified.
func (idx *Index) Log(team names.ID) ([]gamelog.Record, bool) {
	log, ok := idx.logs[team]
	return log, ok
}

// Teams lists every team with at least one record, sorted.
func (idx *Index) Teams() []names.ID {
	teams := make([]names.ID, 0, len(idx.logs))
	for id := range idx.logs {
		teams = append(teams, id)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i] < teams[j] })
	return teams
}

// Len is the number of records in the index.
func (idx *Index) Len() int {
	n := 0
	for _, log := range idx.logs {
		n += len(log)
	}
	return n
}

// before returns the team's games dated strictly earlier than date.
func (idx *Index) before(team names.ID, date time.Time) []gamelog.Record {
	log := idx.logs[team]
	n := sort.Search(len(log), func(i int) bool {
		return !log[i].Date.Before(date)
	})
	return log[:n]
}
