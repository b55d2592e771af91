package names

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ID is a canonical team or conference identifier.
//
// The zero value is Absent: the result of normalizing an unknown name with
// errors ignored. Absent is never a member of either vocabulary.
type ID string

// Absent marks a name that could not be resolved.
const Absent ID = ""

// Known reports whether id came from an alias table.
func (id ID) Known() bool {
	return id != Absent
}

func (id ID) String() string {
	return string(id)
}

// Team is a normalized team name together with the tournament marker that
// sports-reference appends to the names of teams that made the NCAA tournament.
type Team struct {
	ID             ID
	MadeTournament bool
}

// junkChars never appear in a sports-reference team slug.
var junkChars = strings.NewReplacer("&", "", "(", "", ")", "", "'", "", ".", "")

var directionalQualifiers = []string{"(east)", "(west)", "(south)", "(north)"}

// NormalizeTeam converts a free-text team name to its canonical identifier.
// When ignoreErrors is set an unknown name yields Absent and a nil error;
// otherwise the error matches ErrUnknownTeamName.
func NormalizeTeam(raw string, ignoreErrors bool) (ID, error) {
	t, err := ParseTeam(raw, ignoreErrors)
	return t.ID, err
}

// MadeTournament reports whether raw carries the trailing "NCAA" marker.
// The name itself must still resolve.
func MadeTournament(raw string) (bool, error) {
	t, err := ParseTeam(raw, false)
	return t.MadeTournament, err
}

// ParseTeam returns both the canonical identifier and the tournament flag.
// The flag is reported even when the identifier is Absent.
func ParseTeam(raw string, ignoreErrors bool) (Team, error) {
	key, tourney := teamKey(raw)

	id, ok := teamAliases[key]
	if !ok {
		if ignoreErrors {
			return Team{ID: Absent, MadeTournament: tourney}, nil
		}
		return Team{MadeTournament: tourney}, &UnknownNameError{Kind: ErrUnknownTeamName, Raw: raw, Key: key}
	}

	return Team{ID: ID(id), MadeTournament: tourney}, nil
}

// teamKey runs the preprocessing pipeline and returns the alias table key.
func teamKey(raw string) (string, bool) {
	s := fold(raw)

	// "st." is "saint" at the front and "state" at the back. In the middle
	// ("mount st. mary's") it is left alone.
	if strings.Contains(s, "st.") {
		fields := strings.Fields(s)
		switch {
		case fields[0] == "st.":
			fields[0] = "saint"
			s = strings.Join(fields, " ")
		case fields[len(fields)-1] == "st.":
			fields[len(fields)-1] = "state"
			s = strings.Join(fields, " ")
		}
	}

	s = junkChars.Replace(s)
	s = strings.ReplaceAll(s, "-", " ")

	tokens := strings.Fields(s)
	for i, tok := range tokens {
		if tok == "uc" {
			tokens[i] = "california"
		}
	}

	tourney := false
	if n := len(tokens); n > 0 && tokens[n-1] == "ncaa" {
		tourney = true
		tokens = tokens[:n-1]
	}

	return strings.Join(tokens, "-"), tourney
}

// NormalizeConference converts a conference name to its canonical identifier.
// A trailing directional qualifier such as "(South)" is dropped first.
func NormalizeConference(raw string, ignoreErrors bool) (ID, error) {
	key := fold(raw)

	for _, q := range directionalQualifiers {
		if strings.HasSuffix(key, q) {
			key = strings.TrimSpace(strings.TrimSuffix(key, q))
			break
		}
	}

	if id, ok := conferenceAliases[key]; ok {
		return ID(id), nil
	}
	// Some sources hyphenate what the table spells with spaces.
	if id, ok := conferenceAliases[strings.Join(strings.Fields(key), "-")]; ok {
		return ID(id), nil
	}

	if ignoreErrors {
		return Absent, nil
	}
	return Absent, &UnknownNameError{Kind: ErrUnknownConferenceName, Raw: raw, Key: key}
}

// fold decomposes, case-folds and trims s.
func fold(s string) string {
	s = norm.NFKD.String(s)
	s = cases.Fold().String(s)
	return strings.TrimSpace(s)
}

var (
	allTeams       = sync.OnceValue(func() []ID { return codomain(teamAliases) })
	allConferences = sync.OnceValue(func() []ID { return codomain(conferenceAliases) })
)

// AllTeams returns every canonical team identifier, sorted and deduplicated.
func AllTeams() []ID {
	return append([]ID(nil), allTeams()...)
}

// AllConferences returns every canonical conference identifier, sorted and
// deduplicated.
func AllConferences() []ID {
	return append([]ID(nil), allConferences()...)
}

func codomain(aliases map[string]string) []ID {
	seen := make(map[string]struct{}, len(aliases))
	ids := make([]ID, 0, len(aliases))
	for _, id := range aliases {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, ID(id))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
