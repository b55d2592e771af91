// Package features turns a season of game records into leakage-free training
// rows.
//
// For every game of a team after a warm-up window, a row carries the mean of
// each tracked statistic over the team's games played strictly before that
// date, the same means for the opponent, and the game's venue and outcome
// labels. Records dated on or after the current game never contribute, so a row
// only encodes what was known before tip-off.
//
// Usage:
//
//	rows, err := features.BuildTrainingRows(records, "Duke", 10)
//
// For many teams at once, build an Index and use BuildAll.
package features
