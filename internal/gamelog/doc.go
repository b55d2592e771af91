// Package gamelog defines per-game box score records and converts the raw
// tables produced by the scraper into them.
//
// A Record is one team's view of one game. Every game appears twice in a full
// season's data, once from each side. The package also carries the season
// calendar (regular season and NCAA tournament windows) for the seasons the
// scraper supports.
package gamelog
