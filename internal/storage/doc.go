// Package storage persists season game logs and feature rows.
//
// FileStore writes CSV files into a data directory (gamelogs_2018_2019.csv,
// features_2018_2019.csv, features_2018_2019_duke.csv), marking missing values
// with NAN. SQLiteStore keeps the same data in a SQLite database. Both replace a
// season wholesale on save. The default data directory is
// ~/.local/share/cbb-gamelogs/.
package storage
