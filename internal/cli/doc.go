// Package cli implements the command-line interface for cbb-gamelogs.
//
// The cli package provides the Cobra-based CLI: scraping a season's game logs,
// building training rows from a saved season, and inspecting the name registry
// and season calendar. Output is text, JSON or CSV. It coordinates the config,
// scraper, storage and features packages.
package cli
