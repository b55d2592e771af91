// Package scraper fetches men's college basketball game logs from
// sports-reference.com.
//
// Each team season has two pages, a basic and an advanced game log. The
// scraper downloads them politely (rate limited, retried with backoff, guarded
// by a circuit breaker), optionally caches them on disk, extracts the game log
// tables with goquery, and hands the raw tables to package gamelog for parsing
// and joining. Tables the site hides inside HTML comments are recovered.
package scraper
