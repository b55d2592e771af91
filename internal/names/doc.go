// Package names normalizes men's college basketball team and conference names.
//
// Box scores, rankings sites and schedules all spell programs differently
// ("UNC", "North Carolina", "N.C. State", "St. John's (NY)"). The names package
// reduces any of those spellings to a single canonical identifier, the URL slug
// used by sports-reference.com, so that records from different sources can be
// joined. The alias tables are static and never change at runtime, so every
// function here is safe for concurrent use.
package names
