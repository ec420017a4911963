// Package stats parses the cumulative season statistics page and matches
// its rows to roster identities.
//
// The stats page is a plain HTML table on a static subdomain, structured
// independently of the roster page, so rows are keyed by normalized player
// name and joined best-effort: an athlete missing from the table gets
// zero-valued stats, never an error.
package stats
