// Package pipeline orchestrates a full reconciliation run per site:
// fetch the roster page, extract candidates through the strategy chain,
// enrich missing fields from profile pages, fold in cumulative stats and
// ratings, merge into the persisted dataset, and write the snapshot and
// CSV exports. Site failures are isolated; one broken site never aborts
// the run.
package pipeline
