// Package roster defines the athlete data model and the pure functions the
// pipeline joins on: normalized identity derivation, academic-year
// canonicalization, hometown plausibility checks, and the upsert merge of a
// fresh scrape into the persisted dataset.
package roster
