// Package enrich fills gaps in extracted candidates by fetching individual
// profile pages.
//
// Roster pages frequently omit or garble year and hometown; each player has
// an individual bio page that usually carries both. Enrichment is a
// best-effort secondary fetch: it is triggered only when a mandatory field
// is missing or suspicious, paced to stay polite to the source, and a
// failure leaves the field unresolved rather than failing the record.
package enrich
