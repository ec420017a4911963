// Package extract turns raw roster documents into candidate player records.
//
// Sites render rosters with different technologies: static card grids,
// printable table layouts, client-hydrated JSON payloads, and fully dynamic
// pages that only expose individual profile URLs. Each shape gets its own
// strategy; the chain tries them in order of cost and keeps the first
// usable result. Re-running a strategy on an unchanged document yields an
// identical candidate set.
package extract
