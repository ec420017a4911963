// Package storage persists roster datasets.
//
// Each site gets two artifacts under the data directory: a JSON snapshot
// (the merge input for the next run, carrying the rating cache and the
// update timestamp) and a CSV export under rosters/ for spreadsheet use.
// A combined all_rosters.csv spans every site. Writes are plain
// truncate-and-write; a crash mid-write can leave a partial CSV, which the
// next full run repairs.
package storage
