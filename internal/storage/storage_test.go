package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/emmalilie/scouting-strategy-yr2526/internal/rating"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/roster"
)

func testRecords() []*roster.Record {
	return []*roster.Record{
		{
			School: "UCLA", Season: "2025-26", Player: "Jane Smith", PlayerID: "10001",
			Year: "Jr", Hometown: "Los Angeles, CA",
			ProfileURL: "https://uclabruins.com/sports/mens-tennis/roster/jane-smith/10001",
			Rating: "13.52", RatingURL: "https://app.utrsports.net/profiles/901",
			SinglesWins: 8, SinglesLosses: 2, DoublesWins: 5, DoublesLosses: 3,
		},
		{
			School: "UCLA", Season: "2025-26", Player: "Marco Rossi", PlayerID: "10002",
			Year: "Fr", Hometown: "Rome, Italy",
			ProfileURL: "https://uclabruins.com/sports/mens-tennis/roster/marco-rossi/10002",
			Rating: roster.Unknown, RatingURL: roster.Unknown,
		},
	}
}

func TestLoadSnapshot_Missing(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	snap, err := s.LoadSnapshot("ucla", "2025-26")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Site != "ucla" || snap.Season != "2025-26" {
		t.Errorf("Site/Season = %q/%q", snap.Site, snap.Season)
	}
	if len(snap.Records) != 0 {
		t.Errorf("Records = %d, want empty", len(snap.Records))
	}
	if snap.RatingCache == nil || snap.RatingCache.TTL != rating.DefaultTTL {
		t.Error("expected a fresh rating cache with the default TTL")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	snap := NewSnapshot("ucla", "2025-26")
	snap.Records = roster.NewDataset(testRecords())
	snap.RatingCache.Set("jane smith", rating.Entry{Rating: "13.52", ProfileURL: "https://app.utrsports.net/profiles/901"})

	if err := s.SaveSnapshot(snap); err != nil {
		t.Fatal(err)
	}
	if snap.UpdatedAt == "" {
		t.Error("SaveSnapshot did not stamp UpdatedAt")
	}

	loaded, err := s.LoadSnapshot("ucla", "2025-26")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Records) != 2 {
		t.Fatalf("Records = %d, want 2", len(loaded.Records))
	}
	rec := loaded.Records["jane smith"]
	if rec == nil || rec.SinglesWins != 8 || rec.Rating != "13.52" {
		t.Errorf("jane smith record = %+v", rec)
	}

	// TTL is not serialized and must come back restored
	if loaded.RatingCache.TTL != rating.DefaultTTL {
		t.Errorf("RatingCache.TTL = %v, want %v", loaded.RatingCache.TTL, rating.DefaultTTL)
	}
	if entry, ok := loaded.RatingCache.Get("jane smith"); !ok || entry.Rating != "13.52" {
		t.Errorf("cached rating = %+v, ok = %v", entry, ok)
	}
}

func TestSaveSnapshot_WritesCSV(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	snap := NewSnapshot("ucla", "2025-26")
	snap.Records = roster.NewDataset(testRecords())
	if err := s.SaveSnapshot(snap); err != nil {
		t.Fatal(err)
	}

	rows := readCSV(t, filepath.Join(dir, "rosters", "ucla_roster.csv"))
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "School" || rows[0][14] != "Doubles_Record" {
		t.Errorf("header = %v", rows[0])
	}

	// Records() sorts by school then player, so Jane comes first
	jane := rows[1]
	if jane[2] != "Jane Smith" || jane[11] != "8-2" || jane[14] != "5-3" {
		t.Errorf("jane row = %v", jane)
	}
	marco := rows[2]
	if marco[2] != "Marco Rossi" || marco[7] != roster.Unknown || marco[11] != "0-0" {
		t.Errorf("marco row = %v", marco)
	}
}

func TestWriteCombined(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	records := testRecords()
	records = append(records, &roster.Record{School: "Baylor", Season: "2025-26", Player: "Erik Lund"})
	if err := s.WriteCombined(roster.NewDataset(records).Records()); err != nil {
		t.Fatal(err)
	}

	rows := readCSV(t, s.CombinedCSVPath())
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3", len(rows))
	}
	if rows[1][0] != "Baylor" {
		t.Errorf("first data row school = %q, want Baylor (sorted)", rows[1][0])
	}
}

func TestLoadSnapshot_Corrupt(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "snapshot_ucla.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadSnapshot("ucla", "2025-26"); err == nil {
		t.Error("expected an error for a corrupt snapshot")
	}
}

func TestSnapshotStampChanges(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	snap := NewSnapshot("ucla", "2025-26")
	if err := s.SaveSnapshot(snap); err != nil {
		t.Fatal(err)
	}
	if _, err := time.Parse(time.RFC3339, snap.UpdatedAt); err != nil {
		t.Errorf("UpdatedAt %q is not RFC3339: %v", snap.UpdatedAt, err)
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}
