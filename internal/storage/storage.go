package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/emmalilie/scouting-strategy-yr2526/internal/rating"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/roster"
)

// rostersDir is the subdirectory holding the CSV exports.
const rostersDir = "rosters"

// csvHeader is the fixed column order of every roster CSV.
var csvHeader = []string{
	"School", "Season", "Player", "Player_ID", "Year_In_School", "Hometown",
	"Profile_URL", "UTR_Rating", "UTR_URL",
	"Singles_W", "Singles_L", "Singles_Record",
	"Doubles_W", "Doubles_L", "Doubles_Record",
}

// Snapshot is the persisted state for one site: the merged dataset plus the
// rating cache so repeat runs skip fresh lookups.
type Snapshot struct {
	Site        string         `json:"site"`
	Season      string         `json:"season"`
	UpdatedAt   string         `json:"updated_at"`
	Records     roster.Dataset `json:"records"`
	RatingCache *rating.Cache  `json:"rating_cache,omitempty"`
}

// NewSnapshot creates an empty snapshot for a site.
func NewSnapshot(site, season string) *Snapshot {
	return &Snapshot{
		Site:        site,
		Season:      season,
		Records:     make(roster.Dataset),
		RatingCache: rating.NewCache(),
	}
}

// Storage handles persistence of roster snapshots and CSV exports
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(filepath.Join(dataDir, rostersDir), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// snapshotPath returns the path to a site's snapshot file.
func (s *Storage) snapshotPath(site string) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("snapshot_%s.json", strings.ToLower(site)))
}

// csvPath returns the path to a site's CSV export.
func (s *Storage) csvPath(site string) string {
	return filepath.Join(s.dataDir, rostersDir, fmt.Sprintf("%s_roster.csv", strings.ToLower(site)))
}

// CombinedCSVPath returns the path of the cross-site CSV export.
func (s *Storage) CombinedCSVPath() string {
	return filepath.Join(s.dataDir, rostersDir, "all_rosters.csv")
}

// LoadSnapshot loads a site's snapshot from disk. A missing file yields an
// empty snapshot, so every run can assume a merge input exists.
func (s *Storage) LoadSnapshot(site, season string) (*Snapshot, error) {
	path := s.snapshotPath(site)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSnapshot(site, season), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	if snapshot.Records == nil {
		snapshot.Records = make(roster.Dataset)
	}

	// Restore RatingCache TTL (excluded from JSON with json:"-")
	if snapshot.RatingCache == nil {
		snapshot.RatingCache = rating.NewCache()
	} else {
		snapshot.RatingCache.TTL = rating.DefaultTTL
		if snapshot.RatingCache.Entries == nil {
			snapshot.RatingCache.Entries = make(map[string]rating.Entry)
		}
		if snapshot.RatingCache.CachedAt == nil {
			snapshot.RatingCache.CachedAt = make(map[string]time.Time)
		}
	}

	return &snapshot, nil
}

// SaveSnapshot writes a site's snapshot and its CSV export.
func (s *Storage) SaveSnapshot(snapshot *Snapshot) error {
	snapshot.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(s.snapshotPath(snapshot.Site), data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	if err := writeCSV(s.csvPath(snapshot.Site), snapshot.Records.Records()); err != nil {
		return fmt.Errorf("writing roster csv: %w", err)
	}

	return nil
}

// WriteCombined rebuilds the cross-site CSV from the given records. Callers
// pass the union of every site's dataset; ordering follows
// roster.Dataset.Records (school, then player).
func (s *Storage) WriteCombined(records []*roster.Record) error {
	if err := writeCSV(s.CombinedCSVPath(), records); err != nil {
		return fmt.Errorf("writing combined csv: %w", err)
	}
	return nil
}

func writeCSV(path string, records []*roster.Record) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.School, r.Season, r.Player, r.PlayerID, r.Year, r.Hometown,
			r.ProfileURL, r.Rating, r.RatingURL,
			strconv.Itoa(r.SinglesWins), strconv.Itoa(r.SinglesLosses), r.SinglesRecord(),
			strconv.Itoa(r.DoublesWins), strconv.Itoa(r.DoublesLosses), r.DoublesRecord(),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row for %s: %w", r.Player, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
