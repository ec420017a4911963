package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	if cfg.Season != "2025-26" {
		t.Errorf("Season = %q, want 2025-26", cfg.Season)
	}
	if len(cfg.Sites) != 16 {
		t.Errorf("len(Sites) = %d, want 16", len(cfg.Sites))
	}

	ucla, ok := cfg.Sites["ucla"]
	if !ok {
		t.Fatal("ucla site missing from defaults")
	}
	if ucla.Key != "ucla" {
		t.Errorf("ucla Key = %q, want ucla", ucla.Key)
	}
	if ucla.RosterURL != "https://uclabruins.com/sports/mens-tennis/roster" {
		t.Errorf("unexpected ucla roster URL: %s", ucla.RosterURL)
	}
	if ucla.StatsURL != "https://static.uclabruins.com/custompages/Stats/2025-26/MTEN/teamcume.htm" {
		t.Errorf("unexpected ucla stats URL: %s", ucla.StatsURL)
	}

	// Every site must have a derived stats URL
	for key, site := range cfg.Sites {
		if !strings.HasPrefix(site.StatsURL, "https://static.") {
			t.Errorf("site %s stats URL not derived: %s", key, site.StatsURL)
		}
	}
}

func TestSiteKeys_Sorted(t *testing.T) {
	cfg := New()
	keys := cfg.SiteKeys()

	if len(keys) != len(cfg.Sites) {
		t.Fatalf("len(keys) = %d, want %d", len(keys), len(cfg.Sites))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Errorf("keys not sorted: %q >= %q", keys[i-1], keys[i])
		}
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ROSTERS_DATA_DIR", "/tmp/test-rosters")
	t.Setenv("ROSTERS_SEASON", "2026-27")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDir != "/tmp/test-rosters" {
		t.Errorf("DataDir = %q, want /tmp/test-rosters", cfg.DataDir)
	}
	if cfg.Season != "2026-27" {
		t.Errorf("Season = %q, want 2026-27", cfg.Season)
	}
	// Defaults survive where not overridden
	if len(cfg.Sites) == 0 {
		t.Error("Sites lost during env overlay")
	}
}

func TestLoad_FileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rosters.yaml")
	yaml := `
season: "2024-25"
sites:
  testville:
    display: "Testville Tigers"
    roster_url: "https://example.edu/sports/mens-tennis/roster"
    stats_url: "https://static.example.edu/stats.htm"
    base_url: "https://example.edu"
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ROSTERS_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Season != "2024-25" {
		t.Errorf("Season = %q, want 2024-25", cfg.Season)
	}
	site, ok := cfg.Sites["testville"]
	if !ok {
		t.Fatal("file-provided site missing")
	}
	if site.Key != "testville" {
		t.Errorf("Key not backfilled: %q", site.Key)
	}
	if site.Display != "Testville Tigers" {
		t.Errorf("Display = %q", site.Display)
	}
}
