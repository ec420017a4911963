package config

import (
	"sort"
	"time"
)

// Site describes one school's scrape target: where the roster lives, where
// the cumulative stats page lives, and the base URL for resolving relative
// profile links.
type Site struct {
	// Key is the short identifier used in file names and CLI arguments.
	Key string `koanf:"key"`

	// Display is the human-readable school name, also appended to rating
	// lookup queries to disambiguate common player names.
	Display string `koanf:"display"`

	// RosterURL is the main roster page.
	RosterURL string `koanf:"roster_url"`

	// StatsURL is the cumulative season stats page (static HTML table).
	StatsURL string `koanf:"stats_url"`

	// BaseURL is the domain root used for building absolute profile URLs.
	BaseURL string `koanf:"base_url"`

	// KnownProfiles lists player profile slugs gathered manually for sites
	// whose roster pages defeat every parsing strategy. Used as the
	// last-resort extraction source.
	KnownProfiles []string `koanf:"known_profiles"`
}

// Config contains all pipeline settings.
type Config struct {
	// Season is the academic season stamped on every persisted record,
	// e.g. "2025-26".
	Season string `koanf:"season"`

	// DataDir is where per-site CSVs, the combined CSV, and the JSON
	// snapshot are written.
	DataDir string `koanf:"data_dir"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// UserAgent is sent on every outbound request. Sidearm sites serve
	// different markup to obvious bots, so this defaults to a browser UA.
	UserAgent string `koanf:"user_agent"`

	// FetchTimeout bounds each individual HTTP request.
	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	// ProfilePause is the delay between secondary profile-page fetches.
	ProfilePause time.Duration `koanf:"profile_pause"`

	// RatingPause is the delay between rating-service lookups.
	RatingPause time.Duration `koanf:"rating_pause"`

	// SitePause is the delay between whole-site runs.
	SitePause time.Duration `koanf:"site_pause"`

	// RatingBaseURL is the rating lookup service endpoint.
	RatingBaseURL string `koanf:"rating_base_url"`

	// RatingCookie is an optional session cookie for the rating service.
	// Setting it improves result quality when the public API is throttled.
	RatingCookie string `koanf:"rating_cookie"`

	// Sites maps site key to its scrape target description.
	Sites map[string]Site `koanf:"sites"`
}

// browserUA mirrors a desktop Chrome UA; Sidearm CDNs return a challenge
// page to unknown agents.
const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// New creates a Config populated with defaults: the Big Ten plus UCLA/USC
// men's tennis targets and conservative pacing.
func New() *Config {
	return &Config{
		Season:        "2025-26",
		DataDir:       "rosters",
		LogLevel:      "info",
		UserAgent:     browserUA,
		FetchTimeout:  20 * time.Second,
		ProfilePause:  500 * time.Millisecond,
		RatingPause:   750 * time.Millisecond,
		SitePause:     2 * time.Second,
		RatingBaseURL: "https://api.utrsports.net",
		Sites:         defaultSites(),
	}
}

// SiteKeys returns the configured site keys in sorted order.
func (c *Config) SiteKeys() []string {
	keys := make([]string, 0, len(c.Sites))
	for k := range c.Sites {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func defaultSites() map[string]Site {
	sites := map[string]Site{
		"ucla": {
			Display:   "UCLA Bruins",
			RosterURL: "https://uclabruins.com/sports/mens-tennis/roster",
			BaseURL:   "https://uclabruins.com",
		},
		"usc": {
			Display:   "USC Trojans",
			RosterURL: "https://usctrojans.com/sports/mens-tennis/roster",
			BaseURL:   "https://usctrojans.com",
		},
		"michigan": {
			Display:   "Michigan Wolverines",
			RosterURL: "https://mgoblue.com/sports/mens-tennis/roster",
			BaseURL:   "https://mgoblue.com",
		},
		"ohio_state": {
			Display:   "Ohio State Buckeyes",
			RosterURL: "https://ohiostatebuckeyes.com/sport/mten/roster/",
			BaseURL:   "https://ohiostatebuckeyes.com",
		},
		"penn_state": {
			Display:   "Penn State Nittany Lions",
			RosterURL: "https://gopsusports.com/sports/mens-tennis/roster",
			BaseURL:   "https://gopsusports.com",
			KnownProfiles: []string{
				"michael-wright-tennis",
				"david-lindsay",
				"jaden-brady",
				"eyal-shyovitz",
				"emil-matikainen",
			},
		},
		"indiana": {
			Display:   "Indiana Hoosiers",
			RosterURL: "https://iuhoosiers.com/sports/mens-tennis/roster",
			BaseURL:   "https://iuhoosiers.com",
		},
		"illinois": {
			Display:   "Illinois Fighting Illini",
			RosterURL: "https://fightingillini.com/sports/mens-tennis/roster",
			BaseURL:   "https://fightingillini.com",
		},
		"northwestern": {
			Display:   "Northwestern Wildcats",
			RosterURL: "https://nusports.com/sports/mens-tennis/roster",
			BaseURL:   "https://nusports.com",
		},
		"purdue": {
			Display:   "Purdue Boilermakers",
			RosterURL: "https://purduesports.com/sports/mens-tennis/roster",
			BaseURL:   "https://purduesports.com",
		},
		"wisconsin": {
			Display:   "Wisconsin Badgers",
			RosterURL: "https://uwbadgers.com/sports/mens-tennis/roster",
			BaseURL:   "https://uwbadgers.com",
		},
		"nebraska": {
			Display:   "Nebraska Cornhuskers",
			RosterURL: "https://huskers.com/sports/mens-tennis/roster",
			BaseURL:   "https://huskers.com",
		},
		"michigan_state": {
			Display:   "Michigan State Spartans",
			RosterURL: "https://msuspartans.com/sports/mens-tennis/roster",
			BaseURL:   "https://msuspartans.com",
		},
		"minnesota": {
			Display:   "Minnesota Gophers",
			RosterURL: "https://gophersports.com/sports/mens-tennis/roster",
			BaseURL:   "https://gophersports.com",
		},
		"iowa": {
			Display:   "Iowa Hawkeyes",
			RosterURL: "https://hawkeyesports.com/sports/mens-tennis/roster",
			BaseURL:   "https://hawkeyesports.com",
		},
		"rutgers": {
			Display:   "Rutgers Scarlet Knights",
			RosterURL: "https://scarletknights.com/sports/mens-tennis/roster",
			BaseURL:   "https://scarletknights.com",
		},
		"maryland": {
			Display:   "Maryland Terrapins",
			RosterURL: "https://umterps.com/sports/mens-tennis/roster",
			BaseURL:   "https://umterps.com",
		},
	}

	// Stats pages follow one pattern across every Sidearm school:
	// static.<domain>/custompages/Stats/<season>/MTEN/teamcume.htm
	for key, site := range sites {
		site.Key = key
		if site.StatsURL == "" {
			site.StatsURL = statsURLFor(site.BaseURL, "2025-26")
		}
		sites[key] = site
	}
	return sites
}

func statsURLFor(baseURL, season string) string {
	domain := baseURL
	for _, prefix := range []string{"https://", "http://"} {
		if len(domain) > len(prefix) && domain[:len(prefix)] == prefix {
			domain = domain[len(prefix):]
			break
		}
	}
	return "https://static." + domain + "/custompages/Stats/" + season + "/MTEN/teamcume.htm"
}
