package extract

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/emmalilie/scouting-strategy-yr2526/internal/roster"
)

// nuxtDataRe captures the hydration payload client-rendered sites embed as
// window.__NUXT__ = {...}.
var nuxtDataRe = regexp.MustCompile(`(?s)window\.__NUXT__\s*=\s*(\{.*?\})\s*(?:;|$)`)

// jsonArrayRe captures a generic inline JSON array carrying name keys.
var jsonArrayRe = regexp.MustCompile(`(?s)\[\s*\{.*?"name".*?\}\s*\]`)

// EmbeddedStrategy scans inline script payloads for the JSON structure a
// front-end framework hydrates the page from, then recursively searches it
// for player-shaped objects regardless of nesting depth or exact schema.
// Schemas vary per site and framework version, so the search keys on
// name-like and identifier-like fields rather than a fixed shape.
type EmbeddedStrategy struct{}

// Name implements Strategy.
func (s *EmbeddedStrategy) Name() string { return "embedded" }

// Extract implements Strategy.
func (s *EmbeddedStrategy) Extract(doc *goquery.Document, baseURL string) []roster.Player {
	var players []roster.Player

	doc.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		text := script.Text()
		if !strings.Contains(strings.ToLower(text), "roster") {
			return true
		}

		if m := nuxtDataRe.FindStringSubmatch(text); m != nil {
			var data interface{}
			if err := json.Unmarshal([]byte(m[1]), &data); err == nil {
				players = collectPlayers(data, baseURL)
				if len(players) > 0 {
					return false
				}
			}
		}

		if m := jsonArrayRe.FindString(text); m != "" {
			var data interface{}
			if err := json.Unmarshal([]byte(m), &data); err == nil {
				players = collectPlayers(data, baseURL)
				if len(players) > 0 {
					return false
				}
			}
		}

		return true
	})

	return players
}

// collectPlayers walks an arbitrary decoded JSON value and gathers objects
// that look like players: a name-like key plus, ideally, a slug or id.
func collectPlayers(data interface{}, baseURL string) []roster.Player {
	var players []roster.Player
	seen := make(map[string]bool)

	var walk func(v interface{})
	walk = func(v interface{}) {
		switch val := v.(type) {
		case map[string]interface{}:
			// First occurrence of an identifier wins, as in the other
			// strategies.
			if p, ok := playerFromObject(val, baseURL); ok && !seen[p.ID] {
				seen[p.ID] = true
				players = append(players, p)
			}
			for _, child := range val {
				walk(child)
			}
		case []interface{}:
			for _, item := range val {
				walk(item)
			}
		}
	}
	walk(data)

	return players
}

func playerFromObject(obj map[string]interface{}, baseURL string) (roster.Player, bool) {
	name := stringKey(obj, "name", "fullName", "playerName")
	if len(name) <= 3 {
		return roster.Player{}, false
	}

	slug := stringKey(obj, "slug", "urlSlug", "identifier")
	id := stringKey(obj, "id", "playerId", "rosterPlayerId")
	if slug == "" {
		slug = id
	}
	if slug == "" {
		return roster.Player{}, false
	}

	profile := stringKey(obj, "profileUrl", "profile_url")
	if profile == "" {
		profile = baseURL + "/sports/mens-tennis/roster/player/" + slug
	}

	year := roster.CanonicalYear(stringKey(obj, "academicYear", "classYear", "year"))

	hometown := stringKey(obj, "hometown", "homeCity", "city")
	if !roster.PlausibleHometown(hometown) {
		hometown = roster.Unknown
	}

	return roster.Player{
		Name:       name,
		ID:         slug,
		Year:       year,
		Hometown:   hometown,
		ProfileURL: profile,
	}, true
}

// stringKey returns the first non-empty string or number under any of the
// given keys. Numeric ids decode as float64 and are rendered back without
// an exponent.
func stringKey(obj map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := obj[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}
