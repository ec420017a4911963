package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/emmalilie/scouting-strategy-yr2526/internal/fetch"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/logger"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/roster"
)

// PageFetcher retrieves one document; satisfied by *fetch.Fetcher.
type PageFetcher interface {
	Get(url string) (*fetch.Document, error)
}

// DefaultSportPath is the roster path segment shared by every configured
// site's profile URLs.
const DefaultSportPath = "sports/mens-tennis"

// KnownProfilesStrategy is the last resort for sites that defeat every
// document-level strategy: a curated list of per-player profile slugs is
// fetched one page at a time and each successful fetch yields one
// candidate. A failed profile fetch is skipped, not fatal.
type KnownProfilesStrategy struct {
	Fetcher   PageFetcher
	Slugs     []string
	SportPath string // defaults to DefaultSportPath when empty
}

// Name implements Strategy.
func (s *KnownProfilesStrategy) Name() string { return "known-profiles" }

// Extract implements Strategy. The roster document itself is ignored; the
// slugs drive everything.
func (s *KnownProfilesStrategy) Extract(_ *goquery.Document, baseURL string) []roster.Player {
	if s.Fetcher == nil || len(s.Slugs) == 0 {
		return nil
	}

	sportPath := s.SportPath
	if sportPath == "" {
		sportPath = DefaultSportPath
	}

	var players []roster.Player
	for _, slug := range s.Slugs {
		url := strings.TrimRight(baseURL, "/") + "/" + sportPath + "/roster/player/" + slug
		doc, err := s.Fetcher.Get(url)
		if err != nil {
			logger.Warn("known profile fetch failed", logger.Fields{"url": url})
			continue
		}

		p, ok := playerFromProfile(doc.Body, slug, url)
		if !ok {
			continue
		}
		players = append(players, p)
	}

	return players
}

// playerFromProfile extracts one candidate from an individual profile page:
// name from the title or first h1, year and hometown from labeled bio
// definition pairs.
func playerFromProfile(html []byte, slug, url string) (roster.Player, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	if err != nil {
		return roster.Player{}, false
	}

	// Title format: "Jane Smith - 2025-26 Men's Tennis - School"
	name := ""
	if title := doc.Find("title").First(); title.Length() > 0 {
		name = squash(strings.SplitN(title.Text(), " - ", 2)[0])
	}
	if name == "" {
		name = squash(doc.Find("h1").First().Text())
	}
	if name == "" {
		name = slugToName(slug)
	}

	year := roster.Unknown
	hometown := roster.Unknown

	doc.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		label := strings.ToLower(squash(dt.Text()))
		dd := dt.NextFiltered("dd")
		if dd.Length() == 0 {
			return
		}
		value := squash(dd.Text())

		if year == roster.Unknown && containsAny(label, "year", "class", "eligib") {
			year = roster.CanonicalYear(value)
		}
		if hometown == roster.Unknown && containsAny(label, "hometown", "city", "home") {
			if roster.PlausibleHometown(value) {
				hometown = value
			}
		}
	})

	return roster.Player{
		Name:       name,
		ID:         slug,
		Year:       year,
		Hometown:   hometown,
		ProfileURL: url,
	}, true
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
