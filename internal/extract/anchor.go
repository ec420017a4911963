package extract

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/emmalilie/scouting-strategy-yr2526/internal/roster"
)

// profileHrefRe matches profile links on card-style roster pages:
// /sports/mens-tennis/roster/jane-smith/12345 or /sport/mten/roster/... —
// group 1 is the slug, group 2 the numeric id.
var profileHrefRe = regexp.MustCompile(`(?i)/(?:sports/[a-z-]+|sport/[a-z0-9]+)/roster/([^/?#]+)/(\d+)`)

// playerSlugHrefRe matches the slug-only profile links used by
// client-rendered sites: /sports/mens-tennis/roster/player/jane-smith.
var playerSlugHrefRe = regexp.MustCompile(`(?i)/sports/[a-z-]+/roster/player/([^/?#]+)`)

// cardClassRe identifies the enclosing player-card container when walking
// up from a profile anchor.
var cardClassRe = regexp.MustCompile(`(?i)roster.player|player.card|athlete|s-person|sidearm-roster`)

// yearClassRe and hometownClassRe locate fields inside a card by class name.
var (
	yearClassRe     = regexp.MustCompile(`(?i)academic.year|class.year|eligibility|year`)
	hometownClassRe = regexp.MustCompile(`(?i)hometown|home.city|high.school`)
	nameClassRe     = regexp.MustCompile(`(?i)name`)
)

// maxCardAscent bounds the upward walk from an anchor to its card.
const maxCardAscent = 7

// AnchorStrategy scans for hyperlinks whose target matches a player profile
// pattern, deduplicates by the embedded identifier, and reads year and
// hometown from the enclosing card. This handles the static Sidearm card
// grid, the most common roster layout.
type AnchorStrategy struct{}

// Name implements Strategy.
func (s *AnchorStrategy) Name() string { return "anchor" }

// Extract implements Strategy.
func (s *AnchorStrategy) Extract(doc *goquery.Document, baseURL string) []roster.Player {
	var players []roster.Player
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")

		var slug, id string
		if m := profileHrefRe.FindStringSubmatch(href); m != nil {
			slug, id = m[1], m[2]
		} else if m := playerSlugHrefRe.FindStringSubmatch(href); m != nil {
			slug, id = m[1], m[1]
		} else {
			return
		}

		// First occurrence of an identifier wins; duplicate card renders of
		// the same player are discarded.
		if seen[id] || slug == "staff" {
			return
		}
		seen[id] = true

		name := extractName(link, slug)
		if name == "" {
			return
		}

		card := findCard(link)

		year := roster.CanonicalYear(textByClass(card, yearClassRe))

		hometown := textByClass(card, hometownClassRe)
		if !roster.PlausibleHometown(hometown) {
			hometown = roster.RescueHometown(squash(card.Text()))
		}

		players = append(players, roster.Player{
			Name:       name,
			ID:         id,
			Year:       year,
			Hometown:   hometown,
			ProfileURL: resolveURL(baseURL, href),
		})
	})

	return players
}

// extractName pulls the player name from inside a profile anchor: heading
// tags first, then name-classed elements, then the anchor text itself, and
// finally the slug.
func extractName(link *goquery.Selection, slug string) string {
	for _, tag := range []string{"h2", "h3", "h4"} {
		if h := link.Find(tag).First(); h.Length() > 0 {
			if t := squash(h.Text()); len(t) > 2 {
				return t
			}
		}
	}

	name := ""
	link.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		cls, ok := s.Attr("class")
		if !ok || !nameClassRe.MatchString(cls) {
			return true
		}
		if t := squash(s.Text()); len(t) > 2 {
			name = t
			return false
		}
		return true
	})
	if name != "" {
		return name
	}

	if t := squash(link.Text()); len(t) > 2 && !isDigits(t) {
		return t
	}

	return slugToName(slug)
}

// findCard walks upward from a profile anchor to the enclosing player-card
// element. Returns the immediate parent when no card class is found within
// the ascent bound.
func findCard(link *goquery.Selection) *goquery.Selection {
	node := link.Parent()
	for i := 0; i < maxCardAscent; i++ {
		if node.Length() == 0 {
			break
		}
		if cls, ok := node.Attr("class"); ok && cardClassRe.MatchString(cls) {
			return node
		}
		node = node.Parent()
	}
	return link.Parent()
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
