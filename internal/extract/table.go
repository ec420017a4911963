package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/emmalilie/scouting-strategy-yr2526/internal/roster"
)

// rowProfileRe extracts the slug from a profile link inside a table row.
var rowProfileRe = regexp.MustCompile(`(?i)/roster/(?:player/)?([^/?#]+?)(?:/\d+)?$`)

// TableStrategy parses table-layout rosters: a header row with
// name/year/hometown-like labels maps column positions, then each body row
// becomes one candidate. Some Sidearm schools use this printable layout
// instead of cards, which made card-only scrapes undercount badly.
type TableStrategy struct{}

// Name implements Strategy.
func (s *TableStrategy) Name() string { return "table" }

// Extract implements Strategy.
func (s *TableStrategy) Extract(doc *goquery.Document, baseURL string) []roster.Player {
	var players []roster.Player
	seen := make(map[string]bool)

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}

		headerText := strings.ToLower(squash(rows.First().Text()))
		if !strings.Contains(headerText, "name") &&
			!strings.Contains(headerText, "year") &&
			!strings.Contains(headerText, "class") &&
			!strings.Contains(headerText, "hometown") {
			return
		}

		var headers []string
		rows.First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, strings.ToLower(squash(cell.Text())))
		})

		nameIdx := headerIndex(headers, "name")
		if nameIdx == -1 {
			nameIdx = 0
		}
		yearIdx := headerIndexAny(headers, "year", "class")
		homeIdx := headerIndexAny(headers, "hometown", "city")

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() == 0 {
				return
			}

			name := squash(cellText(cells, nameIdx))
			if len(name) < 2 || isDigits(name) {
				return
			}

			slug := ""
			profileURL := ""
			if link := row.Find("a[href]").First(); link.Length() > 0 {
				href, _ := link.Attr("href")
				if m := rowProfileRe.FindStringSubmatch(href); m != nil {
					slug = m[1]
					profileURL = resolveURL(baseURL, href)
				}
			}
			if slug == "" {
				slug = strings.ReplaceAll(roster.NormalizeName(name), " ", "-")
			}
			if seen[slug] {
				return
			}
			seen[slug] = true

			year := roster.Unknown
			if yearIdx >= 0 {
				year = roster.CanonicalYear(cellText(cells, yearIdx))
			}
			hometown := roster.Unknown
			if homeIdx >= 0 {
				if h := squash(cellText(cells, homeIdx)); roster.PlausibleHometown(h) {
					hometown = h
				}
			}

			players = append(players, roster.Player{
				Name:       name,
				ID:         slug,
				Year:       year,
				Hometown:   hometown,
				ProfileURL: profileURL,
			})
		})
	})

	return players
}

func headerIndex(headers []string, label string) int {
	for i, h := range headers {
		if strings.Contains(h, label) {
			return i
		}
	}
	return -1
}

func headerIndexAny(headers []string, labels ...string) int {
	for _, label := range labels {
		if i := headerIndex(headers, label); i != -1 {
			return i
		}
	}
	return -1
}

func cellText(cells *goquery.Selection, idx int) string {
	if idx < 0 || idx >= cells.Length() {
		return ""
	}
	return cells.Eq(idx).Text()
}
