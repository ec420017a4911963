package extract

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/emmalilie/scouting-strategy-yr2526/internal/logger"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/roster"
)

// Strategy extracts candidate players from a parsed roster document.
type Strategy interface {
	Name() string
	Extract(doc *goquery.Document, baseURL string) []roster.Player
}

// tableFallbackThreshold: a card scrape that finds this few players on a
// team page is a strong signal of a table-only layout, so the table
// strategy is tried even though the anchor strategy "succeeded".
const tableFallbackThreshold = 2

// Chain applies the orderly sequence of strategies to one document.
type Chain struct {
	anchor   *AnchorStrategy
	table    *TableStrategy
	embedded *EmbeddedStrategy
	known    *KnownProfilesStrategy // optional, nil when no slugs configured
}

// NewChain builds the standard strategy chain. known may be nil.
func NewChain(known *KnownProfilesStrategy) *Chain {
	return &Chain{
		anchor:   &AnchorStrategy{},
		table:    &TableStrategy{},
		embedded: &EmbeddedStrategy{},
		known:    known,
	}
}

// Extract runs the chain over raw HTML and returns the candidates plus the
// name of the strategy that produced them. An empty result with strategy ""
// means no strategy matched the document.
func (c *Chain) Extract(html []byte, baseURL string) ([]roster.Player, string) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		logger.Warn("document parse failed", logger.Fields{"base_url": baseURL})
		return nil, ""
	}

	players := c.anchor.Extract(doc, baseURL)
	strategy := c.anchor.Name()

	if len(players) <= tableFallbackThreshold {
		if fromTable := c.table.Extract(doc, baseURL); len(fromTable) > len(players) {
			players = fromTable
			strategy = c.table.Name()
		}
	}

	if len(players) == 0 {
		players = c.embedded.Extract(doc, baseURL)
		strategy = c.embedded.Name()
	}

	if len(players) == 0 && c.known != nil {
		players = c.known.Extract(doc, baseURL)
		strategy = c.known.Name()
	}

	if len(players) == 0 {
		return nil, ""
	}

	logger.Debug("extraction complete", logger.Fields{
		"strategy": strategy,
		"players":  len(players),
	})
	return players, strategy
}

// resolveURL builds an absolute URL from a base and a possibly-relative href.
func resolveURL(baseURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// textByClass returns the text of the first descendant whose class attribute
// matches the pattern and whose text is a plausible field value (short
// enough to not be misparsed page furniture).
func textByClass(sel *goquery.Selection, pattern *regexp.Regexp) string {
	if sel == nil {
		return ""
	}
	found := ""
	sel.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		cls, ok := s.Attr("class")
		if !ok || !pattern.MatchString(cls) {
			return true
		}
		text := squash(s.Text())
		if len(text) > 1 && len(text) < roster.MaxHometownLen {
			found = text
			return false
		}
		return true
	})
	return found
}

// squash collapses runs of whitespace into single spaces and trims.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// slugToName turns "jane-smith" into "Jane Smith" as a last-resort display
// name.
func slugToName(slug string) string {
	return strings.Title(strings.ReplaceAll(slug, "-", " ")) // nolint:staticcheck
}
