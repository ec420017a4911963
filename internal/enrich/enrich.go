package enrich

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/emmalilie/scouting-strategy-yr2526/internal/fetch"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/logger"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/roster"
)

// Fetcher retrieves one document; satisfied by *fetch.Fetcher.
type Fetcher interface {
	Get(url string) (*fetch.Document, error)
}

// Policy decides when a candidate needs a secondary fetch and how fetches
// are paced.
type Policy struct {
	// Pause between consecutive profile fetches.
	Pause time.Duration
}

// DefaultPolicy mirrors the pacing the target sites tolerate.
func DefaultPolicy() Policy {
	return Policy{Pause: 500 * time.Millisecond}
}

// Needed reports whether a candidate's mandatory fields are missing or
// suspicious enough to justify a profile fetch.
func (p Policy) Needed(player roster.Player) bool {
	if player.Year == "" || player.Year == roster.Unknown || len(player.Year) > 30 {
		return true
	}
	return !roster.PlausibleHometown(player.Hometown)
}

// Orchestrator performs the secondary fetches.
type Orchestrator struct {
	fetcher Fetcher
	policy  Policy
	limiter *rate.Limiter
}

// New creates an Orchestrator with the given fetcher and policy.
func New(fetcher Fetcher, policy Policy) *Orchestrator {
	o := &Orchestrator{fetcher: fetcher, policy: policy}
	if policy.Pause > 0 {
		o.limiter = rate.NewLimiter(rate.Every(policy.Pause), 1)
	}
	return o
}

// Fill enriches a single candidate in place when the policy calls for it.
// Returns true when a secondary fetch was attempted.
func (o *Orchestrator) Fill(player *roster.Player) bool {
	if !o.policy.Needed(*player) {
		return false
	}
	if player.ProfileURL == "" || player.ProfileURL == roster.Unknown {
		return false
	}

	if o.limiter != nil {
		_ = o.limiter.Wait(context.Background())
	}

	doc, err := o.fetcher.Get(player.ProfileURL)
	if err != nil {
		// Best-effort: the field stays unresolved
		logger.Warn("profile enrichment failed", logger.Fields{
			"player": player.Name,
			"url":    player.ProfileURL,
		})
		return true
	}

	year, hometown := ParseProfile(doc.Body)

	if player.Year == "" || player.Year == roster.Unknown || len(player.Year) > 30 {
		if year != roster.Unknown {
			player.Year = year
		} else if player.Year == "" {
			player.Year = roster.Unknown
		}
	}
	if !roster.PlausibleHometown(player.Hometown) && hometown != roster.Unknown {
		player.Hometown = hometown
	}

	logger.IncrCounter("enrich.profiles")
	return true
}

// FillAll enriches every candidate that needs it and returns how many
// secondary fetches were attempted.
func (o *Orchestrator) FillAll(players []roster.Player) int {
	attempted := 0
	for i := range players {
		if o.Fill(&players[i]) {
			attempted++
		}
	}
	return attempted
}

var (
	yearLabelRe     = regexp.MustCompile(`(?i)year|class|eligib|academic`)
	hometownLabelRe = regexp.MustCompile(`(?i)hometown|home city|high school`)
	hometownTextRe  = regexp.MustCompile(`(?i)Hometown[:\s]+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*,\s*[A-Z]{2,})`)
)

// ParseProfile extracts year-in-school and hometown from an individual bio
// page. Tried in order: dt/dd definition pairs, class-name patterns, and a
// whole-text hometown search. Missing fields come back as roster.Unknown.
func ParseProfile(html []byte) (year, hometown string) {
	year, hometown = roster.Unknown, roster.Unknown

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return year, hometown
	}

	// Sidearm bio blocks are dt/dd pairs
	doc.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(dt.Text()))
		dd := dt.NextFiltered("dd")
		if dd.Length() == 0 {
			return
		}
		value := strings.Join(strings.Fields(dd.Text()), " ")

		// "high school" also matches the hometown label pattern, so the
		// year check runs first and hometown keeps its first hit.
		if year == roster.Unknown && yearLabelRe.MatchString(label) && !hometownLabelRe.MatchString(label) {
			year = roster.CanonicalYear(value)
		}
		if hometown == roster.Unknown && hometownLabelRe.MatchString(label) && label != "high school" {
			if roster.PlausibleHometown(value) {
				hometown = value
			}
		}
	})

	// Class-name patterns as fallback
	if year == roster.Unknown {
		if text := firstTextByClass(doc, yearLabelRe, 30); text != "" {
			year = roster.CanonicalYear(text)
		}
	}
	if hometown == roster.Unknown {
		if text := firstTextByClass(doc, hometownLabelRe, roster.MaxHometownLen); text != "" {
			hometown = text
		}
	}

	// Last resort: hometown shape anywhere in the page text
	if hometown == roster.Unknown {
		if m := hometownTextRe.FindStringSubmatch(doc.Text()); m != nil {
			hometown = m[1]
		}
	}

	return year, hometown
}

// firstTextByClass returns the text of the first element whose class
// matches the pattern and whose text fits under maxLen.
func firstTextByClass(doc *goquery.Document, pattern *regexp.Regexp, maxLen int) string {
	found := ""
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		cls, ok := s.Attr("class")
		if !ok || !pattern.MatchString(cls) {
			return true
		}
		text := strings.Join(strings.Fields(s.Text()), " ")
		if len(text) > 1 && len(text) < maxLen {
			found = text
			return false
		}
		return true
	})
	return found
}
