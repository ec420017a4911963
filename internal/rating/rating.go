package rating

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/emmalilie/scouting-strategy-yr2526/internal/logger"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/roster"
)

// Unrated marks a player the service knows but has not rated.
const Unrated = "Unrated"

// maxResults caps how many candidates a query returns.
const maxResults = 5

// Entry is one resolved rating: the rating rendering plus the profile URL
// used as the reference locator. An unresolved lookup yields
// {roster.Unknown, roster.Unknown}.
type Entry struct {
	Rating     string `json:"rating"`
	ProfileURL string `json:"profile_url"`
}

// Unresolved returns the entry used when no lookup candidate matched.
func Unresolved() Entry {
	return Entry{Rating: roster.Unknown, ProfileURL: roster.Unknown}
}

// Client queries the rating search API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	cookie     string
	limiter    *rate.Limiter
}

// NewClient creates a rating client. pause spaces consecutive lookups to
// stay polite to the service; zero disables pacing. cookie is an optional
// session cookie that improves result quality and may be empty.
func NewClient(baseURL, userAgent, cookie string, pause time.Duration) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		userAgent:  userAgent,
		cookie:     cookie,
	}
	if pause > 0 {
		c.limiter = rate.NewLimiter(rate.Every(pause), 1)
	}
	return c
}

// searchResponse mirrors the service's search payload.
type searchResponse struct {
	Hits []struct {
		Source hitSource `json:"source"`
	} `json:"hits"`
}

type hitSource struct {
	ID            json.Number `json:"id"`
	SinglesUTR    float64     `json:"singlesUtr"`
	PlayerCollege *struct {
		Name string `json:"name"`
	} `json:"playerCollege"`
}

// Lookup resolves the rating for a player. The plain name is queried first;
// when school is non-empty a "name school" query is tried next, which
// disambiguates common names. Any non-success status or transport error is
// treated as "no match" for that query.
func (c *Client) Lookup(name, school string) Entry {
	queries := []string{name}
	if school != "" {
		queries = append(queries, name+" "+school)
	}

	for _, query := range queries {
		hits, err := c.search(query)
		if err != nil {
			logger.Debug("rating search failed", logger.Fields{"query": query})
			continue
		}
		if len(hits) == 0 {
			continue
		}

		// Prefer a college-affiliated candidate over the first result
		for _, hit := range hits {
			if hit.PlayerCollege != nil && hit.PlayerCollege.Name != "" {
				return entryFrom(hit)
			}
		}
		return entryFrom(hits[0])
	}

	return Unresolved()
}

func (c *Client) search(query string) ([]hitSource, error) {
	if c.limiter != nil {
		// Runs are sequential with no cancellation; the limiter only
		// provides the inter-lookup pause.
		_ = c.limiter.Wait(context.Background())
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("top", strconv.Itoa(maxResults))
	reqURL := fmt.Sprintf("%s/v2/search/players?%s", c.baseURL, params.Encode())

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	logger.RecordTiming("rating.search", time.Since(start))
	logger.IncrCounter("rating.lookups")

	hits := make([]hitSource, 0, len(result.Hits))
	for _, h := range result.Hits {
		hits = append(hits, h.Source)
	}
	return hits, nil
}

// entryFrom converts a hit into an Entry, normalizing a zero rating to the
// Unrated sentinel.
func entryFrom(hit hitSource) Entry {
	rating := Unrated
	if hit.SinglesUTR != 0 {
		rating = strconv.FormatFloat(hit.SinglesUTR, 'f', -1, 64)
	}

	profileURL := roster.Unknown
	if id := hit.ID.String(); id != "" && id != "0" {
		profileURL = "https://app.utrsports.net/profiles/" + id
	}

	return Entry{Rating: rating, ProfileURL: profileURL}
}
