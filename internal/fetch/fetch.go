package fetch

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/emmalilie/scouting-strategy-yr2526/internal/logger"
)

const (
	// MaxAttempts bounds retries per URL.
	MaxAttempts = 3

	// initialBackoff is the delay after the first failed attempt; it
	// doubles on each subsequent failure.
	initialBackoff = 1 * time.Second
)

// ErrExhausted is returned after all attempts for a URL have failed.
var ErrExhausted = errors.New("all fetch attempts failed")

// Document is the raw result of one successful fetch, with provenance.
type Document struct {
	URL       string
	Body      []byte
	Status    int
	FetchedAt time.Time
}

// Fetcher issues outbound GET requests with retry and a browserlike
// User-Agent.
type Fetcher struct {
	client    *http.Client
	userAgent string
	headers   map[string]string
	baseDelay time.Duration
}

// New creates a Fetcher with the given per-request timeout and User-Agent.
func New(timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		headers:   map[string]string{"Accept-Language": "en-US,en;q=0.9"},
		baseDelay: initialBackoff,
	}
}

// SetHeader adds a header sent on every request, e.g. a session cookie for
// the rating service.
func (f *Fetcher) SetHeader(key, value string) {
	f.headers[key] = value
}

// Get retrieves a URL, retrying up to MaxAttempts times with doubling
// delays. A nil error means a 2xx response. After the final attempt fails
// the returned error wraps ErrExhausted; the caller decides how to degrade.
func (f *Fetcher) Get(url string) (*Document, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = f.baseDelay
	policy.Multiplier = 2
	policy.RandomizationFactor = 0

	var doc *Document
	attempt := 0

	operation := func() error {
		attempt++
		d, err := f.getOnce(url)
		if err != nil {
			logger.Warn("fetch attempt failed", logger.Fields{
				"url":     url,
				"attempt": attempt,
			})
			return err
		}
		doc = d
		return nil
	}

	err := backoff.Retry(operation, backoff.WithMaxRetries(policy, MaxAttempts-1))
	if err != nil {
		logger.Error("fetch exhausted", logger.Fields{
			"url":      url,
			"attempts": attempt,
		}, err)
		return nil, fmt.Errorf("%w: %s: %v", ErrExhausted, url, err)
	}
	return doc, nil
}

// getOnce performs a single GET attempt.
func (f *Fetcher) getOnce(url string) (*Document, error) {
	start := time.Now()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		// Malformed URL retries the same way a network error does; it
		// still ends as a recoverable ErrExhausted at the caller.
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body) // nolint:errcheck
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	logger.RecordTiming("fetch.get", time.Since(start))
	logger.IncrCounter("fetch.pages")

	return &Document{
		URL:       url,
		Body:      body,
		Status:    resp.StatusCode,
		FetchedAt: time.Now().UTC(),
	}, nil
}
