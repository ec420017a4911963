package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/emmalilie/scouting-strategy-yr2526/internal/config"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/enrich"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/extract"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/fetch"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/logger"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/rating"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/roster"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/stats"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/storage"
)

// Result summarizes one site's run.
type Result struct {
	Site         string `json:"site"`
	School       string `json:"school"`
	Strategy     string `json:"strategy,omitempty"`
	Players      int    `json:"players"`
	StatsMatched int    `json:"stats_matched"`
	Rated        int    `json:"rated"`
	Error        string `json:"error,omitempty"`

	Duration time.Duration `json:"-"`
}

// Pipeline runs the reconciliation flow for configured sites.
type Pipeline struct {
	cfg      *config.Config
	fetcher  *fetch.Fetcher
	store    *storage.Storage
	rater    *rating.Client
	enricher *enrich.Orchestrator
}

// New wires a Pipeline from configuration.
func New(cfg *config.Config) (*Pipeline, error) {
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	fetcher := fetch.New(cfg.FetchTimeout, cfg.UserAgent)

	return &Pipeline{
		cfg:      cfg,
		fetcher:  fetcher,
		store:    store,
		rater:    rating.NewClient(cfg.RatingBaseURL, cfg.UserAgent, cfg.RatingCookie, cfg.RatingPause),
		enricher: enrich.New(fetcher, enrich.Policy{Pause: cfg.ProfilePause}),
	}, nil
}

// RunSite scrapes one site from its live roster page and merges the result
// into the persisted dataset.
func (p *Pipeline) RunSite(site config.Site) (*Result, error) {
	start := time.Now()

	snap, err := p.store.LoadSnapshot(site.Key, p.cfg.Season)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	doc, err := p.fetcher.Get(site.RosterURL)
	if err != nil {
		return nil, fmt.Errorf("fetching roster: %w", err)
	}

	chain := extract.NewChain(&extract.KnownProfilesStrategy{
		Fetcher: p.fetcher,
		Slugs:   site.KnownProfiles,
	})
	players, strategy := chain.Extract(doc.Body, site.BaseURL)
	if len(players) == 0 {
		return nil, fmt.Errorf("no players extracted from %s", site.RosterURL)
	}

	p.enricher.FillAll(players)

	table := p.loadStats(site)

	result := &Result{Site: site.Key, School: site.Display, Strategy: strategy, Players: len(players)}
	fresh := make([]*roster.Record, 0, len(players))
	for _, pl := range players {
		rec := roster.FromPlayer(pl, site.Display, p.cfg.Season)

		entry := table.Match(rec.Key())
		if entry != (stats.Entry{}) {
			result.StatsMatched++
		}
		rec.SinglesWins = entry.SinglesWins
		rec.SinglesLosses = entry.SinglesLosses
		rec.DoublesWins = entry.DoublesWins
		rec.DoublesLosses = entry.DoublesLosses

		r := p.lookupRating(snap.RatingCache, pl.Name, site.Display)
		rec.Rating, rec.RatingURL = r.Rating, r.ProfileURL
		if rated(rec.Rating) {
			result.Rated++
		}

		fresh = append(fresh, rec)
	}

	snap.Records = roster.Upsert(snap.Records, fresh)
	if err := p.store.SaveSnapshot(snap); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	result.Duration = time.Since(start)
	logger.Info("site run complete", logger.Fields{
		"site":     site.Key,
		"strategy": strategy,
		"players":  result.Players,
		"stats":    result.StatsMatched,
		"rated":    result.Rated,
	})
	return result, nil
}

// UpdateSite refreshes every record already persisted for a site: new
// players from the live page are added, then stats, ratings, and missing
// bio fields are refreshed for the whole dataset, including athletes no
// longer listed on the page.
func (p *Pipeline) UpdateSite(site config.Site) (*Result, error) {
	start := time.Now()

	snap, err := p.store.LoadSnapshot(site.Key, p.cfg.Season)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	result := &Result{Site: site.Key, School: site.Display}

	// Live page is best-effort here; an existing dataset can still be
	// refreshed when the roster page is down.
	if doc, err := p.fetcher.Get(site.RosterURL); err == nil {
		chain := extract.NewChain(&extract.KnownProfilesStrategy{
			Fetcher: p.fetcher,
			Slugs:   site.KnownProfiles,
		})
		players, strategy := chain.Extract(doc.Body, site.BaseURL)
		result.Strategy = strategy
		for _, pl := range players {
			key := roster.NormalizeName(pl.Name)
			if _, exists := snap.Records[key]; !exists {
				snap.Records[key] = roster.FromPlayer(pl, site.Display, p.cfg.Season)
			}
		}
	} else {
		logger.Warn("roster page unavailable, refreshing existing records only", logger.Fields{
			"site": site.Key,
		})
	}
	if len(snap.Records) == 0 {
		return nil, fmt.Errorf("no persisted roster for %s and the live page yielded nothing", site.Key)
	}

	table := p.loadStats(site)
	now := time.Now().UTC()
	for key, rec := range snap.Records {
		entry := table.Match(key)
		if entry != (stats.Entry{}) {
			result.StatsMatched++
		}
		rec.SinglesWins = entry.SinglesWins
		rec.SinglesLosses = entry.SinglesLosses
		rec.DoublesWins = entry.DoublesWins
		rec.DoublesLosses = entry.DoublesLosses

		pl := roster.Player{
			Name:       rec.Player,
			Year:       rec.Year,
			Hometown:   rec.Hometown,
			ProfileURL: rec.ProfileURL,
		}
		p.enricher.Fill(&pl)
		rec.Year = pl.Year
		rec.Hometown = pl.Hometown

		r := p.lookupRating(snap.RatingCache, rec.Player, site.Display)
		rec.Rating, rec.RatingURL = r.Rating, r.ProfileURL
		if rated(rec.Rating) {
			result.Rated++
		}

		rec.Season = p.cfg.Season
		rec.UpdatedAt = now
	}
	result.Players = len(snap.Records)

	if err := p.store.SaveSnapshot(snap); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	result.Duration = time.Since(start)
	logger.Info("site update complete", logger.Fields{
		"site":    site.Key,
		"players": result.Players,
		"stats":   result.StatsMatched,
		"rated":   result.Rated,
	})
	return result, nil
}

// RunAll processes the given site keys sequentially with the configured
// pause between sites, then rebuilds the combined CSV. A failing site is
// reported in its Result and never aborts the remaining sites.
func (p *Pipeline) RunAll(siteKeys []string, update bool) []*Result {
	results := make([]*Result, 0, len(siteKeys))
	for i, key := range siteKeys {
		if i > 0 && p.cfg.SitePause > 0 {
			time.Sleep(p.cfg.SitePause)
		}

		site, ok := p.cfg.Sites[key]
		if !ok {
			results = append(results, &Result{Site: key, Error: "unknown site"})
			continue
		}

		var (
			res *Result
			err error
		)
		if update {
			res, err = p.UpdateSite(site)
		} else {
			res, err = p.RunSite(site)
		}
		if err != nil {
			logger.Error("site failed", logger.Fields{"site": key}, err)
			res = &Result{Site: key, School: site.Display, Error: err.Error()}
		}
		results = append(results, res)
	}

	if err := p.RebuildCombined(); err != nil {
		logger.Error("combined export failed", logger.Fields{}, err)
	}
	return results
}

// RebuildCombined rewrites the cross-site CSV from every persisted
// snapshot, not just the sites processed this run.
func (p *Pipeline) RebuildCombined() error {
	var all []*roster.Record
	for _, key := range p.cfg.SiteKeys() {
		snap, err := p.store.LoadSnapshot(key, p.cfg.Season)
		if err != nil {
			return fmt.Errorf("loading snapshot for %s: %w", key, err)
		}
		all = append(all, snap.Records.Records()...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].School != all[j].School {
			return all[i].School < all[j].School
		}
		return all[i].Player < all[j].Player
	})
	return p.store.WriteCombined(all)
}

// loadStats fetches and parses a site's cumulative stats page. Failures
// degrade to an empty table; rosters without published stats still persist.
func (p *Pipeline) loadStats(site config.Site) stats.Table {
	if site.StatsURL == "" {
		return nil
	}
	doc, err := p.fetcher.Get(site.StatsURL)
	if err != nil {
		logger.Warn("stats page unavailable", logger.Fields{
			"site": site.Key,
			"url":  site.StatsURL,
		})
		return nil
	}
	return stats.Parse(doc.Body)
}

// lookupRating resolves a rating through the snapshot's cache.
func (p *Pipeline) lookupRating(cache *rating.Cache, name, school string) rating.Entry {
	key := roster.NormalizeName(name)
	if entry, ok := cache.Get(key); ok {
		logger.IncrCounter("rating.cache_hits")
		return entry
	}
	entry := p.rater.Lookup(name, school)
	cache.Set(key, entry)
	return entry
}

func rated(value string) bool {
	return value != "" && value != roster.Unknown && value != rating.Unrated
}
