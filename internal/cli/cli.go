package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emmalilie/scouting-strategy-yr2526/internal/config"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/logger"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/pipeline"
	"github.com/emmalilie/scouting-strategy-yr2526/internal/schedule"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitPartial = 2
)

var (
	flagDataDir string
	flagSeason  string
	flagFormat  string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rosters",
		Short: "Scrape and reconcile college tennis rosters",
		Long: `Scrapes men's tennis roster pages, reconciles them with cumulative
season stats and UTR ratings, and persists the result as per-site and
combined CSV files plus a JSON snapshot for idempotent re-runs.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory (overrides config)")
	cmd.PersistentFlags().StringVar(&flagSeason, "season", "", "Season label, e.g. 2025-26 (overrides config)")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newUpdateCmd())
	cmd.AddCommand(newScheduleCmd())
	cmd.AddCommand(newSitesCmd())

	return cmd
}

func newScrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape [site...]",
		Short: "Scrape roster pages and merge into the persisted dataset",
		Long: `Scrapes each site's live roster page, enriches missing fields from
profile pages, folds in stats and ratings, and merges the result into the
persisted dataset. With no arguments every configured site is processed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSites(args, false)
		},
	}
}

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update [site...]",
		Short: "Refresh stats, ratings, and missing fields for persisted rosters",
		Long: `Refreshes every persisted record for each site: stats and ratings are
re-fetched for the whole dataset, new players on the live page are added,
and still-missing bio fields are filled from profile pages. Athletes no
longer listed on the live page are retained and refreshed too.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSites(args, true)
		},
	}
}

func newScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <schedule.csv>",
		Short: "Summarize a match schedule export",
		Long: `Reads a schedule CSV (Date, Opponent, Location, Result, Season columns)
and prints the overall record plus the cumulative score series used to
chart the season's trajectory.`,
		Args: cobra.ExactArgs(1),
		RunE: runSchedule,
	}
}

func newSitesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List configured site keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			for _, key := range cfg.SiteKeys() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", key, cfg.Sites[key].Display)
			}
			return nil
		},
	}
}

// loadConfig loads configuration and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagSeason != "" {
		cfg.Season = flagSeason
	}

	level := logger.LevelInfo
	switch {
	case flagVerbose:
		level = logger.LevelDebug
	case strings.EqualFold(cfg.LogLevel, "debug"):
		level = logger.LevelDebug
	case strings.EqualFold(cfg.LogLevel, "warn"):
		level = logger.LevelWarn
	case strings.EqualFold(cfg.LogLevel, "error"):
		level = logger.LevelError
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	return cfg, nil
}

// runSites is the shared scrape/update command logic.
func runSites(args []string, update bool) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	keys := args
	if len(keys) == 0 || (len(keys) == 1 && strings.EqualFold(keys[0], "all")) {
		keys = cfg.SiteKeys()
	}
	for _, key := range keys {
		if _, ok := cfg.Sites[key]; !ok {
			return fmt.Errorf("unknown site %q (run 'rosters sites' for the list)", key)
		}
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	results := p.RunAll(keys, update)

	out := &RunOutput{Season: cfg.Season, Results: results}
	for _, r := range results {
		out.Players += r.Players
		if r.Error != "" {
			out.Failed++
		}
	}
	if err := WriteRunOutput(os.Stdout, out, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if out.Failed == len(results) {
		os.Exit(ExitError)
	}
	if out.Failed > 0 {
		os.Exit(ExitPartial)
	}
	return nil
}

// runSchedule implements the schedule subcommand.
func runSchedule(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	matches, err := schedule.ReadCSV(args[0])
	if err != nil {
		return err
	}

	out := &ScheduleOutput{
		Source:  args[0],
		Matches: len(matches),
		Record:  schedule.Overall(matches),
		Series:  schedule.Cumulative(matches),
	}
	return WriteScheduleOutput(cmd.OutOrStdout(), out, format)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
