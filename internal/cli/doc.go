// Package cli implements the command-line interface for the roster
// pipeline.
//
// The cli package provides the Cobra-based CLI with subcommands to scrape
// rosters, refresh previously persisted ones, and summarize a team's match
// schedule. It coordinates the config, pipeline, and schedule packages and
// renders results as text or JSON.
package cli
