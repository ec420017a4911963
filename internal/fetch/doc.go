// Package fetch provides polite HTTP retrieval for roster sources.
//
// Every fetch is attempted up to three times with exponential backoff, and
// failures are returned as values rather than aborting a run: a missing
// document degrades the pipeline's output for that source, nothing more.
package fetch
