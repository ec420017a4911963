// Package logger provides structured JSON logging for the roster pipeline.
//
// The logger supports multiple log levels (DEBUG, INFO, WARN, ERROR) and emits
// one JSON object per line so scrape runs can be grepped and post-processed.
// All entries carry timestamps and may include arbitrary structured fields.
//
// Example usage:
//
//	logger.Info("roster parsed", logger.Fields{
//	    "site":    "ucla",
//	    "players": 11,
//	})
//
//	logger.Error("stats fetch failed", logger.Fields{
//	    "url":      statsURL,
//	    "attempts": 3,
//	}, err)
package logger
