// Package config defines per-site scrape targets and pipeline settings.
//
// Every school site is described by an explicit Site record rather than a
// module-level URL table, so the same pipeline code runs against any target.
// Settings are layered: compiled-in defaults, then an optional YAML file,
// then environment variables.
package config
