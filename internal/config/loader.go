package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables.
//
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ROSTERS_CONFIG is set
//  3. env (prefix ROSTERS_), e.g. ROSTERS_DATA_DIR, ROSTERS_RATING_COOKIE
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("ROSTERS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// ROSTERS_DATA_DIR -> data_dir (flat keys, underscores preserved to
	// match the koanf struct tags).
	envProvider := env.Provider("ROSTERS_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "rosters_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Season == "" {
		return nil, errors.New("season must not be empty")
	}
	if cfg.DataDir == "" {
		return nil, errors.New("data_dir must not be empty")
	}
	if len(cfg.Sites) == 0 {
		return nil, errors.New("at least one site must be configured")
	}

	// A file override can introduce sites without repeating the key inside
	// the record; backfill it from the map key.
	for key, site := range cfg.Sites {
		if site.Key == "" {
			site.Key = key
			cfg.Sites[key] = site
		}
	}

	return &cfg, nil
}
