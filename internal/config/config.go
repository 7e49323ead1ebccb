package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override file settings.
const EnvPrefix = "SHOWCASE_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SHOWCASE_*). A double underscore
// addresses nested keys, e.g. SHOWCASE_CACHE__NAME -> cache.name.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validModes = map[Mode]bool{
	ModeIncremental: true,
	ModeDiscrete:    true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.SiteDir == "" {
		return fmt.Errorf("site_dir is required")
	}
	if c.CatalogFile == "" {
		return fmt.Errorf("catalog_file is required")
	}
	if c.Mode != "" && !validModes[c.Mode] {
		return fmt.Errorf("invalid mode %q: must be one of incremental, discrete", c.Mode)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.ItemsPerPage < 1 {
		return fmt.Errorf("items_per_page must be at least 1")
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must be non-negative")
	}
	if c.SearchDebounceMS < 0 {
		return fmt.Errorf("search_debounce_ms must be non-negative")
	}
	if c.GridColumns < 1 {
		return fmt.Errorf("grid_columns must be at least 1")
	}
	if c.ToastTTLMS < 0 {
		return fmt.Errorf("toast_ttl_ms must be non-negative")
	}
	if c.StudyRetrySeconds < 0 {
		return fmt.Errorf("study_retry_seconds must be non-negative")
	}
	if c.Cache.Name == "" {
		return fmt.Errorf("cache.name is required")
	}
	return nil
}
