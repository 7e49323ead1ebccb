package config

import (
	"path/filepath"
	"time"
)

// DefaultCacheIncludes are the site files precached by the service worker.
var DefaultCacheIncludes = []string{
	"index.html",
	"**/*.css",
	"**/*.js",
	"*.json",
	"images/**",
}

// DefaultCacheExcludes are never precached.
var DefaultCacheExcludes = []string{
	"sw.js",
	".git/**",
	"node_modules/**",
	"**/*.map",
}

// DefaultCacheExtra lists third-party assets the site pulls from CDNs.
var DefaultCacheExtra = []string{
	"https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.4.0/css/all.min.css",
	"https://cdn.tailwindcss.com",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:             "Portfolio",
		SiteDir:           "site",
		CatalogFile:       filepath.Join("site", "portfolio.yml"),
		CaseStudies:       filepath.Join("site", "data.json"),
		DataDir:           ".showcase",
		Port:              8080,
		Mode:              ModeIncremental,
		ItemsPerPage:      20,
		HistoryLimit:      50,
		SearchDebounceMS:  300,
		GridColumns:       3,
		ToastTTLMS:        3000,
		StudyRetrySeconds: 30,
		Cache: CacheConfig{
			Name:    "showcase-cache-v1",
			Include: DefaultCacheIncludes,
			Exclude: DefaultCacheExcludes,
			Extra:   DefaultCacheExtra,
		},
	}
}

// SearchDelay returns the search debounce as a duration.
func (c *Config) SearchDelay() time.Duration {
	return time.Duration(c.SearchDebounceMS) * time.Millisecond
}

// ToastTTL returns how long notifications stay visible.
func (c *Config) ToastTTL() time.Duration {
	return time.Duration(c.ToastTTLMS) * time.Millisecond
}

// StudyRetry returns the minimum gap between case-study reload attempts.
func (c *Config) StudyRetry() time.Duration {
	return time.Duration(c.StudyRetrySeconds) * time.Second
}

// DBPath is where session state is stored.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "showcase.db")
}
