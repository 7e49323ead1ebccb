package config

// Mode selects how pages of results are revealed.
type Mode string

const (
	// ModeIncremental grows the visible window one page at a time ("load more").
	ModeIncremental Mode = "incremental"
	// ModeDiscrete shows exactly one page at a time.
	ModeDiscrete Mode = "discrete"
)

// Config is the top-level showcase configuration, corresponding to .showcase.yml.
type Config struct {
	Title             string      `yaml:"title" koanf:"title"`
	SiteDir           string      `yaml:"site_dir" koanf:"site_dir"`
	CatalogFile       string      `yaml:"catalog_file" koanf:"catalog_file"`
	CaseStudies       string      `yaml:"case_studies" koanf:"case_studies"`
	DataDir           string      `yaml:"data_dir" koanf:"data_dir"`
	Port              int         `yaml:"port" koanf:"port"`
	Mode              Mode        `yaml:"mode" koanf:"mode"`
	ItemsPerPage      int         `yaml:"items_per_page" koanf:"items_per_page"`
	HistoryLimit      int         `yaml:"history_limit" koanf:"history_limit"`
	SearchDebounceMS  int         `yaml:"search_debounce_ms" koanf:"search_debounce_ms"`
	GridColumns       int         `yaml:"grid_columns" koanf:"grid_columns"`
	AllowAllOrigins   bool        `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	ToastTTLMS        int         `yaml:"toast_ttl_ms" koanf:"toast_ttl_ms"`
	// StudyRetrySeconds spaces out reloads of case studies that failed to load.
	StudyRetrySeconds int         `yaml:"study_retry_seconds" koanf:"study_retry_seconds"`
	Cache             CacheConfig `yaml:"cache" koanf:"cache"`
}

// CacheConfig controls the generated service-worker manifest.
type CacheConfig struct {
	Name    string   `yaml:"name" koanf:"name"`
	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`
	Extra   []string `yaml:"extra" koanf:"extra"`
	// Versioned appends a content fingerprint to Name.
	Versioned bool `yaml:"versioned" koanf:"versioned"`
}
