package cmd

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/showcase/internal/casestudy"
	"github.com/ziadkadry99/showcase/internal/catalog"
	"github.com/ziadkadry99/showcase/internal/config"
	"github.com/ziadkadry99/showcase/internal/portfolio"
	"github.com/ziadkadry99/showcase/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `showcase init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// portfolioMode converts the configured mode for the engine.
func portfolioMode(cfg *config.Config) (portfolio.Mode, error) {
	return portfolio.ParseMode(string(cfg.Mode))
}

// loadData reads the catalog and the case studies concurrently. A missing
// catalog is fatal; unavailable case studies only produce a warning and
// leave the library marked unavailable.
func loadData(ctx context.Context, cfg *config.Config) (*catalog.Catalog, *casestudy.Library, error) {
	var cat *catalog.Catalog
	studies := casestudy.NewLibrary(nil)
	if cfg.CaseStudies != "" {
		studies = casestudy.NewLibrary(casestudy.NewSource(cfg.CaseStudies))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := catalog.Load(cfg.CatalogFile)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		cat = c
		return nil
	})
	if cfg.CaseStudies != "" {
		g.Go(func() error {
			if err := studies.Load(gctx); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: case studies unavailable: %v\n", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d items in %d categories, %d case studies\n",
			cat.Len(), len(cat.Categories()), studies.Len())
	}
	return cat, studies, nil
}

// siteOptions maps the config onto site.Options.
func siteOptions(cfg *config.Config, mode portfolio.Mode) site.Options {
	return site.Options{
		Title:          cfg.Title,
		SiteDir:        cfg.SiteDir,
		Mode:           mode,
		ItemsPerPage:   cfg.ItemsPerPage,
		HistoryLimit:   cfg.HistoryLimit,
		GridColumns:    cfg.GridColumns,
		SearchDelay:    cfg.SearchDelay(),
		StudyRetry:     cfg.StudyRetry(),
		CacheName:      cfg.Cache.Name,
		CacheInclude:   cfg.Cache.Include,
		CacheExclude:   cfg.Cache.Exclude,
		CacheExtra:     cfg.Cache.Extra,
		CacheVersioned: cfg.Cache.Versioned,
	}
}
