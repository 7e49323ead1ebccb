package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ziadkadry99/showcase/internal/config"
	"github.com/ziadkadry99/showcase/internal/portfolio"
)

func sampleConfig(t *testing.T) *config.Config {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join("..", "testdata", "sample_site"))
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.SiteDir = dir
	cfg.CatalogFile = filepath.Join(dir, "portfolio.yml")
	cfg.CaseStudies = filepath.Join(dir, "data.json")
	cfg.DataDir = t.TempDir()
	cfg.Mode = config.ModeDiscrete
	cfg.ItemsPerPage = 2
	return cfg
}

func TestLoadData(t *testing.T) {
	cfg := sampleConfig(t)

	cat, studies, err := loadData(context.Background(), cfg)
	if err != nil {
		t.Fatalf("loadData: %v", err)
	}
	if cat.Len() != 5 {
		t.Errorf("items = %d, want 5", cat.Len())
	}
	if !studies.Available() || studies.Len() != 2 {
		t.Errorf("studies available=%v len=%d", studies.Available(), studies.Len())
	}
}

func TestLoadDataStudiesOptional(t *testing.T) {
	cfg := sampleConfig(t)
	cfg.CaseStudies = filepath.Join(t.TempDir(), "missing.json")

	cat, studies, err := loadData(context.Background(), cfg)
	if err != nil {
		t.Fatalf("missing case studies should not be fatal: %v", err)
	}
	if cat == nil || studies.Available() {
		t.Errorf("expected catalog and unavailable studies")
	}

	cfg.CatalogFile = filepath.Join(t.TempDir(), "missing.yml")
	if _, _, err := loadData(context.Background(), cfg); err == nil {
		t.Error("missing catalog should be fatal")
	}
}

func TestPortfolioMode(t *testing.T) {
	cfg := config.DefaultConfig()
	if m, err := portfolioMode(cfg); err != nil || m != portfolio.ModeIncremental {
		t.Errorf("default mode = %q, %v", m, err)
	}
	cfg.Mode = "sideways"
	if _, err := portfolioMode(cfg); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestExportCommand(t *testing.T) {
	cfg := sampleConfig(t)
	cfgPath := filepath.Join(t.TempDir(), ".showcase.yml")
	if err := cfg.Save(cfgPath); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "dist")
	t.Setenv("CI", "true")

	rootCmd.SetArgs([]string{"export", "--config", cfgPath, "--output", out})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("export: %v", err)
	}

	// all: 3 pages; branding 1; web 1; marketing 1.
	for _, rel := range []string{
		"index.html",
		"page/3/index.html",
		"branding/index.html",
		"web/index.html",
		"marketing/index.html",
		"images/logo.png",
		"sw.js",
	} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
}
