package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// siteDirCandidates are checked in order for an existing index.html.
var siteDirCandidates = []string{"site", "public", "www", "."}

// detectSiteDir returns the first candidate directory holding an index.html.
func detectSiteDir() string {
	for _, dir := range siteDirCandidates {
		if _, err := os.Stat(filepath.Join(dir, "index.html")); err == nil {
			return dir
		}
	}
	return "site"
}

// detectCatalog looks for a catalog file inside siteDir.
func detectCatalog(siteDir string) string {
	for _, name := range []string{"portfolio.yml", "portfolio.yaml", "portfolio.json"} {
		p := filepath.Join(siteDir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(siteDir, "portfolio.yml")
}

// RunWizard runs an interactive configuration wizard, saves the result
// to path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to showcase! Let's configure your portfolio.")
	fmt.Println()

	cfg := DefaultConfig()

	titlePrompt := promptui.Prompt{
		Label:   "Portfolio title",
		Default: cfg.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	cfg.Title = title

	// 1. Site directory.
	detected := detectSiteDir()
	sitePrompt := promptui.Prompt{
		Label:   "Site directory (holds index.html and images)",
		Default: detected,
	}
	siteDir, err := sitePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site dir: %w", err)
	}
	cfg.SiteDir = siteDir

	// 2. Catalog and case-study data.
	catalogPrompt := promptui.Prompt{
		Label:   "Portfolio catalog file",
		Default: detectCatalog(siteDir),
	}
	if cfg.CatalogFile, err = catalogPrompt.Run(); err != nil {
		return nil, fmt.Errorf("catalog file: %w", err)
	}

	studiesPrompt := promptui.Prompt{
		Label:   "Case studies (file path or http(s) URL)",
		Default: filepath.Join(siteDir, "data.json"),
	}
	if cfg.CaseStudies, err = studiesPrompt.Run(); err != nil {
		return nil, fmt.Errorf("case studies: %w", err)
	}

	// 3. Pagination mode.
	modePrompt := promptui.Select{
		Label: "Pagination style",
		Items: []string{
			"incremental: a Load More button grows the grid",
			"discrete: numbered pages",
		},
	}
	modeIdx, _, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("mode selection: %w", err)
	}
	cfg.Mode = []Mode{ModeIncremental, ModeDiscrete}[modeIdx]

	// 4. Page size.
	perPrompt := promptui.Prompt{
		Label:    "Items per page",
		Default:  strconv.Itoa(cfg.ItemsPerPage),
		Validate: positiveInt,
	}
	perStr, err := perPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("items per page: %w", err)
	}
	cfg.ItemsPerPage, _ = strconv.Atoi(perStr)

	// 5. Extra CDN assets to precache.
	extraPrompt := promptui.Prompt{
		Label:   "Extra URLs to precache (comma-separated, blank for defaults)",
		Default: "",
	}
	extraStr, err := extraPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("extra urls: %w", err)
	}
	if extra := splitAndTrim(extraStr); len(extra) > 0 {
		cfg.Cache.Extra = append(cfg.Cache.Extra, extra...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("enter a whole number of at least 1")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
