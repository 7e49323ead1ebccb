package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileItem is the on-disk shape of a catalog entry. Category is the raw
// attribute text, e.g. "branding, web".
type fileItem struct {
	ID          string `json:"id" yaml:"id"`
	Category    string `json:"category" yaml:"category"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
	Alt         string `json:"alt" yaml:"alt"`
}

type fileCatalog struct {
	Items []fileItem `json:"items" yaml:"items"`
}

// Load reads a catalog from a YAML or JSON file, chosen by extension.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var fc fileCatalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
		}
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}

	items, err := fromFile(fc.Items)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return New(items), nil
}

func fromFile(entries []fileItem) ([]Item, error) {
	items := make([]Item, 0, len(entries))
	ids := make(map[string]bool, len(entries))
	for _, e := range entries {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			continue
		}
		if ids[id] {
			return nil, fmt.Errorf("duplicate item id %q", id)
		}
		ids[id] = true
	}

	for i, e := range entries {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			// Generated ids follow the position, skipping taken ones.
			n := i + 1
			for ids[fmt.Sprintf("item-%d", n)] {
				n++
			}
			id = fmt.Sprintf("item-%d", n)
			ids[id] = true
		}
		items = append(items, Item{
			ID:          id,
			Categories:  ParseCategories(e.Category),
			Title:       e.Title,
			Description: e.Description,
			Image:       e.Image,
			Alt:         e.Alt,
		})
	}
	return items, nil
}
