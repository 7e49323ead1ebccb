package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Item is one portfolio listing entry.
type Item struct {
	ID          string   `json:"id" yaml:"id"`
	Categories  []string `json:"categories" yaml:"-"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Image       string   `json:"image,omitempty" yaml:"image"`
	Alt         string   `json:"alt,omitempty" yaml:"alt"`
}

// HasCategory reports whether tag is one of the item's categories.
func (it Item) HasCategory(tag string) bool {
	for _, c := range it.Categories {
		if c == tag {
			return true
		}
	}
	return false
}

// Catalog is an immutable, ordered view over the listing items.
type Catalog struct {
	items      []Item
	titles     []string // folded titles, parallel to items
	descs      []string // folded descriptions, parallel to items
	byID       map[string]int
	categories []string
}

// New builds a Catalog from items. The input slice is copied; later changes
// to it are not observed. Category tags are lowercased and deduplicated.
func New(items []Item) *Catalog {
	c := &Catalog{
		items:  make([]Item, len(items)),
		titles: make([]string, len(items)),
		descs:  make([]string, len(items)),
		byID:   make(map[string]int, len(items)),
	}
	seen := make(map[string]bool)
	for i, it := range items {
		cats := normalizeTags(it.Categories)
		it.Categories = cats
		c.items[i] = it
		c.titles[i] = Fold(it.Title)
		c.descs[i] = Fold(it.Description)
		if _, dup := c.byID[it.ID]; !dup {
			c.byID[it.ID] = i
		}
		for _, cat := range cats {
			if !seen[cat] {
				seen[cat] = true
				c.categories = append(c.categories, cat)
			}
		}
	}
	return c
}

// Len returns the number of items. A nil Catalog is empty.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// At returns the item at position i in catalog order.
func (c *Catalog) At(i int) Item { return c.items[i] }

// Items returns a copy of the items in catalog order.
func (c *Catalog) Items() []Item {
	if c == nil {
		return nil
	}
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Lookup finds an item by id.
func (c *Catalog) Lookup(id string) (Item, bool) {
	if c == nil {
		return Item{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Index returns the catalog position of id, or -1.
func (c *Catalog) Index(id string) int {
	if c == nil {
		return -1
	}
	if i, ok := c.byID[id]; ok {
		return i
	}
	return -1
}

// Categories returns the distinct category tags in first-seen order.
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Images returns the image references of items that have one, in catalog
// order. This is the lightbox gallery.
func (c *Catalog) Images() []string {
	if c == nil {
		return nil
	}
	var out []string
	for _, it := range c.items {
		if it.Image != "" {
			out = append(out, it.Image)
		}
	}
	return out
}

// Matches reports whether the item at position i contains term (already
// folded) in its title or description. An empty term matches everything.
func (c *Catalog) Matches(i int, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(c.titles[i], term) || strings.Contains(c.descs[i], term)
}

// ParseCategories splits a raw category attribute on whitespace and commas
// into lowercase tags. Empty tokens are dropped and duplicates keep their
// first position.
func ParseCategories(raw string) []string {
	fields := strings.FieldsFunc(strings.ToLower(raw), func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	var tags []string
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		tags = append(tags, f)
	}
	return tags
}

// Fold normalises text for case-insensitive substring matching.
func Fold(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}

// normalizeTags returns a lowercased copy of tags without blanks or repeats.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
