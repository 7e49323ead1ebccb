package portfolio

import (
	"fmt"
	"strings"
)

// FilterAll is the sentinel filter that matches every category.
const FilterAll = "all"

// Mode selects how the page counter maps onto visible items.
type Mode string

const (
	// ModeIncremental reveals page*itemsPerPage matches ("load more").
	ModeIncremental Mode = "incremental"
	// ModeDiscrete shows exactly one page slice at a time.
	ModeDiscrete Mode = "discrete"
)

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeIncremental, "":
		return ModeIncremental, nil
	case ModeDiscrete:
		return ModeDiscrete, nil
	default:
		return "", fmt.Errorf("invalid mode %q: must be incremental or discrete", s)
	}
}

// State is the mutable listing state for one page view.
type State struct {
	ActiveFilter string
	SearchTerm   string
	Page         int
	ItemsPerPage int
	Mode         Mode
	History      *History
}

// NewState returns the initial state: filter "all", empty search, page 1.
func NewState(mode Mode, itemsPerPage int) *State {
	return NewStateWithHistory(mode, itemsPerPage, 0)
}

// NewStateWithHistory is NewState with a bounded filter history.
func NewStateWithHistory(mode Mode, itemsPerPage, historyLimit int) *State {
	if itemsPerPage < 1 {
		itemsPerPage = 1
	}
	if mode != ModeDiscrete {
		mode = ModeIncremental
	}
	return &State{
		ActiveFilter: FilterAll,
		Page:         1,
		ItemsPerPage: itemsPerPage,
		Mode:         mode,
		History:      NewHistory(historyLimit),
	}
}

// normalizeFilter lowercases and trims a filter name; blank means all.
func normalizeFilter(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FilterAll
	}
	return name
}

// normalizeTerm lowercases and trims a search term.
func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
