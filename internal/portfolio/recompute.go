package portfolio

import "github.com/ziadkadry99/showcase/internal/catalog"

// Snapshot is the immutable result of a recompute. Presentation adapters
// consume it; nothing in it refers back to engine state.
type Snapshot struct {
	VisibleIDs   []string `json:"visible_ids"`
	TotalMatches int      `json:"total_matches"`
	TotalPages   int      `json:"total_pages"`
	IsEmpty      bool     `json:"is_empty"`
	HasMore      bool     `json:"has_more"`
	ActiveFilter string   `json:"active_filter"`
	SearchTerm   string   `json:"search_term"`
	Page         int      `json:"page"`
	ItemsPerPage int      `json:"items_per_page"`
	Mode         Mode     `json:"mode"`
	CanUndo      bool     `json:"can_undo"`
	CanRedo      bool     `json:"can_redo"`
}

// IsVisible reports whether id is in the visible set.
func (s Snapshot) IsVisible(id string) bool {
	for _, v := range s.VisibleIDs {
		if v == id {
			return true
		}
	}
	return false
}

// Recompute derives the visible set and control flags from the catalog
// and state. It does not modify either argument.
func Recompute(cat *catalog.Catalog, st *State) Snapshot {
	per := st.ItemsPerPage
	if per < 1 {
		per = 1
	}
	page := st.Page
	if page < 1 {
		page = 1
	}
	filter := normalizeFilter(st.ActiveFilter)
	term := catalog.Fold(st.SearchTerm)

	var matches []string
	for i := 0; i < cat.Len(); i++ {
		it := cat.At(i)
		if filter != FilterAll && !it.HasCategory(filter) {
			continue
		}
		if !cat.Matches(i, term) {
			continue
		}
		matches = append(matches, it.ID)
	}

	total := len(matches)
	snap := Snapshot{
		VisibleIDs:   []string{},
		TotalMatches: total,
		TotalPages:   (total + per - 1) / per,
		IsEmpty:      total == 0,
		ActiveFilter: filter,
		SearchTerm:   term,
		Page:         page,
		ItemsPerPage: per,
		Mode:         st.Mode,
	}
	if st.History != nil {
		snap.CanUndo = st.History.CanUndo()
		snap.CanRedo = st.History.CanRedo()
	}

	start, end := pageBounds(page, per, total)
	if st.Mode != ModeDiscrete {
		start = 0
		snap.HasMore = total > end
	}
	snap.VisibleIDs = append(snap.VisibleIDs, matches[start:end]...)
	return snap
}

// pageBounds returns the [start, end) slice of page within total matches,
// clamped to total. Comparisons go through division so that very large
// page numbers cannot overflow.
func pageBounds(page, per, total int) (start, end int) {
	full := total / per
	if page-1 > full {
		return total, total
	}
	start = (page - 1) * per
	if page > full {
		return start, total
	}
	return start, page * per
}
