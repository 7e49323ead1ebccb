package portfolio

import "github.com/ziadkadry99/showcase/internal/catalog"

// Engine is the single source of truth for which listing items are shown.
// It owns one State over a fixed Catalog and returns a fresh Snapshot after
// every operation. An Engine is not safe for concurrent use; callers own
// one per page view and serialise access.
type Engine struct {
	cat   *catalog.Catalog
	state *State
	last  Snapshot
}

// NewEngine binds a catalog to an explicitly constructed state.
func NewEngine(cat *catalog.Catalog, state *State) *Engine {
	if state == nil {
		state = NewState(ModeIncremental, 1)
	}
	if state.History == nil {
		state.History = NewHistory(0)
	}
	e := &Engine{cat: cat, state: state}
	e.recompute()
	return e
}

// Catalog returns the catalog the engine filters.
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// State returns a copy of the current state values. The History pointer is
// shared.
func (e *Engine) State() State { return *e.state }

// Snapshot recomputes and returns the current snapshot.
func (e *Engine) Snapshot() Snapshot { return e.recompute() }

// Last returns the snapshot produced by the most recent operation.
func (e *Engine) Last() Snapshot { return e.last }

// SetFilter applies a category filter and records it in the history.
// Selecting the active filter again only resets the page.
func (e *Engine) SetFilter(name string) Snapshot {
	name = normalizeFilter(name)
	e.state.History.Push(name)
	e.state.ActiveFilter = name
	e.state.Page = 1
	return e.recompute()
}

// SetSearchTerm replaces the search term. History is not affected.
func (e *Engine) SetSearchTerm(term string) Snapshot {
	e.state.SearchTerm = normalizeTerm(term)
	e.state.Page = 1
	return e.recompute()
}

// AdvancePage reveals one more page in incremental mode. In discrete mode
// it moves to the next page, staying on the last one.
func (e *Engine) AdvancePage() Snapshot {
	if e.state.Mode == ModeDiscrete {
		return e.SetPage(e.state.Page + 1)
	}
	e.state.Page++
	return e.recompute()
}

// PreviousPage moves back one page, never below 1.
func (e *Engine) PreviousPage() Snapshot {
	return e.SetPage(e.state.Page - 1)
}

// SetPage jumps to page n, clamped to [1, totalPages].
func (e *Engine) SetPage(n int) Snapshot {
	e.state.Page = e.clampPage(n)
	return e.recompute()
}

// Restore applies a persisted page number, e.g. from session storage.
func (e *Engine) Restore(page int) Snapshot {
	if e.state.Mode == ModeDiscrete {
		return e.SetPage(page)
	}
	if page < 1 {
		page = 1
	}
	e.state.Page = page
	return e.recompute()
}

// Undo steps back through the filter history. It reports whether the
// cursor moved; at the oldest entry nothing changes.
func (e *Engine) Undo() (Snapshot, bool) {
	name, ok := e.state.History.Undo()
	if !ok {
		return e.last, false
	}
	return e.applyHistory(name), true
}

// Redo steps forward through the filter history.
func (e *Engine) Redo() (Snapshot, bool) {
	name, ok := e.state.History.Redo()
	if !ok {
		return e.last, false
	}
	return e.applyHistory(name), true
}

func (e *Engine) applyHistory(name string) Snapshot {
	e.state.ActiveFilter = name
	e.state.Page = 1
	return e.recompute()
}

func (e *Engine) clampPage(n int) int {
	pages := Recompute(e.cat, e.state).TotalPages
	if pages < 1 {
		pages = 1
	}
	if n > pages {
		n = pages
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (e *Engine) recompute() Snapshot {
	e.last = Recompute(e.cat, e.state)
	return e.last
}
