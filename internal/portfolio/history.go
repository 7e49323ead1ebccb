package portfolio

// History is an undo/redo stack of filter selections with a cursor.
// entries[0] is always FilterAll and the cursor always points at the
// filter currently applied.
type History struct {
	entries []string
	cursor  int
	limit   int
}

// NewHistory creates a History rooted at FilterAll. A positive limit caps
// the number of entries kept; the root entry is never evicted.
func NewHistory(limit int) *History {
	return &History{
		entries: []string{FilterAll},
		limit:   limit,
	}
}

// Current returns the entry under the cursor.
func (h *History) Current() string { return h.entries[h.cursor] }

// Index returns the cursor position.
func (h *History) Index() int { return h.cursor }

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Entries returns a copy of the stack, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// CanUndo reports whether Undo would move the cursor.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would move the cursor.
func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }

// Push records name as the newest selection. Pushing the entry already
// under the cursor is a no-op. Any forward (redo) branch is discarded.
func (h *History) Push(name string) bool {
	if name == h.Current() {
		return false
	}
	h.TruncateForward()
	h.entries = append(h.entries, name)
	h.cursor++
	h.evict()
	return true
}

// TruncateForward drops every entry after the cursor.
func (h *History) TruncateForward() {
	h.entries = h.entries[:h.cursor+1]
}

// Undo moves the cursor back one entry and returns the new current entry.
func (h *History) Undo() (string, bool) {
	if !h.CanUndo() {
		return h.Current(), false
	}
	h.cursor--
	return h.Current(), true
}

// Redo moves the cursor forward one entry and returns the new current entry.
func (h *History) Redo() (string, bool) {
	if !h.CanRedo() {
		return h.Current(), false
	}
	h.cursor++
	return h.Current(), true
}

// evict drops the oldest non-root entries once the stack exceeds limit.
func (h *History) evict() {
	if h.limit < 2 {
		return
	}
	for len(h.entries) > h.limit {
		h.entries = append(h.entries[:1], h.entries[2:]...)
		h.cursor--
	}
}
