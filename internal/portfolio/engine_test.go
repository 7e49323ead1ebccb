package portfolio

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/ziadkadry99/showcase/internal/catalog"
)

// sevenItems is the catalog from the load-more walkthrough: two branding,
// three web and two marketing projects.
func sevenItems() *catalog.Catalog {
	return catalog.New([]catalog.Item{
		{ID: "b1", Categories: []string{"branding"}, Title: "Brand One", Description: "Logo refresh"},
		{ID: "w1", Categories: []string{"web"}, Title: "Web One", Description: "Storefront"},
		{ID: "m1", Categories: []string{"marketing"}, Title: "Campaign One", Description: "Social ads"},
		{ID: "w2", Categories: []string{"web"}, Title: "Web Two", Description: "Landing page"},
		{ID: "b2", Categories: []string{"branding"}, Title: "Brand Two", Description: "Packaging"},
		{ID: "w3", Categories: []string{"web"}, Title: "Web Three", Description: "Booking portal"},
		{ID: "m2", Categories: []string{"marketing"}, Title: "Campaign Two", Description: "Email drip"},
	})
}

func numbered(n int) *catalog.Catalog {
	items := make([]catalog.Item, n)
	for i := range items {
		items[i] = catalog.Item{
			ID:         fmt.Sprintf("p%02d", i+1),
			Categories: []string{"web"},
			Title:      fmt.Sprintf("Project %d", i+1),
		}
	}
	return catalog.New(items)
}

func TestInitialSnapshot(t *testing.T) {
	e := NewEngine(sevenItems(), NewState(ModeIncremental, 6))
	snap := e.Snapshot()

	if snap.ActiveFilter != FilterAll || snap.Page != 1 {
		t.Errorf("filter=%q page=%d", snap.ActiveFilter, snap.Page)
	}
	if len(snap.VisibleIDs) != 6 || snap.TotalMatches != 7 {
		t.Errorf("visible=%d total=%d", len(snap.VisibleIDs), snap.TotalMatches)
	}
	if !snap.HasMore {
		t.Error("expected HasMore with 7 matches and 6 per page")
	}
	if snap.CanUndo || snap.CanRedo {
		t.Error("fresh engine should not allow undo/redo")
	}
}

func TestLoadMoreWalkthrough(t *testing.T) {
	e := NewEngine(sevenItems(), NewState(ModeIncremental, 6))

	snap := e.SetFilter("web")
	if !reflect.DeepEqual(snap.VisibleIDs, []string{"w1", "w2", "w3"}) {
		t.Errorf("web visible = %v", snap.VisibleIDs)
	}
	if snap.HasMore {
		t.Error("HasMore should be false for 3 web items")
	}

	snap = e.SetSearchTerm("x")
	if !snap.IsEmpty || len(snap.VisibleIDs) != 0 {
		t.Errorf("search x: empty=%v visible=%v", snap.IsEmpty, snap.VisibleIDs)
	}

	snap, moved := e.Undo()
	if !moved {
		t.Fatal("undo should move back to all")
	}
	if snap.ActiveFilter != FilterAll || snap.Page != 1 {
		t.Errorf("after undo: filter=%q page=%d", snap.ActiveFilter, snap.Page)
	}
	// The search term survives undo, so the listing stays empty.
	if !snap.IsEmpty || len(snap.VisibleIDs) != 0 || snap.SearchTerm != "x" {
		t.Errorf("after undo: empty=%v visible=%v term=%q", snap.IsEmpty, snap.VisibleIDs, snap.SearchTerm)
	}
}

func TestDiscreteWalkthrough(t *testing.T) {
	e := NewEngine(numbered(25), NewState(ModeDiscrete, 20))

	snap := e.Snapshot()
	if len(snap.VisibleIDs) != 20 || snap.TotalPages != 2 {
		t.Errorf("page 1: visible=%d pages=%d", len(snap.VisibleIDs), snap.TotalPages)
	}
	if snap.HasMore {
		t.Error("HasMore is only reported in incremental mode")
	}

	snap = e.SetPage(2)
	if len(snap.VisibleIDs) != 5 || snap.VisibleIDs[0] != "p21" {
		t.Errorf("page 2: %v", snap.VisibleIDs)
	}

	snap = e.SetPage(3)
	if snap.Page != 2 {
		t.Errorf("SetPage(3) should clamp to 2, got %d", snap.Page)
	}

	snap = e.SetPage(-4)
	if snap.Page != 1 {
		t.Errorf("SetPage(-4) should clamp to 1, got %d", snap.Page)
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	e := NewEngine(sevenItems(), NewState(ModeIncremental, 2))
	e.SetFilter("branding")
	e.SetSearchTerm("brand")

	a := e.Snapshot()
	b := e.Snapshot()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
}

func TestFilterAndSearchAreConjunctive(t *testing.T) {
	cat := sevenItems()
	filters := append([]string{FilterAll, "unknown"}, cat.Categories()...)
	terms := []string{"", "one", "two", "web", "brand", "page", "zzz"}

	for _, f := range filters {
		for _, term := range terms {
			e := NewEngine(cat, NewState(ModeIncremental, 100))
			e.SetFilter(f)
			snap := e.SetSearchTerm(term)
			for _, id := range snap.VisibleIDs {
				it, _ := cat.Lookup(id)
				if f != FilterAll && !it.HasCategory(f) {
					t.Errorf("filter %q term %q: %s fails category", f, term, id)
				}
				idx := cat.Index(id)
				if !cat.Matches(idx, catalog.Fold(term)) {
					t.Errorf("filter %q term %q: %s fails search", f, term, id)
				}
			}
		}
	}
}

func TestUnknownFilterMatchesNothing(t *testing.T) {
	e := NewEngine(sevenItems(), NewState(ModeIncremental, 6))
	snap := e.SetFilter("photography")
	if !snap.IsEmpty || snap.TotalMatches != 0 {
		t.Errorf("unknown filter: %+v", snap)
	}
}

func TestDiscretePagesPartitionMatches(t *testing.T) {
	for _, n := range []int{0, 1, 6, 7, 25, 40} {
		for _, per := range []int{1, 6, 20} {
			e := NewEngine(numbered(n), NewState(ModeDiscrete, per))
			first := e.Snapshot()
			seen := 0
			for p := 1; p <= first.TotalPages; p++ {
				snap := e.SetPage(p)
				if len(snap.VisibleIDs) > per {
					t.Errorf("n=%d per=%d page=%d: %d visible", n, per, p, len(snap.VisibleIDs))
				}
				seen += len(snap.VisibleIDs)
			}
			if seen != first.TotalMatches {
				t.Errorf("n=%d per=%d: pages cover %d of %d", n, per, seen, first.TotalMatches)
			}
		}
	}
}

func TestIncrementalVisibleBound(t *testing.T) {
	e := NewEngine(numbered(13), NewState(ModeIncremental, 5))
	for i := 0; i < 5; i++ {
		snap := e.Last()
		if len(snap.VisibleIDs) > snap.Page*5 {
			t.Errorf("page %d: %d visible", snap.Page, len(snap.VisibleIDs))
		}
		e.AdvancePage()
	}
	snap := e.Last()
	if len(snap.VisibleIDs) != 13 || snap.HasMore {
		t.Errorf("after advancing: visible=%d hasMore=%v", len(snap.VisibleIDs), snap.HasMore)
	}
}

func TestResetOnChange(t *testing.T) {
	e := NewEngine(numbered(30), NewState(ModeIncremental, 5))
	e.AdvancePage()
	e.AdvancePage()
	if e.Last().Page != 3 {
		t.Fatalf("page = %d, want 3", e.Last().Page)
	}
	if snap := e.SetSearchTerm("project"); snap.Page != 1 {
		t.Errorf("search should reset page, got %d", snap.Page)
	}

	e.AdvancePage()
	if snap := e.SetFilter("web"); snap.Page != 1 {
		t.Errorf("filter should reset page, got %d", snap.Page)
	}

	e.AdvancePage()
	if snap := e.SetFilter("web"); snap.Page != 1 {
		t.Errorf("re-selecting the active filter should still reset page, got %d", snap.Page)
	}
	if e.State().History.Len() != 2 {
		t.Errorf("re-selecting should not grow history: %v", e.State().History.Entries())
	}
}

func TestUndoRestoresAll(t *testing.T) {
	e := NewEngine(sevenItems(), NewState(ModeIncremental, 6))
	for _, f := range []string{"web", "branding", "web", "marketing", "marketing"} {
		e.SetFilter(f)
	}

	n := e.State().History.Index()
	for i := 0; i < n; i++ {
		e.Undo()
	}
	if e.Last().ActiveFilter != FilterAll {
		t.Errorf("after %d undos filter = %q", n, e.Last().ActiveFilter)
	}
	if _, moved := e.Undo(); moved {
		t.Error("undo at root should be a no-op")
	}
}

func TestRedoAfterUndo(t *testing.T) {
	e := NewEngine(sevenItems(), NewState(ModeIncremental, 6))
	e.SetFilter("web")
	e.SetFilter("branding")
	e.Undo()

	snap, moved := e.Redo()
	if !moved || snap.ActiveFilter != "branding" {
		t.Errorf("redo: moved=%v filter=%q", moved, snap.ActiveFilter)
	}

	e.Undo()
	e.SetFilter("marketing")
	if _, moved := e.Redo(); moved {
		t.Error("redo after a new selection should be a no-op")
	}
	if e.Last().ActiveFilter != "marketing" {
		t.Errorf("filter = %q", e.Last().ActiveFilter)
	}
}

func TestUndoNoOpKeepsPage(t *testing.T) {
	e := NewEngine(numbered(30), NewState(ModeIncremental, 5))
	e.AdvancePage()
	snap, moved := e.Undo()
	if moved || snap.Page != 2 {
		t.Errorf("no-op undo changed state: moved=%v page=%d", moved, snap.Page)
	}
}

func TestFilterNormalisation(t *testing.T) {
	e := NewEngine(sevenItems(), NewState(ModeIncremental, 6))
	snap := e.SetFilter("  WEB ")
	if snap.ActiveFilter != "web" || snap.TotalMatches != 3 {
		t.Errorf("filter=%q total=%d", snap.ActiveFilter, snap.TotalMatches)
	}
	snap = e.SetFilter("")
	if snap.ActiveFilter != FilterAll {
		t.Errorf("blank filter = %q, want all", snap.ActiveFilter)
	}
	snap = e.SetSearchTerm("  BRAND ")
	if snap.SearchTerm != "brand" || snap.TotalMatches != 2 {
		t.Errorf("term=%q total=%d", snap.SearchTerm, snap.TotalMatches)
	}
}

func TestEmptyCatalog(t *testing.T) {
	for _, mode := range []Mode{ModeIncremental, ModeDiscrete} {
		e := NewEngine(catalog.New(nil), NewState(mode, 6))
		snap := e.SetPage(5)
		if !snap.IsEmpty || snap.TotalMatches != 0 || snap.Page != 1 {
			t.Errorf("%s: %+v", mode, snap)
		}
		e.AdvancePage()
		e.SetFilter("web")
		e.Undo()
		e.Redo()
	}

	e := NewEngine(nil, nil)
	if snap := e.Snapshot(); !snap.IsEmpty {
		t.Error("nil catalog should be empty")
	}
}

func TestHugePageDoesNotPanic(t *testing.T) {
	st := NewState(ModeIncremental, 6)
	st.Page = math.MaxInt
	snap := Recompute(sevenItems(), st)
	if len(snap.VisibleIDs) != 7 || snap.HasMore {
		t.Errorf("visible=%d hasMore=%v", len(snap.VisibleIDs), snap.HasMore)
	}

	st.Mode = ModeDiscrete
	snap = Recompute(sevenItems(), st)
	if len(snap.VisibleIDs) != 0 {
		t.Errorf("discrete page past the end should be empty, got %v", snap.VisibleIDs)
	}
}

func TestRestore(t *testing.T) {
	inc := NewEngine(numbered(30), NewState(ModeIncremental, 5))
	if snap := inc.Restore(3); snap.Page != 3 || len(snap.VisibleIDs) != 15 {
		t.Errorf("incremental restore: page=%d visible=%d", snap.Page, len(snap.VisibleIDs))
	}
	if snap := inc.Restore(0); snap.Page != 1 {
		t.Errorf("restore 0 should clamp to 1, got %d", snap.Page)
	}

	disc := NewEngine(numbered(30), NewState(ModeDiscrete, 5))
	if snap := disc.Restore(9); snap.Page != 6 {
		t.Errorf("discrete restore should clamp to last page, got %d", snap.Page)
	}
}

func TestDiscreteAdvanceAndPrevious(t *testing.T) {
	e := NewEngine(numbered(12), NewState(ModeDiscrete, 5))
	e.AdvancePage()
	e.AdvancePage()
	snap := e.AdvancePage()
	if snap.Page != 3 {
		t.Errorf("advance should stop at the last page, got %d", snap.Page)
	}
	snap = e.PreviousPage()
	if snap.Page != 2 {
		t.Errorf("previous = %d, want 2", snap.Page)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeIncremental, "Incremental": ModeIncremental, "discrete": ModeDiscrete} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseMode("paged"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
