package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ziadkadry99/showcase/internal/casestudy"
	"github.com/ziadkadry99/showcase/internal/catalog"
	"github.com/ziadkadry99/showcase/internal/notify"
	"github.com/ziadkadry99/showcase/internal/portfolio"
)

// Compile-time check: Model must satisfy tea.Model.
var _ tea.Model = Model{}

func testCatalog() *catalog.Catalog {
	item := func(id, cat, title string) catalog.Item {
		return catalog.Item{ID: id, Categories: []string{cat}, Title: title, Description: title + " description"}
	}
	return catalog.New([]catalog.Item{
		item("b1", "branding", "Coffee Identity"),
		item("w1", "web", "Storefront"),
		item("m1", "marketing", "Spring Campaign"),
		item("w2", "web", "Booking App"),
		item("b2", "branding", "Studio Rebrand"),
	})
}

func loadedLibrary(t *testing.T) *casestudy.Library {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	data := `{"w1": {"title": "Storefront", "client": "Acme", "challenge": "Old checkout.", "solution": "New one.", "results": ["+30% conversion"]}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	lib := casestudy.NewLibrary(casestudy.NewSource(path))
	if err := lib.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	return lib
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestTabCyclesFilters(t *testing.T) {
	m := New(testCatalog(), nil, Options{ItemsPerPage: 10})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.Snapshot().ActiveFilter; got != "branding" {
		t.Errorf("after tab: %q, want branding", got)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.Snapshot().ActiveFilter; got != "marketing" {
		t.Errorf("after shift+tab twice: %q, want marketing (wraps)", got)
	}
}

func TestLoadMoreAndPaging(t *testing.T) {
	m := New(testCatalog(), nil, Options{ItemsPerPage: 2})
	m = press(t, m, runes("m"))
	if got := len(m.Snapshot().VisibleIDs); got != 4 {
		t.Errorf("after load more: %d visible, want 4", got)
	}

	d := New(testCatalog(), nil, Options{Mode: portfolio.ModeDiscrete, ItemsPerPage: 2})
	d = press(t, d, runes("n"), runes("n"), runes("n"))
	if got := d.Snapshot().Page; got != 3 {
		t.Errorf("page = %d, want 3 (clamped)", got)
	}
	d = press(t, d, runes("p"))
	if got := strings.Join(d.Snapshot().VisibleIDs, ","); got != "m1,w2" {
		t.Errorf("page 2 = %s, want m1,w2", got)
	}
	if !strings.Contains(d.View(), "page 2/3") {
		t.Error("status should show the page counter")
	}
}

func TestUndoRedo(t *testing.T) {
	m := New(testCatalog(), nil, Options{ItemsPerPage: 10})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	if m.Snapshot().ActiveFilter != "web" {
		t.Fatalf("setup: filter = %q", m.Snapshot().ActiveFilter)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if m.Snapshot().ActiveFilter != "branding" {
		t.Errorf("undo: %q, want branding", m.Snapshot().ActiveFilter)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ}, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if m.Snapshot().ActiveFilter != portfolio.FilterAll {
		t.Errorf("undo past root: %q, want all", m.Snapshot().ActiveFilter)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if m.Snapshot().ActiveFilter != "branding" {
		t.Errorf("redo: %q, want branding", m.Snapshot().ActiveFilter)
	}
}

func TestSearchIsDebounced(t *testing.T) {
	m := New(testCatalog(), nil, Options{ItemsPerPage: 10, SearchDelay: time.Hour})
	m = press(t, m, runes("/"))
	if !m.searching {
		t.Fatal("slash should focus the search input")
	}

	next, cmd := m.Update(runes("b"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("typing should schedule a search")
	}
	stale := searchMsg{seq: m.searchSeq, term: "b"}
	m = press(t, m, runes("o"))
	if m.Snapshot().SearchTerm != "" {
		t.Error("search should wait for the debounce")
	}

	next, _ = m.Update(stale)
	m = next.(Model)
	if m.Snapshot().SearchTerm != "" {
		t.Error("stale search should be dropped")
	}

	next, _ = m.Update(searchMsg{seq: m.searchSeq, term: "bo"})
	m = next.(Model)
	if got := strings.Join(m.Snapshot().VisibleIDs, ","); got != "w2" {
		t.Errorf("visible = %s, want w2", got)
	}
}

func TestLeavingSearchAppliesImmediately(t *testing.T) {
	m := New(testCatalog(), nil, Options{ItemsPerPage: 10, SearchDelay: time.Hour})
	m = press(t, m, runes("/"), runes("s"), runes("t"), runes("o"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.searching {
		t.Error("enter should leave the search input")
	}
	if got := strings.Join(m.Snapshot().VisibleIDs, ","); got != "w1" {
		t.Errorf("visible = %s, want w1", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Snapshot().SearchTerm != "" || len(m.Snapshot().VisibleIDs) != 5 {
		t.Errorf("esc should clear the search: %+v", m.Snapshot())
	}
}

func TestEmptyStateSuggestions(t *testing.T) {
	m := New(testCatalog(), nil, Options{ItemsPerPage: 10})
	next, _ := m.Update(searchMsg{seq: 0, term: "strfrnt"})
	m = next.(Model)
	view := m.View()
	if !strings.Contains(view, "No projects found.") || !strings.Contains(view, "Storefront") {
		t.Errorf("empty view should suggest Storefront:\n%s", view)
	}
}

func TestOpenDetail(t *testing.T) {
	m := New(testCatalog(), loadedLibrary(t), Options{ItemsPerPage: 10})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.detail == nil || m.detail.Client != "Acme" {
		t.Fatalf("enter should open w1's study, got %+v", m.detail)
	}
	if !strings.Contains(m.View(), "+30% conversion") {
		t.Error("detail view should list results")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.detail != nil {
		t.Error("esc should close the detail")
	}

	// b1 has no study.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.detail != nil || m.toast == nil || m.toast.Level != notify.LevelInfo {
		t.Errorf("missing study should toast, detail=%v toast=%v", m.detail, m.toast)
	}
}

func TestUnavailableStudiesToast(t *testing.T) {
	m := New(testCatalog(), nil, Options{ItemsPerPage: 10})
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init should report unavailable studies")
	}
	next, expire := m.Update(cmd())
	m = next.(Model)
	if m.toast == nil || m.toast.Message != casestudy.UnavailableMessage {
		t.Fatalf("toast = %+v", m.toast)
	}
	if expire == nil {
		t.Fatal("toast should schedule its expiry")
	}

	next, _ = m.Update(toastExpiredMsg{id: m.toast.ID})
	m = next.(Model)
	if m.toast != nil {
		t.Error("toast should clear on expiry")
	}
}

func TestQuit(t *testing.T) {
	m := New(testCatalog(), nil, Options{})
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}
