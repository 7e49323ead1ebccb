// Package tui is a terminal front end over the portfolio engine.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/ziadkadry99/showcase/internal/casestudy"
	"github.com/ziadkadry99/showcase/internal/catalog"
	"github.com/ziadkadry99/showcase/internal/notify"
	"github.com/ziadkadry99/showcase/internal/portfolio"
)

// Options configures the browser.
type Options struct {
	Title        string
	Mode         portfolio.Mode
	ItemsPerPage int
	HistoryLimit int
	SearchDelay  time.Duration
	ToastTTL     time.Duration
}

// searchMsg carries a settled search term. Stale messages are identified
// by seq and dropped.
type searchMsg struct {
	seq  int
	term string
}

type toastExpiredMsg struct{ id string }

// Model is the bubbletea model for `showcase browse`.
type Model struct {
	opts    Options
	cat     *catalog.Catalog
	studies *casestudy.Library
	engine  *portfolio.Engine
	snap    portfolio.Snapshot
	filters []string
	titles  []string
	notices *notify.Center

	input     textinput.Model
	searching bool
	searchSeq int

	cursor int
	detail *casestudy.Study
	toast  *notify.Toast
	width  int
}

// New creates a Model over cat. studies may be nil.
func New(cat *catalog.Catalog, studies *casestudy.Library, opts Options) Model {
	if opts.Title == "" {
		opts.Title = "Portfolio"
	}
	if studies == nil {
		studies = casestudy.NewLibrary(nil)
	}

	input := textinput.New()
	input.Placeholder = "Search projects..."
	input.Prompt = "/ "
	input.CharLimit = 80
	input.Width = 40

	st := portfolio.NewStateWithHistory(opts.Mode, opts.ItemsPerPage, opts.HistoryLimit)
	m := Model{
		opts:    opts,
		cat:     cat,
		studies: studies,
		engine:  portfolio.NewEngine(cat, st),
		filters: []string{portfolio.FilterAll},
		notices: notify.NewCenter(opts.ToastTTL),
		input:   input,
		width:   80,
	}
	for _, c := range cat.Categories() {
		if c != portfolio.FilterAll {
			m.filters = append(m.filters, c)
		}
	}
	for _, it := range cat.Items() {
		m.titles = append(m.titles, it.Title)
	}
	m.snap = m.engine.Last()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Snapshot returns the snapshot currently on screen.
func (m Model) Snapshot() portfolio.Snapshot { return m.snap }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if !m.studies.Available() {
		return func() tea.Msg { return m.notices.Toast(notify.LevelError, casestudy.UnavailableMessage) }
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case searchMsg:
		if msg.seq == m.searchSeq {
			m.apply(m.engine.SetSearchTerm(msg.term))
		}
		return m, nil

	case notify.Toast:
		return m.showToast(msg)

	case toastExpiredMsg:
		if m.toast != nil && m.toast.ID == msg.id {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.detail != nil {
			switch msg.String() {
			case "esc", "enter", "q":
				m.detail = nil
			}
			return m, nil
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.apply(m.engine.SetFilter(m.nextFilter(1)))
	case "shift+tab":
		m.apply(m.engine.SetFilter(m.nextFilter(-1)))
	case "/":
		m.searching = true
		return m, m.input.Focus()
	case "m", "n":
		m.apply(m.engine.AdvancePage())
	case "p":
		m.apply(m.engine.PreviousPage())
	case "ctrl+z", "u":
		if snap, ok := m.engine.Undo(); ok {
			m.apply(snap)
		}
	case "ctrl+y", "r":
		if snap, ok := m.engine.Redo(); ok {
			m.apply(snap)
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.snap.VisibleIDs)-1 {
			m.cursor++
		}
	case "enter":
		return m.open()
	case "esc":
		if m.snap.SearchTerm != "" {
			m.input.SetValue("")
			m.searchSeq++
			m.apply(m.engine.SetSearchTerm(""))
		}
	}
	return m, nil
}

// updateSearch feeds keys to the search input. Leaving the input applies
// the term immediately instead of waiting for the debounce.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "tab":
		m.searching = false
		m.input.Blur()
		m.searchSeq++
		m.apply(m.engine.SetSearchTerm(m.input.Value()))
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	m.searchSeq++
	return m, tea.Batch(cmd, m.scheduleSearch())
}

func (m Model) scheduleSearch() tea.Cmd {
	msg := searchMsg{seq: m.searchSeq, term: m.input.Value()}
	if m.opts.SearchDelay <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(m.opts.SearchDelay, func(time.Time) tea.Msg { return msg })
}

func (m Model) open() (tea.Model, tea.Cmd) {
	if len(m.snap.VisibleIDs) == 0 {
		return m, nil
	}
	id := m.snap.VisibleIDs[m.cursor]
	st, err := m.studies.Get(id)
	switch {
	case errors.Is(err, casestudy.ErrUnavailable):
		return m.showToast(m.notices.Toast(notify.LevelError, casestudy.UnavailableMessage))
	case err != nil:
		return m.showToast(m.notices.Toast(notify.LevelInfo, fmt.Sprintf("No case study for %q yet.", id)))
	}
	m.detail = &st
	return m, nil
}

func (m Model) showToast(t notify.Toast) (tea.Model, tea.Cmd) {
	m.toast = &t
	id := t.ID
	return m, tea.Tick(t.TTL, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

// apply shows snap and keeps the cursor on a visible row.
func (m *Model) apply(snap portfolio.Snapshot) {
	m.snap = snap
	if m.cursor >= len(snap.VisibleIDs) {
		m.cursor = len(snap.VisibleIDs) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) nextFilter(step int) string {
	cur := 0
	for i, f := range m.filters {
		if f == m.snap.ActiveFilter {
			cur = i
			break
		}
	}
	n := len(m.filters)
	return m.filters[((cur+step)%n+n)%n]
}

func (m Model) suggestions() []string {
	if m.snap.SearchTerm == "" {
		return nil
	}
	var out []string
	for _, match := range fuzzy.Find(m.snap.SearchTerm, m.titles) {
		if len(out) == 3 {
			break
		}
		out = append(out, match.Str)
	}
	return out
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.opts.Title))
	b.WriteByte('\n')

	if m.detail != nil {
		b.WriteString(m.detailView())
		b.WriteString(m.toastView())
		return b.String()
	}

	for _, f := range m.filters {
		label := f
		if f == portfolio.FilterAll {
			label = "All"
		}
		if f == m.snap.ActiveFilter {
			b.WriteString(activeFilterStyle.Render(label))
		} else {
			b.WriteString(filterStyle.Render(label))
		}
	}
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	} else if m.snap.SearchTerm != "" {
		b.WriteString(statusStyle.Render("search: " + m.snap.SearchTerm))
		b.WriteString("\n\n")
	}

	for i, id := range m.snap.VisibleIDs {
		it, _ := m.cat.Lookup(id)
		marker, style := "  ", cardTitleStyle
		if i == m.cursor {
			marker, style = "▸ ", selectedStyle
		}
		b.WriteString(marker + style.Render(it.Title))
		b.WriteString("  " + filterStyle.Render(strings.Join(it.Categories, ", ")))
		b.WriteByte('\n')
		if it.Description != "" {
			b.WriteString(descStyle.Render(it.Description))
			b.WriteByte('\n')
		}
	}

	if m.snap.IsEmpty {
		msg := "No projects found."
		if s := m.suggestions(); len(s) > 0 {
			msg += " Did you mean: " + strings.Join(s, ", ") + "?"
		}
		b.WriteString(emptyStyle.Render(msg))
		b.WriteByte('\n')
	}

	b.WriteString(statusStyle.Render(m.status()))
	b.WriteString(m.toastView())
	return b.String()
}

func (m Model) status() string {
	s := m.snap
	var parts []string
	parts = append(parts, fmt.Sprintf("%d of %d", len(s.VisibleIDs), s.TotalMatches))
	if s.Mode == portfolio.ModeDiscrete {
		if s.TotalPages > 0 {
			parts = append(parts, fmt.Sprintf("page %d/%d", s.Page, s.TotalPages))
		}
		parts = append(parts, "n/p pages")
	} else if s.HasMore {
		parts = append(parts, "m load more")
	}
	parts = append(parts, "tab filter", "/ search", "enter open")
	if s.CanUndo {
		parts = append(parts, "ctrl+z undo")
	}
	if s.CanRedo {
		parts = append(parts, "ctrl+y redo")
	}
	parts = append(parts, "q quit")
	return strings.Join(parts, " · ")
}

func (m Model) detailView() string {
	st := m.detail
	var b strings.Builder
	b.WriteString(cardTitleStyle.Render(st.Title) + "\n\n")
	for _, row := range [][2]string{
		{"Client", st.Client},
		{"Category", st.Category},
		{"Timeline", st.Timeline},
		{"Services", st.Services},
	} {
		if row[1] != "" {
			b.WriteString(labelStyle.Render(row[0]+": ") + row[1] + "\n")
		}
	}
	b.WriteString("\n" + labelStyle.Render("Challenge") + "\n" + st.Challenge + "\n")
	b.WriteString("\n" + labelStyle.Render("Solution") + "\n" + st.Solution + "\n")
	if len(st.Results) > 0 {
		b.WriteString("\n" + labelStyle.Render("Results") + "\n")
		for _, r := range st.Results {
			b.WriteString("• " + r + "\n")
		}
	}
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	return detailStyle.Width(width).Render(strings.TrimRight(b.String(), "\n")) + "\n" +
		statusStyle.Render("esc close")
}

func (m Model) toastView() string {
	if m.toast == nil {
		return ""
	}
	style := toastStyle
	if m.toast.Level == notify.LevelError {
		style = errorToastStyle
	}
	return "\n" + style.Render(m.toast.Message)
}
