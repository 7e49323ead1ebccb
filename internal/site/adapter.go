package site

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ziadkadry99/showcase/internal/casestudy"
	"github.com/ziadkadry99/showcase/internal/catalog"
	"github.com/ziadkadry99/showcase/internal/portfolio"
)

// DefaultGridColumns is the column count used to plan card movement.
const DefaultGridColumns = 3

// Adapter turns engine snapshots into something a presentation layer can
// draw. prev is the snapshot shown before the change; a zero prev means
// nothing was on screen.
type Adapter interface {
	Render(prev, next portfolio.Snapshot) View
}

// View is everything a page needs to redraw after a recompute.
type View struct {
	Snapshot   portfolio.Snapshot `json:"snapshot"`
	Cards      []CardView         `json:"cards"`
	EmptyState bool               `json:"empty_state"`
	LoadMore   LoadMoreView       `json:"load_more"`
	Pages      []PageButton       `json:"pages"`
	HasPrev    bool               `json:"has_prev"`
	HasNext    bool               `json:"has_next"`
	Filters    []FilterButton     `json:"filters"`
	Transition Transition         `json:"transition"`
}

// CardView is one catalog item. Every item is present; Hidden marks those
// outside the visible set.
type CardView struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	ImageURL    string   `json:"image_url"`
	SrcSet      string   `json:"srcset"`
	Alt         string   `json:"alt"`
	Hidden      bool     `json:"hidden"`
	Slot        int      `json:"slot"`
	// Gallery is the card image's position in the lightbox gallery, or -1.
	Gallery     int      `json:"gallery"`
}

// LoadMoreView drives the incremental "load more" control.
type LoadMoreView struct {
	Visible bool `json:"visible"`
	Enabled bool `json:"enabled"`
}

// PageButton is one numbered page control in discrete mode.
type PageButton struct {
	Number int  `json:"number"`
	Active bool `json:"active"`
}

// FilterButton is one category control.
type FilterButton struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Move shifts a card that stays visible. DX and DY are the inverting
// offsets in grid cells (old position minus new position).
type Move struct {
	ID string `json:"id"`
	DX int    `json:"dx"`
	DY int    `json:"dy"`
}

// Transition is the record-then-animate plan between two snapshots.
type Transition struct {
	Moves []Move   `json:"moves"`
	Enter []string `json:"enter"`
	Leave []string `json:"leave"`
}

// GridAdapter lays cards out on a fixed-column grid.
type GridAdapter struct {
	cat     *catalog.Catalog
	columns int
}

// NewGridAdapter creates an adapter over cat. Non-positive columns use
// DefaultGridColumns.
func NewGridAdapter(cat *catalog.Catalog, columns int) *GridAdapter {
	if columns < 1 {
		columns = DefaultGridColumns
	}
	return &GridAdapter{cat: cat, columns: columns}
}

// Render implements Adapter.
func (a *GridAdapter) Render(prev, next portfolio.Snapshot) View {
	slots := slotIndex(next.VisibleIDs)

	v := View{
		Snapshot:   next,
		Cards:      make([]CardView, 0, a.cat.Len()),
		EmptyState: next.IsEmpty,
		Pages:      []PageButton{},
		Filters:    a.filters(next.ActiveFilter),
		Transition: a.Plan(prev, next),
	}

	gallery := 0
	for _, it := range a.cat.Items() {
		slot, ok := slots[it.ID]
		if !ok {
			slot = -1
		}
		pos := -1
		if it.Image != "" {
			pos = gallery
			gallery++
		}
		v.Cards = append(v.Cards, CardView{
			ID:          it.ID,
			Title:       it.Title,
			Description: it.Description,
			Categories:  it.Categories,
			ImageURL:    casestudy.ImageURL(it.Image, 400),
			SrcSet:      casestudy.SrcSet(it.Image),
			Alt:         it.Alt,
			Hidden:      !ok,
			Slot:        slot,
			Gallery:     pos,
		})
	}

	switch next.Mode {
	case portfolio.ModeDiscrete:
		for n := 1; n <= next.TotalPages; n++ {
			v.Pages = append(v.Pages, PageButton{Number: n, Active: n == next.Page})
		}
		v.HasPrev = next.Page > 1
		v.HasNext = next.Page < next.TotalPages
	default:
		v.LoadMore = LoadMoreView{
			Visible: next.HasMore,
			Enabled: next.HasMore,
		}
	}
	return v
}

// Plan computes card movement between two snapshots.
func (a *GridAdapter) Plan(prev, next portfolio.Snapshot) Transition {
	t := Transition{Moves: []Move{}, Enter: []string{}, Leave: []string{}}
	before := slotIndex(prev.VisibleIDs)
	after := slotIndex(next.VisibleIDs)

	for _, id := range next.VisibleIDs {
		from, ok := before[id]
		if !ok {
			t.Enter = append(t.Enter, id)
			continue
		}
		to := after[id]
		if from == to {
			continue
		}
		t.Moves = append(t.Moves, Move{
			ID: id,
			DX: from%a.columns - to%a.columns,
			DY: from/a.columns - to/a.columns,
		})
	}
	for _, id := range prev.VisibleIDs {
		if _, ok := after[id]; !ok {
			t.Leave = append(t.Leave, id)
		}
	}
	return t
}

func (a *GridAdapter) filters(active string) []FilterButton {
	cats := a.cat.Categories()
	// Casers are stateful; one per call keeps Render safe across connections.
	title := cases.Title(language.English)
	out := make([]FilterButton, 0, len(cats)+1)
	out = append(out, FilterButton{Name: portfolio.FilterAll, Label: "All", Active: active == portfolio.FilterAll})
	for _, c := range cats {
		if c == portfolio.FilterAll {
			continue
		}
		out = append(out, FilterButton{Name: c, Label: title.String(c), Active: active == c})
	}
	return out
}

func slotIndex(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}
