package site

import (
	"strconv"

	"github.com/ziadkadry99/showcase/internal/notify"
	"github.com/ziadkadry99/showcase/internal/portfolio"
)

// linker builds the href for a listing state.
type linker func(filter, term string, page int) string

// pageData holds the data passed to the HTML template.
type pageData struct {
	Title            string
	BasePath         string
	View             View
	Filters          []linkedFilter
	Pages            []linkedPage
	LoadMoreHref     string
	PrevHref         string
	NextHref         string
	SearchTerm       string
	Suggestions      []string
	Live             bool
	ScrollY          int
	StudiesAvailable bool
	Toast            *notify.Toast
	ConfigJSON       map[string]any
}

type linkedFilter struct {
	FilterButton
	Href string
}

type linkedPage struct {
	PageButton
	Href string
}

// pageData renders snap and attaches links built by link.
func (s *Site) pageData(snap portfolio.Snapshot, link linker, basePath string) pageData {
	view := s.adapter.Render(portfolio.Snapshot{}, snap)
	d := pageData{
		Title:      s.opts.Title,
		BasePath:   basePath,
		View:       view,
		SearchTerm: snap.SearchTerm,
		ConfigJSON: map[string]any{
			"search_delay_ms": s.opts.SearchDelay.Milliseconds(),
			"mode":            snap.Mode,
		},
	}

	for _, f := range view.Filters {
		d.Filters = append(d.Filters, linkedFilter{FilterButton: f, Href: link(f.Name, snap.SearchTerm, 1)})
	}
	for _, p := range view.Pages {
		d.Pages = append(d.Pages, linkedPage{PageButton: p, Href: link(snap.ActiveFilter, snap.SearchTerm, p.Number)})
	}
	if view.LoadMore.Visible {
		d.LoadMoreHref = link(snap.ActiveFilter, snap.SearchTerm, snap.Page+1)
	}
	if view.HasPrev {
		d.PrevHref = link(snap.ActiveFilter, snap.SearchTerm, snap.Page-1)
	}
	if view.HasNext {
		d.NextHref = link(snap.ActiveFilter, snap.SearchTerm, snap.Page+1)
	}
	if snap.IsEmpty {
		d.Suggestions = s.Suggestions(snap.SearchTerm)
	}
	return d
}

func itoa(n int) string { return strconv.Itoa(n) }
