package site

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"
	"golang.org/x/time/rate"

	"github.com/ziadkadry99/showcase/internal/casestudy"
	"github.com/ziadkadry99/showcase/internal/catalog"
	"github.com/ziadkadry99/showcase/internal/notify"
	"github.com/ziadkadry99/showcase/internal/portfolio"
	"github.com/ziadkadry99/showcase/internal/session"
)

// DataUnavailableMessage is shown when case-study data failed to load.
const DataUnavailableMessage = casestudy.UnavailableMessage

// StudiesReloadedMessage is broadcast when case studies recover after a
// failed load.
const StudiesReloadedMessage = "Project data loaded. Case studies are available again."

// DefaultStudyRetry is the minimum gap between case-study reload attempts.
const DefaultStudyRetry = 30 * time.Second

// maxSuggestions bounds the "did you mean" list on an empty result.
const maxSuggestions = 3

// Options configures a Site.
type Options struct {
	Title        string
	SiteDir      string
	Mode         portfolio.Mode
	ItemsPerPage int
	HistoryLimit int
	GridColumns  int
	SearchDelay  time.Duration
	StudyRetry   time.Duration

	CacheName      string
	CacheInclude   []string
	CacheExclude   []string
	CacheExtra     []string
	CacheVersioned bool
}

// Site serves the portfolio listing over HTTP and websockets.
type Site struct {
	opts     Options
	cat      *catalog.Catalog
	studies  *casestudy.Library
	renderer *casestudy.Renderer
	sessions *session.Store
	notices  *notify.Center
	adapter  *GridAdapter
	tmpl     *template.Template
	titles   []string

	reloadMu sync.Mutex
	retry    *rate.Limiter
}

// New creates a Site. sessions may be nil, in which case page state is not
// persisted.
func New(opts Options, cat *catalog.Catalog, studies *casestudy.Library, sessions *session.Store, notices *notify.Center) (*Site, error) {
	if opts.Title == "" {
		opts.Title = "Portfolio"
	}
	if opts.ItemsPerPage < 1 {
		opts.ItemsPerPage = 20
	}
	if studies == nil {
		studies = casestudy.NewLibrary(nil)
	}
	if notices == nil {
		notices = notify.NewCenter(0)
	}
	if opts.StudyRetry <= 0 {
		opts.StudyRetry = DefaultStudyRetry
	}

	tmpl, err := template.New("page").Funcs(templateFuncs).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	s := &Site{
		opts:     opts,
		cat:      cat,
		studies:  studies,
		renderer: casestudy.NewRenderer(),
		sessions: sessions,
		notices:  notices,
		adapter:  NewGridAdapter(cat, opts.GridColumns),
		tmpl:     tmpl,
		retry:    rate.NewLimiter(rate.Every(opts.StudyRetry), 1),
	}
	for _, it := range cat.Items() {
		s.titles = append(s.titles, it.Title)
	}
	return s, nil
}

// Adapter returns the grid adapter used for views.
func (s *Site) Adapter() *GridAdapter { return s.adapter }

// NewEngine returns a fresh engine in the initial state.
func (s *Site) NewEngine() *portfolio.Engine {
	st := portfolio.NewStateWithHistory(s.opts.Mode, s.opts.ItemsPerPage, s.opts.HistoryLimit)
	return portfolio.NewEngine(s.cat, st)
}

// engineFromQuery builds an engine for a stateless request. savedPage is
// used when the query carries no page.
func (s *Site) engineFromQuery(q url.Values, savedPage int) *portfolio.Engine {
	e := s.NewEngine()
	if f := q.Get("filter"); f != "" {
		e.SetFilter(f)
	}
	if term := q.Get("q"); term != "" {
		e.SetSearchTerm(term)
	}
	page := savedPage
	if p := q.Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			page = n
		}
	}
	if page > 1 {
		e.Restore(page)
	}
	return e
}

// savedPage returns the persisted page for the request's session, or 0.
func (s *Site) savedPage(ctx context.Context, path string) (page, scrollY int) {
	if s.sessions == nil {
		return 0, 0
	}
	st, err := s.sessions.Get(ctx, session.ID(ctx), path)
	if err != nil {
		return 0, 0
	}
	return st.Page, st.ScrollY
}

// Suggestions returns catalog titles that fuzzily match term, best first.
func (s *Site) Suggestions(term string) []string {
	if term == "" || len(s.titles) == 0 {
		return nil
	}
	matches := fuzzy.Find(term, s.titles)
	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// unavailableToast builds the notice sent when study data is missing.
func (s *Site) unavailableToast() notify.Toast {
	return s.notices.Toast(notify.LevelError, DataUnavailableMessage)
}

// retryStudies reloads case studies that failed to load, at most once per
// StudyRetry. A recovery is announced to every live page. It reports
// whether studies are available afterwards.
func (s *Site) retryStudies(ctx context.Context) bool {
	if s.studies.Available() {
		return true
	}
	if !s.studies.HasSource() {
		return false
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()
	if s.studies.Available() {
		return true
	}
	if !s.retry.Allow() {
		return false
	}
	if err := s.studies.Reload(ctx); err != nil {
		log.Printf("site: reload case studies: %v", err)
		return false
	}
	log.Printf("site: case studies reloaded (%d)", s.studies.Len())
	s.notices.Push(notify.LevelSuccess, StudiesReloadedMessage)
	return true
}
