package site

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/showcase/internal/assets"
	"github.com/ziadkadry99/showcase/internal/casestudy"
	"github.com/ziadkadry99/showcase/internal/notify"
	"github.com/ziadkadry99/showcase/internal/portfolio"
	"github.com/ziadkadry99/showcase/internal/session"
)

// RegisterRoutes mounts the portfolio routes. api carries request/response
// routes; streams carries the websocket endpoint.
func (s *Site) RegisterRoutes(api, streams chi.Router) {
	api.Group(func(r chi.Router) {
		r.Use(session.Middleware)
		r.Get("/", s.handleIndex)
	})
	api.Get("/api/portfolio", s.handlePortfolio)
	api.Get("/api/case-studies/{id}", s.handleCaseStudy)
	api.Get("/sw.js", s.handleServiceWorker)
	if s.opts.SiteDir != "" {
		api.Handle("/*", http.FileServer(http.Dir(s.opts.SiteDir)))
	}

	streams.With(session.Middleware).Get("/ws/portfolio", s.handleLive)
}

// portfolioResponse is the JSON body for /api/portfolio.
type portfolioResponse struct {
	View        View     `json:"view"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (s *Site) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	e := s.engineFromQuery(r.URL.Query(), 0)
	snap := e.Last()

	resp := portfolioResponse{View: s.adapter.Render(portfolio.Snapshot{}, snap)}
	if snap.IsEmpty {
		resp.Suggestions = s.Suggestions(snap.SearchTerm)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Site) handleIndex(w http.ResponseWriter, r *http.Request) {
	saved, scrollY := s.savedPage(r.Context(), r.URL.Path)
	e := s.engineFromQuery(r.URL.Query(), saved)
	snap := e.Last()

	data := s.pageData(snap, queryLinker, "")
	data.Live = true
	data.ScrollY = scrollY
	data.StudiesAvailable = s.retryStudies(r.Context())
	if !data.StudiesAvailable {
		t := s.unavailableToast()
		data.Toast = &t
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		log.Printf("site: render index: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// caseStudyError is returned when a study cannot be shown.
type caseStudyError struct {
	Error string        `json:"error"`
	Toast *notify.Toast `json:"toast,omitempty"`
}

func (s *Site) handleCaseStudy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.retryStudies(r.Context())

	detail, err := s.renderer.Detail(s.studies, id)
	switch {
	case errors.Is(err, casestudy.ErrUnavailable):
		t := s.unavailableToast()
		writeJSON(w, http.StatusServiceUnavailable, caseStudyError{Error: err.Error(), Toast: &t})
		return
	case errors.Is(err, casestudy.ErrNotFound):
		writeJSON(w, http.StatusNotFound, caseStudyError{Error: "not found"})
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Site) handleServiceWorker(w http.ResponseWriter, r *http.Request) {
	js, err := s.ServiceWorker()
	if err != nil {
		log.Printf("site: service worker: %v", err)
		http.Error(w, "service worker unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(js)
}

// ServiceWorker renders the cache-first worker for the site directory.
func (s *Site) ServiceWorker() ([]byte, error) {
	if s.opts.SiteDir == "" {
		return assets.ServiceWorker(s.opts.CacheName, append([]string{"./"}, s.opts.CacheExtra...))
	}
	if _, err := os.Stat(s.opts.SiteDir); err != nil {
		return nil, err
	}
	return assets.Build(s.opts.SiteDir, s.opts.CacheName,
		s.opts.CacheInclude, s.opts.CacheExclude, s.opts.CacheExtra, s.opts.CacheVersioned)
}

// queryLinker builds links for the live server from query parameters.
func queryLinker(filter, term string, page int) string {
	q := url.Values{}
	if filter != "" && filter != portfolio.FilterAll {
		q.Set("filter", filter)
	}
	if term != "" {
		q.Set("q", term)
	}
	if page > 1 {
		q.Set("page", itoa(page))
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
