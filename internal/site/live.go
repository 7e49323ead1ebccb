package site

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/showcase/internal/casestudy"
	"github.com/ziadkadry99/showcase/internal/lightbox"
	"github.com/ziadkadry99/showcase/internal/notify"
	"github.com/ziadkadry99/showcase/internal/portfolio"
	"github.com/ziadkadry99/showcase/internal/schedule"
	"github.com/ziadkadry99/showcase/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveRequest is the incoming websocket message format.
type liveRequest struct {
	Type    string `json:"type"` // filter, search, load_more, page, next_page, prev_page, undo, redo, scroll, open, lightbox
	Filter  string `json:"filter,omitempty"`
	Query   string `json:"query,omitempty"`
	Page    int    `json:"page,omitempty"`
	ScrollY int    `json:"scroll_y,omitempty"`
	ID      string `json:"id,omitempty"`
	Action  string `json:"action,omitempty"` // lightbox: open, single, next, prev, swipe, close
	Index   int    `json:"index,omitempty"`
	Src     string `json:"src,omitempty"`
	DX      int    `json:"dx,omitempty"`
}

// liveResponse is the outgoing websocket message format.
type liveResponse struct {
	Type        string            `json:"type"` // snapshot, study, lightbox, toast, error
	View        *View             `json:"view,omitempty"`
	Suggestions []string          `json:"suggestions,omitempty"`
	ScrollY     int               `json:"scroll_y,omitempty"`
	Study       *casestudy.Detail `json:"study,omitempty"`
	Lightbox    *lightbox.State   `json:"lightbox,omitempty"`
	Toast       *notify.Toast     `json:"toast,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// liveConn is one browser tab: its own engine, lightbox and schedulers.
type liveConn struct {
	site      *Site
	conn      *websocket.Conn
	sessionID string
	path      string

	wmu sync.Mutex // serialises writes

	mu      sync.Mutex // guards engine, shown, lb, scrollY
	engine  *portfolio.Engine
	shown   portfolio.Snapshot
	lb      *lightbox.Lightbox
	scrollY int

	search *schedule.Debouncer
	scroll *schedule.FrameThrottle
}

func (s *Site) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("site: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/"
	}

	lc := &liveConn{
		site:      s,
		conn:      conn,
		sessionID: session.ID(r.Context()),
		path:      path,
		lb:        lightbox.New(s.cat.Images()),
		search:    schedule.NewDebouncer(s.opts.SearchDelay, nil),
		scroll:    schedule.NewFrameThrottle(schedule.FrameInterval),
	}
	defer lc.search.Stop()

	// Retry before subscribing: a recovery is news only to other pages.
	available := s.retryStudies(r.Context())

	toasts, cancel := s.notices.Subscribe()
	defer cancel()
	go lc.forwardToasts(toasts)

	lc.restore(r.Context(), r.URL.Query())

	if !available {
		t := s.unavailableToast()
		lc.send(liveResponse{Type: "toast", Toast: &t})
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("site: websocket read: %v", err)
			}
			lc.persist(context.Background())
			return
		}

		var req liveRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			lc.sendError("invalid message format")
			continue
		}
		lc.handle(r.Context(), req)
	}
}

// restore builds the engine from the page's own query (filter, q, page)
// and the saved page for this session and path, then sends the first
// snapshot with the saved scroll offset.
func (lc *liveConn) restore(ctx context.Context, q url.Values) {
	page, scrollY := 0, 0
	if lc.site.sessions != nil && lc.sessionID != "" {
		if st, err := lc.site.sessions.Get(ctx, lc.sessionID, lc.path); err == nil {
			page, scrollY = st.Page, st.ScrollY
		} else if !errors.Is(err, session.ErrNotFound) {
			log.Printf("site: restore session: %v", err)
		}
	}

	lc.mu.Lock()
	lc.engine = lc.site.engineFromQuery(q, page)
	lc.scrollY = scrollY
	resp := lc.snapshotLocked(lc.engine.Last())
	lc.mu.Unlock()

	resp.ScrollY = scrollY
	lc.send(resp)
}

func (lc *liveConn) handle(ctx context.Context, req liveRequest) {
	// A pending search applies before any other action, as if the input
	// had settled.
	if req.Type != "search" && req.Type != "scroll" {
		lc.search.Flush()
	}

	switch req.Type {
	case "filter":
		lc.apply(ctx, func(e *portfolio.Engine) portfolio.Snapshot { return e.SetFilter(req.Filter) }, false)
	case "search":
		query := req.Query
		lc.search.Trigger(func() {
			lc.apply(ctx, func(e *portfolio.Engine) portfolio.Snapshot { return e.SetSearchTerm(query) }, false)
		})
	case "load_more", "next_page":
		lc.apply(ctx, func(e *portfolio.Engine) portfolio.Snapshot { return e.AdvancePage() }, true)
	case "prev_page":
		lc.apply(ctx, func(e *portfolio.Engine) portfolio.Snapshot { return e.PreviousPage() }, true)
	case "page":
		lc.apply(ctx, func(e *portfolio.Engine) portfolio.Snapshot { return e.SetPage(req.Page) }, true)
	case "undo":
		lc.apply(ctx, func(e *portfolio.Engine) portfolio.Snapshot { s, _ := e.Undo(); return s }, false)
	case "redo":
		lc.apply(ctx, func(e *portfolio.Engine) portfolio.Snapshot { s, _ := e.Redo(); return s }, false)
	case "scroll":
		lc.mu.Lock()
		lc.scrollY = req.ScrollY
		lc.mu.Unlock()
		lc.scroll.Do(func() { lc.persist(ctx) })
	case "open":
		lc.open(ctx, req.ID)
	case "lightbox":
		lc.handleLightbox(req)
	default:
		lc.sendError("unknown message type: " + req.Type)
	}
}

// apply runs op against the engine and sends the resulting view. When
// persistPage is set the new page is saved to the session store.
func (lc *liveConn) apply(ctx context.Context, op func(*portfolio.Engine) portfolio.Snapshot, persistPage bool) {
	lc.mu.Lock()
	snap := op(lc.engine)
	resp := lc.snapshotLocked(snap)
	lc.mu.Unlock()

	lc.send(resp)
	if persistPage {
		lc.persist(ctx)
	}
}

// snapshotLocked renders snap against the last view sent. lc.mu must be held.
func (lc *liveConn) snapshotLocked(snap portfolio.Snapshot) liveResponse {
	view := lc.site.adapter.Render(lc.shown, snap)
	lc.shown = snap
	resp := liveResponse{Type: "snapshot", View: &view}
	if snap.IsEmpty {
		resp.Suggestions = lc.site.Suggestions(snap.SearchTerm)
	}
	return resp
}

// persist saves the current page and scroll offset.
func (lc *liveConn) persist(ctx context.Context) {
	if lc.site.sessions == nil || lc.sessionID == "" {
		return
	}
	lc.mu.Lock()
	st := session.PageState{
		SessionID: lc.sessionID,
		Path:      lc.path,
		Page:      lc.engine.State().Page,
		ScrollY:   lc.scrollY,
	}
	lc.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := lc.site.sessions.Save(ctx, st); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("site: persist session: %v", err)
	}
}

func (lc *liveConn) open(ctx context.Context, id string) {
	lc.site.retryStudies(ctx)
	detail, err := lc.site.renderer.Detail(lc.site.studies, id)
	switch {
	case errors.Is(err, casestudy.ErrUnavailable):
		t := lc.site.unavailableToast()
		lc.send(liveResponse{Type: "toast", Toast: &t})
	case err != nil:
		lc.sendError(err.Error())
	default:
		lc.send(liveResponse{Type: "study", Study: detail})
	}
}

func (lc *liveConn) handleLightbox(req liveRequest) {
	lc.mu.Lock()
	var st lightbox.State
	switch req.Action {
	case "open":
		st = lc.lb.Open(req.Index)
	case "single":
		st = lc.lb.OpenSingle(req.Src)
	case "next":
		st = lc.lb.Next()
	case "prev":
		st = lc.lb.Prev()
	case "swipe":
		st = lc.lb.Swipe(req.DX)
	case "close":
		st = lc.lb.Close()
	default:
		lc.mu.Unlock()
		lc.sendError("unknown lightbox action: " + req.Action)
		return
	}
	lc.mu.Unlock()
	lc.send(liveResponse{Type: "lightbox", Lightbox: &st})
}

func (lc *liveConn) forwardToasts(ch <-chan notify.Toast) {
	for t := range ch {
		t := t
		lc.send(liveResponse{Type: "toast", Toast: &t})
	}
}

func (lc *liveConn) send(resp liveResponse) {
	lc.wmu.Lock()
	defer lc.wmu.Unlock()
	if err := lc.conn.WriteJSON(resp); err != nil {
		log.Printf("site: websocket write: %v", err)
	}
}

func (lc *liveConn) sendError(message string) {
	lc.send(liveResponse{Type: "error", Error: message})
}
