package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CookieName holds the anonymous session id.
const CookieName = "showcase_session"

type ctxKey struct{}

// Middleware ensures every request carries a session id, issuing a new
// cookie when the client has none.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(CookieName); err == nil {
			if _, perr := uuid.Parse(c.Value); perr == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// ID returns the session id attached by Middleware, or "".
func ID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// RegisterRoutes mounts page-state endpoints under /api/session.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/session", func(r chi.Router) {
		r.Use(Middleware)
		r.Get("/", handleGet(store))
		r.Put("/", handlePut(store))
		r.Delete("/", handleDelete(store))
	})
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			http.Error(w, "path is required", http.StatusBadRequest)
			return
		}

		st, err := store.Get(r.Context(), ID(r.Context()), path)
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusOK, PageState{SessionID: ID(r.Context()), Path: path, Page: 1})
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, st)
	}
}

func handlePut(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Path    string `json:"path"`
			Page    int    `json:"page"`
			ScrollY int    `json:"scroll_y"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Path == "" {
			http.Error(w, "path is required", http.StatusBadRequest)
			return
		}

		st := PageState{
			SessionID: ID(r.Context()),
			Path:      req.Path,
			Page:      req.Page,
			ScrollY:   req.ScrollY,
		}
		if err := store.Save(r.Context(), st); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		saved, err := store.Get(r.Context(), st.SessionID, st.Path)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, saved)
	}
}

func handleDelete(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		err := store.Delete(r.Context(), ID(r.Context()), path)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// PruneLoop deletes states older than maxAge every interval until ctx is done.
func PruneLoop(ctx context.Context, store *Store, interval, maxAge time.Duration, logf func(string, ...any)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.Prune(ctx, time.Now().Add(-maxAge))
			if err != nil {
				logf("session: prune failed: %v", err)
				continue
			}
			if n > 0 {
				logf("session: pruned %d stale page states", n)
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
