package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ziadkadry99/showcase/internal/db"
)

// ErrNotFound is returned when no state was saved for a session and path.
var ErrNotFound = errors.New("page state not found")

// PageState is the per-path view state restored on the next visit.
type PageState struct {
	SessionID string    `json:"session_id"`
	Path      string    `json:"path"`
	Page      int       `json:"page"`
	ScrollY   int       `json:"scroll_y"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists page state in SQLite.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Save upserts the state for (SessionID, Path). Page is clamped to 1 and
// negative scroll offsets to 0.
func (s *Store) Save(ctx context.Context, st PageState) error {
	if st.SessionID == "" || st.Path == "" {
		return fmt.Errorf("session id and path are required")
	}
	if st.Page < 1 {
		st.Page = 1
	}
	if st.ScrollY < 0 {
		st.ScrollY = 0
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO page_sessions (session_id, path, page, scroll_y, updated_at)
		VALUES (?, ?, ?, ?, datetime('now'))
		ON CONFLICT(session_id, path) DO UPDATE SET
			page = excluded.page,
			scroll_y = excluded.scroll_y,
			updated_at = excluded.updated_at`,
		st.SessionID, st.Path, st.Page, st.ScrollY,
	)
	if err != nil {
		return fmt.Errorf("saving page state: %w", err)
	}
	return nil
}

// SaveScroll updates only the scroll offset, keeping any saved page.
func (s *Store) SaveScroll(ctx context.Context, sessionID, path string, scrollY int) error {
	st, err := s.Get(ctx, sessionID, path)
	if errors.Is(err, ErrNotFound) {
		st = &PageState{SessionID: sessionID, Path: path, Page: 1}
	} else if err != nil {
		return err
	}
	st.ScrollY = scrollY
	return s.Save(ctx, *st)
}

// Get returns the saved state for sessionID and path.
func (s *Store) Get(ctx context.Context, sessionID, path string) (*PageState, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT session_id, path, page, scroll_y, updated_at
		FROM page_sessions WHERE session_id = ? AND path = ?`, sessionID, path)

	var (
		st PageState
		ts string
	)
	if err := row.Scan(&st.SessionID, &st.Path, &st.Page, &st.ScrollY, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying page state: %w", err)
	}
	st.UpdatedAt = parseTime(ts)
	return &st, nil
}

// Delete removes the saved state for sessionID and path.
func (s *Store) Delete(ctx context.Context, sessionID, path string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM page_sessions WHERE session_id = ? AND path = ?", sessionID, path)
	if err != nil {
		return fmt.Errorf("deleting page state: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Prune deletes states not updated since before cutoff and returns how
// many rows were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM page_sessions WHERE updated_at < ?", cutoff.UTC().Format(time.DateTime))
	if err != nil {
		return 0, fmt.Errorf("pruning page states: %w", err)
	}
	return res.RowsAffected()
}

func parseTime(ts string) time.Time {
	if t, err := time.Parse(time.DateTime, ts); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t
	}
	return time.Time{}
}
