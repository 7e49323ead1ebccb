package casestudy

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultRelatedLimit is how many related studies a detail view lists.
const DefaultRelatedLimit = 2

// Library holds the studies fetched at startup. A failed fetch leaves the
// library empty and remembered as unavailable until Reload succeeds.
type Library struct {
	src Source

	mu      sync.RWMutex
	studies map[string]Study
	err     error
}

// NewLibrary creates an unloaded library over src.
func NewLibrary(src Source) *Library {
	return &Library{src: src, err: ErrUnavailable}
}

// Load fetches the studies once. The returned error is also kept for Err.
func (l *Library) Load(ctx context.Context) error {
	var (
		studies map[string]Study
		err     error
	)
	if l.src == nil {
		err = fmt.Errorf("no case study source configured")
	} else {
		studies, err = l.src.Fetch(ctx)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.studies = nil
		l.err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		return l.err
	}
	l.studies = studies
	l.err = nil
	return nil
}

// Reload retries the fetch.
func (l *Library) Reload(ctx context.Context) error { return l.Load(ctx) }

// HasSource reports whether the library has somewhere to load from.
func (l *Library) HasSource() bool { return l.src != nil }

// Err returns the last load error, or nil when studies are available.
func (l *Library) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

// Available reports whether the last load succeeded.
func (l *Library) Available() bool { return l.Err() == nil }

// Len returns the number of loaded studies.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.studies)
}

// Get returns the study for id.
func (l *Library) Get(id string) (Study, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.err != nil {
		return Study{}, l.err
	}
	st, ok := l.studies[id]
	if !ok {
		return Study{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return st, nil
}

// Related returns up to limit other studies in a matching category: equal,
// or either category containing the other. Results are ordered by id.
func (l *Library) Related(id string, limit int) []Study {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	cur, ok := l.studies[id]
	if !ok {
		return nil
	}

	ids := make([]string, 0, len(l.studies))
	for k := range l.studies {
		ids = append(ids, k)
	}
	sort.Strings(ids)

	var out []Study
	for _, k := range ids {
		if k == id {
			continue
		}
		other := l.studies[k]
		if !relatedCategory(cur.Category, other.Category) {
			continue
		}
		out = append(out, other)
		if len(out) == limit {
			break
		}
	}
	return out
}

func relatedCategory(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == "" || b == "" {
		return a == b
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}
