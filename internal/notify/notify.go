package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level indicates how a toast is styled.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// DefaultTTL is how long a toast stays on screen.
const DefaultTTL = 3 * time.Second

// Toast is a transient, auto-dismissing notification.
type Toast struct {
	ID        string        `json:"id"`
	Level     Level         `json:"level"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"created_at"`
	TTL       time.Duration `json:"-"`
	TTLMillis int64         `json:"ttl_ms"`
}

// Expired reports whether the toast should no longer be shown at now.
func (t Toast) Expired(now time.Time) bool {
	return !now.Before(t.CreatedAt.Add(t.TTL))
}

// Center holds active toasts and fans new ones out to subscribers.
type Center struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	toasts []Toast
	subs   map[int]chan Toast
	nextID int
}

// NewCenter creates a Center; a non-positive ttl uses DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, now: time.Now, subs: make(map[int]chan Toast)}
}

// Toast builds a toast with the center's TTL without recording or
// delivering it, for notices aimed at a single client.
func (c *Center) Toast(level Level, message string) Toast {
	return Toast{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   message,
		CreatedAt: c.now(),
		TTL:       c.ttl,
		TTLMillis: c.ttl.Milliseconds(),
	}
}

// Push records a toast and delivers it to every subscriber. Slow
// subscribers miss toasts rather than block the caller.
func (c *Center) Push(level Level, message string) Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.Toast(level, message)
	c.toasts = append(c.pruneLocked(t.CreatedAt), t)

	for _, ch := range c.subs {
		select {
		case ch <- t:
		default:
		}
	}
	return t
}

// Error is shorthand for Push(LevelError, message).
func (c *Center) Error(message string) Toast { return c.Push(LevelError, message) }

// Active returns toasts that have not expired.
func (c *Center) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toasts = c.pruneLocked(c.now())
	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

// Subscribe returns a channel of new toasts and a function that ends the
// subscription.
func (c *Center) Subscribe() (<-chan Toast, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	ch := make(chan Toast, 8)
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
}

func (c *Center) pruneLocked(now time.Time) []Toast {
	kept := c.toasts[:0]
	for _, t := range c.toasts {
		if !t.Expired(now) {
			kept = append(kept, t)
		}
	}
	return kept
}
