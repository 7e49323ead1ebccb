package schedule

import (
	"time"

	"golang.org/x/time/rate"
)

// FrameInterval is one display refresh at 60Hz.
const FrameInterval = 16 * time.Millisecond

// FrameThrottle lets at most one call through per interval and drops the
// rest. It backs scroll-position reports, which only matter at frame
// granularity.
type FrameThrottle struct {
	s rate.Sometimes
}

// NewFrameThrottle creates a throttle; a non-positive interval uses
// FrameInterval.
func NewFrameThrottle(interval time.Duration) *FrameThrottle {
	if interval <= 0 {
		interval = FrameInterval
	}
	return &FrameThrottle{s: rate.Sometimes{Interval: interval}}
}

// Do runs fn unless another call ran within the current interval.
// It reports whether fn ran.
func (t *FrameThrottle) Do(fn func()) bool {
	ran := false
	t.s.Do(func() {
		ran = true
		fn()
	})
	return ran
}
