package ratelimit

import (
	"sync"
	"time"
)

// SlidingWindowCounter approximates a rolling window limit with two fixed
// windows: the effective count is the current count plus the previous
// count weighted by how much of the previous window still overlaps.
//
// A nil counter is disabled and admits everything.
type SlidingWindowCounter struct {
	mu          sync.Mutex
	curr        int
	prev        int
	start       time.Time
	window      time.Duration
	maxRequests int
}

// NewSlidingWindowCounter returns nil when maxRequests <= 0.
func NewSlidingWindowCounter(maxRequests int, window time.Duration) *SlidingWindowCounter {
	if maxRequests <= 0 {
		return nil
	}
	return &SlidingWindowCounter{start: time.Now(), window: window, maxRequests: maxRequests}
}

// rotate must be called with mu held.
func (c *SlidingWindowCounter) rotate() {
	elapsed := time.Since(c.start)
	if elapsed < c.window {
		return
	}
	passed := int(elapsed / c.window)
	if passed == 1 {
		c.prev = c.curr
	} else {
		c.prev = 0
	}
	c.curr = 0
	c.start = c.start.Add(time.Duration(passed) * c.window)
}

// effective must be called with mu held.
func (c *SlidingWindowCounter) effective() float64 {
	overlap := float64(c.window-time.Since(c.start)) / float64(c.window)
	overlap = min(max(overlap, 0), 1)
	return float64(c.curr) + float64(c.prev)*overlap
}

// Check reports whether one more request fits.
func (c *SlidingWindowCounter) Check() bool {
	if c == nil {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rotate()
	return c.effective() < float64(c.maxRequests)
}

// Consume counts one request if it still fits.
func (c *SlidingWindowCounter) Consume() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rotate()
	if c.effective() < float64(c.maxRequests) {
		c.curr++
	}
}

// Remaining returns the approximate quota left, or -1 when disabled.
func (c *SlidingWindowCounter) Remaining() int {
	if c == nil {
		return -1
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rotate()
	return max(int(float64(c.maxRequests)-c.effective()), 0)
}

// Idle reports whether nothing was counted in either window.
func (c *SlidingWindowCounter) Idle() bool {
	if c == nil {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rotate()
	return c.curr == 0 && c.prev == 0
}

// Release uncounts one request from the current window.
func (c *SlidingWindowCounter) Release() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rotate()
	if c.curr > 0 {
		c.curr--
	}
}
