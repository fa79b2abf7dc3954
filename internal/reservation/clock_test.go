package reservation

import (
	"sync"
	"time"
)

// mockClock is a manually advanced clock for deterministic expiry tests.
type mockClock struct {
	mu   sync.Mutex
	now  time.Time
	tick chan time.Time
}

func newMockClock(start time.Time) *mockClock {
	return &mockClock{
		now:  start,
		tick: make(chan time.Time, 1),
	}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Tick delivers one tick to whoever holds the mock ticker.
func (c *mockClock) Tick() {
	c.tick <- c.Now()
}

func (c *mockClock) NewTicker(time.Duration) Ticker {
	return &mockTicker{ch: c.tick}
}

type mockTicker struct {
	ch chan time.Time
}

func (t *mockTicker) Chan() <-chan time.Time {
	return t.ch
}

func (t *mockTicker) Stop() {}
