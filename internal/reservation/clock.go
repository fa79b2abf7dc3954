package reservation

import "time"

// Clock abstracts time so TTL and expiry behavior is deterministic in tests.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// Ticker wraps time.Ticker for mocking.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

type standardClock struct{}

// NewStandardClock returns a Clock backed by the time package.
func NewStandardClock() Clock {
	return standardClock{}
}

func (standardClock) Now() time.Time {
	return time.Now()
}

func (standardClock) NewTicker(d time.Duration) Ticker {
	return &standardTicker{ticker: time.NewTicker(d)}
}

type standardTicker struct {
	ticker *time.Ticker
}

func (t *standardTicker) Chan() <-chan time.Time {
	return t.ticker.C
}

func (t *standardTicker) Stop() {
	t.ticker.Stop()
}
