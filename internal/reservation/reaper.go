package reservation

import (
	"context"
	"log/slog"
	"time"

	"roomly/pkg/logger"
)

// Reaper is the background sweep that retires stale locks. It bounds how long
// an abandoned lock occupies the reservation set for readers; every writer
// already applies the IsLive check, so the reaper is a liveness mechanism, not
// a correctness one.
type Reaper struct {
	manager  *Manager
	interval time.Duration
	clock    Clock
	log      *logger.Logger
	done     chan struct{}
}

func NewReaper(manager *Manager, interval time.Duration, clock Clock, log *logger.Logger) *Reaper {
	if clock == nil {
		clock = NewStandardClock()
	}
	if log == nil {
		log = logger.GetDefault()
	}
	return &Reaper{
		manager:  manager,
		interval: interval,
		clock:    clock,
		log:      log,
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop. It returns immediately; the loop runs until
// Stop is called or the context is cancelled.
func (r *Reaper) Start(ctx context.Context) {
	go r.run(ctx)
	r.log.Info("lock reaper started", slog.Duration("interval", r.interval))
}

// Stop terminates the sweep loop.
func (r *Reaper) Stop() {
	close(r.done)
}

func (r *Reaper) run(ctx context.Context) {
	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			if n := r.manager.ExpireStale(); n > 0 {
				r.log.Info("expired stale locks", slog.Int("count", n))
			}
		case <-r.done:
			return
		case <-ctx.Done():
			return
		}
	}
}
