package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestReaperSweepsExpiredLocks(t *testing.T) {
	clock := newMockClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	m := NewManager(&memStore{}, clock)

	if _, err := m.Acquire(uuid.New(), uuid.New(), hourRange(clock, time.Hour, 2*time.Hour), time.Minute); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	reaper := NewReaper(m, 10*time.Second, clock, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reaper.Start(ctx)
	defer reaper.Stop()

	clock.Advance(2 * time.Minute)
	clock.Tick()

	// The sweep runs on the ticker goroutine; poll for the result
	deadline := time.After(2 * time.Second)
	for m.ActiveLockCount() != 0 {
		select {
		case <-deadline:
			t.Fatalf("reaper did not sweep: %d locks still active", m.ActiveLockCount())
		case <-time.After(5 * time.Millisecond):
		}
	}

	hist := m.RecentHistory(1)
	if len(hist) != 1 || hist[0].State != LockExpired {
		t.Fatalf("swept lock not in history as EXPIRED: %+v", hist)
	}
}

func TestReaperStops(t *testing.T) {
	clock := newMockClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	m := NewManager(&memStore{}, clock)

	if _, err := m.Acquire(uuid.New(), uuid.New(), hourRange(clock, time.Hour, 2*time.Hour), time.Minute); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	reaper := NewReaper(m, 10*time.Second, clock, nil)
	reaper.Start(context.Background())
	reaper.Stop()
	time.Sleep(20 * time.Millisecond)

	// The loop has exited, so this tick is never consumed and no sweep runs
	clock.Advance(2 * time.Minute)
	clock.Tick()
	time.Sleep(20 * time.Millisecond)

	if m.ActiveLockCount() != 1 {
		t.Fatalf("reaper swept after Stop: %d locks indexed", m.ActiveLockCount())
	}
}
