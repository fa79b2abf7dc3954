package reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

// memStore is an in-memory BookingStore with an injectable failure.
type memStore struct {
	mu      sync.Mutex
	records []BookingRecord
	failErr error
}

func (s *memStore) CreateBooking(_ context.Context, rec *BookingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	s.records = append(s.records, *rec)
	return nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func newTestManager(t *testing.T) (*Manager, *memStore, *mockClock) {
	t.Helper()
	clock := newMockClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	store := &memStore{}
	return NewManager(store, clock), store, clock
}

func hourRange(clock *mockClock, startOffset, endOffset time.Duration) TimeRange {
	now := clock.Now()
	return TimeRange{Start: now.Add(startOffset), End: now.Add(endOffset)}
}

func TestAcquireRejectsOverlap(t *testing.T) {
	m, _, clock := newTestManager(t)
	room := uuid.New()

	first, err := m.Acquire(room, uuid.New(), hourRange(clock, time.Hour, 2*time.Hour), 5*time.Minute)
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	if first.State != LockActive {
		t.Fatalf("first lock state = %s, want ACTIVE", first.State)
	}

	// Overlapping attempt by anyone, including the same owner, must fail
	_, err = m.Acquire(room, first.OwnerID, hourRange(clock, 90*time.Minute, 3*time.Hour), 5*time.Minute)
	if !errors.Is(err, ErrRoomUnavailable) {
		t.Fatalf("overlapping acquire = %v, want ErrRoomUnavailable", err)
	}

	// Back-to-back range is free: intervals are half-open
	if _, err := m.Acquire(room, uuid.New(), hourRange(clock, 2*time.Hour, 3*time.Hour), 5*time.Minute); err != nil {
		t.Fatalf("adjacent acquire failed: %v", err)
	}
}

func TestAcquireConcurrentSingleWinner(t *testing.T) {
	m, _, clock := newTestManager(t)
	room := uuid.New()
	r := hourRange(clock, time.Hour, 2*time.Hour)

	const attempts = 64
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = m.Acquire(room, uuid.New(), r, 5*time.Minute)
		}(i)
	}
	wg.Wait()

	wins := 0
	for i, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrRoomUnavailable):
		default:
			t.Fatalf("attempt %d returned unexpected error: %v", i, err)
		}
	}
	if wins != 1 {
		t.Fatalf("got %d winners, want exactly 1", wins)
	}
	if m.ActiveLockCount() != 1 {
		t.Fatalf("active lock count = %d, want 1", m.ActiveLockCount())
	}
}

func TestAcquireDifferentRoomsDoNotBlock(t *testing.T) {
	m, _, clock := newTestManager(t)
	r := hourRange(clock, time.Hour, 2*time.Hour)

	if _, err := m.Acquire(uuid.New(), uuid.New(), r, 5*time.Minute); err != nil {
		t.Fatalf("room A acquire failed: %v", err)
	}
	if _, err := m.Acquire(uuid.New(), uuid.New(), r, 5*time.Minute); err != nil {
		t.Fatalf("room B acquire failed: %v", err)
	}
}

func TestAcquireValidation(t *testing.T) {
	m, _, clock := newTestManager(t)
	room := uuid.New()

	now := clock.Now()
	_, err := m.Acquire(room, uuid.New(), TimeRange{Start: now.Add(time.Hour), End: now.Add(time.Hour)}, 5*time.Minute)
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("empty range acquire = %v, want ErrInvalidTimeRange", err)
	}

	_, err = m.Acquire(room, uuid.New(), hourRange(clock, time.Hour, 2*time.Hour), 0)
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("zero ttl acquire = %v, want ErrInvalidTimeRange", err)
	}
}

func TestReleaseThenReacquire(t *testing.T) {
	m, _, clock := newTestManager(t)
	room := uuid.New()
	owner := uuid.New()
	r := hourRange(clock, time.Hour, 2*time.Hour)

	lock, err := m.Acquire(room, owner, r, 5*time.Minute)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	if err := m.Release(lock.ID, owner); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	// The range is free again immediately
	if _, err := m.Acquire(room, uuid.New(), r, 5*time.Minute); err != nil {
		t.Fatalf("re-acquire after release failed: %v", err)
	}

	// Released ids are single-use
	if err := m.Release(lock.ID, owner); !errors.Is(err, ErrLockNotFound) {
		t.Fatalf("second release = %v, want ErrLockNotFound", err)
	}
}

func TestReleaseOwnerMismatch(t *testing.T) {
	m, _, clock := newTestManager(t)
	room := uuid.New()
	owner := uuid.New()

	lock, err := m.Acquire(room, owner, hourRange(clock, time.Hour, 2*time.Hour), 5*time.Minute)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	if err := m.Release(lock.ID, uuid.New()); !errors.Is(err, ErrOwnerMismatch) {
		t.Fatalf("release by stranger = %v, want ErrOwnerMismatch", err)
	}

	// The lock is untouched and the owner can still release it
	if got, ok := m.GetLock(lock.ID); !ok || got.State != LockActive {
		t.Fatalf("lock mutated by failed release: ok=%v state=%v", ok, got)
	}
	if err := m.Release(lock.ID, owner); err != nil {
		t.Fatalf("owner release failed: %v", err)
	}
}

func TestExpiredLockFreesRange(t *testing.T) {
	m, _, clock := newTestManager(t)
	room := uuid.New()
	owner := uuid.New()
	r := hourRange(clock, time.Hour, 2*time.Hour)

	lock, err := m.Acquire(room, owner, r, 5*time.Minute)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	clock.Advance(5*time.Minute + time.Second)

	// No reaper has run, but the range is already free for others
	if _, err := m.Acquire(room, uuid.New(), r, 5*time.Minute); err != nil {
		t.Fatalf("acquire over expired lock failed: %v", err)
	}

	// The late confirm fails with the distinct expiry error
	if _, err := m.Confirm(context.Background(), lock.ID, owner); !errors.Is(err, ErrLockExpired) {
		t.Fatalf("confirm of expired lock = %v, want ErrLockExpired", err)
	}
}

func TestConfirmAfterSweepReportsExpired(t *testing.T) {
	m, _, clock := newTestManager(t)
	owner := uuid.New()

	lock, err := m.Acquire(uuid.New(), owner, hourRange(clock, time.Hour, 2*time.Hour), time.Minute)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	clock.Advance(2 * time.Minute)
	if swept := m.ExpireStale(); swept != 1 {
		t.Fatalf("ExpireStale swept %d locks, want 1", swept)
	}

	// The sweep already dropped the id from the live index. The late confirm
	// must still report expiry, not absence.
	if _, err := m.Confirm(context.Background(), lock.ID, owner); !errors.Is(err, ErrLockExpired) {
		t.Fatalf("confirm after sweep = %v, want ErrLockExpired", err)
	}

	term, ok := m.TerminalLock(lock.ID)
	if !ok {
		t.Fatal("swept lock missing from terminal lookup")
	}
	if term.State != LockExpired {
		t.Fatalf("terminal state = %v, want EXPIRED", term.State)
	}
	if term.RoomID != lock.RoomID {
		t.Fatalf("terminal lock room = %s, want %s", term.RoomID, lock.RoomID)
	}
}

func TestReleaseExpiredLockReportsNotFound(t *testing.T) {
	m, _, clock := newTestManager(t)
	owner := uuid.New()

	lock, err := m.Acquire(uuid.New(), owner, hourRange(clock, time.Hour, 2*time.Hour), time.Minute)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	clock.Advance(2 * time.Minute)

	if err := m.Release(lock.ID, owner); !errors.Is(err, ErrLockNotFound) {
		t.Fatalf("release of expired lock = %v, want ErrLockNotFound", err)
	}
}

func TestConfirmCreatesBookingAndIsSingleUse(t *testing.T) {
	m, store, clock := newTestManager(t)
	room := uuid.New()
	owner := uuid.New()
	r := hourRange(clock, time.Hour, 2*time.Hour)

	lock, err := m.Acquire(room, owner, r, 5*time.Minute)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	rec, err := m.Confirm(context.Background(), lock.ID, owner)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if rec.RoomID != room || rec.OwnerID != owner || !rec.Range.Start.Equal(r.Start) {
		t.Fatalf("booking record mismatch: %+v", rec)
	}
	if store.count() != 1 {
		t.Fatalf("store has %d records, want 1", store.count())
	}

	// Confirmed ids are single-use
	if _, err := m.Confirm(context.Background(), lock.ID, owner); !errors.Is(err, ErrLockNotFound) {
		t.Fatalf("second confirm = %v, want ErrLockNotFound", err)
	}
	if store.count() != 1 {
		t.Fatalf("second confirm wrote a record: %d", store.count())
	}

	// The confirmed booking blocks future acquires on the same range
	if _, err := m.Acquire(room, uuid.New(), r, 5*time.Minute); !errors.Is(err, ErrRoomUnavailable) {
		t.Fatalf("acquire over confirmed booking = %v, want ErrRoomUnavailable", err)
	}
}

func TestConfirmOwnerMismatch(t *testing.T) {
	m, store, clock := newTestManager(t)
	owner := uuid.New()

	lock, err := m.Acquire(uuid.New(), owner, hourRange(clock, time.Hour, 2*time.Hour), 5*time.Minute)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	if _, err := m.Confirm(context.Background(), lock.ID, uuid.New()); !errors.Is(err, ErrOwnerMismatch) {
		t.Fatalf("confirm by stranger = %v, want ErrOwnerMismatch", err)
	}
	if store.count() != 0 {
		t.Fatalf("failed confirm wrote a record")
	}

	// Still confirmable by the owner
	if _, err := m.Confirm(context.Background(), lock.ID, owner); err != nil {
		t.Fatalf("owner confirm failed: %v", err)
	}
}

func TestConfirmStoreFailureLeavesLockActive(t *testing.T) {
	m, store, clock := newTestManager(t)
	room := uuid.New()
	owner := uuid.New()
	r := hourRange(clock, time.Hour, 2*time.Hour)

	lock, err := m.Acquire(room, owner, r, 5*time.Minute)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	store.failErr = errors.New("connection refused")
	if _, err := m.Confirm(context.Background(), lock.ID, owner); err == nil {
		t.Fatal("confirm succeeded despite store failure")
	}

	// The lock survived and holds the range
	if got, ok := m.GetLock(lock.ID); !ok || got.State != LockActive {
		t.Fatalf("lock not ACTIVE after failed confirm: ok=%v", ok)
	}
	if _, err := m.Acquire(room, uuid.New(), r, 5*time.Minute); !errors.Is(err, ErrRoomUnavailable) {
		t.Fatalf("range freed by failed confirm: %v", err)
	}

	// Retry after the store recovers
	store.failErr = nil
	if _, err := m.Confirm(context.Background(), lock.ID, owner); err != nil {
		t.Fatalf("retry confirm failed: %v", err)
	}
	if store.count() != 1 {
		t.Fatalf("store has %d records, want 1", store.count())
	}
}

func TestLoadBookingsBlocksOverlap(t *testing.T) {
	m, _, clock := newTestManager(t)
	room := uuid.New()
	r := hourRange(clock, time.Hour, 2*time.Hour)

	m.LoadBookings([]BookingRecord{
		{ID: uuid.New(), RoomID: room, OwnerID: uuid.New(), Range: r, CreatedAt: clock.Now()},
	})

	if _, err := m.Acquire(room, uuid.New(), r, 5*time.Minute); !errors.Is(err, ErrRoomUnavailable) {
		t.Fatalf("acquire over loaded booking = %v, want ErrRoomUnavailable", err)
	}
	if _, err := m.Acquire(room, uuid.New(), hourRange(clock, 2*time.Hour, 3*time.Hour), 5*time.Minute); err != nil {
		t.Fatalf("acquire next to loaded booking failed: %v", err)
	}
}

func TestExpireStaleSweep(t *testing.T) {
	m, _, clock := newTestManager(t)

	for i := 0; i < 3; i++ {
		if _, err := m.Acquire(uuid.New(), uuid.New(), hourRange(clock, time.Hour, 2*time.Hour), time.Minute); err != nil {
			t.Fatalf("acquire %d failed: %v", i, err)
		}
	}
	keeper, err := m.Acquire(uuid.New(), uuid.New(), hourRange(clock, time.Hour, 2*time.Hour), time.Hour)
	if err != nil {
		t.Fatalf("keeper acquire failed: %v", err)
	}

	clock.Advance(2 * time.Minute)

	if n := m.ExpireStale(); n != 3 {
		t.Fatalf("ExpireStale() = %d, want 3", n)
	}
	if n := m.ExpireStale(); n != 0 {
		t.Fatalf("second ExpireStale() = %d, want 0", n)
	}
	if m.ActiveLockCount() != 1 {
		t.Fatalf("active lock count = %d, want 1", m.ActiveLockCount())
	}
	if _, ok := m.GetLock(keeper.ID); !ok {
		t.Fatal("long-ttl lock was swept")
	}

	for _, l := range m.RecentHistory(10) {
		if l.ID != keeper.ID && l.State != LockExpired {
			t.Fatalf("retired lock %s state = %s, want EXPIRED", l.ID, l.State)
		}
	}
}

func TestHasActiveOverlap(t *testing.T) {
	m, _, clock := newTestManager(t)
	room := uuid.New()
	r := hourRange(clock, time.Hour, 2*time.Hour)

	if m.HasActiveOverlap(room, r) {
		t.Fatal("empty room reported an overlap")
	}

	if _, err := m.Acquire(room, uuid.New(), r, time.Minute); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if !m.HasActiveOverlap(room, r) {
		t.Fatal("live lock not reported")
	}
	if m.HasActiveOverlap(room, hourRange(clock, 2*time.Hour, 3*time.Hour)) {
		t.Fatal("disjoint range reported as overlapping")
	}

	// Expired locks stop counting before any sweep runs
	clock.Advance(2 * time.Minute)
	if m.HasActiveOverlap(room, r) {
		t.Fatal("expired lock still reported as overlapping")
	}
}

func TestRecentHistoryOrder(t *testing.T) {
	m, _, clock := newTestManager(t)
	owner := uuid.New()

	first, _ := m.Acquire(uuid.New(), owner, hourRange(clock, time.Hour, 2*time.Hour), 5*time.Minute)
	second, _ := m.Acquire(uuid.New(), owner, hourRange(clock, time.Hour, 2*time.Hour), 5*time.Minute)

	if err := m.Release(first.ID, owner); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if err := m.Release(second.ID, owner); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	hist := m.RecentHistory(2)
	if len(hist) != 2 {
		t.Fatalf("history length = %d, want 2", len(hist))
	}
	if hist[0].ID != second.ID || hist[1].ID != first.ID {
		t.Fatal("history not most-recent-first")
	}
}
