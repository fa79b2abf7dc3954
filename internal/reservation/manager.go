package reservation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// BookingStore is the durable sink for confirmed reservations. The Manager
// writes exactly one record per successful confirm, inside the room's critical
// section, so a stored record and a CONFIRMED lock are visible together or not
// at all.
type BookingStore interface {
	CreateBooking(ctx context.Context, rec *BookingRecord) error
}

// historyCap bounds the in-memory audit tail of terminal locks.
const historyCap = 1024

// roomState serializes every read-that-decides and write for one room. Its
// mutex is the per-room critical section; operations on different rooms never
// contend on it.
type roomState struct {
	mu sync.Mutex

	// active holds the room's ACTIVE locks by id.
	active map[uuid.UUID]*Lock

	// confirmed mirrors the ranges of CONFIRMED bookings so the overlap check
	// inside acquire stays memory-only. Loaded from the BookingStore at boot,
	// appended only after a durable write succeeds.
	confirmed []TimeRange
}

// Manager owns all Lock objects and their state transitions. It is the
// authoritative overlap check: the existence test and the creation of a new
// lock execute as one indivisible operation per room.
type Manager struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]*roomState
	index map[uuid.UUID]uuid.UUID // lock id -> room id, live locks only

	store BookingStore
	clock Clock

	histMu  sync.Mutex
	history []*Lock
	retired map[uuid.UUID]*Lock // terminal locks still in the history tail, by id
}

func NewManager(store BookingStore, clock Clock) *Manager {
	if clock == nil {
		clock = NewStandardClock()
	}
	return &Manager{
		rooms:   make(map[uuid.UUID]*roomState),
		index:   make(map[uuid.UUID]uuid.UUID),
		retired: make(map[uuid.UUID]*Lock),
		store:   store,
		clock:   clock,
	}
}

// LoadBookings seeds the confirmed-range mirrors from previously stored
// bookings. Called once at startup before the manager serves requests.
func (m *Manager) LoadBookings(recs []BookingRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range recs {
		rs, ok := m.rooms[rec.RoomID]
		if !ok {
			rs = newRoomState()
			m.rooms[rec.RoomID] = rs
		}
		rs.confirmed = append(rs.confirmed, rec.Range)
	}
}

// Acquire places an ACTIVE lock on roomID for the given range, or fails with
// ErrRoomUnavailable if any live lock or confirmed booking overlaps it. The
// check and the insert happen under the room's mutex, so of any set of
// concurrent overlapping attempts exactly one succeeds.
func (m *Manager) Acquire(roomID, ownerID uuid.UUID, r TimeRange, ttl time.Duration) (*Lock, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: ttl must be positive", ErrInvalidTimeRange)
	}

	rs := m.roomFor(roomID)

	rs.mu.Lock()
	now := m.clock.Now()
	stale := rs.collectExpired(now)

	for _, l := range rs.active {
		if l.Range.Overlaps(r) {
			rs.mu.Unlock()
			m.retire(stale)
			return nil, ErrRoomUnavailable
		}
	}
	for _, c := range rs.confirmed {
		if c.Overlaps(r) {
			rs.mu.Unlock()
			m.retire(stale)
			return nil, ErrRoomUnavailable
		}
	}

	lock := &Lock{
		ID:        uuid.New(),
		RoomID:    roomID,
		OwnerID:   ownerID,
		Range:     r,
		State:     LockActive,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	rs.active[lock.ID] = lock
	out := lock.Clone()
	rs.mu.Unlock()

	m.mu.Lock()
	m.index[lock.ID] = roomID
	m.mu.Unlock()

	m.retire(stale)
	return out, nil
}

// Release transitions an ACTIVE lock to RELEASED, freeing the room and range
// immediately. Only the lock's owner may release it. An ACTIVE-but-expired
// lock is expired first and reported as not found.
func (m *Manager) Release(lockID, ownerID uuid.UUID) error {
	rs, ok := m.lookup(lockID)
	if !ok {
		return ErrLockNotFound
	}

	rs.mu.Lock()
	lock, ok := rs.active[lockID]
	if !ok {
		rs.mu.Unlock()
		return ErrLockNotFound
	}

	now := m.clock.Now()
	if !lock.IsLive(now) {
		lock.State = LockExpired
		delete(rs.active, lockID)
		rs.mu.Unlock()
		m.retire([]*Lock{lock})
		return ErrLockNotFound
	}
	if lock.OwnerID != ownerID {
		rs.mu.Unlock()
		return ErrOwnerMismatch
	}

	lock.State = LockReleased
	delete(rs.active, lockID)
	rs.mu.Unlock()

	m.retire([]*Lock{lock})
	return nil
}

// Confirm atomically converts an ACTIVE lock into a durable booking: it writes
// the BookingRecord and flips the lock to CONFIRMED under the same room mutex
// that acquire uses. If the durable write fails the lock is left ACTIVE and
// untouched, so the caller may retry. Lock ids are single-use: a second
// confirm finds the id gone and fails with ErrLockNotFound. A lock that
// expired and was already collected still reports ErrLockExpired, so the
// caller sees the same error whether or not a sweep beat them to it.
func (m *Manager) Confirm(ctx context.Context, lockID, ownerID uuid.UUID) (*BookingRecord, error) {
	rs, ok := m.lookup(lockID)
	if !ok {
		return nil, m.terminalErr(lockID)
	}

	rs.mu.Lock()
	lock, ok := rs.active[lockID]
	if !ok {
		rs.mu.Unlock()
		return nil, m.terminalErr(lockID)
	}

	now := m.clock.Now()
	if !lock.IsLive(now) {
		lock.State = LockExpired
		delete(rs.active, lockID)
		rs.mu.Unlock()
		m.retire([]*Lock{lock})
		return nil, ErrLockExpired
	}
	if lock.OwnerID != ownerID {
		rs.mu.Unlock()
		return nil, ErrOwnerMismatch
	}

	rec := &BookingRecord{
		ID:        uuid.New(),
		RoomID:    lock.RoomID,
		OwnerID:   lock.OwnerID,
		Range:     lock.Range,
		CreatedAt: now,
	}
	if err := m.store.CreateBooking(ctx, rec); err != nil {
		rs.mu.Unlock()
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	lock.State = LockConfirmed
	delete(rs.active, lockID)
	rs.confirmed = append(rs.confirmed, lock.Range)
	rs.mu.Unlock()

	m.retire([]*Lock{lock})
	return rec, nil
}

// Expire transitions an ACTIVE lock whose deadline has passed to EXPIRED.
// Idempotent: expiring an unknown, terminal, or still-live lock is a no-op.
func (m *Manager) Expire(lockID uuid.UUID) bool {
	rs, ok := m.lookup(lockID)
	if !ok {
		return false
	}

	rs.mu.Lock()
	lock, ok := rs.active[lockID]
	if !ok || lock.IsLive(m.clock.Now()) {
		rs.mu.Unlock()
		return false
	}
	lock.State = LockExpired
	delete(rs.active, lockID)
	rs.mu.Unlock()

	m.retire([]*Lock{lock})
	return true
}

// ExpireStale sweeps every room and expires all ACTIVE locks past their
// deadline. Called by the reaper; correctness never depends on it because
// every reader applies IsLive first.
func (m *Manager) ExpireStale() int {
	m.mu.RLock()
	states := make([]*roomState, 0, len(m.rooms))
	for _, rs := range m.rooms {
		states = append(states, rs)
	}
	m.mu.RUnlock()

	total := 0
	for _, rs := range states {
		rs.mu.Lock()
		stale := rs.collectExpired(m.clock.Now())
		rs.mu.Unlock()
		m.retire(stale)
		total += len(stale)
	}
	return total
}

// HasActiveOverlap reports whether any live lock on roomID overlaps the range.
// Snapshot read for availability queries; it is advisory and never a
// substitute for the check inside Acquire.
func (m *Manager) HasActiveOverlap(roomID uuid.UUID, r TimeRange) bool {
	m.mu.RLock()
	rs, ok := m.rooms[roomID]
	m.mu.RUnlock()
	if !ok {
		return false
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	now := m.clock.Now()
	for _, l := range rs.active {
		if l.IsLive(now) && l.Range.Overlaps(r) {
			return true
		}
	}
	return false
}

// GetLock returns a copy of a live lock for inspection.
func (m *Manager) GetLock(lockID uuid.UUID) (*Lock, bool) {
	rs, ok := m.lookup(lockID)
	if !ok {
		return nil, false
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	lock, ok := rs.active[lockID]
	if !ok {
		return nil, false
	}
	return lock.Clone(), true
}

// ActiveLockCount reports the number of locks currently indexed as live.
func (m *Manager) ActiveLockCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.index)
}

// RecentHistory returns up to limit retired locks, most recent first. The tail
// is bounded; it exists for debugging, not as a durable audit store.
func (m *Manager) RecentHistory(limit int) []*Lock {
	m.histMu.Lock()
	defer m.histMu.Unlock()
	if limit <= 0 || limit > len(m.history) {
		limit = len(m.history)
	}
	out := make([]*Lock, 0, limit)
	for i := len(m.history) - 1; i >= len(m.history)-limit; i-- {
		out = append(out, m.history[i].Clone())
	}
	return out
}

// TerminalLock returns a copy of a retired lock, with its terminal state, as
// long as it remains in the bounded history tail.
func (m *Manager) TerminalLock(lockID uuid.UUID) (*Lock, bool) {
	m.histMu.Lock()
	defer m.histMu.Unlock()
	lock, ok := m.retired[lockID]
	if !ok {
		return nil, false
	}
	return lock.Clone(), true
}

// terminalErr maps a lock id missing from the live index to its error. A lock
// that was collected as EXPIRED, whether by a rival acquire or the reaper,
// still reports ErrLockExpired; anything else is simply gone.
func (m *Manager) terminalErr(lockID uuid.UUID) error {
	if lock, ok := m.TerminalLock(lockID); ok && lock.State == LockExpired {
		return ErrLockExpired
	}
	return ErrLockNotFound
}

func newRoomState() *roomState {
	return &roomState{active: make(map[uuid.UUID]*Lock)}
}

// roomFor returns the room's state, creating it on first use.
func (m *Manager) roomFor(roomID uuid.UUID) *roomState {
	m.mu.RLock()
	rs, ok := m.rooms[roomID]
	m.mu.RUnlock()
	if ok {
		return rs
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if rs, ok = m.rooms[roomID]; ok {
		return rs
	}
	rs = newRoomState()
	m.rooms[roomID] = rs
	return rs
}

// lookup resolves a lock id to its room via the live index.
func (m *Manager) lookup(lockID uuid.UUID) (*roomState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	roomID, ok := m.index[lockID]
	if !ok {
		return nil, false
	}
	rs, ok := m.rooms[roomID]
	return rs, ok
}

// retire drops terminal locks from the live index and appends them to the
// bounded history tail. Must not be called while holding a room mutex.
func (m *Manager) retire(locks []*Lock) {
	if len(locks) == 0 {
		return
	}

	m.mu.Lock()
	for _, l := range locks {
		delete(m.index, l.ID)
	}
	m.mu.Unlock()

	m.histMu.Lock()
	m.history = append(m.history, locks...)
	for _, l := range locks {
		m.retired[l.ID] = l
	}
	if n := len(m.history); n > historyCap {
		for _, evicted := range m.history[:n-historyCap] {
			delete(m.retired, evicted.ID)
		}
		m.history = append(m.history[:0:0], m.history[n-historyCap:]...)
	}
	m.histMu.Unlock()
}

// collectExpired flips ACTIVE-but-stale locks to EXPIRED and removes them from
// the room's active set. Caller holds rs.mu and must retire the result.
func (rs *roomState) collectExpired(now time.Time) []*Lock {
	var stale []*Lock
	for id, l := range rs.active {
		if !l.IsLive(now) {
			l.State = LockExpired
			delete(rs.active, id)
			stale = append(stale, l)
		}
	}
	return stale
}
