package reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"roomly/internal/shared/config"
)

type fakeDirectory struct {
	rooms map[uuid.UUID]bool
	err   error
}

func (d *fakeDirectory) RoomExists(_ context.Context, id uuid.UUID) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.rooms[id], nil
}

type recordingPublisher struct {
	mu           sync.Mutex
	events       []string
	expiredRooms []uuid.UUID
}

func (p *recordingPublisher) record(event string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) PublishLockAcquired(context.Context, *Lock) error {
	p.record("lock_acquired")
	return nil
}

func (p *recordingPublisher) PublishLockReleased(context.Context, *Lock) error {
	p.record("lock_released")
	return nil
}

func (p *recordingPublisher) PublishLockExpired(_ context.Context, lock *Lock) error {
	p.mu.Lock()
	p.expiredRooms = append(p.expiredRooms, lock.RoomID)
	p.mu.Unlock()
	p.record("lock_expired")
	return nil
}

func (p *recordingPublisher) PublishBookingConfirmed(context.Context, *BookingRecord, uuid.UUID) error {
	p.record("booking_confirmed")
	return nil
}

func (p *recordingPublisher) recorded() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func newTestService(t *testing.T) (Service, *mockClock, *recordingPublisher, uuid.UUID) {
	t.Helper()
	clock := newMockClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	manager := NewManager(&memStore{}, clock)

	room := uuid.New()
	dir := &fakeDirectory{rooms: map[uuid.UUID]bool{room: true}}
	pub := &recordingPublisher{}

	cfg := config.ReservationConfig{
		DefaultLockTTL: 5 * time.Minute,
		MaxLockTTL:     30 * time.Minute,
		ReaperInterval: 10 * time.Second,
	}

	return NewService(manager, dir, pub, cfg, nil), clock, pub, room
}

func lockRequest(clock *mockClock, room uuid.UUID, ttlSeconds int) LockRequest {
	now := clock.Now()
	return LockRequest{
		RoomID:     room.String(),
		StartTime:  now.Add(time.Hour),
		EndTime:    now.Add(2 * time.Hour),
		TTLSeconds: ttlSeconds,
	}
}

func TestAcquireLockDefaultTTL(t *testing.T) {
	svc, clock, pub, room := newTestService(t)

	lock, err := svc.AcquireLock(context.Background(), uuid.New(), lockRequest(clock, room, 0))
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}

	want := clock.Now().Add(5 * time.Minute)
	if !lock.ExpiresAt.Equal(want) {
		t.Fatalf("ExpiresAt = %s, want default ttl deadline %s", lock.ExpiresAt, want)
	}
	if got := pub.recorded(); len(got) != 1 || got[0] != "lock_acquired" {
		t.Fatalf("published events = %v, want [lock_acquired]", got)
	}
}

func TestAcquireLockClampsTTL(t *testing.T) {
	svc, clock, _, room := newTestService(t)

	// Ask for 4 hours; policy caps at 30 minutes
	lock, err := svc.AcquireLock(context.Background(), uuid.New(), lockRequest(clock, room, 4*3600))
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}

	want := clock.Now().Add(30 * time.Minute)
	if !lock.ExpiresAt.Equal(want) {
		t.Fatalf("ExpiresAt = %s, want clamped deadline %s", lock.ExpiresAt, want)
	}
}

func TestAcquireLockUnknownRoom(t *testing.T) {
	svc, clock, _, _ := newTestService(t)

	_, err := svc.AcquireLock(context.Background(), uuid.New(), lockRequest(clock, uuid.New(), 0))
	if !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("AcquireLock(unknown room) = %v, want ErrRoomNotFound", err)
	}
}

func TestAcquireLockBadRoomID(t *testing.T) {
	svc, clock, _, room := newTestService(t)

	req := lockRequest(clock, room, 0)
	req.RoomID = "not-a-uuid"

	_, err := svc.AcquireLock(context.Background(), uuid.New(), req)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("AcquireLock(bad room id) = %v, want ErrValidation", err)
	}
}

func TestConfirmLockPublishesBooking(t *testing.T) {
	svc, clock, pub, room := newTestService(t)
	owner := uuid.New()

	lock, err := svc.AcquireLock(context.Background(), owner, lockRequest(clock, room, 0))
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}
	lockID := uuid.MustParse(lock.LockID)

	booking, err := svc.ConfirmLock(context.Background(), lockID, owner)
	if err != nil {
		t.Fatalf("ConfirmLock failed: %v", err)
	}
	if booking.Status != "CONFIRMED" || booking.RoomID != room.String() {
		t.Fatalf("unexpected booking: %+v", booking)
	}

	got := pub.recorded()
	if len(got) != 2 || got[1] != "booking_confirmed" {
		t.Fatalf("published events = %v, want [lock_acquired booking_confirmed]", got)
	}
}

func TestConfirmLockExpiredPublishesExpiry(t *testing.T) {
	svc, clock, pub, room := newTestService(t)
	owner := uuid.New()

	lock, err := svc.AcquireLock(context.Background(), owner, lockRequest(clock, room, 60))
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}
	lockID := uuid.MustParse(lock.LockID)

	clock.Advance(2 * time.Minute)

	if _, err := svc.ConfirmLock(context.Background(), lockID, owner); !errors.Is(err, ErrLockExpired) {
		t.Fatalf("ConfirmLock(expired) = %v, want ErrLockExpired", err)
	}

	got := pub.recorded()
	if len(got) != 2 || got[1] != "lock_expired" {
		t.Fatalf("published events = %v, want lock_expired last", got)
	}

	// The event must carry the room the lock was held on, not a zero id
	pub.mu.Lock()
	rooms := append([]uuid.UUID(nil), pub.expiredRooms...)
	pub.mu.Unlock()
	if len(rooms) != 1 || rooms[0] != room {
		t.Fatalf("expired event rooms = %v, want [%s]", rooms, room)
	}
}

func TestReleaseLockPublishes(t *testing.T) {
	svc, clock, pub, room := newTestService(t)
	owner := uuid.New()

	lock, err := svc.AcquireLock(context.Background(), owner, lockRequest(clock, room, 0))
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}
	lockID := uuid.MustParse(lock.LockID)

	if err := svc.ReleaseLock(context.Background(), lockID, owner); err != nil {
		t.Fatalf("ReleaseLock failed: %v", err)
	}

	got := pub.recorded()
	if len(got) != 2 || got[1] != "lock_released" {
		t.Fatalf("published events = %v, want lock_released last", got)
	}
}

func TestGetLockOwnerIsolation(t *testing.T) {
	svc, clock, _, room := newTestService(t)
	owner := uuid.New()

	lock, err := svc.AcquireLock(context.Background(), owner, lockRequest(clock, room, 0))
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}
	lockID := uuid.MustParse(lock.LockID)

	if _, err := svc.GetLock(context.Background(), lockID, uuid.New()); !errors.Is(err, ErrOwnerMismatch) {
		t.Fatalf("GetLock by stranger = %v, want ErrOwnerMismatch", err)
	}
	if _, err := svc.GetLock(context.Background(), lockID, owner); err != nil {
		t.Fatalf("GetLock by owner failed: %v", err)
	}
	if _, err := svc.GetLock(context.Background(), uuid.New(), owner); !errors.Is(err, ErrLockNotFound) {
		t.Fatalf("GetLock(unknown) = %v, want ErrLockNotFound", err)
	}
}
