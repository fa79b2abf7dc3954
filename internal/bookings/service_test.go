package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roomly/internal/reservation"
	"roomly/internal/shared/constants"
	"roomly/pkg/cache"
)

type mockRepository struct {
	bookings map[uuid.UUID]*Booking
}

func newMockRepository() *mockRepository {
	return &mockRepository{bookings: make(map[uuid.UUID]*Booking)}
}

func (m *mockRepository) CreateBooking(_ context.Context, booking *Booking) error {
	m.bookings[booking.ID] = booking
	return nil
}

func (m *mockRepository) GetBookingByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (m *mockRepository) GetOwnerBookings(_ context.Context, ownerID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range m.bookings {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockRepository) FindOverlapping(_ context.Context, roomID uuid.UUID, r reservation.TimeRange) ([]Booking, error) {
	var out []Booking
	for _, b := range m.bookings {
		if b.RoomID == roomID && b.Status == string(StatusConfirmed) && b.Range().Overlaps(r) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockRepository) ListConfirmed(_ context.Context) ([]Booking, error) {
	var out []Booking
	for _, b := range m.bookings {
		if b.Status == string(StatusConfirmed) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func seedBooking(repo *mockRepository, ownerID uuid.UUID) *Booking {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	b := &Booking{
		ID:        uuid.New(),
		RoomID:    uuid.New(),
		OwnerID:   ownerID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    string(StatusConfirmed),
		CreatedAt: start.Add(-24 * time.Hour),
	}
	repo.bookings[b.ID] = b
	return b
}

func TestGetBooking(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	owner := uuid.New()
	b := seedBooking(repo, owner)

	got, err := svc.GetBooking(context.Background(), b.ID, owner)
	if err != nil {
		t.Fatalf("GetBooking failed: %v", err)
	}
	if got.ID != b.ID.String() || got.RoomID != b.RoomID.String() {
		t.Fatalf("unexpected booking: %+v", got)
	}
}

func TestGetBookingNotFound(t *testing.T) {
	svc := NewService(newMockRepository(), nil)

	_, err := svc.GetBooking(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("GetBooking(unknown) = %v, want ErrBookingNotFound", err)
	}
}

func TestGetBookingOwnerIsolation(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	b := seedBooking(repo, uuid.New())

	_, err := svc.GetBooking(context.Background(), b.ID, uuid.New())
	if !errors.Is(err, reservation.ErrOwnerMismatch) {
		t.Fatalf("GetBooking by stranger = %v, want ErrOwnerMismatch", err)
	}
}

func TestGetOwnerBookings(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	owner := uuid.New()

	seedBooking(repo, owner)
	seedBooking(repo, owner)
	seedBooking(repo, uuid.New()) // someone else's

	resp, err := svc.GetOwnerBookings(context.Background(), owner, BookingListQuery{})
	if err != nil {
		t.Fatalf("GetOwnerBookings failed: %v", err)
	}
	if len(resp.Bookings) != 2 {
		t.Fatalf("got %d bookings, want 2", len(resp.Bookings))
	}
	if resp.Pagination.TotalCount != 2 || resp.Pagination.Page != 1 {
		t.Fatalf("unexpected pagination: %+v", resp.Pagination)
	}
	for _, b := range resp.Bookings {
		if b.OwnerID != owner.String() {
			t.Fatalf("listing leaked booking of owner %s", b.OwnerID)
		}
	}
}

func TestStoreRoundTrip(t *testing.T) {
	repo := newMockRepository()
	store := NewStore(repo, nil)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	rec := &reservation.BookingRecord{
		ID:      uuid.New(),
		RoomID:  uuid.New(),
		OwnerID: uuid.New(),
		Range:   reservation.TimeRange{Start: start, End: start.Add(time.Hour)},
	}

	if err := store.CreateBooking(context.Background(), rec); err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	recs, err := store.LoadRecords(context.Background())
	if err != nil {
		t.Fatalf("LoadRecords failed: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != rec.ID || !recs[0].Range.Start.Equal(start) {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

type recordingCache struct {
	deletedPatterns []string
}

func (c *recordingCache) Get(context.Context, string, interface{}) error { return cache.ErrCacheMiss }
func (c *recordingCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (c *recordingCache) Delete(context.Context, string) error { return nil }
func (c *recordingCache) DeletePattern(_ context.Context, pattern string) error {
	c.deletedPatterns = append(c.deletedPatterns, pattern)
	return nil
}
func (c *recordingCache) GetOrSet(_ context.Context, _ string, _ time.Duration, fetcher func() (interface{}, error), _ interface{}) error {
	_, err := fetcher()
	return err
}
func (c *recordingCache) Ping(context.Context) error { return nil }

func TestStoreCreateInvalidatesCaches(t *testing.T) {
	repo := newMockRepository()
	cacheSpy := &recordingCache{}
	store := NewStore(repo, cacheSpy)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	rec := &reservation.BookingRecord{
		ID:      uuid.New(),
		RoomID:  uuid.New(),
		OwnerID: uuid.New(),
		Range:   reservation.TimeRange{Start: start, End: start.Add(time.Hour)},
	}

	if err := store.CreateBooking(context.Background(), rec); err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	want := []string{
		constants.BuildUserBookingsPattern(rec.OwnerID.String()),
		constants.BuildRoomAvailabilityPattern(rec.RoomID.String()),
	}
	if len(cacheSpy.deletedPatterns) != len(want) {
		t.Fatalf("invalidated %v, want %v", cacheSpy.deletedPatterns, want)
	}
	for i, pattern := range want {
		if cacheSpy.deletedPatterns[i] != pattern {
			t.Fatalf("invalidated %v, want %v", cacheSpy.deletedPatterns, want)
		}
	}
}
