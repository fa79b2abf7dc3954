package bookings

import (
	"context"
	"fmt"

	"roomly/internal/reservation"
	"roomly/internal/shared/constants"
	"roomly/pkg/cache"
)

// Store adapts the booking repository to the reservation engine's durable
// sink. The engine calls CreateBooking inside the room's critical section, so
// a failure here leaves the lock ACTIVE and no row behind.
type Store struct {
	repo  Repository
	cache cache.Service
}

func NewStore(repo Repository, cacheService cache.Service) *Store {
	return &Store{repo: repo, cache: cacheService}
}

var _ reservation.BookingStore = (*Store)(nil)

func (s *Store) CreateBooking(ctx context.Context, rec *reservation.BookingRecord) error {
	if err := s.repo.CreateBooking(ctx, FromRecord(rec)); err != nil {
		return fmt.Errorf("failed to persist booking: %w", err)
	}

	// A new row makes the owner's cached listings and the room's cached
	// availability answers stale. Invalidation is best effort; the booking
	// is already durable.
	if s.cache != nil {
		_ = s.cache.DeletePattern(ctx, constants.BuildUserBookingsPattern(rec.OwnerID.String()))
		_ = s.cache.DeletePattern(ctx, constants.BuildRoomAvailabilityPattern(rec.RoomID.String()))
	}
	return nil
}

// LoadRecords reads every confirmed row for seeding the engine at startup.
func (s *Store) LoadRecords(ctx context.Context) ([]reservation.BookingRecord, error) {
	rows, err := s.repo.ListConfirmed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load confirmed bookings: %w", err)
	}

	recs := make([]reservation.BookingRecord, 0, len(rows))
	for i := range rows {
		recs = append(recs, rows[i].ToRecord())
	}
	return recs, nil
}
