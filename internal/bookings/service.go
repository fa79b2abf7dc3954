package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roomly/internal/reservation"
	"roomly/internal/shared/constants"
	"roomly/pkg/cache"
)

// ErrBookingNotFound is returned when no booking exists with the given id.
var ErrBookingNotFound = errors.New("booking not found")

// Service interface defines the contract for booking read operations. Bookings
// are only created by confirming a lock, so there is no create path here.
type Service interface {
	GetOwnerBookings(ctx context.Context, ownerID uuid.UUID, query BookingListQuery) (*BookingListResponse, error)
	GetBooking(ctx context.Context, bookingID, ownerID uuid.UUID) (*BookingResponse, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

func (s *service) GetOwnerBookings(ctx context.Context, ownerID uuid.UUID, query BookingListQuery) (*BookingListResponse, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 || query.Limit > 100 {
		query.Limit = 10
	}

	// Filtered listings skip the cache; the unfiltered first pages dominate traffic
	if s.cache != nil && query.Status == "" && query.RoomID == "" && query.DateFrom == "" && query.DateTo == "" {
		cacheKey := constants.BuildUserBookingsKey(ownerID.String(), query.Page)
		var cached BookingListResponse
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}

		resp, err := s.listOwnerBookings(ctx, ownerID, query)
		if err != nil {
			return nil, err
		}
		_ = s.cache.Set(ctx, cacheKey, resp, constants.TTL_USER_BOOKINGS)
		return resp, nil
	}

	return s.listOwnerBookings(ctx, ownerID, query)
}

func (s *service) listOwnerBookings(ctx context.Context, ownerID uuid.UUID, query BookingListQuery) (*BookingListResponse, error) {
	rows, totalCount, err := s.repo.GetOwnerBookings(ctx, ownerID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(rows)),
		Pagination: PaginationInfo{
			Page:       query.Page,
			Limit:      query.Limit,
			TotalCount: totalCount,
			TotalPages: CalculateTotalPages(totalCount, query.Limit),
		},
	}
	for i := range rows {
		resp.Bookings = append(resp.Bookings, toBookingResponse(&rows[i]))
	}
	return resp, nil
}

func (s *service) GetBooking(ctx context.Context, bookingID, ownerID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.OwnerID != ownerID {
		return nil, reservation.ErrOwnerMismatch
	}

	resp := toBookingResponse(booking)
	return &resp, nil
}
