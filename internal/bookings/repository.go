package bookings

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roomly/internal/reservation"
)

type Repository interface {
	// Core booking operations
	CreateBooking(ctx context.Context, booking *Booking) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// Owner booking operations
	GetOwnerBookings(ctx context.Context, ownerID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)

	// Overlap query over confirmed rows, used by availability checks
	FindOverlapping(ctx context.Context, roomID uuid.UUID, r reservation.TimeRange) ([]Booking, error)

	// Startup load for the reservation engine's confirmed mirrors
	ListConfirmed(ctx context.Context) ([]Booking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBooking(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetOwnerBookings(ctx context.Context, ownerID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	// Set defaults
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("owner_id = ?", ownerID)

	baseQuery = r.applyFilters(baseQuery, query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Order("start_time DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

// FindOverlapping returns confirmed rows whose half-open window intersects r.
// Two windows overlap iff each starts before the other ends.
func (r *repository) FindOverlapping(ctx context.Context, roomID uuid.UUID, rng reservation.TimeRange) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("status = ?", StatusConfirmed).
		Where("start_time < ? AND ? < end_time", rng.End, rng.Start).
		Order("start_time ASC").
		Find(&bookings).Error

	return bookings, err
}

func (r *repository) ListConfirmed(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusConfirmed).
		Order("room_id, start_time").
		Find(&bookings).Error

	return bookings, err
}

// applyFilters applies query filters to the GORM query
func (r *repository) applyFilters(query *gorm.DB, filters BookingListQuery) *gorm.DB {
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if filters.RoomID != "" {
		if roomID, err := uuid.Parse(filters.RoomID); err == nil {
			query = query.Where("room_id = ?", roomID)
		}
	}

	if filters.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", filters.DateFrom); err == nil {
			query = query.Where("start_time >= ?", dateFrom)
		}
	}

	if filters.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", filters.DateTo); err == nil {
			dateTo = dateTo.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
			query = query.Where("start_time <= ?", dateTo)
		}
	}

	return query
}

// Helper function to calculate total pages
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
