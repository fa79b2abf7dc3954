package bookings

import (
	"time"

	"github.com/google/uuid"

	"roomly/internal/reservation"
)

// Booking is the durable record of a confirmed reservation. Rows are written
// exactly once, by confirming a lock, and never updated except for status.
type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID    uuid.UUID `gorm:"type:uuid;index:idx_bookings_room_window;not null" json:"room_id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;index;not null" json:"owner_id"`
	StartTime time.Time `gorm:"index:idx_bookings_room_window;not null" json:"start_time"`
	EndTime   time.Time `gorm:"index:idx_bookings_room_window;not null" json:"end_time"`
	Status    string    `gorm:"type:varchar(20);check:status IN ('CONFIRMED', 'CANCELLED');default:'CONFIRMED'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == string(StatusConfirmed)
}

// Range returns the booking's reserved window as a half-open interval.
func (b *Booking) Range() reservation.TimeRange {
	return reservation.TimeRange{Start: b.StartTime, End: b.EndTime}
}

// ToRecord converts a stored row back into the engine's record form, used to
// seed the in-memory overlap mirrors at startup.
func (b *Booking) ToRecord() reservation.BookingRecord {
	return reservation.BookingRecord{
		ID:        b.ID,
		RoomID:    b.RoomID,
		OwnerID:   b.OwnerID,
		Range:     b.Range(),
		CreatedAt: b.CreatedAt,
	}
}

// FromRecord builds a row from the engine's record form.
func FromRecord(rec *reservation.BookingRecord) *Booking {
	return &Booking{
		ID:        rec.ID,
		RoomID:    rec.RoomID,
		OwnerID:   rec.OwnerID,
		StartTime: rec.Range.Start,
		EndTime:   rec.Range.End,
		Status:    string(StatusConfirmed),
		CreatedAt: rec.CreatedAt,
	}
}
