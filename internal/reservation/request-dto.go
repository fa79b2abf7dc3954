package reservation

import "time"

// LockRequest is the payload for acquiring a reservation lock. TTLSeconds is
// optional; zero asks for the server default and oversized values are clamped.
type LockRequest struct {
	RoomID     string    `json:"room_id" binding:"required,uuid" validate:"required,uuid"`
	StartTime  time.Time `json:"start_time" binding:"required" validate:"required"`
	EndTime    time.Time `json:"end_time" binding:"required" validate:"required,gtfield=StartTime"`
	TTLSeconds int       `json:"ttl_seconds" binding:"omitempty,min=0" validate:"min=0"`
}
