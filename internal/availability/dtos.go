package availability

import (
	"time"

	"roomly/internal/rooms"
)

// SearchQuery carries the window and catalog filters for a room search
type SearchQuery struct {
	StartTime     time.Time `form:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime       time.Time `form:"end_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Building      string    `form:"building"`
	MinCapacity   int       `form:"min_capacity"`
	OnlyAvailable bool      `form:"only_available"`
	Page          int       `form:"page"`
	Limit         int       `form:"limit"`
}

// RoomAvailability is the answer for a single room and window
type RoomAvailability struct {
	RoomID              string         `json:"room_id"`
	StartTime           time.Time      `json:"start_time"`
	EndTime             time.Time      `json:"end_time"`
	Available           bool           `json:"available"`
	ConflictingBookings []BookedWindow `json:"conflicting_bookings,omitempty"`
}

// BookedWindow is a confirmed window blocking a request. Booking ids and
// owners are deliberately not exposed here.
type BookedWindow struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type RoomResult struct {
	rooms.Room
	Available bool `json:"available"`
}

type SearchResponse struct {
	StartTime  time.Time    `json:"start_time"`
	EndTime    time.Time    `json:"end_time"`
	Rooms      []RoomResult `json:"rooms"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalCount int64        `json:"total_count"`
}
