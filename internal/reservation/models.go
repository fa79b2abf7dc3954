package reservation

import (
	"time"

	"github.com/google/uuid"
)

// Lock is a time-boxed exclusive claim on a room and time range, pending
// confirmation. Lock ids are opaque, globally unique and single-use. Only the
// Manager mutates a Lock; once terminal it is immutable.
type Lock struct {
	ID        uuid.UUID `json:"lock_id"`
	RoomID    uuid.UUID `json:"room_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Range     TimeRange `json:"range"`
	State     LockState `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsLive is the single expiry predicate every reader and writer consults
// before trusting an ACTIVE state. An ACTIVE lock whose deadline has passed is
// treated as already expired, whether or not the reaper has collected it.
func (l *Lock) IsLive(now time.Time) bool {
	return l.State == LockActive && now.Before(l.ExpiresAt)
}

// BookingRecord is the durable outcome of a confirmed lock. Records are
// created exactly once per successful confirm and never any other way.
type BookingRecord struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Range     TimeRange `json:"range"`
	CreatedAt time.Time `json:"created_at"`
}

// Clone returns a copy safe to hand to callers after the room section is released.
func (l *Lock) Clone() *Lock {
	c := *l
	return &c
}
