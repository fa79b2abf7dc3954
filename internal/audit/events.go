package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventLockAcquired     EventType = "lock_acquired"
	EventLockReleased     EventType = "lock_released"
	EventLockExpired      EventType = "lock_expired"
	EventBookingConfirmed EventType = "booking_confirmed"
)

// Event is one entry in the reservation audit stream. Events are keyed by
// room id so consumers see each room's lifecycle in order.
type Event struct {
	ID         uuid.UUID  `json:"id"`
	Type       EventType  `json:"type"`
	LockID     uuid.UUID  `json:"lock_id"`
	BookingID  *uuid.UUID `json:"booking_id,omitempty"`
	RoomID     uuid.UUID  `json:"room_id"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey returns the Kafka partition key for the event
func (e *Event) GetPartitionKey() string {
	return e.RoomID.String()
}
