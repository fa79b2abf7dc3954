package reservation

import "time"

type LockResponse struct {
	LockID    string    `json:"lock_id"`
	RoomID    string    `json:"room_id"`
	OwnerID   string    `json:"owner_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ConfirmResponse struct {
	BookingID string    `json:"booking_id"`
	LockID    string    `json:"lock_id"`
	RoomID    string    `json:"room_id"`
	OwnerID   string    `json:"owner_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toLockResponse(l *Lock) LockResponse {
	return LockResponse{
		LockID:    l.ID.String(),
		RoomID:    l.RoomID.String(),
		OwnerID:   l.OwnerID.String(),
		StartTime: l.Range.Start,
		EndTime:   l.Range.End,
		State:     l.State.String(),
		CreatedAt: l.CreatedAt,
		ExpiresAt: l.ExpiresAt,
	}
}
