package reservation

import "errors"

var (
	// ErrValidation covers malformed input that never reaches the engine.
	ErrValidation = errors.New("invalid request")

	// ErrInvalidTimeRange covers malformed ranges (start >= end, missing bounds).
	ErrInvalidTimeRange = errors.New("start time must be before end time")

	// ErrRoomNotFound means the requested room id is not in the catalog.
	ErrRoomNotFound = errors.New("unknown room")

	// ErrRoomUnavailable is the expected contention outcome: the room already
	// has an overlapping active lock or confirmed booking. Not a fault.
	ErrRoomUnavailable = errors.New("room has an overlapping reservation")

	// ErrLockNotFound covers unknown lock ids and ids that already reached a
	// terminal state (released, confirmed, expired-and-collected).
	ErrLockNotFound = errors.New("lock not found")

	// ErrLockExpired is surfaced distinctly from ErrLockNotFound so callers can
	// tell "you were too slow" from "no such lock".
	ErrLockExpired = errors.New("lock has expired")

	// ErrOwnerMismatch means the caller is not the principal that acquired the lock.
	ErrOwnerMismatch = errors.New("lock is owned by another user")
)
