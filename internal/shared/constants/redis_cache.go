package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTLs for the Roomly API.
// Pattern: roomly:{module}:{operation}:{identifier}:{params?}

// Static data (long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour
	TTL_STATIC_MEDIUM = 12 * time.Hour
)

// Semi-static data (medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_SHORT = 1 * time.Hour
	TTL_SEMI_STATIC_QUICK = 15 * time.Minute
)

// Dynamic data (short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute
	TTL_DYNAMIC_SHORT  = 5 * time.Minute
)

// Highly dynamic (micro TTL: real-time sensitive)
const (
	TTL_REALTIME_SHORT = 30 * time.Second
)

const (
	CACHE_PREFIX = "roomly"
)

// ================== ROOMS MODULE ==================

const (
	CACHE_KEY_ROOMS_LIST   = CACHE_PREFIX + ":rooms:list"         // + :page:X:limit:Y
	CACHE_KEY_ROOM_DETAIL  = CACHE_PREFIX + ":rooms:detail:uuid:" // + room-id
	CACHE_KEY_ROOMS_SEARCH = CACHE_PREFIX + ":rooms:search"       // + :capacity:X:building:Y
)

const (
	TTL_ROOMS_LIST  = TTL_STATIC_MEDIUM
	TTL_ROOM_DETAIL = TTL_STATIC_LONG
)

// ================== AVAILABILITY MODULE ==================

// Availability answers are advisory and go stale the moment a lock lands,
// so the TTL is kept very short.
const (
	CACHE_KEY_AVAILABILITY = CACHE_PREFIX + ":availability:room:" // + room-id:start:X:end:Y
)

const (
	TTL_AVAILABILITY = TTL_REALTIME_SHORT
)

// ================== BOOKINGS MODULE ==================

const (
	CACHE_KEY_USER_BOOKINGS  = CACHE_PREFIX + ":bookings:owner:uuid:"  // + owner-id:page:X
	CACHE_KEY_BOOKING_DETAIL = CACHE_PREFIX + ":bookings:detail:uuid:" // + booking-id
)

const (
	TTL_USER_BOOKINGS  = TTL_DYNAMIC_SHORT
	TTL_BOOKING_DETAIL = TTL_DYNAMIC_MEDIUM
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_ROOMS_ALL        = CACHE_PREFIX + ":rooms:*"
	PATTERN_INVALIDATE_AVAILABILITY_ALL = CACHE_PREFIX + ":availability:*"
	PATTERN_INVALIDATE_BOOKINGS_ALL     = CACHE_PREFIX + ":bookings:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildRoomsListKey(page, limit int) string {
	return fmt.Sprintf("%s:page:%d:limit:%d", CACHE_KEY_ROOMS_LIST, page, limit)
}

func BuildRoomDetailKey(roomID string) string {
	return CACHE_KEY_ROOM_DETAIL + roomID
}

func BuildAvailabilityKey(roomID string, start, end int64) string {
	return fmt.Sprintf("%s%s:start:%d:end:%d", CACHE_KEY_AVAILABILITY, roomID, start, end)
}

func BuildUserBookingsKey(ownerID string, page int) string {
	return fmt.Sprintf("%s%s:page:%d", CACHE_KEY_USER_BOOKINGS, ownerID, page)
}

func BuildBookingDetailKey(bookingID string) string {
	return CACHE_KEY_BOOKING_DETAIL + bookingID
}

// Invalidation patterns scoped to one owner or one room

func BuildUserBookingsPattern(ownerID string) string {
	return CACHE_KEY_USER_BOOKINGS + ownerID + ":*"
}

func BuildRoomAvailabilityPattern(roomID string) string {
	return CACHE_KEY_AVAILABILITY + roomID + ":*"
}
