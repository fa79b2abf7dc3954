package availability

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"roomly/internal/bookings"
	"roomly/internal/reservation"
	"roomly/internal/rooms"
	"roomly/internal/shared/constants"
	"roomly/pkg/cache"
)

// LockChecker is the slice of the reservation engine availability needs:
// whether any live lock overlaps a range.
type LockChecker interface {
	HasActiveOverlap(roomID uuid.UUID, r reservation.TimeRange) bool
}

// Service answers "is this room free for this window" questions. Answers are
// advisory: only acquiring a lock reserves anything, so a positive answer can
// be stale by the time the caller acts on it.
type Service interface {
	CheckRoom(ctx context.Context, roomID uuid.UUID, r reservation.TimeRange) (*RoomAvailability, error)
	SearchRooms(ctx context.Context, query SearchQuery) (*SearchResponse, error)
}

type service struct {
	roomService rooms.Service
	repo        bookings.Repository
	locks       LockChecker
	cache       cache.Service
}

func NewService(roomService rooms.Service, repo bookings.Repository, locks LockChecker, cacheService cache.Service) Service {
	return &service{
		roomService: roomService,
		repo:        repo,
		locks:       locks,
		cache:       cacheService,
	}
}

// CheckRoom reports whether roomID is free for the given range. A room is
// considered taken if a confirmed booking or a live lock overlaps the window.
func (s *service) CheckRoom(ctx context.Context, roomID uuid.UUID, r reservation.TimeRange) (*RoomAvailability, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.roomService.RoomExists(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to check room: %w", err)
	}
	if !exists {
		return nil, reservation.ErrRoomNotFound
	}

	if s.cache != nil {
		cacheKey := constants.BuildAvailabilityKey(roomID.String(), r.Start.Unix(), r.End.Unix())
		var cached RoomAvailability
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}

		result, err := s.checkRoom(ctx, roomID, r)
		if err != nil {
			return nil, err
		}
		_ = s.cache.Set(ctx, cacheKey, result, constants.TTL_AVAILABILITY)
		return result, nil
	}

	return s.checkRoom(ctx, roomID, r)
}

func (s *service) checkRoom(ctx context.Context, roomID uuid.UUID, r reservation.TimeRange) (*RoomAvailability, error) {
	overlapping, err := s.repo.FindOverlapping(ctx, roomID, r)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}

	result := &RoomAvailability{
		RoomID:    roomID.String(),
		StartTime: r.Start,
		EndTime:   r.End,
		Available: len(overlapping) == 0 && !s.locks.HasActiveOverlap(roomID, r),
	}
	for i := range overlapping {
		result.ConflictingBookings = append(result.ConflictingBookings, BookedWindow{
			StartTime: overlapping[i].StartTime,
			EndTime:   overlapping[i].EndTime,
		})
	}
	return result, nil
}

// SearchRooms lists catalog rooms matching the filters, each annotated with
// availability for the requested window.
func (s *service) SearchRooms(ctx context.Context, query SearchQuery) (*SearchResponse, error) {
	r, err := reservation.NewTimeRange(query.StartTime, query.EndTime)
	if err != nil {
		return nil, err
	}

	listing, err := s.roomService.ListRooms(ctx, rooms.RoomListQuery{
		Page:        query.Page,
		Limit:       query.Limit,
		Building:    query.Building,
		MinCapacity: query.MinCapacity,
	})
	if err != nil {
		return nil, err
	}

	resp := &SearchResponse{
		StartTime:  r.Start,
		EndTime:    r.End,
		Page:       listing.Page,
		Limit:      listing.Limit,
		TotalCount: listing.TotalCount,
	}

	for i := range listing.Rooms {
		room := &listing.Rooms[i]
		check, err := s.checkRoom(ctx, room.ID, r)
		if err != nil {
			return nil, err
		}

		if query.OnlyAvailable && !check.Available {
			continue
		}

		resp.Rooms = append(resp.Rooms, RoomResult{
			Room:      *room,
			Available: check.Available,
		})
	}

	return resp, nil
}
