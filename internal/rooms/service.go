package rooms

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roomly/internal/reservation"
	"roomly/internal/shared/constants"
	"roomly/pkg/cache"
)

// Service exposes read access to the room catalog
type Service interface {
	GetRoom(ctx context.Context, id uuid.UUID) (*Room, error)
	ListRooms(ctx context.Context, query RoomListQuery) (*RoomListResponse, error)
	RoomExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

func (s *service) GetRoom(ctx context.Context, id uuid.UUID) (*Room, error) {
	if s.cache != nil {
		cacheKey := constants.BuildRoomDetailKey(id.String())
		var cached Room
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}

		room, err := s.fetchRoom(ctx, id)
		if err != nil {
			return nil, err
		}
		_ = s.cache.Set(ctx, cacheKey, room, constants.TTL_ROOM_DETAIL)
		return room, nil
	}

	return s.fetchRoom(ctx, id)
}

func (s *service) fetchRoom(ctx context.Context, id uuid.UUID) (*Room, error) {
	room, err := s.repo.GetRoomByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reservation.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

func (s *service) ListRooms(ctx context.Context, query RoomListQuery) (*RoomListResponse, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 || query.Limit > 100 {
		query.Limit = 20
	}

	// Only the unfiltered listing is cached
	if s.cache != nil && query.Building == "" && query.MinCapacity == 0 {
		cacheKey := constants.BuildRoomsListKey(query.Page, query.Limit)
		var cached RoomListResponse
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}

		resp, err := s.listRooms(ctx, query)
		if err != nil {
			return nil, err
		}
		_ = s.cache.Set(ctx, cacheKey, resp, constants.TTL_ROOMS_LIST)
		return resp, nil
	}

	return s.listRooms(ctx, query)
}

func (s *service) listRooms(ctx context.Context, query RoomListQuery) (*RoomListResponse, error) {
	rooms, totalCount, err := s.repo.ListRooms(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	return &RoomListResponse{
		Rooms:      rooms,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalCount: totalCount,
	}, nil
}

func (s *service) RoomExists(ctx context.Context, id uuid.UUID) (bool, error) {
	// Hit the detail cache first; a cached room is proof of existence
	if s.cache != nil {
		var cached Room
		if err := s.cache.Get(ctx, constants.BuildRoomDetailKey(id.String()), &cached); err == nil {
			return true, nil
		}
	}

	return s.repo.RoomExists(ctx, id)
}
