package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roomly/internal/shared/config"
	"roomly/pkg/logger"
)

// RoomDirectory answers room existence questions. Defined here so the catalog
// package stays a dependency of the composition root, not of the engine.
type RoomDirectory interface {
	RoomExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// EventPublisher receives lifecycle events for the audit stream. Publishing is
// best effort: a failed publish never rolls back the state transition it
// describes.
type EventPublisher interface {
	PublishLockAcquired(ctx context.Context, lock *Lock) error
	PublishLockReleased(ctx context.Context, lock *Lock) error
	PublishLockExpired(ctx context.Context, lock *Lock) error
	PublishBookingConfirmed(ctx context.Context, rec *BookingRecord, lockID uuid.UUID) error
}

// Service wraps the Manager with the request-facing policy: TTL clamping,
// room existence checks, logging and audit publishing.
type Service interface {
	AcquireLock(ctx context.Context, ownerID uuid.UUID, req LockRequest) (*LockResponse, error)
	ConfirmLock(ctx context.Context, lockID, ownerID uuid.UUID) (*ConfirmResponse, error)
	ReleaseLock(ctx context.Context, lockID, ownerID uuid.UUID) error
	GetLock(ctx context.Context, lockID, ownerID uuid.UUID) (*LockResponse, error)
}

type service struct {
	manager   *Manager
	directory RoomDirectory
	publisher EventPublisher
	cfg       config.ReservationConfig
	log       *logger.Logger
}

func NewService(manager *Manager, directory RoomDirectory, publisher EventPublisher, cfg config.ReservationConfig, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		manager:   manager,
		directory: directory,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
	}
}

func (s *service) AcquireLock(ctx context.Context, ownerID uuid.UUID, req LockRequest) (*LockResponse, error) {
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("%w: room_id must be a UUID", ErrValidation)
	}

	r, err := NewTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	exists, err := s.directory.RoomExists(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to check room: %w", err)
	}
	if !exists {
		return nil, ErrRoomNotFound
	}

	ttl := s.clampTTL(time.Duration(req.TTLSeconds) * time.Second)

	lock, err := s.manager.Acquire(roomID, ownerID, r, ttl)
	if err != nil {
		if errors.Is(err, ErrRoomUnavailable) {
			s.log.LogLockContention(ctx, roomID.String(), ownerID.String())
		}
		return nil, err
	}

	s.log.LogLockAcquired(ctx, lock.ID.String(), roomID.String(), ownerID.String(), lock.ExpiresAt)
	s.publish(ctx, func(p EventPublisher) error { return p.PublishLockAcquired(ctx, lock) })

	resp := toLockResponse(lock)
	return &resp, nil
}

func (s *service) ConfirmLock(ctx context.Context, lockID, ownerID uuid.UUID) (*ConfirmResponse, error) {
	rec, err := s.manager.Confirm(ctx, lockID, ownerID)
	if err != nil {
		if errors.Is(err, ErrLockExpired) {
			// The expired lock is already retired; pull its metadata from the
			// history tail so the event carries the room it was held on.
			if expired, ok := s.manager.TerminalLock(lockID); ok {
				s.publish(ctx, func(p EventPublisher) error { return p.PublishLockExpired(ctx, expired) })
			}
		}
		return nil, err
	}

	s.log.LogBookingConfirmed(ctx, rec.ID.String(), lockID.String(), rec.RoomID.String(), ownerID.String())
	s.publish(ctx, func(p EventPublisher) error { return p.PublishBookingConfirmed(ctx, rec, lockID) })

	return &ConfirmResponse{
		BookingID: rec.ID.String(),
		LockID:    lockID.String(),
		RoomID:    rec.RoomID.String(),
		OwnerID:   rec.OwnerID.String(),
		StartTime: rec.Range.Start,
		EndTime:   rec.Range.End,
		Status:    "CONFIRMED",
		CreatedAt: rec.CreatedAt,
	}, nil
}

func (s *service) ReleaseLock(ctx context.Context, lockID, ownerID uuid.UUID) error {
	lock, _ := s.manager.GetLock(lockID)

	if err := s.manager.Release(lockID, ownerID); err != nil {
		return err
	}

	s.log.LogLockReleased(ctx, lockID.String(), ownerID.String())
	if lock != nil {
		lock.State = LockReleased
		s.publish(ctx, func(p EventPublisher) error { return p.PublishLockReleased(ctx, lock) })
	}
	return nil
}

func (s *service) GetLock(ctx context.Context, lockID, ownerID uuid.UUID) (*LockResponse, error) {
	lock, ok := s.manager.GetLock(lockID)
	if !ok {
		return nil, ErrLockNotFound
	}
	if lock.OwnerID != ownerID {
		return nil, ErrOwnerMismatch
	}

	resp := toLockResponse(lock)
	return &resp, nil
}

// clampTTL applies the server's TTL policy: zero means the default, anything
// above the maximum is silently reduced to it.
func (s *service) clampTTL(requested time.Duration) time.Duration {
	if requested <= 0 {
		return s.cfg.DefaultLockTTL
	}
	if requested > s.cfg.MaxLockTTL {
		return s.cfg.MaxLockTTL
	}
	return requested
}

func (s *service) publish(ctx context.Context, fn func(EventPublisher) error) {
	if s.publisher == nil {
		return
	}
	if err := fn(s.publisher); err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish reservation event", err, nil)
	}
}
