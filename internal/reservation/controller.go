package reservation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"roomly/internal/shared/utils/response"
)

type Controller struct {
	service  Service
	validate *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:  service,
		validate: validator.New(),
	}
}

// AcquireLock handles POST /api/v1/locks
func (c *Controller) AcquireLock(ctx *gin.Context) {
	ownerID, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	var req LockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validate.Struct(req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid lock request", nil, err.Error())
		return
	}

	lock, err := c.service.AcquireLock(ctx.Request.Context(), ownerID, req)
	if err != nil {
		respondReservationError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Lock acquired successfully", lock, nil)
}

// ConfirmLock handles POST /api/v1/locks/:id/confirm
func (c *Controller) ConfirmLock(ctx *gin.Context) {
	ownerID, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	lockID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid lock ID", nil, nil)
		return
	}

	booking, err := c.service.ConfirmLock(ctx.Request.Context(), lockID, ownerID)
	if err != nil {
		respondReservationError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking confirmed successfully", booking, nil)
}

// ReleaseLock handles DELETE /api/v1/locks/:id
func (c *Controller) ReleaseLock(ctx *gin.Context) {
	ownerID, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	lockID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid lock ID", nil, nil)
		return
	}

	if err := c.service.ReleaseLock(ctx.Request.Context(), lockID, ownerID); err != nil {
		respondReservationError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Lock released successfully", nil, nil)
}

// GetLock handles GET /api/v1/locks/:id
func (c *Controller) GetLock(ctx *gin.Context) {
	ownerID, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	lockID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid lock ID", nil, nil)
		return
	}

	lock, err := c.service.GetLock(ctx.Request.Context(), lockID, ownerID)
	if err != nil {
		respondReservationError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Lock retrieved successfully", lock, nil)
}

// respondReservationError maps engine errors onto HTTP statuses
func respondReservationError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidTimeRange):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request", nil, err.Error())
	case errors.Is(err, ErrRoomNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Room not found", nil, nil)
	case errors.Is(err, ErrRoomUnavailable):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Room is not available for the requested time range", nil, nil)
	case errors.Is(err, ErrLockNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Lock not found", nil, nil)
	case errors.Is(err, ErrLockExpired):
		response.RespondJSON(ctx, "error", http.StatusGone, "Lock has expired", nil, nil)
	case errors.Is(err, ErrOwnerMismatch):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Lock is owned by another user", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, err.Error())
	}
}

// ownerFromContext reads the authenticated owner id set by the JWT middleware
func ownerFromContext(ctx *gin.Context) (uuid.UUID, bool) {
	ownerIDInterface, exists := ctx.Get("owner_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}

	ownerIDStr, ok := ownerIDInterface.(string)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Invalid owner ID format", nil, nil)
		return uuid.Nil, false
	}

	ownerID, err := uuid.Parse(ownerIDStr)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid owner ID", nil, nil)
		return uuid.Nil, false
	}

	return ownerID, true
}
