package availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"roomly/internal/reservation"
	"roomly/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// SearchRooms handles GET /api/v1/availability
func (c *Controller) SearchRooms(ctx *gin.Context) {
	var query SearchQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	resp, err := c.service.SearchRooms(ctx.Request.Context(), query)
	if err != nil {
		respondAvailabilityError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Availability retrieved successfully", resp, nil)
}

// CheckRoom handles GET /api/v1/availability/:roomId
func (c *Controller) CheckRoom(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("roomId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid room ID", nil, nil)
		return
	}

	start, err := time.Parse(time.RFC3339, ctx.Query("start_time"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "start_time must be RFC3339", nil, nil)
		return
	}
	end, err := time.Parse(time.RFC3339, ctx.Query("end_time"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "end_time must be RFC3339", nil, nil)
		return
	}

	r, err := reservation.NewTimeRange(start, end)
	if err != nil {
		respondAvailabilityError(ctx, err)
		return
	}

	result, err := c.service.CheckRoom(ctx.Request.Context(), roomID, r)
	if err != nil {
		respondAvailabilityError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Availability retrieved successfully", result, nil)
}

func respondAvailabilityError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, reservation.ErrInvalidTimeRange), errors.Is(err, reservation.ErrValidation):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid time range", nil, err.Error())
	case errors.Is(err, reservation.ErrRoomNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Room not found", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to check availability", nil, err.Error())
	}
}
