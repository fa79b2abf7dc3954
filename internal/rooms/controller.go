package rooms

import (
	"errors"
	"net/http"

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

// ListRooms handles GET /api/v1/rooms
func (c *Controller) ListRooms(ctx *gin.Context) {
	var query RoomListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	resp, err := c.service.ListRooms(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list rooms", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Rooms retrieved successfully", resp, nil)
}

// GetRoom handles GET /api/v1/rooms/:id
func (c *Controller) GetRoom(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid room ID", nil, nil)
		return
	}

	room, err := c.service.GetRoom(ctx.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, reservation.ErrRoomNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Room not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get room", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Room retrieved successfully", room, nil)
}
