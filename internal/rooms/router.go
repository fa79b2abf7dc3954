package rooms

import (
	"github.com/gin-gonic/gin"
)

// SetupRoomRoutes configures all room catalog routes. The catalog is public
// read-only data, so no auth is required here.
func SetupRoomRoutes(rg *gin.RouterGroup, controller *Controller) {
	rooms := rg.Group("/rooms")
	{
		rooms.GET("", controller.ListRooms)   // GET /api/v1/rooms
		rooms.GET("/:id", controller.GetRoom) // GET /api/v1/rooms/:id
	}
}
