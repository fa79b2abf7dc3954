package availability

import (
	"github.com/gin-gonic/gin"
)

// SetupAvailabilityRoutes configures the availability search routes. Search is
// public; acquiring a lock is the authenticated step.
func SetupAvailabilityRoutes(rg *gin.RouterGroup, controller *Controller) {
	avail := rg.Group("/availability")
	{
		avail.GET("", controller.SearchRooms)       // GET /api/v1/availability
		avail.GET("/:roomId", controller.CheckRoom) // GET /api/v1/availability/:roomId
	}
}
