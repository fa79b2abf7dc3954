package bookings

import (
	"github.com/gin-gonic/gin"

	"roomly/internal/shared/config"
	"roomly/internal/shared/middleware"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuthWithConfig(cfg))
	{
		bookings.GET("", controller.GetOwnerBookings) // GET /api/v1/bookings
		bookings.GET("/:id", controller.GetBooking)   // GET /api/v1/bookings/:id
	}
}
