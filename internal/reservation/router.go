package reservation

import (
	"github.com/gin-gonic/gin"

	"roomly/internal/shared/config"
	"roomly/internal/shared/middleware"
)

// SetupLockRoutes configures all reservation lock routes
func SetupLockRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	locks := rg.Group("/locks")
	locks.Use(middleware.JWTAuthWithConfig(cfg))
	{
		locks.POST("", controller.AcquireLock)             // POST   /api/v1/locks
		locks.GET("/:id", controller.GetLock)              // GET    /api/v1/locks/:id
		locks.POST("/:id/confirm", controller.ConfirmLock) // POST   /api/v1/locks/:id/confirm
		locks.DELETE("/:id", controller.ReleaseLock)       // DELETE /api/v1/locks/:id
	}
}
