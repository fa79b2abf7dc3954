// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"roomly/internal/availability"
	"roomly/internal/bookings"
	"roomly/internal/reservation"
	"roomly/internal/rooms"
	"roomly/internal/shared/config"
	"roomly/internal/shared/database"
	"roomly/pkg/cache"
	"roomly/pkg/logger"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	manager   *reservation.Manager
	publisher reservation.EventPublisher
	log       *logger.Logger

	cacheService cache.Service
	roomService  rooms.Service
	bookingRepo  bookings.Repository
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, manager *reservation.Manager, publisher reservation.EventPublisher, log *logger.Logger) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		manager:   manager,
		publisher: publisher,
		log:       log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	if r.db.Redis != nil {
		r.cacheService = cache.NewService(r.db.Redis)
	}

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Room catalog first; availability and locks depend on it
		r.setupRoomRoutes(api)
		r.setupAvailabilityRoutes(api)
		r.setupLockRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "roomly-api",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "roomly-api",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "operational",
			"api_version":  r.config.APIVersion,
			"active_locks": r.manager.ActiveLockCount(),
			"timestamp":    time.Now(),
		})
	})
}

// setupRoomRoutes configures room catalog routes
func (r *Router) setupRoomRoutes(rg *gin.RouterGroup) {
	roomRepo := rooms.NewRepository(r.db.GetPostgreSQL())
	roomService := rooms.NewService(roomRepo, r.cacheService)
	roomController := rooms.NewController(roomService)

	// Keep the service around for availability and lock validation
	r.roomService = roomService

	rooms.SetupRoomRoutes(rg, roomController)
}

// setupAvailabilityRoutes configures availability search routes
func (r *Router) setupAvailabilityRoutes(rg *gin.RouterGroup) {
	r.bookingRepo = bookings.NewRepository(r.db.GetPostgreSQL())

	availService := availability.NewService(r.roomService, r.bookingRepo, r.manager, r.cacheService)
	availController := availability.NewController(availService)

	availability.SetupAvailabilityRoutes(rg, availController)
}

// setupLockRoutes configures reservation lock routes
func (r *Router) setupLockRoutes(rg *gin.RouterGroup) {
	lockService := reservation.NewService(r.manager, r.roomService, r.publisher, r.config.Reservation, r.log)
	lockController := reservation.NewController(lockService)

	reservation.SetupLockRoutes(rg, lockController, r.config)
}

// setupBookingRoutes configures booking read routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingService := bookings.NewService(r.bookingRepo, r.cacheService)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController, r.config)
}
