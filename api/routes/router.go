// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"seatly/internal/auth"
	"seatly/internal/bookings"
	"seatly/internal/notifications"
	"seatly/internal/seats"
	"seatly/internal/shared/config"
	"seatly/internal/shared/database"
	"seatly/internal/shared/timeslot"
	"seatly/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	notifier notifications.Publisher
	logger   *logger.Logger

	bookingRepo    bookings.Repository
	bookingService bookings.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notifier notifications.Publisher, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		notifier: notifier,
		logger:   log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) error {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupSeatRoutes(api)
		if err := r.setupBookingRoutes(api); err != nil {
			return err
		}
	}
	return nil
}

// BookingRepository exposes the booking repository for background jobs
func (r *Router) BookingRepository() bookings.Repository {
	return r.bookingRepo
}

// BookingService exposes the booking service for background jobs
func (r *Router) BookingService() bookings.Service {
	return r.bookingService
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "seatly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "seatly-backend",
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
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController)
}

// setupSeatRoutes configures seat management routes
func (r *Router) setupSeatRoutes(rg *gin.RouterGroup) {
	seatRepo := seats.NewRepository(r.db.GetPostgreSQL())
	seatService := seats.NewService(seatRepo)
	seatController := seats.NewController(seatService)

	seats.SetupSeatRoutes(rg, seatController)
}

// setupBookingRoutes configures booking routes and retains the booking
// service so background jobs can share it.
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) error {
	slots, err := timeslotSet(r.config)
	if err != nil {
		return err
	}

	seatRepo := seats.NewRepository(r.db.GetPostgreSQL())
	userDir := auth.NewRepository(r.db.GetPostgreSQL())

	r.bookingRepo = bookings.NewRepository(r.db.GetPostgreSQL())
	validator := bookings.NewValidator(slots, r.config.Booking.MinAdvance)
	tokens := bookings.NewTokenIssuer(r.config.JWT.Secret, r.config.Booking.CheckInAfter)

	r.bookingService = bookings.NewService(
		r.bookingRepo,
		seatRepo,
		userDir,
		validator,
		tokens,
		r.notifier,
		r.db.GetRedisClient(),
		r.config,
		r.logger,
	)

	bookingController := bookings.NewController(r.bookingService)
	bookings.SetupBookingRoutes(rg, bookingController)
	return nil
}

func timeslotSet(cfg *config.Config) (*timeslot.SlotSet, error) {
	return timeslot.NewSlotSet(cfg.Booking.TimeSlots)
}
