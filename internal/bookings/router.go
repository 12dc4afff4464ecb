package bookings

import (
	"seatly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {

	// USER BOOKING OPERATIONS

	bookingsGroup := rg.Group("/bookings")
	bookingsGroup.Use(middleware.JWTAuth(), middleware.RequireRoles("INTERN", "ADMIN"))
	{
		bookingsGroup.POST("", controller.CreateBooking)               // POST /api/v1/bookings
		bookingsGroup.PUT("/:id", controller.UpdateBooking)            // PUT /api/v1/bookings/:id
		bookingsGroup.PATCH("/:id/cancel", controller.CancelBooking)   // PATCH /api/v1/bookings/:id/cancel
		bookingsGroup.GET("/my", controller.GetMyBookings)             // GET /api/v1/bookings/my
		bookingsGroup.GET("/by-date", controller.GetBookingsByDate)    // GET /api/v1/bookings/by-date
		bookingsGroup.GET("/:id/qr-token", controller.GetQRToken)      // GET /api/v1/bookings/:id/qr-token
		bookingsGroup.GET("/:id/qr.png", controller.GetQRCode)         // GET /api/v1/bookings/:id/qr.png
		bookingsGroup.GET("/:id/calendar.ics", controller.DownloadICS) // GET /api/v1/bookings/:id/calendar.ics
	}

	// ADMIN BOOKING OPERATIONS

	adminBookings := rg.Group("/admin/bookings")
	adminBookings.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminBookings.GET("/by-user", controller.GetBookingsByUserEmail) // GET /api/v1/admin/bookings/by-user
		adminBookings.GET("/seat-usage", controller.GetSeatUsage)        // GET /api/v1/admin/bookings/seat-usage
		adminBookings.POST("/assign", controller.AssignSeat)             // POST /api/v1/admin/bookings/assign
		adminBookings.POST("/check-in", controller.CheckIn)              // POST /api/v1/admin/bookings/check-in
	}
}
