package seats

import (
	"seatly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupSeatRoutes configures all seat-related routes
func SetupSeatRoutes(rg *gin.RouterGroup, controller *Controller) {

	// USER SEAT OPERATIONS

	seatsGroup := rg.Group("/seats")
	seatsGroup.Use(middleware.JWTAuth(), middleware.RequireRoles("INTERN", "ADMIN"))
	{
		seatsGroup.GET("", controller.GetAllSeats) // GET /api/v1/seats
		seatsGroup.GET("/:id", controller.GetSeat) // GET /api/v1/seats/:id
	}

	// ADMIN SEAT OPERATIONS

	adminSeats := rg.Group("/admin/seats")
	adminSeats.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminSeats.POST("", controller.CreateSeat)        // POST /api/v1/admin/seats
		adminSeats.PUT("/:id", controller.UpdateSeat)     // PUT /api/v1/admin/seats/:id
		adminSeats.DELETE("/:id", controller.DeleteSeat)  // DELETE /api/v1/admin/seats/:id
		adminSeats.POST("/seed", controller.SeedDefaultSeats) // POST /api/v1/admin/seats/seed
	}
}
