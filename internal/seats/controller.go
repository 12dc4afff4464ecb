package seats

import (
	"net/http"

	"seatly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateSeat handles POST /api/v1/admin/seats
func (c *Controller) CreateSeat(ctx *gin.Context) {
	var req SeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	seat, err := c.service.CreateSeat(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusCreated, "Seat created successfully", seat)
}

// GetAllSeats handles GET /api/v1/seats
func (c *Controller) GetAllSeats(ctx *gin.Context) {
	seats, err := c.service.GetAllSeats(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Seats retrieved successfully", seats)
}

// GetSeat handles GET /api/v1/seats/:id
func (c *Controller) GetSeat(ctx *gin.Context) {
	seatID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat ID", nil, nil)
		return
	}

	seat, err := c.service.GetSeat(ctx.Request.Context(), seatID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Seat retrieved successfully", seat)
}

// UpdateSeat handles PUT /api/v1/admin/seats/:id
func (c *Controller) UpdateSeat(ctx *gin.Context) {
	seatID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat ID", nil, nil)
		return
	}

	var req SeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	seat, err := c.service.UpdateSeat(ctx.Request.Context(), seatID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Seat updated successfully", seat)
}

// DeleteSeat handles DELETE /api/v1/admin/seats/:id
func (c *Controller) DeleteSeat(ctx *gin.Context) {
	seatID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat ID", nil, nil)
		return
	}

	if err := c.service.DeleteSeat(ctx.Request.Context(), seatID); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Seat deleted successfully", nil)
}

// SeedDefaultSeats handles POST /api/v1/admin/seats/seed
func (c *Controller) SeedDefaultSeats(ctx *gin.Context) {
	result, err := c.service.SeedDefaultSeats(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Default seats seeded", result)
}
