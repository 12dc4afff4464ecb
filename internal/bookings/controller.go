package bookings

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"seatly/internal/shared/middleware"
	"seatly/internal/shared/utils/response"
	"seatly/internal/users"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func identity(ctx *gin.Context) (uuid.UUID, users.Role, bool) {
	idStr, roleStr, ok := middleware.Identity(ctx)
	if !ok {
		return uuid.Nil, "", false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, "", false
	}
	return id, users.Role(roleStr), true
}

// CreateBooking handles POST /api/v1/bookings
func (c *Controller) CreateBooking(ctx *gin.Context) {
	userID, _, ok := identity(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.Create(ctx.Request.Context(), userID, req, ctx.GetHeader("Idempotency-Key"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusCreated, "Seat booked successfully", booking)
}

// UpdateBooking handles PUT /api/v1/bookings/:id
func (c *Controller) UpdateBooking(ctx *gin.Context) {
	userID, _, ok := identity(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	var req UpdateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.Modify(ctx.Request.Context(), userID, bookingID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Booking updated successfully", booking)
}

// CancelBooking handles PATCH /api/v1/bookings/:id/cancel
func (c *Controller) CancelBooking(ctx *gin.Context) {
	userID, role, ok := identity(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	if err := c.service.Cancel(ctx.Request.Context(), userID, role, bookingID); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Booking cancelled successfully", nil)
}

// GetMyBookings handles GET /api/v1/bookings/my
func (c *Controller) GetMyBookings(ctx *gin.Context) {
	userID, _, ok := identity(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	bookings, err := c.service.GetMyBookings(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// GetBookingsByDate handles GET /api/v1/bookings/by-date
func (c *Controller) GetBookingsByDate(ctx *gin.Context) {
	_, role, ok := identity(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	bookings, err := c.service.GetBookingsByDate(
		ctx.Request.Context(),
		ctx.Query("date"),
		ctx.Query("time_slot"),
		role.IsAdmin(),
	)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// GetQRToken handles GET /api/v1/bookings/:id/qr-token
func (c *Controller) GetQRToken(ctx *gin.Context) {
	userID, role, ok := identity(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	token, err := c.service.IssueCheckInToken(ctx.Request.Context(), userID, role, bookingID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "QR token issued", token)
}

// GetQRCode handles GET /api/v1/bookings/:id/qr.png
func (c *Controller) GetQRCode(ctx *gin.Context) {
	userID, role, ok := identity(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	png, err := c.service.CheckInQRCode(ctx.Request.Context(), userID, role, bookingID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}

// DownloadICS handles GET /api/v1/bookings/:id/calendar.ics
func (c *Controller) DownloadICS(ctx *gin.Context) {
	userID, role, ok := identity(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	ics, err := c.service.BookingICS(ctx.Request.Context(), userID, role, bookingID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="seat-reservation.ics"`)
	ctx.Data(http.StatusOK, "text/calendar", ics)
}

// CheckIn handles POST /api/v1/admin/bookings/check-in
func (c *Controller) CheckIn(ctx *gin.Context) {
	actorID, _, ok := identity(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req CheckInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "QR token is required", nil, err.Error())
		return
	}

	booking, err := c.service.CheckInByToken(ctx.Request.Context(), actorID, req.QRToken)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Check-in successful", booking)
}

// GetBookingsByUserEmail handles GET /api/v1/admin/bookings/by-user
func (c *Controller) GetBookingsByUserEmail(ctx *gin.Context) {
	email := ctx.Query("email")
	if email == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Email is required", nil, nil)
		return
	}

	bookings, err := c.service.GetBookingsByUserEmail(ctx.Request.Context(), email)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// GetSeatUsage handles GET /api/v1/admin/bookings/seat-usage
func (c *Controller) GetSeatUsage(ctx *gin.Context) {
	usage, err := c.service.GetSeatUsage(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Seat usage retrieved successfully", usage)
}

// AssignSeat handles POST /api/v1/admin/bookings/assign
func (c *Controller) AssignSeat(ctx *gin.Context) {
	var req AssignSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.AssignSeat(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusCreated, "Seat assigned successfully", booking)
}
