package bookings

import "github.com/google/uuid"

// CreateBookingRequest is the payload to reserve a seat
type CreateBookingRequest struct {
	SeatID   uuid.UUID `json:"seat_id" binding:"required"`
	Date     string    `json:"date" binding:"required"`
	TimeSlot string    `json:"time_slot" binding:"required"`
}

// UpdateBookingRequest replaces a booking's seat, date and slot
type UpdateBookingRequest struct {
	SeatID   uuid.UUID `json:"seat_id" binding:"required"`
	Date     string    `json:"date" binding:"required"`
	TimeSlot string    `json:"time_slot" binding:"required"`
}

// AssignSeatRequest lets an admin reserve a seat on behalf of an intern
type AssignSeatRequest struct {
	Email    string    `json:"email" binding:"required,email"`
	SeatID   uuid.UUID `json:"seat_id" binding:"required"`
	Date     string    `json:"date" binding:"required"`
	TimeSlot string    `json:"time_slot" binding:"required"`
}

// CheckInRequest carries the scanned QR token
type CheckInRequest struct {
	QRToken string `json:"qr_token" binding:"required"`
}
