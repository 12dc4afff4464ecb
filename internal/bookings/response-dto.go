package bookings

import (
	"time"

	"github.com/google/uuid"

	"seatly/internal/notifications"
	"seatly/internal/seats"
	"seatly/internal/users"
)

// BookingResponse is a booking enriched with display metadata: calendar
// links when the seat is loaded, and a QR token while the booking is still
// active and in the future.
type BookingResponse struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	SeatID   uuid.UUID `json:"seat_id"`
	Date     string    `json:"date"`
	TimeSlot string    `json:"time_slot"`
	Status   Status    `json:"status"`

	CheckedIn   bool       `json:"checked_in"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
	CheckedInBy *uuid.UUID `json:"checked_in_by,omitempty"`

	Reminder24hSent bool `json:"reminder_24h_sent"`
	Reminder1hSent  bool `json:"reminder_1h_sent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Seat *seats.Seat      `json:"seat,omitempty"`
	User *UserSummary     `json:"user,omitempty"`

	CalendarLinks *notifications.CalendarLinks `json:"calendar_links,omitempty"`
	QRToken       string                       `json:"qr_token,omitempty"`
}

// UserSummary is the slice of a user shown in admin booking views
type UserSummary struct {
	ID    uuid.UUID  `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  users.Role `json:"role"`
}

// QRTokenResponse is the issued check-in token for a booking
type QRTokenResponse struct {
	BookingID uuid.UUID `json:"booking_id"`
	QRToken   string    `json:"qr_token"`
}

// SeatUsageResponse maps seat numbers to their active booking counts
type SeatUsageResponse map[string]int64
