package bookings

import (
	"time"

	"github.com/google/uuid"

	"seatly/internal/seats"
	"seatly/internal/users"
)

// Booking reserves one seat for one user on a (date, time slot) pair.
// Exclusivity over active bookings is enforced twice: the validator
// pre-checks, and partial unique indexes on (seat_id, date, time_slot) and
// (user_id, date) close the race at the store.
type Booking struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SeatID   uuid.UUID `gorm:"type:uuid;not null" json:"seat_id"`
	Date     string    `gorm:"type:varchar(10);not null" json:"date"`      // YYYY-MM-DD
	TimeSlot string    `gorm:"type:varchar(5);not null" json:"time_slot"`  // HH:mm
	Status   Status    `gorm:"type:varchar(20);default:'ACTIVE'" json:"status"`

	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
	CheckedInBy *uuid.UUID `gorm:"type:uuid" json:"checked_in_by,omitempty"`

	Reminder24hSent bool `gorm:"default:false" json:"reminder_24h_sent"`
	Reminder1hSent  bool `gorm:"default:false" json:"reminder_1h_sent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Seat *seats.Seat `gorm:"foreignKey:SeatID" json:"seat,omitempty"`
	User *users.User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// IsActive reports whether the booking still holds its seat
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// IsCheckedIn reports whether the user already checked in
func (b *Booking) IsCheckedIn() bool {
	return b.CheckedInAt != nil
}
