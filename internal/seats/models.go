package seats

import (
	"time"

	"github.com/google/uuid"
)

// Status is the administrative availability of a seat, independent of any
// booking occupying it.
type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusUnavailable Status = "UNAVAILABLE"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusUnavailable:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Seat is a physical seat in the office
type Seat struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SeatNumber  string    `gorm:"uniqueIndex;not null" json:"seat_number"` // e.g. A1, B2
	Location    string    `gorm:"not null" json:"location"`                // e.g. Floor 1
	Description string    `json:"description,omitempty"`
	Status      Status    `gorm:"type:varchar(20);default:'AVAILABLE'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

// IsAvailable reports whether the seat may receive new bookings
func (s *Seat) IsAvailable() bool {
	return s.Status == StatusAvailable
}
