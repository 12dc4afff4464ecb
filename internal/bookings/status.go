package bookings

// Status is the lifecycle state of a booking. Checked-in is not a separate
// state; an active booking carries CheckedInAt once the user arrives.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
