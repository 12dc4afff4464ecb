package bookings

import (
	"time"

	"github.com/google/uuid"

	"seatly/internal/seats"
	"seatly/internal/shared/apperrors"
	"seatly/internal/shared/timeslot"
)

// ValidationRequest is one reservation attempt to be judged. ExcludeID
// carries the booking being modified so its own row does not count as a
// conflict; it is uuid.Nil for create and admin-assign.
type ValidationRequest struct {
	UserID    uuid.UUID
	SeatID    uuid.UUID
	Date      string
	TimeSlot  string
	ExcludeID uuid.UUID
}

// Validator is the single decision point for whether a reservation attempt
// is legal. Create, modify and admin-assign all route through it so the
// rules cannot drift apart. It is pure: callers fetch the seat and the
// conflicting bookings, the validator only judges.
type Validator struct {
	slots      *timeslot.SlotSet
	minAdvance time.Duration
}

// NewValidator creates a validator with the given slot vocabulary and
// minimum lead time.
func NewValidator(slots *timeslot.SlotSet, minAdvance time.Duration) *Validator {
	return &Validator{slots: slots, minAdvance: minAdvance}
}

// Validate applies the reservation checks in order, first failure wins.
// On success it returns the reservation instant so callers never re-parse
// the date/slot pair.
func (v *Validator) Validate(
	req ValidationRequest,
	seat *seats.Seat,
	seatSlotConflict *Booking,
	userDateConflict *Booking,
	now time.Time,
) (timeslot.ReservationInstant, error) {
	// 1. Seat exists and is administratively available
	if seat == nil {
		return timeslot.ReservationInstant{}, apperrors.NotFound("Seat not found")
	}
	if !seat.IsAvailable() {
		return timeslot.ReservationInstant{}, apperrors.Unavailable("Seat is unavailable")
	}

	// 2. Slot belongs to the fixed vocabulary and the pair parses
	if v.slots != nil && !v.slots.Contains(req.TimeSlot) {
		return timeslot.ReservationInstant{}, apperrors.InvalidInput("Invalid date/time slot")
	}
	instant, err := timeslot.Parse(req.Date, req.TimeSlot)
	if err != nil {
		return timeslot.ReservationInstant{}, err
	}

	// 3. Future only, with the minimum lead time
	if !instant.After(now) {
		return timeslot.ReservationInstant{}, apperrors.TimingViolation("Past date/time cannot be booked")
	}
	if instant.Until(now) < v.minAdvance {
		return timeslot.ReservationInstant{}, apperrors.TimingViolation("Seats must be reserved at least 1 hour in advance")
	}

	// 4. Seat is free for that slot
	if conflicts(seatSlotConflict, req.ExcludeID) {
		return timeslot.ReservationInstant{}, apperrors.Conflict("Seat already booked for this time slot")
	}

	// 5. One seat per user per day
	if conflicts(userDateConflict, req.ExcludeID) {
		return timeslot.ReservationInstant{}, apperrors.Conflict("You can reserve only one seat per day")
	}

	return instant, nil
}

func conflicts(existing *Booking, excludeID uuid.UUID) bool {
	if existing == nil || !existing.IsActive() {
		return false
	}
	return excludeID == uuid.Nil || existing.ID != excludeID
}
