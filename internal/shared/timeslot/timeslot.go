// Package timeslot turns a (date, time slot) pair into a single typed
// reservation instant. Every time comparison in the booking flow routes
// through here so that creation, modification, the check-in window and the
// reminder sweep all agree on what moment a booking denotes.
package timeslot

import (
	"time"

	"seatly/internal/shared/apperrors"
)

const (
	// DateLayout is the calendar-day form bookings are stored with
	DateLayout = "2006-01-02"
	// SlotLayout is the time-of-day form of a slot
	SlotLayout = "15:04"
)

// ReservationInstant is the absolute point in time a (date, slot) pair
// denotes. Comparisons are naive local time, matching how slots are shown
// to users.
type ReservationInstant struct {
	t time.Time
}

// Parse combines a date and a time slot into a ReservationInstant. Both
// parts are parsed strictly; a malformed pair is an InvalidInput error.
func Parse(date, slot string) (ReservationInstant, error) {
	t, err := time.ParseInLocation(DateLayout+" "+SlotLayout, date+" "+slot, time.Local)
	if err != nil {
		return ReservationInstant{}, apperrors.InvalidInput("invalid date/time slot")
	}
	return ReservationInstant{t: t}, nil
}

// Time returns the underlying instant.
func (r ReservationInstant) Time() time.Time {
	return r.t
}

// IsZero reports whether the instant was never parsed.
func (r ReservationInstant) IsZero() bool {
	return r.t.IsZero()
}

// After reports whether the reservation lies after now.
func (r ReservationInstant) After(now time.Time) bool {
	return r.t.After(now)
}

// Until returns the time remaining from now to the reservation.
func (r ReservationInstant) Until(now time.Time) time.Duration {
	return r.t.Sub(now)
}

// MinutesUntil returns the whole minutes remaining from now to the
// reservation, truncated toward zero.
func (r ReservationInstant) MinutesUntil(now time.Time) int {
	return int(r.t.Sub(now).Minutes())
}

// End returns the instant the slot finishes given a slot duration.
func (r ReservationInstant) End(slotDuration time.Duration) time.Time {
	return r.t.Add(slotDuration)
}

// WithinWindow reports whether now falls inside [reservation-before,
// reservation+after], the shape of the check-in window.
func (r ReservationInstant) WithinWindow(now time.Time, before, after time.Duration) bool {
	return !now.Before(r.t.Add(-before)) && !now.After(r.t.Add(after))
}

// SlotSet is the fixed vocabulary of bookable times of day.
type SlotSet struct {
	slots map[string]struct{}
	order []string
}

// NewSlotSet builds a slot set from "HH:mm" strings. Malformed entries are
// rejected so a bad BOOKING_TIME_SLOTS env value fails loudly at startup.
func NewSlotSet(slots []string) (*SlotSet, error) {
	set := &SlotSet{slots: make(map[string]struct{}, len(slots))}
	for _, s := range slots {
		if _, err := time.Parse(SlotLayout, s); err != nil {
			return nil, apperrors.InvalidInput("invalid time slot in slot set: " + s)
		}
		if _, dup := set.slots[s]; dup {
			continue
		}
		set.slots[s] = struct{}{}
		set.order = append(set.order, s)
	}
	return set, nil
}

// Contains reports whether slot belongs to the bookable vocabulary.
func (s *SlotSet) Contains(slot string) bool {
	_, ok := s.slots[slot]
	return ok
}

// Slots returns the slots in configuration order.
func (s *SlotSet) Slots() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Today returns now's calendar day in DateLayout form.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
