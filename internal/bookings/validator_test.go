package bookings

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatly/internal/seats"
	"seatly/internal/shared/apperrors"
	"seatly/internal/shared/timeslot"
)

func testValidator(t *testing.T) *Validator {
	t.Helper()
	slots, err := timeslot.NewSlotSet([]string{"09:00", "11:00", "13:00", "15:00", "17:00"})
	require.NoError(t, err)
	return NewValidator(slots, 60*time.Minute)
}

func availableSeat() *seats.Seat {
	return &seats.Seat{ID: uuid.New(), SeatNumber: "A1", Location: "Floor 1", Status: seats.StatusAvailable}
}

// now fixed well before the requested slot so lead-time math is exact
var testNow = time.Date(2026, 9, 1, 7, 0, 0, 0, time.Local)

func validRequest() ValidationRequest {
	return ValidationRequest{
		UserID:   uuid.New(),
		SeatID:   uuid.New(),
		Date:     "2026-09-01",
		TimeSlot: "09:00",
	}
}

func TestValidateAllows(t *testing.T) {
	v := testValidator(t)

	instant, err := v.Validate(validRequest(), availableSeat(), nil, nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, 9, instant.Time().Hour())
}

func TestValidateSeatChecksComeFirst(t *testing.T) {
	v := testValidator(t)

	t.Run("missing seat", func(t *testing.T) {
		req := validRequest()
		req.TimeSlot = "garbage" // would also fail later checks
		_, err := v.Validate(req, nil, nil, nil, testNow)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	})

	t.Run("unavailable seat", func(t *testing.T) {
		seat := availableSeat()
		seat.Status = seats.StatusUnavailable
		_, err := v.Validate(validRequest(), seat, nil, nil, testNow)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindUnavailable))
	})
}

func TestValidateRejectsMalformedSlot(t *testing.T) {
	v := testValidator(t)

	t.Run("slot outside vocabulary", func(t *testing.T) {
		req := validRequest()
		req.TimeSlot = "10:00"
		_, err := v.Validate(req, availableSeat(), nil, nil, testNow)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindInvalidInput))
	})

	t.Run("unparseable date", func(t *testing.T) {
		req := validRequest()
		req.Date = "01-09-2026"
		_, err := v.Validate(req, availableSeat(), nil, nil, testNow)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindInvalidInput))
	})
}

func TestValidateLeadTime(t *testing.T) {
	v := testValidator(t)
	req := validRequest() // slot at 09:00

	t.Run("past slot rejected", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
		_, err := v.Validate(req, availableSeat(), nil, nil, now)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindTimingViolation))
		assert.Equal(t, "Past date/time cannot be booked", apperrors.MessageOf(err))
	})

	t.Run("59 minutes ahead rejected", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 8, 1, 0, 0, time.Local)
		_, err := v.Validate(req, availableSeat(), nil, nil, now)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindTimingViolation))
		assert.Equal(t, "Seats must be reserved at least 1 hour in advance", apperrors.MessageOf(err))
	})

	t.Run("exactly 60 minutes ahead allowed", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
		_, err := v.Validate(req, availableSeat(), nil, nil, now)
		assert.NoError(t, err)
	})
}

func TestValidateExclusivity(t *testing.T) {
	v := testValidator(t)

	t.Run("seat slot conflict", func(t *testing.T) {
		conflict := &Booking{ID: uuid.New(), Status: StatusActive}
		_, err := v.Validate(validRequest(), availableSeat(), conflict, nil, testNow)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
		assert.Equal(t, "Seat already booked for this time slot", apperrors.MessageOf(err))
	})

	t.Run("user daily limit", func(t *testing.T) {
		conflict := &Booking{ID: uuid.New(), Status: StatusActive}
		_, err := v.Validate(validRequest(), availableSeat(), nil, conflict, testNow)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
		assert.Equal(t, "You can reserve only one seat per day", apperrors.MessageOf(err))
	})

	t.Run("booking under modification does not conflict with itself", func(t *testing.T) {
		self := &Booking{ID: uuid.New(), Status: StatusActive}
		req := validRequest()
		req.ExcludeID = self.ID
		_, err := v.Validate(req, availableSeat(), self, self, testNow)
		assert.NoError(t, err)
	})

	t.Run("cancelled booking does not conflict", func(t *testing.T) {
		cancelled := &Booking{ID: uuid.New(), Status: StatusCancelled}
		_, err := v.Validate(validRequest(), availableSeat(), cancelled, nil, testNow)
		assert.NoError(t, err)
	})
}
