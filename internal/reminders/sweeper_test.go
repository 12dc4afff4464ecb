package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatly/internal/bookings"
	"seatly/internal/notifications"
	"seatly/internal/seats"
	"seatly/internal/shared/timeslot"
	"seatly/internal/users"
	"seatly/pkg/logger"
)

// fakeRepo serves a fixed working set and records flag updates
type fakeRepo struct {
	bookings.Repository

	active      []bookings.Booking
	listErr     error
	flagUpdates map[uuid.UUID][2]bool
	dateFrom    string
}

func (f *fakeRepo) ActiveForReminders(ctx context.Context, dateFrom string) ([]bookings.Booking, error) {
	f.dateFrom = dateFrom
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.active, nil
}

func (f *fakeRepo) UpdateReminderFlags(ctx context.Context, id uuid.UUID, reminder24h, reminder1h bool) error {
	if f.flagUpdates == nil {
		f.flagUpdates = make(map[uuid.UUID][2]bool)
	}
	f.flagUpdates[id] = [2]bool{reminder24h, reminder1h}
	return nil
}

// fakeSender records sent notifications and can be made to fail
type fakeSender struct {
	sent    []*notifications.Notification
	sendErr error
}

func (f *fakeSender) SendSync(ctx context.Context, n *notifications.Notification) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, n)
	return nil
}

var sweepNow = time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)

func newSweeper(repo *fakeRepo, sender *fakeSender) *Sweeper {
	return &Sweeper{
		repo:         repo,
		sender:       sender,
		slotDuration: time.Hour,
		sendTimeout:  5 * time.Second,
		interval:     10,
		tier24Min:    1440,
		tier1Min:     60,
		logger:       logger.GetDefault(),
		now:          func() time.Time { return sweepNow },
	}
}

// bookingAt builds an active booking whose slot starts minutes after the
// fixed sweep clock.
func bookingAt(t *testing.T, minutesAhead int) bookings.Booking {
	t.Helper()
	slot := sweepNow.Add(time.Duration(minutesAhead) * time.Minute)
	return bookings.Booking{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Date:     slot.Format(timeslot.DateLayout),
		TimeSlot: slot.Format(timeslot.SlotLayout),
		Status:   bookings.StatusActive,
		Seat:     &seats.Seat{ID: uuid.New(), SeatNumber: "A1", Location: "Floor 1"},
		User:     &users.User{ID: uuid.New(), Name: "Asha", Email: "asha@seatly.io", Phone: "+15550100"},
	}
}

func TestSweepSends24hTier(t *testing.T) {
	repo := &fakeRepo{active: []bookings.Booking{bookingAt(t, 1439)}}
	sender := &fakeSender{}

	require.NoError(t, newSweeper(repo, sender).Sweep(context.Background()))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, notifications.NotificationTypeReminder24h, sender.sent[0].Type)
	assert.Equal(t, [2]bool{true, false}, repo.flagUpdates[repo.active[0].ID])
}

func TestSweepSends1hTier(t *testing.T) {
	repo := &fakeRepo{active: []bookings.Booking{bookingAt(t, 55)}}
	sender := &fakeSender{}

	require.NoError(t, newSweeper(repo, sender).Sweep(context.Background()))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, notifications.NotificationTypeReminder1h, sender.sent[0].Type)
	assert.Equal(t, [2]bool{false, true}, repo.flagUpdates[repo.active[0].ID])
}

func TestSweepWindowBoundaries(t *testing.T) {
	cases := []struct {
		name         string
		minutesAhead int
		sends        int
	}{
		{"at the 24h threshold", 1440, 1},
		{"just inside the 24h window", 1431, 1},
		{"below the 24h window", 1430, 0},
		{"above the 24h threshold", 1441, 0},
		{"at the 1h threshold", 60, 1},
		{"below the 1h window", 50, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRepo{active: []bookings.Booking{bookingAt(t, tc.minutesAhead)}}
			sender := &fakeSender{}

			require.NoError(t, newSweeper(repo, sender).Sweep(context.Background()))
			assert.Len(t, sender.sent, tc.sends)
		})
	}
}

func TestSweepSkipsAlreadySent(t *testing.T) {
	b := bookingAt(t, 1439)
	b.Reminder24hSent = true
	repo := &fakeRepo{active: []bookings.Booking{b}}
	sender := &fakeSender{}

	require.NoError(t, newSweeper(repo, sender).Sweep(context.Background()))

	assert.Empty(t, sender.sent)
	assert.Empty(t, repo.flagUpdates, "flags persist only when mutated")
}

func TestSweepFailedSendLeavesFlagUnset(t *testing.T) {
	repo := &fakeRepo{active: []bookings.Booking{bookingAt(t, 1439)}}
	sender := &fakeSender{sendErr: errors.New("smtp down")}

	require.NoError(t, newSweeper(repo, sender).Sweep(context.Background()))

	assert.Empty(t, repo.flagUpdates, "failed send must stay retryable")
}

func TestSweepSkipsPastAndBrokenBookings(t *testing.T) {
	past := bookingAt(t, -30)
	broken := bookingAt(t, 1439)
	broken.TimeSlot = "not-a-slot"
	noRelations := bookingAt(t, 1439)
	noRelations.Seat = nil
	noRelations.User = nil

	repo := &fakeRepo{active: []bookings.Booking{past, broken, noRelations}}
	sender := &fakeSender{}

	require.NoError(t, newSweeper(repo, sender).Sweep(context.Background()))

	assert.Empty(t, sender.sent)
	assert.Empty(t, repo.flagUpdates)
}

func TestSweepLookbackCoversPreviousDay(t *testing.T) {
	repo := &fakeRepo{}
	require.NoError(t, newSweeper(repo, &fakeSender{}).Sweep(context.Background()))
	assert.Equal(t, "2026-08-31", repo.dateFrom)
}

func TestSweepAbortsWhenLoadFails(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("db down")}
	err := newSweeper(repo, &fakeSender{}).Sweep(context.Background())
	assert.Error(t, err)
}
