package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"seatly/internal/seats"
	"seatly/internal/shared/apperrors"
	"seatly/internal/shared/config"
	"seatly/internal/shared/timeslot"
	"seatly/internal/users"
	"seatly/pkg/logger"
)

// memRepo is an in-memory Repository that mimics the partial unique
// indexes over active bookings.
type memRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*Booking
	seats    map[uuid.UUID]*seats.Seat
	users    map[uuid.UUID]*users.User
}

func newMemRepo() *memRepo {
	return &memRepo{
		bookings: make(map[uuid.UUID]*Booking),
		seats:    make(map[uuid.UUID]*seats.Seat),
		users:    make(map[uuid.UUID]*users.User),
	}
}

func (m *memRepo) hasActiveSeatSlot(seatID uuid.UUID, date, slot string, exclude uuid.UUID) bool {
	for _, b := range m.bookings {
		if b.Status == StatusActive && b.SeatID == seatID && b.Date == date && b.TimeSlot == slot && b.ID != exclude {
			return true
		}
	}
	return false
}

func (m *memRepo) hasActiveUserDate(userID uuid.UUID, date string, exclude uuid.UUID) bool {
	for _, b := range m.bookings {
		if b.Status == StatusActive && b.UserID == userID && b.Date == date && b.ID != exclude {
			return true
		}
	}
	return false
}

func (m *memRepo) Create(ctx context.Context, booking *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hasActiveSeatSlot(booking.SeatID, booking.Date, booking.TimeSlot, uuid.Nil) ||
		m.hasActiveUserDate(booking.UserID, booking.Date, uuid.Nil) {
		return gorm.ErrDuplicatedKey
	}
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	copied := *booking
	m.bookings[booking.ID] = &copied
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *b
	copied.Seat = m.seats[b.SeatID]
	copied.User = m.users[b.UserID]
	return &copied, nil
}

func (m *memRepo) ActiveBySeatSlot(ctx context.Context, seatID uuid.UUID, date, timeSlot string, excludeID uuid.UUID) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.Status == StatusActive && b.SeatID == seatID && b.Date == date && b.TimeSlot == timeSlot && b.ID != excludeID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memRepo) ActiveByUserDate(ctx context.Context, userID uuid.UUID, date string, excludeID uuid.UUID) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.Status == StatusActive && b.UserID == userID && b.Date == date && b.ID != excludeID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memRepo) Update(ctx context.Context, booking *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[booking.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if booking.Status == StatusActive {
		if m.hasActiveSeatSlot(booking.SeatID, booking.Date, booking.TimeSlot, booking.ID) ||
			m.hasActiveUserDate(booking.UserID, booking.Date, booking.ID) {
			return gorm.ErrDuplicatedKey
		}
	}
	copied := *booking
	copied.Seat = nil
	copied.User = nil
	m.bookings[booking.ID] = &copied
	return nil
}

func (m *memRepo) UpdateReminderFlags(ctx context.Context, id uuid.UUID, reminder24h, reminder1h bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Reminder24hSent = reminder24h
	b.Reminder1hSent = reminder1h
	return nil
}

func (m *memRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			copied := *b
			copied.Seat = m.seats[b.SeatID]
			out = append(out, copied)
		}
	}
	return out, nil
}

func (m *memRepo) ListByDate(ctx context.Context, date, timeSlot string, withUsers bool) ([]Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Booking
	for _, b := range m.bookings {
		if b.Status != StatusActive || b.Date != date {
			continue
		}
		if timeSlot != "" && b.TimeSlot != timeSlot {
			continue
		}
		copied := *b
		copied.Seat = m.seats[b.SeatID]
		if withUsers {
			copied.User = m.users[b.UserID]
		}
		out = append(out, copied)
	}
	return out, nil
}

func (m *memRepo) ActiveForReminders(ctx context.Context, dateFrom string) ([]Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Booking
	for _, b := range m.bookings {
		if b.Status == StatusActive && b.Date >= dateFrom {
			copied := *b
			copied.Seat = m.seats[b.SeatID]
			copied.User = m.users[b.UserID]
			out = append(out, copied)
		}
	}
	return out, nil
}

func (m *memRepo) SeatUsage(ctx context.Context) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	usage := make(map[string]int64)
	for _, b := range m.bookings {
		if b.Status != StatusActive {
			continue
		}
		if seat, ok := m.seats[b.SeatID]; ok {
			usage[seat.SeatNumber]++
		}
	}
	return usage, nil
}

func (m *memRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var purged int64
	for id, b := range m.bookings {
		if b.CreatedAt.Before(cutoff) {
			delete(m.bookings, id)
			purged++
		}
	}
	return purged, nil
}

// memSeatRepo serves seats out of the shared memRepo maps
type memSeatRepo struct{ repo *memRepo }

func (m *memSeatRepo) Create(ctx context.Context, seat *seats.Seat) error { return nil }
func (m *memSeatRepo) GetByID(ctx context.Context, id uuid.UUID) (*seats.Seat, error) {
	m.repo.mu.Lock()
	defer m.repo.mu.Unlock()
	seat, ok := m.repo.seats[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return seat, nil
}
func (m *memSeatRepo) GetAll(ctx context.Context) ([]seats.Seat, error)       { return nil, nil }
func (m *memSeatRepo) Update(ctx context.Context, seat *seats.Seat) error     { return nil }
func (m *memSeatRepo) Delete(ctx context.Context, id uuid.UUID) error         { return nil }
func (m *memSeatRepo) CountActiveBookings(ctx context.Context, seatID uuid.UUID) (int64, error) {
	return 0, nil
}
func (m *memSeatRepo) UpsertMany(ctx context.Context, s []seats.Seat) (int64, error) { return 0, nil }
func (m *memSeatRepo) Count(ctx context.Context) (int64, error)                      { return 0, nil }

// memUserDir serves users out of the shared memRepo maps
type memUserDir struct{ repo *memRepo }

func (m *memUserDir) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	m.repo.mu.Lock()
	defer m.repo.mu.Unlock()
	if u, ok := m.repo.users[uid]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserDir) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	m.repo.mu.Lock()
	defer m.repo.mu.Unlock()
	for _, u := range m.repo.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fixture struct {
	repo    *memRepo
	service *service
	user    *users.User
	seatA1  *seats.Seat
	seatA2  *seats.Seat
	now     time.Time
	date    string
	slot    time.Time // the 09:00 reservation instant on f.date
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := newMemRepo()

	user := &users.User{ID: uuid.New(), Name: "Asha", Email: "asha@seatly.io", Role: users.RoleIntern}
	repo.users[user.ID] = user

	seatA1 := &seats.Seat{ID: uuid.New(), SeatNumber: "A1", Location: "Floor 1", Status: seats.StatusAvailable}
	seatA2 := &seats.Seat{ID: uuid.New(), SeatNumber: "A2", Location: "Floor 1", Status: seats.StatusAvailable}
	repo.seats[seatA1.ID] = seatA1
	repo.seats[seatA2.ID] = seatA2

	slots, err := timeslot.NewSlotSet([]string{"09:00", "11:00", "13:00", "15:00", "17:00"})
	require.NoError(t, err)

	// Token expiry is checked against the wall clock, so the booked slot
	// must sit in the real future. Book two days out and freeze the
	// service clock at 07:00 the day before.
	date := time.Now().AddDate(0, 0, 2).Format(timeslot.DateLayout)
	instant, err := timeslot.Parse(date, "09:00")
	require.NoError(t, err)
	now := instant.Time().Add(-26 * time.Hour)

	cfg := config.Load()
	svc := &service{
		repo:      repo,
		seats:     &memSeatRepo{repo: repo},
		userDir:   &memUserDir{repo: repo},
		validator: NewValidator(slots, 60*time.Minute),
		tokens:    NewTokenIssuer("test-secret", 2*time.Hour),
		cfg:       cfg.Booking,
		idemTTL:   cfg.Redis.IdempotencyTTL,
		logger:    logger.GetDefault(),
		now:       func() time.Time { return now },
	}

	return &fixture{
		repo:    repo,
		service: svc,
		user:    user,
		seatA1:  seatA1,
		seatA2:  seatA2,
		now:     now,
		date:    date,
		slot:    instant.Time(),
	}
}

func (f *fixture) setNow(t time.Time) {
	f.now = t
	f.service.now = func() time.Time { return t }
}

func (f *fixture) create(t *testing.T, seatID uuid.UUID) *BookingResponse {
	t.Helper()
	resp, err := f.service.Create(context.Background(), f.user.ID, CreateBookingRequest{
		SeatID:   seatID,
		Date:     f.date,
		TimeSlot: "09:00",
	}, "")
	require.NoError(t, err)
	return resp
}

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)

	resp := f.create(t, f.seatA1.ID)
	assert.Equal(t, StatusActive, resp.Status)
	assert.Equal(t, f.seatA1.ID, resp.SeatID)
	assert.False(t, resp.CheckedIn)
	assert.NotEmpty(t, resp.QRToken, "active future booking carries a QR token")
	require.NotNil(t, resp.CalendarLinks)
	assert.Contains(t, resp.CalendarLinks.Google, "calendar.google.com")
}

func TestCreateBookingConflicts(t *testing.T) {
	f := newFixture(t)
	f.create(t, f.seatA1.ID)

	t.Run("same seat and slot by another user", func(t *testing.T) {
		other := &users.User{ID: uuid.New(), Name: "Ben", Email: "ben@seatly.io", Role: users.RoleIntern}
		f.repo.users[other.ID] = other

		_, err := f.service.Create(context.Background(), other.ID, CreateBookingRequest{
			SeatID: f.seatA1.ID, Date: f.date, TimeSlot: "09:00",
		}, "")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
		assert.Equal(t, "Seat already booked for this time slot", apperrors.MessageOf(err))
	})

	t.Run("second seat same day by same user", func(t *testing.T) {
		_, err := f.service.Create(context.Background(), f.user.ID, CreateBookingRequest{
			SeatID: f.seatA2.ID, Date: f.date, TimeSlot: "11:00",
		}, "")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
		assert.Equal(t, "You can reserve only one seat per day", apperrors.MessageOf(err))
	})
}

func TestCreateBookingRaceLosesAsConflict(t *testing.T) {
	f := newFixture(t)

	// Simulate losing the validate/persist race: the winner appears after
	// validation passed, so Create hits the unique index.
	winner := &users.User{ID: uuid.New(), Name: "Ben", Email: "ben@seatly.io", Role: users.RoleIntern}
	f.repo.users[winner.ID] = winner

	const attempts = 2
	results := make(chan error, attempts)
	for _, uid := range []uuid.UUID{f.user.ID, winner.ID} {
		go func(id uuid.UUID) {
			_, err := f.service.Create(context.Background(), id, CreateBookingRequest{
				SeatID: f.seatA1.ID, Date: f.date, TimeSlot: "09:00",
			}, "")
			results <- err
		}(uid)
	}

	var failures int
	for i := 0; i < attempts; i++ {
		if err := <-results; err != nil {
			failures++
			assert.True(t, apperrors.Is(err, apperrors.KindConflict))
		}
	}
	assert.Equal(t, 1, failures, "exactly one attempt loses")

	occupied, err := f.repo.ActiveBySeatSlot(context.Background(), f.seatA1.ID, f.date, "09:00", uuid.Nil)
	require.NoError(t, err)
	require.NotNil(t, occupied)
}

func TestModifyBooking(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, f.seatA1.ID)

	t.Run("moves seat and frees the old one", func(t *testing.T) {
		resp, err := f.service.Modify(context.Background(), f.user.ID, created.ID, UpdateBookingRequest{
			SeatID: f.seatA2.ID, Date: f.date, TimeSlot: "09:00",
		})
		require.NoError(t, err)
		assert.Equal(t, f.seatA2.ID, resp.SeatID)

		freed, err := f.repo.ActiveBySeatSlot(context.Background(), f.seatA1.ID, f.date, "09:00", uuid.Nil)
		require.NoError(t, err)
		assert.Nil(t, freed, "original seat is free again")

		taken, err := f.repo.ActiveBySeatSlot(context.Background(), f.seatA2.ID, f.date, "09:00", uuid.Nil)
		require.NoError(t, err)
		require.NotNil(t, taken)
		assert.Equal(t, created.ID, taken.ID)
	})

	t.Run("resets check-in and reminder flags", func(t *testing.T) {
		stored := f.repo.bookings[created.ID]
		now := f.now
		stored.CheckedInAt = &now
		stored.Reminder24hSent = true

		_, err := f.service.Modify(context.Background(), f.user.ID, created.ID, UpdateBookingRequest{
			SeatID: f.seatA1.ID, Date: f.date, TimeSlot: "11:00",
		})
		require.NoError(t, err)

		stored = f.repo.bookings[created.ID]
		assert.Nil(t, stored.CheckedInAt)
		assert.Nil(t, stored.CheckedInBy)
		assert.False(t, stored.Reminder24hSent)
		assert.False(t, stored.Reminder1hSent)
	})

	t.Run("rejects non-owner", func(t *testing.T) {
		_, err := f.service.Modify(context.Background(), uuid.New(), created.ID, UpdateBookingRequest{
			SeatID: f.seatA2.ID, Date: f.date, TimeSlot: "13:00",
		})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})

	t.Run("rejects once original instant passed", func(t *testing.T) {
		f.setNow(f.slot.Add(3 * time.Hour)) // past the 11:00 slot

		_, err := f.service.Modify(context.Background(), f.user.ID, created.ID, UpdateBookingRequest{
			SeatID: f.seatA2.ID, Date: f.date, TimeSlot: "13:00",
		})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindTimingViolation))
		assert.Equal(t, "Only future reservations can be modified", apperrors.MessageOf(err))
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("owner cancels future booking", func(t *testing.T) {
		f := newFixture(t)
		created := f.create(t, f.seatA1.ID)

		require.NoError(t, f.service.Cancel(context.Background(), f.user.ID, users.RoleIntern, created.ID))
		assert.Equal(t, StatusCancelled, f.repo.bookings[created.ID].Status)
	})

	t.Run("owner cannot cancel past booking", func(t *testing.T) {
		f := newFixture(t)
		created := f.create(t, f.seatA1.ID)
		f.setNow(f.slot.Add(time.Hour))

		err := f.service.Cancel(context.Background(), f.user.ID, users.RoleIntern, created.ID)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindTimingViolation))
	})

	t.Run("admin cancels past booking", func(t *testing.T) {
		f := newFixture(t)
		created := f.create(t, f.seatA1.ID)
		f.setNow(f.slot.Add(time.Hour))

		admin := uuid.New()
		require.NoError(t, f.service.Cancel(context.Background(), admin, users.RoleAdmin, created.ID))
		assert.Equal(t, StatusCancelled, f.repo.bookings[created.ID].Status)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		f := newFixture(t)
		created := f.create(t, f.seatA1.ID)

		err := f.service.Cancel(context.Background(), uuid.New(), users.RoleIntern, created.ID)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})
}

func TestCheckInByToken(t *testing.T) {
	issue := func(t *testing.T, f *fixture, bookingID uuid.UUID) string {
		t.Helper()
		resp, err := f.service.IssueCheckInToken(context.Background(), f.user.ID, users.RoleIntern, bookingID)
		require.NoError(t, err)
		return resp.QRToken
	}
	admin := uuid.New()

	t.Run("succeeds inside the window", func(t *testing.T) {
		f := newFixture(t)
		created := f.create(t, f.seatA1.ID)
		token := issue(t, f, created.ID)

		// window opens 30 minutes before the slot
		f.setNow(f.slot.Add(-30 * time.Minute))

		resp, err := f.service.CheckInByToken(context.Background(), admin, token)
		require.NoError(t, err)
		assert.True(t, resp.CheckedIn)
		require.NotNil(t, resp.CheckedInBy)
		assert.Equal(t, admin, *resp.CheckedInBy)
	})

	t.Run("double check-in rejected", func(t *testing.T) {
		f := newFixture(t)
		created := f.create(t, f.seatA1.ID)
		token := issue(t, f, created.ID)
		f.setNow(f.slot)

		_, err := f.service.CheckInByToken(context.Background(), admin, token)
		require.NoError(t, err)

		_, err = f.service.CheckInByToken(context.Background(), admin, token)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
		assert.Equal(t, "Booking already checked in", apperrors.MessageOf(err))
	})

	t.Run("too early rejected", func(t *testing.T) {
		f := newFixture(t)
		created := f.create(t, f.seatA1.ID)
		token := issue(t, f, created.ID)
		f.setNow(f.slot.Add(-31 * time.Minute))

		_, err := f.service.CheckInByToken(context.Background(), admin, token)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindTimingViolation))
	})

	t.Run("too late rejected", func(t *testing.T) {
		f := newFixture(t)
		created := f.create(t, f.seatA1.ID)
		token := issue(t, f, created.ID)
		f.setNow(f.slot.Add(2*time.Hour + time.Minute))

		_, err := f.service.CheckInByToken(context.Background(), admin, token)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindTimingViolation))
	})

	t.Run("cancelled booking rejected", func(t *testing.T) {
		f := newFixture(t)
		created := f.create(t, f.seatA1.ID)
		token := issue(t, f, created.ID)
		require.NoError(t, f.service.Cancel(context.Background(), f.user.ID, users.RoleIntern, created.ID))
		f.setNow(f.slot)

		_, err := f.service.CheckInByToken(context.Background(), admin, token)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
		assert.Equal(t, "Booking is not active", apperrors.MessageOf(err))
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.CheckInByToken(context.Background(), admin, "bogus")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindTokenInvalid))
	})
}

func TestIssueCheckInToken(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, f.seatA1.ID)

	t.Run("stranger rejected", func(t *testing.T) {
		_, err := f.service.IssueCheckInToken(context.Background(), uuid.New(), users.RoleIntern, created.ID)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})

	t.Run("admin allowed", func(t *testing.T) {
		resp, err := f.service.IssueCheckInToken(context.Background(), uuid.New(), users.RoleAdmin, created.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.QRToken)
	})

	t.Run("cancelled booking has no token", func(t *testing.T) {
		require.NoError(t, f.service.Cancel(context.Background(), f.user.ID, users.RoleIntern, created.ID))
		_, err := f.service.IssueCheckInToken(context.Background(), f.user.ID, users.RoleIntern, created.ID)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	})
}

func TestAssignSeat(t *testing.T) {
	f := newFixture(t)

	t.Run("assigns to intern by email", func(t *testing.T) {
		resp, err := f.service.AssignSeat(context.Background(), AssignSeatRequest{
			Email: "Asha@Seatly.io ", SeatID: f.seatA1.ID, Date: f.date, TimeSlot: "09:00",
		})
		require.NoError(t, err)
		assert.Equal(t, f.user.ID, resp.UserID)
	})

	t.Run("daily limit reads as intern conflict", func(t *testing.T) {
		_, err := f.service.AssignSeat(context.Background(), AssignSeatRequest{
			Email: "asha@seatly.io", SeatID: f.seatA2.ID, Date: f.date, TimeSlot: "11:00",
		})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
		assert.Equal(t, "Intern already has a booking for this date", apperrors.MessageOf(err))
	})

	t.Run("admins cannot be assigned seats", func(t *testing.T) {
		adminUser := &users.User{ID: uuid.New(), Name: "Root", Email: "root@seatly.io", Role: users.RoleAdmin}
		f.repo.users[adminUser.ID] = adminUser

		_, err := f.service.AssignSeat(context.Background(), AssignSeatRequest{
			Email: "root@seatly.io", SeatID: f.seatA2.ID, Date: f.date, TimeSlot: "11:00",
		})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
		assert.Equal(t, "Intern not found", apperrors.MessageOf(err))
	})

	t.Run("unknown email rejected", func(t *testing.T) {
		_, err := f.service.AssignSeat(context.Background(), AssignSeatRequest{
			Email: "ghost@seatly.io", SeatID: f.seatA2.ID, Date: f.date, TimeSlot: "11:00",
		})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	})
}

func TestSeatUsage(t *testing.T) {
	f := newFixture(t)
	f.create(t, f.seatA1.ID)

	usage, err := f.service.GetSeatUsage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), usage["A1"])
}

func TestPurgeExpired(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, f.seatA1.ID)

	// Age the record past the retention horizon
	f.repo.bookings[created.ID].CreatedAt = f.now.Add(-181 * 24 * time.Hour)

	purged, err := f.service.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
	_, err = f.repo.GetByID(context.Background(), created.ID)
	assert.Error(t, err)
}
