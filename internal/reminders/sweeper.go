package reminders

import (
	"context"
	"time"

	"seatly/internal/bookings"
	"seatly/internal/notifications"
	"seatly/internal/shared/config"
	"seatly/internal/shared/timeslot"
	"seatly/pkg/logger"
)

// Sender delivers one notification synchronously, reporting failure so a
// reminder flag is only set after a successful attempt. The notifications
// service satisfies it.
type Sender interface {
	SendSync(ctx context.Context, n *notifications.Notification) error
}

// Sweeper walks active bookings on a fixed cadence and fires the 24-hour
// and 1-hour reminders. Exactly-once delivery rests on the half-open
// minute windows matching the sweep interval: each reservation sits inside
// a window for exactly one cycle, so a sweep that runs on time sends each
// tier once. A sweep missed while the process is down skips that window
// for good; this is best-effort, not at-least-once.
type Sweeper struct {
	repo         bookings.Repository
	sender       Sender
	slotDuration time.Duration
	sendTimeout  time.Duration
	interval     int
	tier24Min    int
	tier1Min     int
	logger       *logger.Logger
	now          func() time.Time
}

func NewSweeper(repo bookings.Repository, sender Sender, cfg *config.Config, log *logger.Logger) *Sweeper {
	return &Sweeper{
		repo:         repo,
		sender:       sender,
		slotDuration: cfg.Booking.SlotDuration,
		sendTimeout:  cfg.Reminder.SendTimeout,
		interval:     int(cfg.Reminder.SweepInterval.Minutes()),
		tier24Min:    cfg.Reminder.Reminder24hMin,
		tier1Min:     cfg.Reminder.Reminder1hMin,
		logger:       log,
		now:          time.Now,
	}
}

// Sweep runs one reminder cycle. Per-booking failures are logged and the
// loop moves on; only a failure to load the working set aborts the cycle.
func (s *Sweeper) Sweep(ctx context.Context) error {
	now := s.now()

	// The 1-day lookback covers slots that started just before midnight.
	dateFrom := timeslot.Today(now.AddDate(0, 0, -1))
	active, err := s.repo.ActiveForReminders(ctx, dateFrom)
	if err != nil {
		return err
	}

	for i := range active {
		booking := &active[i]

		instant, err := timeslot.Parse(booking.Date, booking.TimeSlot)
		if err != nil {
			s.logger.Error("Skipping booking with unparseable slot", "booking_id", booking.ID, "date", booking.Date, "time_slot", booking.TimeSlot)
			continue
		}
		if !instant.After(now) {
			continue
		}

		minutes := instant.MinutesUntil(now)
		mutated := false

		if !booking.Reminder24hSent && s.inWindow(minutes, s.tier24Min) {
			if s.send(ctx, booking, instant, notifications.BuildReminder24h, "24h") {
				booking.Reminder24hSent = true
				mutated = true
			}
		}
		if !booking.Reminder1hSent && s.inWindow(minutes, s.tier1Min) {
			if s.send(ctx, booking, instant, notifications.BuildReminder1h, "1h") {
				booking.Reminder1hSent = true
				mutated = true
			}
		}

		if mutated {
			if err := s.repo.UpdateReminderFlags(ctx, booking.ID, booking.Reminder24hSent, booking.Reminder1hSent); err != nil {
				s.logger.Error("Failed to persist reminder flags", "error", err, "booking_id", booking.ID)
			}
		}
	}

	return nil
}

// inWindow reports whether minutes-until falls in (threshold-interval,
// threshold]. Half-open so adjacent sweep cycles never both claim the same
// reservation.
func (s *Sweeper) inWindow(minutes, threshold int) bool {
	return minutes > threshold-s.interval && minutes <= threshold
}

func (s *Sweeper) send(ctx context.Context, booking *bookings.Booking, instant timeslot.ReservationInstant, build func(notifications.BookingContext) *notifications.Notification, tier string) bool {
	if booking.Seat == nil || booking.User == nil {
		s.logger.Error("Skipping reminder for booking without relations", "booking_id", booking.ID, "tier", tier)
		return false
	}

	n := build(notifications.BookingContext{
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		UserName:   booking.User.Name,
		UserEmail:  booking.User.Email,
		UserPhone:  booking.User.Phone,
		SeatNumber: booking.Seat.SeatNumber,
		Location:   booking.Seat.Location,
		Date:       booking.Date,
		TimeSlot:   booking.TimeSlot,
		Start:      instant.Time(),
		End:        instant.End(s.slotDuration),
	})

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	if err := s.sender.SendSync(sendCtx, n); err != nil {
		s.logger.Error("Reminder send failed", "error", err, "booking_id", booking.ID, "tier", tier)
		return false
	}

	s.logger.LogReminderSent(ctx, booking.ID.String(), tier)
	return true
}
