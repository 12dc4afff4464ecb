package bookings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"seatly/internal/notifications"
	"seatly/internal/seats"
	"seatly/internal/shared/apperrors"
	"seatly/internal/shared/config"
	"seatly/internal/shared/timeslot"
	"seatly/internal/users"
	"seatly/pkg/logger"
)

// UserDirectory is the user lookup surface the booking flows need. The auth
// repository satisfies it.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id string) (*users.User, error)
	GetUserByEmail(ctx context.Context, email string) (*users.User, error)
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateBookingRequest, idempotencyKey string) (*BookingResponse, error)
	Modify(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID, req UpdateBookingRequest) (*BookingResponse, error)
	Cancel(ctx context.Context, actorID uuid.UUID, actorRole users.Role, bookingID uuid.UUID) error
	CheckInByToken(ctx context.Context, actorID uuid.UUID, tokenString string) (*BookingResponse, error)
	IssueCheckInToken(ctx context.Context, actorID uuid.UUID, actorRole users.Role, bookingID uuid.UUID) (*QRTokenResponse, error)
	CheckInQRCode(ctx context.Context, actorID uuid.UUID, actorRole users.Role, bookingID uuid.UUID) ([]byte, error)
	GetMyBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error)
	GetBookingsByDate(ctx context.Context, date, timeSlot string, isAdmin bool) ([]BookingResponse, error)
	GetBookingsByUserEmail(ctx context.Context, email string) ([]BookingResponse, error)
	GetSeatUsage(ctx context.Context) (SeatUsageResponse, error)
	AssignSeat(ctx context.Context, req AssignSeatRequest) (*BookingResponse, error)
	BookingICS(ctx context.Context, actorID uuid.UUID, actorRole users.Role, bookingID uuid.UUID) ([]byte, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type service struct {
	repo      Repository
	seats     seats.Repository
	userDir   UserDirectory
	validator *Validator
	tokens    *TokenIssuer
	notifier  notifications.Publisher
	redis     *redis.Client
	cfg       config.BookingConfig
	idemTTL   time.Duration
	logger    *logger.Logger
	now       func() time.Time
}

func NewService(
	repo Repository,
	seatRepo seats.Repository,
	userDir UserDirectory,
	validator *Validator,
	tokens *TokenIssuer,
	notifier notifications.Publisher,
	redisClient *redis.Client,
	cfg *config.Config,
	log *logger.Logger,
) Service {
	return &service{
		repo:      repo,
		seats:     seatRepo,
		userDir:   userDir,
		validator: validator,
		tokens:    tokens,
		notifier:  notifier,
		redis:     redisClient,
		cfg:       cfg.Booking,
		idemTTL:   cfg.Redis.IdempotencyTTL,
		logger:    log,
		now:       time.Now,
	}
}

// Create reserves a seat for the user. A client-supplied Idempotency-Key
// makes retries safe: the first request that claims the key wins and
// subsequent retries get the same booking back.
func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateBookingRequest, idempotencyKey string) (*BookingResponse, error) {
	if idempotencyKey != "" {
		if existing, err := s.claimIdempotencyKey(ctx, userID, idempotencyKey); err != nil {
			return nil, err
		} else if existing != nil {
			return existing, nil
		}
	}

	booking, err := s.validateAndPersist(ctx, userID, req.SeatID, req.Date, req.TimeSlot, uuid.Nil)
	if err != nil {
		return nil, err
	}

	if idempotencyKey != "" {
		s.storeIdempotencyResult(ctx, userID, idempotencyKey, booking.ID)
	}

	s.logger.LogBookingCreated(ctx, booking.ID.String(), booking.SeatID.String(), userID.String(), booking.Date, booking.TimeSlot)
	s.notifyBooking(booking, notifications.BuildBookingConfirmed)

	return s.toResponse(s.reload(ctx, booking)), nil
}

// Modify replaces a booking's seat, date and slot. Only the owner may
// modify, and only while the original reservation instant is still in the
// future. Check-in and reminder state reset because the booking's time
// identity changed.
func (s *service) Modify(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID, req UpdateBookingRequest) (*BookingResponse, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, apperrors.Forbidden("Not authorized to modify this booking")
	}
	if !s.isFuture(booking) {
		return nil, apperrors.TimingViolation("Only future reservations can be modified")
	}

	if _, err := s.validate(ctx, userID, req.SeatID, req.Date, req.TimeSlot, booking.ID); err != nil {
		return nil, err
	}

	booking.SeatID = req.SeatID
	booking.Date = req.Date
	booking.TimeSlot = req.TimeSlot
	booking.CheckedInAt = nil
	booking.CheckedInBy = nil
	booking.Reminder24hSent = false
	booking.Reminder1hSent = false
	booking.Seat = nil
	booking.User = nil

	if err := s.repo.Update(ctx, booking); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.disambiguateDuplicate(ctx, userID, req.SeatID, req.Date, req.TimeSlot, booking.ID)
		}
		return nil, apperrors.Internal("failed to update booking", err)
	}

	s.notifyBooking(booking, notifications.BuildBookingUpdated)

	return s.toResponse(s.reload(ctx, booking)), nil
}

// Cancel sets the booking to cancelled. Owners may cancel future bookings;
// admins may cancel any booking, past included.
func (s *service) Cancel(ctx context.Context, actorID uuid.UUID, actorRole users.Role, bookingID uuid.UUID) error {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	isOwner := booking.UserID == actorID
	isAdmin := actorRole.IsAdmin()
	if !isOwner && !isAdmin {
		return apperrors.Forbidden("Not authorized to cancel this booking")
	}
	if !isAdmin && !s.isFuture(booking) {
		return apperrors.TimingViolation("Only future reservations can be cancelled")
	}

	booking.Status = StatusCancelled
	if err := s.repo.Update(ctx, booking); err != nil {
		return apperrors.Internal("failed to cancel booking", err)
	}

	s.logger.LogBookingCancelled(ctx, booking.ID.String(), actorID.String())
	s.notifyBooking(booking, notifications.BuildBookingCancelled)

	return nil
}

// CheckInByToken verifies the QR token and marks the booking checked in.
// The window is [slot start - CheckInBefore, slot start + CheckInAfter].
func (s *service) CheckInByToken(ctx context.Context, actorID uuid.UUID, tokenString string) (*BookingResponse, error) {
	bookingID, _, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsActive() {
		return nil, apperrors.Conflict("Booking is not active")
	}
	if booking.IsCheckedIn() {
		return nil, apperrors.Conflict("Booking already checked in")
	}

	instant, err := timeslot.Parse(booking.Date, booking.TimeSlot)
	if err != nil {
		return nil, err
	}
	if !instant.WithinWindow(s.now(), s.cfg.CheckInBefore, s.cfg.CheckInAfter) {
		return nil, apperrors.TimingViolation("Check-in is allowed from 30 minutes before to 2 hours after slot time")
	}

	now := s.now()
	booking.CheckedInAt = &now
	actor := actorID
	booking.CheckedInBy = &actor

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, apperrors.Internal("failed to record check-in", err)
	}

	s.logger.LogCheckIn(ctx, booking.ID.String(), actorID.String())
	return s.toResponse(booking), nil
}

// IssueCheckInToken returns a fresh QR token for an active booking. Owner
// or admin only.
func (s *service) IssueCheckInToken(ctx context.Context, actorID uuid.UUID, actorRole users.Role, bookingID uuid.UUID) (*QRTokenResponse, error) {
	booking, err := s.authorizedBooking(ctx, actorID, actorRole, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsActive() {
		return nil, apperrors.Conflict("Only active bookings have QR check-in")
	}

	instant, err := timeslot.Parse(booking.Date, booking.TimeSlot)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(booking, instant, s.now())
	if err != nil {
		return nil, err
	}

	return &QRTokenResponse{BookingID: booking.ID, QRToken: token}, nil
}

// CheckInQRCode renders the booking's check-in token as a PNG QR image
func (s *service) CheckInQRCode(ctx context.Context, actorID uuid.UUID, actorRole users.Role, bookingID uuid.UUID) ([]byte, error) {
	tokenResp, err := s.IssueCheckInToken(ctx, actorID, actorRole, bookingID)
	if err != nil {
		return nil, err
	}
	return QRCodePNG(tokenResp.QRToken, 256)
}

func (s *service) GetMyBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error) {
	bookings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to fetch bookings", err)
	}
	return s.toResponses(bookings), nil
}

func (s *service) GetBookingsByDate(ctx context.Context, date, timeSlot string, isAdmin bool) ([]BookingResponse, error) {
	if date == "" {
		return nil, apperrors.InvalidInput("Date is required")
	}
	bookings, err := s.repo.ListByDate(ctx, date, timeSlot, isAdmin)
	if err != nil {
		return nil, apperrors.Internal("failed to fetch bookings", err)
	}
	return s.toResponses(bookings), nil
}

func (s *service) GetBookingsByUserEmail(ctx context.Context, email string) ([]BookingResponse, error) {
	user, err := s.userDir.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, apperrors.NotFound("User not found")
	}

	bookings, err := s.repo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, apperrors.Internal("failed to fetch bookings", err)
	}
	return s.toResponses(bookings), nil
}

func (s *service) GetSeatUsage(ctx context.Context) (SeatUsageResponse, error) {
	usage, err := s.repo.SeatUsage(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to compute seat usage", err)
	}
	return usage, nil
}

// AssignSeat books on behalf of an intern, identified by email. The same
// validation rules apply; only the actor differs.
func (s *service) AssignSeat(ctx context.Context, req AssignSeatRequest) (*BookingResponse, error) {
	user, err := s.userDir.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil || user.Role.IsAdmin() {
		return nil, apperrors.NotFound("Intern not found")
	}

	booking, err := s.validateAndPersist(ctx, user.ID, req.SeatID, req.Date, req.TimeSlot, uuid.Nil)
	if err != nil {
		// The daily-limit message reads differently on the admin path
		if apperrors.Is(err, apperrors.KindConflict) && apperrors.MessageOf(err) == "You can reserve only one seat per day" {
			return nil, apperrors.Conflict("Intern already has a booking for this date")
		}
		return nil, err
	}

	s.logger.LogBookingCreated(ctx, booking.ID.String(), booking.SeatID.String(), user.ID.String(), booking.Date, booking.TimeSlot)
	s.notifyBooking(booking, notifications.BuildSeatAssigned)

	return s.toResponse(s.reload(ctx, booking)), nil
}

// BookingICS renders the booking as an iCalendar file for download
func (s *service) BookingICS(ctx context.Context, actorID uuid.UUID, actorRole users.Role, bookingID uuid.UUID) ([]byte, error) {
	booking, err := s.authorizedBooking(ctx, actorID, actorRole, bookingID)
	if err != nil {
		return nil, err
	}

	bc, err := s.bookingContext(booking)
	if err != nil {
		return nil, err
	}
	return notifications.ICSAttachmentFor(*bc).Content, nil
}

// PurgeExpired removes bookings past the retention horizon
func (s *service) PurgeExpired(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.cfg.RetentionPeriod)
	return s.repo.PurgeOlderThan(ctx, cutoff)
}

// --- internals ---

func (s *service) getBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Booking not found")
		}
		return nil, apperrors.Internal("failed to fetch booking", err)
	}
	return booking, nil
}

func (s *service) authorizedBooking(ctx context.Context, actorID uuid.UUID, actorRole users.Role, bookingID uuid.UUID) (*Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actorID && !actorRole.IsAdmin() {
		return nil, apperrors.Forbidden("Not authorized")
	}
	return booking, nil
}

// validate runs the reservation validator against current store state
func (s *service) validate(ctx context.Context, userID, seatID uuid.UUID, date, slot string, excludeID uuid.UUID) (timeslot.ReservationInstant, error) {
	seat, err := s.seats.GetByID(ctx, seatID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return timeslot.ReservationInstant{}, apperrors.Internal("failed to fetch seat", err)
	}

	seatConflict, err := s.repo.ActiveBySeatSlot(ctx, seatID, date, slot, excludeID)
	if err != nil {
		return timeslot.ReservationInstant{}, apperrors.Internal("failed to check seat availability", err)
	}
	userConflict, err := s.repo.ActiveByUserDate(ctx, userID, date, excludeID)
	if err != nil {
		return timeslot.ReservationInstant{}, apperrors.Internal("failed to check user bookings", err)
	}

	return s.validator.Validate(ValidationRequest{
		UserID:    userID,
		SeatID:    seatID,
		Date:      date,
		TimeSlot:  slot,
		ExcludeID: excludeID,
	}, seat, seatConflict, userConflict, s.now())
}

func (s *service) validateAndPersist(ctx context.Context, userID, seatID uuid.UUID, date, slot string, excludeID uuid.UUID) (*Booking, error) {
	if _, err := s.validate(ctx, userID, seatID, date, slot, excludeID); err != nil {
		return nil, err
	}

	booking := &Booking{
		UserID:   userID,
		SeatID:   seatID,
		Date:     date,
		TimeSlot: slot,
		Status:   StatusActive,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		// The partial unique indexes close the validate/persist race; a
		// duplicate here means someone else won it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.disambiguateDuplicate(ctx, userID, seatID, date, slot, excludeID)
		}
		return nil, apperrors.Internal("failed to create booking", err)
	}
	return booking, nil
}

// disambiguateDuplicate decides which exclusivity rule a storage-level
// duplicate violated by re-querying the winner.
func (s *service) disambiguateDuplicate(ctx context.Context, userID, seatID uuid.UUID, date, slot string, excludeID uuid.UUID) error {
	if conflict, err := s.repo.ActiveBySeatSlot(ctx, seatID, date, slot, excludeID); err == nil && conflict != nil {
		return apperrors.Conflict("Seat already booked for this time slot")
	}
	return apperrors.Conflict("You can reserve only one seat per day")
}

func (s *service) isFuture(booking *Booking) bool {
	instant, err := timeslot.Parse(booking.Date, booking.TimeSlot)
	if err != nil {
		return false
	}
	return instant.After(s.now())
}

// claimIdempotencyKey checks whether the key was already used. A key that
// resolved to a booking returns that booking; a key still in flight is a
// conflict.
func (s *service) claimIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*BookingResponse, error) {
	if s.redis == nil {
		return nil, nil
	}

	redisKey := idempotencyRedisKey(userID, key)
	ok, err := s.redis.SetNX(ctx, redisKey, "pending", s.idemTTL).Result()
	if err != nil {
		// Redis being down degrades to non-idempotent creates rather than
		// blocking bookings.
		s.logger.ErrorWithContext(ctx, "Idempotency check failed", err, map[string]interface{}{"key": key})
		return nil, nil
	}
	if ok {
		return nil, nil
	}

	val, err := s.redis.Get(ctx, redisKey).Result()
	if err != nil {
		return nil, apperrors.Conflict("Duplicate booking request")
	}
	bookingID, parseErr := uuid.Parse(val)
	if parseErr != nil {
		return nil, apperrors.Conflict("Duplicate booking request")
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(booking), nil
}

func (s *service) storeIdempotencyResult(ctx context.Context, userID uuid.UUID, key string, bookingID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, idempotencyRedisKey(userID, key), bookingID.String(), s.idemTTL).Err(); err != nil {
		s.logger.ErrorWithContext(ctx, "Failed to store idempotency result", err, map[string]interface{}{"key": key})
	}
}

func idempotencyRedisKey(userID uuid.UUID, key string) string {
	return "booking:idem:" + userID.String() + ":" + key
}

// bookingContext assembles the notification payload for a booking, loading
// seat and user when the record does not carry them.
func (s *service) bookingContext(booking *Booking) (*notifications.BookingContext, error) {
	instant, err := timeslot.Parse(booking.Date, booking.TimeSlot)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	seat := booking.Seat
	if seat == nil {
		if seat, err = s.seats.GetByID(ctx, booking.SeatID); err != nil {
			return nil, apperrors.Internal("failed to fetch seat", err)
		}
	}
	user := booking.User
	if user == nil {
		if user, err = s.userDir.GetUserByID(ctx, booking.UserID.String()); err != nil {
			return nil, apperrors.Internal("failed to fetch user", err)
		}
	}

	return &notifications.BookingContext{
		BookingID:  booking.ID,
		UserID:     user.ID,
		UserName:   user.Name,
		UserEmail:  user.Email,
		UserPhone:  user.Phone,
		SeatNumber: seat.SeatNumber,
		Location:   seat.Location,
		Date:       booking.Date,
		TimeSlot:   booking.TimeSlot,
		Start:      instant.Time(),
		End:        instant.End(s.cfg.SlotDuration),
	}, nil
}

// notifyBooking fires the side-effect notification after a persisted
// transition. It runs detached so the caller's response is never blocked,
// and failures only log.
func (s *service) notifyBooking(booking *Booking, build func(notifications.BookingContext) *notifications.Notification) {
	if s.notifier == nil {
		return
	}
	snapshot := *booking
	go func() {
		bc, err := s.bookingContext(&snapshot)
		if err != nil {
			s.logger.Error("Booking notification skipped", "error", err, "booking_id", snapshot.ID)
			return
		}
		s.notifier.Publish(context.Background(), build(*bc))
	}()
}

func (s *service) reload(ctx context.Context, booking *Booking) *Booking {
	if loaded, err := s.repo.GetByID(ctx, booking.ID); err == nil {
		return loaded
	}
	return booking
}

func (s *service) toResponse(booking *Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:              booking.ID,
		UserID:          booking.UserID,
		SeatID:          booking.SeatID,
		Date:            booking.Date,
		TimeSlot:        booking.TimeSlot,
		Status:          booking.Status,
		CheckedIn:       booking.IsCheckedIn(),
		CheckedInAt:     booking.CheckedInAt,
		CheckedInBy:     booking.CheckedInBy,
		Reminder24hSent: booking.Reminder24hSent,
		Reminder1hSent:  booking.Reminder1hSent,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
		Seat:            booking.Seat,
	}

	if booking.User != nil {
		resp.User = &UserSummary{
			ID:    booking.User.ID,
			Name:  booking.User.Name,
			Email: booking.User.Email,
			Role:  booking.User.Role,
		}
	}

	instant, err := timeslot.Parse(booking.Date, booking.TimeSlot)
	if err != nil {
		return resp
	}

	if booking.Seat != nil {
		links := notifications.CalendarLinksFor(notifications.BookingContext{
			BookingID:  booking.ID,
			SeatNumber: booking.Seat.SeatNumber,
			Location:   booking.Seat.Location,
			Date:       booking.Date,
			TimeSlot:   booking.TimeSlot,
			Start:      instant.Time(),
			End:        instant.End(s.cfg.SlotDuration),
		})
		resp.CalendarLinks = &links
	}

	if booking.IsActive() && instant.After(s.now()) {
		if token, err := s.tokens.Issue(booking, instant, s.now()); err == nil {
			resp.QRToken = token
		}
	}

	return resp
}

func (s *service) toResponses(bookings []Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, *s.toResponse(&bookings[i]))
	}
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
