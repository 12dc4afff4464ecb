package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ActiveBySeatSlot(ctx context.Context, seatID uuid.UUID, date, timeSlot string, excludeID uuid.UUID) (*Booking, error)
	ActiveByUserDate(ctx context.Context, userID uuid.UUID, date string, excludeID uuid.UUID) (*Booking, error)
	Update(ctx context.Context, booking *Booking) error
	UpdateReminderFlags(ctx context.Context, id uuid.UUID, reminder24h, reminder1h bool) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	ListByDate(ctx context.Context, date, timeSlot string, withUsers bool) ([]Booking, error)
	ActiveForReminders(ctx context.Context, dateFrom string) ([]Booking, error)
	SeatUsage(ctx context.Context) (map[string]int64, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Seat").
		Preload("User").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ActiveBySeatSlot returns the active booking occupying (seat, date, slot),
// or nil when the slot is free. excludeID skips the booking being modified.
func (r *repository) ActiveBySeatSlot(ctx context.Context, seatID uuid.UUID, date, timeSlot string, excludeID uuid.UUID) (*Booking, error) {
	query := r.db.WithContext(ctx).
		Where("seat_id = ? AND date = ? AND time_slot = ? AND status = ?", seatID, date, timeSlot, StatusActive)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var booking Booking
	err := query.First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ActiveByUserDate returns the user's active booking on a date, or nil
func (r *repository) ActiveByUserDate(ctx context.Context, userID uuid.UUID, date string, excludeID uuid.UUID) (*Booking, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND status = ?", userID, date, StatusActive)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var booking Booking
	err := query.First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) Update(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// UpdateReminderFlags persists only the two reminder flags
func (r *repository) UpdateReminderFlags(ctx context.Context, id uuid.UUID, reminder24h, reminder1h bool) error {
	return r.db.WithContext(ctx).Model(&Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reminder_24h_sent": reminder24h,
			"reminder_1h_sent":  reminder1h,
		}).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Seat").
		Where("user_id = ?", userID).
		Order("date DESC, time_slot DESC, created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// ListByDate returns active bookings for a date, optionally narrowed to one
// slot. withUsers adds the user relation for admin views.
func (r *repository) ListByDate(ctx context.Context, date, timeSlot string, withUsers bool) ([]Booking, error) {
	query := r.db.WithContext(ctx).
		Preload("Seat").
		Where("date = ? AND status = ?", date, StatusActive)
	if timeSlot != "" {
		query = query.Where("time_slot = ?", timeSlot)
	}
	if withUsers {
		query = query.Preload("User")
	}

	var bookings []Booking
	err := query.Order("time_slot ASC").Find(&bookings).Error
	return bookings, err
}

// ActiveForReminders loads every active booking on or after dateFrom with
// its seat and user, the working set of one reminder sweep.
func (r *repository) ActiveForReminders(ctx context.Context, dateFrom string) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Seat").
		Preload("User").
		Where("status = ? AND date >= ?", StatusActive, dateFrom).
		Find(&bookings).Error
	return bookings, err
}

// SeatUsage counts active bookings per seat number
func (r *repository) SeatUsage(ctx context.Context) (map[string]int64, error) {
	type row struct {
		SeatNumber string
		Count      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select("seats.seat_number AS seat_number, COUNT(*) AS count").
		Joins("JOIN seats ON seats.id = bookings.seat_id").
		Where("bookings.status = ?", StatusActive).
		Group("seats.seat_number").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	usage := make(map[string]int64, len(rows))
	for _, r := range rows {
		usage[r.SeatNumber] = r.Count
	}
	return usage, nil
}

// PurgeOlderThan deletes bookings created before the cutoff, regardless of
// status. Returns the number of rows removed.
func (r *repository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&Booking{})
	return result.RowsAffected, result.Error
}
