package seats

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, seat *Seat) error
	GetByID(ctx context.Context, id uuid.UUID) (*Seat, error)
	GetAll(ctx context.Context) ([]Seat, error)
	Update(ctx context.Context, seat *Seat) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountActiveBookings(ctx context.Context, seatID uuid.UUID) (int64, error)
	UpsertMany(ctx context.Context, seats []Seat) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, seat *Seat) error {
	return r.db.WithContext(ctx).Create(seat).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&seat).Error
	if err != nil {
		return nil, err
	}
	return &seat, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).Order("seat_number ASC").Find(&seats).Error
	return seats, err
}

func (r *repository) Update(ctx context.Context, seat *Seat) error {
	result := r.db.WithContext(ctx).Model(&Seat{}).
		Where("id = ?", seat.ID).
		Updates(map[string]interface{}{
			"seat_number": seat.SeatNumber,
			"location":    seat.Location,
			"description": seat.Description,
			"status":      seat.Status,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Seat{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountActiveBookings queries the bookings table directly. The bookings
// package imports this one, so going through its repository would be a cycle.
func (r *repository) CountActiveBookings(ctx context.Context, seatID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("bookings").
		Where("seat_id = ? AND status = ?", seatID, "ACTIVE").
		Count(&count).Error
	if err != nil {
		// bookings table may not exist yet on a fresh install mid-migration
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// UpsertMany inserts seats, skipping ones whose seat_number already exists.
// Returns the number of rows actually inserted.
func (r *repository) UpsertMany(ctx context.Context, seats []Seat) (int64, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "seat_number"}},
			DoNothing: true,
		}).
		Create(&seats)
	return result.RowsAffected, result.Error
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Seat{}).Count(&count).Error
	return count, err
}
