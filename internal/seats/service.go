package seats

import (
	"context"
	"errors"
	"fmt"

	"seatly/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service interface defines the contract for seat administration
type Service interface {
	CreateSeat(ctx context.Context, req SeatRequest) (*Seat, error)
	GetSeat(ctx context.Context, id uuid.UUID) (*Seat, error)
	GetAllSeats(ctx context.Context) ([]Seat, error)
	UpdateSeat(ctx context.Context, id uuid.UUID, req SeatRequest) (*Seat, error)
	DeleteSeat(ctx context.Context, id uuid.UUID) error
	SeedDefaultSeats(ctx context.Context) (*SeedResult, error)
}

type service struct {
	repo Repository
}

// NewService creates a new seat service instance
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateSeat(ctx context.Context, req SeatRequest) (*Seat, error) {
	seat := &Seat{
		SeatNumber:  req.SeatNumber,
		Location:    req.Location,
		Description: req.Description,
		Status:      statusOrDefault(req.Status),
	}

	if err := s.repo.Create(ctx, seat); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Seat number already exists")
		}
		return nil, apperrors.Internal("failed to create seat", err)
	}

	return seat, nil
}

func (s *service) GetSeat(ctx context.Context, id uuid.UUID) (*Seat, error) {
	seat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Seat not found")
		}
		return nil, apperrors.Internal("failed to get seat", err)
	}
	return seat, nil
}

func (s *service) GetAllSeats(ctx context.Context) ([]Seat, error) {
	seats, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list seats", err)
	}
	return seats, nil
}

func (s *service) UpdateSeat(ctx context.Context, id uuid.UUID, req SeatRequest) (*Seat, error) {
	seat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Seat not found")
		}
		return nil, apperrors.Internal("failed to get seat", err)
	}

	seat.SeatNumber = req.SeatNumber
	seat.Location = req.Location
	seat.Description = req.Description
	seat.Status = statusOrDefault(req.Status)

	if err := s.repo.Update(ctx, seat); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Seat number already exists")
		}
		return nil, apperrors.Internal("failed to update seat", err)
	}

	return seat, nil
}

// DeleteSeat removes a seat unless an active booking still references it.
func (s *service) DeleteSeat(ctx context.Context, id uuid.UUID) error {
	active, err := s.repo.CountActiveBookings(ctx, id)
	if err != nil {
		return apperrors.Internal("failed to check seat bookings", err)
	}
	if active > 0 {
		return apperrors.Conflict("Cannot delete seat with active bookings")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Seat not found")
		}
		return apperrors.Internal("failed to delete seat", err)
	}

	return nil
}

// SeedDefaultSeats creates the default office grid: rows A-F with 8 seats
// each, rows A-C on Floor 1 and D-F on Floor 2. Existing seat numbers are
// left untouched.
func (s *service) SeedDefaultSeats(ctx context.Context) (*SeedResult, error) {
	rows := []string{"A", "B", "C", "D", "E", "F"}
	const perRow = 8

	var generated []Seat
	for rowIndex, row := range rows {
		location := "Floor 1"
		if rowIndex >= 3 {
			location = "Floor 2"
		}
		for i := 1; i <= perRow; i++ {
			generated = append(generated, Seat{
				SeatNumber:  fmt.Sprintf("%s%d", row, i),
				Location:    location,
				Description: "Zone " + row,
				Status:      StatusAvailable,
			})
		}
	}

	inserted, err := s.repo.UpsertMany(ctx, generated)
	if err != nil {
		return nil, apperrors.Internal("failed to seed seats", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to count seats", err)
	}

	return &SeedResult{
		InsertedCount: int(inserted),
		TotalSeats:    total,
	}, nil
}

func statusOrDefault(status string) Status {
	if status == "" {
		return StatusAvailable
	}
	return Status(status)
}
