package seats

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"seatly/internal/shared/apperrors"
)

type fakeSeatRepo struct {
	Repository

	seats          map[uuid.UUID]*Seat
	createErr      error
	updateErr      error
	activeBookings int64
	upserted       []Seat
}

func newFakeSeatRepo() *fakeSeatRepo {
	return &fakeSeatRepo{seats: make(map[uuid.UUID]*Seat)}
}

func (f *fakeSeatRepo) Create(ctx context.Context, seat *Seat) error {
	if f.createErr != nil {
		return f.createErr
	}
	seat.ID = uuid.New()
	f.seats[seat.ID] = seat
	return nil
}

func (f *fakeSeatRepo) GetByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	if seat, ok := f.seats[id]; ok {
		copied := *seat
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSeatRepo) Update(ctx context.Context, seat *Seat) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.seats[seat.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.seats[seat.ID] = seat
	return nil
}

func (f *fakeSeatRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.seats[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.seats, id)
	return nil
}

func (f *fakeSeatRepo) CountActiveBookings(ctx context.Context, seatID uuid.UUID) (int64, error) {
	return f.activeBookings, nil
}

func (f *fakeSeatRepo) UpsertMany(ctx context.Context, seats []Seat) (int64, error) {
	f.upserted = seats
	return int64(len(seats)), nil
}

func (f *fakeSeatRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.upserted)), nil
}

func TestCreateSeat(t *testing.T) {
	t.Run("defaults status to available", func(t *testing.T) {
		repo := newFakeSeatRepo()
		seat, err := NewService(repo).CreateSeat(context.Background(), SeatRequest{
			SeatNumber: "A1", Location: "Floor 1",
		})
		require.NoError(t, err)
		assert.Equal(t, StatusAvailable, seat.Status)
	})

	t.Run("duplicate seat number conflicts", func(t *testing.T) {
		repo := newFakeSeatRepo()
		repo.createErr = gorm.ErrDuplicatedKey

		_, err := NewService(repo).CreateSeat(context.Background(), SeatRequest{
			SeatNumber: "A1", Location: "Floor 1",
		})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
		assert.Equal(t, "Seat number already exists", apperrors.MessageOf(err))
	})
}

func TestUpdateSeat(t *testing.T) {
	repo := newFakeSeatRepo()
	svc := NewService(repo)
	seat, err := svc.CreateSeat(context.Background(), SeatRequest{SeatNumber: "A1", Location: "Floor 1"})
	require.NoError(t, err)

	t.Run("updates fields", func(t *testing.T) {
		updated, err := svc.UpdateSeat(context.Background(), seat.ID, SeatRequest{
			SeatNumber: "A1", Location: "Floor 2", Status: string(StatusUnavailable),
		})
		require.NoError(t, err)
		assert.Equal(t, "Floor 2", updated.Location)
		assert.Equal(t, StatusUnavailable, updated.Status)
	})

	t.Run("unknown seat", func(t *testing.T) {
		_, err := svc.UpdateSeat(context.Background(), uuid.New(), SeatRequest{SeatNumber: "Z9"})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	})

	t.Run("renaming onto a taken number conflicts", func(t *testing.T) {
		repo.updateErr = gorm.ErrDuplicatedKey
		defer func() { repo.updateErr = nil }()

		_, err := svc.UpdateSeat(context.Background(), seat.ID, SeatRequest{SeatNumber: "B1"})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	})
}

func TestDeleteSeat(t *testing.T) {
	t.Run("removes an unbooked seat", func(t *testing.T) {
		repo := newFakeSeatRepo()
		svc := NewService(repo)
		seat, err := svc.CreateSeat(context.Background(), SeatRequest{SeatNumber: "A1", Location: "Floor 1"})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteSeat(context.Background(), seat.ID))
		_, err = svc.GetSeat(context.Background(), seat.ID)
		assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	})

	t.Run("refuses while bookings are active", func(t *testing.T) {
		repo := newFakeSeatRepo()
		svc := NewService(repo)
		seat, err := svc.CreateSeat(context.Background(), SeatRequest{SeatNumber: "A1", Location: "Floor 1"})
		require.NoError(t, err)

		repo.activeBookings = 2
		err = svc.DeleteSeat(context.Background(), seat.ID)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
		assert.Equal(t, "Cannot delete seat with active bookings", apperrors.MessageOf(err))
	})
}

func TestSeedDefaultSeats(t *testing.T) {
	repo := newFakeSeatRepo()
	result, err := NewService(repo).SeedDefaultSeats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 48, result.InsertedCount)
	require.Len(t, repo.upserted, 48)

	byNumber := make(map[string]Seat, len(repo.upserted))
	for _, s := range repo.upserted {
		byNumber[s.SeatNumber] = s
	}

	// Rows A-C sit on Floor 1, D-F on Floor 2
	assert.Equal(t, "Floor 1", byNumber["A1"].Location)
	assert.Equal(t, "Floor 1", byNumber["C8"].Location)
	assert.Equal(t, "Floor 2", byNumber["D1"].Location)
	assert.Equal(t, "Floor 2", byNumber["F8"].Location)
	assert.Equal(t, "Zone A", byNumber["A5"].Description)
	assert.Equal(t, StatusAvailable, byNumber["B3"].Status)
}
