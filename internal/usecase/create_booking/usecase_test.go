package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
)

// Фейки репозиториев

type fakeBookingRepo struct {
	created  *domain.Booking
	createFn func(b *domain.Booking) (*domain.Booking, error)
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createFn != nil {
		return f.createFn(b)
	}
	b.ID = 101
	f.created = b
	return b, nil
}

type fakeSlotRepo struct {
	slot     *domain.ParkingSlot
	getErr   error
	claimErr error
	claimed  bool
}

func (f *fakeSlotRepo) GetByID(_ context.Context, _ int64) (*domain.ParkingSlot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.slot, nil
}

func (f *fakeSlotRepo) Claim(_ context.Context, _, _ int64) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	f.claimed = true
	return nil
}

type fakeVehicleRepo struct {
	vehicle *domain.Vehicle
	err     error
}

func (f *fakeVehicleRepo) GetByID(_ context.Context, _ int64) (*domain.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vehicle, nil
}

// fakeTxManager выполняет замыкание без настоящей транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		UserID:        1,
		ParkingSlotID: 10,
		VehicleID:     5,
		StartTime:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestExecute_Success(t *testing.T) {
	bookings := &fakeBookingRepo{}
	slots := &fakeSlotRepo{slot: &domain.ParkingSlot{ID: 10, Number: "A-10", Floor: 1, IsAvailable: true}}
	vehicles := &fakeVehicleRepo{vehicle: &domain.Vehicle{ID: 5, UserID: 1}}
	tx := &fakeTxManager{}

	uc := NewUseCase(bookings, slots, vehicles, tx, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, string(domain.BookingStatusActive), resp.Status)
	assert.Equal(t, "A-10", resp.SlotNumber)
	assert.True(t, slots.claimed)
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeSlotRepo{}, &fakeVehicleRepo{}, &fakeTxManager{}, nopLogger{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero user", func(r *Request) { r.UserID = 0 }},
		{"zero slot", func(r *Request) { r.ParkingSlotID = 0 }},
		{"zero vehicle", func(r *Request) { r.VehicleID = 0 }},
		{"zero start time", func(r *Request) { r.StartTime = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_VehicleNotFound(t *testing.T) {
	vehicles := &fakeVehicleRepo{err: vehicleRepo.ErrVehicleNotFound}
	uc := NewUseCase(&fakeBookingRepo{}, &fakeSlotRepo{}, vehicles, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestExecute_VehicleNotOwned(t *testing.T) {
	vehicles := &fakeVehicleRepo{vehicle: &domain.Vehicle{ID: 5, UserID: 99}}
	uc := NewUseCase(&fakeBookingRepo{}, &fakeSlotRepo{}, vehicles, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVehicleNotOwned)
}

func TestExecute_SlotNotFound(t *testing.T) {
	slots := &fakeSlotRepo{getErr: slotRepo.ErrSlotNotFound}
	vehicles := &fakeVehicleRepo{vehicle: &domain.Vehicle{ID: 5, UserID: 1}}
	uc := NewUseCase(&fakeBookingRepo{}, slots, vehicles, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_SlotOccupied(t *testing.T) {
	slots := &fakeSlotRepo{slot: &domain.ParkingSlot{ID: 10, IsAvailable: false}}
	vehicles := &fakeVehicleRepo{vehicle: &domain.Vehicle{ID: 5, UserID: 1}}
	uc := NewUseCase(&fakeBookingRepo{}, slots, vehicles, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

// Проигрыш гонки: слот был свободен при чтении, но условный UPDATE
// не прошел - транзакция должна вернуть ErrSlotNotAvailable
func TestExecute_LostRaceOnClaim(t *testing.T) {
	bookings := &fakeBookingRepo{}
	slots := &fakeSlotRepo{
		slot:     &domain.ParkingSlot{ID: 10, IsAvailable: true},
		claimErr: slotRepo.ErrSlotNotAvailable,
	}
	vehicles := &fakeVehicleRepo{vehicle: &domain.Vehicle{ID: 5, UserID: 1}}
	uc := NewUseCase(bookings, slots, vehicles, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_RepoErrorWrapped(t *testing.T) {
	bookings := &fakeBookingRepo{createFn: func(*domain.Booking) (*domain.Booking, error) {
		return nil, errors.New("connection reset")
	}}
	slots := &fakeSlotRepo{slot: &domain.ParkingSlot{ID: 10, IsAvailable: true}}
	vehicles := &fakeVehicleRepo{vehicle: &domain.Vehicle{ID: 5, UserID: 1}}
	uc := NewUseCase(bookings, slots, vehicles, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}
