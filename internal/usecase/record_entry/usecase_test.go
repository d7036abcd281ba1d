package record_entry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	activityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/activity"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
)

// Фейки репозиториев

type fakeActivityRepo struct {
	hasActive    bool
	hasActiveErr error

	// createErrs выдаются по одной на каждую попытку Create,
	// после исчерпания вставка проходит успешно
	createErrs []error
	creates    int
	tickets    []string
}

func (f *fakeActivityRepo) HasActiveByVehicle(_ context.Context, _ int64) (bool, error) {
	return f.hasActive, f.hasActiveErr
}

func (f *fakeActivityRepo) Create(_ context.Context, a *domain.ParkingActivity) (*domain.ParkingActivity, error) {
	f.creates++
	f.tickets = append(f.tickets, a.TicketNumber)
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	a.ID = 77
	return a, nil
}

type fakeParkingRepo struct {
	parking    *domain.Parking
	err        error
	decrements int
}

func (f *fakeParkingRepo) DecrementAvailable(_ context.Context, _ int64) (*domain.Parking, error) {
	f.decrements++
	if f.err != nil {
		return nil, f.err
	}
	return f.parking, nil
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

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newUseCase(activities *fakeActivityRepo, parkings *fakeParkingRepo, vehicles *fakeVehicleRepo, tx *fakeTxManager) *UseCase {
	uc := NewUseCase(activities, parkings, vehicles, tx, nopLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{VehicleID: 5, ParkingID: 3, UserID: 1}
}

func TestExecute_Success(t *testing.T) {
	activities := &fakeActivityRepo{}
	parkings := &fakeParkingRepo{parking: &domain.Parking{ID: 3, TotalSpaces: 50, AvailableSpaces: 49}}
	vehicles := &fakeVehicleRepo{vehicle: &domain.Vehicle{ID: 5, UserID: 1}}
	tx := &fakeTxManager{}

	uc := newUseCase(activities, parkings, vehicles, tx)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(77), resp.ID)
	assert.Equal(t, string(domain.ActivityStatusActive), resp.Status)
	assert.Equal(t, 49, resp.AvailableSpaces)
	assert.Equal(t, 50, resp.TotalSpaces)
	assert.Regexp(t, `^PRK-[0-9A-F]{8}$`, resp.TicketNumber)
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_VehicleAlreadyParked(t *testing.T) {
	activities := &fakeActivityRepo{hasActive: true}
	parkings := &fakeParkingRepo{parking: &domain.Parking{ID: 3}}
	vehicles := &fakeVehicleRepo{vehicle: &domain.Vehicle{ID: 5, UserID: 1}}

	uc := newUseCase(activities, parkings, vehicles, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVehicleAlreadyParked)
	assert.Zero(t, parkings.decrements)
}

func TestExecute_NoCapacity(t *testing.T) {
	activities := &fakeActivityRepo{}
	parkings := &fakeParkingRepo{err: parkingRepo.ErrNoCapacity}
	vehicles := &fakeVehicleRepo{vehicle: &domain.Vehicle{ID: 5, UserID: 1}}

	uc := newUseCase(activities, parkings, vehicles, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoCapacity)
	assert.Zero(t, activities.creates)
}

func TestExecute_ParkingNotFound(t *testing.T) {
	activities := &fakeActivityRepo{}
	parkings := &fakeParkingRepo{err: parkingRepo.ErrParkingNotFound}
	vehicles := &fakeVehicleRepo{vehicle: &domain.Vehicle{ID: 5, UserID: 1}}

	uc := newUseCase(activities, parkings, vehicles, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrParkingNotFound)
}

func TestExecute_VehicleNotFound(t *testing.T) {
	vehicles := &fakeVehicleRepo{err: vehicleRepo.ErrVehicleNotFound}
	uc := newUseCase(&fakeActivityRepo{}, &fakeParkingRepo{}, vehicles, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

// Коллизия номера билета повторяет транзакцию целиком с новым номером
func TestExecute_TicketCollisionRetried(t *testing.T) {
	activities := &fakeActivityRepo{
		createErrs: []error{activityRepo.ErrDuplicateTicket, activityRepo.ErrDuplicateTicket},
	}
	parkings := &fakeParkingRepo{parking: &domain.Parking{ID: 3, TotalSpaces: 50, AvailableSpaces: 49}}
	vehicles := &fakeVehicleRepo{vehicle: &domain.Vehicle{ID: 5, UserID: 1}}
	tx := &fakeTxManager{}

	uc := newUseCase(activities, parkings, vehicles, tx)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 3, activities.creates)
	assert.Equal(t, 3, tx.calls)

	// Каждая попытка получает новый номер
	assert.Len(t, activities.tickets, 3)
	assert.NotEqual(t, activities.tickets[0], activities.tickets[2])
	assert.Regexp(t, `^PRK-[0-9A-F]{8}$`, resp.TicketNumber)
}

func TestExecute_TicketCollisionExhausted(t *testing.T) {
	errs := make([]error, maxTicketAttempts)
	for i := range errs {
		errs[i] = activityRepo.ErrDuplicateTicket
	}
	activities := &fakeActivityRepo{createErrs: errs}
	parkings := &fakeParkingRepo{parking: &domain.Parking{ID: 3, TotalSpaces: 50, AvailableSpaces: 49}}
	vehicles := &fakeVehicleRepo{vehicle: &domain.Vehicle{ID: 5, UserID: 1}}

	uc := newUseCase(activities, parkings, vehicles, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, maxTicketAttempts, activities.creates)
}

func TestGenerateTicketNumber_Format(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		ticket := generateTicketNumber()
		assert.Regexp(t, `^PRK-[0-9A-F]{8}$`, ticket)
		seen[ticket] = struct{}{}
	}
	// 100 генераций практически не должны совпадать
	assert.Greater(t, len(seen), 95)
}
