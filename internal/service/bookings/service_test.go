package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
)

// Фейки репозиториев

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	expiredIDs  []int64
	markErrs    map[int64]error
	markedIDs   []int64
	updatedEnds map[int64]time.Time
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		bookings:    make(map[int64]*domain.Booking),
		markErrs:    make(map[int64]error),
		updatedEnds: make(map[int64]time.Time),
	}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetDetailsByID(_ context.Context, id int64) (*domain.BookingDetails, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &domain.BookingDetails{Booking: *b}, nil
}

func (f *fakeBookingRepo) ListByVehicleOwner(_ context.Context, _ int64) ([]*domain.BookingDetails, error) {
	result := make([]*domain.BookingDetails, 0, len(f.bookings))
	for _, b := range f.bookings {
		result = append(result, &domain.BookingDetails{Booking: *b})
	}
	return result, nil
}

func (f *fakeBookingRepo) ListAll(_ context.Context) ([]*domain.BookingDetails, error) {
	return f.ListByVehicleOwner(context.Background(), 0)
}

func (f *fakeBookingRepo) UpdateExpectedEnd(_ context.Context, id int64, end time.Time) error {
	f.updatedEnds[id] = end
	b := f.bookings[id]
	b.ExpectedEndTime = &end
	return nil
}

func (f *fakeBookingRepo) Finish(_ context.Context, id int64, status domain.BookingStatus, actualEnd time.Time) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != domain.BookingStatusActive {
		return bookingRepo.ErrBookingNotActive
	}
	b.Status = status
	b.ActualEndTime = &actualEnd
	return nil
}

func (f *fakeBookingRepo) ListExpiredIDs(_ context.Context, _ time.Time) ([]int64, error) {
	return f.expiredIDs, nil
}

func (f *fakeBookingRepo) MarkOverstay(_ context.Context, id int64, _ time.Time) (bool, error) {
	if err := f.markErrs[id]; err != nil {
		return false, err
	}
	f.markedIDs = append(f.markedIDs, id)
	if b, ok := f.bookings[id]; ok && b.Status == domain.BookingStatusActive {
		b.Status = domain.BookingStatusOverstay
		return true, nil
	}
	return false, nil
}

type fakeSlotRepo struct {
	released []int64
}

func (f *fakeSlotRepo) Release(_ context.Context, slotID int64) error {
	f.released = append(f.released, slotID)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newService(repo *fakeBookingRepo, slots *fakeSlotRepo) *Service {
	svc := NewService(repo, slots, fakeTxManager{}, nopLogger{})
	svc.timeProvider = fixedTime{t: testNow}
	return svc
}

func activeBooking(id, slotID int64) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		ParkingSlotID: slotID,
		VehicleID:     5,
		StartTime:     testNow.Add(-2 * time.Hour),
		Status:        domain.BookingStatusActive,
	}
}

func TestCancel_Success(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1, 10))
	slots := &fakeSlotRepo{}
	svc := newService(repo, slots)

	resp, err := svc.Cancel(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, string(domain.BookingStatusCancelled), resp.Status)
	assert.NotNil(t, resp.ActualEndTime)
	assert.Equal(t, []int64{10}, slots.released)
}

func TestCancel_Twice(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1, 10))
	slots := &fakeSlotRepo{}
	svc := newService(repo, slots)

	_, err := svc.Cancel(context.Background(), 1)
	require.NoError(t, err)

	// Повторная отмена отклоняется, слот не освобождается второй раз
	_, err = svc.Cancel(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBookingNotActive)
	assert.Len(t, slots.released, 1)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newService(newFakeBookingRepo(), &fakeSlotRepo{})

	_, err := svc.Cancel(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRelease_Success(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1, 10))
	slots := &fakeSlotRepo{}
	svc := newService(repo, slots)

	resp, err := svc.Release(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, string(domain.BookingStatusCompleted), resp.Status)
	assert.Equal(t, []int64{10}, slots.released)
}

func TestRelease_NotActive(t *testing.T) {
	b := activeBooking(1, 10)
	b.Status = domain.BookingStatusOverstay
	svc := newService(newFakeBookingRepo(b), &fakeSlotRepo{})

	_, err := svc.Release(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBookingNotActive)
}

func TestExtend_FirstExtension(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1, 10))
	svc := newService(repo, &fakeSlotRepo{})

	resp, err := svc.Extend(context.Background(), 1, 3)
	require.NoError(t, err)

	// Первое продление считается от текущего момента
	assert.Equal(t, testNow.Add(3*time.Hour), repo.updatedEnds[1])
	require.NotNil(t, resp.ExpectedEndTime)
}

func TestExtend_FromExistingEnd(t *testing.T) {
	b := activeBooking(1, 10)
	end := testNow.Add(time.Hour)
	b.ExpectedEndTime = &end
	repo := newFakeBookingRepo(b)
	svc := newService(repo, &fakeSlotRepo{})

	_, err := svc.Extend(context.Background(), 1, 2)
	require.NoError(t, err)

	// Повторное продление считается от текущего ожидаемого окончания
	assert.Equal(t, end.Add(2*time.Hour), repo.updatedEnds[1])
}

func TestExtend_InvalidHours(t *testing.T) {
	svc := newService(newFakeBookingRepo(activeBooking(1, 10)), &fakeSlotRepo{})

	_, err := svc.Extend(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Extend(context.Background(), 1, domain.MaxExtendHours+1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExtend_NotActive(t *testing.T) {
	b := activeBooking(1, 10)
	b.Status = domain.BookingStatusCancelled
	svc := newService(newFakeBookingRepo(b), &fakeSlotRepo{})

	_, err := svc.Extend(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrBookingNotActive)
}

func TestGetAllBookings_RequiresAdmin(t *testing.T) {
	svc := newService(newFakeBookingRepo(), &fakeSlotRepo{})

	_, err := svc.GetAllBookings(context.Background(), domain.RoleUser)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetAllBookings(context.Background(), domain.RoleAdmin)
	assert.NoError(t, err)
}

func TestMarkOverstays(t *testing.T) {
	b1 := activeBooking(1, 10)
	b2 := activeBooking(2, 11)
	b3 := activeBooking(3, 12)
	repo := newFakeBookingRepo(b1, b2, b3)
	repo.expiredIDs = []int64{1, 2, 3}
	svc := newService(repo, &fakeSlotRepo{})

	marked, err := svc.MarkOverstays(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, marked)
	assert.Equal(t, domain.BookingStatusOverstay, b1.Status)
	assert.Equal(t, domain.BookingStatusOverstay, b2.Status)
	assert.Equal(t, domain.BookingStatusOverstay, b3.Status)
}

// Ошибка на одной строке не прерывает обработку остальных
func TestMarkOverstays_ErrorIsolation(t *testing.T) {
	b1 := activeBooking(1, 10)
	b3 := activeBooking(3, 12)
	repo := newFakeBookingRepo(b1, b3)
	repo.expiredIDs = []int64{1, 2, 3}
	repo.markErrs[2] = errors.New("deadlock detected")
	svc := newService(repo, &fakeSlotRepo{})

	marked, err := svc.MarkOverstays(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, marked)
	assert.Equal(t, []int64{1, 3}, repo.markedIDs)
}
