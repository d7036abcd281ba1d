package activities

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	activityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/activity"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
)

// Фейки репозиториев

type fakeActivityRepo struct {
	activities map[int64]*domain.ParkingActivity
	details    map[int64]*domain.ActivityDetails

	completed []int64
	durations map[int64]float64
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{
		activities: make(map[int64]*domain.ParkingActivity),
		details:    make(map[int64]*domain.ActivityDetails),
		durations:  make(map[int64]float64),
	}
}

func (f *fakeActivityRepo) add(a *domain.ParkingActivity) {
	f.activities[a.ID] = a
	f.details[a.ID] = &domain.ActivityDetails{
		ParkingActivity: *a,
		Vehicle:         &domain.Vehicle{ID: a.VehicleID, PlateNumber: "A123BC", Type: domain.VehicleTypeCar, UserID: a.UserID},
		Parking:         &domain.Parking{ID: a.ParkingID, Code: "CTR", Name: "Center", Location: "Main St 1", TotalSpaces: 50, AvailableSpaces: 10, FeePerHour: 2.5},
	}
}

func (f *fakeActivityRepo) GetByID(_ context.Context, id int64) (*domain.ParkingActivity, error) {
	a, ok := f.activities[id]
	if !ok {
		return nil, activityRepo.ErrActivityNotFound
	}
	return a, nil
}

func (f *fakeActivityRepo) GetDetailsByID(_ context.Context, id int64) (*domain.ActivityDetails, error) {
	d, ok := f.details[id]
	if !ok {
		return nil, activityRepo.ErrActivityNotFound
	}
	return d, nil
}

func (f *fakeActivityRepo) ListActive(_ context.Context) ([]*domain.ActivityDetails, error) {
	var result []*domain.ActivityDetails
	for _, d := range f.details {
		if d.IsActive() {
			result = append(result, d)
		}
	}
	return result, nil
}

func (f *fakeActivityRepo) ListByEntryRange(_ context.Context, _, _ time.Time) ([]*domain.ActivityDetails, error) {
	return nil, nil
}

func (f *fakeActivityRepo) ListCompletedByExitRange(_ context.Context, _, _ time.Time) ([]*domain.ActivityDetails, error) {
	return nil, nil
}

func (f *fakeActivityRepo) Complete(_ context.Context, id int64, exitTime time.Time, durationHours float64) error {
	a, ok := f.activities[id]
	if !ok {
		return activityRepo.ErrActivityNotFound
	}
	if !a.IsActive() {
		return activityRepo.ErrActivityNotActive
	}
	a.Status = domain.ActivityStatusCompleted
	a.ExitDateTime = &exitTime
	a.DurationHours = &durationHours

	f.completed = append(f.completed, id)
	f.durations[id] = durationHours

	d := f.details[id]
	d.ParkingActivity = *a
	return nil
}

type fakeParkingRepo struct {
	err        error
	increments int
}

func (f *fakeParkingRepo) IncrementAvailable(_ context.Context, _ int64) (*domain.Parking, error) {
	f.increments++
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Parking{ID: 3, TotalSpaces: 50, AvailableSpaces: 11}, nil
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

var (
	entryAt = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	exitAt  = time.Date(2025, 6, 1, 11, 30, 0, 0, time.UTC)
)

func newService(repo *fakeActivityRepo, parkings *fakeParkingRepo, now time.Time) *Service {
	svc := NewService(repo, parkings, fakeTxManager{}, nopLogger{})
	svc.timeProvider = fixedTime{t: now}
	return svc
}

func activeActivity(id int64) *domain.ParkingActivity {
	return &domain.ParkingActivity{
		ID:            id,
		VehicleID:     5,
		ParkingID:     3,
		UserID:        1,
		TicketNumber:  "PRK-A1B2C3D4",
		EntryDateTime: entryAt,
		Status:        domain.ActivityStatusActive,
	}
}

func TestRecordExit_Success(t *testing.T) {
	repo := newFakeActivityRepo()
	repo.add(activeActivity(1))
	parkings := &fakeParkingRepo{}
	svc := newService(repo, parkings, exitAt)

	resp, err := svc.RecordExit(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, string(domain.ActivityStatusCompleted), resp.Status)
	require.NotNil(t, resp.DurationHours)
	assert.InDelta(t, 2.5, *resp.DurationHours, 0.001)
	assert.Equal(t, 1, parkings.increments)
	require.NotNil(t, resp.ExitDateTime)
	assert.Equal(t, exitAt.Format(time.RFC3339), *resp.ExitDateTime)
}

func TestRecordExit_AlreadyExited(t *testing.T) {
	a := activeActivity(1)
	a.Status = domain.ActivityStatusCompleted
	repo := newFakeActivityRepo()
	repo.add(a)
	parkings := &fakeParkingRepo{}
	svc := newService(repo, parkings, exitAt)

	_, err := svc.RecordExit(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAlreadyExited)
	assert.Zero(t, parkings.increments)
}

func TestRecordExit_NotFound(t *testing.T) {
	svc := newService(newFakeActivityRepo(), &fakeParkingRepo{}, exitAt)

	_, err := svc.RecordExit(context.Background(), 404)
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

// Счетчик на максимуме - рассинхронизация данных не должна
// блокировать выезд
func TestRecordExit_CounterAtCapacity(t *testing.T) {
	repo := newFakeActivityRepo()
	repo.add(activeActivity(1))
	parkings := &fakeParkingRepo{err: parkingRepo.ErrCapacityExceeded}
	svc := newService(repo, parkings, exitAt)

	resp, err := svc.RecordExit(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, string(domain.ActivityStatusCompleted), resp.Status)
	assert.Equal(t, []int64{1}, repo.completed)
}

func TestRecordExit_DurationRounded(t *testing.T) {
	repo := newFakeActivityRepo()
	repo.add(activeActivity(1))

	// 1 час 10 минут = 1.1666... округляется до 1.17
	svc := newService(repo, &fakeParkingRepo{}, entryAt.Add(70*time.Minute))

	_, err := svc.RecordExit(context.Background(), 1)
	require.NoError(t, err)

	assert.InDelta(t, 1.17, repo.durations[1], 0.001)
}

func TestListActive(t *testing.T) {
	repo := newFakeActivityRepo()
	repo.add(activeActivity(1))
	completed := activeActivity(2)
	completed.Status = domain.ActivityStatusCompleted
	repo.add(completed)
	svc := newService(repo, &fakeParkingRepo{}, exitAt)

	resp, err := svc.ListActive(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Activities, 1)
	assert.Equal(t, int64(1), resp.Activities[0].ID)
}

func TestListByEntryRange_Validation(t *testing.T) {
	svc := newService(newFakeActivityRepo(), &fakeParkingRepo{}, exitAt)

	tests := []struct {
		name       string
		start, end time.Time
	}{
		{"zero start", time.Time{}, exitAt},
		{"zero end", entryAt, time.Time{}},
		{"end before start", exitAt, entryAt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ListByEntryRange(context.Background(), tt.start, tt.end)
			assert.ErrorIs(t, err, ErrInvalidInput)

			_, err = svc.ListCompletedByExitRange(context.Background(), tt.start, tt.end)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGenerateEntryTicket(t *testing.T) {
	repo := newFakeActivityRepo()
	repo.add(activeActivity(1))
	svc := newService(repo, &fakeParkingRepo{}, exitAt)

	ticket, err := svc.GenerateEntryTicket(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "PRK-A1B2C3D4", ticket.TicketNumber)
	assert.Equal(t, "A123BC", ticket.PlateNumber)
	assert.Equal(t, "Center", ticket.ParkingName)
	assert.Equal(t, "Main St 1", ticket.Location)
	assert.Equal(t, entryAt.Format(time.RFC3339), ticket.EntryDateTime)
	assert.InDelta(t, 2.5, ticket.FeePerHour, 0.001)
}

// Машина еще внутри - длительность оценивается на текущий момент
func TestGenerateSummary_Estimate(t *testing.T) {
	repo := newFakeActivityRepo()
	repo.add(activeActivity(1))
	svc := newService(repo, &fakeParkingRepo{}, exitAt)

	summary, err := svc.GenerateSummary(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, summary.IsEstimate)
	assert.InDelta(t, 2.5, summary.DurationHours, 0.001)
	assert.Equal(t, exitAt.Format(time.RFC3339), summary.ExitDateTime)
}

func TestGenerateSummary_Completed(t *testing.T) {
	a := activeActivity(1)
	a.Status = domain.ActivityStatusCompleted
	a.ExitDateTime = &exitAt
	duration := 2.5
	a.DurationHours = &duration
	repo := newFakeActivityRepo()
	repo.add(a)

	// Текущее время сильно позже выезда и не должно влиять на сводку
	svc := newService(repo, &fakeParkingRepo{}, exitAt.Add(48*time.Hour))

	summary, err := svc.GenerateSummary(context.Background(), 1)
	require.NoError(t, err)

	assert.False(t, summary.IsEstimate)
	assert.InDelta(t, 2.5, summary.DurationHours, 0.001)
	assert.Equal(t, exitAt.Format(time.RFC3339), summary.ExitDateTime)
}

func TestGenerateSummary_NotFound(t *testing.T) {
	svc := newService(newFakeActivityRepo(), &fakeParkingRepo{}, exitAt)

	_, err := svc.GenerateSummary(context.Background(), 404)
	assert.ErrorIs(t, err, ErrActivityNotFound)
}
