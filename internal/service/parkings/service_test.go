package parkings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
	"github.com/m04kA/SMC-ParkingService/internal/service/parkings/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// Фейки репозиториев

type fakeParkingRepo struct {
	parkings map[int64]*domain.Parking

	createErr error
	updateErr error

	updated map[int64]*domain.ParkingUpdate
	deleted []int64
}

func newFakeParkingRepo(parkings ...*domain.Parking) *fakeParkingRepo {
	repo := &fakeParkingRepo{
		parkings: make(map[int64]*domain.Parking),
		updated:  make(map[int64]*domain.ParkingUpdate),
	}
	for _, p := range parkings {
		repo.parkings[p.ID] = p
	}
	return repo
}

func (f *fakeParkingRepo) Create(_ context.Context, p *domain.Parking) (*domain.Parking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p.ID = 1
	p.AvailableSpaces = p.TotalSpaces
	f.parkings[p.ID] = p
	return p, nil
}

func (f *fakeParkingRepo) GetByID(_ context.Context, id int64) (*domain.Parking, error) {
	p, ok := f.parkings[id]
	if !ok {
		return nil, parkingRepo.ErrParkingNotFound
	}
	return p, nil
}

func (f *fakeParkingRepo) GetByCode(_ context.Context, code string) (*domain.Parking, error) {
	for _, p := range f.parkings {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, parkingRepo.ErrParkingNotFound
}

func (f *fakeParkingRepo) List(_ context.Context) ([]*domain.Parking, error) {
	result := make([]*domain.Parking, 0, len(f.parkings))
	for _, p := range f.parkings {
		result = append(result, p)
	}
	return result, nil
}

func (f *fakeParkingRepo) Update(_ context.Context, id int64, update *domain.ParkingUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.parkings[id]; !ok {
		return parkingRepo.ErrParkingNotFound
	}
	f.updated[id] = update
	return nil
}

func (f *fakeParkingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.parkings[id]; !ok {
		return parkingRepo.ErrParkingNotFound
	}
	delete(f.parkings, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeActivityRepo struct {
	hasActive bool
}

func (f *fakeActivityRepo) HasActiveByParking(_ context.Context, _ int64) (bool, error) {
	return f.hasActive, nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(repo *fakeParkingRepo, activities *fakeActivityRepo) *Service {
	return NewService(repo, activities, fakeTxManager{}, nopLogger{})
}

func validCreateRequest() *models.CreateParkingRequest {
	return &models.CreateParkingRequest{
		Code:        "CTR",
		Name:        "Center",
		Location:    "Main St 1",
		TotalSpaces: 50,
		FeePerHour:  2.5,
	}
}

func existingParking() *domain.Parking {
	return &domain.Parking{
		ID:              7,
		Code:            "CTR",
		Name:            "Center",
		TotalSpaces:     50,
		AvailableSpaces: 35,
		FeePerHour:      2.5,
	}
}

func TestCreate_Success(t *testing.T) {
	svc := newService(newFakeParkingRepo(), &fakeActivityRepo{})

	resp, err := svc.Create(context.Background(), domain.RoleAdmin, validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "CTR", resp.Code)
	// Свободные места равны общему числу при создании
	assert.Equal(t, 50, resp.AvailableSpaces)
	assert.Zero(t, resp.OccupancyRate)
}

func TestCreate_RequiresAdmin(t *testing.T) {
	svc := newService(newFakeParkingRepo(), &fakeActivityRepo{})

	_, err := svc.Create(context.Background(), domain.RoleUser, validCreateRequest())
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_Validation(t *testing.T) {
	svc := newService(newFakeParkingRepo(), &fakeActivityRepo{})

	tests := []struct {
		name   string
		mutate func(*models.CreateParkingRequest)
	}{
		{"short code", func(r *models.CreateParkingRequest) { r.Code = "AB" }},
		{"empty name", func(r *models.CreateParkingRequest) { r.Name = "  " }},
		{"zero spaces", func(r *models.CreateParkingRequest) { r.TotalSpaces = 0 }},
		{"negative fee", func(r *models.CreateParkingRequest) { r.FeePerHour = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), domain.RoleAdmin, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate_DuplicateCode(t *testing.T) {
	repo := newFakeParkingRepo()
	repo.createErr = parkingRepo.ErrDuplicateCode
	svc := newService(repo, &fakeActivityRepo{})

	_, err := svc.Create(context.Background(), domain.RoleAdmin, validCreateRequest())
	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestGetByID(t *testing.T) {
	svc := newService(newFakeParkingRepo(existingParking()), &fakeActivityRepo{})

	resp, err := svc.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "CTR", resp.Code)
	assert.InDelta(t, 30.0, resp.OccupancyRate, 0.001)

	_, err = svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrParkingNotFound)
}

func TestGetByCode(t *testing.T) {
	svc := newService(newFakeParkingRepo(existingParking()), &fakeActivityRepo{})

	resp, err := svc.GetByCode(context.Background(), "CTR")
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)

	_, err = svc.GetByCode(context.Background(), "XXX")
	assert.ErrorIs(t, err, ErrParkingNotFound)
}

func TestUpdate_Success(t *testing.T) {
	repo := newFakeParkingRepo(existingParking())
	svc := newService(repo, &fakeActivityRepo{})

	req := &models.UpdateParkingRequest{Name: ptr.Ptr("Center Renamed")}
	_, err := svc.Update(context.Background(), domain.RoleAdmin, 7, req)
	require.NoError(t, err)

	require.NotNil(t, repo.updated[7])
	assert.Equal(t, "Center Renamed", *repo.updated[7].Name)
	// Остальные поля не затрагиваются
	assert.Nil(t, repo.updated[7].TotalSpaces)
}

func TestUpdate_Validation(t *testing.T) {
	svc := newService(newFakeParkingRepo(existingParking()), &fakeActivityRepo{})

	tests := []struct {
		name string
		req  *models.UpdateParkingRequest
	}{
		{"short code", &models.UpdateParkingRequest{Code: ptr.Ptr("AB")}},
		{"zero spaces", &models.UpdateParkingRequest{TotalSpaces: ptr.Ptr(0)}},
		{"negative fee", &models.UpdateParkingRequest{FeePerHour: ptr.Ptr(-1.0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), domain.RoleAdmin, 7, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdate_RequiresAdmin(t *testing.T) {
	svc := newService(newFakeParkingRepo(existingParking()), &fakeActivityRepo{})

	_, err := svc.Update(context.Background(), domain.RoleUser, 7, &models.UpdateParkingRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newService(newFakeParkingRepo(), &fakeActivityRepo{})

	_, err := svc.Update(context.Background(), domain.RoleAdmin, 404, &models.UpdateParkingRequest{})
	assert.ErrorIs(t, err, ErrParkingNotFound)
}

func TestDelete_Success(t *testing.T) {
	repo := newFakeParkingRepo(existingParking())
	svc := newService(repo, &fakeActivityRepo{})

	err := svc.Delete(context.Background(), domain.RoleAdmin, 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, repo.deleted)
}

func TestDelete_RequiresAdmin(t *testing.T) {
	svc := newService(newFakeParkingRepo(existingParking()), &fakeActivityRepo{})

	err := svc.Delete(context.Background(), domain.RoleUser, 7)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// Парковку с машинами внутри удалить нельзя
func TestDelete_HasActiveVehicles(t *testing.T) {
	repo := newFakeParkingRepo(existingParking())
	svc := newService(repo, &fakeActivityRepo{hasActive: true})

	err := svc.Delete(context.Background(), domain.RoleAdmin, 7)
	assert.ErrorIs(t, err, ErrHasActiveVehicles)
	assert.Empty(t, repo.deleted)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newService(newFakeParkingRepo(), &fakeActivityRepo{})

	err := svc.Delete(context.Background(), domain.RoleAdmin, 404)
	assert.ErrorIs(t, err, ErrParkingNotFound)
}
