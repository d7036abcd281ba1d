package slots

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// Фейк репозитория слотов

type fakeSlotRepo struct {
	createErr error
	bulkErr   error

	created     []domain.NewSlot
	bulkCreated []domain.NewSlot
	slots       []*domain.ParkingSlot

	lastOnlyAvailable bool
}

func (f *fakeSlotRepo) Create(_ context.Context, slot *domain.NewSlot) (*domain.ParkingSlot, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, *slot)
	return &domain.ParkingSlot{
		ID:          int64(len(f.created)),
		Number:      slot.Number,
		Floor:       slot.Floor,
		IsAvailable: slot.IsAvailable,
	}, nil
}

func (f *fakeSlotRepo) CreateBulk(_ context.Context, slots []domain.NewSlot) (int64, error) {
	if f.bulkErr != nil {
		return 0, f.bulkErr
	}
	f.bulkCreated = append(f.bulkCreated, slots...)
	return int64(len(slots)), nil
}

func (f *fakeSlotRepo) List(_ context.Context, onlyAvailable bool) ([]*domain.ParkingSlot, error) {
	f.lastOnlyAvailable = onlyAvailable
	return f.slots, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func slotRequest(number string) models.CreateSlotRequest {
	return models.CreateSlotRequest{Number: number, Floor: 1}
}

func TestCreate_Success(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc := NewService(repo, nopLogger{})

	req := slotRequest("A-10")
	resp, err := svc.Create(context.Background(), domain.RoleAdmin, &req)
	require.NoError(t, err)

	assert.Equal(t, "A-10", resp.Number)
	assert.True(t, resp.IsAvailable)
	require.Len(t, repo.created, 1)
}

func TestCreate_ExplicitlyUnavailable(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc := NewService(repo, nopLogger{})

	req := models.CreateSlotRequest{Number: "A-11", Floor: 1, IsAvailable: ptr.Ptr(false)}
	resp, err := svc.Create(context.Background(), domain.RoleAdmin, &req)
	require.NoError(t, err)

	assert.False(t, resp.IsAvailable)
}

func TestCreate_RequiresAdmin(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, nopLogger{})

	req := slotRequest("A-10")
	_, err := svc.Create(context.Background(), domain.RoleUser, &req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, nopLogger{})

	tests := []struct {
		name string
		req  models.CreateSlotRequest
	}{
		{"empty number", models.CreateSlotRequest{Number: "", Floor: 1}},
		{"blank number", models.CreateSlotRequest{Number: "   ", Floor: 1}},
		{"negative floor", models.CreateSlotRequest{Number: "A-1", Floor: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), domain.RoleAdmin, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate_DuplicateNumber(t *testing.T) {
	repo := &fakeSlotRepo{createErr: slotRepo.ErrDuplicateNumber}
	svc := NewService(repo, nopLogger{})

	req := slotRequest("A-10")
	_, err := svc.Create(context.Background(), domain.RoleAdmin, &req)
	assert.ErrorIs(t, err, ErrDuplicateNumber)
}

func TestCreateBulk_Success(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc := NewService(repo, nopLogger{})

	req := &models.CreateSlotsBulkRequest{
		Slots: []models.CreateSlotRequest{slotRequest("A-1"), slotRequest("A-2"), slotRequest("A-3")},
	}
	resp, err := svc.CreateBulk(context.Background(), domain.RoleAdmin, req)
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.Created)
	assert.Len(t, repo.bulkCreated, 3)
}

func TestCreateBulk_RequiresAdmin(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, nopLogger{})

	req := &models.CreateSlotsBulkRequest{Slots: []models.CreateSlotRequest{slotRequest("A-1")}}
	_, err := svc.CreateBulk(context.Background(), domain.RoleUser, req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreateBulk_EmptyBatch(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, nopLogger{})

	_, err := svc.CreateBulk(context.Background(), domain.RoleAdmin, &models.CreateSlotsBulkRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateBulk_BatchTooLarge(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, nopLogger{})

	req := &models.CreateSlotsBulkRequest{
		Slots: make([]models.CreateSlotRequest, domain.MaxBulkSlots+1),
	}
	for i := range req.Slots {
		req.Slots[i] = slotRequest(fmt.Sprintf("A-%d", i))
	}

	_, err := svc.CreateBulk(context.Background(), domain.RoleAdmin, req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Дубликаты внутри пачки отклоняются до обращения к БД,
// пробелы вокруг номера не маскируют дубликат
func TestCreateBulk_DuplicateWithinBatch(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc := NewService(repo, nopLogger{})

	req := &models.CreateSlotsBulkRequest{
		Slots: []models.CreateSlotRequest{slotRequest("A-1"), slotRequest(" A-1 ")},
	}
	_, err := svc.CreateBulk(context.Background(), domain.RoleAdmin, req)

	assert.ErrorIs(t, err, ErrDuplicateNumber)
	assert.Empty(t, repo.bulkCreated)
}

func TestCreateBulk_DuplicateInDB(t *testing.T) {
	repo := &fakeSlotRepo{bulkErr: slotRepo.ErrDuplicateNumber}
	svc := NewService(repo, nopLogger{})

	req := &models.CreateSlotsBulkRequest{Slots: []models.CreateSlotRequest{slotRequest("A-1")}}
	_, err := svc.CreateBulk(context.Background(), domain.RoleAdmin, req)
	assert.ErrorIs(t, err, ErrDuplicateNumber)
}

func TestList(t *testing.T) {
	repo := &fakeSlotRepo{slots: []*domain.ParkingSlot{
		{ID: 1, Number: "A-1", IsAvailable: true},
		{ID: 2, Number: "A-2", IsAvailable: false},
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.List(context.Background(), true)
	require.NoError(t, err)

	assert.True(t, repo.lastOnlyAvailable)
	assert.Len(t, resp.Slots, 2)
}
