package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
)

// Service сервис для работы с парковочными слотами
type Service struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// Create создает один слот
// Доступно только администраторам
func (s *Service) Create(ctx context.Context, role domain.Role, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: creating slot number=%s, floor=%d", req.Number, req.Floor)

	if role != domain.RoleAdmin {
		s.logger.Warn("Create: access denied for role=%s", role)
		return nil, ErrAccessDenied
	}

	if err := validateSlot(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	newSlot := req.ToDomain()
	created, err := s.slotRepo.Create(ctx, &newSlot)
	if err != nil {
		if errors.Is(err, slotRepo.ErrDuplicateNumber) {
			s.logger.Warn("Create: slot number=%s already exists", req.Number)
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNumber, req.Number)
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created slot id=%d, number=%s", created.ID, created.Number)
	return models.FromDomain(created), nil
}

// CreateBulk создает пачку слотов одной вставкой: либо создаются все,
// либо ни одного
// Доступно только администраторам
func (s *Service) CreateBulk(ctx context.Context, role domain.Role, req *models.CreateSlotsBulkRequest) (*models.BulkCreateResponse, error) {
	s.logger.Info("CreateBulk: creating %d slots", len(req.Slots))

	if role != domain.RoleAdmin {
		s.logger.Warn("CreateBulk: access denied for role=%s", role)
		return nil, ErrAccessDenied
	}

	if len(req.Slots) == 0 {
		return nil, fmt.Errorf("%w: slots list is empty", ErrInvalidInput)
	}
	if len(req.Slots) > domain.MaxBulkSlots {
		s.logger.Warn("CreateBulk: batch size %d exceeds limit %d", len(req.Slots), domain.MaxBulkSlots)
		return nil, fmt.Errorf("%w: batch size must not exceed %d", ErrInvalidInput, domain.MaxBulkSlots)
	}

	// Дубликаты внутри пачки отклоняем до обращения к БД
	seen := make(map[string]struct{}, len(req.Slots))
	newSlots := make([]domain.NewSlot, 0, len(req.Slots))
	for i := range req.Slots {
		if err := validateSlot(&req.Slots[i]); err != nil {
			s.logger.Warn("CreateBulk: validation failed for slot %d: %v", i, err)
			return nil, err
		}
		number := strings.TrimSpace(req.Slots[i].Number)
		if _, ok := seen[number]; ok {
			s.logger.Warn("CreateBulk: duplicate number=%s within batch", number)
			return nil, fmt.Errorf("%w: duplicate number within batch: %s", ErrDuplicateNumber, number)
		}
		seen[number] = struct{}{}
		newSlots = append(newSlots, req.Slots[i].ToDomain())
	}

	created, err := s.slotRepo.CreateBulk(ctx, newSlots)
	if err != nil {
		if errors.Is(err, slotRepo.ErrDuplicateNumber) {
			s.logger.Warn("CreateBulk: one of the numbers already exists")
			return nil, ErrDuplicateNumber
		}
		s.logger.Error("CreateBulk: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBulk - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBulk: successfully created %d slots", created)
	return &models.BulkCreateResponse{Created: created}, nil
}

// List получает список слотов
// onlyAvailable = true возвращает только свободные
func (s *Service) List(ctx context.Context, onlyAvailable bool) (*models.SlotListResponse, error) {
	s.logger.Info("List: fetching slots, onlyAvailable=%t", onlyAvailable)

	slots, err := s.slotRepo.List(ctx, onlyAvailable)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d slots", len(slots))
	return models.FromDomainList(slots), nil
}

// validateSlot валидирует данные слота
func validateSlot(req *models.CreateSlotRequest) error {
	if strings.TrimSpace(req.Number) == "" {
		return fmt.Errorf("%w: slot number is required", ErrInvalidInput)
	}
	if req.Floor < 0 {
		return fmt.Errorf("%w: floor must not be negative", ErrInvalidInput)
	}
	return nil
}
