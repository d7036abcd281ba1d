package parkings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
	"github.com/m04kA/SMC-ParkingService/internal/service/parkings/models"
)

// Service сервис для работы с парковками (локациями)
type Service struct {
	parkingRepo  ParkingRepository
	activityRepo ActivityRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса парковок
func NewService(
	parkingRepo ParkingRepository,
	activityRepo ActivityRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		parkingRepo:  parkingRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает новую парковку
// Доступно только администраторам. Свободные места инициализируются
// равными общему числу мест
func (s *Service) Create(ctx context.Context, role domain.Role, req *models.CreateParkingRequest) (*models.ParkingResponse, error) {
	s.logger.Info("Create: creating parking code=%s, name=%s", req.Code, req.Name)

	if role != domain.RoleAdmin {
		s.logger.Warn("Create: access denied for role=%s", role)
		return nil, ErrAccessDenied
	}

	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.parkingRepo.Create(ctx, req.ToDomain())
	if err != nil {
		if errors.Is(err, parkingRepo.ErrDuplicateCode) {
			s.logger.Warn("Create: parking code=%s already exists", req.Code)
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, req.Code)
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created parking id=%d, code=%s", created.ID, created.Code)
	return models.FromDomain(created), nil
}

// GetByID получает парковку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ParkingResponse, error) {
	s.logger.Info("GetByID: fetching parking id=%d", id)

	parking, err := s.parkingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, parkingRepo.ErrParkingNotFound) {
			s.logger.Warn("GetByID: parking id=%d not found", id)
			return nil, ErrParkingNotFound
		}
		s.logger.Error("GetByID: repository error for parking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomain(parking), nil
}

// GetByCode получает парковку по короткому коду
func (s *Service) GetByCode(ctx context.Context, code string) (*models.ParkingResponse, error) {
	s.logger.Info("GetByCode: fetching parking code=%s", code)

	parking, err := s.parkingRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, parkingRepo.ErrParkingNotFound) {
			s.logger.Warn("GetByCode: parking code=%s not found", code)
			return nil, ErrParkingNotFound
		}
		s.logger.Error("GetByCode: repository error for parking code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}

	return models.FromDomain(parking), nil
}

// List получает список всех парковок
func (s *Service) List(ctx context.Context) (*models.ParkingListResponse, error) {
	s.logger.Info("List: fetching parkings")

	parkings, err := s.parkingRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d parkings", len(parkings))
	return models.FromDomainList(parkings), nil
}

// Update частично обновляет парковку
// Доступно только администраторам
func (s *Service) Update(ctx context.Context, role domain.Role, id int64, req *models.UpdateParkingRequest) (*models.ParkingResponse, error) {
	s.logger.Info("Update: updating parking id=%d", id)

	if role != domain.RoleAdmin {
		s.logger.Warn("Update: access denied for role=%s", role)
		return nil, ErrAccessDenied
	}

	if err := validateUpdate(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	err := s.parkingRepo.Update(ctx, id, req.ToDomainUpdate())
	if err != nil {
		switch {
		case errors.Is(err, parkingRepo.ErrParkingNotFound):
			s.logger.Warn("Update: parking id=%d not found", id)
			return nil, ErrParkingNotFound
		case errors.Is(err, parkingRepo.ErrDuplicateCode):
			s.logger.Warn("Update: parking code already exists")
			return nil, ErrDuplicateCode
		default:
			s.logger.Error("Update: repository error for parking id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: successfully updated parking id=%d", id)
	return s.GetByID(ctx, id)
}

// Delete удаляет парковку
// Доступно только администраторам. Парковку с машинами внутри удалить
// нельзя: проверка и удаление выполняются в одной транзакции
func (s *Service) Delete(ctx context.Context, role domain.Role, id int64) error {
	s.logger.Info("Delete: deleting parking id=%d", id)

	if role != domain.RoleAdmin {
		s.logger.Warn("Delete: access denied for role=%s", role)
		return ErrAccessDenied
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		hasActive, err := s.activityRepo.HasActiveByParking(txCtx, id)
		if err != nil {
			s.logger.Error("Delete: failed to check active vehicles for parking id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - failed to check active vehicles: %v", ErrInternal, err)
		}
		if hasActive {
			s.logger.Warn("Delete: parking id=%d has active vehicles", id)
			return ErrHasActiveVehicles
		}

		if err := s.parkingRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, parkingRepo.ErrParkingNotFound) {
				s.logger.Warn("Delete: parking id=%d not found", id)
				return ErrParkingNotFound
			}
			s.logger.Error("Delete: repository error for parking id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: successfully deleted parking id=%d", id)
	return nil
}

// validateCreate валидирует запрос на создание парковки
func validateCreate(req *models.CreateParkingRequest) error {
	if len(strings.TrimSpace(req.Code)) < domain.MinParkingCodeLength {
		return fmt.Errorf("%w: code must be at least %d characters",
			ErrInvalidInput, domain.MinParkingCodeLength)
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.TotalSpaces <= 0 {
		return fmt.Errorf("%w: totalSpaces must be positive", ErrInvalidInput)
	}
	if req.FeePerHour < 0 {
		return fmt.Errorf("%w: feePerHour must not be negative", ErrInvalidInput)
	}
	return nil
}

// validateUpdate валидирует запрос на обновление парковки
func validateUpdate(req *models.UpdateParkingRequest) error {
	if req.Code != nil && len(strings.TrimSpace(*req.Code)) < domain.MinParkingCodeLength {
		return fmt.Errorf("%w: code must be at least %d characters",
			ErrInvalidInput, domain.MinParkingCodeLength)
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if req.TotalSpaces != nil && *req.TotalSpaces <= 0 {
		return fmt.Errorf("%w: totalSpaces must be positive", ErrInvalidInput)
	}
	if req.FeePerHour != nil && *req.FeePerHour < 0 {
		return fmt.Errorf("%w: feePerHour must not be negative", ErrInvalidInput)
	}
	return nil
}
