package activities

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	activityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/activity"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
	"github.com/m04kA/SMC-ParkingService/internal/service/activities/models"
)

// Service сервис для работы с парковочными активностями (въезд/выезд)
// Регистрация въезда (гонка за последнее место) вынесена в отдельный usecase
type Service struct {
	activityRepo ActivityRepository
	parkingRepo  ParkingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса активностей
func NewService(
	activityRepo ActivityRepository,
	parkingRepo ParkingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		activityRepo: activityRepo,
		parkingRepo:  parkingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// RecordExit оформляет выезд автомобиля: фиксирует время выезда и
// длительность стоянки, возвращает место в счетчик парковки
// Все изменения выполняются в одной сериализуемой транзакции
func (s *Service) RecordExit(ctx context.Context, activityID int64) (*models.ActivityResponse, error) {
	s.logger.Info("RecordExit: recording exit for activity id=%d", activityID)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		activity, err := s.activityRepo.GetByID(txCtx, activityID)
		if err != nil {
			if errors.Is(err, activityRepo.ErrActivityNotFound) {
				s.logger.Warn("RecordExit: activity id=%d not found", activityID)
				return ErrActivityNotFound
			}
			s.logger.Error("RecordExit: repository error for activity id=%d: %v", activityID, err)
			return fmt.Errorf("%w: RecordExit - repository error: %v", ErrInternal, err)
		}

		// Повторный выезд невозможен
		if !activity.IsActive() {
			s.logger.Warn("RecordExit: activity id=%d already completed", activityID)
			return ErrAlreadyExited
		}

		exitTime := s.timeProvider.Now()
		durationHours := roundHours(exitTime.Sub(activity.EntryDateTime).Hours())

		// Возвращаем место в счетчик парковки
		if _, err := s.parkingRepo.IncrementAvailable(txCtx, activity.ParkingID); err != nil {
			if errors.Is(err, parkingRepo.ErrCapacityExceeded) {
				// Счетчик уже на максимуме - рассинхронизация данных,
				// выезд все равно оформляем
				s.logger.Warn("RecordExit: parking id=%d counter already at capacity", activity.ParkingID)
			} else {
				s.logger.Error("RecordExit: failed to increment spaces for parking id=%d: %v",
					activity.ParkingID, err)
				return fmt.Errorf("%w: RecordExit - failed to increment spaces: %v", ErrInternal, err)
			}
		}

		if err := s.activityRepo.Complete(txCtx, activityID, exitTime, durationHours); err != nil {
			if errors.Is(err, activityRepo.ErrActivityNotActive) {
				return ErrAlreadyExited
			}
			s.logger.Error("RecordExit: failed to complete activity id=%d: %v", activityID, err)
			return fmt.Errorf("%w: RecordExit - failed to complete activity: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("RecordExit: successfully recorded exit for activity id=%d", activityID)
	return s.GetByID(ctx, activityID)
}

// GetByID получает активность по ID со связанными сущностями
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ActivityResponse, error) {
	s.logger.Info("GetByID: fetching activity id=%d", id)

	details, err := s.activityRepo.GetDetailsByID(ctx, id)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			s.logger.Warn("GetByID: activity id=%d not found", id)
			return nil, ErrActivityNotFound
		}
		s.logger.Error("GetByID: repository error for activity id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDetails(details), nil
}

// ListActive получает все автомобили, находящиеся на парковках
func (s *Service) ListActive(ctx context.Context) (*models.ActivityListResponse, error) {
	s.logger.Info("ListActive: fetching active activities")

	activities, err := s.activityRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListActive: fetched %d activities", len(activities))
	return models.FromDomainDetailsList(activities), nil
}

// ListByEntryRange получает активности с въездом в указанном периоде
func (s *Service) ListByEntryRange(ctx context.Context, start, end time.Time) (*models.ActivityListResponse, error) {
	s.logger.Info("ListByEntryRange: fetching activities from %s to %s",
		start.Format(time.RFC3339), end.Format(time.RFC3339))

	if err := validateRange(start, end); err != nil {
		s.logger.Warn("ListByEntryRange: %v", err)
		return nil, err
	}

	activities, err := s.activityRepo.ListByEntryRange(ctx, start, end)
	if err != nil {
		s.logger.Error("ListByEntryRange: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByEntryRange - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByEntryRange: fetched %d activities", len(activities))
	return models.FromDomainDetailsList(activities), nil
}

// ListCompletedByExitRange получает завершенные активности с выездом
// в указанном периоде
func (s *Service) ListCompletedByExitRange(ctx context.Context, start, end time.Time) (*models.ActivityListResponse, error) {
	s.logger.Info("ListCompletedByExitRange: fetching activities from %s to %s",
		start.Format(time.RFC3339), end.Format(time.RFC3339))

	if err := validateRange(start, end); err != nil {
		s.logger.Warn("ListCompletedByExitRange: %v", err)
		return nil, err
	}

	activities, err := s.activityRepo.ListCompletedByExitRange(ctx, start, end)
	if err != nil {
		s.logger.Error("ListCompletedByExitRange: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCompletedByExitRange - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListCompletedByExitRange: fetched %d activities", len(activities))
	return models.FromDomainDetailsList(activities), nil
}

// GenerateEntryTicket формирует печатную форму въездного билета
func (s *Service) GenerateEntryTicket(ctx context.Context, activityID int64) (*models.EntryTicketResponse, error) {
	s.logger.Info("GenerateEntryTicket: generating ticket for activity id=%d", activityID)

	details, err := s.getDetails(ctx, activityID, "GenerateEntryTicket")
	if err != nil {
		return nil, err
	}

	ticket := &domain.EntryTicket{
		TicketNumber:  details.TicketNumber,
		PlateNumber:   details.Vehicle.PlateNumber,
		VehicleType:   details.Vehicle.Type,
		EntryDateTime: details.EntryDateTime,
		ParkingName:   details.Parking.Name,
		ParkingCode:   details.Parking.Code,
		Location:      details.Parking.Location,
		FeePerHour:    details.Parking.FeePerHour,
	}

	return models.FromDomainTicket(ticket), nil
}

// GenerateSummary формирует расчетную сводку по активности
// Для машины внутри длительность оценивается на текущий момент,
// для завершенной берется сохраненное значение
func (s *Service) GenerateSummary(ctx context.Context, activityID int64) (*models.SummaryResponse, error) {
	s.logger.Info("GenerateSummary: generating summary for activity id=%d", activityID)

	details, err := s.getDetails(ctx, activityID, "GenerateSummary")
	if err != nil {
		return nil, err
	}

	summary := &domain.ParkingSummary{
		TicketNumber:  details.TicketNumber,
		PlateNumber:   details.Vehicle.PlateNumber,
		VehicleType:   details.Vehicle.Type,
		EntryDateTime: details.EntryDateTime,
		ParkingName:   details.Parking.Name,
		ParkingCode:   details.Parking.Code,
		FeePerHour:    details.Parking.FeePerHour,
	}

	if details.ExitDateTime == nil {
		// Машина еще внутри - оценка на текущий момент
		now := s.timeProvider.Now()
		summary.ExitDateTime = now
		summary.DurationHours = roundHours(now.Sub(details.EntryDateTime).Hours())
		summary.IsEstimate = true
	} else {
		summary.ExitDateTime = *details.ExitDateTime
		if details.DurationHours != nil {
			summary.DurationHours = *details.DurationHours
		}
	}

	return models.FromDomainSummary(summary), nil
}

func (s *Service) getDetails(ctx context.Context, id int64, method string) (*domain.ActivityDetails, error) {
	details, err := s.activityRepo.GetDetailsByID(ctx, id)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			s.logger.Warn("%s: activity id=%d not found", method, id)
			return nil, ErrActivityNotFound
		}
		s.logger.Error("%s: repository error for activity id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return details, nil
}

// validateRange проверяет корректность временного диапазона
func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end date must not be before start date", ErrInvalidInput)
	}
	return nil
}

// roundHours округляет длительность до двух знаков после запятой
func roundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}
