package record_entry

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	activityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/activity"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
)

// maxTicketAttempts число попыток вставки при коллизии номера билета
const maxTicketAttempts = 5

// UseCase use case регистрации въезда автомобиля на парковку
type UseCase struct {
	activityRepo ActivityRepository
	parkingRepo  ParkingRepository
	vehicleRepo  VehicleRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	activityRepo ActivityRepository,
	parkingRepo ParkingRepository,
	vehicleRepo VehicleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		activityRepo: activityRepo,
		parkingRepo:  parkingRepo,
		vehicleRepo:  vehicleRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case регистрации въезда
// Декремент счетчика мест и вставка активности выполняются в одной
// сериализуемой транзакции: из двух конкурентных въездов на последнее
// место выигрывает ровно один, проигравший получает ErrNoCapacity
//
// Коллизия номера билета откатывает транзакцию целиком и повторяет её
// с новым номером
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RecordEntry: vehicle=%d, parking=%d, user=%d",
		req.VehicleID, req.ParkingID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RecordEntry: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование автомобиля
	if _, err := uc.vehicleRepo.GetByID(ctx, req.VehicleID); err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			uc.logger.Warn("RecordEntry: vehicle id=%d not found", req.VehicleID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("RecordEntry: failed to get vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	var result *domain.ParkingActivity
	var parking *domain.Parking

	// 3. Транзакция въезда, с повтором при коллизии билета
	var err error
	for attempt := 1; attempt <= maxTicketAttempts; attempt++ {
		ticketNumber := generateTicketNumber()

		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// 3.1. Автомобиль не должен быть уже припаркован
			alreadyParked, err := uc.activityRepo.HasActiveByVehicle(txCtx, req.VehicleID)
			if err != nil {
				uc.logger.Error("RecordEntry: failed to check active activity for vehicle id=%d: %v",
					req.VehicleID, err)
				return fmt.Errorf("%w: failed to check active activity: %v", ErrInternal, err)
			}
			if alreadyParked {
				uc.logger.Warn("RecordEntry: vehicle id=%d is already parked", req.VehicleID)
				return ErrVehicleAlreadyParked
			}

			// 3.2. Занимаем место условным декрементом счетчика
			parking, err = uc.parkingRepo.DecrementAvailable(txCtx, req.ParkingID)
			if err != nil {
				switch {
				case errors.Is(err, parkingRepo.ErrParkingNotFound):
					uc.logger.Warn("RecordEntry: parking id=%d not found", req.ParkingID)
					return ErrParkingNotFound
				case errors.Is(err, parkingRepo.ErrNoCapacity):
					uc.logger.Warn("RecordEntry: parking id=%d has no capacity", req.ParkingID)
					return ErrNoCapacity
				default:
					uc.logger.Error("RecordEntry: failed to decrement spaces for parking id=%d: %v",
						req.ParkingID, err)
					return fmt.Errorf("%w: failed to decrement spaces: %v", ErrInternal, err)
				}
			}

			// 3.3. Создаем активность
			activity := &domain.ParkingActivity{
				VehicleID:     req.VehicleID,
				ParkingID:     req.ParkingID,
				UserID:        req.UserID,
				TicketNumber:  ticketNumber,
				EntryDateTime: uc.timeProvider.Now(),
				Status:        domain.ActivityStatusActive,
			}

			created, err := uc.activityRepo.Create(txCtx, activity)
			if err != nil {
				// ErrDuplicateTicket пробрасываем как есть для повтора снаружи
				if errors.Is(err, activityRepo.ErrDuplicateTicket) {
					return err
				}
				uc.logger.Error("RecordEntry: failed to create activity: %v", err)
				return fmt.Errorf("%w: failed to create activity: %v", ErrInternal, err)
			}

			result = created
			return nil
		})

		if !errors.Is(err, activityRepo.ErrDuplicateTicket) {
			break
		}
		uc.logger.Warn("RecordEntry: ticket number collision (attempt %d/%d), retrying",
			attempt, maxTicketAttempts)
	}
	if err != nil {
		if errors.Is(err, activityRepo.ErrDuplicateTicket) {
			uc.logger.Error("RecordEntry: ticket generation exhausted %d attempts", maxTicketAttempts)
			return nil, fmt.Errorf("%w: ticket generation exhausted retries: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("RecordEntry: successfully recorded entry id=%d, ticket=%s, spaces=%d/%d",
		result.ID, result.TicketNumber, parking.AvailableSpaces, parking.TotalSpaces)

	return &Response{
		ID:              result.ID,
		VehicleID:       result.VehicleID,
		ParkingID:       result.ParkingID,
		UserID:          result.UserID,
		TicketNumber:    result.TicketNumber,
		EntryDateTime:   result.EntryDateTime,
		Status:          string(result.Status),
		AvailableSpaces: parking.AvailableSpaces,
		TotalSpaces:     parking.TotalSpaces,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}
	if req.ParkingID <= 0 {
		return fmt.Errorf("%w: parkingID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	return nil
}
