package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
)

// UseCase use case для создания бронирования слота
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	vehicleRepo  VehicleRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	vehicleRepo VehicleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		vehicleRepo:  vehicleRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Вставка бронирования и захват слота выполняются в одной сериализуемой
// транзакции: из двух конкурентных запросов на один слот выигрывает ровно
// один, проигравший получает ErrSlotNotAvailable и полный откат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, slot=%d, vehicle=%d, start=%s",
		req.UserID, req.ParkingSlotID, req.VehicleID, req.StartTime.Format("2006-01-02T15:04:05Z07:00"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем автомобиль и его принадлежность пользователю
	vehicle, err := uc.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			uc.logger.Warn("CreateBooking: vehicle id=%d not found", req.VehicleID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("CreateBooking: failed to get vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	if !vehicle.BelongsTo(req.UserID) {
		uc.logger.Warn("CreateBooking: vehicle id=%d does not belong to user id=%d",
			req.VehicleID, req.UserID)
		return nil, ErrVehicleNotOwned
	}

	var result *domain.Booking
	var slot *domain.ParkingSlot

	// 3. Создание бронирования и захват слота в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Читаем слот с блокировкой строки
		var err error
		slot, err = uc.slotRepo.GetByID(txCtx, req.ParkingSlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%d not found", req.ParkingSlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get slot id=%d: %v", req.ParkingSlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		if !slot.IsAvailable {
			uc.logger.Warn("CreateBooking: slot id=%d is occupied", req.ParkingSlotID)
			return ErrSlotNotAvailable
		}

		// 3.2. Создаем бронирование
		booking := &domain.Booking{
			ParkingSlotID: req.ParkingSlotID,
			VehicleID:     req.VehicleID,
			StartTime:     req.StartTime,
			Status:        domain.BookingStatusActive,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 3.3. Захватываем слот условным UPDATE
		// Проигрыш здесь откатывает и вставку бронирования
		if err := uc.slotRepo.Claim(txCtx, req.ParkingSlotID, req.VehicleID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: lost the race for slot id=%d", req.ParkingSlotID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to claim slot id=%d: %v", req.ParkingSlotID, err)
			return fmt.Errorf("%w: failed to claim slot: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d for slot id=%d",
		result.ID, req.ParkingSlotID)

	return &Response{
		ID:            result.ID,
		ParkingSlotID: result.ParkingSlotID,
		VehicleID:     result.VehicleID,
		StartTime:     result.StartTime,
		Status:        string(result.Status),
		SlotNumber:    slot.Number,
		SlotFloor:     slot.Floor,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.ParkingSlotID <= 0 {
		return fmt.Errorf("%w: parkingSlotID must be positive", ErrInvalidInput)
	}
	if req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	return nil
}
