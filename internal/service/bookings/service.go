package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями слотов
// Создание бронирования (гонка за слот) вынесено в отдельный usecase
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID со связанными слотом и автомобилем
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	details, err := s.bookingRepo.GetDetailsByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDetails(details), nil
}

// GetUserBookings получает бронирования всех автомобилей пользователя,
// упорядоченные по времени начала (сначала новые)
func (s *Service) GetUserBookings(ctx context.Context, userID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d", userID)

	bookings, err := s.bookingRepo.ListByVehicleOwner(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), userID)
	return models.FromDomainDetailsList(bookings), nil
}

// GetAllBookings получает все бронирования с профилями владельцев
// Доступно только администраторам
func (s *Service) GetAllBookings(ctx context.Context, role domain.Role) (*models.BookingListResponse, error) {
	s.logger.Info("GetAllBookings: fetching all bookings, role=%s", role)

	if role != domain.RoleAdmin {
		s.logger.Warn("GetAllBookings: access denied for role=%s", role)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("GetAllBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAllBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllBookings: fetched %d bookings", len(bookings))
	return models.FromDomainDetailsList(bookings), nil
}

// Cancel отменяет активное бронирование и освобождает слот
// Перевод бронирования и освобождение слота выполняются в одной транзакции
func (s *Service) Cancel(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	if err := s.finish(ctx, bookingID, domain.BookingStatusCancelled); err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return s.GetByID(ctx, bookingID)
}

// Release завершает активное бронирование (выпуск машины со слота)
// и освобождает слот
func (s *Service) Release(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("Release: releasing booking id=%d", bookingID)

	if err := s.finish(ctx, bookingID, domain.BookingStatusCompleted); err != nil {
		return nil, err
	}

	s.logger.Info("Release: successfully released booking id=%d", bookingID)
	return s.GetByID(ctx, bookingID)
}

// Extend продлевает активное бронирование на additionalHours часов
// Новое ожидаемое время окончания считается от текущего ожидаемого,
// либо от текущего момента, если продление первое
func (s *Service) Extend(ctx context.Context, bookingID int64, additionalHours int) (*models.BookingResponse, error) {
	s.logger.Info("Extend: extending booking id=%d by %d hours", bookingID, additionalHours)

	if additionalHours <= 0 || additionalHours > domain.MaxExtendHours {
		s.logger.Warn("Extend: invalid additionalHours=%d for booking id=%d", additionalHours, bookingID)
		return nil, fmt.Errorf("%w: additionalHours must be between 1 and %d",
			ErrInvalidInput, domain.MaxExtendHours)
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Extend: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Extend: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Extend - repository error: %v", ErrInternal, err)
		}

		// Продлеваем только активные бронирования
		if !booking.IsActive() {
			s.logger.Warn("Extend: booking id=%d is not active, status=%s", bookingID, booking.Status)
			return ErrBookingNotActive
		}

		base := s.timeProvider.Now()
		if booking.ExpectedEndTime != nil {
			base = *booking.ExpectedEndTime
		}
		newEnd := base.Add(time.Duration(additionalHours) * time.Hour)

		if err := s.bookingRepo.UpdateExpectedEnd(txCtx, bookingID, newEnd); err != nil {
			s.logger.Error("Extend: failed to update expected end for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Extend - failed to update expected end: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Extend: successfully extended booking id=%d", bookingID)
	return s.GetByID(ctx, bookingID)
}

// MarkOverstays переводит просроченные активные бронирования в overstay
// Вызывается фоновым sweeper'ом. Каждая строка обновляется независимо:
// ошибка на одной не прерывает обработку остальных
func (s *Service) MarkOverstays(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	ids, err := s.bookingRepo.ListExpiredIDs(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkOverstays - failed to list expired bookings: %v", ErrInternal, err)
	}

	marked := 0
	for _, id := range ids {
		changed, err := s.bookingRepo.MarkOverstay(ctx, id, now)
		if err != nil {
			s.logger.Error("MarkOverstays: failed to mark booking id=%d: %v", id, err)
			continue
		}
		if changed {
			s.logger.Info("MarkOverstays: booking id=%d marked as overstay", id)
			marked++
		}
	}

	return marked, nil
}

// finish переводит активное бронирование в терминальный статус и
// освобождает его слот в одной транзакции
func (s *Service) finish(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("finish: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("finish: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: finish - repository error: %v", ErrInternal, err)
		}

		if !booking.IsActive() {
			s.logger.Warn("finish: booking id=%d is not active, status=%s", bookingID, booking.Status)
			return ErrBookingNotActive
		}

		now := s.timeProvider.Now()
		if err := s.bookingRepo.Finish(txCtx, bookingID, status, now); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotActive) {
				return ErrBookingNotActive
			}
			s.logger.Error("finish: failed to finish booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: finish - failed to update booking: %v", ErrInternal, err)
		}

		// Слот освобождается в той же транзакции
		if err := s.slotRepo.Release(txCtx, booking.ParkingSlotID); err != nil {
			s.logger.Error("finish: failed to release slot id=%d: %v", booking.ParkingSlotID, err)
			return fmt.Errorf("%w: finish - failed to release slot: %v", ErrInternal, err)
		}

		return nil
	})
}
