package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error)
	ListByVehicleOwner(ctx context.Context, userID int64) ([]*domain.BookingDetails, error)
	ListAll(ctx context.Context) ([]*domain.BookingDetails, error)
	UpdateExpectedEnd(ctx context.Context, id int64, expectedEnd time.Time) error
	Finish(ctx context.Context, id int64, status domain.BookingStatus, actualEnd time.Time) error
	ListExpiredIDs(ctx context.Context, now time.Time) ([]int64, error)
	MarkOverstay(ctx context.Context, id int64, now time.Time) (bool, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Release(ctx context.Context, slotID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
