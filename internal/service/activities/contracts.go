package activities

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ActivityRepository интерфейс репозитория парковочных активностей
type ActivityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingActivity, error)
	GetDetailsByID(ctx context.Context, id int64) (*domain.ActivityDetails, error)
	ListActive(ctx context.Context) ([]*domain.ActivityDetails, error)
	ListByEntryRange(ctx context.Context, start, end time.Time) ([]*domain.ActivityDetails, error)
	ListCompletedByExitRange(ctx context.Context, start, end time.Time) ([]*domain.ActivityDetails, error)
	Complete(ctx context.Context, id int64, exitTime time.Time, durationHours float64) error
}

// ParkingRepository интерфейс репозитория парковок
type ParkingRepository interface {
	IncrementAvailable(ctx context.Context, id int64) (*domain.Parking, error)
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
