package record_entry

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ActivityRepository интерфейс репозитория активностей
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.ParkingActivity) (*domain.ParkingActivity, error)
	HasActiveByVehicle(ctx context.Context, vehicleID int64) (bool, error)
}

// ParkingRepository интерфейс репозитория парковок
type ParkingRepository interface {
	DecrementAvailable(ctx context.Context, id int64) (*domain.Parking, error)
}

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
