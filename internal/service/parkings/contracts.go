package parkings

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ParkingRepository интерфейс репозитория парковок
type ParkingRepository interface {
	Create(ctx context.Context, parking *domain.Parking) (*domain.Parking, error)
	GetByID(ctx context.Context, id int64) (*domain.Parking, error)
	GetByCode(ctx context.Context, code string) (*domain.Parking, error)
	List(ctx context.Context) ([]*domain.Parking, error)
	Update(ctx context.Context, id int64, update *domain.ParkingUpdate) error
	Delete(ctx context.Context, id int64) error
}

// ActivityRepository интерфейс репозитория активностей
// Используется при удалении парковки: нельзя удалить парковку с машинами внутри
type ActivityRepository interface {
	HasActiveByParking(ctx context.Context, parkingID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
