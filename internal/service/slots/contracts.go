package slots

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SlotRepository интерфейс репозитория парковочных слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.NewSlot) (*domain.ParkingSlot, error)
	CreateBulk(ctx context.Context, slots []domain.NewSlot) (int64, error)
	List(ctx context.Context, onlyAvailable bool) ([]*domain.ParkingSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
