package delete_parking

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type ParkingService interface {
	Delete(ctx context.Context, role domain.Role, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
