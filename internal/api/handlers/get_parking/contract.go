package get_parking

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/parkings/models"
)

type ParkingService interface {
	GetByID(ctx context.Context, id int64) (*models.ParkingResponse, error)
	GetByCode(ctx context.Context, code string) (*models.ParkingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
