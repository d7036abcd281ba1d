package create_parking

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/parkings/models"
)

type ParkingService interface {
	Create(ctx context.Context, role domain.Role, req *models.CreateParkingRequest) (*models.ParkingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
