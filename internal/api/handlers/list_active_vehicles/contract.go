package list_active_vehicles

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/activities/models"
)

type ActivityService interface {
	ListActive(ctx context.Context) (*models.ActivityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
