package get_parking_summary

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/activities/models"
)

type ActivityService interface {
	GenerateSummary(ctx context.Context, activityID int64) (*models.SummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
