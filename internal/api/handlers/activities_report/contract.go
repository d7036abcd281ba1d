package activities_report

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/service/activities/models"
)

type ActivityService interface {
	ListByEntryRange(ctx context.Context, start, end time.Time) (*models.ActivityListResponse, error)
	ListCompletedByExitRange(ctx context.Context, start, end time.Time) (*models.ActivityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
