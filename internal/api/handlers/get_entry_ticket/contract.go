package get_entry_ticket

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/activities/models"
)

type ActivityService interface {
	GenerateEntryTicket(ctx context.Context, activityID int64) (*models.EntryTicketResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
