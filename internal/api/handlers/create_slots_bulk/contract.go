package create_slots_bulk

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
)

type SlotService interface {
	CreateBulk(ctx context.Context, role domain.Role, req *models.CreateSlotsBulkRequest) (*models.BulkCreateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
