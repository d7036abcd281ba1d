package create_slots_bulk

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgForbidden          = "доступ запрещен"
	msgDuplicateNumber    = "слот с таким номером уже существует"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/bulk (только для администраторов)
// Пачка создается атомарно: либо все слоты, либо ни одного
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSlotsBulkRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	role := middleware.Role(r.Context())

	resp, err := h.service.CreateBulk(r.Context(), role, &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("POST /slots/bulk - Access denied: role=%s", role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /slots/bulk - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, slots.ErrDuplicateNumber):
			h.logger.Warn("POST /slots/bulk - Duplicate number: %v", err)
			handlers.RespondConflict(w, msgDuplicateNumber)

		default:
			h.logger.Error("POST /slots/bulk - Failed to create slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/bulk - Slots created successfully: count=%d", resp.Created)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}
