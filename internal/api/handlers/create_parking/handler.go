package create_parking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/parkings"
	"github.com/m04kA/SMC-ParkingService/internal/service/parkings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgForbidden          = "доступ запрещен"
	msgDuplicateCode      = "парковка с таким кодом уже существует"
)

type Handler struct {
	service ParkingService
	logger  Logger
}

func NewHandler(service ParkingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/parkings (только для администраторов)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateParkingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /parkings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	role := middleware.Role(r.Context())

	resp, err := h.service.Create(r.Context(), role, &req)
	if err != nil {
		switch {
		case errors.Is(err, parkings.ErrAccessDenied):
			h.logger.Warn("POST /parkings - Access denied: role=%s", role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, parkings.ErrInvalidInput):
			h.logger.Warn("POST /parkings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, parkings.ErrDuplicateCode):
			h.logger.Warn("POST /parkings - Duplicate code: %s", req.Code)
			handlers.RespondConflict(w, msgDuplicateCode)

		default:
			h.logger.Error("POST /parkings - Failed to create parking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /parkings - Parking created successfully: parking_id=%d, code=%s",
		resp.ID, resp.Code)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}
