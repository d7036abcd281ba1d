package update_parking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/parkings"
	"github.com/m04kA/SMC-ParkingService/internal/service/parkings/models"
)

const (
	msgInvalidParkingID   = "некорректный ID парковки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgForbidden          = "доступ запрещен"
	msgNotFound           = "парковка не найдена"
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

// Handle PUT /api/v1/parkings/{parkingId} (только для администраторов)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	parkingID, err := strconv.ParseInt(vars["parkingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /parkings/{id} - Invalid parking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParkingID)
		return
	}

	var req models.UpdateParkingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /parkings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	role := middleware.Role(r.Context())

	resp, err := h.service.Update(r.Context(), role, parkingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, parkings.ErrAccessDenied):
			h.logger.Warn("PUT /parkings/{id} - Access denied: role=%s", role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, parkings.ErrInvalidInput):
			h.logger.Warn("PUT /parkings/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, parkings.ErrParkingNotFound):
			h.logger.Warn("PUT /parkings/{id} - Parking not found: parking_id=%d", parkingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, parkings.ErrDuplicateCode):
			h.logger.Warn("PUT /parkings/{id} - Duplicate code: parking_id=%d", parkingID)
			handlers.RespondConflict(w, msgDuplicateCode)

		default:
			h.logger.Error("PUT /parkings/{id} - Failed to update parking: parking_id=%d, error=%v",
				parkingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /parkings/{id} - Parking updated successfully: parking_id=%d", parkingID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
