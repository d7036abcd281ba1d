package delete_parking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/parkings"
)

const (
	msgInvalidParkingID  = "некорректный ID парковки"
	msgForbidden         = "доступ запрещен"
	msgNotFound          = "парковка не найдена"
	msgHasActiveVehicles = "на парковке есть активные автомобили"
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

// Handle DELETE /api/v1/parkings/{parkingId} (только для администраторов)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	parkingID, err := strconv.ParseInt(vars["parkingId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /parkings/{id} - Invalid parking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParkingID)
		return
	}

	role := middleware.Role(r.Context())

	err = h.service.Delete(r.Context(), role, parkingID)
	if err != nil {
		switch {
		case errors.Is(err, parkings.ErrAccessDenied):
			h.logger.Warn("DELETE /parkings/{id} - Access denied: role=%s", role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, parkings.ErrParkingNotFound):
			h.logger.Warn("DELETE /parkings/{id} - Parking not found: parking_id=%d", parkingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, parkings.ErrHasActiveVehicles):
			h.logger.Warn("DELETE /parkings/{id} - Has active vehicles: parking_id=%d", parkingID)
			handlers.RespondConflict(w, msgHasActiveVehicles)

		default:
			h.logger.Error("DELETE /parkings/{id} - Failed to delete parking: parking_id=%d, error=%v",
				parkingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /parkings/{id} - Parking deleted successfully: parking_id=%d", parkingID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
