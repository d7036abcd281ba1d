package get_parking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/parkings"
	"github.com/m04kA/SMC-ParkingService/internal/service/parkings/models"
)

const msgNotFound = "парковка не найдена"

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

// Handle GET /api/v1/parkings/{parkingId}
// Числовой идентификатор ищется по ID, иначе - по короткому коду
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	idStr := vars["parkingId"]

	var resp *models.ParkingResponse
	var err error

	if parkingID, parseErr := strconv.ParseInt(idStr, 10, 64); parseErr == nil {
		resp, err = h.service.GetByID(r.Context(), parkingID)
	} else {
		resp, err = h.service.GetByCode(r.Context(), idStr)
	}

	if err != nil {
		switch {
		case errors.Is(err, parkings.ErrParkingNotFound):
			h.logger.Warn("GET /parkings/{id} - Parking not found: id=%s", idStr)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /parkings/{id} - Failed to get parking: id=%s, error=%v", idStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
