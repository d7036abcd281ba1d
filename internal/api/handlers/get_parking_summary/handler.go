package get_parking_summary

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/activities"
)

const (
	msgInvalidActivityID = "некорректный ID активности"
	msgNotFound          = "активность не найдена"
)

type Handler struct {
	service ActivityService
	logger  Logger
}

func NewHandler(service ActivityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/activities/{activityId}/summary
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	activityID, err := strconv.ParseInt(vars["activityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /activities/{id}/summary - Invalid activity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActivityID)
		return
	}

	resp, err := h.service.GenerateSummary(r.Context(), activityID)
	if err != nil {
		switch {
		case errors.Is(err, activities.ErrActivityNotFound):
			h.logger.Warn("GET /activities/{id}/summary - Activity not found: activity_id=%d", activityID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /activities/{id}/summary - Failed to generate summary: activity_id=%d, error=%v",
				activityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
