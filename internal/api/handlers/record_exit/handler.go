package record_exit

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
	msgAlreadyExited     = "выезд уже оформлен"
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

// Handle PATCH /api/v1/activities/{activityId}/exit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	activityID, err := strconv.ParseInt(vars["activityId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /activities/{id}/exit - Invalid activity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActivityID)
		return
	}

	resp, err := h.service.RecordExit(r.Context(), activityID)
	if err != nil {
		switch {
		case errors.Is(err, activities.ErrActivityNotFound):
			h.logger.Warn("PATCH /activities/{id}/exit - Activity not found: activity_id=%d", activityID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, activities.ErrAlreadyExited):
			h.logger.Warn("PATCH /activities/{id}/exit - Already exited: activity_id=%d", activityID)
			handlers.RespondConflict(w, msgAlreadyExited)

		default:
			h.logger.Error("PATCH /activities/{id}/exit - Failed to record exit: activity_id=%d, error=%v",
				activityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /activities/{id}/exit - Exit recorded successfully: activity_id=%d", activityID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
