package activities_report

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/activities"
	"github.com/m04kA/SMC-ParkingService/internal/service/activities/models"
)

const (
	msgForbidden   = "доступ запрещен"
	msgInvalidType = "некорректный тип отчета, ожидается entry или exit"
	msgInvalidDate = "некорректный формат даты, ожидается RFC 3339"
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

// Handle GET /api/v1/activities/report?type=entry&start=...&end=...
// type=entry - активности по времени въезда, type=exit - завершенные
// по времени выезда. Только для администраторов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	role := middleware.Role(r.Context())
	if role != domain.RoleAdmin {
		h.logger.Warn("GET /activities/report - Access denied: role=%s", role)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	query := r.URL.Query()

	start, err := time.Parse(time.RFC3339, query.Get("start"))
	if err != nil {
		h.logger.Warn("GET /activities/report - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	end, err := time.Parse(time.RFC3339, query.Get("end"))
	if err != nil {
		h.logger.Warn("GET /activities/report - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var resp *models.ActivityListResponse
	switch query.Get("type") {
	case "entry":
		resp, err = h.service.ListByEntryRange(r.Context(), start, end)
	case "exit":
		resp, err = h.service.ListCompletedByExitRange(r.Context(), start, end)
	default:
		h.logger.Warn("GET /activities/report - Invalid report type: %s", query.Get("type"))
		handlers.RespondBadRequest(w, msgInvalidType)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, activities.ErrInvalidInput):
			h.logger.Warn("GET /activities/report - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /activities/report - Failed to build report: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
