package record_entry

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	recordEntry "github.com/m04kA/SMC-ParkingService/internal/usecase/record_entry"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgVehicleNotFound    = "автомобиль не найден"
	msgParkingNotFound    = "парковка не найдена"
	msgNoCapacity         = "свободных мест нет"
	msgAlreadyParked      = "автомобиль уже находится на парковке"
	msgUnauthorized       = "не удалось определить пользователя"
)

type Handler struct {
	useCase RecordEntryUseCase
	logger  Logger
}

func NewHandler(useCase RecordEntryUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/activities/entry
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Warn("POST /activities/entry - Missing user identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req RecordEntryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /activities/entry - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, recordEntry.ErrInvalidInput):
			h.logger.Warn("POST /activities/entry - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, recordEntry.ErrVehicleNotFound):
			h.logger.Warn("POST /activities/entry - Vehicle not found: vehicle_id=%d", req.VehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, recordEntry.ErrParkingNotFound):
			h.logger.Warn("POST /activities/entry - Parking not found: parking_id=%d", req.ParkingID)
			handlers.RespondNotFound(w, msgParkingNotFound)

		case errors.Is(err, recordEntry.ErrNoCapacity):
			h.logger.Warn("POST /activities/entry - No capacity: parking_id=%d", req.ParkingID)
			handlers.RespondConflict(w, msgNoCapacity)

		case errors.Is(err, recordEntry.ErrVehicleAlreadyParked):
			h.logger.Warn("POST /activities/entry - Vehicle already parked: vehicle_id=%d", req.VehicleID)
			handlers.RespondConflict(w, msgAlreadyParked)

		default:
			h.logger.Error("POST /activities/entry - Failed to record entry: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /activities/entry - Entry recorded successfully: activity_id=%d, ticket=%s",
		resp.ID, resp.TicketNumber)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
