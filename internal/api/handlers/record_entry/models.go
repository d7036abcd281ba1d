package record_entry

import (
	"time"

	recordEntry "github.com/m04kA/SMC-ParkingService/internal/usecase/record_entry"
)

// RecordEntryRequest HTTP request model
type RecordEntryRequest struct {
	VehicleID int64 `json:"vehicleId"`
	ParkingID int64 `json:"parkingId"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *RecordEntryRequest) ToUseCaseRequest(userID int64) *recordEntry.Request {
	return &recordEntry.Request{
		VehicleID: r.VehicleID,
		ParkingID: r.ParkingID,
		UserID:    userID,
	}
}

// RecordEntryResponse HTTP response model
type RecordEntryResponse struct {
	ID              int64     `json:"id"`
	VehicleID       int64     `json:"vehicleId"`
	ParkingID       int64     `json:"parkingId"`
	UserID          int64     `json:"userId"`
	TicketNumber    string    `json:"ticketNumber"`
	EntryDateTime   string    `json:"entryDateTime"` // ISO 8601
	Status          string    `json:"status"`
	AvailableSpaces int       `json:"availableSpaces"`
	TotalSpaces     int       `json:"totalSpaces"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует модель usecase в HTTP response
func FromUseCaseResponse(resp *recordEntry.Response) *RecordEntryResponse {
	return &RecordEntryResponse{
		ID:              resp.ID,
		VehicleID:       resp.VehicleID,
		ParkingID:       resp.ParkingID,
		UserID:          resp.UserID,
		TicketNumber:    resp.TicketNumber,
		EntryDateTime:   resp.EntryDateTime.Format(time.RFC3339),
		Status:          resp.Status,
		AvailableSpaces: resp.AvailableSpaces,
		TotalSpaces:     resp.TotalSpaces,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
}
