package create_booking

import (
	"fmt"
	"time"

	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ParkingSlotID int64  `json:"parkingSlotId"`
	VehicleID     int64  `json:"vehicleId"`
	StartTime     string `json:"startTime"` // ISO 8601
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parse startTime: %w", err)
	}

	return &createBooking.Request{
		UserID:        userID,
		ParkingSlotID: r.ParkingSlotID,
		VehicleID:     r.VehicleID,
		StartTime:     startTime,
	}, nil
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID            int64     `json:"id"`
	ParkingSlotID int64     `json:"parkingSlotId"`
	VehicleID     int64     `json:"vehicleId"`
	StartTime     string    `json:"startTime"` // ISO 8601
	Status        string    `json:"status"`
	SlotNumber    string    `json:"slotNumber"`
	SlotFloor     int       `json:"slotFloor"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует модель usecase в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:            resp.ID,
		ParkingSlotID: resp.ParkingSlotID,
		VehicleID:     resp.VehicleID,
		StartTime:     resp.StartTime.Format(time.RFC3339),
		Status:        resp.Status,
		SlotNumber:    resp.SlotNumber,
		SlotFloor:     resp.SlotFloor,
		CreatedAt:     resp.CreatedAt,
		UpdatedAt:     resp.UpdatedAt,
	}
}
