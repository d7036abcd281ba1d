package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Response модели

// SlotInfo данные слота, вложенные в ответ с бронированием
type SlotInfo struct {
	ID          int64  `json:"id"`
	Number      string `json:"number"`
	Floor       int    `json:"floor"`
	IsAvailable bool   `json:"isAvailable"`
}

// VehicleInfo данные автомобиля, вложенные в ответ с бронированием
type VehicleInfo struct {
	ID          int64  `json:"id"`
	PlateNumber string `json:"plateNumber"`
	Type        string `json:"type"`
	UserID      int64  `json:"userId"`
}

// OwnerInfo публичный профиль владельца автомобиля (админские выборки)
type OwnerInfo struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64  `json:"id"`
	ParkingSlotID int64  `json:"parkingSlotId"`
	VehicleID     int64  `json:"vehicleId"`
	StartTime     string `json:"startTime"` // ISO 8601
	Status        string `json:"status"`

	ExpectedEndTime *string `json:"expectedEndTime,omitempty"` // ISO 8601
	ActualEndTime   *string `json:"actualEndTime,omitempty"`   // ISO 8601

	Slot    *SlotInfo    `json:"slot,omitempty"`
	Vehicle *VehicleInfo `json:"vehicle,omitempty"`
	Owner   *OwnerInfo   `json:"owner,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainDetails конвертирует domain модель со связями в DTO
func FromDomainDetails(d *domain.BookingDetails) *BookingResponse {
	if d == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            d.ID,
		ParkingSlotID: d.ParkingSlotID,
		VehicleID:     d.VehicleID,
		StartTime:     d.StartTime.Format(time.RFC3339),
		Status:        string(d.Status),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}

	if d.ExpectedEndTime != nil {
		s := d.ExpectedEndTime.Format(time.RFC3339)
		resp.ExpectedEndTime = &s
	}
	if d.ActualEndTime != nil {
		s := d.ActualEndTime.Format(time.RFC3339)
		resp.ActualEndTime = &s
	}

	if d.Slot != nil {
		resp.Slot = &SlotInfo{
			ID:          d.Slot.ID,
			Number:      d.Slot.Number,
			Floor:       d.Slot.Floor,
			IsAvailable: d.Slot.IsAvailable,
		}
	}
	if d.Vehicle != nil {
		resp.Vehicle = &VehicleInfo{
			ID:          d.Vehicle.ID,
			PlateNumber: d.Vehicle.PlateNumber,
			Type:        string(d.Vehicle.Type),
			UserID:      d.Vehicle.UserID,
		}
	}
	if d.Owner != nil {
		resp.Owner = &OwnerInfo{
			ID:        d.Owner.ID,
			FirstName: d.Owner.FirstName,
			LastName:  d.Owner.LastName,
			Email:     d.Owner.Email,
			Role:      string(d.Owner.Role),
		}
	}

	return resp
}

// FromDomainDetailsList конвертирует список domain моделей в DTO
func FromDomainDetailsList(bookings []*domain.BookingDetails) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if r := FromDomainDetails(b); r != nil {
			resp.Bookings = append(resp.Bookings, *r)
		}
	}

	return resp
}
