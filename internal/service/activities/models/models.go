package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Response модели

// VehicleInfo данные автомобиля, вложенные в ответ с активностью
type VehicleInfo struct {
	ID          int64  `json:"id"`
	PlateNumber string `json:"plateNumber"`
	Type        string `json:"type"`
	UserID      int64  `json:"userId"`
}

// ParkingInfo данные парковки, вложенные в ответ с активностью
type ParkingInfo struct {
	ID              int64   `json:"id"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Location        string  `json:"location"`
	TotalSpaces     int     `json:"totalSpaces"`
	AvailableSpaces int     `json:"availableSpaces"`
	FeePerHour      float64 `json:"feePerHour"`
}

// UserInfo профиль пользователя, записавшего активность
type UserInfo struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// ActivityResponse ответ с данными парковочной активности
type ActivityResponse struct {
	ID            int64  `json:"id"`
	VehicleID     int64  `json:"vehicleId"`
	ParkingID     int64  `json:"parkingId"`
	UserID        int64  `json:"userId"`
	TicketNumber  string `json:"ticketNumber"`
	EntryDateTime string `json:"entryDateTime"` // ISO 8601
	Status        string `json:"status"`

	ExitDateTime  *string  `json:"exitDateTime,omitempty"` // ISO 8601
	DurationHours *float64 `json:"durationHours,omitempty"`

	Vehicle *VehicleInfo `json:"vehicle,omitempty"`
	Parking *ParkingInfo `json:"parking,omitempty"`
	User    *UserInfo    `json:"user,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ActivityListResponse ответ со списком активностей
type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
}

// EntryTicketResponse печатная форма въездного билета
type EntryTicketResponse struct {
	TicketNumber  string  `json:"ticketNumber"`
	PlateNumber   string  `json:"plateNumber"`
	VehicleType   string  `json:"vehicleType"`
	EntryDateTime string  `json:"entryDateTime"` // ISO 8601
	ParkingName   string  `json:"parkingName"`
	ParkingCode   string  `json:"parkingCode"`
	Location      string  `json:"location"`
	FeePerHour    float64 `json:"feePerHour"`
}

// SummaryResponse расчетная сводка по активности
// Для машины внутри - оценка на текущий момент, isEstimate = true
type SummaryResponse struct {
	TicketNumber  string  `json:"ticketNumber"`
	PlateNumber   string  `json:"plateNumber"`
	VehicleType   string  `json:"vehicleType"`
	EntryDateTime string  `json:"entryDateTime"` // ISO 8601
	ExitDateTime  string  `json:"exitDateTime"`  // ISO 8601
	DurationHours float64 `json:"durationHours"`
	ParkingName   string  `json:"parkingName"`
	ParkingCode   string  `json:"parkingCode"`
	FeePerHour    float64 `json:"feePerHour"`
	IsEstimate    bool    `json:"isEstimate"`
}

// Методы конвертации

// FromDomainDetails конвертирует domain модель со связями в DTO
func FromDomainDetails(d *domain.ActivityDetails) *ActivityResponse {
	if d == nil {
		return nil
	}

	resp := &ActivityResponse{
		ID:            d.ID,
		VehicleID:     d.VehicleID,
		ParkingID:     d.ParkingID,
		UserID:        d.UserID,
		TicketNumber:  d.TicketNumber,
		EntryDateTime: d.EntryDateTime.Format(time.RFC3339),
		Status:        string(d.Status),
		DurationHours: d.DurationHours,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}

	if d.ExitDateTime != nil {
		s := d.ExitDateTime.Format(time.RFC3339)
		resp.ExitDateTime = &s
	}

	if d.Vehicle != nil {
		resp.Vehicle = &VehicleInfo{
			ID:          d.Vehicle.ID,
			PlateNumber: d.Vehicle.PlateNumber,
			Type:        string(d.Vehicle.Type),
			UserID:      d.Vehicle.UserID,
		}
	}
	if d.Parking != nil {
		resp.Parking = &ParkingInfo{
			ID:              d.Parking.ID,
			Code:            d.Parking.Code,
			Name:            d.Parking.Name,
			Location:        d.Parking.Location,
			TotalSpaces:     d.Parking.TotalSpaces,
			AvailableSpaces: d.Parking.AvailableSpaces,
			FeePerHour:      d.Parking.FeePerHour,
		}
	}
	if d.User != nil {
		resp.User = &UserInfo{
			ID:        d.User.ID,
			FirstName: d.User.FirstName,
			LastName:  d.User.LastName,
			Email:     d.User.Email,
			Role:      string(d.User.Role),
		}
	}

	return resp
}

// FromDomainDetailsList конвертирует список domain моделей в DTO
func FromDomainDetailsList(activities []*domain.ActivityDetails) *ActivityListResponse {
	resp := &ActivityListResponse{
		Activities: make([]ActivityResponse, 0, len(activities)),
	}

	for _, a := range activities {
		if r := FromDomainDetails(a); r != nil {
			resp.Activities = append(resp.Activities, *r)
		}
	}

	return resp
}

// FromDomainTicket конвертирует domain билет в DTO
func FromDomainTicket(t *domain.EntryTicket) *EntryTicketResponse {
	if t == nil {
		return nil
	}
	return &EntryTicketResponse{
		TicketNumber:  t.TicketNumber,
		PlateNumber:   t.PlateNumber,
		VehicleType:   string(t.VehicleType),
		EntryDateTime: t.EntryDateTime.Format(time.RFC3339),
		ParkingName:   t.ParkingName,
		ParkingCode:   t.ParkingCode,
		Location:      t.Location,
		FeePerHour:    t.FeePerHour,
	}
}

// FromDomainSummary конвертирует domain сводку в DTO
func FromDomainSummary(s *domain.ParkingSummary) *SummaryResponse {
	if s == nil {
		return nil
	}
	return &SummaryResponse{
		TicketNumber:  s.TicketNumber,
		PlateNumber:   s.PlateNumber,
		VehicleType:   string(s.VehicleType),
		EntryDateTime: s.EntryDateTime.Format(time.RFC3339),
		ExitDateTime:  s.ExitDateTime.Format(time.RFC3339),
		DurationHours: s.DurationHours,
		ParkingName:   s.ParkingName,
		ParkingCode:   s.ParkingCode,
		FeePerHour:    s.FeePerHour,
		IsEstimate:    s.IsEstimate,
	}
}
