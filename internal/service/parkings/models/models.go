package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модели

// CreateParkingRequest запрос на создание парковки
type CreateParkingRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	TotalSpaces int     `json:"totalSpaces"`
	FeePerHour  float64 `json:"feePerHour"`
}

// UpdateParkingRequest запрос на частичное обновление парковки
// Nil поля не изменяются
type UpdateParkingRequest struct {
	Code        *string  `json:"code,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Location    *string  `json:"location,omitempty"`
	TotalSpaces *int     `json:"totalSpaces,omitempty"`
	FeePerHour  *float64 `json:"feePerHour,omitempty"`
}

// Response модели

// ParkingResponse ответ с данными парковки
type ParkingResponse struct {
	ID              int64     `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Location        string    `json:"location"`
	TotalSpaces     int       `json:"totalSpaces"`
	AvailableSpaces int       `json:"availableSpaces"`
	FeePerHour      float64   `json:"feePerHour"`
	OccupancyRate   float64   `json:"occupancyRate"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ParkingListResponse ответ со списком парковок
type ParkingListResponse struct {
	Parkings []ParkingResponse `json:"parkings"`
}

// Методы конвертации

// ToDomain конвертирует запрос в domain модель парковки
func (r *CreateParkingRequest) ToDomain() *domain.Parking {
	return &domain.Parking{
		Code:        r.Code,
		Name:        r.Name,
		Location:    r.Location,
		TotalSpaces: r.TotalSpaces,
		FeePerHour:  r.FeePerHour,
	}
}

// ToDomainUpdate конвертирует запрос в domain модель обновления
func (r *UpdateParkingRequest) ToDomainUpdate() *domain.ParkingUpdate {
	return &domain.ParkingUpdate{
		Code:        r.Code,
		Name:        r.Name,
		Location:    r.Location,
		TotalSpaces: r.TotalSpaces,
		FeePerHour:  r.FeePerHour,
	}
}

// FromDomain конвертирует domain модель парковки в DTO
func FromDomain(p *domain.Parking) *ParkingResponse {
	if p == nil {
		return nil
	}
	return &ParkingResponse{
		ID:              p.ID,
		Code:            p.Code,
		Name:            p.Name,
		Location:        p.Location,
		TotalSpaces:     p.TotalSpaces,
		AvailableSpaces: p.AvailableSpaces,
		FeePerHour:      p.FeePerHour,
		OccupancyRate:   p.OccupancyRate(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// FromDomainList конвертирует список domain моделей в DTO
func FromDomainList(parkings []*domain.Parking) *ParkingListResponse {
	resp := &ParkingListResponse{
		Parkings: make([]ParkingResponse, 0, len(parkings)),
	}
	for _, p := range parkings {
		if r := FromDomain(p); r != nil {
			resp.Parkings = append(resp.Parkings, *r)
		}
	}
	return resp
}
