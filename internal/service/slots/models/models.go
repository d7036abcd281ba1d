package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модели

// CreateSlotRequest запрос на создание одного слота
type CreateSlotRequest struct {
	Number      string `json:"number"`
	Floor       int    `json:"floor"`
	IsAvailable *bool  `json:"isAvailable,omitempty"`
}

// CreateSlotsBulkRequest запрос на массовое создание слотов
type CreateSlotsBulkRequest struct {
	Slots []CreateSlotRequest `json:"slots"`
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID          int64     `json:"id"`
	Number      string    `json:"number"`
	Floor       int       `json:"floor"`
	IsAvailable bool      `json:"isAvailable"`
	VehicleID   *int64    `json:"vehicleId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// BulkCreateResponse результат массового создания слотов
type BulkCreateResponse struct {
	Created int64 `json:"created"`
}

// Методы конвертации

// ToDomain конвертирует запрос в domain модель нового слота
func (r *CreateSlotRequest) ToDomain() domain.NewSlot {
	slot := domain.NewSlot{
		Number:      r.Number,
		Floor:       r.Floor,
		IsAvailable: true,
	}
	if r.IsAvailable != nil {
		slot.IsAvailable = *r.IsAvailable
	}
	return slot
}

// FromDomain конвертирует domain модель слота в DTO
func FromDomain(s *domain.ParkingSlot) *SlotResponse {
	if s == nil {
		return nil
	}
	return &SlotResponse{
		ID:          s.ID,
		Number:      s.Number,
		Floor:       s.Floor,
		IsAvailable: s.IsAvailable,
		VehicleID:   s.VehicleID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromDomainList конвертирует список domain моделей в DTO
func FromDomainList(slots []*domain.ParkingSlot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}
	for _, s := range slots {
		if r := FromDomain(s); r != nil {
			resp.Slots = append(resp.Slots, *r)
		}
	}
	return resp
}
