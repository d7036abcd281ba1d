package domain

import "time"

// Parking represents a named parking location with aggregate capacity
//
// Invariant: 0 <= AvailableSpaces <= TotalSpaces at all times.
// AvailableSpaces is mutated only through the conditional
// increment/decrement primitives of the parking repository
type Parking struct {
	ID              int64
	Code            string
	Name            string
	Location        string
	TotalSpaces     int
	AvailableSpaces int
	FeePerHour      float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCapacity returns true if at least one space is free
func (p *Parking) HasCapacity() bool {
	return p.AvailableSpaces > 0
}

// IsFull returns true if no spaces are free
func (p *Parking) IsFull() bool {
	return p.AvailableSpaces <= 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (p *Parking) OccupancyRate() float64 {
	if p.TotalSpaces == 0 {
		return 0
	}
	occupied := p.TotalSpaces - p.AvailableSpaces
	return float64(occupied) / float64(p.TotalSpaces) * 100
}

// ParkingUpdate describes a partial administrative update of a location
// Nil fields are left unchanged
type ParkingUpdate struct {
	Code        *string
	Name        *string
	Location    *string
	TotalSpaces *int
	FeePerHour  *float64
}
