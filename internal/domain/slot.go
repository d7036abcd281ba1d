package domain

import "time"

// ParkingSlot represents a single numbered physical parking space
//
// Invariant: IsAvailable is false if and only if VehicleID is set and refers
// to the vehicle of the currently active booking on this slot
type ParkingSlot struct {
	ID          int64
	Number      string
	Floor       int
	IsAvailable bool
	VehicleID   *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOccupied returns true if the slot is held by an active booking
func (s *ParkingSlot) IsOccupied() bool {
	return !s.IsAvailable
}

// NewSlot describes one slot to be created administratively
type NewSlot struct {
	Number      string
	Floor       int
	IsAvailable bool
}
