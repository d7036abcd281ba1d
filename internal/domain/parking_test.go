package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParking_HasCapacity(t *testing.T) {
	assert.True(t, (&Parking{TotalSpaces: 10, AvailableSpaces: 1}).HasCapacity())
	assert.False(t, (&Parking{TotalSpaces: 10, AvailableSpaces: 0}).HasCapacity())
}

func TestParking_IsFull(t *testing.T) {
	assert.False(t, (&Parking{TotalSpaces: 10, AvailableSpaces: 3}).IsFull())
	assert.True(t, (&Parking{TotalSpaces: 10, AvailableSpaces: 0}).IsFull())
}

func TestParking_OccupancyRate(t *testing.T) {
	assert.InDelta(t, 70.0, (&Parking{TotalSpaces: 10, AvailableSpaces: 3}).OccupancyRate(), 0.001)
	assert.InDelta(t, 0.0, (&Parking{TotalSpaces: 10, AvailableSpaces: 10}).OccupancyRate(), 0.001)
	assert.InDelta(t, 100.0, (&Parking{TotalSpaces: 10, AvailableSpaces: 0}).OccupancyRate(), 0.001)

	// Деление на ноль невозможно
	assert.Zero(t, (&Parking{}).OccupancyRate())
}

func TestParkingSlot_IsOccupied(t *testing.T) {
	vehicleID := int64(5)
	assert.True(t, (&ParkingSlot{IsAvailable: false, VehicleID: &vehicleID}).IsOccupied())
	assert.False(t, (&ParkingSlot{IsAvailable: true}).IsOccupied())
}

func TestParkingActivity_Statuses(t *testing.T) {
	assert.True(t, (&ParkingActivity{Status: ActivityStatusActive}).IsActive())
	assert.False(t, (&ParkingActivity{Status: ActivityStatusCompleted}).IsActive())
	assert.True(t, (&ParkingActivity{Status: ActivityStatusCompleted}).IsCompleted())
}
