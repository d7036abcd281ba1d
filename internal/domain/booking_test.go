package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: BookingStatusActive}).IsActive())
	assert.False(t, (&Booking{Status: BookingStatusCancelled}).IsActive())
	assert.False(t, (&Booking{Status: BookingStatusCompleted}).IsActive())
	assert.False(t, (&Booking{Status: BookingStatusOverstay}).IsActive())
}

func TestBooking_IsTerminal(t *testing.T) {
	assert.False(t, (&Booking{Status: BookingStatusActive}).IsTerminal())
	assert.True(t, (&Booking{Status: BookingStatusCancelled}).IsTerminal())
	assert.True(t, (&Booking{Status: BookingStatusCompleted}).IsTerminal())
	assert.True(t, (&Booking{Status: BookingStatusOverstay}).IsTerminal())
}

func TestBooking_IsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	t.Run("open-ended booking never expires", func(t *testing.T) {
		b := &Booking{Status: BookingStatusActive}
		assert.False(t, b.IsExpired(now))
	})

	t.Run("active booking past expected end is expired", func(t *testing.T) {
		b := &Booking{Status: BookingStatusActive, ExpectedEndTime: &past}
		assert.True(t, b.IsExpired(now))
	})

	t.Run("active booking before expected end is not expired", func(t *testing.T) {
		b := &Booking{Status: BookingStatusActive, ExpectedEndTime: &future}
		assert.False(t, b.IsExpired(now))
	})

	t.Run("terminal booking is never expired", func(t *testing.T) {
		b := &Booking{Status: BookingStatusCompleted, ExpectedEndTime: &past}
		assert.False(t, b.IsExpired(now))
	})
}

func TestVehicle_BelongsTo(t *testing.T) {
	v := &Vehicle{ID: 1, UserID: 42}
	assert.True(t, v.BelongsTo(42))
	assert.False(t, v.BelongsTo(7))
}
