package domain

import "time"

// BookingStatus represents the status of a slot booking
type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusOverstay  BookingStatus = "overstay"
)

// Booking represents a time-boxed reservation of one slot by one vehicle
//
// ExpectedEndTime is the planned end of the booking, set only by extension;
// while it is nil the booking is open-ended. ActualEndTime is stamped on
// every terminal transition (cancel, release, never by the overstay sweep).
// The two are kept separate on purpose: the sweep compares ExpectedEndTime
// against the clock, billing reads ActualEndTime.
type Booking struct {
	ID            int64
	ParkingSlotID int64
	VehicleID     int64

	StartTime       time.Time
	ExpectedEndTime *time.Time
	ActualEndTime   *time.Time

	Status BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking is still active
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusActive
}

// IsTerminal returns true if the booking reached a terminal state
// Terminal bookings never transition further
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCancelled ||
		b.Status == BookingStatusCompleted ||
		b.Status == BookingStatusOverstay
}

// IsExpired returns true if the booking is active and its expected end
// has passed. Open-ended bookings (no expected end) never expire.
func (b *Booking) IsExpired(now time.Time) bool {
	if !b.IsActive() || b.ExpectedEndTime == nil {
		return false
	}
	return b.ExpectedEndTime.Before(now)
}

// BookingDetails is a booking with its related slot and vehicle resolved,
// so callers never issue a second round trip
type BookingDetails struct {
	Booking
	Slot    *ParkingSlot
	Vehicle *Vehicle

	// Owner is the vehicle owner's public profile
	// Populated only in admin views
	Owner *UserProfile
}
