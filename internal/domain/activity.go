package domain

import "time"

// ActivityStatus represents the status of a parking activity
type ActivityStatus string

const (
	ActivityStatusActive    ActivityStatus = "active"
	ActivityStatusCompleted ActivityStatus = "completed"
)

// ParkingActivity represents one entry-to-exit visit of a vehicle at a
// parking location, independent of slot-level booking
//
// Invariant: at most one activity with status active may reference a given
// vehicle at any time - a vehicle cannot be inside two locations at once
type ParkingActivity struct {
	ID           int64
	VehicleID    int64
	ParkingID    int64
	UserID       int64
	TicketNumber string

	EntryDateTime time.Time
	ExitDateTime  *time.Time

	// DurationHours is the stay length in fractional hours,
	// computed once on exit
	DurationHours *float64

	Status ActivityStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the vehicle is still inside
func (a *ParkingActivity) IsActive() bool {
	return a.Status == ActivityStatusActive
}

// IsCompleted returns true if the vehicle has exited
func (a *ParkingActivity) IsCompleted() bool {
	return a.Status == ActivityStatusCompleted
}

// ActivityDetails is an activity with its related vehicle, parking location
// and recording user resolved
type ActivityDetails struct {
	ParkingActivity
	Vehicle *Vehicle
	Parking *Parking
	User    *UserProfile
}

// EntryTicket is the printable projection handed to the driver on entry
type EntryTicket struct {
	TicketNumber  string
	PlateNumber   string
	VehicleType   VehicleType
	EntryDateTime time.Time
	ParkingName   string
	ParkingCode   string
	Location      string
	FeePerHour    float64
}

// ParkingSummary is the billing preview for an activity
//
// For a still-parked vehicle the duration is estimated against the current
// time and IsEstimate is true; for a completed activity the stored duration
// is returned as is
type ParkingSummary struct {
	TicketNumber  string
	PlateNumber   string
	VehicleType   VehicleType
	EntryDateTime time.Time
	ExitDateTime  time.Time
	DurationHours float64
	ParkingName   string
	ParkingCode   string
	FeePerHour    float64
	IsEstimate    bool
}
