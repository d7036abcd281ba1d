package domain

// Ticket number format: fixed prefix plus 8 uppercase hex characters
const (
	TicketPrefix       = "PRK-"
	TicketRandomLength = 8
)

// Business validation constants
const (
	MinSlotNumberLength = 1
	MinParkingCodeLength = 3
	MaxBulkSlots         = 500
	MaxExtendHours       = 72
)

// BookingTerminalStatuses lists the statuses a booking never leaves
var BookingTerminalStatuses = []BookingStatus{
	BookingStatusCancelled,
	BookingStatusCompleted,
	BookingStatusOverstay,
}

// ValidBookingStatuses lists every booking status accepted from callers
var ValidBookingStatuses = []BookingStatus{
	BookingStatusActive,
	BookingStatusCancelled,
	BookingStatusCompleted,
	BookingStatusOverstay,
}
