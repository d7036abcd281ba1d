package extend_booking

// ExtendBookingRequest HTTP request model
type ExtendBookingRequest struct {
	AdditionalHours int `json:"additionalHours"`
}
