package domain

import "time"

// VehicleType represents the kind of a registered vehicle
type VehicleType string

const (
	VehicleTypeCar        VehicleType = "car"
	VehicleTypeMotorcycle VehicleType = "motorcycle"
	VehicleTypeTruck      VehicleType = "truck"
	VehicleTypeVan        VehicleType = "van"
)

// Vehicle represents a registered vehicle
// Vehicles are managed by an external service; this service only reads them
// for existence and ownership checks
type Vehicle struct {
	ID          int64
	PlateNumber string
	Type        VehicleType
	UserID      int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BelongsTo returns true if the vehicle is owned by the given user
func (v *Vehicle) BelongsTo(userID int64) bool {
	return v.UserID == userID
}
