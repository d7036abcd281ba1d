package record_entry

import "time"

// Request модель запроса на регистрацию въезда
type Request struct {
	VehicleID int64 // ID автомобиля
	ParkingID int64 // ID парковки
	UserID    int64 // ID пользователя, регистрирующего въезд
}

// Response модель ответа с созданной активностью
type Response struct {
	ID            int64
	VehicleID     int64
	ParkingID     int64
	UserID        int64
	TicketNumber  string
	EntryDateTime time.Time
	Status        string

	// Счетчик мест парковки после въезда
	AvailableSpaces int
	TotalSpaces     int

	CreatedAt time.Time
	UpdatedAt time.Time
}
