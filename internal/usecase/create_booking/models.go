package create_booking

import "time"

// Request модель запроса на создание бронирования
// Идентификатор пользователя приходит уже проверенным из шлюза
type Request struct {
	UserID        int64     // ID пользователя
	ParkingSlotID int64     // ID слота
	VehicleID     int64     // ID автомобиля
	StartTime     time.Time // Время начала бронирования (уже распарсено)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	ParkingSlotID int64
	VehicleID     int64
	StartTime     time.Time
	Status        string

	// Данные слота на момент бронирования
	SlotNumber string
	SlotFloor  int

	CreatedAt time.Time
	UpdatedAt time.Time
}
