package record_entry

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("record_entry: vehicle not found")

	// ErrParkingNotFound возвращается, когда парковка не найдена
	ErrParkingNotFound = errors.New("record_entry: parking location not found")

	// ErrNoCapacity возвращается, когда свободных мест нет
	// Проигрыш гонки за последнее место - ожидаемый исход
	ErrNoCapacity = errors.New("record_entry: no available parking spaces")

	// ErrVehicleAlreadyParked возвращается, когда у автомобиля уже есть
	// активная активность на любой парковке
	ErrVehicleAlreadyParked = errors.New("record_entry: vehicle is already parked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("record_entry: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("record_entry: internal error")
)
