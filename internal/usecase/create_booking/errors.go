package create_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_booking: parking slot not found")

	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("create_booking: vehicle not found")

	// ErrVehicleNotOwned возвращается, когда автомобиль не принадлежит
	// запрашивающему пользователю
	ErrVehicleNotOwned = errors.New("create_booking: vehicle does not belong to the user")

	// ErrSlotNotAvailable возвращается, когда слот занят
	// Проигрыш гонки за слот - ожидаемый исход при конкурентном бронировании
	ErrSlotNotAvailable = errors.New("create_booking: parking slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
