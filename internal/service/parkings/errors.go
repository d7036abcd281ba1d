package parkings

import "errors"

var (
	// ErrParkingNotFound возвращается, когда парковка не найдена
	ErrParkingNotFound = errors.New("parking not found")

	// ErrDuplicateCode возвращается, когда парковка с таким кодом уже существует
	ErrDuplicateCode = errors.New("parking code already exists")

	// ErrHasActiveVehicles возвращается при попытке удалить парковку
	// с машинами внутри
	ErrHasActiveVehicles = errors.New("parking has active vehicles")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
