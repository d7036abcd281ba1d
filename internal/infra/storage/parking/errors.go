package parking

import "errors"

var (
	// ErrParkingNotFound возвращается, когда парковка не найдена
	ErrParkingNotFound = errors.New("parking.repository: parking location not found")

	// ErrDuplicateCode возвращается при попытке создать парковку с существующим кодом
	ErrDuplicateCode = errors.New("parking.repository: parking code already exists")

	// ErrNoCapacity возвращается, когда свободных мест нет
	// Условный декремент не затронул ни одной строки
	ErrNoCapacity = errors.New("parking.repository: no available parking spaces")

	// ErrCapacityExceeded возвращается, когда инкремент превысил бы totalSpaces
	// При корректных вызывающих не возникает, защита инварианта счетчика
	ErrCapacityExceeded = errors.New("parking.repository: available spaces cannot exceed total spaces")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("parking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("parking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("parking.repository: failed to scan row")
)
