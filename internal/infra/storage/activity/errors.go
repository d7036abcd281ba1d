package activity

import "errors"

var (
	// ErrActivityNotFound возвращается, когда активность не найдена
	ErrActivityNotFound = errors.New("activity.repository: parking activity not found")

	// ErrActivityNotActive возвращается при попытке завершить активность,
	// которая уже завершена
	ErrActivityNotActive = errors.New("activity.repository: parking activity is not active")

	// ErrDuplicateTicket возвращается при коллизии номера билета
	// Вызывающий слой перегенерирует номер и повторяет вставку
	ErrDuplicateTicket = errors.New("activity.repository: ticket number already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("activity.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("activity.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("activity.repository: failed to scan row")
)
