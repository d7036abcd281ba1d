package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: parking slot not found")

	// ErrSlotNotAvailable возвращается, когда слот уже занят
	// Условный UPDATE не затронул ни одной строки - гонку выиграл другой запрос
	ErrSlotNotAvailable = errors.New("slot.repository: parking slot not available")

	// ErrDuplicateNumber возвращается при попытке создать слот с существующим номером
	ErrDuplicateNumber = errors.New("slot.repository: slot number already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
