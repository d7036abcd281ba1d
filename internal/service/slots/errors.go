package slots

import "errors"

var (
	// ErrDuplicateNumber возвращается, когда слот с таким номером уже существует
	ErrDuplicateNumber = errors.New("slot number already exists")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
