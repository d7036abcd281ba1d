package activities

import "errors"

var (
	// ErrActivityNotFound возвращается, когда активность не найдена
	ErrActivityNotFound = errors.New("parking activity not found")

	// ErrAlreadyExited возвращается при попытке повторно оформить выезд
	ErrAlreadyExited = errors.New("vehicle has already exited")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
