package requests

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена или принадлежит
	// другому пользователю; чужая заявка намеренно неотличима от несуществующей
	ErrRequestNotFound = errors.New("requests.service: request not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("requests.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("requests.service: internal error")
)
