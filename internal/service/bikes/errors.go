package bikes

import "errors"

var (
	// ErrBikeNotFound возвращается, когда велосипед не найден или не принадлежит пользователю
	ErrBikeNotFound = errors.New("bikes.service: bike not found")

	// ErrMaxBikesReached возвращается при превышении лимита велосипедов на владельца
	ErrMaxBikesReached = errors.New("bikes.service: max bikes per owner reached")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bikes.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bikes.service: internal error")
)
