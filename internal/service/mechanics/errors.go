package mechanics

import "errors"

var (
	// ErrNotMechanic возвращается, когда у пользователя нет профиля механика
	ErrNotMechanic = errors.New("mechanics.service: user is not a mechanic")

	// ErrAlreadyMechanic возвращается при повторной попытке стать механиком
	ErrAlreadyMechanic = errors.New("mechanics.service: user is already a mechanic")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("mechanics.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("mechanics.service: internal error")
)
