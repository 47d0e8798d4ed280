package get_free_slots

import "errors"

var (
	// ErrMechanicInvalid возвращается, когда механик не найден или неактивен
	ErrMechanicInvalid = errors.New("get_free_slots: mechanic not found or inactive")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_free_slots: internal error")
)
