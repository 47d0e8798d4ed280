package mailer

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailer client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от почтового сервиса
	ErrInvalidResponse = errors.New("mailer client: invalid response")
)
