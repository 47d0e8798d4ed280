package delete_request

import (
	"context"

	"github.com/google/uuid"
)

// RequestsService интерфейс сервиса заявок
type RequestsService interface {
	Delete(ctx context.Context, publicID uuid.UUID, ownerEmail string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
