package create_request

import (
	"context"

	createRequest "github.com/veloservis/BikeShop-Service/internal/usecase/create_request"
)

// CreateRequestUseCase интерфейс use case создания заявки
type CreateRequestUseCase interface {
	Execute(ctx context.Context, req *createRequest.Request) (*createRequest.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
