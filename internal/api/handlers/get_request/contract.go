package get_request

import (
	"context"

	"github.com/google/uuid"

	"github.com/veloservis/BikeShop-Service/internal/service/requests/models"
)

// RequestsService интерфейс сервиса заявок
type RequestsService interface {
	GetByID(ctx context.Context, publicID uuid.UUID, ownerEmail string) (*models.RequestResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
