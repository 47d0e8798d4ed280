package update_request_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/veloservis/BikeShop-Service/internal/service/requests/models"
)

// RequestsService интерфейс сервиса заявок
type RequestsService interface {
	UpdateStatus(ctx context.Context, publicID uuid.UUID, req *models.UpdateStatusRequest) (*models.RequestResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
