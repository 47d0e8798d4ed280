package get_user_requests

import (
	"context"

	"github.com/veloservis/BikeShop-Service/internal/service/requests/models"
)

// RequestsService интерфейс сервиса заявок
type RequestsService interface {
	GetUserRequests(ctx context.Context, req *models.GetUserRequestsRequest) (*models.RequestListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
