package get_user_bikes

import (
	"context"

	"github.com/veloservis/BikeShop-Service/internal/service/bikes/models"
)

// BikesService интерфейс сервиса велосипедов
type BikesService interface {
	GetUserBikes(ctx context.Context, ownerEmail string) (*models.BikeListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}
