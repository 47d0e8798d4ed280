package add_bike

import (
	"context"

	"github.com/veloservis/BikeShop-Service/internal/service/bikes/models"
)

// BikesService интерфейс сервиса велосипедов
type BikesService interface {
	Create(ctx context.Context, req *models.CreateBikeRequest) (*models.BikeResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
