package bikes

import (
	"context"

	"github.com/veloservis/BikeShop-Service/internal/domain"
)

// BikeRepository интерфейс репозитория велосипедов
type BikeRepository interface {
	Create(ctx context.Context, b *domain.Bike) (*domain.Bike, error)
	GetByOwner(ctx context.Context, ownerEmail string) ([]*domain.Bike, error)
	CountLiveByOwner(ctx context.Context, ownerEmail string) (int, error)
	Delete(ctx context.Context, id int64, ownerEmail string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
