package upgrade_mechanic

import (
	"context"

	"github.com/veloservis/BikeShop-Service/internal/service/mechanics/models"
)

// MechanicsService интерфейс сервиса механиков
type MechanicsService interface {
	Upgrade(ctx context.Context, email string, skills []string) (*models.MechanicResponse, error)
	GetProfile(ctx context.Context, email string) (*models.MechanicResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
