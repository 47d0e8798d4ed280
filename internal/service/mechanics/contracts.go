package mechanics

import (
	"context"
	"time"

	"github.com/veloservis/BikeShop-Service/internal/domain"
)

// MechanicRepository интерфейс репозитория механиков
type MechanicRepository interface {
	Create(ctx context.Context, m *domain.Mechanic) (*domain.Mechanic, error)
	GetByUserEmail(ctx context.Context, email string) (*domain.Mechanic, error)
	AddSlot(ctx context.Context, mechanicID int64, at time.Time) error
	RemoveSlot(ctx context.Context, mechanicID int64, at time.Time) error
	UpdateSkills(ctx context.Context, id int64, skills []domain.ServiceType) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
