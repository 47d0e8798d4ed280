package get_free_slots

import (
	"context"
	"time"

	"github.com/veloservis/BikeShop-Service/internal/domain"
)

// MechanicRepository интерфейс репозитория механиков
type MechanicRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Mechanic, error)
}

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetAssignedDates(ctx context.Context, mechanicID int64, from time.Time) ([]time.Time, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
