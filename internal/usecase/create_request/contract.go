package create_request

import (
	"context"
	"time"

	"github.com/veloservis/BikeShop-Service/internal/domain"
	"github.com/veloservis/BikeShop-Service/internal/integrations/mailer"
)

// MechanicRepository интерфейс репозитория механиков
type MechanicRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Mechanic, error)
}

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	Create(ctx context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error)
	GetAssignedDates(ctx context.Context, mechanicID int64, from time.Time) ([]time.Time, error)
}

// BikeRepository интерфейс репозитория велосипедов
type BikeRepository interface {
	GetByIDForOwner(ctx context.Context, id int64, ownerEmail string) (*domain.Bike, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс отправки уведомлений (fire-and-forget)
type Notifier interface {
	SendRequestCreated(ctx context.Context, n mailer.RequestCreatedNotification) error
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
