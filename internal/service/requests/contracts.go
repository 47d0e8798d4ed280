package requests

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/veloservis/BikeShop-Service/internal/domain"
	"github.com/veloservis/BikeShop-Service/internal/integrations/mailer"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetByPublicIDForOwner(ctx context.Context, publicID uuid.UUID, ownerEmail string) (*domain.ServiceRequest, error)
	GetByOwner(ctx context.Context, filter domain.UserRequestsFilter) ([]*domain.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error
	AppendEvent(ctx context.Context, event *domain.RequestEvent) error
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс отправки уведомлений (fire-and-forget)
type Notifier interface {
	SendStatusChanged(ctx context.Context, n mailer.StatusChangedNotification) error
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
