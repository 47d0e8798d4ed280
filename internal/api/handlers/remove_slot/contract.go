package remove_slot

import (
	"context"
	"time"
)

// MechanicsService интерфейс сервиса механиков
type MechanicsService interface {
	RemoveSlot(ctx context.Context, email string, at time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
