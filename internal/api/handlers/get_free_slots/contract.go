package get_free_slots

import (
	"context"
	"time"
)

// GetFreeSlotsUseCase интерфейс use case получения свободных слотов
type GetFreeSlotsUseCase interface {
	Execute(ctx context.Context, mechanicID int64) ([]time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
