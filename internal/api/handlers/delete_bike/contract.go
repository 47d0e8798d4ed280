package delete_bike

import "context"

// BikesService интерфейс сервиса велосипедов
type BikesService interface {
	Delete(ctx context.Context, id int64, ownerEmail string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
