package bike

import "errors"

var (
	// ErrBikeNotFound возвращается, когда велосипед не найден, удален
	// или принадлежит другому пользователю
	ErrBikeNotFound = errors.New("bike.repository: bike not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("bike.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("bike.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("bike.repository: failed to scan row")
)
