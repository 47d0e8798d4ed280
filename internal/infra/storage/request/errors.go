package request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена (или принадлежит другому пользователю)
	ErrRequestNotFound = errors.New("request.repository: request not found")

	// ErrAssignedDateConflict возвращается, когда слот механика уже занят другой заявкой.
	// Соответствует нарушению уникального индекса (mechanic_id, assigned_date).
	ErrAssignedDateConflict = errors.New("request.repository: assigned date already taken for mechanic")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("request.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("request.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("request.repository: failed to scan row")
)
