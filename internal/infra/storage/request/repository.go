package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/veloservis/BikeShop-Service/internal/domain"
	"github.com/veloservis/BikeShop-Service/pkg/dbmetrics"
	"github.com/veloservis/BikeShop-Service/pkg/psqlbuilder"
)

const requestColumns = "id, public_id, owner_email, mechanic_id, service_types, bike_id, " +
	"deferred_bike, status, preferred_date, first_available, assigned_date, price_estimate, " +
	"created_at, updated_at"

// Repository репозиторий заявок на обслуживание и их журнала событий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заявку вместе с начальными событиями журнала.
// Занятость слота механика защищена уникальным индексом (mechanic_id, assigned_date):
// при коллизии возвращается ErrAssignedDateConflict, ничего не записывается.
//
// Ожидается вызов внутри транзакции (см. txmanager.DoSerializable), чтобы вставка
// заявки и журнала были атомарны.
func (r *Repository) Create(ctx context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_requests").
		Columns(
			"public_id",
			"owner_email",
			"mechanic_id",
			"service_types",
			"bike_id",
			"deferred_bike",
			"status",
			"preferred_date",
			"first_available",
			"assigned_date",
			"price_estimate",
		).
		Values(
			req.PublicID,
			req.OwnerEmail,
			req.MechanicID,
			pq.Array(serviceTypesToStrings(req.ServiceTypes)),
			req.BikeID,
			req.DeferredBike,
			req.Status,
			req.PreferredDate,
			req.FirstAvailable,
			req.AssignedDate,
			req.PriceEstimate,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAssignedDateConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	// Записываем начальные события журнала (первым всегда идет created)
	for i := range req.Events {
		req.Events[i].RequestID = req.ID
		if err := r.AppendEvent(ctx, &req.Events[i]); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// GetByPublicIDForOwner получает заявку по внешнему идентификатору с проверкой владельца.
// Заявка другого пользователя неотличима от несуществующей: в обоих случаях
// возвращается ErrRequestNotFound.
func (r *Repository) GetByPublicIDForOwner(ctx context.Context, publicID uuid.UUID, ownerEmail string) (*domain.ServiceRequest, error) {
	return r.getOne(ctx, squirrel.Eq{"public_id": publicID, "owner_email": ownerEmail})
}

// GetByOwner получает заявки пользователя, опционально фильтруя по статусу.
// Журнал событий в списках не загружается.
func (r *Repository) GetByOwner(ctx context.Context, filter domain.UserRequestsFilter) ([]*domain.ServiceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns).
		From("service_requests").
		Where(squirrel.Eq{"owner_email": filter.OwnerEmail}).
		OrderBy("created_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// GetAssignedDates возвращает занятые моменты механика: назначенные даты всех
// неотмененных заявок начиная с from, по возрастанию.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы конкурирующее
// создание заявки не прочитало устаревший набор занятых слотов.
func (r *Repository) GetAssignedDates(ctx context.Context, mechanicID int64, from time.Time) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("assigned_date").
		From("service_requests").
		Where(squirrel.Eq{"mechanic_id": mechanicID}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.NotEq{"assigned_date": nil}).
		Where(squirrel.GtOrEq{"assigned_date": from}).
		OrderBy("assigned_date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAssignedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAssignedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var at time.Time
		if err := rows.Scan(&at); err != nil {
			return nil, fmt.Errorf("%w: GetAssignedDates - scan date: %v", ErrScanRow, err)
		}
		dates = append(dates, at.UTC())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAssignedDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// UpdateStatus обновляет статус заявки по внутреннему ID
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_requests").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// AppendEvent добавляет запись в журнал заявки.
// Журнал append-only: записи никогда не изменяются и не удаляются.
func (r *Repository) AppendEvent(ctx context.Context, event *domain.RequestEvent) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("request_events").
		Columns("request_id", "at", "type", "from_status", "to_status", "note", "by_email").
		Values(event.RequestID, event.At, event.Type, event.From, event.To, event.Note, event.By).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AppendEvent - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&event.ID); err != nil {
		return fmt.Errorf("%w: AppendEvent - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete физически удаляет заявку вместе с журналом (каскад в схеме).
// Доступно только владельцу через сервисный слой.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("service_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.ServiceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns).
		From("service_requests").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	req, err := scanRequest(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan request: %v", ErrScanRow, err)
	}

	events, err := r.getEvents(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	req.Events = events

	return req, nil
}

// getEvents загружает журнал заявки в порядке добавления
func (r *Repository) getEvents(ctx context.Context, requestID int64) ([]domain.RequestEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "request_id", "at", "type", "from_status", "to_status", "note", "by_email").
		From("request_events").
		Where(squirrel.Eq{"request_id": requestID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getEvents - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getEvents - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]domain.RequestEvent, 0)
	for rows.Next() {
		var event domain.RequestEvent
		var from sql.NullString
		var note sql.NullString

		err := rows.Scan(&event.ID, &event.RequestID, &event.At, &event.Type, &from, &event.To, &note, &event.By)
		if err != nil {
			return nil, fmt.Errorf("%w: getEvents - scan event: %v", ErrScanRow, err)
		}

		if from.Valid {
			status := domain.RequestStatus(from.String)
			event.From = &status
		}
		if note.Valid {
			event.Note = &note.String
		}

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getEvents - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}

func scanRequests(rows *sql.Rows) ([]*domain.ServiceRequest, error) {
	requests := make([]*domain.ServiceRequest, 0)

	for rows.Next() {
		req, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRequests - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRequests - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

func scanRequest(scan func(dest ...interface{}) error) (*domain.ServiceRequest, error) {
	var req domain.ServiceRequest
	var serviceTypes []string
	var preferredDate, assignedDate sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&req.ID,
		&req.PublicID,
		&req.OwnerEmail,
		&req.MechanicID,
		pq.Array(&serviceTypes),
		&req.BikeID,
		&req.DeferredBike,
		&req.Status,
		&preferredDate,
		&req.FirstAvailable,
		&assignedDate,
		&req.PriceEstimate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.ServiceTypes = stringsToServiceTypes(serviceTypes)
	if preferredDate.Valid {
		at := preferredDate.Time.UTC()
		req.PreferredDate = &at
	}
	if assignedDate.Valid {
		at := assignedDate.Time.UTC()
		req.AssignedDate = &at
	}
	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}

func serviceTypesToStrings(types []domain.ServiceType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func stringsToServiceTypes(values []string) []domain.ServiceType {
	out := make([]domain.ServiceType, len(values))
	for i, v := range values {
		out[i] = domain.ServiceType(v)
	}
	return out
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
