package mechanic

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/veloservis/BikeShop-Service/internal/domain"
	"github.com/veloservis/BikeShop-Service/pkg/dbmetrics"
	"github.com/veloservis/BikeShop-Service/pkg/psqlbuilder"
)

// Repository репозиторий профилей механиков и их слотов доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория механиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает профиль механика
// Профиль уникален по email пользователя: повторное создание возвращает ErrMechanicExists
func (r *Repository) Create(ctx context.Context, m *domain.Mechanic) (*domain.Mechanic, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("mechanics").
		Columns("user_email", "skills", "active").
		Values(m.UserEmail, pq.Array(serviceTypesToStrings(m.Skills)), m.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrMechanicExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time
	m.AvailableSlots = make([]time.Time, 0)

	return m, nil
}

// GetByID получает механика по ID вместе с его заявленными слотами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Mechanic, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUserEmail получает механика по email связанного пользователя
func (r *Repository) GetByUserEmail(ctx context.Context, email string) (*domain.Mechanic, error) {
	return r.getOne(ctx, squirrel.Eq{"user_email": email})
}

// AddSlot добавляет заявленный слот механика
// Операция идемпотентна: повторное добавление того же момента ничего не меняет
func (r *Repository) AddSlot(ctx context.Context, mechanicID int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("mechanic_slots").
		Columns("mechanic_id", "slot_at").
		Values(mechanicID, at).
		Suffix("ON CONFLICT (mechanic_id, slot_at) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddSlot - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return ErrMechanicNotFound
		}
		return fmt.Errorf("%w: AddSlot - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// RemoveSlot удаляет заявленный слот по точному совпадению момента
// Удаление несуществующего слота ошибкой не считается
func (r *Repository) RemoveSlot(ctx context.Context, mechanicID int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("mechanic_slots").
		Where(squirrel.Eq{"mechanic_id": mechanicID, "slot_at": at}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveSlot - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RemoveSlot - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// UpdateSkills заменяет набор навыков механика
func (r *Repository) UpdateSkills(ctx context.Context, id int64, skills []domain.ServiceType) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("mechanics").
		Set("skills", pq.Array(serviceTypesToStrings(skills))).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSkills - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSkills - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSkills - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrMechanicNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Mechanic, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_email",
		"skills",
		"active",
		"created_at",
		"updated_at",
	).
		From("mechanics").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.Mechanic
	var skills []string
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&m.UserEmail,
		pq.Array(&skills),
		&m.Active,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrMechanicNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan mechanic: %v", ErrScanRow, err)
	}

	m.Skills = stringsToServiceTypes(skills)
	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	slots, err := r.getSlots(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.AvailableSlots = slots

	return &m, nil
}

// getSlots загружает заявленные слоты механика, отсортированные по возрастанию
func (r *Repository) getSlots(ctx context.Context, mechanicID int64) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_at").
		From("mechanic_slots").
		Where(squirrel.Eq{"mechanic_id": mechanicID}).
		OrderBy("slot_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]time.Time, 0)
	for rows.Next() {
		var at time.Time
		if err := rows.Scan(&at); err != nil {
			return nil, fmt.Errorf("%w: getSlots - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, at.UTC())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
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

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
