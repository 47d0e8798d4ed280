package bike

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/veloservis/BikeShop-Service/internal/domain"
	"github.com/veloservis/BikeShop-Service/pkg/dbmetrics"
	"github.com/veloservis/BikeShop-Service/pkg/psqlbuilder"
)

// DBExecutor общий интерфейс исполнителя запросов
type DBExecutor = dbmetrics.DBExecutor

const bikeColumns = "id, owner_email, brand, model, serial_number, deleted, created_at, updated_at"

// Repository репозиторий велосипедов клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория велосипедов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует велосипед клиента
func (r *Repository) Create(ctx context.Context, b *domain.Bike) (*domain.Bike, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bikes").
		Columns("owner_email", "brand", "model", "serial_number").
		Values(b.OwnerEmail, b.Brand, b.Model, b.SerialNumber).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByIDForOwner получает живой (не удаленный) велосипед с проверкой владельца.
// Чужой или удаленный велосипед неотличим от несуществующего.
func (r *Repository) GetByIDForOwner(ctx context.Context, id int64, ownerEmail string) (*domain.Bike, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bikeColumns).
		From("bikes").
		Where(squirrel.Eq{"id": id, "owner_email": ownerEmail, "deleted": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDForOwner - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.Bike
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.OwnerEmail,
		&b.Brand,
		&b.Model,
		&b.SerialNumber,
		&b.Deleted,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBikeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDForOwner - scan bike: %v", ErrScanRow, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// GetByOwner получает живые велосипеды пользователя
func (r *Repository) GetByOwner(ctx context.Context, ownerEmail string) ([]*domain.Bike, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bikeColumns).
		From("bikes").
		Where(squirrel.Eq{"owner_email": ownerEmail, "deleted": false}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bikes := make([]*domain.Bike, 0)
	for rows.Next() {
		var b domain.Bike
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.OwnerEmail,
			&b.Brand,
			&b.Model,
			&b.SerialNumber,
			&b.Deleted,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByOwner - scan bike: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time
		bikes = append(bikes, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - rows error: %v", ErrScanRow, err)
	}

	return bikes, nil
}

// CountLiveByOwner считает живые велосипеды пользователя (для лимита регистраций)
func (r *Repository) CountLiveByOwner(ctx context.Context, ownerEmail string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bikes").
		Where(squirrel.Eq{"owner_email": ownerEmail, "deleted": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountLiveByOwner - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountLiveByOwner - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Delete мягко удаляет велосипед владельца
func (r *Repository) Delete(ctx context.Context, id int64, ownerEmail string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bikes").
		Set("deleted", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "owner_email": ownerEmail, "deleted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBikeNotFound
	}

	return nil
}
