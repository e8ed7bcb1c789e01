package branch

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/WM-BookingService/internal/domain"
	"github.com/m04kA/WM-BookingService/pkg/dbmetrics"
	"github.com/m04kA/WM-BookingService/pkg/psqlbuilder"
)

var branchColumns = []string{
	"id",
	"name",
	"address",
	"phone",
	"working_hours",
	"lat",
	"lng",
	"subdomain",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с филиалами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория филиалов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый филиал
func (r *Repository) Create(ctx context.Context, branch *domain.Branch) (*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("branches").
		Columns(
			"name",
			"address",
			"phone",
			"working_hours",
			"lat",
			"lng",
			"subdomain",
		).
		Values(
			branch.Name,
			branch.Address,
			branch.Phone,
			branch.WorkingHours,
			branch.Lat,
			branch.Lng,
			branch.Subdomain,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&branch.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	branch.CreatedAt = createdAt.Time
	branch.UpdatedAt = updatedAt.Time

	return branch, nil
}

// GetByID получает филиал по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(branchColumns...).
		From("branches").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	branch, err := scanBranch(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBranchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan branch: %v", ErrScanRow, err)
	}

	return branch, nil
}

// List возвращает все филиалы, отсортированные по названию
func (r *Repository) List(ctx context.Context) ([]*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(branchColumns...).
		From("branches").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	branches := make([]*domain.Branch, 0)
	for rows.Next() {
		branch, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		branches = append(branches, branch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return branches, nil
}

// Update применяет частичное обновление филиала
func (r *Repository) Update(ctx context.Context, id int64, patch domain.BranchPatch) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("branches").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if patch.Name != nil {
		updateBuilder = updateBuilder.Set("name", *patch.Name)
	}
	if patch.Address != nil {
		updateBuilder = updateBuilder.Set("address", *patch.Address)
	}
	if patch.Phone != nil {
		updateBuilder = updateBuilder.Set("phone", *patch.Phone)
	}
	if patch.WorkingHours != nil {
		updateBuilder = updateBuilder.Set("working_hours", *patch.WorkingHours)
	}
	if patch.Lat != nil {
		updateBuilder = updateBuilder.Set("lat", *patch.Lat)
	}
	if patch.Lng != nil {
		updateBuilder = updateBuilder.Set("lng", *patch.Lng)
	}
	if patch.Subdomain != nil {
		updateBuilder = updateBuilder.Set("subdomain", *patch.Subdomain)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBranchNotFound
	}

	return nil
}

// Delete физически удаляет филиал
// Сервисный слой обязан предварительно убедиться, что на филиал
// не ссылается ни одно бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("branches").
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
		return ErrBranchNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBranch(row rowScanner) (*domain.Branch, error) {
	var branch domain.Branch
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&branch.ID,
		&branch.Name,
		&branch.Address,
		&branch.Phone,
		&branch.WorkingHours,
		&branch.Lat,
		&branch.Lng,
		&branch.Subdomain,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	branch.CreatedAt = createdAt.Time
	branch.UpdatedAt = updatedAt.Time

	return &branch, nil
}
