package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/WM-BookingService/internal/domain"
	"github.com/m04kA/WM-BookingService/pkg/dbmetrics"
	"github.com/m04kA/WM-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/WM-BookingService/pkg/types"
)

// bookingColumns полный список колонок таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"subject_id",
	"subject_kind",
	"quantity",
	"vehicle_year",
	"vehicle_make",
	"vehicle_model",
	"branch_id",
	"branch_name",
	"scheduled_date",
	"scheduled_time",
	"customer_name",
	"customer_email",
	"customer_phone",
	"request_type",
	"request_source",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование или котировку
// Если в контексте передана активная транзакция, использует её -
// так отправка выполняет проверку доступности слота и вставку атомарно
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"subject_id",
			"subject_kind",
			"quantity",
			"vehicle_year",
			"vehicle_make",
			"vehicle_model",
			"branch_id",
			"branch_name",
			"scheduled_date",
			"scheduled_time",
			"customer_name",
			"customer_email",
			"customer_phone",
			"request_type",
			"request_source",
			"is_active",
		).
		Values(
			booking.SubjectID,
			booking.SubjectKind,
			booking.Quantity,
			booking.VehicleYear,
			booking.VehicleMake,
			booking.VehicleModel,
			booking.BranchID,
			booking.BranchName,
			booking.ScheduledDate,
			booking.ScheduledTime,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.RequestType,
			booking.RequestSource,
			booking.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByBranchWithFilter получает бронирования филиала с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, типу запроса и включению отменённых
//
// Примеры использования:
//
// 1. Все активные бронирования филиала:
//    filter := domain.BranchBookingsFilter{BranchID: 3}
//
// 2. Занятые слоты на конкретную дату:
//    date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
//    bookingType := domain.RequestTypeBooking
//    filter := domain.BranchBookingsFilter{BranchID: 3, StartDate: &date, EndDate: &date, RequestType: &bookingType}
//
// 3. Вся история, включая отменённые:
//    filter := domain.BranchBookingsFilter{BranchID: 3, IncludeInactive: true}
func (r *Repository) GetByBranchWithFilter(ctx context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"branch_id": filter.BranchID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"scheduled_date": *filter.EndDate})
	}

	// Фильтрация по типу запроса
	if filter.RequestType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"request_type": *filter.RequestType})
	}

	// По умолчанию отдаём только активные записи
	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	// Для конкретной даты сортируем по времени слота, иначе - сначала новые
	exactDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
	if exactDate {
		selectBuilder = selectBuilder.OrderBy("scheduled_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("scheduled_date DESC NULLS LAST, scheduled_time DESC")
	}

	// Внутри транзакции блокируем строки дня (FOR UPDATE) -
	// так отправка бронирования исключает гонку за один слот
	if dbmetrics.IsInTransaction(ctx) && exactDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Update применяет частичное обновление бронирования администратором
func (r *Repository) Update(ctx context.Context, id int64, patch domain.BookingPatch) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if patch.BranchID != nil {
		updateBuilder = updateBuilder.Set("branch_id", *patch.BranchID)
	}
	if patch.BranchName != nil {
		updateBuilder = updateBuilder.Set("branch_name", *patch.BranchName)
	}
	if patch.ScheduledDate != nil {
		updateBuilder = updateBuilder.Set("scheduled_date", *patch.ScheduledDate)
	}
	if patch.ScheduledTime != nil {
		updateBuilder = updateBuilder.Set("scheduled_time", *patch.ScheduledTime)
	}
	if patch.Quantity != nil {
		updateBuilder = updateBuilder.Set("quantity", *patch.Quantity)
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
		return ErrBookingNotFound
	}

	return nil
}

// SetActive переключает флаг is_active (мягкая отмена и реактивация)
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// CountByBranchID возвращает число бронирований, ссылающихся на филиал
// Используется сервисным слоем как охрана удаления филиала
func (r *Repository) CountByBranchID(ctx context.Context, branchID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"branch_id": branchID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByBranchID - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByBranchID - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в доменную модель
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var scheduledDate sql.NullTime
	var scheduledTime types.NullTimeString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.SubjectID,
		&booking.SubjectKind,
		&booking.Quantity,
		&booking.VehicleYear,
		&booking.VehicleMake,
		&booking.VehicleModel,
		&booking.BranchID,
		&booking.BranchName,
		&scheduledDate,
		&scheduledTime,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.RequestType,
		&booking.RequestSource,
		&booking.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if scheduledDate.Valid {
		d := scheduledDate.Time
		booking.ScheduledDate = &d
	}
	if scheduledTime.Valid {
		t := scheduledTime.TimeString
		booking.ScheduledTime = &t
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
