package parking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

var parkingColumns = []string{
	"id",
	"code",
	"name",
	"location",
	"total_spaces",
	"available_spaces",
	"fee_per_hour",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с парковочными локациями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория парковок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую парковку
// availableSpaces инициализируется равным totalSpaces
func (r *Repository) Create(ctx context.Context, parking *domain.Parking) (*domain.Parking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("parkings").
		Columns("code", "name", "location", "total_spaces", "available_spaces", "fee_per_hour").
		Values(
			parking.Code,
			parking.Name,
			parking.Location,
			parking.TotalSpaces,
			parking.TotalSpaces,
			parking.FeePerHour,
		).
		Suffix("RETURNING id, available_spaces, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&parking.ID,
		&parking.AvailableSpaces,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	parking.CreatedAt = createdAt.Time
	parking.UpdatedAt = updatedAt.Time

	return parking, nil
}

// GetByID получает парковку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Parking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(parkingColumns...).
		From("parkings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanParking(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByCode получает парковку по уникальному коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Parking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(parkingColumns...).
		From("parkings").
		Where(squirrel.Eq{"code": code}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanParking(executor.QueryRowContext(ctx, query, args...), "GetByCode")
}

// List получает список всех парковок
func (r *Repository) List(ctx context.Context) ([]*domain.Parking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(parkingColumns...).
		From("parkings").
		OrderBy("code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	parkings := make([]*domain.Parking, 0)
	for rows.Next() {
		var parking domain.Parking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&parking.ID,
			&parking.Code,
			&parking.Name,
			&parking.Location,
			&parking.TotalSpaces,
			&parking.AvailableSpaces,
			&parking.FeePerHour,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		parking.CreatedAt = createdAt.Time
		parking.UpdatedAt = updatedAt.Time

		parkings = append(parkings, &parking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return parkings, nil
}

// Update обновляет поля парковки (nil поля не трогаются)
func (r *Repository) Update(ctx context.Context, id int64, update *domain.ParkingUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("parkings").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if update.Code != nil {
		updateBuilder = updateBuilder.Set("code", *update.Code)
	}
	if update.Name != nil {
		updateBuilder = updateBuilder.Set("name", *update.Name)
	}
	if update.Location != nil {
		updateBuilder = updateBuilder.Set("location", *update.Location)
	}
	if update.TotalSpaces != nil {
		updateBuilder = updateBuilder.Set("total_spaces", *update.TotalSpaces)
	}
	if update.FeePerHour != nil {
		updateBuilder = updateBuilder.Set("fee_per_hour", *update.FeePerHour)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCode
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrParkingNotFound
	}

	return nil
}

// Delete удаляет парковку
// Проверка отсутствия активных активностей выполняется сервисным слоем
// в одной транзакции с удалением
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("parkings").
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
		return ErrParkingNotFound
	}

	return nil
}

// DecrementAvailable атомарно уменьшает счетчик свободных мест на единицу
// Условный UPDATE: успех только если available_spaces > 0. Из двух
// конкурентных запросов на последнее место выигрывает ровно один,
// проигравший получает ErrNoCapacity
func (r *Repository) DecrementAvailable(ctx context.Context, id int64) (*domain.Parking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parkings").
		Set("available_spaces", squirrel.Expr("available_spaces - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Gt{"available_spaces": 0}).
		Suffix("RETURNING " + joinColumns(parkingColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: DecrementAvailable - build update query: %v", ErrBuildQuery, err)
	}

	parking, err := r.scanParking(executor.QueryRowContext(ctx, query, args...), "DecrementAvailable")
	if errors.Is(err, ErrParkingNotFound) {
		// Строка не затронута: парковки нет, либо мест нет
		// Различаем по отдельному чтению
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrNoCapacity
	}
	return parking, err
}

// IncrementAvailable атомарно увеличивает счетчик свободных мест на единицу
// Инвариант available_spaces <= total_spaces защищен условием UPDATE
func (r *Repository) IncrementAvailable(ctx context.Context, id int64) (*domain.Parking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parkings").
		Set("available_spaces", squirrel.Expr("available_spaces + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("available_spaces < total_spaces")).
		Suffix("RETURNING " + joinColumns(parkingColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: IncrementAvailable - build update query: %v", ErrBuildQuery, err)
	}

	parking, err := r.scanParking(executor.QueryRowContext(ctx, query, args...), "IncrementAvailable")
	if errors.Is(err, ErrParkingNotFound) {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrCapacityExceeded
	}
	return parking, err
}

// scanParking сканирует одну строку в модель парковки
func (r *Repository) scanParking(row *sql.Row, method string) (*domain.Parking, error) {
	var parking domain.Parking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&parking.ID,
		&parking.Code,
		&parking.Name,
		&parking.Location,
		&parking.TotalSpaces,
		&parking.AvailableSpaces,
		&parking.FeePerHour,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrParkingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan parking: %v", ErrScanRow, method, err)
	}

	parking.CreatedAt = createdAt.Time
	parking.UpdatedAt = updatedAt.Time

	return &parking, nil
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}
