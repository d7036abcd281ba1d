package activity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

var activityColumns = []string{
	"a.id",
	"a.vehicle_id",
	"a.parking_id",
	"a.user_id",
	"a.ticket_number",
	"a.entry_date_time",
	"a.exit_date_time",
	"a.duration_hours",
	"a.status",
	"a.created_at",
	"a.updated_at",
}

// detailColumns колонки активности вместе с автомобилем, парковкой и
// профилем записавшего пользователя
var detailColumns = append(append([]string{}, activityColumns...),
	"v.id", "v.plate_number", "v.type", "v.user_id",
	"p.id", "p.code", "p.name", "p.location", "p.total_spaces", "p.available_spaces", "p.fee_per_hour",
	"u.id", "u.first_name", "u.last_name", "u.email", "u.role",
)

// Repository репозиторий для работы с парковочными активностями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория активностей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую активность (въезд автомобиля)
// Номер билета уникален, при коллизии возвращает ErrDuplicateTicket -
// вызывающий слой генерирует новый номер и повторяет
func (r *Repository) Create(ctx context.Context, activity *domain.ParkingActivity) (*domain.ParkingActivity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("parking_activities").
		Columns("vehicle_id", "parking_id", "user_id", "ticket_number", "entry_date_time", "status").
		Values(
			activity.VehicleID,
			activity.ParkingID,
			activity.UserID,
			activity.TicketNumber,
			activity.EntryDateTime,
			activity.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&activity.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateTicket
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	activity.CreatedAt = createdAt.Time
	activity.UpdatedAt = updatedAt.Time

	return activity, nil
}

// GetByID получает активность по ID без связанных сущностей
// В транзакции блокирует строку (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ParkingActivity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(activityColumns...).
		From("parking_activities a").
		Where(squirrel.Eq{"a.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var activity domain.ParkingActivity
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&activity.ID,
		&activity.VehicleID,
		&activity.ParkingID,
		&activity.UserID,
		&activity.TicketNumber,
		&activity.EntryDateTime,
		&activity.ExitDateTime,
		&activity.DurationHours,
		&activity.Status,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan activity: %v", ErrScanRow, err)
	}

	activity.CreatedAt = createdAt.Time
	activity.UpdatedAt = updatedAt.Time

	return &activity, nil
}

// GetDetailsByID получает активность со связанными сущностями
func (r *Repository) GetDetailsByID(ctx context.Context, id int64) (*domain.ActivityDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.detailsBuilder().
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - build select query: %v", ErrBuildQuery, err)
	}

	details, err := r.scanDetails(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("GetDetailsByID: %w", err)
	}
	return details, nil
}

// HasActiveByVehicle проверяет, есть ли у автомобиля активная активность
// Автомобиль не может находиться на двух парковках одновременно
func (r *Repository) HasActiveByVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("parking_activities").
		Where(squirrel.Eq{"vehicle_id": vehicleID, "status": domain.ActivityStatusActive}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveByVehicle - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveByVehicle - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

// HasActiveByParking проверяет, есть ли на парковке незавершенные активности
// Используется при удалении парковки
func (r *Repository) HasActiveByParking(ctx context.Context, parkingID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("parking_activities").
		Where(squirrel.Eq{"parking_id": parkingID}).
		Where("exit_date_time IS NULL").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveByParking - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveByParking - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

// ListActive получает все активные активности (машины внутри)
func (r *Repository) ListActive(ctx context.Context) ([]*domain.ActivityDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.detailsBuilder().
		Where(squirrel.Eq{"a.status": domain.ActivityStatusActive}).
		OrderBy("a.entry_date_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryDetails(ctx, executor, query, args, "ListActive")
}

// ListByEntryRange получает активности с въездом в указанном периоде
func (r *Repository) ListByEntryRange(ctx context.Context, start, end time.Time) ([]*domain.ActivityDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.detailsBuilder().
		Where(squirrel.GtOrEq{"a.entry_date_time": start}).
		Where(squirrel.LtOrEq{"a.entry_date_time": end}).
		OrderBy("a.entry_date_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEntryRange - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryDetails(ctx, executor, query, args, "ListByEntryRange")
}

// ListCompletedByExitRange получает завершенные активности с выездом
// в указанном периоде
func (r *Repository) ListCompletedByExitRange(ctx context.Context, start, end time.Time) ([]*domain.ActivityDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.detailsBuilder().
		Where(squirrel.Eq{"a.status": domain.ActivityStatusCompleted}).
		Where(squirrel.GtOrEq{"a.exit_date_time": start}).
		Where(squirrel.LtOrEq{"a.exit_date_time": end}).
		OrderBy("a.exit_date_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCompletedByExitRange - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryDetails(ctx, executor, query, args, "ListCompletedByExitRange")
}

// Complete завершает активную активность: фиксирует выезд и длительность
// Условный UPDATE по status = active: повторное завершение возвращает
// ErrActivityNotActive
func (r *Repository) Complete(ctx context.Context, id int64, exitTime time.Time, durationHours float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_activities").
		Set("status", domain.ActivityStatusCompleted).
		Set("exit_date_time", exitTime).
		Set("duration_hours", durationHours).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.ActivityStatusActive}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Complete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Complete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrActivityNotActive
	}

	return nil
}

// detailsBuilder общий SELECT активности со связанными сущностями
func (r *Repository) detailsBuilder() squirrel.SelectBuilder {
	return psqlbuilder.Select(detailColumns...).
		From("parking_activities a").
		Join("vehicles v ON v.id = a.vehicle_id").
		Join("parkings p ON p.id = a.parking_id").
		Join("users u ON u.id = a.user_id")
}

func (r *Repository) queryDetails(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string) ([]*domain.ActivityDetails, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	activities := make([]*domain.ActivityDetails, 0)
	for rows.Next() {
		details, err := r.scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
		activities = append(activities, details)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return activities, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanDetails сканирует активность со связанными сущностями
func (r *Repository) scanDetails(row rowScanner) (*domain.ActivityDetails, error) {
	var details domain.ActivityDetails
	var vehicle domain.Vehicle
	var parking domain.Parking
	var user domain.UserProfile
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&details.ID,
		&details.VehicleID,
		&details.ParkingID,
		&details.UserID,
		&details.TicketNumber,
		&details.EntryDateTime,
		&details.ExitDateTime,
		&details.DurationHours,
		&details.Status,
		&createdAt,
		&updatedAt,
		&vehicle.ID,
		&vehicle.PlateNumber,
		&vehicle.Type,
		&vehicle.UserID,
		&parking.ID,
		&parking.Code,
		&parking.Name,
		&parking.Location,
		&parking.TotalSpaces,
		&parking.AvailableSpaces,
		&parking.FeePerHour,
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Role,
	)
	if err == sql.ErrNoRows {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanDetails - scan row: %v", ErrScanRow, err)
	}

	details.CreatedAt = createdAt.Time
	details.UpdatedAt = updatedAt.Time
	details.Vehicle = &vehicle
	details.Parking = &parking
	details.User = &user

	return &details, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}
