package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"b.id",
	"b.parking_slot_id",
	"b.vehicle_id",
	"b.start_time",
	"b.expected_end_time",
	"b.actual_end_time",
	"b.status",
	"b.created_at",
	"b.updated_at",
}

// detailColumns колонки бронирования вместе со связанными слотом и автомобилем
var detailColumns = append(append([]string{}, bookingColumns...),
	"s.id", "s.number", "s.floor", "s.is_available", "s.vehicle_id",
	"v.id", "v.plate_number", "v.type", "v.user_id",
)

// ownerColumns публичные поля владельца автомобиля для админских выборок
var ownerColumns = []string{
	"u.id", "u.first_name", "u.last_name", "u.email", "u.role",
}

// Repository репозиторий для работы с бронированиями слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Вызывается внутри транзакции создания бронирования вместе с Claim слота
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns("parking_slot_id", "vehicle_id", "start_time", "expected_end_time", "status").
		Values(
			booking.ParkingSlotID,
			booking.VehicleID,
			booking.StartTime,
			booking.ExpectedEndTime,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID без связанных сущностей
// В транзакции блокирует строку (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.ParkingSlotID,
		&booking.VehicleID,
		&booking.StartTime,
		&booking.ExpectedEndTime,
		&booking.ActualEndTime,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// GetDetailsByID получает бронирование вместе со слотом и автомобилем
func (r *Repository) GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(detailColumns...).
		From("bookings b").
		Join("parking_slots s ON s.id = b.parking_slot_id").
		Join("vehicles v ON v.id = b.vehicle_id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - build select query: %v", ErrBuildQuery, err)
	}

	details, err := r.scanDetails(executor.QueryRowContext(ctx, query, args...), false)
	if err != nil {
		return nil, fmt.Errorf("GetDetailsByID: %w", err)
	}
	return details, nil
}

// ListByVehicleOwner получает бронирования всех автомобилей пользователя,
// упорядоченные по времени начала (сначала новые)
func (r *Repository) ListByVehicleOwner(ctx context.Context, userID int64) ([]*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(detailColumns...).
		From("bookings b").
		Join("parking_slots s ON s.id = b.parking_slot_id").
		Join("vehicles v ON v.id = b.vehicle_id").
		Where(squirrel.Eq{"v.user_id": userID}).
		OrderBy("b.start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByVehicleOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByVehicleOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanDetailsRows(rows, false)
}

// ListAll получает все бронирования со слотом, автомобилем и профилем
// владельца - админская выборка, упорядочена по времени начала
func (r *Repository) ListAll(ctx context.Context) ([]*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := append(append([]string{}, detailColumns...), ownerColumns...)

	query, args, err := psqlbuilder.Select(columns...).
		From("bookings b").
		Join("parking_slots s ON s.id = b.parking_slot_id").
		Join("vehicles v ON v.id = b.vehicle_id").
		Join("users u ON u.id = v.user_id").
		OrderBy("b.start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanDetailsRows(rows, true)
}

// UpdateExpectedEnd сохраняет новое ожидаемое время окончания
// Переход статуса не выполняет: продление активности проверяет сервисный слой
func (r *Repository) UpdateExpectedEnd(ctx context.Context, id int64, expectedEnd time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("expected_end_time", expectedEnd).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateExpectedEnd - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateExpectedEnd - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateExpectedEnd - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Finish переводит активное бронирование в терминальный статус и ставит
// фактическое время окончания
// Условный UPDATE по status = active: повторная отмена или завершение
// уже терминального бронирования возвращает ErrBookingNotActive
func (r *Repository) Finish(ctx context.Context, id int64, status domain.BookingStatus, actualEnd time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("actual_end_time", actualEnd).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.BookingStatusActive}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Finish - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Finish - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Finish - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotActive
	}

	return nil
}

// ListExpiredIDs возвращает ID активных бронирований, у которых ожидаемое
// время окончания уже в прошлом - кандидаты на overstay
func (r *Repository) ListExpiredIDs(ctx context.Context, now time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("bookings").
		Where(squirrel.Eq{"status": domain.BookingStatusActive}).
		Where(squirrel.Lt{"expected_end_time": now}).
		OrderBy("expected_end_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListExpiredIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListExpiredIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// MarkOverstay переводит одно просроченное активное бронирование в overstay
// Условный UPDATE: строка должна быть всё ещё активна и просрочена на момент
// выполнения, повторный прогон ничего не меняет. Ожидаемое время окончания
// не трогаем, слот не освобождаем - overstay сигнал биллинга, не вакансии
func (r *Repository) MarkOverstay(ctx context.Context, id int64, now time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.BookingStatusOverstay).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.BookingStatusActive}).
		Where(squirrel.Lt{"expected_end_time": now}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: MarkOverstay - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkOverstay - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkOverstay - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanDetails сканирует бронирование со связанными сущностями
func (r *Repository) scanDetails(row rowScanner, withOwner bool) (*domain.BookingDetails, error) {
	var details domain.BookingDetails
	var slot domain.ParkingSlot
	var vehicle domain.Vehicle
	var createdAt, updatedAt sql.NullTime

	dest := []interface{}{
		&details.ID,
		&details.ParkingSlotID,
		&details.VehicleID,
		&details.StartTime,
		&details.ExpectedEndTime,
		&details.ActualEndTime,
		&details.Status,
		&createdAt,
		&updatedAt,
		&slot.ID,
		&slot.Number,
		&slot.Floor,
		&slot.IsAvailable,
		&slot.VehicleID,
		&vehicle.ID,
		&vehicle.PlateNumber,
		&vehicle.Type,
		&vehicle.UserID,
	}

	var owner domain.UserProfile
	if withOwner {
		dest = append(dest,
			&owner.ID,
			&owner.FirstName,
			&owner.LastName,
			&owner.Email,
			&owner.Role,
		)
	}

	err := row.Scan(dest...)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanDetails - scan row: %v", ErrScanRow, err)
	}

	details.CreatedAt = createdAt.Time
	details.UpdatedAt = updatedAt.Time
	details.Slot = &slot
	details.Vehicle = &vehicle
	if withOwner {
		details.Owner = &owner
	}

	return &details, nil
}

// scanDetailsRows сканирует результаты запроса в слайс бронирований
func (r *Repository) scanDetailsRows(rows *sql.Rows, withOwner bool) ([]*domain.BookingDetails, error) {
	bookings := make([]*domain.BookingDetails, 0)

	for rows.Next() {
		details, err := r.scanDetails(rows, withOwner)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, details)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDetailsRows - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
