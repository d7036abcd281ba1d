package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL при нарушении уникальности
const pgUniqueViolation = "23505"

var slotColumns = []string{
	"id",
	"number",
	"floor",
	"is_available",
	"vehicle_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с парковочными слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот
// Номер слота уникален, при конфликте возвращает ErrDuplicateNumber
func (r *Repository) Create(ctx context.Context, slot *domain.NewSlot) (*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("parking_slots").
		Columns("number", "floor", "is_available").
		Values(slot.Number, slot.Floor, slot.IsAvailable).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := domain.ParkingSlot{
		Number:      slot.Number,
		Floor:       slot.Floor,
		IsAvailable: slot.IsAvailable,
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateNumber
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	created.CreatedAt = createdAt.Time
	created.UpdatedAt = updatedAt.Time

	return &created, nil
}

// CreateBulk создает несколько слотов одним запросом
// Всё или ничего: конфликт по номеру любого слота отменяет весь батч
func (r *Repository) CreateBulk(ctx context.Context, slots []domain.NewSlot) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("parking_slots").
		Columns("number", "floor", "is_available")
	for _, s := range slots {
		builder = builder.Values(s.Number, s.Floor, s.IsAvailable)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBulk - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateNumber
		}
		return 0, fmt.Errorf("%w: CreateBulk - execute insert: %v", ErrExecQuery, err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBulk - get rows affected: %v", ErrExecQuery, err)
	}

	return count, nil
}

// GetByID получает слот по ID
// В транзакции блокирует строку (FOR UPDATE) - используется при создании бронирования
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("parking_slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSlot(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByNumber получает слот по уникальному номеру
func (r *Repository) GetByNumber(ctx context.Context, number string) (*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("parking_slots").
		Where(squirrel.Eq{"number": number}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByNumber - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSlot(executor.QueryRowContext(ctx, query, args...), "GetByNumber")
}

// List получает список слотов
// При onlyAvailable = true возвращает только свободные слоты
func (r *Repository) List(ctx context.Context, onlyAvailable bool) ([]*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("parking_slots").
		OrderBy("floor ASC, number ASC")

	if onlyAvailable {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_available": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// Claim атомарно занимает слот для автомобиля
// Условный UPDATE: успех только если слот сейчас свободен. Из двух
// конкурентных Claim на один слот выигрывает ровно один, проигравший
// получает ErrSlotNotAvailable
func (r *Repository) Claim(ctx context.Context, slotID, vehicleID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_slots").
		Set("is_available", false).
		Set("vehicle_id", vehicleID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID, "is_available": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Claim - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Claim - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Claim - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotAvailable
	}

	return nil
}

// Release освобождает слот
// Идемпотентен: освобождение уже свободного слота не является ошибкой,
// соответствие release реальному бронированию проверяют вызывающие слои
func (r *Repository) Release(ctx context.Context, slotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_slots").
		Set("is_available", true).
		Set("vehicle_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// scanSlot сканирует одну строку в модель слота
func (r *Repository) scanSlot(row *sql.Row, method string) (*domain.ParkingSlot, error) {
	var slot domain.ParkingSlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.Number,
		&slot.Floor,
		&slot.IsAvailable,
		&slot.VehicleID,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan slot: %v", ErrScanRow, method, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.ParkingSlot, error) {
	slots := make([]*domain.ParkingSlot, 0)

	for rows.Next() {
		var slot domain.ParkingSlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.Number,
			&slot.Floor,
			&slot.IsAvailable,
			&slot.VehicleID,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// isUniqueViolation проверяет, что ошибка - нарушение уникального индекса
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}
