package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotService/pkg/psqlbuilder"
)

// slotColumns полный список колонок таблицы slots
var slotColumns = []string{
	"id",
	"tenant_id",
	"service_id",
	"shift_id",
	"staff_id",
	"slot_date",
	"start_time",
	"end_time",
	"starts_at",
	"ends_at",
	"total_capacity",
	"available_capacity",
	"committed_count",
	"is_open",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// BulkCreate вставляет пакет слотов одним запросом
// Вызывается генератором расписания внутри транзакции, покрывающей
// и удаление старых слотов диапазона (идемпотентность регенерации)
func (r *Repository) BulkCreate(ctx context.Context, slots []*domain.Slot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("slots").
		Columns(
			"tenant_id",
			"service_id",
			"shift_id",
			"staff_id",
			"slot_date",
			"start_time",
			"end_time",
			"starts_at",
			"ends_at",
			"total_capacity",
			"available_capacity",
			"committed_count",
			"is_open",
		)

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(
			s.TenantID,
			s.ServiceID,
			s.ShiftID,
			s.StaffID,
			s.SlotDate,
			s.StartTime,
			s.EndTime,
			s.StartsAt,
			s.EndsAt,
			s.TotalCapacity,
			s.AvailableCapacity,
			s.CommittedCount,
			s.IsOpen,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: BulkCreate - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: BulkCreate - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: BulkCreate - get rows affected: %v", ErrExecQuery, err)
	}

	return int(rowsAffected), nil
}

// DeleteByShiftAndDateRange удаляет все слоты смены с датой в диапазоне [from, to]
// Используется перед регенерацией, чтобы повторная генерация не дублировала слоты
func (r *Repository) DeleteByShiftAndDateRange(ctx context.Context, shiftID int64, from, to time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"shift_id": shiftID}).
		Where(squirrel.GtOrEq{"slot_date": from}).
		Where(squirrel.LtOrEq{"slot_date": to}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByShiftAndDateRange - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByShiftAndDateRange - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByShiftAndDateRange - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает слот по ID с эксклюзивной блокировкой строки (FOR UPDATE)
// Должен вызываться только внутри транзакции: блокировка сериализует
// конкурентные изменения ёмкости одного слота
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id})

	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// UpdateCounters записывает новые значения счетчиков ёмкости слота
// Вызывается только под блокировкой строки (GetByIDForUpdate) в той же транзакции
func (r *Repository) UpdateCounters(ctx context.Context, id int64, committed, available int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("committed_count", committed).
		Set("available_capacity", available).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateCounters - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCounters - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateCounters - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// ListByFilter получает слоты тенанта с фильтрацией по услуге, сотруднику и периоду
func (r *Repository) ListByFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"slot_date": *filter.DateTo})
	}
	if filter.OnlyOpen {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_open": true})
	}

	// Упорядочиваем по нормализованному моменту начала
	selectBuilder = selectBuilder.OrderBy("starts_at ASC, id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListIDs возвращает ID всех слотов (для полной реконсиляции)
func (r *Repository) ListIDs(ctx context.Context) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("slots").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var s domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.TenantID,
		&s.ServiceID,
		&s.ShiftID,
		&s.StaffID,
		&s.SlotDate,
		&s.StartTime,
		&s.EndTime,
		&s.StartsAt,
		&s.EndsAt,
		&s.TotalCapacity,
		&s.AvailableCapacity,
		&s.CommittedCount,
		&s.IsOpen,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

func scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
