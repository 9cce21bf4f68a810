package reservationlock

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с резервационными холдами
// Холд — кооперативная запись: читатели сами фильтруют по expires_at,
// поэтому просроченный холд перестает учитываться ещё до удаления свипом
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория холдов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет новый холд
// Вызывается внутри транзакции Acquire под блокировкой строки слота
func (r *Repository) Create(ctx context.Context, lock *domain.ReservationLock) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservation_locks").
		Columns(
			"id",
			"slot_id",
			"holder_id",
			"quantity",
			"expires_at",
		).
		Values(
			lock.ID,
			lock.SlotID,
			lock.HolderID,
			lock.Quantity,
			lock.ExpiresAt,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	lock.CreatedAt = createdAt.Time

	return nil
}

// GetByID получает холд по ID (включая просроченные - решение о валидности
// принимает вызывающая сторона по единому тесту IsExpired)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReservationLock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"slot_id",
		"holder_id",
		"quantity",
		"expires_at",
		"created_at",
	).
		From("reservation_locks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var lock domain.ReservationLock
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&lock.ID,
		&lock.SlotID,
		&lock.HolderID,
		&lock.Quantity,
		&lock.ExpiresAt,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrLockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan lock: %v", ErrScanRow, err)
	}

	lock.CreatedAt = createdAt.Time

	return &lock, nil
}

// SumHeldBySlot возвращает суммарное количество мест, удерживаемых
// непросроченными холдами слота
// excludeID позволяет исключить собственный холд вызывающего (при конвертации
// холда в бронирование его количество не конкурирует с запросом)
func (r *Repository) SumHeldBySlot(ctx context.Context, slotID int64, now time.Time, excludeID *uuid.UUID) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COALESCE(SUM(quantity), 0)").
		From("reservation_locks").
		Where(squirrel.Eq{"slot_id": slotID}).
		Where(squirrel.Gt{"expires_at": now})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SumHeldBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var held int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&held); err != nil {
		return 0, fmt.Errorf("%w: SumHeldBySlot - scan sum: %v", ErrScanRow, err)
	}

	return held, nil
}

// SumHeldBySlots возвращает удерживаемое количество мест по каждому из слотов
// одним запросом (для листинга доступности без per-slot round trip-ов)
// Слоты без непросроченных холдов в результат не попадают
func (r *Repository) SumHeldBySlots(ctx context.Context, slotIDs []int64, now time.Time) (map[int64]int, error) {
	held := make(map[int64]int, len(slotIDs))
	if len(slotIDs) == 0 {
		return held, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_id", "COALESCE(SUM(quantity), 0)").
		From("reservation_locks").
		Where(squirrel.Eq{"slot_id": slotIDs}).
		Where(squirrel.Gt{"expires_at": now}).
		GroupBy("slot_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SumHeldBySlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SumHeldBySlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var slotID int64
		var quantity int
		if err := rows.Scan(&slotID, &quantity); err != nil {
			return nil, fmt.Errorf("%w: SumHeldBySlots - scan row: %v", ErrScanRow, err)
		}
		held[slotID] = quantity
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: SumHeldBySlots - rows error: %v", ErrScanRow, err)
	}

	return held, nil
}

// Delete удаляет холд по ID
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservation_locks").
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
		return ErrLockNotFound
	}

	return nil
}

// DeleteExpired удаляет все холды с истекшим сроком жизни и возвращает
// количество удаленных строк. Идемпотентна и безопасна при конкурентном
// выполнении с Acquire: обе стороны используют один тест просроченности
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservation_locks").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}
