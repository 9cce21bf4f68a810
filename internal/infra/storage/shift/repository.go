package shift

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения смен (staffing definitions)
// Смены принадлежат админскому CRUD сервису; этот сервис их только читает
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория смен
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает смену по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"service_id",
		"name",
		"days_of_week",
		"start_time",
		"end_time",
		"unit_duration_minutes",
		"default_capacity",
		"timezone",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("shifts").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Shift
	var daysOfWeek int
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.TenantID,
		&s.ServiceID,
		&s.Name,
		&daysOfWeek,
		&s.StartTime,
		&s.EndTime,
		&s.UnitDurationMinutes,
		&s.DefaultCapacity,
		&s.Timezone,
		&s.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrShiftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan shift: %v", ErrScanRow, err)
	}

	s.DaysOfWeek = domain.DaySet(daysOfWeek)
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// ListStaff получает сотрудников смены с их переопределениями ёмкости/длительности
// Пустой список означает, что смена тайлится один раз без привязки к сотруднику
func (r *Repository) ListStaff(ctx context.Context, shiftID int64) ([]*domain.ShiftStaff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"shift_id",
		"staff_id",
		"capacity_override",
		"duration_override_minutes",
	).
		From("shift_staff").
		Where(squirrel.Eq{"shift_id": shiftID}).
		OrderBy("staff_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]*domain.ShiftStaff, 0)
	for rows.Next() {
		var st domain.ShiftStaff
		if err := rows.Scan(
			&st.ShiftID,
			&st.StaffID,
			&st.CapacityOverride,
			&st.DurationOverrideMinutes,
		); err != nil {
			return nil, fmt.Errorf("%w: ListStaff - scan row: %v", ErrScanRow, err)
		}
		staff = append(staff, &st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaff - rows error: %v", ErrScanRow, err)
	}

	return staff, nil
}
