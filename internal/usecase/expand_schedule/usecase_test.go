package expand_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	shiftRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/shift"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...any)  {}
func (nopLogger) Warn(format string, v ...any)  {}
func (nopLogger) Error(format string, v ...any) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeShiftRepo struct {
	shift *domain.Shift
	staff []*domain.ShiftStaff
	err   error
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id int64) (*domain.Shift, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.shift, nil
}

func (f *fakeShiftRepo) ListStaff(ctx context.Context, shiftID int64) ([]*domain.ShiftStaff, error) {
	return f.staff, nil
}

type fakeSlotRepo struct {
	purged   int64
	inserted []*domain.Slot
}

func (f *fakeSlotRepo) DeleteByShiftAndDateRange(ctx context.Context, shiftID int64, from, to time.Time) (int64, error) {
	return f.purged, nil
}

func (f *fakeSlotRepo) BulkCreate(ctx context.Context, slots []*domain.Slot) (int, error) {
	f.inserted = slots
	return len(slots), nil
}

func testShift(t *testing.T) *domain.Shift {
	t.Helper()
	return &domain.Shift{
		ID:                  1,
		TenantID:            10,
		ServiceID:           20,
		DaysOfWeek:          domain.NewDaySet(time.Monday, time.Wednesday, time.Friday),
		StartTime:           mustTime(t, "09:00"),
		EndTime:             mustTime(t, "11:00"),
		UnitDurationMinutes: 60,
		DefaultCapacity:     4,
		IsActive:            true,
	}
}

func TestUseCase_Execute(t *testing.T) {
	shifts := &fakeShiftRepo{shift: testShift(t)}
	slots := &fakeSlotRepo{purged: 3}
	uc := NewUseCase(shifts, slots, fakeTxManager{}, Config{MaxExpansionDays: 366}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ShiftID:   1,
		StartDate: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Пн, Ср, Пт по 2 слота
	assert.Equal(t, 6, resp.SlotsCreated)
	assert.Equal(t, int64(3), resp.SlotsPurged)
	assert.Len(t, slots.inserted, 6)
}

func TestUseCase_Execute_ShiftNotFound(t *testing.T) {
	shifts := &fakeShiftRepo{err: shiftRepo.ErrShiftNotFound}
	uc := NewUseCase(shifts, &fakeSlotRepo{}, fakeTxManager{}, Config{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ShiftID:   99,
		StartDate: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestUseCase_Execute_InactiveShift(t *testing.T) {
	shift := testShift(t)
	shift.IsActive = false
	uc := NewUseCase(&fakeShiftRepo{shift: shift}, &fakeSlotRepo{}, fakeTxManager{}, Config{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ShiftID:   1,
		StartDate: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrShiftInactive)
}

func TestUseCase_Execute_InvalidRange(t *testing.T) {
	uc := NewUseCase(&fakeShiftRepo{shift: testShift(t)}, &fakeSlotRepo{}, fakeTxManager{}, Config{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ShiftID:   1,
		StartDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestUseCase_Execute_RangeTooLarge(t *testing.T) {
	uc := NewUseCase(&fakeShiftRepo{shift: testShift(t)}, &fakeSlotRepo{}, fakeTxManager{}, Config{MaxExpansionDays: 30}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ShiftID:   1,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrRangeTooLarge)
}

func TestUseCase_Execute_Idempotent(t *testing.T) {
	// Повторная генерация того же диапазона сначала удаляет старые слоты,
	// поэтому дублей не бывает
	shifts := &fakeShiftRepo{shift: testShift(t)}
	slots := &fakeSlotRepo{}
	uc := NewUseCase(shifts, slots, fakeTxManager{}, Config{}, nopLogger{})

	req := &Request{
		ShiftID:   1,
		StartDate: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	slots.purged = int64(first.SlotsCreated)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.SlotsCreated, second.SlotsCreated)
	assert.Equal(t, int64(first.SlotsCreated), second.SlotsPurged)
}
