package reconcile_capacities

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...any)  {}
func (nopLogger) Warn(format string, v ...any)  {}
func (nopLogger) Error(format string, v ...any) {}

type nopMetrics struct {
	clamps int
}

func (m *nopMetrics) IncCapacityClamp() { m.clamps++ }

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSlotRepo struct {
	slots   map[int64]*domain.Slot
	failOn  int64
	updated map[int64]bool
}

func newFakeSlotRepo(slots ...*domain.Slot) *fakeSlotRepo {
	repo := &fakeSlotRepo{
		slots:   make(map[int64]*domain.Slot),
		updated: make(map[int64]bool),
	}
	for _, s := range slots {
		repo.slots[s.ID] = s
	}
	return repo
}

func (f *fakeSlotRepo) ListIDs(ctx context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(f.slots))
	for id := range f.slots {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeSlotRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error) {
	if id == f.failOn {
		return nil, errors.New("deadlock detected")
	}
	return f.slots[id], nil
}

func (f *fakeSlotRepo) UpdateCounters(ctx context.Context, id int64, committed, available int) error {
	f.slots[id].CommittedCount = committed
	f.slots[id].AvailableCapacity = available
	f.updated[id] = true
	return nil
}

type fakeBookingRepo struct {
	visitors map[int64]int
}

func (f *fakeBookingRepo) SumVisitorsBySlot(ctx context.Context, slotID int64) (int, error) {
	return f.visitors[slotID], nil
}

func slotWith(id int64, total, committed int) *domain.Slot {
	return &domain.Slot{
		ID:                id,
		TotalCapacity:     total,
		CommittedCount:    committed,
		AvailableCapacity: total - committed,
	}
}

func TestUseCase_Execute_HealsDrift(t *testing.T) {
	// Слот 1 разъехался (хранит 1, бронирований на 3), слот 2 консистентен
	slots := newFakeSlotRepo(slotWith(1, 10, 1), slotWith(2, 10, 5))
	bookings := &fakeBookingRepo{visitors: map[int64]int{1: 3, 2: 5}}
	metrics := &nopMetrics{}
	uc := NewUseCase(slots, bookings, fakeTxManager{}, metrics, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{SlotIDs: []int64{1, 2}})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.ScannedCount)
	assert.Equal(t, 0, resp.FailedCount)
	require.Len(t, resp.Corrections, 1)

	correction := resp.Corrections[0]
	assert.Equal(t, int64(1), correction.SlotID)
	assert.Equal(t, 1, correction.OldCommitted)
	assert.Equal(t, 3, correction.NewCommitted)
	assert.Equal(t, 9, correction.OldAvailable)
	assert.Equal(t, 7, correction.NewAvailable)

	// Консистентный слот не трогали
	assert.False(t, slots.updated[2])
	assert.True(t, slots.slots[1].CountersConsistent())
	assert.Equal(t, 0, metrics.clamps)
}

func TestUseCase_Execute_ClampsOvercommit(t *testing.T) {
	// Бронирований больше полной ёмкости: кэш чинится до total, сигналим метрикой
	slots := newFakeSlotRepo(slotWith(1, 4, 2))
	bookings := &fakeBookingRepo{visitors: map[int64]int{1: 7}}
	metrics := &nopMetrics{}
	uc := NewUseCase(slots, bookings, fakeTxManager{}, metrics, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{SlotIDs: []int64{1}})
	require.NoError(t, err)

	require.Len(t, resp.Corrections, 1)
	assert.Equal(t, 4, resp.Corrections[0].NewCommitted)
	assert.Equal(t, 0, resp.Corrections[0].NewAvailable)
	assert.Equal(t, 1, metrics.clamps)
}

func TestUseCase_Execute_SlotErrorDoesNotAbortBatch(t *testing.T) {
	slots := newFakeSlotRepo(slotWith(1, 10, 0), slotWith(2, 10, 0))
	slots.failOn = 1
	bookings := &fakeBookingRepo{visitors: map[int64]int{2: 4}}
	uc := NewUseCase(slots, bookings, fakeTxManager{}, &nopMetrics{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{SlotIDs: []int64{1, 2}})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.ScannedCount)
	assert.Equal(t, 1, resp.FailedCount)
	require.Len(t, resp.Corrections, 1)
	assert.Equal(t, int64(2), resp.Corrections[0].SlotID)
}

func TestUseCase_Execute_AllSlotsWhenEmptyRequest(t *testing.T) {
	slots := newFakeSlotRepo(slotWith(1, 5, 0), slotWith(2, 5, 0), slotWith(3, 5, 0))
	bookings := &fakeBookingRepo{visitors: map[int64]int{}}
	uc := NewUseCase(slots, bookings, fakeTxManager{}, &nopMetrics{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.ScannedCount)
	assert.Empty(t, resp.Corrections)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc := NewUseCase(newFakeSlotRepo(), &fakeBookingRepo{}, fakeTxManager{}, &nopMetrics{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{SlotIDs: []int64{0}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
