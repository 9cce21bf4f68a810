package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	slotRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SlotService/internal/service/slots/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time {
	return c.now
}

type fakeSlotRepo struct {
	slots []*domain.Slot
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	for _, s := range f.slots {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (f *fakeSlotRepo) ListByFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	result := make([]*domain.Slot, 0)
	for _, s := range f.slots {
		if s.TenantID == filter.TenantID {
			result = append(result, s)
		}
	}
	return result, nil
}

type fakeLockRepo struct {
	held map[int64]int
}

func (f *fakeLockRepo) SumHeldBySlots(ctx context.Context, slotIDs []int64, now time.Time) (map[int64]int, error) {
	return f.held, nil
}

var testNow = time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

func testSlot(id, tenantID int64, total, committed int) *domain.Slot {
	return &domain.Slot{
		ID:                id,
		TenantID:          tenantID,
		TotalCapacity:     total,
		CommittedCount:    committed,
		AvailableCapacity: total - committed,
		IsOpen:            true,
		SlotDate:          testNow,
	}
}

func TestService_List_EffectiveAvailability(t *testing.T) {
	slots := &fakeSlotRepo{slots: []*domain.Slot{
		testSlot(1, 10, 5, 2), // 3 доступно, 2 захолжено -> эффективно 1
		testSlot(2, 10, 5, 0), // без локов -> эффективно 5
		testSlot(3, 99, 5, 0), // другой тенант
	}}
	locks := &fakeLockRepo{held: map[int64]int{1: 2}}
	svc := NewService(slots, locks, fakeClock{now: testNow}, nopLogger{})

	resp, err := svc.List(context.Background(), &models.ListSlotsRequest{TenantID: 10})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)

	assert.Equal(t, 3, resp.Slots[0].AvailableCapacity)
	assert.Equal(t, 2, resp.Slots[0].HeldCount)
	assert.Equal(t, 1, resp.Slots[0].EffectiveAvailable)

	assert.Equal(t, 0, resp.Slots[1].HeldCount)
	assert.Equal(t, 5, resp.Slots[1].EffectiveAvailable)
}

func TestService_List_Validation(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, &fakeLockRepo{}, fakeClock{now: testNow}, nopLogger{})

	_, err := svc.List(context.Background(), &models.ListSlotsRequest{TenantID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	from := testNow
	to := testNow.Add(-24 * time.Hour)
	_, err = svc.List(context.Background(), &models.ListSlotsRequest{TenantID: 1, DateFrom: &from, DateTo: &to})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetByID(t *testing.T) {
	slots := &fakeSlotRepo{slots: []*domain.Slot{testSlot(1, 10, 4, 1)}}
	locks := &fakeLockRepo{held: map[int64]int{1: 3}}
	svc := NewService(slots, locks, fakeClock{now: testNow}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.EffectiveAvailable)

	_, err = svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}
