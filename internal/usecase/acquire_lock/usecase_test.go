package acquire_lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...any)  {}
func (nopLogger) Warn(format string, v ...any)  {}
func (nopLogger) Error(format string, v ...any) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time {
	return c.now
}

type fakeSlotRepo struct {
	slot *domain.Slot
	err  error
}

func (f *fakeSlotRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slot, nil
}

type fakeLockRepo struct {
	held    int
	created []*domain.ReservationLock
}

func (f *fakeLockRepo) Create(ctx context.Context, lock *domain.ReservationLock) error {
	f.created = append(f.created, lock)
	f.held += lock.Quantity
	return nil
}

func (f *fakeLockRepo) SumHeldBySlot(ctx context.Context, slotID int64, now time.Time, excludeID *uuid.UUID) (int, error) {
	return f.held, nil
}

var testNow = time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

func testSlot() *domain.Slot {
	return &domain.Slot{
		ID:                1,
		TotalCapacity:     5,
		AvailableCapacity: 5,
		CommittedCount:    0,
		IsOpen:            true,
		StartsAt:          testNow.Add(2 * time.Hour),
	}
}

func newTestUseCase(slot *domain.Slot, locks *fakeLockRepo) *UseCase {
	return NewUseCase(
		&fakeSlotRepo{slot: slot},
		locks,
		fakeTxManager{},
		fakeClock{now: testNow},
		Config{DefaultTTLSeconds: 120, MaxTTLSeconds: 900},
		nopLogger{},
	)
}

func TestUseCase_Execute(t *testing.T) {
	locks := &fakeLockRepo{}
	uc := newTestUseCase(testSlot(), locks)

	resp, err := uc.Execute(context.Background(), &Request{SlotID: 1, HolderID: "checkout-1", Quantity: 3})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.LockID)
	assert.Equal(t, int64(1), resp.SlotID)
	assert.Equal(t, 3, resp.Quantity)
	assert.Equal(t, testNow.Add(120*time.Second), resp.ExpiresAt)
	require.Len(t, locks.created, 1)
	assert.Equal(t, "checkout-1", locks.created[0].HolderID)
}

func TestUseCase_Execute_CustomTTL(t *testing.T) {
	uc := newTestUseCase(testSlot(), &fakeLockRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		SlotID: 1, HolderID: "checkout-1", Quantity: 1, TTLSeconds: ptr.Ptr(300),
	})
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(300*time.Second), resp.ExpiresAt)
}

func TestUseCase_Execute_HeldCapacityCompetes(t *testing.T) {
	// Слот на 5 мест, 3 уже удержаны: запрос на 3 отклоняется с остатком 2,
	// запрос на 2 проходит
	locks := &fakeLockRepo{}
	uc := newTestUseCase(testSlot(), locks)

	_, err := uc.Execute(context.Background(), &Request{SlotID: 1, HolderID: "a", Quantity: 3})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{SlotID: 1, HolderID: "b", Quantity: 3})
	var capacityErr *domain.CapacityExceededError
	require.ErrorAs(t, err, &capacityErr)
	assert.Equal(t, int64(1), capacityErr.SlotID)
	assert.Equal(t, 3, capacityErr.Requested)
	assert.Equal(t, 2, capacityErr.Available)

	_, err = uc.Execute(context.Background(), &Request{SlotID: 1, HolderID: "b", Quantity: 2})
	require.NoError(t, err)

	// Суммарно удержано ровно 5
	assert.Equal(t, 5, locks.held)
}

func TestUseCase_Execute_SlotClosed(t *testing.T) {
	slot := testSlot()
	slot.IsOpen = false
	uc := newTestUseCase(slot, &fakeLockRepo{})

	_, err := uc.Execute(context.Background(), &Request{SlotID: 1, HolderID: "a", Quantity: 1})
	assert.ErrorIs(t, err, ErrSlotClosed)
}

func TestUseCase_Execute_SlotInPast(t *testing.T) {
	slot := testSlot()
	slot.StartsAt = testNow.Add(-time.Minute)
	uc := newTestUseCase(slot, &fakeLockRepo{})

	_, err := uc.Execute(context.Background(), &Request{SlotID: 1, HolderID: "a", Quantity: 1})
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newTestUseCase(testSlot(), &fakeLockRepo{})

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero slot id", req: &Request{SlotID: 0, HolderID: "a", Quantity: 1}},
		{name: "empty holder", req: &Request{SlotID: 1, HolderID: "", Quantity: 1}},
		{name: "zero quantity", req: &Request{SlotID: 1, HolderID: "a", Quantity: 0}},
		{name: "ttl too small", req: &Request{SlotID: 1, HolderID: "a", Quantity: 1, TTLSeconds: ptr.Ptr(1)}},
		{name: "ttl above max", req: &Request{SlotID: 1, HolderID: "a", Quantity: 1, TTLSeconds: ptr.Ptr(3600)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_RepoErrorWrapped(t *testing.T) {
	uc := NewUseCase(
		&fakeSlotRepo{err: errors.New("connection refused")},
		&fakeLockRepo{},
		fakeTxManager{},
		fakeClock{now: testNow},
		Config{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{SlotID: 1, HolderID: "a", Quantity: 1})
	assert.ErrorIs(t, err, ErrInternal)
}
