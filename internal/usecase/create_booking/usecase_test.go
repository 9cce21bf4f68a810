package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	lockRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/reservationlock"
	"github.com/m04kA/SMC-SlotService/pkg/ptr"
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
}

func (f *fakeSlotRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error) {
	return f.slot, nil
}

func (f *fakeSlotRepo) UpdateCounters(ctx context.Context, id int64, committed, available int) error {
	f.slot.CommittedCount = committed
	f.slot.AvailableCapacity = available
	return nil
}

type fakeLockRepo struct {
	locks map[uuid.UUID]*domain.ReservationLock
}

func newFakeLockRepo() *fakeLockRepo {
	return &fakeLockRepo{locks: make(map[uuid.UUID]*domain.ReservationLock)}
}

func (f *fakeLockRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReservationLock, error) {
	lock, ok := f.locks[id]
	if !ok {
		return nil, lockRepo.ErrLockNotFound
	}
	return lock, nil
}

func (f *fakeLockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.locks[id]; !ok {
		return lockRepo.ErrLockNotFound
	}
	delete(f.locks, id)
	return nil
}

func (f *fakeLockRepo) SumHeldBySlot(ctx context.Context, slotID int64, now time.Time, excludeID *uuid.UUID) (int, error) {
	held := 0
	for _, lock := range f.locks {
		if lock.SlotID == slotID && !lock.IsExpired(now) {
			held += lock.Quantity
		}
	}
	return held, nil
}

type fakeBookingRepo struct {
	nextID  int64
	created []*domain.Booking
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	stored := *booking
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.created = append(f.created, &stored)
	return &stored, nil
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

func newTestUseCase(slots *fakeSlotRepo, locks *fakeLockRepo, bookings *fakeBookingRepo) (*UseCase, *nopMetrics) {
	metrics := &nopMetrics{}
	uc := NewUseCase(slots, locks, bookings, fakeTxManager{}, fakeClock{now: testNow}, metrics, nopLogger{})
	return uc, metrics
}

func validRequest() *Request {
	return &Request{SlotID: 1, TenantID: 10, UserID: 100, VisitorCount: 2}
}

func TestUseCase_Execute(t *testing.T) {
	slots := &fakeSlotRepo{slot: testSlot()}
	bookings := &fakeBookingRepo{}
	uc, metrics := newTestUseCase(slots, newFakeLockRepo(), bookings)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, 2, resp.VisitorCount)

	// Счетчики слота сдвинуты в той же операции
	assert.Equal(t, 2, slots.slot.CommittedCount)
	assert.Equal(t, 3, slots.slot.AvailableCapacity)
	assert.Equal(t, 0, metrics.clamps)
	require.Len(t, bookings.created, 1)
}

func TestUseCase_Execute_CapacityExceeded(t *testing.T) {
	slot := testSlot()
	slot.CommittedCount = 4
	slot.AvailableCapacity = 1
	uc, _ := newTestUseCase(&fakeSlotRepo{slot: slot}, newFakeLockRepo(), &fakeBookingRepo{})

	_, err := uc.Execute(context.Background(), validRequest())

	var capacityErr *domain.CapacityExceededError
	require.ErrorAs(t, err, &capacityErr)
	assert.Equal(t, 2, capacityErr.Requested)
	assert.Equal(t, 1, capacityErr.Available)
	// Счетчики не тронуты
	assert.Equal(t, 4, slot.CommittedCount)
}

func TestUseCase_Execute_ForeignLockCompetes(t *testing.T) {
	// Чужой активный лок на 4 места оставляет эффективно 1 место
	locks := newFakeLockRepo()
	foreign := &domain.ReservationLock{
		ID: uuid.New(), SlotID: 1, HolderID: "other", Quantity: 4,
		ExpiresAt: testNow.Add(time.Minute),
	}
	locks.locks[foreign.ID] = foreign

	uc, _ := newTestUseCase(&fakeSlotRepo{slot: testSlot()}, locks, &fakeBookingRepo{})

	_, err := uc.Execute(context.Background(), validRequest())

	var capacityErr *domain.CapacityExceededError
	require.ErrorAs(t, err, &capacityErr)
	assert.Equal(t, 1, capacityErr.Available)
}

func TestUseCase_Execute_ConsumesOwnLock(t *testing.T) {
	// Собственный лок удаляется до подсчета холдов: бронирование на 2 места
	// под локом на 2 места проходит даже при полностью захолженном слоте
	locks := newFakeLockRepo()
	own := &domain.ReservationLock{
		ID: uuid.New(), SlotID: 1, HolderID: "checkout-1", Quantity: 2,
		ExpiresAt: testNow.Add(time.Minute),
	}
	foreign := &domain.ReservationLock{
		ID: uuid.New(), SlotID: 1, HolderID: "other", Quantity: 3,
		ExpiresAt: testNow.Add(time.Minute),
	}
	locks.locks[own.ID] = own
	locks.locks[foreign.ID] = foreign

	slots := &fakeSlotRepo{slot: testSlot()}
	uc, _ := newTestUseCase(slots, locks, &fakeBookingRepo{})

	req := validRequest()
	req.LockID = &own.ID
	req.HolderID = ptr.Ptr("checkout-1")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Status)

	// Лок потреблен, ёмкость списана один раз
	_, stillThere := locks.locks[own.ID]
	assert.False(t, stillThere)
	assert.Equal(t, 2, slots.slot.CommittedCount)
}

func TestUseCase_Execute_LockValidation(t *testing.T) {
	locks := newFakeLockRepo()
	expired := &domain.ReservationLock{
		ID: uuid.New(), SlotID: 1, HolderID: "checkout-1", Quantity: 2,
		ExpiresAt: testNow.Add(-time.Second),
	}
	otherSlot := &domain.ReservationLock{
		ID: uuid.New(), SlotID: 2, HolderID: "checkout-1", Quantity: 2,
		ExpiresAt: testNow.Add(time.Minute),
	}
	locks.locks[expired.ID] = expired
	locks.locks[otherSlot.ID] = otherSlot

	uc, _ := newTestUseCase(&fakeSlotRepo{slot: testSlot()}, locks, &fakeBookingRepo{})

	missing := uuid.New()

	tests := []struct {
		name    string
		lockID  uuid.UUID
		holder  string
		wantErr error
	}{
		{name: "expired lock", lockID: expired.ID, holder: "checkout-1", wantErr: ErrLockExpired},
		{name: "lock for another slot", lockID: otherSlot.ID, holder: "checkout-1", wantErr: ErrLockSlotMismatch},
		{name: "foreign holder", lockID: expired.ID, holder: "someone-else", wantErr: ErrLockHolderMismatch},
		{name: "missing lock", lockID: missing, holder: "checkout-1", wantErr: ErrLockNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.LockID = &tt.lockID
			req.HolderID = &tt.holder

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUseCase_Execute_SlotClosed(t *testing.T) {
	slot := testSlot()
	slot.IsOpen = false
	uc, _ := newTestUseCase(&fakeSlotRepo{slot: slot}, newFakeLockRepo(), &fakeBookingRepo{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotClosed)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc, _ := newTestUseCase(&fakeSlotRepo{slot: testSlot()}, newFakeLockRepo(), &fakeBookingRepo{})

	tests := []struct {
		name string
		mut  func(req *Request)
	}{
		{name: "zero slot id", mut: func(r *Request) { r.SlotID = 0 }},
		{name: "zero tenant id", mut: func(r *Request) { r.TenantID = 0 }},
		{name: "zero user id", mut: func(r *Request) { r.UserID = 0 }},
		{name: "zero visitors", mut: func(r *Request) { r.VisitorCount = 0 }},
		{name: "cancelled status", mut: func(r *Request) { r.Status = domain.StatusCancelled }},
		{name: "unknown status", mut: func(r *Request) { r.Status = domain.BookingStatus("no_show") }},
		{name: "lock without holder", mut: func(r *Request) { r.LockID = ptr.Ptr(uuid.New()) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mut(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
