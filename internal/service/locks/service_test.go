package locks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	lockRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/reservationlock"
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

type fakeLockRepo struct {
	locks map[uuid.UUID]*domain.ReservationLock
}

func newFakeLockRepo(locks ...*domain.ReservationLock) *fakeLockRepo {
	repo := &fakeLockRepo{locks: make(map[uuid.UUID]*domain.ReservationLock)}
	for _, l := range locks {
		repo.locks[l.ID] = l
	}
	return repo
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

func (f *fakeLockRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var removed int64
	for id, lock := range f.locks {
		if lock.IsExpired(now) {
			delete(f.locks, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeLockRepo) SumHeldBySlots(ctx context.Context, slotIDs []int64, now time.Time) (map[int64]int, error) {
	held := make(map[int64]int)
	wanted := make(map[int64]bool, len(slotIDs))
	for _, id := range slotIDs {
		wanted[id] = true
	}
	for _, lock := range f.locks {
		if wanted[lock.SlotID] && !lock.IsExpired(now) {
			held[lock.SlotID] += lock.Quantity
		}
	}
	return held, nil
}

var testNow = time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

func activeLock(slotID int64, holder string, quantity int) *domain.ReservationLock {
	return &domain.ReservationLock{
		ID: uuid.New(), SlotID: slotID, HolderID: holder, Quantity: quantity,
		ExpiresAt: testNow.Add(time.Minute),
	}
}

func expiredLock(slotID int64, holder string, quantity int) *domain.ReservationLock {
	return &domain.ReservationLock{
		ID: uuid.New(), SlotID: slotID, HolderID: holder, Quantity: quantity,
		ExpiresAt: testNow.Add(-time.Second),
	}
}

func TestService_Validate(t *testing.T) {
	active := activeLock(1, "checkout-1", 2)
	expired := expiredLock(1, "checkout-2", 1)
	svc := NewService(newFakeLockRepo(active, expired), fakeClock{now: testNow}, nopLogger{})

	resp, err := svc.Validate(context.Background(), active.ID, "checkout-1")
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, int64(1), resp.SlotID)
	assert.Equal(t, 2, resp.Quantity)

	// Чужой лок невалиден для этого держателя
	resp, err = svc.Validate(context.Background(), active.ID, "someone-else")
	require.NoError(t, err)
	assert.False(t, resp.Valid)

	// Истекший, но еще не убранный лок невалиден даже для владельца
	resp, err = svc.Validate(context.Background(), expired.ID, "checkout-2")
	require.NoError(t, err)
	assert.False(t, resp.Valid)

	// Держатель обязателен
	_, err = svc.Validate(context.Background(), active.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Validate(context.Background(), uuid.New(), "checkout-1")
	assert.ErrorIs(t, err, ErrLockNotFound)
}

func TestService_Release(t *testing.T) {
	lock := activeLock(1, "checkout-1", 2)
	repo := newFakeLockRepo(lock)
	svc := NewService(repo, fakeClock{now: testNow}, nopLogger{})

	// Чужой лок освободить нельзя
	err := svc.Release(context.Background(), lock.ID, "someone-else")
	assert.ErrorIs(t, err, ErrHolderMismatch)
	assert.Len(t, repo.locks, 1)

	require.NoError(t, svc.Release(context.Background(), lock.ID, "checkout-1"))
	assert.Empty(t, repo.locks)

	// Повторное освобождение
	err = svc.Release(context.Background(), lock.ID, "checkout-1")
	assert.ErrorIs(t, err, ErrLockNotFound)
}

func TestService_QueryHeld(t *testing.T) {
	repo := newFakeLockRepo(
		activeLock(1, "a", 2),
		activeLock(1, "b", 1),
		expiredLock(1, "c", 5),
		activeLock(2, "d", 4),
	)
	svc := NewService(repo, fakeClock{now: testNow}, nopLogger{})

	resp, err := svc.QueryHeld(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)

	// Истекшие локи не учитываются, слоты без локов отдаются с нулем
	assert.Equal(t, map[int64]int{1: 3, 2: 4, 3: 0}, resp.Held)
}

func TestService_QueryHeld_Validation(t *testing.T) {
	svc := NewService(newFakeLockRepo(), fakeClock{now: testNow}, nopLogger{})

	_, err := svc.QueryHeld(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.QueryHeld(context.Background(), []int64{1, -2})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Sweep(t *testing.T) {
	active := activeLock(1, "a", 2)
	repo := newFakeLockRepo(
		active,
		expiredLock(1, "b", 1),
		expiredLock(2, "c", 3),
	)
	svc := NewService(repo, fakeClock{now: testNow}, nopLogger{})

	resp, err := svc.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.RemovedCount)
	require.Len(t, repo.locks, 1)
	_, stillThere := repo.locks[active.ID]
	assert.True(t, stillThere)

	// Повторный sweep идемпотентен
	resp, err = svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.RemovedCount)
}
