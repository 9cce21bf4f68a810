package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	lockRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/reservationlock"
	slotRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
)

// UseCase use case создания бронирования.
// Единственная точка, где бронирование занимает ёмкость слота: вставка записи
// и сдвиг счетчиков происходят в одной транзакции, других путей списания нет
type UseCase struct {
	slotRepo    SlotRepository
	lockRepo    LockRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	clock       TimeProvider
	metrics     MetricsCollector
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	lockRepo LockRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	clock TimeProvider,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:    slotRepo,
		lockRepo:    lockRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		clock:       clock,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет создание бронирования
// При переданном локе тот валидируется и удаляется до подсчета холдов,
// чтобы собственный холд не конкурировал с самим бронированием
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: slot=%d, user=%d, visitors=%d", req.SlotID, req.UserID, req.VisitorCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.StatusPending
	}

	now := uc.clock.Now()

	var created *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем строку слота
		slot, err := uc.slotRepo.GetByIDForUpdate(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		if !slot.IsOpen {
			uc.logger.Warn("CreateBooking: slot id=%d is closed", req.SlotID)
			return ErrSlotClosed
		}

		// 2.2. Потребляем лок, если он передан: проверяем и удаляем до
		// подсчета холдов, чтобы он не учитывался против этого же запроса
		if req.LockID != nil {
			if err := uc.consumeLock(txCtx, req, now); err != nil {
				return err
			}
		}

		// 2.3. Бронирования в неучитываемых статусах ёмкость не трогают
		if status.ConsumesCapacity() {
			held, err := uc.lockRepo.SumHeldBySlot(txCtx, req.SlotID, now, nil)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to sum held capacity for slot id=%d: %v", req.SlotID, err)
				return fmt.Errorf("%w: failed to sum held capacity: %v", ErrInternal, err)
			}

			effective := slot.EffectiveAvailable(held)
			if req.VisitorCount > effective {
				uc.logger.Warn("CreateBooking: slot id=%d capacity exceeded: requested=%d, available=%d",
					req.SlotID, req.VisitorCount, effective)
				return &domain.CapacityExceededError{
					SlotID:    req.SlotID,
					Requested: req.VisitorCount,
					Available: effective,
				}
			}
		}

		// 2.4. Вставляем бронирование
		booking := &domain.Booking{
			SlotID:       req.SlotID,
			TenantID:     req.TenantID,
			UserID:       req.UserID,
			VisitorCount: req.VisitorCount,
			Status:       status,
			Notes:        req.Notes,
		}
		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking for slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 2.5. Списываем ёмкость в той же транзакции
		if status.ConsumesCapacity() {
			committed, available, clamped := slot.ApplyCapacityDelta(req.VisitorCount)
			if clamped {
				uc.logger.Error("CreateBooking: slot id=%d counters clamped on delta=%d (committed=%d, total=%d)",
					req.SlotID, req.VisitorCount, slot.CommittedCount, slot.TotalCapacity)
				uc.metrics.IncCapacityClamp()
			}
			if err := uc.slotRepo.UpdateCounters(txCtx, req.SlotID, committed, available); err != nil {
				uc.logger.Error("CreateBooking: failed to update counters for slot id=%d: %v", req.SlotID, err)
				return fmt.Errorf("%w: failed to update slot counters: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: booking id=%d created for slot=%d, status=%s",
		created.ID, created.SlotID, created.Status)

	return &Response{
		BookingID:    created.ID,
		SlotID:       created.SlotID,
		Status:       created.Status,
		VisitorCount: created.VisitorCount,
		CreatedAt:    created.CreatedAt,
	}, nil
}

// consumeLock валидирует переданный лок и удаляет его в текущей транзакции
// Истекший, чужой или выданный на другой слот лок бронирование не пропускает
func (uc *UseCase) consumeLock(ctx context.Context, req *Request, now time.Time) error {
	lock, err := uc.lockRepo.GetByID(ctx, *req.LockID)
	if err != nil {
		if errors.Is(err, lockRepo.ErrLockNotFound) {
			uc.logger.Warn("CreateBooking: lock id=%s not found", *req.LockID)
			return ErrLockNotFound
		}
		uc.logger.Error("CreateBooking: failed to get lock id=%s: %v", *req.LockID, err)
		return fmt.Errorf("%w: failed to get lock: %v", ErrInternal, err)
	}

	if lock.SlotID != req.SlotID {
		uc.logger.Warn("CreateBooking: lock id=%s was issued for slot=%d, not slot=%d",
			lock.ID, lock.SlotID, req.SlotID)
		return ErrLockSlotMismatch
	}
	if !lock.BelongsTo(*req.HolderID) {
		uc.logger.Warn("CreateBooking: lock id=%s belongs to another holder", lock.ID)
		return ErrLockHolderMismatch
	}
	if lock.IsExpired(now) {
		uc.logger.Warn("CreateBooking: lock id=%s has expired at %s", lock.ID, lock.ExpiresAt)
		return ErrLockExpired
	}

	if err := uc.lockRepo.Delete(ctx, lock.ID); err != nil {
		if errors.Is(err, lockRepo.ErrLockNotFound) {
			// Лок успели удалить параллельно (sweep либо второй запрос держателя)
			uc.logger.Warn("CreateBooking: lock id=%s disappeared before consumption", lock.ID)
			return ErrLockNotFound
		}
		uc.logger.Error("CreateBooking: failed to delete lock id=%s: %v", lock.ID, err)
		return fmt.Errorf("%w: failed to delete lock: %v", ErrInternal, err)
	}

	return nil
}
