package acquire_lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	slotRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
)

// UseCase use case захвата резервационного лока.
// Лок - это кооперативный TTL-холд: он уменьшает эффективную доступность
// слота для других читателей, но не трогает счетчики самого слота
type UseCase struct {
	slotRepo  SlotRepository
	lockRepo  LockRepository
	txManager TransactionManager
	clock     TimeProvider
	cfg       Config
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	lockRepo LockRepository,
	txManager TransactionManager,
	clock TimeProvider,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.DefaultTTLSeconds <= 0 {
		cfg.DefaultTTLSeconds = domain.DefaultLockTTLSeconds
	}
	if cfg.MaxTTLSeconds <= 0 {
		cfg.MaxTTLSeconds = domain.MaxLockTTLSeconds
	}
	return &UseCase{
		slotRepo:  slotRepo,
		lockRepo:  lockRepo,
		txManager: txManager,
		clock:     clock,
		cfg:       cfg,
		logger:    logger,
	}
}

// Execute выполняет захват лока на слот
// Проверка доступности и вставка лока идут в одной serializable-транзакции
// под FOR UPDATE на строке слота, поэтому два конкурирующих холда
// сериализуются и суммарно никогда не превышают доступную ёмкость
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AcquireLock: slot=%d, holder=%s, quantity=%d", req.SlotID, req.HolderID, req.Quantity)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.cfg.MaxTTLSeconds); err != nil {
		uc.logger.Warn("AcquireLock: validation failed: %v", err)
		return nil, err
	}

	ttl := uc.cfg.DefaultTTLSeconds
	if req.TTLSeconds != nil {
		ttl = *req.TTLSeconds
	}

	now := uc.clock.Now()
	lock := &domain.ReservationLock{
		ID:        uuid.New(),
		SlotID:    req.SlotID,
		HolderID:  req.HolderID,
		Quantity:  req.Quantity,
		ExpiresAt: now.Add(time.Duration(ttl) * time.Second),
	}

	// 2. Проверяем доступность и вставляем лок атомарно
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем строку слота на время проверки
		slot, err := uc.slotRepo.GetByIDForUpdate(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("AcquireLock: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("AcquireLock: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		if !slot.IsOpen {
			uc.logger.Warn("AcquireLock: slot id=%d is closed", req.SlotID)
			return ErrSlotClosed
		}
		if slot.IsPast(now) {
			uc.logger.Warn("AcquireLock: slot id=%d has already started", req.SlotID)
			return ErrSlotInPast
		}

		// 2.2. Считаем уже удержанную активными локами ёмкость
		held, err := uc.lockRepo.SumHeldBySlot(txCtx, req.SlotID, now, nil)
		if err != nil {
			uc.logger.Error("AcquireLock: failed to sum held capacity for slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to sum held capacity: %v", ErrInternal, err)
		}

		// 2.3. Эффективная доступность = available - held
		effective := slot.EffectiveAvailable(held)
		if req.Quantity > effective {
			uc.logger.Warn("AcquireLock: slot id=%d capacity exceeded: requested=%d, available=%d",
				req.SlotID, req.Quantity, effective)
			return &domain.CapacityExceededError{
				SlotID:    req.SlotID,
				Requested: req.Quantity,
				Available: effective,
			}
		}

		// 2.4. Вставляем лок
		if err := uc.lockRepo.Create(txCtx, lock); err != nil {
			uc.logger.Error("AcquireLock: failed to create lock for slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to create lock: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("AcquireLock: lock id=%s acquired for slot=%d, expires at %s",
		lock.ID, req.SlotID, lock.ExpiresAt.Format(time.RFC3339))

	return &Response{
		LockID:    lock.ID,
		SlotID:    lock.SlotID,
		Quantity:  lock.Quantity,
		ExpiresAt: lock.ExpiresAt,
	}, nil
}
