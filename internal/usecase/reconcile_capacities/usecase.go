package reconcile_capacities

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	slotRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
)

// UseCase use case реконсиляции счетчиков слотов.
// Бронирования - источник истины, счетчики слота - кэш агрегата над ними.
// Реконсиляция пересчитывает агрегат и чинит кэш, если тот разъехался
type UseCase struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	metrics     MetricsCollector
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет реконсиляцию счетчиков для набора слотов
// Каждый слот чинится в собственной короткой транзакции: ошибка по одному
// слоту логируется и не прерывает остальную партию
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	for _, id := range req.SlotIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: slot ids must be positive", ErrInvalidInput)
		}
	}

	slotIDs := req.SlotIDs
	if len(slotIDs) == 0 {
		ids, err := uc.slotRepo.ListIDs(ctx)
		if err != nil {
			uc.logger.Error("ReconcileCapacities: failed to list slot ids: %v", err)
			return nil, fmt.Errorf("%w: failed to list slot ids: %v", ErrInternal, err)
		}
		slotIDs = ids
	}

	uc.logger.Info("ReconcileCapacities: scanning %d slots", len(slotIDs))

	result := &Response{
		Corrections: make([]domain.CapacityCorrection, 0),
	}

	for _, slotID := range slotIDs {
		correction, err := uc.reconcileSlot(ctx, slotID)
		if err != nil {
			uc.logger.Error("ReconcileCapacities: slot id=%d failed: %v", slotID, err)
			result.FailedCount++
			continue
		}
		result.ScannedCount++
		if correction != nil {
			result.Corrections = append(result.Corrections, *correction)
		}
	}

	uc.logger.Info("ReconcileCapacities: done, scanned=%d, corrected=%d, failed=%d",
		result.ScannedCount, len(result.Corrections), result.FailedCount)

	return result, nil
}

// reconcileSlot пересчитывает счетчики одного слота в отдельной транзакции
// Возвращает исправление, если счетчики пришлось менять, иначе nil
func (uc *UseCase) reconcileSlot(ctx context.Context, slotID int64) (*domain.CapacityCorrection, error) {
	var correction *domain.CapacityCorrection

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := uc.slotRepo.GetByIDForUpdate(txCtx, slotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				// Слот удалили между листингом и обработкой, чинить нечего
				return nil
			}
			return fmt.Errorf("failed to get slot: %w", err)
		}

		// Агрегат по бронированиям в учитываемых статусах
		visitors, err := uc.bookingRepo.SumVisitorsBySlot(txCtx, slotID)
		if err != nil {
			return fmt.Errorf("failed to sum visitors: %w", err)
		}

		// Фиксируем значения "до" сразу после чтения: UpdateCounters может
		// работать с той же структурой слота
		oldCommitted := slot.CommittedCount
		oldAvailable := slot.AvailableCapacity

		committed := visitors
		clamped := false
		if committed > slot.TotalCapacity {
			// Бронирований больше полной ёмкости - кэш починим, но сам
			// перебор счетчиками не выражается, только сигналим
			committed = slot.TotalCapacity
			clamped = true
		}
		available := slot.TotalCapacity - committed

		if committed == oldCommitted && available == oldAvailable {
			return nil
		}

		if clamped {
			uc.logger.Error("ReconcileCapacities: slot id=%d is overcommitted: visitors=%d, total=%d",
				slotID, visitors, slot.TotalCapacity)
			uc.metrics.IncCapacityClamp()
		}

		if err := uc.slotRepo.UpdateCounters(txCtx, slotID, committed, available); err != nil {
			return fmt.Errorf("failed to update counters: %w", err)
		}

		correction = &domain.CapacityCorrection{
			SlotID:       slotID,
			OldCommitted: oldCommitted,
			NewCommitted: committed,
			OldAvailable: oldAvailable,
			NewAvailable: available,
		}

		uc.logger.Warn("ReconcileCapacities: slot id=%d corrected: committed %d -> %d, available %d -> %d",
			slotID, oldCommitted, committed, oldAvailable, available)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return correction, nil
}
