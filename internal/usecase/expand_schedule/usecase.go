package expand_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	shiftRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/shift"
)

// UseCase use case генерации слотов по смене
// Разворачивает повторяющееся определение смены в конкретные слоты диапазона дат
type UseCase struct {
	shiftRepo ShiftRepository
	slotRepo  SlotRepository
	txManager TransactionManager
	cfg       Config
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	shiftRepo ShiftRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.MaxExpansionDays <= 0 {
		cfg.MaxExpansionDays = domain.MaxExpansionDays
	}
	return &UseCase{
		shiftRepo: shiftRepo,
		slotRepo:  slotRepo,
		txManager: txManager,
		cfg:       cfg,
		logger:    logger,
	}
}

// Execute выполняет генерацию слотов для диапазона дат
// Идемпотентна per range: старые слоты смены в диапазоне удаляются и
// создаются заново в одной транзакции, поэтому повторный запуск для
// пересекающегося диапазона никогда не дублирует слоты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExpandSchedule: shift=%d, range=%s..%s",
		req.ShiftID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.cfg.MaxExpansionDays); err != nil {
		uc.logger.Warn("ExpandSchedule: validation failed: %v", err)
		return nil, err
	}

	var result Response
	result.ShiftID = req.ShiftID

	// 2. Выполняем удаление и вставку как одну единицу работы:
	// при любой ошибке диапазон остается нетронутым (никаких частичных записей)
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем смену
		shift, err := uc.shiftRepo.GetByID(txCtx, req.ShiftID)
		if err != nil {
			if errors.Is(err, shiftRepo.ErrShiftNotFound) {
				uc.logger.Warn("ExpandSchedule: shift id=%d not found", req.ShiftID)
				return ErrShiftNotFound
			}
			uc.logger.Error("ExpandSchedule: failed to get shift id=%d: %v", req.ShiftID, err)
			return fmt.Errorf("%w: failed to get shift: %v", ErrInternal, err)
		}

		// 2.2. Проверяем определение смены
		if err := validateShift(shift); err != nil {
			uc.logger.Warn("ExpandSchedule: shift id=%d validation failed: %v", req.ShiftID, err)
			return err
		}

		// 2.3. Резолвим таймзону смены один раз на всю генерацию
		loc, err := shift.Location()
		if err != nil {
			uc.logger.Error("ExpandSchedule: shift id=%d has invalid timezone %q: %v",
				req.ShiftID, shift.Timezone, err)
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidShiftDefinition, shift.Timezone)
		}

		// 2.4. Получаем сотрудников смены с переопределениями
		staff, err := uc.shiftRepo.ListStaff(txCtx, req.ShiftID)
		if err != nil {
			uc.logger.Error("ExpandSchedule: failed to list staff for shift id=%d: %v", req.ShiftID, err)
			return fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
		}

		// 2.5. Строим слоты (по тайлингу на сотрудника, либо один дефолтный)
		slots, err := buildSlots(shift, staff, req.StartDate, req.EndDate, loc)
		if err != nil {
			uc.logger.Error("ExpandSchedule: failed to build slots for shift id=%d: %v", req.ShiftID, err)
			return fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
		}

		// 2.6. Удаляем старые слоты диапазона
		purged, err := uc.slotRepo.DeleteByShiftAndDateRange(txCtx, req.ShiftID, req.StartDate, req.EndDate)
		if err != nil {
			uc.logger.Error("ExpandSchedule: failed to purge old slots for shift id=%d: %v", req.ShiftID, err)
			return fmt.Errorf("%w: failed to purge old slots: %v", ErrInternal, err)
		}
		result.SlotsPurged = purged

		// 2.7. Вставляем новые слоты
		created, err := uc.slotRepo.BulkCreate(txCtx, slots)
		if err != nil {
			uc.logger.Error("ExpandSchedule: failed to insert slots for shift id=%d: %v", req.ShiftID, err)
			return fmt.Errorf("%w: failed to insert slots: %v", ErrInternal, err)
		}
		result.SlotsCreated = created

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ExpandSchedule: shift=%d done, purged=%d, created=%d",
		req.ShiftID, result.SlotsPurged, result.SlotsCreated)

	return &result, nil
}
