package locks

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	lockRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/reservationlock"
	"github.com/m04kA/SMC-SlotService/internal/service/locks/models"
)

// Service сервис для работы с резервационными локами вне пути бронирования:
// проверка, освобождение, подсчет удержанной ёмкости и уборка истекших
type Service struct {
	lockRepo LockRepository
	clock    TimeProvider
	logger   Logger
}

// NewService создает новый экземпляр сервиса локов
func NewService(lockRepo LockRepository, clock TimeProvider, logger Logger) *Service {
	return &Service{
		lockRepo: lockRepo,
		clock:    clock,
		logger:   logger,
	}
}

// Validate проверяет существование, срок жизни и принадлежность лока
// Истекший, но еще не убранный sweep-ом лок считается невалидным:
// валидность определяется expires_at и держателем, а не фактом наличия строки
func (s *Service) Validate(ctx context.Context, lockID uuid.UUID, holderID string) (*models.ValidationResponse, error) {
	s.logger.Info("Validate: checking lock id=%s", lockID)

	if holderID == "" {
		return nil, fmt.Errorf("%w: holderID is required", ErrInvalidInput)
	}

	lock, err := s.lockRepo.GetByID(ctx, lockID)
	if err != nil {
		if errors.Is(err, lockRepo.ErrLockNotFound) {
			s.logger.Warn("Validate: lock id=%s not found", lockID)
			return nil, ErrLockNotFound
		}
		s.logger.Error("Validate: repository error for lock id=%s: %v", lockID, err)
		return nil, fmt.Errorf("%w: Validate - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainLock(lock, s.clock.Now())
	if !lock.BelongsTo(holderID) {
		resp.Valid = false
	}

	return resp, nil
}

// Release досрочно освобождает лок держателя
// Чужой лок освободить нельзя; повторное освобождение возвращает ErrLockNotFound
func (s *Service) Release(ctx context.Context, lockID uuid.UUID, holderID string) error {
	s.logger.Info("Release: releasing lock id=%s", lockID)

	if holderID == "" {
		return fmt.Errorf("%w: holderID is required", ErrInvalidInput)
	}

	lock, err := s.lockRepo.GetByID(ctx, lockID)
	if err != nil {
		if errors.Is(err, lockRepo.ErrLockNotFound) {
			s.logger.Warn("Release: lock id=%s not found", lockID)
			return ErrLockNotFound
		}
		s.logger.Error("Release: repository error for lock id=%s: %v", lockID, err)
		return fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
	}

	if !lock.BelongsTo(holderID) {
		s.logger.Warn("Release: lock id=%s belongs to another holder", lockID)
		return ErrHolderMismatch
	}

	if err := s.lockRepo.Delete(ctx, lockID); err != nil {
		if errors.Is(err, lockRepo.ErrLockNotFound) {
			s.logger.Warn("Release: lock id=%s already removed", lockID)
			return ErrLockNotFound
		}
		s.logger.Error("Release: repository error for lock id=%s: %v", lockID, err)
		return fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Release: successfully released lock id=%s", lockID)
	return nil
}

// QueryHeld возвращает суммарно удержанную активными локами ёмкость по слотам
// Слоты без активных локов присутствуют в ответе с нулем
func (s *Service) QueryHeld(ctx context.Context, slotIDs []int64) (*models.HeldCapacityResponse, error) {
	s.logger.Info("QueryHeld: querying held capacity for %d slots", len(slotIDs))

	if len(slotIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one slot id is required", ErrInvalidInput)
	}
	for _, id := range slotIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: slot ids must be positive", ErrInvalidInput)
		}
	}

	held, err := s.lockRepo.SumHeldBySlots(ctx, slotIDs, s.clock.Now())
	if err != nil {
		s.logger.Error("QueryHeld: repository error: %v", err)
		return nil, fmt.Errorf("%w: QueryHeld - repository error: %v", ErrInternal, err)
	}

	// Слоты без активных локов в GROUP BY не попадают - дополняем нулями
	result := make(map[int64]int, len(slotIDs))
	for _, id := range slotIDs {
		result[id] = held[id]
	}

	return &models.HeldCapacityResponse{Held: result}, nil
}

// Sweep удаляет все истекшие локи
// Безопасен к конкурентным запускам: удаление идемпотентно, а читатели
// и так не учитывают истекшие локи
func (s *Service) Sweep(ctx context.Context) (*models.SweepResponse, error) {
	now := s.clock.Now()
	s.logger.Info("Sweep: removing locks expired before %s", now)

	removed, err := s.lockRepo.DeleteExpired(ctx, now)
	if err != nil {
		s.logger.Error("Sweep: repository error: %v", err)
		return nil, fmt.Errorf("%w: Sweep - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Sweep: removed %d expired locks", removed)
	return &models.SweepResponse{RemovedCount: removed}, nil
}
