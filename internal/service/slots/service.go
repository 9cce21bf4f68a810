package slots

import (
	"context"
	"errors"
	"fmt"

	slotRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SlotService/internal/service/slots/models"
)

// Service сервис чтения слотов
// Отдает слоты вместе с эффективной доступностью: хранимые счетчики минус
// ёмкость, удержанная активными резервационными локами
type Service struct {
	slotRepo SlotRepository
	lockRepo LockRepository
	clock    TimeProvider
	logger   Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, lockRepo LockRepository, clock TimeProvider, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		lockRepo: lockRepo,
		clock:    clock,
		logger:   logger,
	}
}

// GetByID получает слот по ID с эффективной доступностью
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	s.logger.Info("GetByID: fetching slot id=%d", id)

	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	held, err := s.lockRepo.SumHeldBySlots(ctx, []int64{id}, s.clock.Now())
	if err != nil {
		s.logger.Error("GetByID: failed to sum held capacity for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to sum held capacity: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(slot, held[id]), nil
}

// List получает слоты тенанта с фильтрацией и эффективной доступностью
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("List: fetching slots for tenant=%d", req.TenantID)

	if req.TenantID <= 0 {
		s.logger.Warn("List: tenantID must be positive")
		return nil, fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}
	if req.DateFrom != nil && req.DateTo != nil && req.DateTo.Before(*req.DateFrom) {
		s.logger.Warn("List: invalid period for tenant=%d", req.TenantID)
		return nil, fmt.Errorf("%w: dateTo is before dateFrom", ErrInvalidInput)
	}

	slots, err := s.slotRepo.ListByFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	if len(slots) == 0 {
		return &models.SlotListResponse{Slots: []models.SlotResponse{}}, nil
	}

	slotIDs := make([]int64, len(slots))
	for i, slot := range slots {
		slotIDs[i] = slot.ID
	}

	held, err := s.lockRepo.SumHeldBySlots(ctx, slotIDs, s.clock.Now())
	if err != nil {
		s.logger.Error("List: failed to sum held capacity for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: List - failed to sum held capacity: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d slots for tenant=%d", len(slots), req.TenantID)
	return models.FromDomainSlotList(slots, held), nil
}
