package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SlotService/internal/service/bookings/models"
)

// Service сервис для работы с жизненным циклом бронирований.
// Любая смена статуса, меняющая учет бронирования в ёмкости слота, двигает
// счетчики слота в той же транзакции: это единственный путь возврата и
// повторного списания ёмкости после создания бронирования
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	txManager   TransactionManager
	metrics     MetricsCollector
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	metrics MetricsCollector,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// UpdateStatus обновляет статус бронирования
// Если переход меняет учет бронирования в ёмкости (например completed -> cancelled
// или cancelled -> confirmed), счетчики слота корректируются атомарно с переходом
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var updated *domain.Booking

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getForUpdate(txCtx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}

		if booking.Status == newStatus {
			// Идемпотентный повтор, счетчики не трогаем
			updated = booking
			return nil
		}

		// Завершенный визит - терминальное состояние
		if booking.Status == domain.StatusCompleted {
			s.logger.Warn("UpdateStatus: booking id=%d is completed, transition to %s rejected", bookingID, newStatus)
			return ErrInvalidTransition
		}

		if err := s.applyLedgerTransition(txCtx, booking, newStatus); err != nil {
			return err
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus); err != nil {
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		booking.Status = newStatus
		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(updated), nil
}

// Cancel отменяет бронирование и возвращает занятую им ёмкость слоту
// Возврат идет через тот же переходный механизм, что и UpdateStatus,
// поэтому ёмкость не может вернуться дважды
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getForUpdate(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		if booking.IsCancelled() {
			// Повторная отмена - no-op
			s.logger.Warn("Cancel: booking id=%d is already cancelled", bookingID)
			return nil
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.applyLedgerTransition(txCtx, booking, domain.StatusCancelled); err != nil {
			return err
		}

		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.CancellationReason); err != nil {
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// getForUpdate получает бронирование под FOR UPDATE с маппингом ошибок
func (s *Service) getForUpdate(ctx context.Context, op string, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByIDForUpdate(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// applyLedgerTransition двигает счетчики слота при смене статуса бронирования.
// Счетчики меняются только когда меняется сам факт учета: переходы между двумя
// учитываемыми (pending -> confirmed) или двумя неучитываемыми статусами - no-op
func (s *Service) applyLedgerTransition(ctx context.Context, booking *domain.Booking, newStatus domain.BookingStatus) error {
	oldConsumes := booking.Status.ConsumesCapacity()
	newConsumes := newStatus.ConsumesCapacity()
	if oldConsumes == newConsumes {
		return nil
	}

	delta := booking.VisitorCount
	if !newConsumes {
		delta = -delta
	}

	slot, err := s.slotRepo.GetByIDForUpdate(ctx, booking.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Error("applyLedgerTransition: slot id=%d not found for booking id=%d",
				booking.SlotID, booking.ID)
			return fmt.Errorf("%w: slot id=%d not found", ErrInternal, booking.SlotID)
		}
		s.logger.Error("applyLedgerTransition: failed to get slot id=%d: %v", booking.SlotID, err)
		return fmt.Errorf("%w: applyLedgerTransition - failed to get slot: %v", ErrInternal, err)
	}

	committed, available, clamped := slot.ApplyCapacityDelta(delta)
	if clamped {
		s.logger.Error("applyLedgerTransition: slot id=%d counters clamped on delta=%d (committed=%d, total=%d)",
			slot.ID, delta, slot.CommittedCount, slot.TotalCapacity)
		s.metrics.IncCapacityClamp()
	}

	if err := s.slotRepo.UpdateCounters(ctx, slot.ID, committed, available); err != nil {
		s.logger.Error("applyLedgerTransition: failed to update counters for slot id=%d: %v", slot.ID, err)
		return fmt.Errorf("%w: applyLedgerTransition - failed to update counters: %v", ErrInternal, err)
	}

	return nil
}
