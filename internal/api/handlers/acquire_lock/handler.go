package acquire_lock

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/domain"
	acquireLock "github.com/m04kA/SMC-SlotService/internal/usecase/acquire_lock"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotNotFound       = "слот не найден"
	msgSlotClosed         = "слот закрыт для бронирования"
	msgSlotInPast         = "слот уже начался"
	msgCapacityExceeded   = "недостаточно свободных мест в слоте"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase AcquireLockUseCase
	logger  Logger
}

func NewHandler(useCase AcquireLockUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/locks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req AcquireLockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /locks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var capacityErr *domain.CapacityExceededError
		switch {
		case errors.As(err, &capacityErr):
			h.logger.Warn("POST /locks - Capacity exceeded: slot_id=%d, requested=%d, available=%d",
				capacityErr.SlotID, capacityErr.Requested, capacityErr.Available)
			handlers.RespondJSON(w, http.StatusConflict, CapacityExceededResponse{
				Error:     msgCapacityExceeded,
				SlotID:    capacityErr.SlotID,
				Requested: capacityErr.Requested,
				Available: capacityErr.Available,
			})

		case errors.Is(err, acquireLock.ErrSlotNotFound):
			h.logger.Warn("POST /locks - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, acquireLock.ErrSlotClosed):
			h.logger.Warn("POST /locks - Slot closed: slot_id=%d", req.SlotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotClosed)

		case errors.Is(err, acquireLock.ErrSlotInPast):
			h.logger.Warn("POST /locks - Slot in past: slot_id=%d", req.SlotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotInPast)

		case errors.Is(err, acquireLock.ErrInvalidInput):
			h.logger.Warn("POST /locks - Invalid input: slot_id=%d, error=%v", req.SlotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /locks - Failed to acquire lock: slot_id=%d, error=%v", req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /locks - Lock acquired: lock_id=%s, slot_id=%d, quantity=%d",
		result.LockID, result.SlotID, result.Quantity)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
