package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotService/internal/domain"
	createBooking "github.com/m04kA/SMC-SlotService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidLockID      = "некорректный ID лока"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotNotFound       = "слот не найден"
	msgSlotClosed         = "слот закрыт для бронирования"
	msgCapacityExceeded   = "недостаточно свободных мест в слоте"
	msgLockNotFound       = "лок не найден"
	msgLockExpired        = "лок истек"
	msgLockMismatch       = "лок не подходит для этого бронирования"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid lock ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLockID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var capacityErr *domain.CapacityExceededError
		switch {
		case errors.As(err, &capacityErr):
			h.logger.Warn("POST /bookings - Capacity exceeded: slot_id=%d, requested=%d, available=%d",
				capacityErr.SlotID, capacityErr.Requested, capacityErr.Available)
			handlers.RespondJSON(w, http.StatusConflict, CapacityExceededResponse{
				Error:     msgCapacityExceeded,
				SlotID:    capacityErr.SlotID,
				Requested: capacityErr.Requested,
				Available: capacityErr.Available,
			})

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%d, user_id=%d", req.SlotID, userID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotClosed):
			h.logger.Warn("POST /bookings - Slot closed: slot_id=%d, user_id=%d", req.SlotID, userID)
			handlers.RespondError(w, http.StatusConflict, msgSlotClosed)

		case errors.Is(err, createBooking.ErrLockNotFound):
			h.logger.Warn("POST /bookings - Lock not found: slot_id=%d, user_id=%d", req.SlotID, userID)
			handlers.RespondNotFound(w, msgLockNotFound)

		case errors.Is(err, createBooking.ErrLockExpired):
			h.logger.Warn("POST /bookings - Lock expired: slot_id=%d, user_id=%d", req.SlotID, userID)
			handlers.RespondError(w, http.StatusConflict, msgLockExpired)

		case errors.Is(err, createBooking.ErrLockHolderMismatch):
			h.logger.Warn("POST /bookings - Lock holder mismatch: slot_id=%d, user_id=%d", req.SlotID, userID)
			handlers.RespondForbidden(w, msgLockMismatch)

		case errors.Is(err, createBooking.ErrLockSlotMismatch):
			h.logger.Warn("POST /bookings - Lock slot mismatch: slot_id=%d, user_id=%d", req.SlotID, userID)
			handlers.RespondError(w, http.StatusConflict, msgLockMismatch)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: slot_id=%d, user_id=%d, error=%v", req.SlotID, userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: slot_id=%d, user_id=%d, error=%v",
				req.SlotID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, slot_id=%d, user_id=%d",
		result.BookingID, result.SlotID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
