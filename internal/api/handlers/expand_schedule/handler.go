package expand_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	expandSchedule "github.com/m04kA/SMC-SlotService/internal/usecase/expand_schedule"
)

const (
	msgInvalidShiftID     = "некорректный ID смены"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgShiftNotFound      = "смена не найдена"
	msgShiftInactive      = "смена неактивна"
	msgInvalidRange       = "некорректный диапазон дат"
	msgRangeTooLarge      = "диапазон дат превышает допустимый лимит"
	msgInvalidShift       = "определение смены не позволяет построить слоты"
)

type Handler struct {
	useCase ExpandScheduleUseCase
	logger  Logger
}

func NewHandler(useCase ExpandScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/shifts/{shiftId}/expand
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shiftID, err := strconv.ParseInt(vars["shiftId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /shifts/{id}/expand - Invalid shift ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShiftID)
		return
	}

	var req ExpandScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shifts/{id}/expand - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(shiftID)
	if err != nil {
		h.logger.Warn("POST /shifts/{id}/expand - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, expandSchedule.ErrShiftNotFound):
			h.logger.Warn("POST /shifts/{id}/expand - Shift not found: shift_id=%d", shiftID)
			handlers.RespondNotFound(w, msgShiftNotFound)

		case errors.Is(err, expandSchedule.ErrShiftInactive):
			h.logger.Warn("POST /shifts/{id}/expand - Shift inactive: shift_id=%d", shiftID)
			handlers.RespondError(w, http.StatusConflict, msgShiftInactive)

		case errors.Is(err, expandSchedule.ErrRangeTooLarge):
			h.logger.Warn("POST /shifts/{id}/expand - Range too large: shift_id=%d", shiftID)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		case errors.Is(err, expandSchedule.ErrInvalidRange), errors.Is(err, expandSchedule.ErrInvalidInput):
			h.logger.Warn("POST /shifts/{id}/expand - Invalid range: shift_id=%d, error=%v", shiftID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, expandSchedule.ErrInvalidShiftDefinition):
			h.logger.Warn("POST /shifts/{id}/expand - Invalid shift definition: shift_id=%d, error=%v", shiftID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidShift)

		default:
			h.logger.Error("POST /shifts/{id}/expand - Failed to expand schedule: shift_id=%d, error=%v", shiftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shifts/{id}/expand - Schedule expanded: shift_id=%d, created=%d, purged=%d",
		shiftID, result.SlotsCreated, result.SlotsPurged)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
