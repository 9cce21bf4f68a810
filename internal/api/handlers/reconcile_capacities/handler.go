package reconcile_capacities

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	reconcileCapacities "github.com/m04kA/SMC-SlotService/internal/usecase/reconcile_capacities"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotIDs     = "некорректный список ID слотов"
)

type Handler struct {
	useCase ReconcileCapacitiesUseCase
	logger  Logger
}

func NewHandler(useCase ReconcileCapacitiesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /admin/slots/reconcile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Тело опционально: без него реконсилируются все слоты
	var req ReconcileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /admin/slots/reconcile - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, reconcileCapacities.ErrInvalidInput):
			h.logger.Warn("POST /admin/slots/reconcile - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlotIDs)

		default:
			h.logger.Error("POST /admin/slots/reconcile - Failed to reconcile: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/slots/reconcile - Reconciled: scanned=%d, corrected=%d, failed=%d",
		result.ScannedCount, len(result.Corrections), result.FailedCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
