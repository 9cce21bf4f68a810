package sweep_locks

import (
	"net/http"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
)

type Handler struct {
	service LockService
	logger  Logger
}

func NewHandler(service LockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /admin/locks/sweep
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Sweep(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/locks/sweep - Failed to sweep locks: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/locks/sweep - Removed %d expired locks", result.RemovedCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
