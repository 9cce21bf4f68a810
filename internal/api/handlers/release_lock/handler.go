package release_lock

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/service/locks"
)

const holderIDHeader = "X-Holder-ID"

const (
	msgInvalidLockID  = "некорректный ID лока"
	msgMissingHolder  = "отсутствует заголовок X-Holder-ID"
	msgLockNotFound   = "лок не найден"
	msgHolderMismatch = "лок принадлежит другому держателю"
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

// Handle DELETE /api/v1/locks/{lockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lockID, err := uuid.Parse(vars["lockId"])
	if err != nil {
		h.logger.Warn("DELETE /locks/{id} - Invalid lock ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLockID)
		return
	}

	holderID := r.Header.Get(holderIDHeader)
	if holderID == "" {
		h.logger.Warn("DELETE /locks/{id} - Missing holder ID: lock_id=%s", lockID)
		handlers.RespondBadRequest(w, msgMissingHolder)
		return
	}

	if err := h.service.Release(r.Context(), lockID, holderID); err != nil {
		switch {
		case errors.Is(err, locks.ErrLockNotFound):
			h.logger.Warn("DELETE /locks/{id} - Lock not found: lock_id=%s", lockID)
			handlers.RespondNotFound(w, msgLockNotFound)

		case errors.Is(err, locks.ErrHolderMismatch):
			h.logger.Warn("DELETE /locks/{id} - Holder mismatch: lock_id=%s", lockID)
			handlers.RespondForbidden(w, msgHolderMismatch)

		default:
			h.logger.Error("DELETE /locks/{id} - Failed to release lock: lock_id=%s, error=%v", lockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /locks/{id} - Lock released: lock_id=%s", lockID)
	w.WriteHeader(http.StatusNoContent)
}
