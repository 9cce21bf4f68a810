package validate_lock

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/service/locks"
)

const (
	msgInvalidLockID = "некорректный ID лока"
	msgMissingHolder = "параметр holderId обязателен"
	msgLockNotFound  = "лок не найден"
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

// Handle GET /api/v1/locks/{lockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lockID, err := uuid.Parse(vars["lockId"])
	if err != nil {
		h.logger.Warn("GET /locks/{id} - Invalid lock ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLockID)
		return
	}

	holderID := r.URL.Query().Get("holderId")
	if holderID == "" {
		h.logger.Warn("GET /locks/{id} - Missing holder ID: lock_id=%s", lockID)
		handlers.RespondBadRequest(w, msgMissingHolder)
		return
	}

	result, err := h.service.Validate(r.Context(), lockID, holderID)
	if err != nil {
		switch {
		case errors.Is(err, locks.ErrLockNotFound):
			h.logger.Warn("GET /locks/{id} - Lock not found: lock_id=%s", lockID)
			handlers.RespondNotFound(w, msgLockNotFound)

		case errors.Is(err, locks.ErrInvalidInput):
			h.logger.Warn("GET /locks/{id} - Invalid input: lock_id=%s, error=%v", lockID, err)
			handlers.RespondBadRequest(w, msgMissingHolder)

		default:
			h.logger.Error("GET /locks/{id} - Failed to validate lock: lock_id=%s, error=%v", lockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /locks/{id} - Lock validated: lock_id=%s, valid=%t", lockID, result.Valid)
	handlers.RespondJSON(w, http.StatusOK, result)
}
