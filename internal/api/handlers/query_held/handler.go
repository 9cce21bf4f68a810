package query_held

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/service/locks"
)

const (
	msgMissingSlotIDs = "параметр slotIds обязателен"
	msgInvalidSlotIDs = "некорректный список ID слотов"
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

// Handle GET /api/v1/slots/held?slotIds=1,2,3
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("slotIds")
	if raw == "" {
		h.logger.Warn("GET /slots/held - Missing slotIds parameter")
		handlers.RespondBadRequest(w, msgMissingSlotIDs)
		return
	}

	parts := strings.Split(raw, ",")
	slotIDs := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			h.logger.Warn("GET /slots/held - Invalid slot ID %q: %v", part, err)
			handlers.RespondBadRequest(w, msgInvalidSlotIDs)
			return
		}
		slotIDs = append(slotIDs, id)
	}

	result, err := h.service.QueryHeld(r.Context(), slotIDs)
	if err != nil {
		switch {
		case errors.Is(err, locks.ErrInvalidInput):
			h.logger.Warn("GET /slots/held - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlotIDs)

		default:
			h.logger.Error("GET /slots/held - Failed to query held capacity: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots/held - Held capacity queried for %d slots", len(slotIDs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
