package list_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/service/slots"
	"github.com/m04kA/SMC-SlotService/internal/service/slots/models"
)

const (
	msgInvalidTenantID = "некорректный ID тенанта"
	msgInvalidFilter   = "некорректные параметры фильтрации"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/slots
// Query параметры: serviceId, staffId, dateFrom, dateTo, onlyOpen
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantID, err := strconv.ParseInt(vars["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/slots - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	req, err := parseFilter(r, tenantID)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/slots - Invalid filter: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{id}/slots - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /tenants/{id}/slots - Failed to list slots: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/slots - Listed %d slots: tenant_id=%d", len(result.Slots), tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseFilter собирает фильтр из query параметров
func parseFilter(r *http.Request, tenantID int64) (*models.ListSlotsRequest, error) {
	query := r.URL.Query()

	req := &models.ListSlotsRequest{
		TenantID: tenantID,
		OnlyOpen: query.Get("onlyOpen") == "true",
	}

	if raw := query.Get("serviceId"); raw != "" {
		serviceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ServiceID = &serviceID
	}

	if raw := query.Get("staffId"); raw != "" {
		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.StaffID = &staffID
	}

	if raw := query.Get("dateFrom"); raw != "" {
		dateFrom, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.DateFrom = &dateFrom
	}

	if raw := query.Get("dateTo"); raw != "" {
		dateTo, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.DateTo = &dateTo
	}

	return req, nil
}
