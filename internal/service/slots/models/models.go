package models

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// Request модели

// ListSlotsRequest запрос на получение слотов тенанта
type ListSlotsRequest struct {
	TenantID  int64      `json:"tenantId"`
	ServiceID *int64     `json:"serviceId,omitempty"` // Фильтр по услуге (опционально)
	StaffID   *int64     `json:"staffId,omitempty"`   // Фильтр по сотруднику (опционально)
	DateFrom  *time.Time `json:"dateFrom,omitempty"`  // Начало периода (опционально)
	DateTo    *time.Time `json:"dateTo,omitempty"`    // Конец периода (опционально)
	OnlyOpen  bool       `json:"onlyOpen,omitempty"`  // Только открытые слоты
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListSlotsRequest) ToDomainFilter() domain.SlotFilter {
	return domain.SlotFilter{
		TenantID:  r.TenantID,
		ServiceID: r.ServiceID,
		StaffID:   r.StaffID,
		DateFrom:  r.DateFrom,
		DateTo:    r.DateTo,
		OnlyOpen:  r.OnlyOpen,
	}
}

// Response модели

// SlotResponse ответ с данными слота
// EffectiveAvailable учитывает активные резервационные локи, остальные
// счетчики отдаются как хранятся
type SlotResponse struct {
	ID        int64  `json:"id"`
	TenantID  int64  `json:"tenantId"`
	ServiceID int64  `json:"serviceId"`
	ShiftID   int64  `json:"shiftId"`
	StaffID   *int64 `json:"staffId,omitempty"`

	SlotDate  string    `json:"slotDate"`  // "2026-08-24"
	StartTime string    `json:"startTime"` // "10:00"
	EndTime   string    `json:"endTime"`   // "11:00"
	StartsAt  time.Time `json:"startsAt"`  // UTC
	EndsAt    time.Time `json:"endsAt"`    // UTC

	TotalCapacity      int  `json:"totalCapacity"`
	AvailableCapacity  int  `json:"availableCapacity"`
	CommittedCount     int  `json:"committedCount"`
	HeldCount          int  `json:"heldCount"`
	EffectiveAvailable int  `json:"effectiveAvailable"`
	IsOpen             bool `json:"isOpen"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot, held int) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:                 s.ID,
		TenantID:           s.TenantID,
		ServiceID:          s.ServiceID,
		ShiftID:            s.ShiftID,
		StaffID:            s.StaffID,
		SlotDate:           s.SlotDate.Format(domain.DateFormat),
		StartTime:          s.StartTime.String(),
		EndTime:            s.EndTime.String(),
		StartsAt:           s.StartsAt,
		EndsAt:             s.EndsAt,
		TotalCapacity:      s.TotalCapacity,
		AvailableCapacity:  s.AvailableCapacity,
		CommittedCount:     s.CommittedCount,
		HeldCount:          held,
		EffectiveAvailable: s.EffectiveAvailable(held),
		IsOpen:             s.IsOpen,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.Slot, held map[int64]int) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}

	for _, slot := range slots {
		if slotResp := FromDomainSlot(slot, held[slot.ID]); slotResp != nil {
			resp.Slots = append(resp.Slots, *slotResp)
		}
	}

	return resp
}
