package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// ValidationResponse результат проверки лока
type ValidationResponse struct {
	LockID    uuid.UUID `json:"lockId"`
	SlotID    int64     `json:"slotId"`
	Quantity  int       `json:"quantity"`
	Valid     bool      `json:"valid"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HeldCapacityResponse удержанная локами ёмкость по слотам
type HeldCapacityResponse struct {
	Held map[int64]int `json:"held"` // slotID -> суммарно удержано мест
}

// SweepResponse результат удаления истекших локов
type SweepResponse struct {
	RemovedCount int64 `json:"removedCount"`
}

// FromDomainLock конвертирует лок в ответ валидации
func FromDomainLock(l *domain.ReservationLock, now time.Time) *ValidationResponse {
	return &ValidationResponse{
		LockID:    l.ID,
		SlotID:    l.SlotID,
		Quantity:  l.Quantity,
		Valid:     !l.IsExpired(now),
		ExpiresAt: l.ExpiresAt,
	}
}
