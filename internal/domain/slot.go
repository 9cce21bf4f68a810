package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// Slot represents a single bookable time window with a fixed starting capacity
type Slot struct {
	ID        int64
	TenantID  int64
	ServiceID int64
	ShiftID   int64
	StaffID   *int64 // ID сотрудника (nil для слотов без привязки к сотруднику)

	SlotDate  time.Time        // Календарная дата слота (без времени)
	StartTime types.TimeString // Локальное время начала (для отображения)
	EndTime   types.TimeString // Локальное время конца (для отображения)
	StartsAt  time.Time        // Нормализованный момент начала (UTC, вычисляется при генерации)
	EndsAt    time.Time        // Нормализованный момент конца (UTC)

	TotalCapacity     int  // Полная ёмкость (фиксируется при создании)
	AvailableCapacity int  // Оставшаяся ёмкость
	CommittedCount    int  // Занятая ёмкость
	IsOpen            bool // Флаг открытости слота (независим от ёмкости)

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveAvailable returns available capacity minus quantity held by
// unexpired reservation locks, clamped at zero
func (s *Slot) EffectiveAvailable(held int) int {
	effective := s.AvailableCapacity - held
	if effective < 0 {
		return 0
	}
	return effective
}

// IsFull returns true if the slot has no remaining capacity
func (s *Slot) IsFull() bool {
	return s.AvailableCapacity <= 0
}

// IsPast returns true if the slot has already started at the given moment
func (s *Slot) IsPast(now time.Time) bool {
	return !s.StartsAt.After(now)
}

// CountersConsistent returns true if the stored counters satisfy the
// ledger invariants
func (s *Slot) CountersConsistent() bool {
	return s.CommittedCount >= 0 &&
		s.CommittedCount <= s.TotalCapacity &&
		s.AvailableCapacity == s.TotalCapacity-s.CommittedCount
}

// ApplyCapacityDelta вычисляет новые значения счетчиков после изменения
// занятой ёмкости на delta (delta > 0 — занять места, delta < 0 — вернуть).
// Счетчики ограничиваются диапазоном [0, TotalCapacity]; clamped сигнализирует,
// что ограничение сработало (признак рассинхронизации, требующей реконсиляции)
func (s *Slot) ApplyCapacityDelta(delta int) (committed int, available int, clamped bool) {
	committed = s.CommittedCount + delta
	if committed < 0 {
		committed = 0
		clamped = true
	}
	if committed > s.TotalCapacity {
		committed = s.TotalCapacity
		clamped = true
	}
	available = s.TotalCapacity - committed
	return committed, available, clamped
}

// SlotFilter фильтр для получения слотов тенанта
type SlotFilter struct {
	TenantID  int64      // Обязательный параметр
	ServiceID *int64     // Фильтр по услуге (опционально)
	StaffID   *int64     // Фильтр по сотруднику (опционально)
	DateFrom  *time.Time // Начало периода (опционально)
	DateTo    *time.Time // Конец периода (опционально)
	OnlyOpen  bool       // Только открытые слоты
}

// CapacityCorrection результат реконсиляции одного слота (до/после)
type CapacityCorrection struct {
	SlotID       int64
	OldCommitted int
	NewCommitted int
	OldAvailable int
	NewAvailable int
}
