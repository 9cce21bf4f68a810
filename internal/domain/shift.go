package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// DaySet набор дней недели в виде битовой маски (бит 0 = воскресенье,
// нумерация совпадает с time.Weekday)
type DaySet uint8

// Contains returns true if the given weekday is in the set
func (d DaySet) Contains(w time.Weekday) bool {
	return d&(1<<uint(w)) != 0
}

// IsEmpty returns true if no weekday is in the set
func (d DaySet) IsEmpty() bool {
	return d == 0
}

// NewDaySet собирает маску из списка дней недели
func NewDaySet(days ...time.Weekday) DaySet {
	var d DaySet
	for _, w := range days {
		d |= 1 << uint(w)
	}
	return d
}

// Shift represents a recurring staffing definition: a day/time template
// that the schedule expander tiles into concrete slots.
// Read-only input for this service; owned by the admin CRUD service
type Shift struct {
	ID        int64
	TenantID  int64
	ServiceID int64
	Name      string

	DaysOfWeek          DaySet
	StartTime           types.TimeString // Локальное время начала окна
	EndTime             types.TimeString // Локальное время конца окна
	UnitDurationMinutes int              // Длительность одного слота
	DefaultCapacity     int              // Ёмкость слота по умолчанию
	Timezone            string           // IANA таймзона тенанта (например, "Europe/Moscow")
	IsActive            bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShiftStaff привязка сотрудника к смене с опциональными переопределениями
// ёмкости и длительности слота
type ShiftStaff struct {
	ShiftID                 int64
	StaffID                 int64
	CapacityOverride        *int
	DurationOverrideMinutes *int
}

// CapacityFor возвращает ёмкость слота для сотрудника с учетом переопределения
// Для staff == nil возвращает значение по умолчанию
func (s *Shift) CapacityFor(staff *ShiftStaff) int {
	if staff != nil && staff.CapacityOverride != nil && *staff.CapacityOverride > 0 {
		return *staff.CapacityOverride
	}
	return s.DefaultCapacity
}

// DurationFor возвращает длительность слота для сотрудника с учетом переопределения
func (s *Shift) DurationFor(staff *ShiftStaff) int {
	if staff != nil && staff.DurationOverrideMinutes != nil && *staff.DurationOverrideMinutes > 0 {
		return *staff.DurationOverrideMinutes
	}
	return s.UnitDurationMinutes
}

// Location резолвит таймзону смены; пустая строка трактуется как UTC
func (s *Shift) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}
