package expand_schedule

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// window один под-интервал рабочего окна смены
type window struct {
	start types.TimeString
	end   types.TimeString
}

// tileWindow нарезает рабочее окно [start, end) на подряд идущие под-окна
// длительностью durationMinutes. Последний неполный кусок, выходящий за конец
// окна, отбрасывается - частичные слоты не создаются
func tileWindow(start, end types.TimeString, durationMinutes int) ([]window, error) {
	windows := make([]window, 0)

	current := start
	for current.IsBefore(end) {
		tileEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			// Вышли за пределы суток - дальше тайлить нечего
			break
		}
		if tileEnd.IsAfter(end) {
			break
		}

		windows = append(windows, window{start: current, end: tileEnd})
		current = tileEnd
	}

	return windows, nil
}

// buildSlots строит слоты смены для всех дат диапазона [startDate, endDate],
// попадающих в дни недели смены. Для смены с сотрудниками строится
// по одному независимому тайлингу на сотрудника (с его переопределениями),
// для смены без сотрудников - один тайлинг с дефолтами
func buildSlots(
	shift *domain.Shift,
	staff []*domain.ShiftStaff,
	startDate, endDate time.Time,
	loc *time.Location,
) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	// Тайлинги считаем один раз на вариант длительности, даты переиспользуют их
	type tiling struct {
		staffID  *int64
		capacity int
		windows  []window
	}

	tilings := make([]tiling, 0, len(staff))
	if len(staff) == 0 {
		windows, err := tileWindow(shift.StartTime, shift.EndTime, shift.DurationFor(nil))
		if err != nil {
			return nil, err
		}
		tilings = append(tilings, tiling{
			staffID:  nil,
			capacity: shift.CapacityFor(nil),
			windows:  windows,
		})
	} else {
		for _, st := range staff {
			windows, err := tileWindow(shift.StartTime, shift.EndTime, shift.DurationFor(st))
			if err != nil {
				return nil, err
			}
			staffID := st.StaffID
			tilings = append(tilings, tiling{
				staffID:  &staffID,
				capacity: shift.CapacityFor(st),
				windows:  windows,
			})
		}
	}

	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		if !shift.DaysOfWeek.Contains(date.Weekday()) {
			continue
		}

		for _, t := range tilings {
			for _, w := range t.windows {
				startsAt, endsAt, err := normalizeInstants(date, w.start, w.end, loc)
				if err != nil {
					return nil, err
				}

				slots = append(slots, &domain.Slot{
					TenantID:          shift.TenantID,
					ServiceID:         shift.ServiceID,
					ShiftID:           shift.ID,
					StaffID:           t.staffID,
					SlotDate:          date,
					StartTime:         w.start,
					EndTime:           w.end,
					StartsAt:          startsAt,
					EndsAt:            endsAt,
					TotalCapacity:     t.capacity,
					AvailableCapacity: t.capacity,
					CommittedCount:    0,
					IsOpen:            true,
				})
			}
		}
	}

	return slots, nil
}

// normalizeInstants вычисляет нормализованные UTC моменты начала и конца слота
// из календарной даты и локального времени стены в таймзоне смены.
// Вычисляется один раз при генерации, а не при каждом чтении
func normalizeInstants(date time.Time, start, end types.TimeString, loc *time.Location) (time.Time, time.Time, error) {
	startMinutes, err := start.TotalMinutes()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endMinutes, err := end.TotalMinutes()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	y, m, d := date.Date()
	startsAt := time.Date(y, m, d, startMinutes/60, startMinutes%60, 0, 0, loc).UTC()
	endsAt := time.Date(y, m, d, endMinutes/60, endMinutes%60, 0, 0, loc).UTC()

	return startsAt, endsAt, nil
}
