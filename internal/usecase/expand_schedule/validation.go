package expand_schedule

import (
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxExpansionDays int) error {
	if req.ShiftID <= 0 {
		return fmt.Errorf("%w: shiftID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidRange)
	}

	days := int(req.EndDate.Sub(req.StartDate).Hours()/24) + 1
	if days > maxExpansionDays {
		return fmt.Errorf("%w: %d days requested, limit is %d", ErrRangeTooLarge, days, maxExpansionDays)
	}

	return nil
}

// validateShift проверяет, что определение смены пригодно для генерации слотов
func validateShift(shift *domain.Shift) error {
	if !shift.IsActive {
		return ErrShiftInactive
	}

	if shift.DaysOfWeek.IsEmpty() {
		return fmt.Errorf("%w: empty day set", ErrInvalidShiftDefinition)
	}

	if err := shift.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidShiftDefinition, err)
	}
	if err := shift.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid end time: %v", ErrInvalidShiftDefinition, err)
	}
	if !shift.StartTime.IsBefore(shift.EndTime) {
		return fmt.Errorf("%w: start time %s is not before end time %s",
			ErrInvalidShiftDefinition, shift.StartTime, shift.EndTime)
	}

	if shift.UnitDurationMinutes < domain.MinUnitDurationMinutes ||
		shift.UnitDurationMinutes > domain.MaxUnitDurationMinutes {
		return fmt.Errorf("%w: unit duration %d minutes is out of range",
			ErrInvalidShiftDefinition, shift.UnitDurationMinutes)
	}

	if shift.DefaultCapacity <= 0 {
		return fmt.Errorf("%w: default capacity must be positive", ErrInvalidShiftDefinition)
	}

	return nil
}
