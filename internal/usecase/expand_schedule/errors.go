package expand_schedule

import "errors"

var (
	// ErrShiftNotFound возвращается, когда смена не найдена
	ErrShiftNotFound = errors.New("expand_schedule: shift not found")

	// ErrShiftInactive возвращается при попытке сгенерировать слоты неактивной смены
	ErrShiftInactive = errors.New("expand_schedule: shift is inactive")

	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("expand_schedule: invalid date range")

	// ErrRangeTooLarge возвращается, когда диапазон превышает лимит конфигурации
	ErrRangeTooLarge = errors.New("expand_schedule: date range is too large")

	// ErrInvalidShiftDefinition возвращается, когда определение смены не позволяет
	// построить ни одного слота (пустое окно, нулевая длительность, кривая таймзона)
	ErrInvalidShiftDefinition = errors.New("expand_schedule: invalid shift definition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("expand_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("expand_schedule: internal error")
)
