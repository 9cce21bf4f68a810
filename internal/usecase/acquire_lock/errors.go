package acquire_lock

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("acquire_lock: slot not found")

	// ErrSlotClosed возвращается при попытке захолдить закрытый слот
	ErrSlotClosed = errors.New("acquire_lock: slot is closed")

	// ErrSlotInPast возвращается при попытке захолдить уже начавшийся слот
	ErrSlotInPast = errors.New("acquire_lock: slot is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("acquire_lock: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("acquire_lock: internal error")
)
