package create_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotClosed возвращается при попытке бронирования закрытого слота
	ErrSlotClosed = errors.New("create_booking: slot is closed")

	// ErrLockNotFound возвращается, когда переданный лок не существует
	ErrLockNotFound = errors.New("create_booking: reservation lock not found")

	// ErrLockExpired возвращается, когда переданный лок уже истек
	ErrLockExpired = errors.New("create_booking: reservation lock has expired")

	// ErrLockHolderMismatch возвращается, когда лок принадлежит другому держателю
	ErrLockHolderMismatch = errors.New("create_booking: reservation lock belongs to another holder")

	// ErrLockSlotMismatch возвращается, когда лок выдан на другой слот
	ErrLockSlotMismatch = errors.New("create_booking: reservation lock was issued for another slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
