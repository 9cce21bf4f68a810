package locks

import "errors"

var (
	// ErrLockNotFound возвращается, когда лок не найден
	ErrLockNotFound = errors.New("service locks: lock not found")

	// ErrHolderMismatch возвращается, когда лок принадлежит другому держателю
	ErrHolderMismatch = errors.New("service locks: lock belongs to another holder")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("service locks: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service locks: internal error")
)
