package reservationlock

import "errors"

var (
	// ErrLockNotFound возвращается, когда холд не найден
	ErrLockNotFound = errors.New("reservationlock.repository: lock not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservationlock.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservationlock.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservationlock.repository: failed to scan row")
)
