package reconcile_capacities

import (
	"context"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListIDs(ctx context.Context) ([]int64, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error)
	UpdateCounters(ctx context.Context, id int64, committed, available int) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	SumVisitorsBySlot(ctx context.Context, slotID int64) (int, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

// MetricsCollector интерфейс для метрик ёмкости
type MetricsCollector interface {
	IncCapacityClamp()
}
