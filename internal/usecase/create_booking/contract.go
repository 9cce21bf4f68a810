package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error)
	UpdateCounters(ctx context.Context, id int64, committed, available int) error
}

// LockRepository интерфейс репозитория резервационных локов
type LockRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReservationLock, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SumHeldBySlot(ctx context.Context, slotID int64, now time.Time, excludeID *uuid.UUID) (int, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider источник текущего времени, выносится в интерфейс для тестов
type TimeProvider interface {
	Now() time.Time
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
