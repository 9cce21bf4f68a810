package acquire_lock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error)
}

// LockRepository интерфейс репозитория резервационных локов
type LockRepository interface {
	Create(ctx context.Context, lock *domain.ReservationLock) error
	SumHeldBySlot(ctx context.Context, slotID int64, now time.Time, excludeID *uuid.UUID) (int, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider источник текущего времени, выносится в интерфейс для тестов
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider поверх системных часов
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

// Config параметры TTL локов
type Config struct {
	DefaultTTLSeconds int
	MaxTTLSeconds     int
}
