package locks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// LockRepository интерфейс репозитория резервационных локов
type LockRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReservationLock, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	SumHeldBySlots(ctx context.Context, slotIDs []int64, now time.Time) (map[int64]int, error)
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
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
