package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	ListByFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
}

// LockRepository интерфейс репозитория резервационных локов
type LockRepository interface {
	SumHeldBySlots(ctx context.Context, slotIDs []int64, now time.Time) (map[int64]int, error)
}

// TimeProvider источник текущего времени, выносится в интерфейс для тестов
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
