package expand_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Shift, error)
	ListStaff(ctx context.Context, shiftID int64) ([]*domain.ShiftStaff, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	DeleteByShiftAndDateRange(ctx context.Context, shiftID int64, from, to time.Time) (int64, error)
	BulkCreate(ctx context.Context, slots []*domain.Slot) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config конфигурация генератора расписания
// Передается явно при конструировании, а не через глобальное состояние
type Config struct {
	MaxExpansionDays int // Максимальная длина диапазона одной генерации
}
