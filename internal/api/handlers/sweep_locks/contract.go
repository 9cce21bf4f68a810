package sweep_locks

import (
	"context"

	"github.com/m04kA/SMC-SlotService/internal/service/locks/models"
)

type LockService interface {
	Sweep(ctx context.Context) (*models.SweepResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
