package query_held

import (
	"context"

	"github.com/m04kA/SMC-SlotService/internal/service/locks/models"
)

type LockService interface {
	QueryHeld(ctx context.Context, slotIDs []int64) (*models.HeldCapacityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
