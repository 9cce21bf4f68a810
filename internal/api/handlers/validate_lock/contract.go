package validate_lock

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotService/internal/service/locks/models"
)

type LockService interface {
	Validate(ctx context.Context, lockID uuid.UUID, holderID string) (*models.ValidationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
