package release_lock

import (
	"context"

	"github.com/google/uuid"
)

type LockService interface {
	Release(ctx context.Context, lockID uuid.UUID, holderID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
