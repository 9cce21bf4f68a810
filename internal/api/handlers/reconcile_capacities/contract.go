package reconcile_capacities

import (
	"context"

	reconcileCapacities "github.com/m04kA/SMC-SlotService/internal/usecase/reconcile_capacities"
)

type ReconcileCapacitiesUseCase interface {
	Execute(ctx context.Context, req *reconcileCapacities.Request) (*reconcileCapacities.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
