package expand_schedule

import (
	"context"

	expandSchedule "github.com/m04kA/SMC-SlotService/internal/usecase/expand_schedule"
)

type ExpandScheduleUseCase interface {
	Execute(ctx context.Context, req *expandSchedule.Request) (*expandSchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
