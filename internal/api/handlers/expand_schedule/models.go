package expand_schedule

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	expandSchedule "github.com/m04kA/SMC-SlotService/internal/usecase/expand_schedule"
)

// ExpandScheduleRequest HTTP request model
type ExpandScheduleRequest struct {
	StartDate string `json:"startDate"` // "2026-09-01"
	EndDate   string `json:"endDate"`   // "2026-09-30"
}

// ExpandScheduleResponse HTTP response model
type ExpandScheduleResponse struct {
	ShiftID      int64 `json:"shiftId"`
	SlotsCreated int   `json:"slotsCreated"`
	SlotsPurged  int64 `json:"slotsPurged"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ExpandScheduleRequest) ToUseCaseRequest(shiftID int64) (*expandSchedule.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &expandSchedule.Request{
		ShiftID:   shiftID,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *expandSchedule.Response) *ExpandScheduleResponse {
	return &ExpandScheduleResponse{
		ShiftID:      resp.ShiftID,
		SlotsCreated: resp.SlotsCreated,
		SlotsPurged:  resp.SlotsPurged,
	}
}
