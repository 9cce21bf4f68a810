package reconcile_capacities

import (
	reconcileCapacities "github.com/m04kA/SMC-SlotService/internal/usecase/reconcile_capacities"
)

// ReconcileRequest HTTP request model
type ReconcileRequest struct {
	SlotIDs []int64 `json:"slotIds,omitempty"` // Пустой список - все слоты
}

// CorrectionResponse одно примененное исправление счетчиков
type CorrectionResponse struct {
	SlotID       int64 `json:"slotId"`
	OldCommitted int   `json:"oldCommitted"`
	NewCommitted int   `json:"newCommitted"`
	OldAvailable int   `json:"oldAvailable"`
	NewAvailable int   `json:"newAvailable"`
}

// ReconcileResponse HTTP response model
type ReconcileResponse struct {
	ScannedCount int                  `json:"scannedCount"`
	FailedCount  int                  `json:"failedCount"`
	Corrections  []CorrectionResponse `json:"corrections"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReconcileRequest) ToUseCaseRequest() *reconcileCapacities.Request {
	return &reconcileCapacities.Request{
		SlotIDs: r.SlotIDs,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reconcileCapacities.Response) *ReconcileResponse {
	corrections := make([]CorrectionResponse, len(resp.Corrections))
	for i, c := range resp.Corrections {
		corrections[i] = CorrectionResponse{
			SlotID:       c.SlotID,
			OldCommitted: c.OldCommitted,
			NewCommitted: c.NewCommitted,
			OldAvailable: c.OldAvailable,
			NewAvailable: c.NewAvailable,
		}
	}

	return &ReconcileResponse{
		ScannedCount: resp.ScannedCount,
		FailedCount:  resp.FailedCount,
		Corrections:  corrections,
	}
}
