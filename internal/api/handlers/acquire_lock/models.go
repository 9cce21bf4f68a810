package acquire_lock

import (
	"time"

	acquireLock "github.com/m04kA/SMC-SlotService/internal/usecase/acquire_lock"
)

// AcquireLockRequest HTTP request model
type AcquireLockRequest struct {
	SlotID     int64  `json:"slotId"`
	HolderID   string `json:"holderId"`
	Quantity   int    `json:"quantity"`
	TTLSeconds *int   `json:"ttlSeconds,omitempty"`
}

// LockResponse HTTP response model
type LockResponse struct {
	LockID    string `json:"lockId"`
	SlotID    int64  `json:"slotId"`
	Quantity  int    `json:"quantity"`
	ExpiresAt string `json:"expiresAt"` // ISO 8601 format
}

// CapacityExceededResponse ответ на превышение доступной ёмкости
type CapacityExceededResponse struct {
	Error     string `json:"error"`
	SlotID    int64  `json:"slotId"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AcquireLockRequest) ToUseCaseRequest() *acquireLock.Request {
	return &acquireLock.Request{
		SlotID:     r.SlotID,
		HolderID:   r.HolderID,
		Quantity:   r.Quantity,
		TTLSeconds: r.TTLSeconds,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *acquireLock.Response) *LockResponse {
	return &LockResponse{
		LockID:    resp.LockID.String(),
		SlotID:    resp.SlotID,
		Quantity:  resp.Quantity,
		ExpiresAt: resp.ExpiresAt.Format(time.RFC3339),
	}
}
