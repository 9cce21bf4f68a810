package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	createBooking "github.com/m04kA/SMC-SlotService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID       int64   `json:"slotId"`
	TenantID     int64   `json:"tenantId"`
	VisitorCount int     `json:"visitorCount"`
	Status       string  `json:"status,omitempty"` // Начальный статус; пустой - pending
	Notes        *string `json:"notes,omitempty"`

	LockID   *string `json:"lockId,omitempty"`
	HolderID *string `json:"holderId,omitempty"`
}

// CapacityExceededResponse ответ на превышение доступной ёмкости
// Несет фактический остаток, чтобы клиент мог предложить меньшее количество
type CapacityExceededResponse struct {
	Error     string `json:"error"`
	SlotID    int64  `json:"slotId"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64  `json:"id"`
	SlotID       int64  `json:"slotId"`
	Status       string `json:"status"`
	VisitorCount int    `json:"visitorCount"`
	CreatedAt    string `json:"createdAt"` // ISO 8601 format
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	req := &createBooking.Request{
		SlotID:       r.SlotID,
		TenantID:     r.TenantID,
		UserID:       userID,
		VisitorCount: r.VisitorCount,
		Status:       domain.BookingStatus(r.Status),
		Notes:        r.Notes,
		HolderID:     r.HolderID,
	}

	if r.LockID != nil {
		lockID, err := uuid.Parse(*r.LockID)
		if err != nil {
			return nil, err
		}
		req.LockID = &lockID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.BookingID,
		SlotID:       resp.SlotID,
		Status:       string(resp.Status),
		VisitorCount: resp.VisitorCount,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
