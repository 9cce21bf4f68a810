package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	SlotID       int64
	TenantID     int64
	UserID       int64
	VisitorCount int
	Status       domain.BookingStatus // Начальный статус; пустой - pending
	Notes        *string

	// Лок, под которым оформлялось бронирование (опционально).
	// Если передан, он валидируется и потребляется в той же транзакции
	LockID   *uuid.UUID
	HolderID *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID    int64
	SlotID       int64
	Status       domain.BookingStatus
	VisitorCount int
	CreatedAt    time.Time
}
