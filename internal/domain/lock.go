package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReservationLock короткоживущий холд ёмкости слота на время оформления заказа.
// Не является бронированием: учитывается при расчете эффективной доступности,
// но никогда не изменяет счетчики самого слота
type ReservationLock struct {
	ID        uuid.UUID
	SlotID    int64
	HolderID  string // Непрозрачный идентификатор держателя (токен checkout-сессии)
	Quantity  int    // Количество удерживаемых мест
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired returns true if the lock has expired at the given moment
// Sweep and readers must agree on this single expiry test
func (l *ReservationLock) IsExpired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}

// BelongsTo returns true if the lock is owned by the given holder
func (l *ReservationLock) BelongsTo(holderID string) bool {
	return l.HolderID == holderID
}
