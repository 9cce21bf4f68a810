package acquire_lock

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на захват резервационного лока
type Request struct {
	SlotID     int64
	HolderID   string // Непрозрачный идентификатор держателя (токен checkout-сессии)
	Quantity   int    // Количество удерживаемых мест
	TTLSeconds *int   // Время жизни лока; nil - дефолт из конфигурации
}

// Response модель ответа с созданным локом
type Response struct {
	LockID    uuid.UUID
	SlotID    int64
	Quantity  int
	ExpiresAt time.Time
}
