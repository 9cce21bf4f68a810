package acquire_lock

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxTTLSeconds int) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.HolderID) == "" {
		return fmt.Errorf("%w: holderID is required", ErrInvalidInput)
	}

	if req.Quantity < domain.MinLockQuantity || req.Quantity > domain.MaxLockQuantity {
		return fmt.Errorf("%w: quantity must be between %d and %d",
			ErrInvalidInput, domain.MinLockQuantity, domain.MaxLockQuantity)
	}

	if req.TTLSeconds != nil {
		if *req.TTLSeconds < domain.MinLockTTLSeconds || *req.TTLSeconds > maxTTLSeconds {
			return fmt.Errorf("%w: ttlSeconds must be between %d and %d",
				ErrInvalidInput, domain.MinLockTTLSeconds, maxTTLSeconds)
		}
	}

	return nil
}
