package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.VisitorCount < domain.MinVisitorCount || req.VisitorCount > domain.MaxVisitorCount {
		return fmt.Errorf("%w: visitorCount must be between %d and %d",
			ErrInvalidInput, domain.MinVisitorCount, domain.MaxVisitorCount)
	}

	if req.Status != "" && !req.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	if req.Status == domain.StatusCancelled {
		return fmt.Errorf("%w: booking cannot be created in cancelled status", ErrInvalidInput)
	}

	if req.LockID != nil && (req.HolderID == nil || *req.HolderID == "") {
		return fmt.Errorf("%w: holderID is required when lockID is provided", ErrInvalidInput)
	}

	return nil
}
