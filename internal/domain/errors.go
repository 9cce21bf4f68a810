package domain

import "fmt"

// CapacityExceededError возвращается, когда запрошенное количество мест
// превышает эффективную доступность слота. Несет фактическое количество
// оставшихся мест, чтобы вызывающая сторона могла показать "осталось N"
type CapacityExceededError struct {
	SlotID    int64
	Requested int
	Available int // Эффективная доступность на момент проверки
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("slot %d: requested %d exceeds effective available capacity %d",
		e.SlotID, e.Requested, e.Available)
}
