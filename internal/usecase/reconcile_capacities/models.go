package reconcile_capacities

import "github.com/m04kA/SMC-SlotService/internal/domain"

// Request модель запроса на реконсиляцию счетчиков
type Request struct {
	SlotIDs []int64 // Конкретные слоты; пустой список - все слоты
}

// Response модель ответа с результатами реконсиляции
type Response struct {
	ScannedCount int                         // Количество просканированных слотов
	FailedCount  int                         // Количество слотов, которые не удалось обработать
	Corrections  []domain.CapacityCorrection // Примененные исправления (до/после)
}
