package expand_schedule

import "time"

// Request модель запроса на генерацию слотов смены
type Request struct {
	ShiftID   int64     // ID смены (staffing definition)
	StartDate time.Time // Начало диапазона (включительно, без времени)
	EndDate   time.Time // Конец диапазона (включительно, без времени)
}

// Response модель ответа с количеством созданных слотов
type Response struct {
	ShiftID      int64
	SlotsCreated int   // Количество созданных слотов
	SlotsPurged  int64 // Количество удаленных старых слотов диапазона
}
