package domain

// Default configuration values
const (
	DefaultLockTTLSeconds = 120 // Время жизни холда по умолчанию (~2 минуты на checkout)
	DefaultCapacity       = 1
)

// Business validation constants
const (
	MinLockTTLSeconds = 5
	MaxLockTTLSeconds = 900 // 15 минут

	MinLockQuantity = 1
	MaxLockQuantity = 100

	MinVisitorCount = 1
	MaxVisitorCount = 100

	MinUnitDurationMinutes = 5
	MaxUnitDurationMinutes = 480 // 8 часов

	MaxExpansionDays = 366 // Максимальный диапазон одной генерации расписания

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ConsumingStatuses список статусов, занимающих ёмкость слота
// Используется при подсчете занятых мест и в реконсиляции
var ConsumingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCheckedIn,
	StatusCompleted,
}
