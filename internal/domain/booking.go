package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCheckedIn BookingStatus = "checked_in"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// ConsumesCapacity returns true if a booking in this status counts
// against slot capacity
func (s BookingStatus) ConsumesCapacity() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsValid returns true if the status is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Booking represents a confirmed demand for slot capacity
// Bookings are ground truth; slot counters are a cache of an aggregate over them
type Booking struct {
	ID           int64
	SlotID       int64
	TenantID     int64
	UserID       int64
	VisitorCount int // Количество мест, занимаемых бронированием
	Status       BookingStatus

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConsumesCapacity returns true if the booking currently counts against
// slot capacity
func (b *Booking) ConsumesCapacity() bool {
	return b.Status.ConsumesCapacity()
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}
