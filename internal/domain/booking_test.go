package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_ConsumesCapacity(t *testing.T) {
	assert.True(t, StatusPending.ConsumesCapacity())
	assert.True(t, StatusConfirmed.ConsumesCapacity())
	assert.True(t, StatusCheckedIn.ConsumesCapacity())
	assert.True(t, StatusCompleted.ConsumesCapacity())

	assert.False(t, StatusCancelled.ConsumesCapacity())
	assert.False(t, BookingStatus("unknown").ConsumesCapacity())
}

func TestBookingStatus_IsValid(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusConfirmed, StatusCheckedIn, StatusCompleted, StatusCancelled} {
		assert.True(t, s.IsValid(), "status %s", s)
	}
	assert.False(t, BookingStatus("no_show").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBooking_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())

	assert.False(t, (&Booking{Status: StatusCheckedIn}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeCancelled())
}
