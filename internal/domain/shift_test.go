package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaySet(t *testing.T) {
	days := NewDaySet(time.Monday, time.Wednesday, time.Friday)

	assert.True(t, days.Contains(time.Monday))
	assert.True(t, days.Contains(time.Wednesday))
	assert.True(t, days.Contains(time.Friday))

	assert.False(t, days.Contains(time.Sunday))
	assert.False(t, days.Contains(time.Tuesday))
	assert.False(t, days.Contains(time.Saturday))

	assert.False(t, days.IsEmpty())
	assert.True(t, DaySet(0).IsEmpty())
}

func TestShift_CapacityFor(t *testing.T) {
	shift := &Shift{DefaultCapacity: 4, UnitDurationMinutes: 60}

	assert.Equal(t, 4, shift.CapacityFor(nil))

	override := 2
	staff := &ShiftStaff{CapacityOverride: &override}
	assert.Equal(t, 2, shift.CapacityFor(staff))

	assert.Equal(t, 4, shift.CapacityFor(&ShiftStaff{}))
}

func TestShift_DurationFor(t *testing.T) {
	shift := &Shift{DefaultCapacity: 4, UnitDurationMinutes: 60}

	assert.Equal(t, 60, shift.DurationFor(nil))

	override := 30
	staff := &ShiftStaff{DurationOverrideMinutes: &override}
	assert.Equal(t, 30, shift.DurationFor(staff))
}

func TestShift_Location(t *testing.T) {
	shift := &Shift{Timezone: "Europe/Moscow"}
	loc, err := shift.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())

	bad := &Shift{Timezone: "Mars/Olympus"}
	_, err = bad.Location()
	assert.Error(t, err)
}
