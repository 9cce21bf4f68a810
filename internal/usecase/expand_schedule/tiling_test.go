package expand_schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func TestTileWindow(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		duration int
		want     []string // пары "start-end"
	}{
		{
			name:  "even tiling",
			start: "09:00", end: "11:00", duration: 60,
			want: []string{"09:00-10:00", "10:00-11:00"},
		},
		{
			name:  "partial tail dropped",
			start: "09:00", end: "10:30", duration: 60,
			want: []string{"09:00-10:00"},
		},
		{
			name:  "duration longer than window",
			start: "09:00", end: "09:30", duration: 60,
			want: []string{},
		},
		{
			name:  "thirty minute units",
			start: "10:00", end: "11:30", duration: 30,
			want: []string{"10:00-10:30", "10:30-11:00", "11:00-11:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows, err := tileWindow(mustTime(t, tt.start), mustTime(t, tt.end), tt.duration)
			require.NoError(t, err)

			got := make([]string, len(windows))
			for i, w := range windows {
				got[i] = w.start.String() + "-" + w.end.String()
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildSlots_DefaultTiling(t *testing.T) {
	shift := &domain.Shift{
		ID:                  1,
		TenantID:            10,
		ServiceID:           20,
		DaysOfWeek:          domain.NewDaySet(time.Monday, time.Wednesday, time.Friday),
		StartTime:           mustTime(t, "09:00"),
		EndTime:             mustTime(t, "11:00"),
		UnitDurationMinutes: 60,
		DefaultCapacity:     4,
		IsActive:            true,
	}

	// Понедельник 2026-09-07 .. воскресенье 2026-09-13: Пн, Ср, Пт
	startDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	slots, err := buildSlots(shift, nil, startDate, endDate, time.UTC)
	require.NoError(t, err)

	// 3 дня * 2 слота в день
	require.Len(t, slots, 6)

	for _, slot := range slots {
		assert.Equal(t, shift.TenantID, slot.TenantID)
		assert.Equal(t, shift.ServiceID, slot.ServiceID)
		assert.Equal(t, shift.ID, slot.ShiftID)
		assert.Nil(t, slot.StaffID)
		assert.Equal(t, 4, slot.TotalCapacity)
		assert.Equal(t, 4, slot.AvailableCapacity)
		assert.Equal(t, 0, slot.CommittedCount)
		assert.True(t, slot.IsOpen)
		assert.True(t, shift.DaysOfWeek.Contains(slot.SlotDate.Weekday()))
	}

	first := slots[0]
	assert.Equal(t, "09:00", first.StartTime.String())
	assert.Equal(t, "10:00", first.EndTime.String())
	assert.Equal(t, time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC), first.StartsAt)
	assert.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), first.EndsAt)
}

func TestBuildSlots_PerStaffOverrides(t *testing.T) {
	shift := &domain.Shift{
		ID:                  1,
		TenantID:            10,
		ServiceID:           20,
		DaysOfWeek:          domain.NewDaySet(time.Tuesday),
		StartTime:           mustTime(t, "10:00"),
		EndTime:             mustTime(t, "12:00"),
		UnitDurationMinutes: 60,
		DefaultCapacity:     3,
		IsActive:            true,
	}

	capOverride := 1
	durOverride := 30
	staff := []*domain.ShiftStaff{
		{ShiftID: 1, StaffID: 100},
		{ShiftID: 1, StaffID: 200, CapacityOverride: &capOverride, DurationOverrideMinutes: &durOverride},
	}

	// Один вторник
	date := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)

	slots, err := buildSlots(shift, staff, date, date, time.UTC)
	require.NoError(t, err)

	// Сотрудник 100: 2 часовых слота, сотрудник 200: 4 получасовых
	require.Len(t, slots, 6)

	byStaff := make(map[int64][]int)
	for _, slot := range slots {
		require.NotNil(t, slot.StaffID)
		byStaff[*slot.StaffID] = append(byStaff[*slot.StaffID], slot.TotalCapacity)
	}

	assert.Equal(t, []int{3, 3}, byStaff[100])
	assert.Equal(t, []int{1, 1, 1, 1}, byStaff[200])
}

func TestBuildSlots_TimezoneNormalization(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	shift := &domain.Shift{
		ID:                  1,
		TenantID:            10,
		ServiceID:           20,
		DaysOfWeek:          domain.NewDaySet(time.Monday),
		StartTime:           mustTime(t, "09:00"),
		EndTime:             mustTime(t, "10:00"),
		UnitDurationMinutes: 60,
		DefaultCapacity:     2,
		IsActive:            true,
		Timezone:            "Europe/Moscow",
	}

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	slots, err := buildSlots(shift, nil, date, date, loc)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	// 09:00 MSK == 06:00 UTC
	assert.Equal(t, time.Date(2026, 9, 7, 6, 0, 0, 0, time.UTC), slots[0].StartsAt)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
}
