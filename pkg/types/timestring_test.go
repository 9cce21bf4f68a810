package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "valid morning", input: "09:30", want: "09:30"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		{name: "invalid hour", input: "24:00", wantErr: true},
		{name: "invalid minute", input: "10:60", wantErr: true},
		{name: "missing colon", input: "0930", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	start, err := NewTimeStringFromString("09:00")
	require.NoError(t, err)

	end, err := start.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, "10:30", end.String())

	// Выход за пределы суток - ошибка
	late, err := NewTimeStringFromString("23:30")
	require.NoError(t, err)
	_, err = late.AddMinutes(60)
	assert.Error(t, err)
}

func TestTimeString_Ordering(t *testing.T) {
	a, err := NewTimeStringFromString("09:00")
	require.NoError(t, err)
	b, err := NewTimeStringFromString("17:00")
	require.NoError(t, err)

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:15"))
	assert.Equal(t, "10:15", ts.String())

	// Postgres TIME приходит как HH:MM:SS
	require.NoError(t, ts.Scan("10:15:00"))
	assert.Equal(t, "10:15", ts.String())

	require.NoError(t, ts.Scan([]byte("08:45")))
	assert.Equal(t, "08:45", ts.String())

	require.NoError(t, ts.Scan(time.Date(2026, 8, 24, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "14:30", ts.String())
}

func TestTimeString_TotalMinutes(t *testing.T) {
	ts, err := NewTimeStringFromString("10:45")
	require.NoError(t, err)

	minutes, err := ts.TotalMinutes()
	require.NoError(t, err)
	assert.Equal(t, 645, minutes)
}
