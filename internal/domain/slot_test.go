package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlot_ApplyCapacityDelta(t *testing.T) {
	tests := []struct {
		name          string
		committed     int
		total         int
		delta         int
		wantCommitted int
		wantAvailable int
		wantClamped   bool
	}{
		{name: "charge within capacity", committed: 2, total: 10, delta: 3, wantCommitted: 5, wantAvailable: 5},
		{name: "refund within capacity", committed: 5, total: 10, delta: -2, wantCommitted: 3, wantAvailable: 7},
		{name: "charge to full", committed: 8, total: 10, delta: 2, wantCommitted: 10, wantAvailable: 0},
		{name: "refund to empty", committed: 2, total: 10, delta: -2, wantCommitted: 0, wantAvailable: 10},
		{name: "clamp below zero", committed: 1, total: 10, delta: -3, wantCommitted: 0, wantAvailable: 10, wantClamped: true},
		{name: "clamp above total", committed: 9, total: 10, delta: 4, wantCommitted: 10, wantAvailable: 0, wantClamped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := &Slot{
				TotalCapacity:     tt.total,
				CommittedCount:    tt.committed,
				AvailableCapacity: tt.total - tt.committed,
			}

			committed, available, clamped := slot.ApplyCapacityDelta(tt.delta)

			assert.Equal(t, tt.wantCommitted, committed)
			assert.Equal(t, tt.wantAvailable, available)
			assert.Equal(t, tt.wantClamped, clamped)
			// Инвариант суммы всегда восстанавливается
			assert.Equal(t, tt.total, committed+available)
		})
	}
}

func TestSlot_EffectiveAvailable(t *testing.T) {
	slot := &Slot{TotalCapacity: 10, CommittedCount: 4, AvailableCapacity: 6}

	assert.Equal(t, 6, slot.EffectiveAvailable(0))
	assert.Equal(t, 2, slot.EffectiveAvailable(4))
	assert.Equal(t, 0, slot.EffectiveAvailable(6))
	// Холдов больше, чем доступно - не уходим в минус
	assert.Equal(t, 0, slot.EffectiveAvailable(9))
}

func TestSlot_CountersConsistent(t *testing.T) {
	assert.True(t, (&Slot{TotalCapacity: 10, CommittedCount: 4, AvailableCapacity: 6}).CountersConsistent())
	assert.True(t, (&Slot{TotalCapacity: 10, CommittedCount: 0, AvailableCapacity: 10}).CountersConsistent())

	assert.False(t, (&Slot{TotalCapacity: 10, CommittedCount: 4, AvailableCapacity: 5}).CountersConsistent())
	assert.False(t, (&Slot{TotalCapacity: 10, CommittedCount: -1, AvailableCapacity: 11}).CountersConsistent())
	assert.False(t, (&Slot{TotalCapacity: 10, CommittedCount: 12, AvailableCapacity: -2}).CountersConsistent())
}

func TestSlot_IsPast(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	future := &Slot{StartsAt: now.Add(time.Hour)}
	assert.False(t, future.IsPast(now))

	started := &Slot{StartsAt: now}
	assert.True(t, started.IsPast(now))

	past := &Slot{StartsAt: now.Add(-time.Hour)}
	assert.True(t, past.IsPast(now))
}
