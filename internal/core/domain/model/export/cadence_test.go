package export_test

import (
	"path/filepath"
	"testing"
	"time"

	"scheduler/internal/core/domain/model/export"

	"github.com/stretchr/testify/assert"
)

func TestNextDueTime_Production(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		hour     int
		expected time.Time
	}{
		{
			name:     "earlier hour schedules today",
			now:      time.Date(2026, 3, 10, 1, 59, 59, 999, time.UTC),
			hour:     2,
			expected: time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC),
		},
		{
			name:     "same hour schedules tomorrow",
			now:      time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC),
			hour:     2,
			expected: time.Date(2026, 3, 11, 2, 0, 0, 0, time.UTC),
		},
		{
			name:     "later hour schedules tomorrow",
			now:      time.Date(2026, 3, 10, 23, 15, 0, 0, time.UTC),
			hour:     0,
			expected: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "month rollover",
			now:      time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC),
			hour:     6,
			expected: time.Date(2026, 4, 1, 6, 0, 0, 0, time.UTC),
		},
		{
			name:     "non UTC clock is normalized",
			now:      time.Date(2026, 3, 10, 2, 30, 0, 0, time.FixedZone("CET", 3600)),
			hour:     2,
			expected: time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due := export.NextDueTime(tt.now, tt.hour, export.CadenceProduction)
			assert.Equal(t, tt.expected, due)
		})
	}
}

func TestNextDueTime_AcceleratedOverridesHour(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 42, 0, time.UTC)

	due := export.NextDueTime(now, 2, export.CadenceAccelerated)

	assert.Equal(t, time.Date(2026, 3, 10, 14, 31, 0, 0, time.UTC), due)
	assert.Equal(t, "14:31", export.DueTimeLabel(now, due, export.CadenceAccelerated))
}

func TestNextDueTime_AcceleratedHourRollover(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 59, 10, 0, time.UTC)

	due := export.NextDueTime(now, 2, export.CadenceAccelerated)

	assert.Equal(t, time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC), due)
}

func TestDueTimeLabel(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, "today at 2", export.DueTimeLabel(now, export.NextDueTime(now, 2, export.CadenceProduction), export.CadenceProduction))
	assert.Equal(t, "tomorrow at 0", export.DueTimeLabel(now, export.NextDueTime(now, 0, export.CadenceProduction), export.CadenceProduction))
}

func TestCadence_IsExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("production", func(t *testing.T) {
		c := export.CadenceProduction
		assert.True(t, c.IsExpired(now.Add(-60*24*time.Hour-time.Minute), now))
		assert.False(t, c.IsExpired(now.Add(-60*24*time.Hour), now), "boundary is retained")
		assert.False(t, c.IsExpired(now.Add(-59*24*time.Hour), now))
	})

	t.Run("accelerated", func(t *testing.T) {
		c := export.CadenceAccelerated
		assert.True(t, c.IsExpired(now.Add(-6*time.Minute), now))
		assert.False(t, c.IsExpired(now.Add(-5*time.Minute), now), "boundary is retained")
		assert.False(t, c.IsExpired(now.Add(-4*time.Minute), now))
	})
}

func TestRunDirectory(t *testing.T) {
	startedAt := time.Date(2026, 3, 10, 9, 5, 7, 0, time.UTC)

	assert.Equal(t, filepath.Join("backup", "2026-03-10T09-05-07", "db"), export.RunDirectory("backup", startedAt))
}
