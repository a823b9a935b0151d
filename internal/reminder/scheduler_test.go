package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTomorrowDate(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"mid-month", time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC), "2026-09-16"},
		{"month rollover", time.Date(2026, 9, 30, 8, 0, 0, 0, time.UTC), "2026-10-01"},
		{"year rollover", time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC), "2027-01-01"},
		{"leap day", time.Date(2028, 2, 28, 8, 0, 0, 0, time.UTC), "2028-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TomorrowDate(tt.now))
		})
	}
}

func TestScheduler_ShouldRun(t *testing.T) {
	config := DefaultSchedulerConfig()
	trigger := time.Date(2026, 9, 15, config.DailyHour, config.DailyMinute, 30, 0, time.UTC)

	t.Run("fires at the configured time", func(t *testing.T) {
		s := NewScheduler(config, nil, nil)
		assert.True(t, s.shouldRun(trigger))
	})

	t.Run("does not fire at other times", func(t *testing.T) {
		s := NewScheduler(config, nil, nil)
		assert.False(t, s.shouldRun(trigger.Add(5*time.Minute)))
		assert.False(t, s.shouldRun(trigger.Add(-1*time.Hour)))
	})

	t.Run("runs at most once per day", func(t *testing.T) {
		s := NewScheduler(config, nil, nil)
		s.lastRunDate = trigger.Format("2006-01-02")
		assert.False(t, s.shouldRun(trigger))
		assert.False(t, s.shouldRun(trigger.Add(30*time.Second)))

		// A new day resets the guard.
		assert.True(t, s.shouldRun(trigger.AddDate(0, 0, 1)))
	})
}

func TestNewScheduler_DefaultsCheckInterval(t *testing.T) {
	s := NewScheduler(SchedulerConfig{DailyHour: 8}, nil, nil)
	assert.Equal(t, 1*time.Minute, s.config.CheckInterval)
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	s := NewScheduler(DefaultSchedulerConfig(), nil, nil)
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.Stop()
	s.Stop() // must not close stopCh twice
}
