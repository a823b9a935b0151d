package handler

import (
	"testing"

	"pitchside/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(date, start, end string, external bool) models.Booking {
	return models.Booking{Date: date, StartTime: start, EndTime: end, External: external}
}

func TestFilterByDateRange(t *testing.T) {
	bookings := []models.Booking{
		booking("2026-09-01", "10:00", "11:00", false),
		booking("2026-09-05", "10:00", "11:00", false),
		booking("2026-09-10", "10:00", "11:00", true),
	}

	t.Run("inclusive range", func(t *testing.T) {
		filtered := filterByDateRange(bookings, "2026-09-01", "2026-09-05")
		require.Len(t, filtered, 2)
		assert.Equal(t, "2026-09-01", filtered[0].Date)
		assert.Equal(t, "2026-09-05", filtered[1].Date)
	})

	t.Run("missing start date disables the filter", func(t *testing.T) {
		assert.Len(t, filterByDateRange(bookings, "", "2026-09-05"), 3)
	})

	t.Run("missing end date disables the filter", func(t *testing.T) {
		assert.Len(t, filterByDateRange(bookings, "2026-09-01", ""), 3)
	})

	t.Run("empty result for a range with no bookings", func(t *testing.T) {
		assert.Empty(t, filterByDateRange(bookings, "2026-10-01", "2026-10-31"))
	})
}

func TestComputeStatistics(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		stats := computeStatistics(nil)
		assert.Equal(t, 0, stats.TotalBookings)
		assert.Equal(t, 0, stats.AverageDuration)
		assert.NotNil(t, stats.BookingsByDay)
		assert.NotNil(t, stats.BookingsByHour)
	})

	t.Run("counts and durations", func(t *testing.T) {
		stats := computeStatistics([]models.Booking{
			booking("2026-09-01", "10:00", "11:00", false), // 60m
			booking("2026-09-01", "18:00", "19:30", false), // 90m
			booking("2026-09-02", "10:00", "12:00", true),  // 120m
		})

		assert.Equal(t, 3, stats.TotalBookings)
		assert.Equal(t, 1, stats.ExternalBookings)
		assert.Equal(t, 2, stats.UserBookings)
		assert.Equal(t, map[string]int{"2026-09-01": 2, "2026-09-02": 1}, stats.BookingsByDay)
		assert.Equal(t, map[string]int{"10": 2, "18": 1}, stats.BookingsByHour)
		assert.Equal(t, 270, stats.TotalDuration)
		assert.Equal(t, 90, stats.AverageDuration)
	})

	t.Run("average is rounded, not truncated", func(t *testing.T) {
		stats := computeStatistics([]models.Booking{
			booking("2026-09-01", "10:00", "11:00", false), // 60m
			booking("2026-09-01", "12:00", "12:25", false), // 25m
		})
		// (60+25)/2 = 42.5 rounds up to 43.
		assert.Equal(t, 43, stats.AverageDuration)
	})
}

func TestSortNewestFirst(t *testing.T) {
	bookings := []models.Booking{
		booking("2026-09-01", "10:00", "11:00", false),
		booking("2026-09-02", "09:00", "10:00", false),
		booking("2026-09-02", "18:00", "19:00", false),
	}

	sortNewestFirst(bookings)

	assert.Equal(t, "2026-09-02", bookings[0].Date)
	assert.Equal(t, "18:00", bookings[0].StartTime)
	assert.Equal(t, "2026-09-02", bookings[1].Date)
	assert.Equal(t, "09:00", bookings[1].StartTime)
	assert.Equal(t, "2026-09-01", bookings[2].Date)
}

func TestIsPastDate(t *testing.T) {
	tests := []struct {
		name string
		date string
		want bool
	}{
		{"far future", "2999-01-01", false},
		{"far past", "2000-01-01", true},
		{"unparseable counts as past", "not-a-date", true},
		{"empty counts as past", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isPastDate(tt.date))
		})
	}
}
