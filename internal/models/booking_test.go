package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(date, start, end string) Booking {
	return Booking{Date: date, StartTime: start, EndTime: end}
}

func TestBooking_Overlaps(t *testing.T) {
	tests := []struct {
		name      string
		existing  Booking
		candidate Booking
		overlap   bool
	}{
		{
			name:      "candidate starts inside existing",
			existing:  slot("2026-09-01", "10:00", "11:00"),
			candidate: slot("2026-09-01", "10:30", "11:30"),
			overlap:   true,
		},
		{
			name:      "candidate ends inside existing",
			existing:  slot("2026-09-01", "10:00", "11:00"),
			candidate: slot("2026-09-01", "09:30", "10:30"),
			overlap:   true,
		},
		{
			name:      "candidate contains existing",
			existing:  slot("2026-09-01", "10:00", "11:00"),
			candidate: slot("2026-09-01", "09:00", "12:00"),
			overlap:   true,
		},
		{
			name:      "existing contains candidate",
			existing:  slot("2026-09-01", "09:00", "12:00"),
			candidate: slot("2026-09-01", "10:00", "11:00"),
			overlap:   true,
		},
		{
			name:      "equal intervals conflict",
			existing:  slot("2026-09-01", "10:00", "11:00"),
			candidate: slot("2026-09-01", "10:00", "11:00"),
			overlap:   true,
		},
		{
			name:      "touching boundary is allowed (half-open)",
			existing:  slot("2026-09-01", "10:00", "11:00"),
			candidate: slot("2026-09-01", "11:00", "12:00"),
			overlap:   false,
		},
		{
			name:      "candidate right before existing",
			existing:  slot("2026-09-01", "10:00", "11:00"),
			candidate: slot("2026-09-01", "09:00", "10:00"),
			overlap:   false,
		},
		{
			name:      "same times on different dates never conflict",
			existing:  slot("2026-09-01", "10:00", "11:00"),
			candidate: slot("2026-09-02", "10:00", "11:00"),
			overlap:   false,
		},
		{
			name:      "half-hour granularity",
			existing:  slot("2026-09-01", "18:00", "19:30"),
			candidate: slot("2026-09-01", "19:00", "20:00"),
			overlap:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlap, tt.candidate.Overlaps(&tt.existing))
			// Overlap is symmetric.
			assert.Equal(t, tt.overlap, tt.existing.Overlaps(&tt.candidate))
		})
	}
}

func TestFindConflict(t *testing.T) {
	existing := []Booking{
		slot("2026-09-01", "10:00", "11:00"),
		slot("2026-09-01", "14:00", "16:00"),
		slot("2026-09-02", "10:00", "11:00"),
	}
	existing[0].ID = 1
	existing[1].ID = 2
	existing[2].ID = 3

	t.Run("free slot is accepted", func(t *testing.T) {
		candidate := slot("2026-09-01", "11:00", "12:00")
		assert.Nil(t, FindConflict(existing, &candidate, 0))
	})

	t.Run("overlapping slot reports the conflicting booking", func(t *testing.T) {
		candidate := slot("2026-09-01", "15:00", "17:00")
		conflict := FindConflict(existing, &candidate, 0)
		require.NotNil(t, conflict)
		assert.Equal(t, uint(2), conflict.ID)
	})

	t.Run("external flag does not matter", func(t *testing.T) {
		withExternal := append([]Booking{}, existing...)
		withExternal[0].External = true
		candidate := slot("2026-09-01", "10:30", "11:30")
		require.NotNil(t, FindConflict(withExternal, &candidate, 0))
	})

	t.Run("edited booking does not conflict with itself", func(t *testing.T) {
		candidate := slot("2026-09-01", "10:15", "10:45")
		require.NotNil(t, FindConflict(existing, &candidate, 0))
		assert.Nil(t, FindConflict(existing, &candidate, 1))
	})

	t.Run("exclusion still catches other overlaps", func(t *testing.T) {
		candidate := slot("2026-09-01", "10:30", "14:30")
		conflict := FindConflict(existing, &candidate, 1)
		require.NotNil(t, conflict)
		assert.Equal(t, uint(2), conflict.ID)
	})
}

func TestBooking_ValidateInterval(t *testing.T) {
	tests := []struct {
		name    string
		booking Booking
		wantErr bool
	}{
		{"valid interval", slot("2026-09-01", "10:00", "11:30"), false},
		{"zero-length interval", slot("2026-09-01", "10:00", "10:00"), true},
		{"inverted interval", slot("2026-09-01", "11:00", "10:00"), true},
		{"malformed start", slot("2026-09-01", "abc", "11:00"), true},
		{"out-of-range hour", slot("2026-09-01", "25:00", "26:00"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.booking.ValidateInterval()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInterval)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBooking_DurationMinutes(t *testing.T) {
	tests := []struct {
		name    string
		booking Booking
		want    int
	}{
		{"ninety minutes", slot("2026-09-01", "18:00", "19:30"), 90},
		{"zero length", slot("2026-09-01", "18:00", "18:00"), 0},
		{"malformed start", slot("2026-09-01", "bad", "19:30"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.booking.DurationMinutes())
		})
	}
}

func TestBooking_StartHour(t *testing.T) {
	tests := []struct {
		name    string
		booking Booking
		want    string
	}{
		{"evening slot", slot("2026-09-01", "18:30", "19:30"), "18"},
		{"zero-padded morning", slot("2026-09-01", "09:00", "10:00"), "09"},
		{"malformed time", Booking{StartTime: "bad"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.booking.StartHour())
		})
	}
}

func TestBooking_MatchesGame(t *testing.T) {
	creator := uint(7)
	game := Game{
		Date:        "2026-09-01",
		StartTime:   "18:00",
		EndTime:     "19:00",
		CreatedByID: creator,
	}

	matching := slot("2026-09-01", "18:00", "19:00")
	matching.BookedByID = &creator

	t.Run("structural match", func(t *testing.T) {
		assert.True(t, matching.MatchesGame(&game))
	})

	t.Run("external bookings never match", func(t *testing.T) {
		b := matching
		b.External = true
		assert.False(t, b.MatchesGame(&game))
	})

	t.Run("different booker does not match", func(t *testing.T) {
		other := uint(8)
		b := matching
		b.BookedByID = &other
		assert.False(t, b.MatchesGame(&game))
	})

	t.Run("different slot does not match", func(t *testing.T) {
		b := matching
		b.StartTime = "17:00"
		assert.False(t, b.MatchesGame(&game))
	})
}
