package models

import (
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// ErrInvalidInterval is returned when a booking's end does not come after its start.
var ErrInvalidInterval = errors.New("end time must be after start time")

// Booking is a reserved time interval on a venue. External bookings are entered
// by the venue admin and have no associated game; user bookings are created
// alongside a game and point back at it through GameID.
type Booking struct {
	gorm.Model
	VenueID   uint   `gorm:"not null;index"`
	Date      string `gorm:"size:10;not null;index"` // "YYYY-MM-DD"
	StartTime string `gorm:"size:5;not null"`        // "HH:MM"
	EndTime   string `gorm:"size:5;not null"`        // "HH:MM"
	External  bool   `gorm:"not null;default:false"`

	BookedByID *uint `gorm:"index"`
	GameID     *uint `gorm:"index"`
}

// minutesOfDay converts an "HH:MM" string to minutes since midnight.
// Malformed strings map to -1, which can never overlap a valid interval.
func minutesOfDay(hhmm string) int {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return -1
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return -1
	}
	minutes, err := strconv.Atoi(m)
	if err != nil {
		return -1
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return -1
	}
	return hours*60 + minutes
}

// ValidateInterval rejects zero-length and inverted intervals.
func (b *Booking) ValidateInterval() error {
	start := minutesOfDay(b.StartTime)
	end := minutesOfDay(b.EndTime)
	if start < 0 || end < 0 || end <= start {
		return ErrInvalidInterval
	}
	return nil
}

// Overlaps reports whether two bookings collide. Bookings on different dates
// never overlap. Times are half-open intervals [start, end), so a booking
// ending at 11:00 does not collide with one starting at 11:00.
func (b *Booking) Overlaps(other *Booking) bool {
	if b.Date != other.Date {
		return false
	}
	thisStart := minutesOfDay(b.StartTime)
	thisEnd := minutesOfDay(b.EndTime)
	otherStart := minutesOfDay(other.StartTime)
	otherEnd := minutesOfDay(other.EndTime)

	return thisStart < otherEnd && thisEnd > otherStart
}

// FindConflict returns the first existing booking the candidate overlaps with,
// or nil if the candidate can be inserted. excludeID skips a booking by its
// own ID so updates don't conflict with themselves; pass 0 on insert.
// External and user bookings are checked alike.
func FindConflict(existing []Booking, candidate *Booking, excludeID uint) *Booking {
	for i := range existing {
		if excludeID != 0 && existing[i].ID == excludeID {
			continue
		}
		if candidate.Overlaps(&existing[i]) {
			return &existing[i]
		}
	}
	return nil
}

// MatchesGame reports whether the booking structurally matches a game's slot.
// Kept as a fallback for bookings created before the GameID link existed.
func (b *Booking) MatchesGame(g *Game) bool {
	return !b.External &&
		b.Date == g.Date &&
		b.StartTime == g.StartTime &&
		b.EndTime == g.EndTime &&
		b.BookedByID != nil && *b.BookedByID == g.CreatedByID
}

// DurationMinutes returns the booking length in minutes, or 0 when the
// interval is malformed.
func (b *Booking) DurationMinutes() int {
	start := minutesOfDay(b.StartTime)
	end := minutesOfDay(b.EndTime)
	if start < 0 || end < 0 || end < start {
		return 0
	}
	return end - start
}

// StartHour returns the "HH" part of the start time for per-hour statistics.
func (b *Booking) StartHour() string {
	h, _, ok := strings.Cut(b.StartTime, ":")
	if !ok {
		return ""
	}
	return h
}
