package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var details = BookingDetails{
	VenueName:    "Arena Central",
	VenueAddress: "Str. Victoriei 10",
	VenueCity:    "Cluj-Napoca",
	Date:         "2026-09-15",
	StartTime:    "18:00",
	EndTime:      "19:30",
}

func TestTemplates_LanguageSelection(t *testing.T) {
	tests := []struct {
		name     string
		render   func(BookingDetails, string) Message
		language string
		subject  string
	}{
		{"confirmation ro", BookingConfirmation, "ro", "Confirmare rezervare - Arena Central"},
		{"confirmation en", BookingConfirmation, "en", "Booking Confirmation - Arena Central"},
		{"cancellation ro", BookingCancellation, "ro", "Anulare rezervare - Arena Central"},
		{"cancellation en", BookingCancellation, "en", "Booking Cancellation - Arena Central"},
		{"reminder ro", BookingReminder, "ro", "Reminder rezervare - Arena Central"},
		{"reminder en", BookingReminder, "en", "Booking Reminder - Arena Central"},
		{"new booking ro", NewBookingNotification, "ro", "Rezervare nouă - Arena Central"},
		{"new booking en", NewBookingNotification, "en", "New Booking - Arena Central"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.render(details, tt.language)
			assert.Equal(t, tt.subject, msg.Subject)
			assert.Contains(t, msg.HTML, details.VenueName)
			assert.Contains(t, msg.HTML, details.Date)
			assert.Contains(t, msg.HTML, details.StartTime)
		})
	}
}

func TestTemplates_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	msg := BookingReminder(details, "de")
	assert.Equal(t, "Booking Reminder - Arena Central", msg.Subject)
	assert.Contains(t, msg.HTML, "You have a booking tomorrow")
}

func TestNewSMTP_FallsBackToLogMailer(t *testing.T) {
	m := NewSMTP("", "", "", "", "")
	_, ok := m.(LogMailer)
	assert.True(t, ok)
}
