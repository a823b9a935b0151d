package mailer

import "fmt"

// BookingDetails carries the fields the templates interpolate.
type BookingDetails struct {
	VenueName    string
	VenueAddress string
	VenueCity    string
	Date         string
	StartTime    string
	EndTime      string
}

func detailsListRO(d BookingDetails) string {
	return fmt.Sprintf(`<ul>
  <li>Teren: %s</li>
  <li>Data: %s</li>
  <li>Ora: %s - %s</li>
  <li>Adresă: %s, %s</li>
</ul>`, d.VenueName, d.Date, d.StartTime, d.EndTime, d.VenueAddress, d.VenueCity)
}

func detailsListEN(d BookingDetails) string {
	return fmt.Sprintf(`<ul>
  <li>Venue: %s</li>
  <li>Date: %s</li>
  <li>Time: %s - %s</li>
  <li>Address: %s, %s</li>
</ul>`, d.VenueName, d.Date, d.StartTime, d.EndTime, d.VenueAddress, d.VenueCity)
}

// BookingConfirmation renders the confirmation email in the user's language
// ("ro" or anything else for English).
func BookingConfirmation(d BookingDetails, language string) Message {
	if language == "ro" {
		return Message{
			Subject: fmt.Sprintf("Confirmare rezervare - %s", d.VenueName),
			HTML: "<h2>Rezervarea ta a fost confirmată!</h2><p>Detalii rezervare:</p>" +
				detailsListRO(d) + "<p>Te așteptăm!</p>",
		}
	}
	return Message{
		Subject: fmt.Sprintf("Booking Confirmation - %s", d.VenueName),
		HTML: "<h2>Your booking has been confirmed!</h2><p>Booking details:</p>" +
			detailsListEN(d) + "<p>We look forward to seeing you!</p>",
	}
}

// BookingCancellation renders the cancellation email.
func BookingCancellation(d BookingDetails, language string) Message {
	if language == "ro" {
		return Message{
			Subject: fmt.Sprintf("Anulare rezervare - %s", d.VenueName),
			HTML: "<h2>Rezervarea ta a fost anulată</h2><p>Detalii rezervare:</p>" +
				detailsListRO(d),
		}
	}
	return Message{
		Subject: fmt.Sprintf("Booking Cancellation - %s", d.VenueName),
		HTML: "<h2>Your booking has been cancelled</h2><p>Booking details:</p>" +
			detailsListEN(d),
	}
}

// BookingReminder renders the day-before reminder email.
func BookingReminder(d BookingDetails, language string) Message {
	if language == "ro" {
		return Message{
			Subject: fmt.Sprintf("Reminder rezervare - %s", d.VenueName),
			HTML: "<h2>Reminder rezervare</h2><p>Ai o rezervare mâine:</p>" +
				detailsListRO(d) + "<p>Te așteptăm!</p>",
		}
	}
	return Message{
		Subject: fmt.Sprintf("Booking Reminder - %s", d.VenueName),
		HTML: "<h2>Booking reminder</h2><p>You have a booking tomorrow:</p>" +
			detailsListEN(d) + "<p>We look forward to seeing you!</p>",
	}
}

// NewBookingNotification renders the email sent to venue admins when an
// external booking is added.
func NewBookingNotification(d BookingDetails, language string) Message {
	if language == "ro" {
		return Message{
			Subject: fmt.Sprintf("Rezervare nouă - %s", d.VenueName),
			HTML: "<h2>O rezervare nouă a fost adăugată</h2><p>Detalii rezervare:</p>" +
				detailsListRO(d),
		}
	}
	return Message{
		Subject: fmt.Sprintf("New Booking - %s", d.VenueName),
		HTML: "<h2>A new booking has been added</h2><p>Booking details:</p>" +
			detailsListEN(d),
	}
}
