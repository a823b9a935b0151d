package handler

import (
	"log"
	"net/http"
	"pitchside/backend/internal/database"
	"pitchside/backend/internal/mailer"
	"pitchside/backend/internal/models"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type BookingInput struct {
	Date      string `json:"date" binding:"required"`      // "YYYY-MM-DD"
	StartTime string `json:"startTime" binding:"required"` // "HH:MM"
	EndTime   string `json:"endTime" binding:"required"`   // "HH:MM"
}

type BookingResponse struct {
	ID        uint   `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	External  bool   `json:"external"`
	BookedBy  *uint  `json:"bookedBy,omitempty"`
	GameID    *uint  `json:"gameId,omitempty"`
}

func newBookingResponse(b models.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Date:      b.Date,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		External:  b.External,
		BookedBy:  b.BookedByID,
		GameID:    b.GameID,
	}
}

// endregion

// isPastDate reports whether the "YYYY-MM-DD" date lies before today
// (server-local). Unparseable dates count as past so they get rejected.
func isPastDate(date string) bool {
	d, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return true
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	return d.Before(today)
}

// bookingDetails assembles the template fields for booking emails.
func bookingDetails(venue *models.Venue, b *models.Booking) mailer.BookingDetails {
	return mailer.BookingDetails{
		VenueName:    venue.Name,
		VenueAddress: venue.Address,
		VenueCity:    venue.Location,
		Date:         b.Date,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
	}
}

// AddVenueBooking godoc
// @Summary      Add an external booking (owning admin only)
// @Description  Reserves a time slot on the venue. Rejected for past dates, inverted intervals and overlaps.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int          true "Venue ID"
// @Param        input body BookingInput true "Booking Info"
// @Success      201 {object} BookingResponse
// @Failure      400 {object} ErrorResponse "Past date, invalid interval or overlap"
// @Failure      403 {object} ErrorResponse "Not the venue owner"
// @Failure      404 {object} ErrorResponse "Venue not found"
// @Router       /venues/{id}/bookings [post]
func AddVenueBooking(c *gin.Context) {
	adminID, _ := c.Get("userID")

	venue := loadOwnedVenue(c, true)
	if venue == nil {
		return
	}

	var input BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if isPastDate(input.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot book for past dates"})
		return
	}

	bookedBy := adminID.(uint)
	booking := models.Booking{
		VenueID:    venue.ID,
		Date:       input.Date,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		External:   true,
		BookedByID: &bookedBy,
	}

	if err := booking.ValidateInterval(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if conflict := models.FindConflict(venue.Bookings, &booking, 0); conflict != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Time slot overlaps with existing booking"})
		return
	}

	if err := database.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	StatsCache.Invalidate(c.Request.Context(), venue.ID)
	notifyAdminsOfBooking(venue, &booking)

	c.JSON(http.StatusCreated, newBookingResponse(booking))
}

// notifyAdminsOfBooking emails every admin about a new external booking.
// Best effort: failures are logged, never surfaced.
func notifyAdminsOfBooking(venue *models.Venue, booking *models.Booking) {
	var admins []models.User
	if err := database.DB.Where("role = ?", "admin").Find(&admins).Error; err != nil {
		log.Printf("Error fetching admins for booking notification: %v", err)
		return
	}
	emails := make([]string, 0, len(admins))
	for _, admin := range admins {
		emails = append(emails, admin.Email)
	}
	msg := mailer.NewBookingNotification(bookingDetails(venue, booking), "ro")
	if err := Mail.Send(emails, msg); err != nil {
		log.Printf("Error sending new booking notification for venue %d: %v", venue.ID, err)
	}
}

// GetVenueBookings godoc
// @Summary      List a venue's bookings
// @Description  Lists every booking on the venue. Any authenticated user may view.
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Venue ID"
// @Success      200 {array} BookingResponse
// @Failure      404 {object} ErrorResponse "Venue not found"
// @Router       /venues/{id}/bookings [get]
func GetVenueBookings(c *gin.Context) {
	venueID, _ := strconv.Atoi(c.Param("id"))

	var venue models.Venue
	if err := database.DB.Preload("Bookings").First(&venue, venueID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return
	}

	response := make([]BookingResponse, 0, len(venue.Bookings))
	for _, booking := range venue.Bookings {
		response = append(response, newBookingResponse(booking))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateVenueBooking godoc
// @Summary      Update a booking (owning admin only)
// @Description  Moves a booking to a new slot. Overlap validation excludes the booking being edited.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id        path int          true "Venue ID"
// @Param        bookingId path int          true "Booking ID"
// @Param        input     body BookingInput true "New slot"
// @Success      200 {object} BookingResponse
// @Failure      400 {object} ErrorResponse "Past date, invalid interval or overlap"
// @Failure      403 {object} ErrorResponse "Not the venue owner"
// @Failure      404 {object} ErrorResponse "Venue or booking not found"
// @Router       /venues/{id}/bookings/{bookingId} [put]
func UpdateVenueBooking(c *gin.Context) {
	venue := loadOwnedVenue(c, true)
	if venue == nil {
		return
	}

	bookingID, _ := strconv.Atoi(c.Param("bookingId"))
	var booking *models.Booking
	for i := range venue.Bookings {
		if venue.Bookings[i].ID == uint(bookingID) {
			booking = &venue.Bookings[i]
			break
		}
	}
	if booking == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	var input BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if isPastDate(input.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot book for past dates"})
		return
	}

	candidate := *booking
	candidate.Date = input.Date
	candidate.StartTime = input.StartTime
	candidate.EndTime = input.EndTime

	if err := candidate.ValidateInterval(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if conflict := models.FindConflict(venue.Bookings, &candidate, booking.ID); conflict != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Time slot overlaps with existing booking"})
		return
	}

	booking.Date = input.Date
	booking.StartTime = input.StartTime
	booking.EndTime = input.EndTime
	if err := database.DB.Save(booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		return
	}

	StatsCache.Invalidate(c.Request.Context(), venue.ID)

	// Confirmation email when a user's booking was moved.
	if booking.BookedByID != nil && !booking.External {
		var user models.User
		if err := database.DB.First(&user, *booking.BookedByID).Error; err == nil {
			msg := mailer.BookingConfirmation(bookingDetails(venue, booking), user.Language)
			if err := Mail.Send([]string{user.Email}, msg); err != nil {
				log.Printf("Error sending booking confirmation for booking %d: %v", booking.ID, err)
			}
		}
	}

	c.JSON(http.StatusOK, newBookingResponse(*booking))
}

// DeleteVenueBooking godoc
// @Summary      Delete a booking (owning admin only)
// @Description  Removes a booking from the venue, emailing the booker when user-linked.
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id        path int true "Venue ID"
// @Param        bookingId path int true "Booking ID"
// @Success      200 {object} map[string]bool "{"success": true}"
// @Failure      403 {object} ErrorResponse "Not the venue owner"
// @Failure      404 {object} ErrorResponse "Venue or booking not found"
// @Router       /venues/{id}/bookings/{bookingId} [delete]
func DeleteVenueBooking(c *gin.Context) {
	venue := loadOwnedVenue(c, false)
	if venue == nil {
		return
	}

	bookingID, _ := strconv.Atoi(c.Param("bookingId"))
	var booking models.Booking
	if err := database.DB.Where("venue_id = ?", venue.ID).First(&booking, bookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	if err := database.DB.Delete(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete booking"})
		return
	}

	StatsCache.Invalidate(c.Request.Context(), venue.ID)

	// Cancellation email when the booking belonged to a user.
	if booking.BookedByID != nil && !booking.External {
		var user models.User
		if err := database.DB.First(&user, *booking.BookedByID).Error; err == nil {
			msg := mailer.BookingCancellation(bookingDetails(venue, &booking), user.Language)
			if err := Mail.Send([]string{user.Email}, msg); err != nil {
				log.Printf("Error sending booking cancellation for booking %d: %v", booking.ID, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
