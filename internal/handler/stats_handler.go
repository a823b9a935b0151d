package handler

import (
	"net/http"
	"pitchside/backend/internal/cache"
	"pitchside/backend/internal/database"
	"pitchside/backend/internal/models"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// VenueStatistics aggregates a venue's booking activity.
type VenueStatistics struct {
	TotalBookings    int            `json:"totalBookings"`
	ExternalBookings int            `json:"externalBookings"`
	UserBookings     int            `json:"userBookings"`
	BookingsByDay    map[string]int `json:"bookingsByDay"`
	BookingsByHour   map[string]int `json:"bookingsByHour"`
	TotalDuration    int            `json:"totalDuration"`   // minutes
	AverageDuration  int            `json:"averageDuration"` // minutes, rounded
}

// HistoryEntry is one booking in the history listing, with the booker
// resolved for user bookings.
type HistoryEntry struct {
	BookingResponse
	UserDetails *HistoryUser `json:"userDetails,omitempty"`
}

// HistoryUser is the minimal booker profile shown in history.
type HistoryUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// endregion

// filterByDateRange keeps bookings with startDate <= date <= endDate. Both
// bounds must be present for the filter to apply, matching the query contract.
func filterByDateRange(bookings []models.Booking, startDate, endDate string) []models.Booking {
	if startDate == "" || endDate == "" {
		return bookings
	}
	filtered := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Date >= startDate && b.Date <= endDate {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// computeStatistics aggregates counts and durations over a booking list.
func computeStatistics(bookings []models.Booking) VenueStatistics {
	stats := VenueStatistics{
		TotalBookings:  len(bookings),
		BookingsByDay:  make(map[string]int),
		BookingsByHour: make(map[string]int),
	}

	for i := range bookings {
		b := &bookings[i]
		if b.External {
			stats.ExternalBookings++
		} else {
			stats.UserBookings++
		}
		stats.BookingsByDay[b.Date]++
		if hour := b.StartHour(); hour != "" {
			stats.BookingsByHour[hour]++
		}
		stats.TotalDuration += b.DurationMinutes()
	}

	if stats.TotalBookings > 0 {
		stats.AverageDuration = int(float64(stats.TotalDuration)/float64(stats.TotalBookings) + 0.5)
	}
	return stats
}

// sortNewestFirst orders bookings by date, then start time, descending.
func sortNewestFirst(bookings []models.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date > bookings[j].Date
		}
		return bookings[i].StartTime > bookings[j].StartTime
	})
}

// GetVenueStatistics godoc
// @Summary      Booking statistics (owning admin only)
// @Description  Aggregates the venue's bookings: counts by day and start hour, durations, external/user split.
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Param        id        path  int    true  "Venue ID"
// @Param        startDate query string false "Range start (YYYY-MM-DD)"
// @Param        endDate   query string false "Range end (YYYY-MM-DD)"
// @Success      200 {object} VenueStatistics
// @Failure      403 {object} ErrorResponse "Not the venue owner"
// @Failure      404 {object} ErrorResponse "Venue not found"
// @Router       /venues/{id}/statistics [get]
func GetVenueStatistics(c *gin.Context) {
	venue := loadOwnedVenue(c, true)
	if venue == nil {
		return
	}

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	key := cache.StatsKey(venue.ID, startDate, endDate)
	var cached VenueStatistics
	if StatsCache.GetJSON(c.Request.Context(), key, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	stats := computeStatistics(filterByDateRange(venue.Bookings, startDate, endDate))
	StatsCache.SetJSON(c.Request.Context(), key, stats, 60*time.Second)

	c.JSON(http.StatusOK, stats)
}

// GetVenueHistory godoc
// @Summary      Booking history (owning admin only)
// @Description  Paginated booking history, newest first, with booker details for user bookings.
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Param        id        path  int    true  "Venue ID"
// @Param        startDate query string false "Range start (YYYY-MM-DD)"
// @Param        endDate   query string false "Range end (YYYY-MM-DD)"
// @Param        page      query int    false "Page number" default(1)
// @Param        limit     query int    false "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[HistoryEntry]
// @Failure      403 {object} ErrorResponse "Not the venue owner"
// @Failure      404 {object} ErrorResponse "Venue not found"
// @Router       /venues/{id}/history [get]
func GetVenueHistory(c *gin.Context) {
	venue := loadOwnedVenue(c, true)
	if venue == nil {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100 // Max limit
	}

	bookings := filterByDateRange(venue.Bookings, c.Query("startDate"), c.Query("endDate"))
	sortNewestFirst(bookings)

	total := len(bookings)
	startIndex := (page - 1) * limit
	if startIndex > total {
		startIndex = total
	}
	endIndex := startIndex + limit
	if endIndex > total {
		endIndex = total
	}
	pageBookings := bookings[startIndex:endIndex]

	entries := make([]HistoryEntry, 0, len(pageBookings))
	for i := range pageBookings {
		b := &pageBookings[i]
		entry := HistoryEntry{BookingResponse: newBookingResponse(*b)}
		if !b.External && b.BookedByID != nil {
			var user models.User
			if err := database.DB.First(&user, *b.BookedByID).Error; err == nil {
				entry.UserDetails = &HistoryUser{Name: user.Name, Email: user.Email}
			}
		}
		entries = append(entries, entry)
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(entries, int64(total), page, limit))
}
