package handler

import (
	"net/http"
	"pitchside/backend/internal/database"
	"pitchside/backend/internal/models"
	"strconv"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type CoordinatesInput struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type ContactInfoInput struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

type VenueInput struct {
	Name        string            `json:"name" binding:"required"`
	Address     string            `json:"address" binding:"required"`
	Location    string            `json:"location" binding:"required"`
	Description string            `json:"description"`
	Coordinates *CoordinatesInput `json:"coordinates"`
	ContactInfo *ContactInfoInput `json:"contactInfo"`
	Facilities  []string          `json:"facilities"`
	SurfaceType string            `json:"surfaceType"`
	Size        string            `json:"size"`
	Price       float64           `json:"price"`
	Currency    string            `json:"currency"`
}

type VenueResponse struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Address     string            `json:"address"`
	Location    string            `json:"location"`
	Description string            `json:"description"`
	Coordinates *CoordinatesInput `json:"coordinates,omitempty"`
	ContactInfo ContactInfoInput  `json:"contactInfo"`
	Facilities  []string          `json:"facilities"`
	SurfaceType string            `json:"surfaceType"`
	Size        string            `json:"size"`
	Price       float64           `json:"price"`
	Currency    string            `json:"currency"`
	CreatedBy   uint              `json:"createdBy"`
}

func newVenueResponse(venue models.Venue) VenueResponse {
	resp := VenueResponse{
		ID:          venue.ID,
		Name:        venue.Name,
		Address:     venue.Address,
		Location:    venue.Location,
		Description: venue.Description,
		ContactInfo: ContactInfoInput{
			Phone:   venue.ContactPhone,
			Email:   venue.ContactEmail,
			Website: venue.ContactWebsite,
		},
		Facilities:  venue.Facilities,
		SurfaceType: venue.SurfaceType,
		Size:        venue.Size,
		Price:       venue.Price,
		Currency:    venue.Currency,
		CreatedBy:   venue.CreatedByID,
	}
	if venue.Lat != nil && venue.Lng != nil {
		resp.Coordinates = &CoordinatesInput{Lat: venue.Lat, Lng: venue.Lng}
	}
	return resp
}

// endregion

// loadOwnedVenue fetches the venue and enforces that the caller created it.
// Writes the error response itself and returns nil on failure.
func loadOwnedVenue(c *gin.Context, preloadBookings bool) *models.Venue {
	adminID, _ := c.Get("userID")
	venueID, _ := strconv.Atoi(c.Param("id"))

	query := database.DB
	if preloadBookings {
		query = query.Preload("Bookings")
	}

	var venue models.Venue
	if err := query.First(&venue, venueID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return nil
	}
	if venue.CreatedByID != adminID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only manage venues you created"})
		return nil
	}
	return &venue
}

// GetVenues godoc
// @Summary      List venues
// @Description  Lists venues with optional filters. Admins only see venues they created.
// @Tags         venues
// @Produce      json
// @Param        location    query string false "Filter by city/region"
// @Param        surfaceType query string false "Filter by surface type"
// @Param        size        query string false "Filter by size class"
// @Success      200 {array} VenueResponse
// @Router       /venues [get]
func GetVenues(c *gin.Context) {
	query := database.DB.Model(&models.Venue{})

	if location := c.Query("location"); location != "" {
		query = query.Where("location = ?", location)
	}
	if surfaceType := c.Query("surfaceType"); surfaceType != "" {
		query = query.Where("surface_type = ?", surfaceType)
	}
	if size := c.Query("size"); size != "" {
		query = query.Where("size = ?", size)
	}

	// Admins browse their own venues only; regular users see everything.
	if isAdmin, _ := c.Get("isAdmin"); isAdmin == true {
		userID, _ := c.Get("userID")
		query = query.Where("created_by_id = ?", userID)
	}

	var venues []models.Venue
	if err := query.Order("name ASC").Find(&venues).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve venues"})
		return
	}

	response := make([]VenueResponse, 0, len(venues))
	for _, venue := range venues {
		response = append(response, newVenueResponse(venue))
	}
	c.JSON(http.StatusOK, response)
}

// GetVenueByID godoc
// @Summary      Get a venue by ID
// @Description  Gets full details for a single venue. Any authenticated user may view.
// @Tags         venues
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Venue ID"
// @Success      200 {object} VenueResponse
// @Failure      404 {object} ErrorResponse "Venue not found"
// @Router       /venues/{id} [get]
func GetVenueByID(c *gin.Context) {
	venueID, _ := strconv.Atoi(c.Param("id"))

	var venue models.Venue
	if err := database.DB.First(&venue, venueID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return
	}

	c.JSON(http.StatusOK, newVenueResponse(venue))
}

// CreateVenue godoc
// @Summary      Create a venue (admin only)
// @Description  Creates a new venue owned by the calling admin.
// @Tags         venues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body VenueInput true "Venue Info"
// @Success      201 {object} VenueResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse "Admin access required"
// @Router       /venues [post]
func CreateVenue(c *gin.Context) {
	adminID, _ := c.Get("userID")

	var input VenueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	venue := models.Venue{
		Name:        input.Name,
		Address:     input.Address,
		Location:    input.Location,
		Description: input.Description,
		Facilities:  input.Facilities,
		SurfaceType: input.SurfaceType,
		Size:        input.Size,
		Price:       input.Price,
		Currency:    input.Currency,
		CreatedByID: adminID.(uint),
	}
	if venue.Currency == "" {
		venue.Currency = "RON"
	}
	// Coordinates only count when both halves are present.
	if input.Coordinates != nil && input.Coordinates.Lat != nil && input.Coordinates.Lng != nil {
		venue.Lat = input.Coordinates.Lat
		venue.Lng = input.Coordinates.Lng
	}
	if input.ContactInfo != nil {
		venue.ContactPhone = input.ContactInfo.Phone
		venue.ContactEmail = input.ContactInfo.Email
		venue.ContactWebsite = input.ContactInfo.Website
	}

	if err := database.DB.Create(&venue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create venue"})
		return
	}

	c.JSON(http.StatusCreated, newVenueResponse(venue))
}

// UpdateVenue godoc
// @Summary      Update a venue (owning admin only)
// @Description  Updates the details of a venue created by the caller.
// @Tags         venues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int        true "Venue ID"
// @Param        input body VenueInput true "New Venue Info"
// @Success      200 {object} VenueResponse
// @Failure      403 {object} ErrorResponse "Not the venue owner"
// @Failure      404 {object} ErrorResponse "Venue not found"
// @Router       /venues/{id} [put]
func UpdateVenue(c *gin.Context) {
	venue := loadOwnedVenue(c, false)
	if venue == nil {
		return
	}

	var input VenueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	venue.Name = input.Name
	venue.Address = input.Address
	venue.Location = input.Location
	venue.Description = input.Description
	venue.Facilities = input.Facilities
	venue.SurfaceType = input.SurfaceType
	venue.Size = input.Size
	venue.Price = input.Price
	if input.Currency != "" {
		venue.Currency = input.Currency
	}
	venue.Lat, venue.Lng = nil, nil
	if input.Coordinates != nil && input.Coordinates.Lat != nil && input.Coordinates.Lng != nil {
		venue.Lat = input.Coordinates.Lat
		venue.Lng = input.Coordinates.Lng
	}
	if input.ContactInfo != nil {
		venue.ContactPhone = input.ContactInfo.Phone
		venue.ContactEmail = input.ContactInfo.Email
		venue.ContactWebsite = input.ContactInfo.Website
	}

	if err := database.DB.Save(venue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update venue"})
		return
	}

	c.JSON(http.StatusOK, newVenueResponse(*venue))
}

// DeleteVenue godoc
// @Summary      Delete a venue (owning admin only)
// @Description  Deletes a venue created by the caller, cascading its bookings.
// @Tags         venues
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Venue ID"
// @Success      200 {object} map[string]bool "{"success": true}"
// @Failure      403 {object} ErrorResponse "Not the venue owner"
// @Failure      404 {object} ErrorResponse "Venue not found"
// @Router       /venues/{id} [delete]
func DeleteVenue(c *gin.Context) {
	venue := loadOwnedVenue(c, false)
	if venue == nil {
		return
	}

	if err := database.DB.Select("Bookings").Delete(venue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete venue"})
		return
	}

	StatsCache.Invalidate(c.Request.Context(), venue.ID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
