package models

import "gorm.io/gorm"

// Venue represents a physical location offering bookable time slots.
type Venue struct {
	gorm.Model
	Name        string `gorm:"size:255;not null"`
	Address     string `gorm:"size:512;not null"`
	Location    string `gorm:"size:255;not null;index"` // city/region, e.g. "Craiova"
	Description string

	Lat *float64
	Lng *float64

	ContactPhone   string `gorm:"size:50"`
	ContactEmail   string `gorm:"size:255"`
	ContactWebsite string `gorm:"size:512"`

	Facilities  []string `gorm:"serializer:json"` // e.g. ["Parking", "Showers"]
	SurfaceType string   `gorm:"size:100;index"`  // e.g. "Grass", "Artificial Turf"
	Size        string   `gorm:"size:100;index"`  // e.g. "Full Size", "Half Size"

	Price    float64 `gorm:"not null;default:0"`
	Currency string  `gorm:"size:10;not null;default:'RON'"`

	CreatedByID uint `gorm:"not null;index"`

	// A venue owns its bookings; deleting the venue removes them.
	Bookings []Booking `gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE"`
}
