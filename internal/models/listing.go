package models

import (
	"strings"
	"time"
)

// Supported listing categories
const (
	CategoryCommunity   = "Community"
	CategoryEnvironment = "Environment"
	CategoryEducation   = "Education"
	CategoryHealth      = "Health"
	CategoryAnimals     = "Animals"
)

// Categories lists the accepted categories in display order.
var Categories = []string{
	CategoryCommunity,
	CategoryEnvironment,
	CategoryEducation,
	CategoryHealth,
	CategoryAnimals,
}

// NormalizeCategory returns the canonical spelling of a category name
// matched case-insensitively, and false when it is not a known category.
func NormalizeCategory(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, c := range Categories {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}

// ListingDB represents a listing row in the database
type ListingDB struct {
	ListingID   int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	Location    *string   `json:"location" db:"location"`
	Latitude    *float64  `json:"latitude" db:"latitude"`
	Longitude   *float64  `json:"longitude" db:"longitude"`
	Category    *string   `json:"category" db:"category"`
	ImageURL    *string   `json:"image_url" db:"image_url"`
	OwnerID     *int64    `json:"owner_id" db:"owner_id"` // nil for system-generated listings
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// IsOwnedBy reports whether userID owns the listing. Ownerless listings are owned by nobody.
func (l *ListingDB) IsOwnedBy(userID int64) bool {
	return l.OwnerID != nil && *l.OwnerID == userID
}

// Listing is the API representation of a listing.
// swagger:model Listing
type Listing struct {
	ID          int64     `json:"id" example:"1"`
	Title       string    `json:"title" example:"Park cleanup"`
	Description *string   `json:"description" example:"Help us clean the riverside park"`
	Location    *string   `json:"location" example:"Houston, TX"`
	Latitude    *float64  `json:"latitude" example:"29.7604"`
	Longitude   *float64  `json:"longitude" example:"-95.3698"`
	Category    *string   `json:"category" example:"Environment"`
	ImageURL    *string   `json:"image_url"`
	OwnerID     *int64    `json:"owner_id" example:"1"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToListing converts a row to its API shape.
func (l *ListingDB) ToListing() Listing {
	return Listing{
		ID:          l.ListingID,
		Title:       l.Title,
		Description: l.Description,
		Location:    l.Location,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		Category:    l.Category,
		ImageURL:    l.ImageURL,
		OwnerID:     l.OwnerID,
		CreatedAt:   l.CreatedAt,
	}
}

// ListingFilter narrows listing searches. Empty fields are ignored.
type ListingFilter struct {
	Category string // exact category, matched case-insensitively
	Text     string // substring of title or description
	Location string // substring of location
}

// ListingInput carries the writable fields of a listing.
// Nil pointers leave the stored value untouched on update.
type ListingInput struct {
	Title       *string
	Description *string
	Location    *string
	Latitude    *float64
	Longitude   *float64
	Category    *string
	ImageURL    *string
}
