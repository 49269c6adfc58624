package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a tenant's one-time score for a property they have leased.
// Unique per (property_id, tenant_id), enforced by index.
type Rating struct {
	ID         uuid.UUID `json:"id" db:"id"`
	PropertyID uuid.UUID `json:"property_id" db:"property_id"`
	TenantID   uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Rating     int       `json:"rating" db:"rating"`
	Review     *string   `json:"review,omitempty" db:"review"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// RatingWithTenant joins the rater's name for public property listings.
type RatingWithTenant struct {
	Rating
	TenantName string `json:"tenant_name" db:"tenant_name"`
}

// RatingWithProperty joins property title/location for "my ratings" views.
type RatingWithProperty struct {
	Rating
	PropertyTitle    string `json:"property_title" db:"property_title"`
	PropertyLocation string `json:"property_location" db:"property_location"`
}

// RatingSummary is the aggregate served on the public property page.
// AverageRating is the arithmetic mean rounded to one decimal, 0 when no
// ratings exist.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}

// RateableProperty is a property the tenant has leased but not yet rated.
type RateableProperty struct {
	PropertyID uuid.UUID `json:"property_id"`
	Title      string    `json:"title"`
	Location   string    `json:"location"`
}
