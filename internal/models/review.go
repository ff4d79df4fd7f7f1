package models

import "time"

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// ReviewDB represents a reviews row in the database
type ReviewDB struct {
	ReviewID  int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	ListingID int64     `db:"listing_id"`
	Rating    int       `db:"rating"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}

// ReviewWithEmailDB is a review row joined with its author's email.
type ReviewWithEmailDB struct {
	ReviewDB
	UserEmail string `db:"user_email"`
}

// Review is the API representation of a review.
// swagger:model Review
type Review struct {
	ID        int64     `json:"id" example:"3"`
	UserID    int64     `json:"user_id" example:"2"`
	ListingID int64     `json:"listing_id" example:"1"`
	Rating    int       `json:"rating" example:"5"`
	Comment   string    `json:"comment" example:"Great event"`
	CreatedAt time.Time `json:"created_at"`
	UserEmail string    `json:"user_email,omitempty" example:"volunteer@example.com"`
}

// ToReview converts a row to its API shape.
func (r *ReviewDB) ToReview() Review {
	return Review{
		ID:        r.ReviewID,
		UserID:    r.UserID,
		ListingID: r.ListingID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// ToReview converts a joined row to its API shape, including the author's email.
func (r *ReviewWithEmailDB) ToReview() Review {
	out := r.ReviewDB.ToReview()
	out.UserEmail = r.UserEmail
	return out
}

// RatingSummary is the aggregate rating of a listing.
// swagger:model RatingSummary
type RatingSummary struct {
	// Mean rating rounded to one decimal; 0 when there are no reviews
	AverageRating float64 `json:"average_rating" example:"4.3"`
	ReviewCount   int     `json:"review_count" example:"3"`
}
