package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sbilibin2017/tapin/internal/models"
)

//go:generate mockgen -source=reviews.go -destination=mock_reviews_test.go -package=handlers

// ReviewCreator records reviews.
type ReviewCreator interface {
	Create(ctx context.Context, userID, listingID int64, rating *int, comment string) (*models.Review, error)
}

// ReviewLister lists the reviews of a listing.
type ReviewLister interface {
	List(ctx context.Context, listingID int64) ([]models.Review, error)
}

// RatingAggregator computes a listing's average rating.
type RatingAggregator interface {
	AverageRating(ctx context.Context, listingID int64) (*models.RatingSummary, error)
}

// ReviewRequest is the body of a new review
// swagger:model ReviewRequest
type ReviewRequest struct {
	// Whole number from 1 to 5
	// required: true
	Rating json.RawMessage `json:"rating" swaggertype:"integer" example:"5"`

	// default: Great event
	Comment string `json:"comment"`
}

// parseRating returns the rating when raw is a JSON integer, nil otherwise.
// Strings, fractions and booleans are not ratings.
func parseRating(raw json.RawMessage) *int {
	if len(raw) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	n, ok := v.(json.Number)
	if !ok {
		return nil
	}
	rating, err := strconv.Atoi(n.String())
	if err != nil {
		return nil
	}
	return &rating
}

// NewCreateReviewHandler returns an HTTP handler recording the caller's review of a listing.
// @Summary Review a listing
// @Description One review per user and listing. Rating must be an integer between 1 and 5.
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Listing ID"
// @Param request body handlers.ReviewRequest true "Review"
// @Success 201 {object} models.Review
// @Failure 400 {object} handlers.ErrorResponse "invalid rating / already reviewed"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "listing not found"
// @Router /listings/{id}/reviews [post]
// @Security BearerAuth
func NewCreateReviewHandler(svc ReviewCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := actorID(w, r)
		if !ok {
			return
		}
		listingID, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}

		var req ReviewRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		review, err := svc.Create(r.Context(), userID, listingID, parseRating(req.Rating), req.Comment)
		if err != nil {
			writeServiceError(w, err, "userID", userID, "listingID", listingID)
			return
		}

		writeJSON(w, http.StatusCreated, review)
	}
}

// NewListReviewsHandler returns an HTTP handler listing a listing's reviews.
// @Summary List reviews
// @Description Newest first, each with the reviewer's email.
// @Tags reviews
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {array} models.Review
// @Failure 404 {object} handlers.ErrorResponse "listing not found"
// @Router /listings/{id}/reviews [get]
func NewListReviewsHandler(svc ReviewLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listingID, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}

		reviews, err := svc.List(r.Context(), listingID)
		if err != nil {
			writeServiceError(w, err, "listingID", listingID)
			return
		}

		writeJSON(w, http.StatusOK, reviews)
	}
}

// NewAverageRatingHandler returns an HTTP handler with a listing's mean rating.
// @Summary Average rating
// @Description Mean rating rounded to one decimal. A listing without reviews reports 0 with count 0.
// @Tags reviews
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} models.RatingSummary
// @Failure 404 {object} handlers.ErrorResponse "listing not found"
// @Router /listings/{id}/average-rating [get]
func NewAverageRatingHandler(svc RatingAggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listingID, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}

		summary, err := svc.AverageRating(r.Context(), listingID)
		if err != nil {
			writeServiceError(w, err, "listingID", listingID)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}
