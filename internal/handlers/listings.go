package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/tapin/internal/models"
)

//go:generate mockgen -source=listings.go -destination=mock_listings_test.go -package=handlers

// ListingLister searches listings.
type ListingLister interface {
	List(ctx context.Context, q, location string) ([]models.Listing, error)
}

// ListingGetter loads one listing.
type ListingGetter interface {
	Get(ctx context.Context, listingID int64) (*models.Listing, error)
}

// ListingCreator creates listings.
type ListingCreator interface {
	Create(ctx context.Context, ownerID int64, in models.ListingInput) (*models.Listing, error)
}

// ListingUpdater updates listings.
type ListingUpdater interface {
	Update(ctx context.Context, actorID, listingID int64, in models.ListingInput) (*models.Listing, error)
}

// ListingDeleter deletes listings.
type ListingDeleter interface {
	Delete(ctx context.Context, actorID, listingID int64) error
}

// ListingRequest is the writable part of a listing. Omitted fields are left
// unchanged on update.
// swagger:model ListingRequest
type ListingRequest struct {
	// required: true
	// default: Park cleanup
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	// enum: Community,Environment,Education,Health,Animals
	Category *string `json:"category"`
	ImageURL *string `json:"image_url"`
}

func (req ListingRequest) input() models.ListingInput {
	return models.ListingInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}
}

// NewListListingsHandler returns an HTTP handler listing volunteer opportunities.
// @Summary List listings
// @Description Newest first. q matching a category name filters by category, otherwise it searches title and description. location filters by substring.
// @Tags listings
// @Produce json
// @Param q query string false "Category or text"
// @Param location query string false "Location substring"
// @Success 200 {array} models.Listing
// @Router /listings [get]
func NewListListingsHandler(svc ListingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		listings, err := svc.List(r.Context(), query.Get("q"), query.Get("location"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, listings)
	}
}

// NewGetListingHandler returns an HTTP handler for a single listing.
// @Summary Get listing
// @Tags listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} models.Listing
// @Failure 404 {object} handlers.ErrorResponse "listing not found"
// @Router /listings/{id} [get]
func NewGetListingHandler(svc ListingGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listingID, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}

		listing, err := svc.Get(r.Context(), listingID)
		if err != nil {
			writeServiceError(w, err, "listingID", listingID)
			return
		}

		writeJSON(w, http.StatusOK, listing)
	}
}

// NewCreateListingHandler returns an HTTP handler creating a listing owned by the caller.
// @Summary Create listing
// @Tags listings
// @Accept json
// @Produce json
// @Param request body handlers.ListingRequest true "Listing"
// @Success 201 {object} models.Listing
// @Failure 400 {object} handlers.ErrorResponse "title required / invalid category"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /listings [post]
// @Security BearerAuth
func NewCreateListingHandler(svc ListingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := actorID(w, r)
		if !ok {
			return
		}

		var req ListingRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		listing, err := svc.Create(r.Context(), userID, req.input())
		if err != nil {
			writeServiceError(w, err, "userID", userID)
			return
		}

		writeJSON(w, http.StatusCreated, listing)
	}
}

// NewUpdateListingHandler returns an HTTP handler updating a listing.
// @Summary Update listing
// @Description Owner only. Omitted fields keep their value.
// @Tags listings
// @Accept json
// @Produce json
// @Param id path int true "Listing ID"
// @Param request body handlers.ListingRequest true "Fields to change"
// @Success 200 {object} models.Listing
// @Failure 400 {object} handlers.ErrorResponse "title required / invalid category"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "unauthorized - you don't own this listing"
// @Failure 404 {object} handlers.ErrorResponse "listing not found"
// @Router /listings/{id} [put]
// @Security BearerAuth
func NewUpdateListingHandler(svc ListingUpdater) http.HandlerFunc {
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

		var req ListingRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		listing, err := svc.Update(r.Context(), userID, listingID, req.input())
		if err != nil {
			writeServiceError(w, err, "userID", userID, "listingID", listingID)
			return
		}

		writeJSON(w, http.StatusOK, listing)
	}
}

// NewDeleteListingHandler returns an HTTP handler deleting a listing with its sign-ups and reviews.
// @Summary Delete listing
// @Tags listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} handlers.MessageResponse "deleted"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "unauthorized - you don't own this listing"
// @Failure 404 {object} handlers.ErrorResponse "listing not found"
// @Router /listings/{id} [delete]
// @Security BearerAuth
func NewDeleteListingHandler(svc ListingDeleter) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), userID, listingID); err != nil {
			writeServiceError(w, err, "userID", userID, "listingID", listingID)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "deleted"})
	}
}
