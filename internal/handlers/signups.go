package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/tapin/internal/models"
)

//go:generate mockgen -source=signups.go -destination=mock_signups_test.go -package=handlers

// SignUpCreator records a volunteer's sign-up.
type SignUpCreator interface {
	Create(ctx context.Context, userID, listingID int64, message string) (*models.SignUp, error)
}

// SignUpLister lists the sign-ups of a listing.
type SignUpLister interface {
	ListForListing(ctx context.Context, actorID, listingID int64) ([]models.SignUp, error)
}

// SignUpStatusUpdater transitions sign-ups.
type SignUpStatusUpdater interface {
	UpdateStatus(ctx context.Context, actorID, signUpID int64, status string) (*models.SignUp, error)
}

// SignUpRequest is the optional body of a sign-up
// swagger:model SignUpRequest
type SignUpRequest struct {
	// default: count me in
	Message string `json:"message"`
}

// SignUpStatusRequest requests a status change
// swagger:model SignUpStatusRequest
type SignUpStatusRequest struct {
	// required: true
	// enum: accepted,declined,cancelled
	Status string `json:"status"`
}

// NewCreateSignUpHandler returns an HTTP handler signing the caller up for a listing.
// @Summary Sign up for a listing
// @Description Creates a pending sign-up. A user can sign up for a listing only once, whatever became of the earlier sign-up.
// @Tags signups
// @Accept json
// @Produce json
// @Param id path int true "Listing ID"
// @Param request body handlers.SignUpRequest false "Optional message"
// @Success 201 {object} models.SignUp
// @Failure 400 {object} handlers.ErrorResponse "already signed up for this listing"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "listing not found"
// @Router /listings/{id}/signup [post]
// @Security BearerAuth
func NewCreateSignUpHandler(svc SignUpCreator) http.HandlerFunc {
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

		var req SignUpRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		signUp, err := svc.Create(r.Context(), userID, listingID, req.Message)
		if err != nil {
			writeServiceError(w, err, "userID", userID, "listingID", listingID)
			return
		}

		writeJSON(w, http.StatusCreated, signUp)
	}
}

// NewListSignUpsHandler returns an HTTP handler listing a listing's sign-ups for its owner.
// @Summary List sign-ups of a listing
// @Description Owner only. Newest first, each with the volunteer's email.
// @Tags signups
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {array} models.SignUp
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "unauthorized - you don't own this listing"
// @Failure 404 {object} handlers.ErrorResponse "listing not found"
// @Router /listings/{id}/signups [get]
// @Security BearerAuth
func NewListSignUpsHandler(svc SignUpLister) http.HandlerFunc {
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

		signUps, err := svc.ListForListing(r.Context(), userID, listingID)
		if err != nil {
			writeServiceError(w, err, "userID", userID, "listingID", listingID)
			return
		}

		writeJSON(w, http.StatusOK, signUps)
	}
}

// NewUpdateSignUpStatusHandler returns an HTTP handler changing a sign-up's status.
// @Summary Change sign-up status
// @Description The listing owner may accept or decline. The volunteer may cancel.
// @Tags signups
// @Accept json
// @Produce json
// @Param id path int true "Sign-up ID"
// @Param request body handlers.SignUpStatusRequest true "New status"
// @Success 200 {object} models.SignUp
// @Failure 400 {object} handlers.ErrorResponse "status required / status not allowed for this actor"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "sign-up or listing not found"
// @Router /signups/{id} [put]
// @Security BearerAuth
func NewUpdateSignUpStatusHandler(svc SignUpStatusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := actorID(w, r)
		if !ok {
			return
		}
		signUpID, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}

		var req SignUpStatusRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		signUp, err := svc.UpdateStatus(r.Context(), userID, signUpID, req.Status)
		if err != nil {
			writeServiceError(w, err, "userID", userID, "signUpID", signUpID)
			return
		}

		writeJSON(w, http.StatusOK, signUp)
	}
}
