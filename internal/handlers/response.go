package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/tapin/internal/jwt"
	"github.com/sbilibin2017/tapin/internal/logger"
	"github.com/sbilibin2017/tapin/internal/services"
)

// ErrorResponse is the body of every failed request
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: listing not found
	Error string `json:"error"`
}

// MessageResponse is a plain acknowledgement
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message"`
}

const (
	msgInternalError  = "Internal server error"
	msgInvalidBody    = "invalid request body"
	msgUnauthorized   = "Unauthorized"
	msgNotFound       = "not found"
	msgAuthorizeFirst = "authorization required"
)

// errorStatuses maps service errors onto HTTP statuses. Duplicate creates
// answer 400 like every other rejected input.
var errorStatuses = []struct {
	err    error
	status int
}{
	{services.ErrCredentialsRequired, http.StatusBadRequest},
	{services.ErrUserAlreadyExists, http.StatusBadRequest},
	{services.ErrEmailRequired, http.StatusBadRequest},
	{services.ErrPasswordRequired, http.StatusBadRequest},
	{services.ErrResetTokenExpired, http.StatusBadRequest},
	{services.ErrResetTokenInvalid, http.StatusBadRequest},
	{services.ErrTitleRequired, http.StatusBadRequest},
	{services.ErrInvalidCategory, http.StatusBadRequest},
	{services.ErrAlreadySignedUp, http.StatusBadRequest},
	{services.ErrAlreadyReviewed, http.StatusBadRequest},
	{services.ErrStatusRequired, http.StatusBadRequest},
	{services.ErrOwnerStatus, http.StatusBadRequest},
	{services.ErrVolunteerStatus, http.StatusBadRequest},
	{services.ErrInvalidRating, http.StatusBadRequest},
	{services.ErrCityRequired, http.StatusBadRequest},
	{services.ErrInvalidCredentials, http.StatusUnauthorized},
	{services.ErrInvalidRefreshToken, http.StatusUnauthorized},
	{services.ErrNotListingOwner, http.StatusForbidden},
	{services.ErrForbidden, http.StatusForbidden},
	{services.ErrListingNotFound, http.StatusNotFound},
	{services.ErrSignUpNotFound, http.StatusNotFound},
	{services.ErrUserDoesNotExist, http.StatusNotFound},
}

func statusFor(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeServiceError answers with the status mapped from err. Unknown errors are
// logged with keysAndValues and hidden behind a 500.
func writeServiceError(w http.ResponseWriter, err error, keysAndValues ...interface{}) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Log.Errorw("internal server error", append(keysAndValues, "err", err)...)
		writeError(w, status, msgInternalError)
		return
	}
	writeError(w, status, err.Error())
}

// decodeJSON reads the request body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// actorID returns the authenticated user or answers 401.
func actorID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	claims := jwt.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, msgAuthorizeFirst)
		return 0, false
	}
	return claims.UserID, true
}
