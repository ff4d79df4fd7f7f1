package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/tapin/internal/logger"
	"github.com/sbilibin2017/tapin/internal/models"
)

//go:generate mockgen -source=refresh.go -destination=mock_refresh_test.go -package=handlers

// Refresher exchanges refresh tokens for access tokens.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// BearerGetter extracts the bearer token of a request.
type BearerGetter interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// ProfileGetter loads the authenticated user's profile.
type ProfileGetter interface {
	Me(ctx context.Context, userID int64) (*models.User, error)
}

// RefreshResponse carries a new access token
// swagger:model RefreshResponse
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// MeResponse wraps the current user
// swagger:model MeResponse
type MeResponse struct {
	User *models.User `json:"user"`
}

// NewRefreshHandler returns an HTTP handler issuing a new access token.
// @Summary Refresh access token
// @Description Exchanges a refresh token sent as the bearer credential for a new access token. Access tokens are rejected.
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.RefreshResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "user not found"
// @Router /refresh [post]
// @Security BearerAuth
func NewRefreshHandler(svc Refresher, tokenGetter BearerGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			logger.Log.Errorw("failed to get token from request", "error", err)
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		access, err := svc.Refresh(ctx, tokenStr)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, RefreshResponse{AccessToken: access})
	}
}

// NewMeHandler returns an HTTP handler for the current user's profile.
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.MeResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "user not found"
// @Router /me [get]
// @Security BearerAuth
func NewMeHandler(svc ProfileGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := actorID(w, r)
		if !ok {
			return
		}

		user, err := svc.Me(r.Context(), userID)
		if err != nil {
			writeServiceError(w, err, "userID", userID)
			return
		}

		writeJSON(w, http.StatusOK, MeResponse{User: user})
	}
}
