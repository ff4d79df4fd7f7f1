package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/tapin/internal/services"
)

//go:generate mockgen -source=password_reset.go -destination=mock_password_reset_test.go -package=handlers

// PasswordResetRequester starts a password reset.
type PasswordResetRequester interface {
	RequestPasswordReset(ctx context.Context, email string) (*services.ResetResult, error)
}

// PasswordResetter completes a password reset.
type PasswordResetter interface {
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// PasswordResetRequest represents the JSON body of a reset request
// swagger:model PasswordResetRequest
type PasswordResetRequest struct {
	// required: true
	// default: john@example.com
	Email string `json:"email"`
}

// PasswordResetResponse acknowledges a reset request. ResetURL is only set
// when the link could not be mailed.
// swagger:model PasswordResetResponse
type PasswordResetResponse struct {
	Message  string `json:"message"`
	ResetURL string `json:"reset_url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// PasswordResetConfirmRequest carries the new password
// swagger:model PasswordResetConfirmRequest
type PasswordResetConfirmRequest struct {
	// required: true
	Password string `json:"password"`
}

// NewPasswordResetHandler returns an HTTP handler that mails a password reset link.
// @Summary Request password reset
// @Description Mails a reset link when the account exists. The answer does not reveal whether it does.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body handlers.PasswordResetRequest true "Account email"
// @Success 200 {object} handlers.PasswordResetResponse
// @Failure 400 {object} handlers.ErrorResponse "email required"
// @Router /reset-password [post]
func NewPasswordResetHandler(svc PasswordResetRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PasswordResetRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		res, err := svc.RequestPasswordReset(r.Context(), req.Email)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		switch {
		case res.Sent:
			writeJSON(w, http.StatusOK, PasswordResetResponse{Message: "reset email sent"})
		case res.ResetURL != "":
			writeJSON(w, http.StatusOK, PasswordResetResponse{
				Message:  "smtp not configured, returning reset link (dev)",
				ResetURL: res.ResetURL,
				Error:    res.MailErr,
			})
		default:
			writeJSON(w, http.StatusOK, PasswordResetResponse{
				Message: "If an account exists for that email, a reset link has been sent.",
			})
		}
	}
}

// NewPasswordResetConfirmHandler returns an HTTP handler that sets a new password.
// @Summary Confirm password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body handlers.PasswordResetConfirmRequest true "New password"
// @Success 200 {object} handlers.MessageResponse "password updated"
// @Failure 400 {object} handlers.ErrorResponse "password required / token expired / invalid token"
// @Failure 404 {object} handlers.ErrorResponse "no such user"
// @Router /reset-password/confirm/{token} [post]
func NewPasswordResetConfirmHandler(svc PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PasswordResetConfirmRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		err := svc.ResetPassword(r.Context(), chi.URLParam(r, "token"), req.Password)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, MessageResponse{Message: "password updated"})
		case errors.Is(err, services.ErrUserDoesNotExist):
			writeError(w, http.StatusNotFound, "no such user")
		default:
			writeServiceError(w, err)
		}
	}
}
