package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/tapin/internal/models"
	"github.com/sbilibin2017/tapin/internal/services"
)

//go:generate mockgen -source=register.go -destination=mock_register_test.go -package=handlers

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, email, password string) (*models.User, *services.Tokens, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// AuthResponse is returned by registration and login
// swagger:model AuthResponse
type AuthResponse struct {
	// Success message
	// default: user created
	Message      string       `json:"message"`
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a user account with a unique email and signs it in. The password is stored as a bcrypt hash.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.AuthResponse "User successfully registered"
// @Failure 400 {object} handlers.ErrorResponse "email and password required / user already exists"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		user, tokens, err := svc.Register(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, err, "email", req.Email)
			return
		}

		writeJSON(w, http.StatusCreated, AuthResponse{
			Message:      "user created",
			User:         user,
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
		})
	}
}
