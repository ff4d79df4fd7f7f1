package services

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/sbilibin2017/tapin/internal/jwt"
	"github.com/sbilibin2017/tapin/internal/logger"
	"github.com/sbilibin2017/tapin/internal/models"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth.go -destination=mock_auth_test.go -package=services

// Error variables
var (
	ErrCredentialsRequired = errors.New("email and password required")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrUserDoesNotExist    = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailRequired       = errors.New("email required")
	ErrPasswordRequired    = errors.New("password required")
	ErrResetTokenExpired   = errors.New("token expired")
	ErrResetTokenInvalid   = errors.New("invalid token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID int64) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, email, passwordHash, role string) (*models.UserDB, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// TokenManager issues and parses the tokens used by the auth flows.
type TokenManager interface {
	Generate(ctx context.Context, userID int64) (string, error)
	GenerateRefresh(ctx context.Context, userID int64) (string, error)
	GenerateReset(ctx context.Context, email string) (string, error)
	GetTypedClaims(ctx context.Context, tokenString, typ string) (*jwt.Claims, error)
}

// Mailer delivers password reset links.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

// Tokens is an access/refresh token pair.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// ResetResult describes the outcome of a password reset request.
type ResetResult struct {
	Sent     bool
	ResetURL string // set when the link could not be mailed
	MailErr  string
}

// AuthService handles registration, login, token refresh and password resets.
type AuthService struct {
	reader  UserReader
	writer  UserWriter
	jwt     TokenManager
	mailer  Mailer
	baseURL string
}

// NewAuthService creates a new AuthService instance.
// mailer may be nil, in which case reset links are returned to the caller.
func NewAuthService(reader UserReader, writer UserWriter, jwt TokenManager, mailer Mailer, baseURL string) *AuthService {
	return &AuthService{
		reader:  reader,
		writer:  writer,
		jwt:     jwt,
		mailer:  mailer,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Register registers a new user and signs them in.
func (svc *AuthService) Register(ctx context.Context, email, password string) (*models.User, *Tokens, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, nil, ErrCredentialsRequired
	}

	_, err := svc.reader.GetByEmail(ctx, email)
	switch {
	case err == nil:
		logger.Log.Errorw("user already exists", "email", email)
		return nil, nil, ErrUserAlreadyExists
	case !errors.Is(err, models.ErrNotFound):
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, nil, err
	}

	user, err := svc.writer.Save(ctx, email, string(hashedPassword), models.RoleUser)
	if err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, nil, err
	}

	tokens, err := svc.tokenPair(ctx, user.UserID)
	if err != nil {
		return nil, nil, err
	}

	out := user.ToUser()
	return &out, tokens, nil
}

// Login authenticates a user and returns a token pair.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*models.User, *Tokens, error) {
	user, err := svc.reader.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			logger.Log.Errorw("user does not exist", "email", email)
			return nil, nil, ErrInvalidCredentials
		}
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "email", email)
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := svc.tokenPair(ctx, user.UserID)
	if err != nil {
		return nil, nil, err
	}

	out := user.ToUser()
	return &out, tokens, nil
}

func (svc *AuthService) tokenPair(ctx context.Context, userID int64) (*Tokens, error) {
	access, err := svc.jwt.Generate(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return nil, err
	}
	refresh, err := svc.jwt.GenerateRefresh(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to generate refresh JWT", "err", err)
		return nil, err
	}
	return &Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a refresh token for a new access token.
func (svc *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := svc.jwt.GetTypedClaims(ctx, refreshToken, jwt.TypeRefresh)
	if err != nil {
		logger.Log.Errorw("invalid refresh token", "err", err)
		return "", ErrInvalidRefreshToken
	}

	if _, err := svc.reader.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", ErrUserDoesNotExist
		}
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}

	token, err := svc.jwt.Generate(ctx, claims.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}
	return token, nil
}

// Me returns the profile of the given user.
func (svc *AuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrUserDoesNotExist
		}
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	out := user.ToUser()
	return &out, nil
}

// RequestPasswordReset mails a reset link to a known address.
// Unknown addresses get an empty result so callers cannot probe for accounts.
func (svc *AuthService) RequestPasswordReset(ctx context.Context, email string) (*ResetResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	if _, err := svc.reader.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return &ResetResult{}, nil
		}
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}

	token, err := svc.jwt.GenerateReset(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to generate reset token", "err", err)
		return nil, err
	}
	resetURL := svc.baseURL + "/reset-password/confirm/" + url.PathEscape(token)

	if svc.mailer == nil {
		logger.Log.Warnw("mailer not configured, returning reset link", "email", email)
		return &ResetResult{ResetURL: resetURL, MailErr: "SMTP not configured"}, nil
	}
	if err := svc.mailer.SendPasswordReset(ctx, email, resetURL); err != nil {
		logger.Log.Errorw("failed to send reset email", "email", email, "err", err)
		return &ResetResult{ResetURL: resetURL, MailErr: err.Error()}, nil
	}

	return &ResetResult{Sent: true}, nil
}

// ResetPassword sets a new password for the account named by a reset token.
func (svc *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return ErrPasswordRequired
	}

	claims, err := svc.jwt.GetTypedClaims(ctx, token, jwt.TypeReset)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrResetTokenExpired
		}
		return ErrResetTokenInvalid
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if err := svc.writer.UpdatePassword(ctx, claims.Email, string(hashedPassword)); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return ErrUserDoesNotExist
		}
		logger.Log.Errorw("failed to update password", "err", err)
		return err
	}
	return nil
}
