package jwt

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the "typ" claim.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
	TypeReset   = "reset"
)

var (
	ErrTokenExpired      = errors.New("token expired")
	ErrInvalidToken      = errors.New("invalid token")
	ErrUnexpectedType    = errors.New("unexpected token type")
	ErrMissingAuthHeader = errors.New("authorization header missing")
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")
)

// Claims are the application claims embedded into every token.
type Claims struct {
	UserID int64  `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"` // set on password reset tokens only
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

// JWT provides methods to generate and validate JWT tokens.
type JWT struct {
	secretKey  string
	accessExp  time.Duration
	refreshExp time.Duration
	resetExp   time.Duration
}

// Opt configures a JWT.
type Opt func(*JWT)

// WithSecretKey sets the HMAC signing key.
func WithSecretKey(key string) Opt {
	return func(j *JWT) { j.secretKey = key }
}

// WithExpiration sets the access token lifetime.
func WithExpiration(d time.Duration) Opt {
	return func(j *JWT) { j.accessExp = d }
}

// WithRefreshExpiration sets the refresh token lifetime.
func WithRefreshExpiration(d time.Duration) Opt {
	return func(j *JWT) { j.refreshExp = d }
}

// WithResetExpiration sets the password reset token lifetime.
func WithResetExpiration(d time.Duration) Opt {
	return func(j *JWT) { j.resetExp = d }
}

// New creates a new JWT instance
func New(opts ...Opt) *JWT {
	j := &JWT{
		secretKey:  "my_super_secret_key",
		accessExp:  15 * time.Minute,
		refreshExp: 30 * 24 * time.Hour,
		resetExp:   time.Hour,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Generate creates an access token for the given user.
func (j *JWT) Generate(ctx context.Context, userID int64) (string, error) {
	return j.sign(Claims{UserID: userID, Type: TypeAccess}, j.accessExp)
}

// GenerateRefresh creates a refresh token for the given user.
func (j *JWT) GenerateRefresh(ctx context.Context, userID int64) (string, error) {
	return j.sign(Claims{UserID: userID, Type: TypeRefresh}, j.refreshExp)
}

// GenerateReset creates a password reset token bound to an email address.
func (j *JWT) GenerateReset(ctx context.Context, email string) (string, error) {
	return j.sign(Claims{Email: email, Type: TypeReset}, j.resetExp)
}

func (j *JWT) sign(claims Claims, exp time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(exp))
	if claims.UserID != 0 {
		claims.Subject = strconv.FormatInt(claims.UserID, 10)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// GetClaims parses and verifies the token and returns its claims.
// Expired tokens yield ErrTokenExpired, every other failure ErrInvalidToken.
func (j *JWT) GetClaims(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetTypedClaims is GetClaims restricted to one token type.
func (j *JWT) GetTypedClaims(ctx context.Context, tokenString, typ string) (*Claims, error) {
	claims, err := j.GetClaims(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != typ {
		return nil, ErrUnexpectedType
	}
	return claims, nil
}

// Validate checks that the token is a valid access token.
func (j *JWT) Validate(ctx context.Context, tokenString string) error {
	_, err := j.GetTypedClaims(ctx, tokenString, TypeAccess)
	return err
}

// GetTokenFromRequest extracts the token string from the Authorization header
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", ErrInvalidAuthHeader
	}

	return parts[1], nil
}

type claimsKey struct{}

// WithClaims stores verified claims in the context.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims stored by WithClaims, or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey{}).(*Claims)
	return claims
}
