package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sbilibin2017/tapin/internal/logger"
	"github.com/sbilibin2017/tapin/internal/models"
)

//go:generate mockgen -source=signup.go -destination=mock_signup_test.go -package=services

var (
	ErrSignUpNotFound  = errors.New("sign-up not found")
	ErrAlreadySignedUp = errors.New("already signed up for this listing")
	ErrStatusRequired  = errors.New("status required")
)

// SignUpReader defines sign-up lookups.
type SignUpReader interface {
	GetByID(ctx context.Context, signUpID int64) (*models.SignUpDB, error)
	GetByUserAndListing(ctx context.Context, userID, listingID int64) (*models.SignUpDB, error)
	ListByListing(ctx context.Context, listingID int64) ([]models.SignUpWithEmailDB, error)
}

// SignUpWriter defines sign-up writes.
type SignUpWriter interface {
	Create(ctx context.Context, userID, listingID int64, message string) (*models.SignUpDB, error)
	UpdateStatus(ctx context.Context, signUpID int64, status string) (*models.SignUpDB, error)
}

// SignUpService runs the volunteer sign-up lifecycle.
type SignUpService struct {
	listings ListingReader
	reader   SignUpReader
	writer   SignUpWriter
}

// NewSignUpService creates a new SignUpService.
func NewSignUpService(listings ListingReader, reader SignUpReader, writer SignUpWriter) *SignUpService {
	return &SignUpService{
		listings: listings,
		reader:   reader,
		writer:   writer,
	}
}

func (s *SignUpService) getListing(ctx context.Context, listingID int64) (*models.ListingDB, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		logger.Log.Errorw("failed to get listing", "listingID", listingID, "error", err)
		return nil, err
	}
	return listing, nil
}

// Create records userID's interest in a listing as a pending sign-up.
// A user holds at most one sign-up per listing, whatever its status.
func (s *SignUpService) Create(ctx context.Context, userID, listingID int64, message string) (*models.SignUp, error) {
	if _, err := s.getListing(ctx, listingID); err != nil {
		return nil, err
	}

	_, err := s.reader.GetByUserAndListing(ctx, userID, listingID)
	switch {
	case err == nil:
		return nil, ErrAlreadySignedUp
	case !errors.Is(err, models.ErrNotFound):
		logger.Log.Errorw("failed to check existing sign-up", "userID", userID, "listingID", listingID, "error", err)
		return nil, err
	}

	row, err := s.writer.Create(ctx, userID, listingID, message)
	if err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, ErrAlreadySignedUp
		}
		logger.Log.Errorw("failed to create sign-up", "userID", userID, "listingID", listingID, "error", err)
		return nil, err
	}

	out := row.ToSignUp()
	return &out, nil
}

// ListForListing returns the sign-ups of a listing, newest first. Only the owner may list them.
func (s *SignUpService) ListForListing(ctx context.Context, actorID, listingID int64) ([]models.SignUp, error) {
	listing, err := s.getListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if err := CanManageListing(actorID, listing); err != nil {
		return nil, err
	}

	rows, err := s.reader.ListByListing(ctx, listingID)
	if err != nil {
		logger.Log.Errorw("failed to list sign-ups", "listingID", listingID, "error", err)
		return nil, err
	}

	signUps := make([]models.SignUp, 0, len(rows))
	for i := range rows {
		signUps = append(signUps, rows[i].ToSignUp())
	}
	return signUps, nil
}

// UpdateStatus moves a sign-up to status on behalf of actorID.
func (s *SignUpService) UpdateStatus(ctx context.Context, actorID, signUpID int64, status string) (*models.SignUp, error) {
	signUp, err := s.reader.GetByID(ctx, signUpID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrSignUpNotFound
		}
		logger.Log.Errorw("failed to get sign-up", "signUpID", signUpID, "error", err)
		return nil, err
	}

	status = strings.TrimSpace(status)
	if status == "" {
		return nil, ErrStatusRequired
	}

	listing, err := s.getListing(ctx, signUp.ListingID)
	if err != nil {
		return nil, err
	}

	if err := CanTransition(actorID, listing, signUp, status); err != nil {
		logger.Log.Warnw("sign-up transition refused",
			"actorID", actorID, "signUpID", signUpID, "from", signUp.Status, "to", status, "reason", err)
		return nil, err
	}

	row, err := s.writer.UpdateStatus(ctx, signUpID, status)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrSignUpNotFound
		}
		logger.Log.Errorw("failed to update sign-up status", "signUpID", signUpID, "error", err)
		return nil, err
	}

	out := row.ToSignUp()
	return &out, nil
}
