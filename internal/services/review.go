package services

import (
	"context"
	"errors"
	"math"

	"github.com/sbilibin2017/tapin/internal/logger"
	"github.com/sbilibin2017/tapin/internal/models"
)

//go:generate mockgen -source=review.go -destination=mock_review_test.go -package=services

var (
	ErrAlreadyReviewed = errors.New("you have already reviewed this listing")
	ErrInvalidRating   = errors.New("rating must be an integer between 1 and 5")
)

// ReviewReader defines review lookups.
type ReviewReader interface {
	GetByUserAndListing(ctx context.Context, userID, listingID int64) (*models.ReviewDB, error)
	ListByListing(ctx context.Context, listingID int64) ([]models.ReviewWithEmailDB, error)
	GetRatings(ctx context.Context, listingID int64) ([]int, error)
}

// ReviewWriter defines review writes.
type ReviewWriter interface {
	Create(ctx context.Context, userID, listingID int64, rating int, comment string) (*models.ReviewDB, error)
}

// ReviewService records reviews and aggregates ratings.
type ReviewService struct {
	listings ListingReader
	reader   ReviewReader
	writer   ReviewWriter
}

// NewReviewService creates a new ReviewService.
func NewReviewService(listings ListingReader, reader ReviewReader, writer ReviewWriter) *ReviewService {
	return &ReviewService{
		listings: listings,
		reader:   reader,
		writer:   writer,
	}
}

func (s *ReviewService) ensureListing(ctx context.Context, listingID int64) error {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return ErrListingNotFound
		}
		logger.Log.Errorw("failed to get listing", "listingID", listingID, "error", err)
		return err
	}
	return nil
}

// Create stores userID's review of a listing. A nil rating means the
// caller supplied no integer rating at all.
func (s *ReviewService) Create(ctx context.Context, userID, listingID int64, rating *int, comment string) (*models.Review, error) {
	if err := s.ensureListing(ctx, listingID); err != nil {
		return nil, err
	}

	_, err := s.reader.GetByUserAndListing(ctx, userID, listingID)
	switch {
	case err == nil:
		return nil, ErrAlreadyReviewed
	case !errors.Is(err, models.ErrNotFound):
		logger.Log.Errorw("failed to check existing review", "userID", userID, "listingID", listingID, "error", err)
		return nil, err
	}

	if rating == nil || *rating < models.MinRating || *rating > models.MaxRating {
		return nil, ErrInvalidRating
	}

	row, err := s.writer.Create(ctx, userID, listingID, *rating, comment)
	if err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		logger.Log.Errorw("failed to create review", "userID", userID, "listingID", listingID, "error", err)
		return nil, err
	}

	out := row.ToReview()
	return &out, nil
}

// List returns the reviews of a listing, newest first.
func (s *ReviewService) List(ctx context.Context, listingID int64) ([]models.Review, error) {
	if err := s.ensureListing(ctx, listingID); err != nil {
		return nil, err
	}

	rows, err := s.reader.ListByListing(ctx, listingID)
	if err != nil {
		logger.Log.Errorw("failed to list reviews", "listingID", listingID, "error", err)
		return nil, err
	}

	reviews := make([]models.Review, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, rows[i].ToReview())
	}
	return reviews, nil
}

// AverageRating returns the mean rating of a listing rounded to one decimal.
// A listing without reviews averages 0.
func (s *ReviewService) AverageRating(ctx context.Context, listingID int64) (*models.RatingSummary, error) {
	if err := s.ensureListing(ctx, listingID); err != nil {
		return nil, err
	}

	ratings, err := s.reader.GetRatings(ctx, listingID)
	if err != nil {
		logger.Log.Errorw("failed to get ratings", "listingID", listingID, "error", err)
		return nil, err
	}

	return Summarize(ratings), nil
}

// Summarize aggregates ratings into a RatingSummary.
func Summarize(ratings []int) *models.RatingSummary {
	if len(ratings) == 0 {
		return &models.RatingSummary{}
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(ratings))

	return &models.RatingSummary{
		AverageRating: math.RoundToEven(avg*10) / 10,
		ReviewCount:   len(ratings),
	}
}
