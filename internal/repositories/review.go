package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/tapin/internal/models"
)

// ReviewReadRepository handles review reads.
type ReviewReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewReviewReadRepository(db *sqlx.DB, txGetter TxGetter) *ReviewReadRepository {
	return &ReviewReadRepository{db: db, txGetter: txGetter}
}

// GetByUserAndListing returns the review of a user for a listing or models.ErrNotFound.
func (r *ReviewReadRepository) GetByUserAndListing(ctx context.Context, userID, listingID int64) (*models.ReviewDB, error) {
	const query = `
		SELECT id, user_id, listing_id, rating, comment, created_at
		FROM reviews
		WHERE user_id = $1 AND listing_id = $2
	`

	var review models.ReviewDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &review, query, userID, listingID)
	logQuery(query, []any{userID, listingID}, review.ReviewID, err)

	if err != nil {
		return nil, translateError(err)
	}
	return &review, nil
}

// ListByListing returns the reviews of a listing with their authors' emails, newest first.
func (r *ReviewReadRepository) ListByListing(ctx context.Context, listingID int64) ([]models.ReviewWithEmailDB, error) {
	const query = `
		SELECT rv.id, rv.user_id, rv.listing_id, rv.rating, rv.comment, rv.created_at, u.email AS user_email
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.listing_id = $1
		ORDER BY rv.created_at DESC, rv.id DESC
	`

	reviews := []models.ReviewWithEmailDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &reviews, query, listingID)
	logQuery(query, []any{listingID}, len(reviews), err)

	if err != nil {
		return nil, translateError(err)
	}
	return reviews, nil
}

// GetRatings returns every rating given to a listing.
func (r *ReviewReadRepository) GetRatings(ctx context.Context, listingID int64) ([]int, error) {
	const query = `
		SELECT rating
		FROM reviews
		WHERE listing_id = $1
	`

	ratings := []int{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &ratings, query, listingID)
	logQuery(query, []any{listingID}, ratings, err)

	if err != nil {
		return nil, translateError(err)
	}
	return ratings, nil
}

// ReviewWriteRepository handles review writes.
type ReviewWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewReviewWriteRepository(db *sqlx.DB, txGetter TxGetter) *ReviewWriteRepository {
	return &ReviewWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts a review. An existing (user, listing) pair yields models.ErrDuplicate.
func (r *ReviewWriteRepository) Create(ctx context.Context, userID, listingID int64, rating int, comment string) (*models.ReviewDB, error) {
	const query = `
		INSERT INTO reviews (user_id, listing_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, user_id, listing_id, rating, comment, created_at
	`
	args := []any{userID, listingID, rating, comment}

	var review models.ReviewDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &review, query, args...)
	logQuery(query, args, review.ReviewID, err)

	if err != nil {
		return nil, translateError(err)
	}
	return &review, nil
}
