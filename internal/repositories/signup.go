package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/tapin/internal/models"
)

// SignUpReadRepository handles sign-up reads.
type SignUpReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewSignUpReadRepository(db *sqlx.DB, txGetter TxGetter) *SignUpReadRepository {
	return &SignUpReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns the sign-up or models.ErrNotFound.
func (r *SignUpReadRepository) GetByID(ctx context.Context, signUpID int64) (*models.SignUpDB, error) {
	const query = `
		SELECT id, user_id, listing_id, status, message, created_at
		FROM sign_ups
		WHERE id = $1
	`

	var signUp models.SignUpDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &signUp, query, signUpID)
	logQuery(query, []any{signUpID}, signUp.Status, err)

	if err != nil {
		return nil, translateError(err)
	}
	return &signUp, nil
}

// GetByUserAndListing returns the sign-up of a user for a listing or models.ErrNotFound.
func (r *SignUpReadRepository) GetByUserAndListing(ctx context.Context, userID, listingID int64) (*models.SignUpDB, error) {
	const query = `
		SELECT id, user_id, listing_id, status, message, created_at
		FROM sign_ups
		WHERE user_id = $1 AND listing_id = $2
	`

	var signUp models.SignUpDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &signUp, query, userID, listingID)
	logQuery(query, []any{userID, listingID}, signUp.SignUpID, err)

	if err != nil {
		return nil, translateError(err)
	}
	return &signUp, nil
}

// ListByListing returns the sign-ups of a listing with their authors' emails, newest first.
func (r *SignUpReadRepository) ListByListing(ctx context.Context, listingID int64) ([]models.SignUpWithEmailDB, error) {
	const query = `
		SELECT s.id, s.user_id, s.listing_id, s.status, s.message, s.created_at, u.email AS user_email
		FROM sign_ups s
		JOIN users u ON u.id = s.user_id
		WHERE s.listing_id = $1
		ORDER BY s.created_at DESC, s.id DESC
	`

	signUps := []models.SignUpWithEmailDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &signUps, query, listingID)
	logQuery(query, []any{listingID}, len(signUps), err)

	if err != nil {
		return nil, translateError(err)
	}
	return signUps, nil
}

// SignUpWriteRepository handles sign-up writes.
type SignUpWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewSignUpWriteRepository(db *sqlx.DB, txGetter TxGetter) *SignUpWriteRepository {
	return &SignUpWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts a pending sign-up. An existing (user, listing) pair yields models.ErrDuplicate.
func (r *SignUpWriteRepository) Create(ctx context.Context, userID, listingID int64, message string) (*models.SignUpDB, error) {
	const query = `
		INSERT INTO sign_ups (user_id, listing_id, status, message, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, user_id, listing_id, status, message, created_at
	`
	args := []any{userID, listingID, models.SignUpPending, message}

	var signUp models.SignUpDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &signUp, query, args...)
	logQuery(query, args, signUp.SignUpID, err)

	if err != nil {
		return nil, translateError(err)
	}
	return &signUp, nil
}

// UpdateStatus sets the status of a sign-up and returns the stored row.
func (r *SignUpWriteRepository) UpdateStatus(ctx context.Context, signUpID int64, status string) (*models.SignUpDB, error) {
	const query = `
		UPDATE sign_ups
		SET status = $2
		WHERE id = $1
		RETURNING id, user_id, listing_id, status, message, created_at
	`
	args := []any{signUpID, status}

	var signUp models.SignUpDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &signUp, query, args...)
	logQuery(query, args, signUp.Status, err)

	if err != nil {
		return nil, translateError(err)
	}
	return &signUp, nil
}
