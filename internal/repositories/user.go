package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/tapin/internal/models"
)

// UserReadRepository handles user lookups.
type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByEmail returns the user with the given email or models.ErrNotFound.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, email)
	logQuery(query, []any{email}, user.UserID, err)

	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetByID returns the user with the given id or models.ErrNotFound.
func (r *UserReadRepository) GetByID(ctx context.Context, userID int64) (*models.UserDB, error) {
	const query = `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE id = $1
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, userID)
	logQuery(query, []any{userID}, user.Email, err)

	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// UserWriteRepository handles user writes.
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a user. A taken email yields models.ErrDuplicate.
func (r *UserWriteRepository) Save(ctx context.Context, email, passwordHash, role string) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (email, password_hash, role, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, email, password_hash, role, created_at
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, email, passwordHash, role)
	// password hash is never logged
	logQuery(query, []any{email, role}, user.UserID, err)

	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// UpdatePassword replaces the password hash of the user with the given email.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	const query = `
		UPDATE users
		SET password_hash = $2
		WHERE email = $1
	`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, email, passwordHash)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{email}, rowsAffected, err)

	if err != nil {
		return translateError(err)
	}
	if rowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
