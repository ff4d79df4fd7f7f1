package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/tapin/internal/models"
)

const listingColumns = `id, title, description, location, latitude, longitude, category, image_url, owner_id, created_at`

// ListingReadRepository handles listing reads.
type ListingReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewListingReadRepository(db *sqlx.DB, txGetter TxGetter) *ListingReadRepository {
	return &ListingReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns the listing or models.ErrNotFound.
func (r *ListingReadRepository) GetByID(ctx context.Context, listingID int64) (*models.ListingDB, error) {
	query := `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE id = $1
	`

	var listing models.ListingDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &listing, query, listingID)
	logQuery(query, []any{listingID}, listing.Title, err)

	if err != nil {
		return nil, translateError(err)
	}
	return &listing, nil
}

// List returns listings matching the filter, newest first.
func (r *ListingReadRepository) List(ctx context.Context, filter models.ListingFilter) ([]models.ListingDB, error) {
	query := `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE ($1::TEXT IS NULL OR category ILIKE $1)
		  AND ($2::TEXT IS NULL OR title ILIKE $2 OR description ILIKE $2)
		  AND ($3::TEXT IS NULL OR location ILIKE $3)
		ORDER BY created_at DESC, id DESC
	`

	var category, text, location *string
	if filter.Category != "" {
		category = &filter.Category
	}
	if filter.Text != "" {
		p := likePattern(filter.Text)
		text = &p
	}
	if filter.Location != "" {
		p := likePattern(filter.Location)
		location = &p
	}
	args := []any{category, text, location}

	listings := []models.ListingDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &listings, query, args...)
	logQuery(query, args, len(listings), err)

	if err != nil {
		return nil, translateError(err)
	}
	return listings, nil
}

// ListingWriteRepository handles listing writes.
type ListingWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewListingWriteRepository(db *sqlx.DB, txGetter TxGetter) *ListingWriteRepository {
	return &ListingWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts a listing owned by ownerID.
func (r *ListingWriteRepository) Create(ctx context.Context, ownerID *int64, in models.ListingInput) (*models.ListingDB, error) {
	query := `
		INSERT INTO listings (title, description, location, latitude, longitude, category, image_url, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING ` + listingColumns

	args := []any{in.Title, in.Description, in.Location, in.Latitude, in.Longitude, in.Category, in.ImageURL, ownerID}

	var listing models.ListingDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &listing, query, args...)
	logQuery(query, args, listing.ListingID, err)

	if err != nil {
		return nil, translateError(err)
	}
	return &listing, nil
}

// Update applies the non-nil fields of in and returns the stored listing.
func (r *ListingWriteRepository) Update(ctx context.Context, listingID int64, in models.ListingInput) (*models.ListingDB, error) {
	query := `
		UPDATE listings
		SET title       = COALESCE($2, title),
		    description = COALESCE($3, description),
		    location    = COALESCE($4, location),
		    latitude    = COALESCE($5, latitude),
		    longitude   = COALESCE($6, longitude),
		    category    = COALESCE($7, category),
		    image_url   = COALESCE($8, image_url)
		WHERE id = $1
		RETURNING ` + listingColumns

	args := []any{listingID, in.Title, in.Description, in.Location, in.Latitude, in.Longitude, in.Category, in.ImageURL}

	var listing models.ListingDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &listing, query, args...)
	logQuery(query, args, listing.ListingID, err)

	if err != nil {
		return nil, translateError(err)
	}
	return &listing, nil
}

// Delete removes the listing; its sign-ups and reviews go with it.
func (r *ListingWriteRepository) Delete(ctx context.Context, listingID int64) error {
	const query = `DELETE FROM listings WHERE id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, listingID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{listingID}, rowsAffected, err)

	if err != nil {
		return translateError(err)
	}
	if rowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
