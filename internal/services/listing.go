package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/tapin/internal/logger"
	"github.com/sbilibin2017/tapin/internal/models"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=listing.go -destination=mock_listing_test.go -package=services

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrTitleRequired   = errors.New("title required")
	ErrInvalidCategory = errors.New("category must be one of " + strings.Join(models.Categories, ", "))
)

// ListingReader defines listing lookups.
type ListingReader interface {
	GetByID(ctx context.Context, listingID int64) (*models.ListingDB, error)
	List(ctx context.Context, filter models.ListingFilter) ([]models.ListingDB, error)
}

// ListingWriter defines listing writes.
type ListingWriter interface {
	Create(ctx context.Context, ownerID *int64, in models.ListingInput) (*models.ListingDB, error)
	Update(ctx context.Context, listingID int64, in models.ListingInput) (*models.ListingDB, error)
	Delete(ctx context.Context, listingID int64) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// CommitHook schedules fn to run once the transaction carried by ctx commits.
type CommitHook func(ctx context.Context, fn func())

// ListingOpt configures a ListingService.
type ListingOpt func(*ListingService)

// WithAfterCommit delays change announcements until the surrounding
// transaction has committed.
func WithAfterCommit(hook CommitHook) ListingOpt {
	return func(s *ListingService) {
		s.afterCommit = hook
	}
}

// ListingService manages volunteer opportunities and announces their changes.
type ListingService struct {
	reader      ListingReader
	writer      ListingWriter
	kafkaWriter KafkaWriter
	afterCommit CommitHook
}

// NewListingService creates a new ListingService. kafkaWriter may be nil.
// Without WithAfterCommit changes are announced immediately.
func NewListingService(reader ListingReader, writer ListingWriter, kafkaWriter KafkaWriter, opts ...ListingOpt) *ListingService {
	s := &ListingService{
		reader:      reader,
		writer:      writer,
		kafkaWriter: kafkaWriter,
		afterCommit: func(_ context.Context, fn func()) { fn() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// announce publishes change once the write is durable.
func (s *ListingService) announce(ctx context.Context, change models.ListingChange) {
	s.afterCommit(ctx, func() { s.publishChange(ctx, change) })
}

// publishChange publishes a listing change to Kafka. Failures are only logged.
func (s *ListingService) publishChange(ctx context.Context, change models.ListingChange) {
	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "listing_id", change.ListingID)
		return
	}

	data, err := json.Marshal(change)
	if err != nil {
		logger.Log.Errorw("Failed to marshal listing change for Kafka", "listing_id", change.ListingID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(change.ListingID, 10)),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish listing change to Kafka", "listing_id", change.ListingID, "type", change.Type, "error", err)
	} else {
		logger.Log.Infow("Listing change published to Kafka", "listing_id", change.ListingID, "type", change.Type)
	}
}

func newListingChange(typ string, listing *models.ListingDB) models.ListingChange {
	change := models.ListingChange{
		EventID:   uuid.NewString(),
		Type:      typ,
		Timestamp: time.Now().Unix(),
		ListingID: listing.ListingID,
		OwnerID:   listing.OwnerID,
	}
	if typ != models.ListingDeleted {
		l := listing.ToListing()
		change.Listing = &l
	}
	return change
}

// resolveFilter turns the free-text query into a category or text filter.
func resolveFilter(q, location string) models.ListingFilter {
	filter := models.ListingFilter{Location: strings.TrimSpace(location)}
	q = strings.TrimSpace(q)
	if category, ok := models.NormalizeCategory(q); ok {
		filter.Category = category
	} else {
		filter.Text = q
	}
	return filter
}

// normalizeInput validates the writable fields. Title is checked only when present
// unless requireTitle is set.
func normalizeInput(in models.ListingInput, requireTitle bool) (models.ListingInput, error) {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		in.Title = &title
	}
	if (requireTitle && in.Title == nil) || (in.Title != nil && *in.Title == "") {
		return in, ErrTitleRequired
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) != "" {
		category, ok := models.NormalizeCategory(*in.Category)
		if !ok {
			return in, ErrInvalidCategory
		}
		in.Category = &category
	} else {
		in.Category = nil
	}
	return in, nil
}

// List returns listings matching q and location, newest first.
func (s *ListingService) List(ctx context.Context, q, location string) ([]models.Listing, error) {
	rows, err := s.reader.List(ctx, resolveFilter(q, location))
	if err != nil {
		logger.Log.Errorw("failed to list listings", "q", q, "location", location, "error", err)
		return nil, err
	}

	listings := make([]models.Listing, 0, len(rows))
	for i := range rows {
		listings = append(listings, rows[i].ToListing())
	}
	return listings, nil
}

// Get returns one listing.
func (s *ListingService) Get(ctx context.Context, listingID int64) (*models.Listing, error) {
	row, err := s.getListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	out := row.ToListing()
	return &out, nil
}

func (s *ListingService) getListing(ctx context.Context, listingID int64) (*models.ListingDB, error) {
	row, err := s.reader.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		logger.Log.Errorw("failed to get listing", "listingID", listingID, "error", err)
		return nil, err
	}
	return row, nil
}

// Create stores a new listing owned by ownerID.
func (s *ListingService) Create(ctx context.Context, ownerID int64, in models.ListingInput) (*models.Listing, error) {
	in, err := normalizeInput(in, true)
	if err != nil {
		return nil, err
	}

	row, err := s.writer.Create(ctx, &ownerID, in)
	if err != nil {
		logger.Log.Errorw("failed to create listing", "ownerID", ownerID, "error", err)
		return nil, err
	}

	s.announce(ctx, newListingChange(models.ListingCreated, row))

	out := row.ToListing()
	return &out, nil
}

// Update changes a listing on behalf of its owner.
func (s *ListingService) Update(ctx context.Context, actorID, listingID int64, in models.ListingInput) (*models.Listing, error) {
	listing, err := s.getListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if err := CanManageListing(actorID, listing); err != nil {
		logger.Log.Warnw("listing update refused", "actorID", actorID, "listingID", listingID)
		return nil, err
	}

	in, err = normalizeInput(in, false)
	if err != nil {
		return nil, err
	}

	row, err := s.writer.Update(ctx, listingID, in)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		logger.Log.Errorw("failed to update listing", "listingID", listingID, "error", err)
		return nil, err
	}

	s.announce(ctx, newListingChange(models.ListingUpdated, row))

	out := row.ToListing()
	return &out, nil
}

// Delete removes a listing on behalf of its owner, together with its sign-ups and reviews.
func (s *ListingService) Delete(ctx context.Context, actorID, listingID int64) error {
	listing, err := s.getListing(ctx, listingID)
	if err != nil {
		return err
	}
	if err := CanManageListing(actorID, listing); err != nil {
		logger.Log.Warnw("listing delete refused", "actorID", actorID, "listingID", listingID)
		return err
	}

	if err := s.writer.Delete(ctx, listingID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return ErrListingNotFound
		}
		logger.Log.Errorw("failed to delete listing", "listingID", listingID, "error", err)
		return err
	}

	s.announce(ctx, newListingChange(models.ListingDeleted, listing))
	return nil
}
