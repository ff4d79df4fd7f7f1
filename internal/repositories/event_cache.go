package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/tapin/internal/logger"
	"github.com/sbilibin2017/tapin/internal/models"
)

// EventCacheRepository caches external event search results in Redis.
type EventCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration of cached searches
}

// NewEventCacheRepository creates a new repository instance with the given TTL.
func NewEventCacheRepository(client *redis.Client, expiration time.Duration) *EventCacheRepository {
	return &EventCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func eventCacheKey(source string, q models.EventQuery) string {
	return fmt.Sprintf("events:%s:%s:%s:%s",
		source,
		strings.ToLower(strings.TrimSpace(q.City)),
		strings.ToLower(strings.TrimSpace(q.State)),
		strings.ToLower(strings.TrimSpace(q.Keyword)),
	)
}

// GetEvents returns the cached events of one source, or models.ErrNotFound on a miss.
func (r *EventCacheRepository) GetEvents(ctx context.Context, source string, q models.EventQuery) ([]models.ExternalEvent, error) {
	key := eventCacheKey(source, q)

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		logger.Log.Infow(
			"event cache get",
			"key", key,
			"result", nil,
			"error", err,
		)
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	var events []models.ExternalEvent
	if err := json.Unmarshal(val, &events); err != nil {
		logger.Log.Infow(
			"event cache get",
			"key", key,
			"result", nil,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow(
		"event cache get",
		"key", key,
		"result", len(events),
		"error", nil,
	)
	return events, nil
}

// SetEvents caches the events of one source with expiration.
func (r *EventCacheRepository) SetEvents(ctx context.Context, source string, q models.EventQuery, events []models.ExternalEvent) error {
	key := eventCacheKey(source, q)

	data, err := json.Marshal(events)
	if err != nil {
		return err
	}
	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow(
		"event cache set",
		"key", key,
		"events", len(events),
		"result", "ok",
		"error", err,
	)
	return err
}
