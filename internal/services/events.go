package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sbilibin2017/tapin/internal/logger"
	"github.com/sbilibin2017/tapin/internal/models"
)

//go:generate mockgen -source=events.go -destination=mock_events_test.go -package=services

var ErrCityRequired = errors.New("city required")

// EventProvider searches one third-party event API.
type EventProvider interface {
	Name() string
	Search(ctx context.Context, q models.EventQuery) ([]models.ExternalEvent, error)
}

// EventCache stores provider results per query.
type EventCache interface {
	GetEvents(ctx context.Context, source string, q models.EventQuery) ([]models.ExternalEvent, error)
	SetEvents(ctx context.Context, source string, q models.EventQuery, events []models.ExternalEvent) error
}

// EventSearchResult is the merged outcome of a search across providers.
type EventSearchResult struct {
	Events []models.ExternalEvent
	Errors map[string]string // provider name -> failure message
}

// EventService searches external event providers for volunteering opportunities.
type EventService struct {
	providers []EventProvider
	cache     EventCache
}

// NewEventService creates a new EventService. cache may be nil.
func NewEventService(cache EventCache, providers ...EventProvider) *EventService {
	return &EventService{
		providers: providers,
		cache:     cache,
	}
}

// Search queries every provider concurrently. A failing provider is reported
// in the result and does not fail the search.
func (s *EventService) Search(ctx context.Context, q models.EventQuery) (*EventSearchResult, error) {
	q.City = strings.TrimSpace(q.City)
	q.State = strings.TrimSpace(q.State)
	q.Keyword = strings.TrimSpace(q.Keyword)
	if q.City == "" {
		return nil, ErrCityRequired
	}

	type outcome struct {
		events []models.ExternalEvent
		err    error
	}
	outcomes := make([]outcome, len(s.providers))

	var wg sync.WaitGroup
	for i, p := range s.providers {
		wg.Add(1)
		go func(i int, p EventProvider) {
			defer wg.Done()
			events, err := s.searchProvider(ctx, p, q)
			outcomes[i] = outcome{events: events, err: err}
		}(i, p)
	}
	wg.Wait()

	result := &EventSearchResult{
		Events: []models.ExternalEvent{},
		Errors: map[string]string{},
	}
	for i, o := range outcomes {
		if o.err != nil {
			result.Errors[s.providers[i].Name()] = o.err.Error()
			continue
		}
		result.Events = append(result.Events, o.events...)
	}
	return result, nil
}

func (s *EventService) searchProvider(ctx context.Context, p EventProvider, q models.EventQuery) ([]models.ExternalEvent, error) {
	name := p.Name()

	if s.cache != nil {
		events, err := s.cache.GetEvents(ctx, name, q)
		switch {
		case err == nil:
			logger.Log.Debugw("event cache hit", "provider", name, "city", q.City)
			return events, nil
		case !errors.Is(err, models.ErrNotFound):
			logger.Log.Warnw("event cache read failed", "provider", name, "error", err)
		}
	}

	events, err := p.Search(ctx, q)
	if err != nil {
		logger.Log.Errorw("event provider failed", "provider", name, "city", q.City, "error", err)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetEvents(ctx, name, q, events); err != nil {
			logger.Log.Warnw("event cache write failed", "provider", name, "error", err)
		}
	}
	return events, nil
}
